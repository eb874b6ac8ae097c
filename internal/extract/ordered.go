package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Object is a JSON object with its key order intact. encoding/json maps lose
// insertion order, and the review editor needs fields in the order the
// extraction backend produced them.
type Object []Member

// Member is one key/value pair of an Object. Values are decoded as Object for
// nested objects, []any for arrays, and json.Number / string / bool / nil for
// scalars.
type Member struct {
	Key   string
	Value any
}

// Get returns the value for key and whether it was present. Later duplicates
// win, matching map semantics.
func (o Object) Get(key string) (any, bool) {
	var v any
	found := false
	for _, m := range o {
		if m.Key == key {
			v = m.Value
			found = true
		}
	}
	return v, found
}

// MarshalJSON encodes the object back to JSON in member order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeObject parses data as a single JSON object, preserving key order.
func DecodeObject(data []byte) (Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("not a JSON object: %v", tok)
	}
	return decodeMembers(dec)
}

func decodeMembers(dec *json.Decoder) (Object, error) {
	var obj Object
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, not string", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj = append(obj, Member{Key: key, Value: val})
	}
	// consume closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeMembers(dec)
		case '[':
			var arr []any
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	default:
		return t, nil
	}
}
