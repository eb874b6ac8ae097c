// Package extract normalizes the loosely-typed JSON payloads returned by the
// extraction and validation backends into flat, ordered field lists the
// review UI can display and re-edit.
package extract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"docsrouter/internal/entity"
)

// Field is one displayable key/value pair of a normalized extraction result.
// Records carry arbitrary field sets per document type, so an ordered list of
// pairs stands in for a fixed struct.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// EnsureObject coerces a payload of unknown shape into an Object:
// nil → empty; JSON text → parsed; unparseable text → {"raw": text};
// any other non-object value → {"value": value}.
func EnsureObject(v any) Object {
	switch t := v.(type) {
	case nil:
		return Object{}
	case Object:
		return t
	case map[string]any:
		return fromMap(t)
	case []byte:
		return ensureFromText(string(t))
	case string:
		return ensureFromText(t)
	default:
		return Object{{Key: "value", Value: t}}
	}
}

func ensureFromText(s string) Object {
	obj, err := DecodeObject([]byte(s))
	if err == nil {
		return obj
	}
	var generic any
	if err := json.Unmarshal([]byte(s), &generic); err == nil {
		return Object{{Key: "value", Value: generic}}
	}
	return Object{{Key: "raw", Value: s}}
}

// fromMap flattens a decoded map into an Object. Go maps have no stable
// iteration order, so keys are sorted for determinism.
func fromMap(m map[string]any) Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	obj := make(Object, 0, len(m))
	for _, k := range keys {
		obj = append(obj, Member{Key: k, Value: m[k]})
	}
	return obj
}

// unwrap applies the optional "response" wrapper rule: when the payload
// carries a "response" key whose value is itself an object, that nested
// object is the payload.
func unwrap(obj Object) Object {
	resp, ok := obj.Get("response")
	if !ok {
		return obj
	}
	switch t := resp.(type) {
	case Object:
		return t
	case map[string]any:
		return fromMap(t)
	default:
		return obj
	}
}

// NormalizeFields converts an extraction payload into the flat ordered field
// list shown in the review editor. Array values are joined with ", " after
// converting each element to its string form; everything else is rendered
// as-is. An empty payload yields an empty list, not an error.
func NormalizeFields(v any) []Field {
	obj := unwrap(EnsureObject(v))
	fields := make([]Field, 0, len(obj))
	for _, m := range obj {
		fields = append(fields, Field{Name: m.Key, Value: displayValue(m.Value)})
	}
	return fields
}

// NormalizeMap is NormalizeFields minus the ordering; later duplicate keys
// win. Used where only lookup by field name matters.
func NormalizeMap(v any) map[string]string {
	fields := NormalizeFields(v)
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Name] = f.Value
	}
	return out
}

func displayValue(v any) string {
	if arr, ok := v.([]any); ok {
		parts := make([]string, len(arr))
		for i, el := range arr {
			parts[i] = Stringify(el)
		}
		return strings.Join(parts, ", ")
	}
	return Stringify(v)
}

// Stringify renders a decoded JSON value as its display string. Nested
// structures fall back to compact JSON.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case Object, map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// DecodeValidation extracts the AI validation verdict from a validation
// payload. The verdict is truthy for "true"/"yes"/"1" in any casing; notes
// fall back to a "message" key when "notes" is absent or empty.
func DecodeValidation(v any) entity.Validation {
	obj := unwrap(EnsureObject(v))

	var out entity.Validation
	if raw, ok := obj.Get("valid"); ok {
		switch strings.ToLower(Stringify(raw)) {
		case "true", "yes", "1":
			out.Valid = true
		}
	}
	if raw, ok := obj.Get("notes"); ok {
		out.Notes = Stringify(raw)
	}
	if out.Notes == "" {
		if raw, ok := obj.Get("message"); ok {
			out.Notes = Stringify(raw)
		}
	}
	return out
}
