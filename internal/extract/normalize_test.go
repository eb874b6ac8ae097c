package extract

import (
	"testing"
)

func TestNormalizeMap(t *testing.T) {
	t.Run("nil input yields empty mapping", func(t *testing.T) {
		got := NormalizeMap(nil)
		if len(got) != 0 {
			t.Fatalf("expected empty map, got %v", got)
		}
	})

	t.Run("response wrapper is unwrapped and lists joined", func(t *testing.T) {
		got := NormalizeMap(`{"response": {"a": [1, 2], "b": "x"}}`)
		if got["a"] != "1, 2" {
			t.Errorf("a = %q, want %q", got["a"], "1, 2")
		}
		if got["b"] != "x" {
			t.Errorf("b = %q, want %q", got["b"], "x")
		}
		if len(got) != 2 {
			t.Errorf("got %d keys, want 2", len(got))
		}
	})

	t.Run("non-JSON string is wrapped as raw", func(t *testing.T) {
		got := NormalizeMap("not json")
		if got["raw"] != "not json" {
			t.Errorf("raw = %q, want %q", got["raw"], "not json")
		}
	})

	t.Run("non-object JSON is wrapped as value", func(t *testing.T) {
		got := NormalizeMap(`[1, 2]`)
		if got["value"] != "1, 2" {
			t.Errorf("value = %q, want %q", got["value"], "1, 2")
		}
	})

	t.Run("top-level mapping without wrapper is used directly", func(t *testing.T) {
		got := NormalizeMap(`{"name": "Ada", "tags": ["a", "b", "c"]}`)
		if got["name"] != "Ada" {
			t.Errorf("name = %q, want Ada", got["name"])
		}
		if got["tags"] != "a, b, c" {
			t.Errorf("tags = %q, want %q", got["tags"], "a, b, c")
		}
	})

	t.Run("response key with scalar value is not unwrapped", func(t *testing.T) {
		got := NormalizeMap(`{"response": "ok", "other": 5}`)
		if got["response"] != "ok" {
			t.Errorf("response = %q, want ok", got["response"])
		}
		if got["other"] != "5" {
			t.Errorf("other = %q, want 5", got["other"])
		}
	})
}

func TestNormalizeFieldsOrder(t *testing.T) {
	fields := NormalizeFields(`{"response": {"zebra": "1", "alpha": "2", "mid": "3"}}`)
	wantOrder := []string{"zebra", "alpha", "mid"}
	if len(fields) != len(wantOrder) {
		t.Fatalf("got %d fields, want %d", len(fields), len(wantOrder))
	}
	for i, name := range wantOrder {
		if fields[i].Name != name {
			t.Errorf("field %d = %q, want %q", i, fields[i].Name, name)
		}
	}
}

func TestEnsureObject(t *testing.T) {
	t.Run("empty payload yields empty object", func(t *testing.T) {
		if got := EnsureObject(`{}`); len(got) != 0 {
			t.Errorf("expected empty object, got %v", got)
		}
	})

	t.Run("scalar input wrapped as value", func(t *testing.T) {
		obj := EnsureObject(42)
		v, ok := obj.Get("value")
		if !ok || v != 42 {
			t.Errorf("value = %v (present=%v), want 42", v, ok)
		}
	})

	t.Run("duplicate keys last wins", func(t *testing.T) {
		obj := EnsureObject(`{"a": "first", "a": "second"}`)
		v, _ := obj.Get("a")
		if Stringify(v) != "second" {
			t.Errorf("a = %v, want second", v)
		}
	})
}

func TestDecodeValidation(t *testing.T) {
	cases := []struct {
		name      string
		input     any
		wantValid bool
		wantNotes string
	}{
		{"wrapped valid true", `{"response": {"valid": true, "notes": "looks good"}}`, true, "looks good"},
		{"string yes", `{"valid": "YES", "notes": "ok"}`, true, "ok"},
		{"numeric one", `{"valid": 1}`, true, ""},
		{"invalid with message fallback", `{"valid": false, "message": "total mismatch"}`, false, "total mismatch"},
		{"empty notes falls back to message", `{"valid": "no", "notes": "", "message": "see totals"}`, false, "see totals"},
		{"nil payload", nil, false, ""},
		{"garbage payload", "not json", false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeValidation(tc.input)
			if got.Valid != tc.wantValid {
				t.Errorf("Valid = %v, want %v", got.Valid, tc.wantValid)
			}
			if got.Notes != tc.wantNotes {
				t.Errorf("Notes = %q, want %q", got.Notes, tc.wantNotes)
			}
		})
	}
}

func TestStringify(t *testing.T) {
	obj := EnsureObject(`{"nested": {"a": 1}}`)
	v, _ := obj.Get("nested")
	if got := Stringify(v); got != `{"a":1}` {
		t.Errorf("nested object = %q, want %q", got, `{"a":1}`)
	}
	if got := Stringify(nil); got != "" {
		t.Errorf("nil = %q, want empty", got)
	}
	if got := Stringify(true); got != "true" {
		t.Errorf("bool = %q, want true", got)
	}
}
