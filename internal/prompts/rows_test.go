package prompts

import (
	"encoding/json"
	"testing"
)

func TestNormalizeRows(t *testing.T) {
	t.Run("colon shorthand recovers field and prompt", func(t *testing.T) {
		defs := NormalizeRows([]Row{
			{FieldName: "Name: Full legal name", RetrievalPrompt: "", SortOrder: "1"},
		})
		if len(defs) != 1 {
			t.Fatalf("got %d definitions, want 1", len(defs))
		}
		if defs[0].FieldName != "Name" {
			t.Errorf("field = %q, want Name", defs[0].FieldName)
		}
		if defs[0].RetrievalPrompt != "Full legal name" {
			t.Errorf("prompt = %q, want %q", defs[0].RetrievalPrompt, "Full legal name")
		}
	})

	t.Run("explicit prompt wins over colon in field name", func(t *testing.T) {
		defs := NormalizeRows([]Row{
			{FieldName: "Time: arrival", RetrievalPrompt: "The departure time", SortOrder: ""},
		})
		if len(defs) != 1 || defs[0].FieldName != "Time: arrival" {
			t.Fatalf("got %+v, want field kept verbatim", defs)
		}
	})

	t.Run("blank rows are dropped", func(t *testing.T) {
		defs := NormalizeRows([]Row{
			{FieldName: "  ", RetrievalPrompt: "", SortOrder: "2"},
			{FieldName: "total", RetrievalPrompt: "   ", SortOrder: "1"},
			{FieldName: "kept", RetrievalPrompt: "The total amount", SortOrder: "3"},
		})
		if len(defs) != 1 || defs[0].FieldName != "kept" {
			t.Fatalf("got %+v, want only the kept row", defs)
		}
	})

	t.Run("non numeric sort order defaults to zero", func(t *testing.T) {
		defs := NormalizeRows([]Row{
			{FieldName: "a", RetrievalPrompt: "p", SortOrder: "abc"},
			{FieldName: "b", RetrievalPrompt: "p", SortOrder: ""},
			{FieldName: "c", RetrievalPrompt: "p", SortOrder: "7"},
			{FieldName: "d", RetrievalPrompt: "p", SortOrder: "-2"},
		})
		want := []int{0, 0, 7, -2}
		for i, w := range want {
			if defs[i].SortOrder != w {
				t.Errorf("row %d sort order = %d, want %d", i, defs[i].SortOrder, w)
			}
		}
	})

	t.Run("submitted order is preserved", func(t *testing.T) {
		defs := NormalizeRows([]Row{
			{FieldName: "z", RetrievalPrompt: "p", SortOrder: "9"},
			{FieldName: "a", RetrievalPrompt: "p", SortOrder: "1"},
		})
		if defs[0].FieldName != "z" || defs[1].FieldName != "a" {
			t.Errorf("order changed: %+v", defs)
		}
	})

	t.Run("values are trimmed", func(t *testing.T) {
		defs := NormalizeRows([]Row{
			{FieldName: "  total  ", RetrievalPrompt: "  The total  ", SortOrder: "0"},
		})
		if defs[0].FieldName != "total" || defs[0].RetrievalPrompt != "The total" {
			t.Errorf("got %+v, want trimmed values", defs[0])
		}
	})
}

func TestEncodePayload(t *testing.T) {
	t.Run("empty set encodes as empty array", func(t *testing.T) {
		payload, err := EncodePayload(nil)
		if err != nil {
			t.Fatalf("EncodePayload: %v", err)
		}
		if string(payload) != "[]" {
			t.Errorf("payload = %s, want []", payload)
		}
	})

	t.Run("normalized rows satisfy the schema", func(t *testing.T) {
		defs := NormalizeRows([]Row{
			{FieldName: "Name: Full legal name", SortOrder: "1"},
			{FieldName: "dob", RetrievalPrompt: "Date of birth", SortOrder: "x"},
		})
		payload, err := EncodePayload(defs)
		if err != nil {
			t.Fatalf("EncodePayload: %v", err)
		}
		var decoded []map[string]any
		if err := json.Unmarshal(payload, &decoded); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if len(decoded) != 2 {
			t.Fatalf("got %d rows, want 2", len(decoded))
		}
		if decoded[0]["field_name"] != "Name" {
			t.Errorf("field_name = %v, want Name", decoded[0]["field_name"])
		}
	})

	t.Run("empty field name is rejected", func(t *testing.T) {
		bad := []byte(`[{"field_name":"","retrieval_prompt":"p","sort_order":0}]`)
		if err := ValidateJSONAgainstSchema(BuildPromptSchema(), bad); err == nil {
			t.Error("expected schema violation for empty field_name")
		}
	})
}
