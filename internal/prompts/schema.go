package prompts

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"docsrouter/internal/entity"
)

// BuildPromptSchema returns the JSON-Schema the replacement payload must
// satisfy before it is handed to the backend.
func BuildPromptSchema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"field_name":       map[string]any{"type": "string", "minLength": 1},
				"retrieval_prompt": map[string]any{"type": "string", "minLength": 1},
				"sort_order":       map[string]any{"type": "integer"},
			},
			"required": []string{"field_name", "retrieval_prompt", "sort_order"},
		},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// EncodePayload marshals a replacement set as the JSON array REPLACE_PROMPTS
// expects and checks it against the schema. An empty set encodes as "[]",
// which clears the type's prompts.
func EncodePayload(defs []entity.PromptDefinition) ([]byte, error) {
	if defs == nil {
		defs = []entity.PromptDefinition{}
	}
	// strip the document type; the procedure receives it separately
	rows := make([]map[string]any, len(defs))
	for i, d := range defs {
		rows[i] = map[string]any{
			"field_name":       d.FieldName,
			"retrieval_prompt": d.RetrievalPrompt,
			"sort_order":       d.SortOrder,
		}
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("marshal prompts: %w", err)
	}
	if err := ValidateJSONAgainstSchema(BuildPromptSchema(), payload); err != nil {
		return nil, err
	}
	return payload, nil
}
