// Package prompts turns tabular prompt edits into the replacement set sent
// to the backend's REPLACE_PROMPTS procedure.
package prompts

import (
	"strconv"
	"strings"

	"docsrouter/internal/entity"
)

// Row is one edited line of the prompt grid, exactly as the editor submitted
// it. SortOrder arrives as text because grid cells are untyped.
type Row struct {
	FieldName       string `json:"field_name"`
	RetrievalPrompt string `json:"retrieval_prompt"`
	SortOrder       string `json:"sort_order"`
}

// NormalizeRows filters and cleans edited rows into prompt definitions,
// preserving the submitted order:
//   - a blank prompt next to a "field: prompt" shorthand in the field column
//     is split on the first colon;
//   - both sides are trimmed;
//   - sort order parses as an integer, defaulting to 0;
//   - rows with an empty field or prompt after trimming are dropped.
func NormalizeRows(rows []Row) []entity.PromptDefinition {
	defs := make([]entity.PromptDefinition, 0, len(rows))
	for _, row := range rows {
		field := row.FieldName
		prompt := row.RetrievalPrompt

		if prompt == "" && strings.Contains(field, ":") {
			parts := strings.SplitN(field, ":", 2)
			field, prompt = parts[0], parts[1]
		}
		field = strings.TrimSpace(field)
		prompt = strings.TrimSpace(prompt)
		if field == "" || prompt == "" {
			continue
		}

		sortOrder := 0
		if s := strings.TrimSpace(row.SortOrder); s != "" {
			if n, err := strconv.Atoi(s); err == nil {
				sortOrder = n
			}
		}

		defs = append(defs, entity.PromptDefinition{
			FieldName:       field,
			RetrievalPrompt: prompt,
			SortOrder:       sortOrder,
		})
	}
	return defs
}
