package repository

import (
	"fmt"
	"strings"

	"docsrouter/constants"
)

// Logical objects owned by the managed backend. The schema prefix groups the
// three tables, the stage, and the stored procedures.
const (
	schemaName      = "extract_anything"
	rawTable        = schemaName + ".raw"
	docTypesTable   = schemaName + ".doc_types"
	docPromptsTable = schemaName + ".doc_type_prompts"
	stageName       = schemaName + ".docs_router_stage"
)

// Query identifiers, used as cache keys for the read side.
const (
	QueryDocTypes = "doc_types"
	QueryPrompts  = "prompts"
	QueryRecords  = "records"
)

// ListDocTypesSQL selects all configured document type names.
func ListDocTypesSQL() string {
	return fmt.Sprintf("SELECT document_type FROM %s ORDER BY document_type", docTypesTable)
}

// DocTypeDescriptionSQL selects the description of one document type.
func DocTypeDescriptionSQL(docType string) string {
	return fmt.Sprintf("SELECT description FROM %s WHERE document_type = '%s'",
		docTypesTable, Esc(docType))
}

// LoadPromptsSQL selects the prompt set of a document type in display order.
func LoadPromptsSQL(docType string) string {
	return fmt.Sprintf(
		"SELECT field_name, retrieval_prompt, sort_order FROM %s WHERE document_type = '%s' ORDER BY sort_order, field_name",
		docPromptsTable, Esc(docType))
}

// LoadRecordsSQL selects extraction records, optionally filtered by document
// type and approval state, newest first.
func LoadRecordsSQL(docType string, filter constants.ApprovalFilter) string {
	var where []string
	if docType != "" && docType != constants.DocTypeAll {
		where = append(where, fmt.Sprintf("document_type = '%s'", Esc(docType)))
	}
	switch filter {
	case constants.ApprovalApproved:
		where = append(where, "approved = TRUE")
	case constants.ApprovalNotApproved:
		where = append(where, "approved = FALSE")
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}
	return fmt.Sprintf(
		"SELECT file_name, file_url, document_type, extract_json, validation_json, created_at, approved FROM %s%s ORDER BY created_at DESC",
		rawTable, whereSQL)
}

// UpsertDocTypeCall invokes the backend's document type upsert procedure.
func UpsertDocTypeCall(name, description string) string {
	return fmt.Sprintf("CALL %s.upsert_doc_type('%s', '%s')",
		schemaName, Esc(name), Esc(description))
}

// ReplacePromptsCall invokes the full-replace prompt procedure. The payload
// is a JSON array embedded in a string literal, so it takes the JSON escape.
func ReplacePromptsCall(docType string, payload []byte) string {
	return fmt.Sprintf("CALL %s.replace_prompts('%s', PARSE_JSON('%s'))",
		schemaName, Esc(docType), EscapeJSONLiteral(string(payload)))
}

// ProcessOneFileCall invokes classification/extraction/validation for one
// staged file. The call blocks until the backend finishes.
func ProcessOneFileCall(fileName string) string {
	return fmt.Sprintf("CALL %s.process_one_file('%s')", schemaName, Esc(fileName))
}

// ApproveRecordCall submits the final field values for a record; the backend
// overwrites extract fields and marks the record approved.
func ApproveRecordCall(fileName string, payload []byte) string {
	return fmt.Sprintf("CALL %s.approve_record('%s', PARSE_JSON('%s'))",
		schemaName, Esc(fileName), EscapeJSONLiteral(string(payload)))
}

// RefreshStageSQL refreshes the stage directory so freshly uploaded files
// become visible to downstream listing. Must run after uploads, before
// processing.
func RefreshStageSQL() string {
	return fmt.Sprintf("ALTER STAGE %s REFRESH", stageName)
}
