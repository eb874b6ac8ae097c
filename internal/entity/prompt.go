package entity

// PromptDefinition tells the extraction backend which field to retrieve for
// a document type and how to ask for it. A type owns an ordered set of
// definitions; duplicates by field name are allowed here, the store decides.
type PromptDefinition struct {
	DocumentType    string `json:"document_type,omitempty"`
	FieldName       string `json:"field_name"`
	RetrievalPrompt string `json:"retrieval_prompt"`
	SortOrder       int    `json:"sort_order"`
}
