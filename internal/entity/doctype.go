package entity

// DocumentType describes one configured document type. Types must exist
// before prompts are attached to them.
type DocumentType struct {
	Name        string `json:"document_type"`
	Description string `json:"description"`
}
