package entity

import (
	"time"
)

// ExtractionRecord represents one processed document for data transfer
// between layers. The backing row is owned by the external store; this layer
// only reads it and overwrites extract fields through the approve procedure.
type ExtractionRecord struct {
	FileName       string    `json:"file_name"`
	FileURL        string    `json:"file_url"`
	DocumentType   string    `json:"document_type"`
	ExtractJSON    string    `json:"extract_json"`
	ValidationJSON string    `json:"validation_json"`
	Approved       bool      `json:"approved"`
	CreatedAt      time.Time `json:"created_at"`
}

// Validation is the decoded AI validation verdict attached to a record.
type Validation struct {
	Valid bool   `json:"valid"`
	Notes string `json:"notes"`
}
