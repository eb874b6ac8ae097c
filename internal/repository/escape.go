package repository

import (
	"strings"
)

// Esc doubles single quotes so a value can be embedded in a SQL string
// literal. Every interpolated string in this package goes through it.
func Esc(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}

// EscapeJSONLiteral prepares a JSON payload for embedding inside a SQL string
// literal: backslashes are doubled first, then single quotes. The store
// reverses both, so the parsed literal reproduces the original bytes.
func EscapeJSONLiteral(jsonStr string) string {
	s := strings.ReplaceAll(jsonStr, `\`, `\\`)
	return strings.ReplaceAll(s, "'", "''")
}

// UnescapeJSONLiteral reverses EscapeJSONLiteral. Kept next to its pair so
// the round-trip contract is testable locally.
func UnescapeJSONLiteral(s string) string {
	s = strings.ReplaceAll(s, "''", "'")
	return strings.ReplaceAll(s, `\\`, `\`)
}
