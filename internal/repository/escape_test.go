package repository

import (
	"encoding/json"
	"testing"
)

func TestEsc(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"O'Brien", "O''Brien"},
		{"plain", "plain"},
		{"", ""},
		{"''", "''''"},
	}
	for _, tc := range cases {
		if got := Esc(tc.in); got != tc.want {
			t.Errorf("Esc(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestJSONLiteralRoundTrip(t *testing.T) {
	payloads := []map[string]string{
		{"note": `path C:\docs and a 'quote'`},
		{"v": `back\slash before 'quote\'`},
		{"empty": ""},
	}
	for _, payload := range payloads {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		escaped := EscapeJSONLiteral(string(raw))
		back := UnescapeJSONLiteral(escaped)
		if back != string(raw) {
			t.Errorf("round trip: got %q, want %q", back, raw)
		}
		var decoded map[string]string
		if err := json.Unmarshal([]byte(back), &decoded); err != nil {
			t.Errorf("unescaped literal is not valid JSON: %v", err)
		}
	}
}

func TestEscapeJSONLiteralOrder(t *testing.T) {
	// backslashes must be doubled before quotes, otherwise the quote escape's
	// output would be re-escaped
	got := EscapeJSONLiteral(`\'`)
	if got != `\\''` {
		t.Errorf("EscapeJSONLiteral(`\\'`) = %q, want %q", got, `\\''`)
	}
}
