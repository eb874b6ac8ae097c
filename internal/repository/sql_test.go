package repository

import (
	"strings"
	"testing"

	"docsrouter/constants"
)

func TestLoadRecordsSQL(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		sql := LoadRecordsSQL(constants.DocTypeAll, constants.ApprovalAll)
		if strings.Contains(sql, "WHERE") {
			t.Errorf("unfiltered query must not carry WHERE: %s", sql)
		}
		if !strings.Contains(sql, "ORDER BY created_at DESC") {
			t.Errorf("records must be newest first: %s", sql)
		}
	})

	t.Run("type filter is escaped", func(t *testing.T) {
		sql := LoadRecordsSQL("O'Brien's Forms", constants.ApprovalAll)
		if !strings.Contains(sql, "document_type = 'O''Brien''s Forms'") {
			t.Errorf("missing escaped type filter: %s", sql)
		}
	})

	t.Run("approval filters", func(t *testing.T) {
		if sql := LoadRecordsSQL("", constants.ApprovalApproved); !strings.Contains(sql, "approved = TRUE") {
			t.Errorf("missing approved filter: %s", sql)
		}
		if sql := LoadRecordsSQL("", constants.ApprovalNotApproved); !strings.Contains(sql, "approved = FALSE") {
			t.Errorf("missing not-approved filter: %s", sql)
		}
	})

	t.Run("both filters are joined with AND", func(t *testing.T) {
		sql := LoadRecordsSQL("invoice", constants.ApprovalApproved)
		if !strings.Contains(sql, "document_type = 'invoice' AND approved = TRUE") {
			t.Errorf("filters not combined: %s", sql)
		}
	})
}

func TestLoadPromptsSQL(t *testing.T) {
	sql := LoadPromptsSQL("invoice")
	if !strings.Contains(sql, "ORDER BY sort_order, field_name") {
		t.Errorf("prompts must order by sort_order then field_name: %s", sql)
	}
}

func TestProcCalls(t *testing.T) {
	t.Run("upsert doc type escapes quotes", func(t *testing.T) {
		sql := UpsertDocTypeCall("driver's license", "state IDs")
		if !strings.Contains(sql, "'driver''s license'") {
			t.Errorf("name not escaped: %s", sql)
		}
	})

	t.Run("replace prompts embeds escaped JSON", func(t *testing.T) {
		sql := ReplacePromptsCall("invoice", []byte(`[{"field_name":"who's"}]`))
		if !strings.Contains(sql, `PARSE_JSON('[{"field_name":"who''s"}]')`) {
			t.Errorf("payload not escaped for literal embedding: %s", sql)
		}
	})

	t.Run("approve record call", func(t *testing.T) {
		sql := ApproveRecordCall("a.pdf", []byte(`{"total":"5"}`))
		if !strings.Contains(sql, "approve_record('a.pdf'") {
			t.Errorf("unexpected call: %s", sql)
		}
	})
}
