package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"docsrouter/constants"
	"docsrouter/internal/extract"
	"docsrouter/internal/repository"
)

// Service is a tiny façade over the record repository that produces XLSX
// bytes for review exports.
type Service struct {
	records repository.RecordRepository
	logger  *slog.Logger
}

func NewService(records repository.RecordRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{records: records, logger: logger}
}

// ExportRecordsXLSX returns an XLSX workbook (as bytes) for the records
// matching the given type and approval filter, one row per record with the
// normalized field values flattened into a single column.
func (s *Service) ExportRecordsXLSX(ctx context.Context, docType string, filter constants.ApprovalFilter) ([]byte, error) {
	start := time.Now()

	recs, err := s.records.List(ctx, docType, filter)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Records"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"File Name",
		"Document Type",
		"Approved",
		"Valid",
		"Validation Notes",
		"Processed At",
		"Extracted Fields",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		validation := extract.DecodeValidation(r.ValidationJSON)
		fields := extract.NormalizeFields(r.ExtractJSON)
		pairs := make([]string, len(fields))
		for i, fl := range fields {
			pairs[i] = fl.Name + ": " + fl.Value
		}

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.FileName)
		write(2, r.DocumentType)
		write(3, r.Approved)
		write(4, validation.Valid)
		write(5, truncate(validation.Notes, 140))
		if !r.CreatedAt.IsZero() {
			write(6, r.CreatedAt.Format("2006-01-02 15:04"))
		} else {
			write(6, "")
		}
		write(7, strings.Join(pairs, "; "))

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 40) // file name
	_ = f.SetColWidth(sheet, "B", "B", 22) // type
	_ = f.SetColWidth(sheet, "C", "D", 10) // flags
	_ = f.SetColWidth(sheet, "E", "E", 48) // notes
	_ = f.SetColWidth(sheet, "F", "F", 18) // processed at
	_ = f.SetColWidth(sheet, "G", "G", 80) // fields

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"doc_type", docType,
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
