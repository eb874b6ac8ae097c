package repository

import (
	"context"
	"log/slog"
	"time"

	"docsrouter/constants"
	"docsrouter/internal/common"
	"docsrouter/internal/entity"
)

type RecordRepository interface {
	List(ctx context.Context, docType string, filter constants.ApprovalFilter) ([]entity.ExtractionRecord, error)
	GetByFileName(ctx context.Context, fileName string) (*entity.ExtractionRecord, error)
}

type recordRepository struct {
	db     DB
	logger *slog.Logger
}

func NewRecordRepository(db DB, logger *slog.Logger) RecordRepository {
	return &recordRepository{db: db, logger: logger}
}

func (r *recordRepository) List(ctx context.Context, docType string, filter constants.ApprovalFilter) ([]entity.ExtractionRecord, error) {
	rows, err := r.db.Query(ctx, LoadRecordsSQL(docType, filter))
	if err != nil {
		r.logger.Error("failed to load records", "doc_type", docType, "filter", filter, "error", err)
		return nil, err
	}
	defer rows.Close()

	var records []entity.ExtractionRecord
	for rows.Next() {
		var (
			fileName, fileURL, documentType *string
			extractJSON, validationJSON     *string
			createdAt                       *time.Time
			approved                        *bool
		)
		if err := rows.Scan(&fileName, &fileURL, &documentType, &extractJSON, &validationJSON, &createdAt, &approved); err != nil {
			return nil, err
		}
		rec := entity.ExtractionRecord{}
		if fileName != nil {
			rec.FileName = *fileName
		}
		if fileURL != nil {
			rec.FileURL = *fileURL
		}
		if documentType != nil {
			rec.DocumentType = *documentType
		}
		if extractJSON != nil {
			rec.ExtractJSON = *extractJSON
		}
		if validationJSON != nil {
			rec.ValidationJSON = *validationJSON
		}
		if createdAt != nil {
			rec.CreatedAt = *createdAt
		}
		if approved != nil {
			rec.Approved = *approved
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *recordRepository) GetByFileName(ctx context.Context, fileName string) (*entity.ExtractionRecord, error) {
	records, err := r.List(ctx, constants.DocTypeAll, constants.ApprovalAll)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].FileName == fileName {
			return &records[i], nil
		}
	}
	return nil, common.NewAppError("RECORD_NOT_FOUND", "no record for file "+fileName, common.ErrNotFound)
}
