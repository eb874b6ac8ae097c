package repository

import (
	"context"
	"log/slog"

	"docsrouter/internal/entity"
)

type PromptRepository interface {
	ListForType(ctx context.Context, docType string) ([]entity.PromptDefinition, error)
}

type promptRepository struct {
	db     DB
	logger *slog.Logger
}

func NewPromptRepository(db DB, logger *slog.Logger) PromptRepository {
	return &promptRepository{db: db, logger: logger}
}

func (r *promptRepository) ListForType(ctx context.Context, docType string) ([]entity.PromptDefinition, error) {
	rows, err := r.db.Query(ctx, LoadPromptsSQL(docType))
	if err != nil {
		r.logger.Error("failed to load prompts", "doc_type", docType, "error", err)
		return nil, err
	}
	defer rows.Close()

	var defs []entity.PromptDefinition
	for rows.Next() {
		var (
			fieldName, prompt *string
			sortOrder         *int
		)
		if err := rows.Scan(&fieldName, &prompt, &sortOrder); err != nil {
			return nil, err
		}
		def := entity.PromptDefinition{DocumentType: docType}
		if fieldName != nil {
			def.FieldName = *fieldName
		}
		if prompt != nil {
			def.RetrievalPrompt = *prompt
		}
		if sortOrder != nil {
			def.SortOrder = *sortOrder
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}
