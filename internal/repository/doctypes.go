package repository

import (
	"context"
	"log/slog"
)

type DocTypeRepository interface {
	ListNames(ctx context.Context) ([]string, error)
	Description(ctx context.Context, docType string) (string, error)
}

type docTypeRepository struct {
	db     DB
	logger *slog.Logger
}

func NewDocTypeRepository(db DB, logger *slog.Logger) DocTypeRepository {
	return &docTypeRepository{db: db, logger: logger}
}

func (r *docTypeRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, ListDocTypesSQL())
	if err != nil {
		r.logger.Error("failed to list document types", "error", err)
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *docTypeRepository) Description(ctx context.Context, docType string) (string, error) {
	rows, err := r.db.Query(ctx, DocTypeDescriptionSQL(docType))
	if err != nil {
		r.logger.Error("failed to load doc type description", "doc_type", docType, "error", err)
		return "", err
	}
	defer rows.Close()

	if !rows.Next() {
		return "", rows.Err()
	}
	var desc *string
	if err := rows.Scan(&desc); err != nil {
		return "", err
	}
	if desc == nil {
		return "", rows.Err()
	}
	return *desc, rows.Err()
}
