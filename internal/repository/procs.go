package repository

import (
	"context"
	"log/slog"

	"docsrouter/internal/common"
)

// ProcRunner invokes the backend's named procedures. Each call is a single
// atomic remote operation, attempted once; there are no retries.
type ProcRunner interface {
	UpsertDocType(ctx context.Context, name, description string) error
	ReplacePrompts(ctx context.Context, docType string, payload []byte) error
	ProcessOneFile(ctx context.Context, fileName string) error
	ApproveRecord(ctx context.Context, fileName string, payload []byte) error
	RefreshStage(ctx context.Context) error
}

type procRunner struct {
	db     DB
	logger *slog.Logger
}

func NewProcRunner(db DB, logger *slog.Logger) ProcRunner {
	return &procRunner{db: db, logger: logger}
}

func (p *procRunner) exec(ctx context.Context, what, sql string) error {
	if _, err := p.db.Exec(ctx, sql); err != nil {
		p.logger.Error("procedure call failed", "proc", what, "error", err)
		return common.WrapError(err, what)
	}
	return nil
}

func (p *procRunner) UpsertDocType(ctx context.Context, name, description string) error {
	return p.exec(ctx, "upsert doc type", UpsertDocTypeCall(name, description))
}

func (p *procRunner) ReplacePrompts(ctx context.Context, docType string, payload []byte) error {
	return p.exec(ctx, "replace prompts", ReplacePromptsCall(docType, payload))
}

func (p *procRunner) ProcessOneFile(ctx context.Context, fileName string) error {
	return p.exec(ctx, "process one file", ProcessOneFileCall(fileName))
}

func (p *procRunner) ApproveRecord(ctx context.Context, fileName string, payload []byte) error {
	return p.exec(ctx, "approve record", ApproveRecordCall(fileName, payload))
}

func (p *procRunner) RefreshStage(ctx context.Context) error {
	return p.exec(ctx, "refresh stage", RefreshStageSQL())
}
