// Package review orchestrates the console's read and write flows against the
// managed backend: listing and caching, prompt replacement, upload and
// processing, and approval.
package review

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"docsrouter/constants"
	"docsrouter/internal/cache"
	"docsrouter/internal/common"
	"docsrouter/internal/entity"
	"docsrouter/internal/extract"
	"docsrouter/internal/preview"
	"docsrouter/internal/prompts"
	"docsrouter/internal/repository"
	"docsrouter/internal/stage"
)

type Service struct {
	docTypes    repository.DocTypeRepository
	promptStore repository.PromptRepository
	records     repository.RecordRepository
	procs       repository.ProcRunner
	stage       stage.Stage
	cache       cache.Cache
	rev         *cache.Revision
	renderer    *preview.Renderer
	previewCfg  common.PreviewConfig
	logger      *slog.Logger
}

func NewService(
	docTypes repository.DocTypeRepository,
	promptStore repository.PromptRepository,
	records repository.RecordRepository,
	procs repository.ProcRunner,
	st stage.Stage,
	c cache.Cache,
	rev *cache.Revision,
	renderer *preview.Renderer,
	previewCfg common.PreviewConfig,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		docTypes:    docTypes,
		promptStore: promptStore,
		records:     records,
		procs:       procs,
		stage:       st,
		cache:       c,
		rev:         rev,
		renderer:    renderer,
		previewCfg:  previewCfg,
		logger:      logger,
	}
}

// Renderer exposes the preview renderer for navigation handlers.
func (s *Service) Renderer() *preview.Renderer {
	return s.renderer
}

// cachedJSON serves a read through the revision cache. Cache trouble is never
// fatal; the read falls through to the store.
func (s *Service) cachedJSON(ctx context.Context, key string, out any, load func() (any, error)) error {
	if raw, ok := s.cache.Get(ctx, key); ok {
		if err := json.Unmarshal([]byte(raw), out); err == nil {
			return nil
		}
		s.logger.Warn("discarding undecodable cache entry", "key", key)
	}
	fresh, err := load()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(fresh)
	if err != nil {
		return err
	}
	s.cache.Set(ctx, key, string(raw))
	return json.Unmarshal(raw, out)
}

// ListDocTypes returns all configured document type names.
func (s *Service) ListDocTypes(ctx context.Context) ([]string, error) {
	var names []string
	key := cache.Key(repository.QueryDocTypes, s.rev.Current())
	err := s.cachedJSON(ctx, key, &names, func() (any, error) {
		return s.docTypes.ListNames(ctx)
	})
	return names, err
}

// DocTypeDescription returns the description attached to a document type.
func (s *Service) DocTypeDescription(ctx context.Context, docType string) (string, error) {
	return s.docTypes.Description(ctx, docType)
}

// LoadPrompts returns the prompt set of a document type in display order.
func (s *Service) LoadPrompts(ctx context.Context, docType string) ([]entity.PromptDefinition, error) {
	var defs []entity.PromptDefinition
	key := cache.Key(repository.QueryPrompts, s.rev.Current(), docType)
	err := s.cachedJSON(ctx, key, &defs, func() (any, error) {
		return s.promptStore.ListForType(ctx, docType)
	})
	return defs, err
}

// SavePrompts upserts the document type and replaces its prompt set with the
// normalized surviving rows. Returns how many definitions were submitted;
// zero means the set was cleared.
func (s *Service) SavePrompts(ctx context.Context, docType, description string, rows []prompts.Row) (int, error) {
	docType = strings.TrimSpace(docType)
	if docType == "" {
		return 0, common.NewAppError("PROMPTS_INVALID", "document type is required", common.ErrInvalidInput)
	}

	if err := s.procs.UpsertDocType(ctx, docType, description); err != nil {
		return 0, err
	}

	defs := prompts.NormalizeRows(rows)
	payload, err := prompts.EncodePayload(defs)
	if err != nil {
		return 0, err
	}
	if err := s.procs.ReplacePrompts(ctx, docType, payload); err != nil {
		return 0, err
	}

	s.rev.Bump()
	s.logger.Info("prompts replaced", "doc_type", docType, "count", len(defs))
	return len(defs), nil
}

// ListRecords returns extraction records filtered by type and approval state.
func (s *Service) ListRecords(ctx context.Context, docType string, filter constants.ApprovalFilter) ([]entity.ExtractionRecord, error) {
	var records []entity.ExtractionRecord
	key := cache.Key(repository.QueryRecords, s.rev.Current(), docType, string(filter))
	err := s.cachedJSON(ctx, key, &records, func() (any, error) {
		return s.records.List(ctx, docType, filter)
	})
	return records, err
}

// RecordDetail is one record with its payloads normalized for display.
type RecordDetail struct {
	Record     entity.ExtractionRecord `json:"record"`
	Fields     []extract.Field         `json:"fields"`
	Validation entity.Validation       `json:"validation"`
}

// GetRecordDetail loads one record and normalizes its extraction and
// validation payloads.
func (s *Service) GetRecordDetail(ctx context.Context, fileName string) (*RecordDetail, error) {
	rec, err := s.records.GetByFileName(ctx, fileName)
	if err != nil {
		return nil, err
	}
	return &RecordDetail{
		Record:     *rec,
		Fields:     extract.NormalizeFields(rec.ExtractJSON),
		Validation: extract.DecodeValidation(rec.ValidationJSON),
	}, nil
}

// Approve rebuilds the canonical field mapping from the edited rows and
// submits it; the backend overwrites the record's extract fields and marks it
// approved. Empty field names are dropped; the last occurrence of a
// duplicate name wins while keeping the first occurrence's position.
func (s *Service) Approve(ctx context.Context, fileName string, rows []extract.Field) error {
	if fileName == "" {
		return common.NewAppError("APPROVE_INVALID", "file name is required", common.ErrInvalidInput)
	}

	edited := extract.Object{}
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		replaced := false
		for i := range edited {
			if edited[i].Key == name {
				edited[i].Value = row.Value
				replaced = true
			}
		}
		if !replaced {
			edited = append(edited, extract.Member{Key: name, Value: row.Value})
		}
	}

	payload, err := json.Marshal(edited)
	if err != nil {
		return fmt.Errorf("marshal approval payload: %w", err)
	}
	if err := s.procs.ApproveRecord(ctx, fileName, payload); err != nil {
		return err
	}

	s.rev.Bump()
	s.logger.Info("record approved", "file", fileName, "fields", len(edited))
	return nil
}

// Upload is one file submitted for processing.
type Upload struct {
	FileName string
	Data     []byte
}

// UploadResult reports a batch upload. Partial success is normal: failures
// are collected per file and do not abort the rest of the batch.
type UploadResult struct {
	Uploaded  int      `json:"uploaded"`
	Processed int      `json:"processed"`
	Errors    []string `json:"errors,omitempty"`
}

// UploadAndProcess stages every file, refreshes the stage directory once so
// the uploads become visible, then asks the backend to process each staged
// file in turn.
func (s *Service) UploadAndProcess(ctx context.Context, uploads []Upload) UploadResult {
	var result UploadResult
	var staged []string

	for _, up := range uploads {
		if err := stage.ValidateUploadName(up.FileName); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", up.FileName, err))
			continue
		}
		if err := s.stage.Upload(ctx, up.FileName, up.Data); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", up.FileName, err))
			continue
		}
		result.Uploaded++
		staged = append(staged, up.FileName)
	}

	if len(staged) > 0 {
		if err := s.procs.RefreshStage(ctx); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Processing error: %v", err))
		} else {
			for _, name := range staged {
				if err := s.procs.ProcessOneFile(ctx, name); err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("Processing error: %v", err))
					continue
				}
				result.Processed++
			}
		}
	}

	if result.Uploaded > 0 {
		s.rev.Bump()
	}
	return result
}

// Preview builds the preview view for a staged file. A missing link or
// unfetchable bytes degrade the rendering rather than failing it.
func (s *Service) Preview(ctx context.Context, fileName string) preview.View {
	url, err := s.stage.PresignedURL(ctx, fileName)
	if err != nil {
		s.logger.Warn("presign failed", "file", fileName, "error", err)
		url = ""
	}
	data, err := s.stage.Fetch(ctx, fileName)
	if err != nil {
		s.logger.Warn("stage fetch failed", "file", fileName, "error", err)
		data = nil
	}
	return s.renderer.Render(fileName, url, data, s.scaleFor(fileName))
}

func (s *Service) scaleFor(fileName string) float64 {
	if constants.CategoryForFile(fileName) == constants.PDF {
		return s.previewCfg.PDFScale
	}
	return s.previewCfg.ImageScale
}

// NavAction is a pagination event on an open preview.
type NavAction string

const (
	NavPrev   NavAction = "prev"
	NavNext   NavAction = "next"
	NavSelect NavAction = "select"
)

// Navigate applies a pagination event to a previewed document and returns
// the re-rendered view.
func (s *Service) Navigate(ctx context.Context, fileName string, action NavAction, page int) (preview.View, error) {
	data, err := s.stage.Fetch(ctx, fileName)
	if err != nil {
		s.logger.Warn("stage fetch failed", "file", fileName, "error", err)
		data = nil
	}

	total := 0
	if doc, err := preview.DecodePDF(data); err == nil {
		total = doc.PageCount()
	}

	pages := s.renderer.Pages()
	switch action {
	case NavPrev:
		pages.Prev(fileName)
	case NavNext:
		pages.Next(fileName, total)
	case NavSelect:
		pages.Select(fileName, page, total)
	default:
		return preview.View{}, common.NewAppError("NAV_INVALID",
			fmt.Sprintf("unknown navigation action %q", action), common.ErrInvalidInput)
	}

	url, err := s.stage.PresignedURL(ctx, fileName)
	if err != nil {
		url = ""
	}
	return s.renderer.Render(fileName, url, data, s.scaleFor(fileName)), nil
}
