package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"docsrouter/constants"
	"docsrouter/internal/common"
	"docsrouter/internal/extract"
	"docsrouter/internal/prompts"
	"docsrouter/internal/review"
)

func (s *Server) handleListDocTypes(w http.ResponseWriter, r *http.Request) {
	names, err := s.svc.ListDocTypes(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"doc_types": names})
}

func (s *Server) handleGetDocType(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		s.writeError(w, err)
		return
	}
	desc, err := s.svc.DocTypeDescription(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"name":        name,
		"description": desc,
	})
}

func (s *Server) handleGetPrompts(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		s.writeError(w, err)
		return
	}
	defs, err := s.svc.LoadPrompts(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"prompts": defs})
}

type savePromptsRequest struct {
	Description string        `json:"description"`
	Rows        []prompts.Row `json:"rows"`
}

func (s *Server) handleSavePrompts(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req savePromptsRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	saved, err := s.svc.SavePrompts(r.Context(), name, req.Description, req.Rows)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"saved": saved})
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	docType, filter := listFilters(r)
	records, err := s.svc.ListRecords(r.Context(), docType, filter)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

func (s *Server) handleRecordDetail(w http.ResponseWriter, r *http.Request) {
	fileName, err := pathParam(r, "file")
	if err != nil {
		s.writeError(w, err)
		return
	}
	detail, err := s.svc.GetRecordDetail(r.Context(), fileName)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, detail)
}

type approveRequest struct {
	Fields []extract.Field `json:"fields"`
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	fileName, err := pathParam(r, "file")
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req approveRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.svc.Approve(r.Context(), fileName, req.Fields); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	fileName, err := pathParam(r, "file")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.svc.Preview(r.Context(), fileName))
}

type navigateRequest struct {
	Action string `json:"action"`
	Page   int    `json:"page"`
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	fileName, err := pathParam(r, "file")
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req navigateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	action := review.NavAction(req.Action)
	switch action {
	case review.NavPrev, review.NavNext, review.NavSelect:
	default:
		s.writeError(w, common.NewAppError("NAV_INVALID",
			fmt.Sprintf("unknown nav action %q", req.Action), common.ErrInvalidInput))
		return
	}
	view, err := s.svc.Navigate(r.Context(), fileName, action, req.Page)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.writeError(w, common.NewAppError("UPLOAD_INVALID",
			"could not parse multipart form", common.ErrInvalidInput))
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		s.writeError(w, common.NewAppError("UPLOAD_INVALID",
			"no files submitted", common.ErrInvalidInput))
		return
	}

	uploads := make([]review.Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			s.writeError(w, common.WrapError(err, "open uploaded file"))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			s.writeError(w, common.WrapError(err, "read uploaded file"))
			return
		}
		uploads = append(uploads, review.Upload{FileName: fh.Filename, Data: data})
	}

	result := s.svc.UploadAndProcess(r.Context(), uploads)
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	docType, filter := listFilters(r)
	data, err := s.exporter.ExportRecordsXLSX(r.Context(), docType, filter)
	if err != nil {
		s.writeError(w, err)
		return
	}
	fileName := fmt.Sprintf("extraction_records_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		s.logger.Error("failed to write export", "error", err)
	}
}

// listFilters reads the shared listing filters. Both default to "All" so an
// unfiltered request returns everything.
func listFilters(r *http.Request) (string, constants.ApprovalFilter) {
	docType := r.URL.Query().Get("doc_type")
	if docType == "" {
		docType = constants.DocTypeAll
	}
	filter := constants.ApprovalFilter(r.URL.Query().Get("approval"))
	switch filter {
	case constants.ApprovalApproved, constants.ApprovalNotApproved:
	default:
		filter = constants.ApprovalAll
	}
	return docType, filter
}

func pathParam(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	value, err := url.PathUnescape(raw)
	if err != nil || value == "" {
		return "", common.NewAppError("PARAM_INVALID",
			fmt.Sprintf("missing or malformed %s", name), common.ErrInvalidInput)
	}
	return value, nil
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return common.NewAppError("BODY_INVALID",
			fmt.Sprintf("malformed request body: %v", err), common.ErrInvalidInput)
	}
	return nil
}
