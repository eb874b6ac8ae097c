// Package server exposes the review console as a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"docsrouter/internal/common"
	"docsrouter/internal/export"
	"docsrouter/internal/review"
)

// Server wires the console's HTTP surface.
type Server struct {
	svc            *review.Service
	exporter       *export.Service
	router         *chi.Mux
	logger         *slog.Logger
	maxUploadBytes int64
}

// New constructs the server with routes configured.
func New(svc *review.Service, exporter *export.Service, cfg common.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		svc:            svc,
		exporter:       exporter,
		router:         chi.NewRouter(),
		logger:         logger,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(RequestID)
	r.Use(RequestLogger(s.logger))

	r.Get("/healthz", s.handleHealth)

	r.Get("/doc-types", s.handleListDocTypes)
	r.Get("/doc-types/{name}", s.handleGetDocType)
	r.Get("/doc-types/{name}/prompts", s.handleGetPrompts)
	r.Put("/doc-types/{name}/prompts", s.handleSavePrompts)

	r.Post("/uploads", s.handleUpload)

	r.Get("/records", s.handleListRecords)
	r.Get("/records/{file}", s.handleRecordDetail)
	r.Post("/records/{file}/approve", s.handleApprove)
	r.Get("/records/{file}/preview", s.handlePreview)
	r.Post("/records/{file}/preview/nav", s.handleNavigate)

	r.Get("/export", s.handleExport)
}

// Handler returns the root handler for the HTTP server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError reports a failure inline for the calling control; the operation
// has already been aborted by the time this runs.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
