package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/juansean527/persona-service/internal/logger"
	"github.com/juansean527/persona-service/internal/model"
)

// ExportService writes and reads persona snapshots in object storage.
type ExportService interface {
	Create(ctx context.Context) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

type exportResponse struct {
	Name string `json:"name"`
}

// Export serves snapshot endpoints. A nil service answers 503.
type Export struct {
	service ExportService
	logger  *logger.Logger
}

func NewExport(service ExportService, logger *logger.Logger) *Export {
	return &Export{service: service, logger: logger}
}

func (h *Export) Register(r chi.Router) {
	r.Post("/exports", h.Create)
	r.Get("/exports/{name}", h.Download)
}

func (h *Export) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Detail: "exports are disabled"})
		return
	}

	name, err := h.service.Create(r.Context())
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, exportResponse{Name: name})
}

func (h *Export) Download(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Detail: "exports are disabled"})
		return
	}

	body, err := h.service.Open(r.Context(), chi.URLParam(r, "name"))
	if errors.Is(err, model.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Export not found"})
		return
	}
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.WarnContext(r.Context(), "HTTP handler: failed to stream export", "error", err)
	}
}
