package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/juansean527/persona-service/internal/logger"
	"github.com/juansean527/persona-service/internal/model"
)

// ReportService computes read-only views over all personas.
type ReportService interface {
	DomainFrequency(ctx context.Context) (map[string]int64, error)
	AgeStatistics(ctx context.Context) (model.AgeStats, error)
	Search(ctx context.Context, term string) ([]model.Persona, error)
}

type ageStatsResponse struct {
	Average *float64 `json:"average"`
	Min     *int     `json:"min"`
	Max     *int     `json:"max"`
}

// Report serves statistics and search endpoints.
type Report struct {
	service ReportService
	logger  *logger.Logger
}

func NewReport(service ReportService, logger *logger.Logger) *Report {
	return &Report{service: service, logger: logger}
}

func (h *Report) Register(r chi.Router) {
	r.Get("/reports/domains", h.Domains)
	r.Get("/reports/ages", h.Ages)
	r.Get("/search", h.Search)
}

func (h *Report) Domains(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.DomainFrequency(r.Context())
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	if counts == nil {
		counts = map[string]int64{}
	}

	writeJSON(w, http.StatusOK, counts)
}

func (h *Report) Ages(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.AgeStatistics(r.Context())
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, ageStatsResponse(stats))
}

func (h *Report) Search(w http.ResponseWriter, r *http.Request) {
	personas, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newPersonaResponses(personas))
}
