package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/juansean527/persona-service/internal/logger"
)

// PopulationService generates and removes personas in bulk.
type PopulationService interface {
	Populate(ctx context.Context, count int) (int64, error)
	Replace(ctx context.Context, count int) (int64, error)
	Reset(ctx context.Context, restartIDs bool) (int64, error)
}

type populateResponse struct {
	Message      string `json:"message"`
	CreatedCount int64  `json:"created_count"`
}

type resetResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deleted_count"`
}

// Population serves bulk generation and reset endpoints.
type Population struct {
	service PopulationService
	logger  *logger.Logger
}

func NewPopulation(service PopulationService, logger *logger.Logger) *Population {
	return &Population{service: service, logger: logger}
}

func (h *Population) Register(r chi.Router) {
	r.Delete("/reset", h.Reset)
	r.Post("/populate", h.Populate)
	r.Post("/populate/replace", h.Replace)
}

func (h *Population) Reset(w http.ResponseWriter, r *http.Request) {
	restartIDs := false
	if raw := r.URL.Query().Get("restart_ids"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			WriteError(w, r, h.logger, invalid("restart_ids must be a boolean"))
			return
		}
		restartIDs = v
	}

	deleted, err := h.service.Reset(r.Context(), restartIDs)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, resetResponse{
		Message:      "Database cleared, all personas were removed.",
		DeletedCount: deleted,
	})
}

func (h *Population) Populate(w http.ResponseWriter, r *http.Request) {
	h.populate(w, r, h.service.Populate)
}

func (h *Population) Replace(w http.ResponseWriter, r *http.Request) {
	h.populate(w, r, h.service.Replace)
}

func (h *Population) populate(w http.ResponseWriter, r *http.Request, run func(context.Context, int) (int64, error)) {
	var req populateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	created, err := run(r.Context(), req.Count)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, populateResponse{
		Message:      fmt.Sprintf("%d personas created successfully", created),
		CreatedCount: created,
	})
}
