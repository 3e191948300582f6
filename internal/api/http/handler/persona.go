package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/juansean527/persona-service/internal/logger"
	"github.com/juansean527/persona-service/internal/model"
)

// PersonaService is the subset of persona operations the handler needs.
type PersonaService interface {
	Create(ctx context.Context, params model.CreatePersonaParams) (model.Persona, error)
	List(ctx context.Context, skip, limit int) ([]model.Persona, error)
	Get(ctx context.Context, id int64) (model.Persona, error)
	Update(ctx context.Context, id int64, patch model.PersonaPatch) (model.Persona, error)
	Delete(ctx context.Context, id int64) error
}

type personaResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	BirthDate *string   `json:"birth_date"`
	IsActive  bool      `json:"is_active"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func newPersonaResponse(p model.Persona) personaResponse {
	resp := personaResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		IsActive:  p.IsActive,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
	if p.BirthDate != nil {
		d := p.BirthDate.Format(dateLayout)
		resp.BirthDate = &d
	}
	return resp
}

func newPersonaResponses(personas []model.Persona) []personaResponse {
	out := make([]personaResponse, 0, len(personas))
	for _, p := range personas {
		out = append(out, newPersonaResponse(p))
	}
	return out
}

// Persona serves CRUD endpoints for personas.
type Persona struct {
	service PersonaService
	logger  *logger.Logger
}

func NewPersona(service PersonaService, logger *logger.Logger) *Persona {
	return &Persona{service: service, logger: logger}
}

// Register mounts the routes relative to the personas prefix.
func (h *Persona) Register(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *Persona) Create(w http.ResponseWriter, r *http.Request) {
	var req createPersonaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	persona, err := h.service.Create(r.Context(), req.params())
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, newPersonaResponse(persona))
}

func (h *Persona) List(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	limit, err := queryInt(r, "limit", model.DefaultListLimit)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	personas, err := h.service.List(r.Context(), skip, limit)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newPersonaResponses(personas))
}

func (h *Persona) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	persona, err := h.service.Get(r.Context(), id)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newPersonaResponse(persona))
}

func (h *Persona) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	var req updatePersonaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	persona, err := h.service.Update(r.Context(), id, req.patch())
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newPersonaResponse(persona))
}

func (h *Persona) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, invalid("id must be an integer")
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid("%s must be an integer", name)
	}
	return v, nil
}
