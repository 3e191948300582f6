package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/juansean527/persona-service/internal/logger"
	"github.com/juansean527/persona-service/internal/model"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps domain errors to HTTP statuses. Unknown errors are logged
// and reported as 500 without details.
func WriteError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Persona not found"})
	case errors.Is(err, model.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Detail: "Email already registered"})
	case errors.Is(err, model.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	default:
		log.ErrorContext(r.Context(), "HTTP handler: request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal server error"})
	}
}

// decodeJSON reads a single JSON document from the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return invalid("invalid request body: %v", err)
	}
	return nil
}
