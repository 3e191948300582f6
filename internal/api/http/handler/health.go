package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/juansean527/persona-service/internal/model"
)

type healthResponse struct {
	Status string `json:"status"`
}

// Health reports liveness. When a pinger is set the database is checked too.
func Health(pinger model.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := pinger.Ping(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
