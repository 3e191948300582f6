package health

import (
	"context"
	"time"

	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/juansean527/persona-service/internal/logger"
	"github.com/juansean527/persona-service/internal/model"
)

const pingTimeout = 2 * time.Second

// Health reports SERVING while the database answers pings.
type Health struct {
	grpc_health_v1.UnimplementedHealthServer

	pinger model.Pinger
	logger *logger.Logger
}

func New(pinger model.Pinger, logger *logger.Logger) *Health {
	return &Health{
		pinger: pinger,
		logger: logger,
	}
}

func (h *Health) Check(ctx context.Context, _ *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Warn("Health: database ping failed", "error", err)
		return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_NOT_SERVING}, nil
	}

	return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING}, nil
}
