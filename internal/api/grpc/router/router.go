package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/juansean527/persona-service/internal/api/grpc/health"
	"github.com/juansean527/persona-service/internal/api/grpc/middleware"
	"github.com/juansean527/persona-service/internal/logger"
	"github.com/juansean527/persona-service/internal/model"
)

// Router builds the admin gRPC server.
type Router struct {
	pinger model.Pinger
	logger *logger.Logger
}

func New(pinger model.Pinger, logger *logger.Logger) *Router {
	return &Router{
		pinger: pinger,
		logger: logger,
	}
}

// Register creates a gRPC server with panic recovery and request logging,
// the standard health service and server reflection.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(r.recover)),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recovery.WithRecoveryHandlerContext(r.recover)),
		),
	)

	grpc_health_v1.RegisterHealthServer(s, health.New(r.pinger, r.logger))
	reflection.Register(s)

	return s
}

func (r *Router) recover(_ context.Context, p any) error {
	r.logger.Error("gRPC handler panicked", "panic", p)
	return status.Error(codes.Internal, "internal server error")
}
