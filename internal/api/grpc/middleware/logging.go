package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/juansean527/persona-service/internal/logger"
)

// Logging is a unary interceptor that logs one line per gRPC call.
type Logging struct {
	logger *logger.Logger
}

func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC logs method, peer, duration and status code. Failed calls are
// logged at error level with the error attached.
func (l *Logging) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	code := status.Code(err)
	if err != nil {
		if _, ok := status.FromError(err); !ok {
			code = codes.Internal
		}
	}

	attrs := []any{
		"method", info.FullMethod,
		"duration_ms", time.Since(start).Milliseconds(),
		"status", code.String(),
	}
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		attrs = append(attrs, "peer", p.Addr.String())
	}

	if err != nil {
		l.logger.Error("gRPC request failed", append(attrs, "error", err)...)
		return resp, err
	}

	l.logger.Debug("gRPC request completed", attrs...)

	return resp, nil
}
