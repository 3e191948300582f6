package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/juansean527/persona-service/internal/model"
)

var _ model.Server = (*HTTPServer)(nil)

// HTTPServer wraps http.Server with address and lifecycle methods.
type HTTPServer struct {
	server *http.Server
}

func NewHTTPServer(handler http.Handler, addr string, readHeaderTimeout time.Duration) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// Start serves on the configured address until Stop is called.
func (s *HTTPServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve http: %w", err)
	}

	return nil
}

// Stop stops accepting connections and waits for active requests until ctx
// expires.
func (s *HTTPServer) Stop(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}
	return nil
}

func (s *HTTPServer) Address() string {
	return s.server.Addr
}
