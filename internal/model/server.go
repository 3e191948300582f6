package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener a server accepts connections on.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a network server with an explicit lifecycle.
// Start blocks until the server stops; Stop drains in-flight requests.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}

// Pinger checks that a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
