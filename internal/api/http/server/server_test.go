package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type securityLayerFunc func(protocol, addr string) (net.Listener, error)

func (f securityLayerFunc) Listen(protocol, addr string) (net.Listener, error) {
	return f(protocol, addr)
}

func TestHTTPServer_Address(t *testing.T) {
	s := NewHTTPServer(http.NotFoundHandler(), ":8000", time.Second)
	assert.Equal(t, ":8000", s.Address())
}

func TestHTTPServer_ServeAndStop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})
	srv := NewHTTPServer(handler, "127.0.0.1:0", time.Second)

	addrCh := make(chan string, 1)
	sec := securityLayerFunc(func(protocol, addr string) (net.Listener, error) {
		l, err := net.Listen(protocol, addr)
		if err == nil {
			addrCh <- l.Addr().String()
		}
		return l, err
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(sec) }()

	addr := <-addrCh
	transport := &http.Transport{DisableKeepAlives: true}
	client := &http.Client{Transport: transport, Timeout: time.Second}

	resp, err := client.Get("http://" + addr + "/ping")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "pong", string(body))
	transport.CloseIdleConnections()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))
	require.NoError(t, <-errCh)
}

func TestHTTPServer_Start_ListenError(t *testing.T) {
	srv := NewHTTPServer(http.NotFoundHandler(), ":0", time.Second)
	sec := securityLayerFunc(func(string, string) (net.Listener, error) {
		return nil, errors.New("port in use")
	})

	err := srv.Start(sec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestHTTPServer_Stop_NotStarted(t *testing.T) {
	srv := NewHTTPServer(http.NotFoundHandler(), ":0", time.Second)
	assert.NoError(t, srv.Stop(context.Background()))
}
