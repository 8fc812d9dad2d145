package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/c360/lexigraph/errors"
)

const shutdownTimeout = 10 * time.Second

// Server hosts the gateway on its own listener with graceful shutdown
type Server struct {
	port    int
	gateway *Gateway
	server  *http.Server
	mu      sync.Mutex // protects server field
}

// NewServer creates the gateway HTTP server
func NewServer(port int, gw *Gateway) *Server {
	if port == 0 {
		port = 8000
	}

	return &Server{
		port:    port,
		gateway: gw,
	}
}

// Start starts the gateway HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	s.mu.Lock()

	if s.server != nil {
		s.mu.Unlock()
		return errors.WrapInvalid(errors.ErrAlreadyStarted,
			"Server", "Start", "cannot start server that is already running")
	}

	if s.gateway == nil {
		s.mu.Unlock()
		return errors.WrapFatal(errors.ErrMissingConfig,
			"Server", "Start", "gateway not provided")
	}

	mux := http.NewServeMux()
	s.gateway.RegisterHandlers(mux)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		// No WriteTimeout: SSE responses are long-lived by design
	}
	srv := s.server
	s.mu.Unlock()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.WrapFatal(err, "Server", "Start",
			fmt.Sprintf("failed to start server on port %d", s.port))
	}

	return nil
}

// Stop gracefully shuts down the server, letting in-flight streams finish
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	err := s.server.Shutdown(shutdownCtx)
	s.server = nil
	if err != nil {
		return errors.WrapTransient(err, "Server", "Stop",
			"failed to shut down HTTP server")
	}
	return nil
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}
