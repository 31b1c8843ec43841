package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"microsvc/internal/middleware"
)

// Config holds server configuration.
type Config struct {
	Port            int
	ShutdownTimeout time.Duration
}

// Routes registers a service's handlers on the mux.
type Routes func(mux *http.ServeMux)

// Server represents the HTTP server.
type Server struct {
	cfg        Config
	log        logrus.FieldLogger
	httpServer *http.Server
	mux        *http.ServeMux
}

// New creates a Server with every Routes applied to its mux. Requests
// pass through logging and panic recovery.
func New(cfg Config, log logrus.FieldLogger, routes ...Routes) *Server {
	mux := http.NewServeMux()
	for _, register := range routes {
		register(mux)
	}

	return &Server{
		cfg: cfg,
		log: log,
		mux: mux,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      middleware.Chain(mux, middleware.Logger(log), middleware.Recover(log)),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Handler returns the fully wrapped root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// HandleFunc registers an extra handler function on the mux.
func (s *Server) HandleFunc(pattern string, handler http.HandlerFunc) {
	s.mux.HandleFunc(pattern, handler)
}

// Start starts the HTTP server. This method blocks until the server is stopped.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Run starts the server and blocks until SIGINT, SIGTERM, ctx
// cancellation or a listener error, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)

	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	s.log.WithField("addr", s.httpServer.Addr).Info("server listening")

	select {
	case sig := <-sigChan:
		s.log.WithField("signal", sig.String()).Info("shutdown signal received")
	case <-ctx.Done():
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	return s.Shutdown(shutdownCtx)
}
