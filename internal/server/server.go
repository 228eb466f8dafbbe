// Package server exposes statement analysis over HTTP. Each upload is
// parsed independently; the server keeps no parser state between requests.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"

	"github.com/kudastat/kudastat/internal/analysis"
	"github.com/kudastat/kudastat/internal/config"
)

const shutdownTimeout = 10 * time.Second

const (
	// limiterIdle is how long a client's limiter is kept after its last
	// request.
	limiterIdle    = 10 * time.Minute
	limiterCleanup = time.Minute
)

// Server is the HTTP API.
type Server struct {
	svc    *analysis.Service
	cfg    config.Config
	logger *slog.Logger
	// limiters holds one *rate.Limiter per client address.
	limiters *cache.Cache
}

// New creates a Server. cfg is copied.
func New(cfg *config.Config, svc *analysis.Service, logger *slog.Logger) *Server {
	return &Server{
		svc:      svc,
		cfg:      *cfg,
		logger:   logger.With("component", "server"),
		limiters: cache.New(limiterIdle, limiterCleanup),
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.contextualLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/statements", func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/", s.handleAnalyze)
		r.Post("/export", s.handleExport)
	})

	return r
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
