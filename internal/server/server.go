// Package server implements the HTTP front-end listing known hosts and
// triggering wake requests by name.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fgeck/gowol-homelab/internal/models"
	"github.com/fgeck/gowol-homelab/internal/services/hosts"
	"github.com/fgeck/gowol-homelab/internal/services/wake"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// DefaultListen is the listen address used when none is configured.
const DefaultListen = ":8081"

const shutdownTimeout = 5 * time.Second

// Server is the HTTP front-end.
type Server struct {
	addr    string
	hosts   *hosts.Directory
	wakeSvc wake.Service
	logger  zerolog.Logger
	server  *http.Server
}

// New creates a new HTTP front-end.
func New(cfg models.ServerConfig, dir *hosts.Directory, wakeSvc wake.Service, logger zerolog.Logger) *Server {
	addr := cfg.Listen
	if addr == "" {
		addr = DefaultListen
	}
	return &Server{
		addr:    addr,
		hosts:   dir,
		wakeSvc: wakeSvc,
		logger:  logger,
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /{name}", s.handleWake)

	return s.withRequestLog(mux)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info().Str("addr", s.addr).Int("hosts", s.hosts.Len()).Msg("starting HTTP server")

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("stopping HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, indexTemplate, indexPage{Names: s.hosts.Names()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleWake(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	logger := zerolog.Ctx(r.Context())

	mac, ok := s.hosts.Lookup(name)
	if !ok {
		logger.Warn().Str("host", name).Msg("wake requested for unknown host")
		http.Error(w, fmt.Sprintf("unknown host %q", name), http.StatusNotFound)
		return
	}

	outcomes, err := s.wakeSvc.Wake(r.Context(), []string{mac})
	if err != nil {
		logger.Error().Err(err).Str("host", name).Msg("wake failed")
		http.Error(w, "wake failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(outcomes) != 1 || outcomes[0].Rejected() {
		var reason error
		if len(outcomes) == 1 {
			reason = outcomes[0].Reason
		}
		logger.Error().Err(reason).Str("host", name).Msg("host has an invalid MAC address configured")
		http.Error(w, fmt.Sprintf("host %q has an invalid MAC address configured", name), http.StatusInternalServerError)
		return
	}

	outcome := outcomes[0]
	logger.Info().Str("host", name).Str("mac", outcome.MAC).Msg("wake request sent")

	s.render(w, r, http.StatusOK, wakeTemplate, wakePage{
		Name:          name,
		MAC:           outcome.MAC,
		FailedTargets: len(outcome.FailedTargets()),
		TotalTargets:  len(outcome.Targets),
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, tmpl renderer, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to render page")
	}
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()
		logger := s.logger.With().Str("request_id", requestID).Logger()

		w.Header().Set("X-Request-ID", requestID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(logger.WithContext(r.Context())))

		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}
