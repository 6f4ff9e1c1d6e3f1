// Package api serves the diagnostics HTTP surface: health probes, the
// Prometheus exposition endpoint and a read-only session listing.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/avencourt/uastack/internal/logger"
	"github.com/avencourt/uastack/internal/service/session"
	"github.com/avencourt/uastack/pkg/metrics"
)

// NewRouter builds the diagnostics router.
//
// Routes:
//   - GET /health           - liveness probe
//   - GET /metrics          - Prometheus metrics
//   - GET /api/v1/sessions  - live session listing
func NewRouter(sessions *session.Manager) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", metrics.Handler().ServeHTTP)
	r.Get("/api/v1/sessions", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, sessions.Snapshot())
	})

	return r
}

// Server wraps the diagnostics HTTP listener.
type Server struct {
	srv *http.Server
}

// NewServer binds the router to the given address.
func NewServer(listen string, sessions *session.Manager) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              listen,
			Handler:           NewRouter(sessions),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves until Shutdown; it returns http.ErrServerClosed on a
// clean stop.
func (s *Server) Start() error {
	logger.Info("Diagnostics API listening", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Writing diagnostics response", "error", err)
	}
}

// requestLogger logs one line per request through the internal logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", float64(time.Since(start).Microseconds())/1000,
		)
	})
}
