// Package api exposes the ranking operations over HTTP.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixgeelhaar/triage/pkg/observability"
)

// Server is the HTTP API server for the ranking service.
type Server struct {
	mux     *http.ServeMux
	server  *http.Server
	logger  *slog.Logger
	metrics observability.Metrics
	handler *RankingHandler
	health  *observability.HealthRegistry
}

// ServerConfig holds the listen address and connection timeouts.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerConfig returns the defaults used when no configuration is supplied.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "0.0.0.0:8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates a new ranking API server.
func NewServer(cfg ServerConfig, handler *RankingHandler, health *observability.HealthRegistry, metrics observability.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}

	mux := http.NewServeMux()

	s := &Server{
		mux:     mux,
		logger:  logger,
		metrics: metrics,
		handler: handler,
		health:  health,
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withRequestContext(s.mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// registerRoutes wires the ranking endpoints and the health check.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("POST /api/v1/tasks/analyze", s.handler.AnalyzeTasks)
	s.mux.HandleFunc("POST /api/v1/tasks/suggest", s.handler.SuggestTasks)
}

// handleHealth reports the aggregated health of all registered components.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := observability.HealthStatusHealthy
	var components map[string]observability.HealthCheckResult
	if s.health != nil {
		components = s.health.Check(r.Context())
		status = observability.Overall(components)
	}

	code := http.StatusOK
	if status == observability.HealthStatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{
		"status":     string(status),
		"time":       time.Now().UTC().Format(time.RFC3339),
		"components": components,
	})
}

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	s.logger.Info("starting ranking API server",
		"addr", s.server.Addr,
	)
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down ranking API server")
	return s.server.Shutdown(ctx)
}

// writeJSON encodes data as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already written; all that is left is to log.
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// writeError sends a JSON error body with a descriptive message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}
