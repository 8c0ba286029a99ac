package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/felixgeelhaar/triage/pkg/observability"
)

// withRequestContext stamps every request with a request ID and correlation
// ID, echoes the request ID back to the caller, and logs the outcome.
func (s *Server) withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ctx := observability.WithRequestID(r.Context(), r.Header.Get("X-Request-ID"))
		ctx = observability.WithCorrelationID(ctx, r.Header.Get("X-Correlation-ID"))
		w.Header().Set("X-Request-ID", observability.RequestIDFromContext(ctx))

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r.WithContext(ctx))

		duration := time.Since(start)
		tags := []observability.Tag{
			observability.T("method", r.Method),
			observability.T("path", r.URL.Path),
			observability.T("status", strconv.Itoa(recorder.status)),
		}
		s.metrics.Counter(observability.MetricHTTPRequests, 1, tags...)
		s.metrics.Timing(observability.MetricHTTPRequestDuration, duration, tags...)

		s.logger.InfoContext(ctx, "request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration_ms", duration.Milliseconds(),
		)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
