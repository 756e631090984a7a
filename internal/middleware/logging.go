package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/smartgoals/internal/ctxkeys"
	"github.com/templui/smartgoals/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Paths to skip logging (static assets, scrapes)
var skipLoggingPaths = []string{
	"/assets/",
	"/favicon.ico",
	"/metrics",
}

// RequestLogging tags every request with an id, logs method, path, status and
// duration, and feeds the request metrics.
// Skips logging for paths defined in skipLoggingPaths
func RequestLogging(recorder metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			w.Header().Set(requestIDHeader, requestID)
			r = r.WithContext(ctxkeys.WithRequestID(r.Context(), requestID))

			for _, prefix := range skipLoggingPaths {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
				written:        false,
			}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			recorder.RecordRequest(r.Method, routeLabel(r.URL.Path), rw.statusCode, duration)
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"duration_ms", duration.Milliseconds(),
				"remote_addr", r.RemoteAddr,
				"request_id", requestID,
			)
		})
	}
}

// routeLabel collapses ids out of paths to keep metric cardinality bounded:
// "/edit/3f2c..." becomes "/edit".
func routeLabel(path string) string {
	if path == "/" {
		return "/"
	}
	trimmed := strings.TrimPrefix(path, "/")
	first, _, _ := strings.Cut(trimmed, "/")
	switch first {
	case "goals", "add", "edit", "delete", "toggle_complete", "checkin", "help":
		if first == "goals" && strings.HasPrefix(trimmed, "goals/export") {
			return "/goals/export"
		}
		return "/" + first
	default:
		return "other"
	}
}
