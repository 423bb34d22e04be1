package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/thenoetrevino/clubhouse/internal/models"
)

// statusWriter captures the status code and bytes written to the response.
type statusWriter struct {
	http.ResponseWriter
	code, bytes int
}

var _ http.ResponseWriter = (*statusWriter)(nil)

func (w *statusWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

// Note this is generally only called when sending an error, so code
// defaults to 200.
func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// Flush implements http.Flusher.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// instrument logs every request and feeds the request metrics.
func instrument(logger *slog.Logger, metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			writer := &statusWriter{ResponseWriter: w, code: http.StatusOK}

			next.ServeHTTP(writer, r)

			elapsed := time.Since(start)
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			metrics.ObserveRequest(r.Method, route, writer.code, elapsed)
			logger.Debug("response",
				"method", r.Method,
				"uri", r.RequestURI,
				"status", writer.code,
				"bytes", humanize.Bytes(uint64(writer.bytes)),
				"elapsed", elapsed)
		})
	}
}

// requireDatabase answers 503 while the session has no database open.
func (s *Server) requireDatabase(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.app.DatabasePath() == "" {
			s.errorResponse(w, r, models.ErrNoDatabase)
			return
		}
		next.ServeHTTP(w, r)
	})
}
