package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-page-builder/internal/logger"
	"github.com/rs/zerolog"
)

// withLogging writes one access log line per request through the request
// scoped logger, so the line carries the trace id.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(rw, r)

		level := zerolog.InfoLevel
		if rw.statusCode() >= http.StatusInternalServerError {
			level = zerolog.WarnLevel
		}
		logger.FromRequest(r).WithLevel(level).
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", rw.statusCode()).
			Int("size", rw.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
