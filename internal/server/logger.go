package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type statsKey struct{}

// conversionStats is filled by the convert handler and reported once the
// response has been written.
type conversionStats struct {
	format   string
	features int
}

// RequestLogger logs every request together with the conversion it ran:
// input format, feature count, content type and streamed body size.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		stats := &conversionStats{features: -1}
		cw := &countingWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(cw, r.WithContext(context.WithValue(r.Context(), statsKey{}, stats)))

		var event *zerolog.Event
		if cw.status >= http.StatusInternalServerError {
			event = log.Warn()
		} else {
			event = log.Info()
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", cw.status).
			Str("content_type", cw.Header().Get("Content-Type")).
			Int64("bytes", cw.written).
			Str("ip", r.RemoteAddr).
			Dur("duration", time.Since(start))

		if stats.features >= 0 {
			event = event.Str("format", stats.format).Int("features", stats.features)
		}

		event.Msg("Request processed")
	})
}

// recordConversion attaches the outcome of a conversion to the request log.
func recordConversion(r *http.Request, format string, features int) {
	if stats, ok := r.Context().Value(statsKey{}).(*conversionStats); ok {
		stats.format = format
		stats.features = features
	}
}

// countingWriter remembers the status code and counts body bytes as the
// GeoJSON encoder streams through it.
type countingWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (w *countingWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.written += int64(n)
	return n, err
}
