package http

import (
	"net/http"
	"time"

	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/metrics"
)

func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()

		uri := r.RequestURI
		method := r.Method

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		duration := time.Since(start)

		statusClass := metrics.StatusClass(lw.status)
		h.metrics.RequestsTotal.WithLabelValues(method, statusClass).Inc()
		h.metrics.RequestDuration.WithLabelValues(method, statusClass).Observe(duration.Seconds())

		log.Info().
			Str("uri", uri).
			Str("method", method).
			Int("status", lw.status).
			Dur("duration", duration).
			Int("size", lw.size).
			Send()
	})
}
