package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/dl-generator-api/metrics"
)

// MetricsMiddleware observes request latency by route template, so
// /requests/{request_id} is one series regardless of the id
func MetricsMiddleware(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := r.URL.Path
			if cr := mux.CurrentRoute(r); cr != nil {
				if tpl, err := cr.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			if route == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			startTime := time.Now()
			wrappedWriter := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrappedWriter, r)

			totalDuration := time.Since(startTime)
			m.RequestDuration.
				WithLabelValues(route, r.Method, strconv.Itoa(wrappedWriter.statusCode)).
				Observe(totalDuration.Seconds())

			if totalDuration > time.Second {
				zap.S().Warnw("Slow request detected",
					"method", r.Method,
					"route", route,
					"duration", totalDuration,
					"status", wrappedWriter.statusCode,
				)
			}
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
