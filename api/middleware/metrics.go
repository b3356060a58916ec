package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/metrics"
)

// Metrics records per-route duration and outcome counters.
func Metrics(commands *metrics.CommandMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if commands == nil {
				next.ServeHTTP(w, r)
				return
			}

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r)

			op := r.Method + " " + routeLabel(r)
			commands.ObserveDuration(op, time.Since(start))
			if rec.status >= http.StatusInternalServerError {
				commands.IncFailure(op)
			} else {
				commands.IncSuccess(op)
			}
		})
	}
}

// routeLabel uses the chi pattern so ids do not explode label cardinality.
func routeLabel(r *http.Request) string {
	if ctx := chi.RouteContext(r.Context()); ctx != nil {
		if pattern := ctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
