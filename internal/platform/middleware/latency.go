package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"veridev/internal/platform/metrics"
)

// Latency observes request duration against the platform histogram. The chi
// route pattern is used as the path label so ids do not explode cardinality.
func Latency(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			if m == nil {
				return
			}
			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}
			m.ObserveRequest(r.Method, path, start)
		})
	}
}
