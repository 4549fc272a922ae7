package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fakhrymubarak/clima-weather/internal/metrics"
	"go.uber.org/zap"
)

// responseWriter captures the status code written by the wrapped handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// otherRoute is the path label for requests outside the known routes.
const otherRoute = "other"

// Observe records every request in metrics.HTTPRequestsTotal and logs it.
// Only paths listed in routes are used as labels; the rest share otherRoute.
func Observe(logger *zap.SugaredLogger, next http.Handler, routes ...string) http.Handler {
	known := make(map[string]struct{}, len(routes))
	for _, route := range routes {
		known[route] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		route := otherRoute
		if _, ok := known[r.URL.Path]; ok {
			route = r.URL.Path
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, methodLabel(r.Method), strconv.Itoa(rw.statusCode)).Inc()
		logger.Infow("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration", time.Since(start),
		)
	})
}

// methodLabel keeps the method label to the standard verbs.
func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace:
		return method
	default:
		return otherRoute
	}
}
