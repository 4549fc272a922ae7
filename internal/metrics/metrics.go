package metrics

import (
	"errors"

	"github.com/fakhrymubarak/clima-weather/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FetchTotal counts provider fetches by query kind and outcome.
var FetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "clima_weather_fetch_total",
	Help: "Total number of weather fetches by query kind and outcome.",
}, []string{"query", "outcome"})

// FetchDuration observes how long a fetch took, construction through mapping.
var FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "clima_weather_fetch_duration_seconds",
	Help:    "Duration of weather fetches by query kind.",
	Buckets: prometheus.DefBuckets,
}, []string{"query"})

// Outcome returns the outcome label for a fetch result.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, model.ErrConfiguration):
		return "configuration_error"
	case errors.Is(err, model.ErrNetwork):
		return "network_error"
	case errors.Is(err, model.ErrAPI):
		return "api_error"
	case errors.Is(err, model.ErrDecode):
		return "decode_error"
	case errors.Is(err, model.ErrMapping):
		return "mapping_error"
	default:
		return "error"
	}
}

// HTTPRequestsTotal counts served HTTP requests by path, method and status code.
var HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "clima_weather_http_requests_total",
	Help: "Total number of HTTP requests by path, method and code.",
}, []string{"path", "method", "code"})
