package integrationtest

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/fakhrymubarak/clima-weather/internal/config"
	"github.com/fakhrymubarak/clima-weather/internal/handler"
	"github.com/fakhrymubarak/clima-weather/internal/middleware"
	"github.com/fakhrymubarak/clima-weather/internal/service"
)

const testAPIKey = "test_api_key"

// mockOWMApi imitates the OpenWeatherMap current-weather endpoint.
func mockOWMApi() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("appid") != testAPIKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
			return
		}
		if q.Get("units") != "metric" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"cod":"400","message":"units must be metric"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch {
		case q.Get("q") == "London":
			_, _ = w.Write([]byte(`{"coord":{"lon":-0.1257,"lat":51.5085},"weather":[{"id":300,"main":"Drizzle","description":"light intensity drizzle","icon":"09d"}],"main":{"temp":15.24,"humidity":81},"name":"London","cod":200}`))
		case q.Get("q") == "Mars":
			_, _ = w.Write([]byte(`{"coord":{"lon":0,"lat":0},"weather":[{"id":999,"main":"Dust"}],"main":{"temp":-60},"name":"Mars","cod":200}`))
		case q.Get("q") == "Void":
			_, _ = w.Write([]byte(`{"coord":{"lon":0,"lat":0},"weather":[],"main":{"temp":1},"name":"Void","cod":200}`))
		case q.Get("lat") != "" && q.Get("lon") != "":
			_, _ = fmt.Fprintf(w, `{"coord":{"lon":%s,"lat":%s},"weather":[{"id":801,"main":"Clouds"}],"main":{"temp":21.96},"name":"Berlin","cod":200}`, q.Get("lon"), q.Get("lat"))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
		}
	}))
}

func newTestServer(svc service.WeatherServiceInterface) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/weather", handler.NewWeatherHandler(svc).HandleWeather)
	return httptest.NewServer(middleware.Observe(config.GetLogger(), mux, "/weather"))
}
