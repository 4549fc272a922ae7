package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fakhrymubarak/clima-weather/internal/config"
	"github.com/fakhrymubarak/clima-weather/internal/mapper"
	"github.com/fakhrymubarak/clima-weather/internal/model"
	"github.com/fakhrymubarak/clima-weather/internal/service"
)

type WeatherHandler struct {
	WeatherService service.WeatherServiceInterface
}

func NewWeatherHandler(svc service.WeatherServiceInterface) *WeatherHandler {
	return &WeatherHandler{
		WeatherService: svc,
	}
}

func (h *WeatherHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		config.GetLogger().Errorw("could not encode json", "error", err)
	}
}

func (h *WeatherHandler) writeError(w http.ResponseWriter, statusCode int, errMsg string) {
	h.writeJSONResponse(w, statusCode, model.Response{
		Error:   &errMsg,
		Message: "Error",
	})
}

// HandleWeather serves GET /weather?city=<name> or GET /weather?lat=<lat>&lon=<lon>.
func (h *WeatherHandler) HandleWeather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	query, errMsg := parseQuery(r)
	if errMsg != "" {
		h.writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	record, err := h.WeatherService.GetWeather(r.Context(), query)
	if err != nil {
		status, msg := errorStatus(err)
		h.writeError(w, status, msg)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    mapper.ToView(*record),
		Message: "Success",
	})
}

// parseQuery reads a city (trimmed; "location" is accepted as an alias) or a
// lat/lon pair. It returns a client-facing message when neither is usable.
func parseQuery(r *http.Request) (model.WeatherQuery, string) {
	values := r.URL.Query()
	city := strings.TrimSpace(values.Get("city"))
	if city == "" {
		city = strings.TrimSpace(values.Get("location"))
	}
	latStr, lonStr := strings.TrimSpace(values.Get("lat")), strings.TrimSpace(values.Get("lon"))

	switch {
	case city != "" && (latStr != "" || lonStr != ""):
		return model.WeatherQuery{}, "Use either 'city' or 'lat'/'lon', not both"
	case city != "":
		return model.CityQuery(city), ""
	case latStr == "" && lonStr == "":
		return model.WeatherQuery{}, "Missing 'city' or 'lat'/'lon' query parameters"
	case latStr == "" || lonStr == "":
		return model.WeatherQuery{}, "Both 'lat' and 'lon' are required"
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return model.WeatherQuery{}, "Invalid 'lat' query parameter"
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return model.WeatherQuery{}, "Invalid 'lon' query parameter"
	}
	return model.CoordinateQuery(lat, lon), ""
}

func errorStatus(err error) (int, string) {
	var apiErr *model.APIError
	switch {
	case errors.Is(err, model.ErrConfiguration):
		return http.StatusBadRequest, "Invalid weather query"
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound:
		return http.StatusNotFound, "Location not found"
	case errors.Is(err, model.ErrAPI), errors.Is(err, model.ErrNetwork):
		return http.StatusBadGateway, "Failed to fetch weather data"
	case errors.Is(err, model.ErrDecode), errors.Is(err, model.ErrMapping):
		return http.StatusBadGateway, "Unexpected weather data"
	default:
		return http.StatusInternalServerError, "Failed to fetch weather data"
	}
}
