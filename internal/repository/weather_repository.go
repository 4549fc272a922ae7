package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/fakhrymubarak/clima-weather/internal/config"
	"github.com/fakhrymubarak/clima-weather/internal/mapper"
	"github.com/fakhrymubarak/clima-weather/internal/metrics"
	"github.com/fakhrymubarak/clima-weather/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// units is sent with every request; temperatures come back in Celsius.
const units = "metric"

// maxErrorBody bounds how much of a non-2xx body is read for its message.
const maxErrorBody = 4 << 10

// maxBody bounds a successful response body.
const maxBody = 1 << 20

var errBodyTooLarge = fmt.Errorf("response body exceeds %d bytes", maxBody)

// WeatherRepository fetches current weather from the provider.
type WeatherRepository interface {
	Fetch(ctx context.Context, query model.WeatherQuery) (*model.WeatherRecord, error)
}

// weatherRepository implements WeatherRepository against OpenWeatherMap.
// It holds no per-request state.
type weatherRepository struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// NewWeatherRepository creates a repository for the given endpoint and
// credential. An empty key or unusable URL is a configuration error.
func NewWeatherRepository(apiURL, apiKey string, httpClient ...*http.Client) (WeatherRepository, error) {
	if apiKey == "" {
		return nil, model.NewWeatherError(model.ErrConfiguration, errors.New("API key missing"))
	}
	base, err := url.Parse(apiURL)
	if err != nil {
		return nil, model.NewWeatherError(model.ErrConfiguration, fmt.Errorf("invalid API URL: %w", err))
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, model.NewWeatherError(model.ErrConfiguration, fmt.Errorf("invalid API URL %q", apiURL))
	}

	client := http.DefaultClient
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &weatherRepository{
		baseURL:    base,
		apiKey:     apiKey,
		httpClient: client,
		logger:     config.GetLogger(),
	}, nil
}

// Fetch issues exactly one GET for query and maps the answer to a record.
func (r *weatherRepository) Fetch(ctx context.Context, query model.WeatherQuery) (record *model.WeatherRecord, err error) {
	requestID := uuid.NewString()
	kind := query.Kind().String()
	start := time.Now()
	r.logger.Debugw("Fetching weather", "request_id", requestID, "query", query.String())

	defer func() {
		metrics.FetchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
		metrics.FetchTotal.WithLabelValues(kind, metrics.Outcome(err)).Inc()
		if err != nil {
			r.logger.Warnw("Weather fetch failed", "request_id", requestID, "query", query.String(), "error", err)
			return
		}
		r.logger.Infow("Weather fetched", "request_id", requestID, "city", record.CityName, "condition_id", record.ConditionID)
	}()

	reqURL, err := r.buildURL(query)
	if err != nil {
		return nil, model.NewWeatherError(model.ErrConfiguration, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, model.NewWeatherError(model.ErrConfiguration, err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, model.NewWeatherError(model.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, model.NewWeatherError(model.ErrAPI, readAPIError(resp))
	}

	body, err := readBody(resp.Body)
	if errors.Is(err, errBodyTooLarge) {
		return nil, model.NewWeatherError(model.ErrDecode, err)
	}
	if err != nil {
		return nil, model.NewWeatherError(model.ErrNetwork, err)
	}
	raw, err := model.DecodeRawWeatherResponse(bytes.NewReader(body))
	if err != nil {
		return nil, model.NewWeatherError(model.ErrDecode, err)
	}
	return mapper.ToRecord(raw)
}

// buildURL returns the request URL, with the base URL's own query replaced.
func (r *weatherRepository) buildURL(query model.WeatherQuery) (string, error) {
	values, err := queryParams(query, r.apiKey)
	if err != nil {
		return "", err
	}
	u := *r.baseURL
	u.RawQuery = values.Encode()
	return u.String(), nil
}

func queryParams(query model.WeatherQuery, apiKey string) (url.Values, error) {
	params := map[string]string{"units": units, "appid": apiKey}

	switch query.Kind() {
	case model.QueryByCity:
		city, _ := query.City()
		if city == "" {
			return nil, errors.New("empty city name")
		}
		params["q"] = city
	case model.QueryByCoordinate:
		lat, lon, _ := query.Coordinate()
		if err := validateCoordinate(lat, lon); err != nil {
			return nil, err
		}
		params["lat"] = model.FormatCoordinate(lat)
		params["lon"] = model.FormatCoordinate(lon)
	default:
		return nil, fmt.Errorf("unsupported query kind %d", query.Kind())
	}

	values := make(url.Values, len(params))
	for key, value := range params {
		if !utf8.ValidString(value) {
			return nil, fmt.Errorf("cannot encode %s: invalid UTF-8", key)
		}
		values.Set(key, value)
	}
	return values, nil
}

func validateCoordinate(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range", lat)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %v out of range", lon)
	}
	return nil
}

// readBody reads the whole body. Failures here happen on the wire, not in the payload.
func readBody(body io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(body, maxBody+1))
	if err != nil {
		return nil, err
	}
	if len(b) > maxBody {
		return nil, errBodyTooLarge
	}
	return b, nil
}

func readAPIError(resp *http.Response) *model.APIError {
	apiErr := &model.APIError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}
	var payload model.APIErrorBody
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Message = payload.Message
	}
	return apiErr
}
