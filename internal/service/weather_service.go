package service

import (
	"context"
	"errors"
	"sync"

	"github.com/fakhrymubarak/clima-weather/internal/model"
	"github.com/fakhrymubarak/clima-weather/internal/repository"
)

var ErrWeatherService = errors.New("weather service error")

// WeatherServiceInterface is what the HTTP layer needs from the service.
type WeatherServiceInterface interface {
	GetWeather(ctx context.Context, query model.WeatherQuery) (*model.WeatherRecord, error)
}

// Result is the outcome of one fetch: exactly one of Record and Err is set.
type Result struct {
	Record *model.WeatherRecord
	Err    error
}

// Callback receives the outcome of one fetch. It runs on a goroutine owned by
// the service; callers marshal onto their own context if they need to.
type Callback func(record *model.WeatherRecord, err error)

// WeatherService runs fetches against a repository and reports every outcome
// to an optional observer. The observer runs on its own goroutine so a slow
// delegate never delays the caller.
type WeatherService struct {
	WeatherRepo repository.WeatherRepository
	Observer    Delegate

	pending sync.WaitGroup
}

// NewWeatherService creates a service. Multiple observers are fanned out.
func NewWeatherService(repo repository.WeatherRepository, observers ...Delegate) *WeatherService {
	s := &WeatherService{WeatherRepo: repo}
	switch len(observers) {
	case 0:
	case 1:
		s.Observer = observers[0]
	default:
		s.Observer = MultiDelegate(observers)
	}
	return s
}

// GetWeather fetches synchronously.
func (s *WeatherService) GetWeather(ctx context.Context, query model.WeatherQuery) (*model.WeatherRecord, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.WeatherRepo == nil {
		return nil, model.NewWeatherError(model.ErrConfiguration, ErrWeatherService)
	}
	record, err := s.WeatherRepo.Fetch(ctx, query)
	if s.Observer != nil {
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()
			dispatch(s.Observer, record, err)
		}()
	}
	return record, err
}

// WaitObservers blocks until every observer notification started so far has
// returned.
func (s *WeatherService) WaitObservers() {
	s.pending.Wait()
}

// FetchAsync starts a fetch and returns immediately. The channel yields one
// Result and is then closed.
func (s *WeatherService) FetchAsync(ctx context.Context, query model.WeatherQuery) <-chan Result {
	results := make(chan Result, 1)
	go func() {
		defer close(results)
		record, err := s.GetWeather(ctx, query)
		results <- Result{Record: record, Err: err}
	}()
	return results
}

// Fetch starts a fetch and calls cb exactly once with its outcome.
func (s *WeatherService) Fetch(ctx context.Context, query model.WeatherQuery, cb Callback) {
	results := s.FetchAsync(ctx, query)
	go func() {
		res := <-results
		if cb != nil {
			cb(res.Record, res.Err)
		}
	}()
}

// FetchByCity fetches by city name. name is passed through untouched.
func (s *WeatherService) FetchByCity(ctx context.Context, name string, cb Callback) {
	s.Fetch(ctx, model.CityQuery(name), cb)
}

func (s *WeatherService) FetchByCoordinate(ctx context.Context, lat, lon float64, cb Callback) {
	s.Fetch(ctx, model.CoordinateQuery(lat, lon), cb)
}

// Notify fetches and reports the outcome to d.
func (s *WeatherService) Notify(ctx context.Context, query model.WeatherQuery, d Delegate) {
	s.Fetch(ctx, query, DelegateCallback(d))
}
