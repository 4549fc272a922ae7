package model

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrNetwork       = errors.New("network error")
	ErrDecode        = errors.New("decode error")
	ErrMapping       = errors.New("mapping error")
	ErrAPI           = errors.New("weather API error")
)

// WeatherError tags an underlying error with one of the kinds above.
type WeatherError struct {
	Kind error
	Err  error
}

func NewWeatherError(kind, err error) *WeatherError {
	return &WeatherError{Kind: kind, Err: err}
}

func (e *WeatherError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

func (e *WeatherError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// APIError describes a non-2xx answer from the provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}
