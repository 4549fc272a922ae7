package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// RawWeatherResponse is the subset of the OpenWeatherMap current-weather
// payload this service reads.
type RawWeatherResponse struct {
	Name    string         `json:"name"`
	Weather []RawCondition `json:"weather"`
	Main    RawMain        `json:"main"`
	Coord   RawCoord       `json:"coord"`
}

type RawCondition struct {
	ID   int    `json:"id"`
	Main string `json:"main"`
}

type RawMain struct {
	Temp float64 `json:"temp"`
}

type RawCoord struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// APIErrorBody is what the provider returns alongside a non-2xx status.
// cod is a number or a string depending on the endpoint.
type APIErrorBody struct {
	Cod     json.RawMessage `json:"cod"`
	Message string          `json:"message"`
}

// wire mirrors RawWeatherResponse with pointers so absent fields can be told
// apart from zero values.
type wire struct {
	Name    *string `json:"name"`
	Weather []struct {
		ID   *int    `json:"id"`
		Main *string `json:"main"`
	} `json:"weather"`
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Coord *struct {
		Lon *float64 `json:"lon"`
		Lat *float64 `json:"lat"`
	} `json:"coord"`
}

var (
	errEmptyConditions = errors.New("weather array is empty")
	errTrailingData    = errors.New("unexpected data after JSON object")
)

// DecodeRawWeatherResponse decodes a provider body. Every field of
// RawWeatherResponse is required, the weather array must not be empty and
// nothing but whitespace may follow the object.
func DecodeRawWeatherResponse(r io.Reader) (RawWeatherResponse, error) {
	var w wire
	dec := json.NewDecoder(r)
	if err := dec.Decode(&w); err != nil {
		return RawWeatherResponse{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return RawWeatherResponse{}, errTrailingData
	}

	switch {
	case w.Name == nil:
		return RawWeatherResponse{}, missingField("name")
	case w.Weather == nil:
		return RawWeatherResponse{}, missingField("weather")
	case len(w.Weather) == 0:
		return RawWeatherResponse{}, errEmptyConditions
	case w.Main == nil || w.Main.Temp == nil:
		return RawWeatherResponse{}, missingField("main.temp")
	case w.Coord == nil || w.Coord.Lon == nil || w.Coord.Lat == nil:
		return RawWeatherResponse{}, missingField("coord")
	}

	out := RawWeatherResponse{
		Name:    *w.Name,
		Weather: make([]RawCondition, 0, len(w.Weather)),
		Main:    RawMain{Temp: *w.Main.Temp},
		Coord:   RawCoord{Lon: *w.Coord.Lon, Lat: *w.Coord.Lat},
	}
	for i, c := range w.Weather {
		if c.ID == nil || c.Main == nil {
			return RawWeatherResponse{}, missingField(fmt.Sprintf("weather[%d]", i))
		}
		out.Weather = append(out.Weather, RawCondition{ID: *c.ID, Main: *c.Main})
	}
	return out, nil
}

func missingField(name string) error {
	return fmt.Errorf("missing field %q", name)
}
