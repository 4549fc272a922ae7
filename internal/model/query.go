package model

import (
	"fmt"
	"strconv"
)

// QueryKind tells which variant a WeatherQuery holds.
type QueryKind int

const (
	QueryByCity QueryKind = iota
	QueryByCoordinate
)

func (k QueryKind) String() string {
	switch k {
	case QueryByCity:
		return "city"
	case QueryByCoordinate:
		return "coordinate"
	default:
		return "unknown"
	}
}

// WeatherQuery selects the place to fetch current weather for. Build one with
// CityQuery or CoordinateQuery.
type WeatherQuery struct {
	kind      QueryKind
	city      string
	latitude  float64
	longitude float64
}

// CityQuery returns a query for a city name. The name is used as given;
// trimming is up to the caller.
func CityQuery(name string) WeatherQuery {
	return WeatherQuery{kind: QueryByCity, city: name}
}

func CoordinateQuery(latitude, longitude float64) WeatherQuery {
	return WeatherQuery{kind: QueryByCoordinate, latitude: latitude, longitude: longitude}
}

func (q WeatherQuery) Kind() QueryKind { return q.kind }

// City returns the city name and whether q is a city query.
func (q WeatherQuery) City() (string, bool) {
	return q.city, q.kind == QueryByCity
}

// Coordinate returns latitude, longitude and whether q is a coordinate query.
func (q WeatherQuery) Coordinate() (lat, lon float64, ok bool) {
	return q.latitude, q.longitude, q.kind == QueryByCoordinate
}

func (q WeatherQuery) String() string {
	if q.kind == QueryByCoordinate {
		return fmt.Sprintf("lat=%s,lon=%s", FormatCoordinate(q.latitude), FormatCoordinate(q.longitude))
	}
	return "q=" + q.city
}

// FormatCoordinate renders a coordinate in its shortest exact decimal form.
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
