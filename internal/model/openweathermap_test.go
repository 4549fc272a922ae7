package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRawWeatherResponse(t *testing.T) {
	body := `{"name":"Berlin","weather":[{"id":800,"main":"Clear"}],"main":{"temp":18.3},"coord":{"lon":13.4,"lat":52.5}}`

	raw, err := DecodeRawWeatherResponse(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "Berlin", raw.Name)
	assert.Equal(t, []RawCondition{{ID: 800, Main: "Clear"}}, raw.Weather)
	assert.Equal(t, 18.3, raw.Main.Temp)
	assert.Equal(t, RawCoord{Lon: 13.4, Lat: 52.5}, raw.Coord)
}

func TestDecodeRawWeatherResponse_TrailingWhitespace(t *testing.T) {
	body := `{"name":"Berlin","weather":[{"id":800,"main":"Clear"}],"main":{"temp":18.3},"coord":{"lon":13.4,"lat":52.5}}` + "\n\t "

	raw, err := DecodeRawWeatherResponse(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "Berlin", raw.Name)
}

func TestDecodeRawWeatherResponse_IgnoresExtraFields(t *testing.T) {
	body := `{"coord":{"lon":-0.13,"lat":51.51},"weather":[{"id":300,"main":"Drizzle","description":"light intensity drizzle","icon":"09d"}],
	"base":"stations","main":{"temp":7.17,"pressure":1012,"humidity":81},"name":"London","cod":200}`

	raw, err := DecodeRawWeatherResponse(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "London", raw.Name)
	assert.Equal(t, 300, raw.Weather[0].ID)
}

func TestDecodeRawWeatherResponse_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"not json", `not-json`, "invalid character"},
		{"empty weather", `{"name":"X","weather":[],"main":{"temp":1},"coord":{"lon":1,"lat":1}}`, "weather array is empty"},
		{"missing weather", `{"name":"X","main":{"temp":1},"coord":{"lon":1,"lat":1}}`, `"weather"`},
		{"missing name", `{"weather":[{"id":800,"main":"Clear"}],"main":{"temp":1},"coord":{"lon":1,"lat":1}}`, `"name"`},
		{"missing temp", `{"name":"X","weather":[{"id":800,"main":"Clear"}],"main":{},"coord":{"lon":1,"lat":1}}`, `"main.temp"`},
		{"missing coord", `{"name":"X","weather":[{"id":800,"main":"Clear"}],"main":{"temp":1}}`, `"coord"`},
		{"missing condition id", `{"name":"X","weather":[{"main":"Clear"}],"main":{"temp":1},"coord":{"lon":1,"lat":1}}`, `"weather[0]"`},
		{"trailing garbage", `{"name":"X","weather":[{"id":800,"main":"Clear"}],"main":{"temp":1},"coord":{"lon":1,"lat":1}} garbage`, "unexpected data after JSON object"},
		{"second object", `{"name":"X","weather":[{"id":800,"main":"Clear"}],"main":{"temp":1},"coord":{"lon":1,"lat":1}}{}`, "unexpected data after JSON object"},
		{"wrong type", `{"name":"X","weather":[{"id":"800","main":"Clear"}],"main":{"temp":1},"coord":{"lon":1,"lat":1}}`, "cannot unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRawWeatherResponse(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
