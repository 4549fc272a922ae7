package model

// WeatherRecord is the display model produced by one successful fetch.
type WeatherRecord struct {
	CityName    string  `json:"city"`
	Temperature float64 `json:"temperature"`
	ConditionID int     `json:"conditionId"`
	Icon        string  `json:"icon"`
}

// WeatherView is WeatherRecord plus its formatted temperature, as rendered over HTTP.
type WeatherView struct {
	WeatherRecord
	TemperatureString string `json:"temperatureString"`
}

// Response is the JSON envelope of every /weather answer. Data holds a
// WeatherView on success; Error is set otherwise.
type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Error   *string     `json:"error,omitempty"`
	Message string      `json:"message"`
}
