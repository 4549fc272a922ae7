// Package mapper turns decoded provider payloads into display records.
package mapper

import (
	"fmt"
	"strconv"

	"github.com/fakhrymubarak/clima-weather/internal/model"
)

type iconRange struct {
	low, high int
	icon      string
}

// iconTable is evaluated top to bottom; the first matching range wins.
var iconTable = []iconRange{
	{200, 232, "cloud.bolt"},
	{300, 321, "cloud.drizzle"},
	{500, 531, "cloud.rain"},
	{600, 622, "cloud.snow"},
	{701, 781, "cloud.fog"},
	{800, 800, "sun.max"},
	{801, 804, "cloud.bolt"},
}

// IconFor returns the icon identifier for a provider condition code.
// Codes outside the table yield an error matching model.ErrMapping.
func IconFor(conditionID int) (string, error) {
	for _, r := range iconTable {
		if conditionID >= r.low && conditionID <= r.high {
			return r.icon, nil
		}
	}
	return "", model.NewWeatherError(model.ErrMapping, fmt.Errorf("unknown condition code %d", conditionID))
}

// FormatTemperature renders celsius with exactly one decimal digit and a '.' separator.
func FormatTemperature(celsius float64) string {
	return strconv.FormatFloat(celsius, 'f', 1, 64)
}

// ToRecord builds a WeatherRecord from the city, the first condition entry and
// the current temperature of raw.
func ToRecord(raw model.RawWeatherResponse) (*model.WeatherRecord, error) {
	if len(raw.Weather) == 0 {
		return nil, model.NewWeatherError(model.ErrDecode, fmt.Errorf("weather array is empty"))
	}
	conditionID := raw.Weather[0].ID
	icon, err := IconFor(conditionID)
	if err != nil {
		return nil, err
	}
	return &model.WeatherRecord{
		CityName:    raw.Name,
		Temperature: raw.Main.Temp,
		ConditionID: conditionID,
		Icon:        icon,
	}, nil
}

// ToView adds the formatted temperature to a record.
func ToView(record model.WeatherRecord) model.WeatherView {
	return model.WeatherView{
		WeatherRecord:     record,
		TemperatureString: FormatTemperature(record.Temperature),
	}
}
