package service

import (
	"go.uber.org/zap"

	"github.com/fakhrymubarak/clima-weather/internal/model"
)

// Delegate is notified once per fetch, on either the success or failure path.
type Delegate interface {
	OnWeatherUpdated(record model.WeatherRecord)
	OnFetchFailed(err error)
}

// DelegateCallback adapts d to a Callback.
func DelegateCallback(d Delegate) Callback {
	return func(record *model.WeatherRecord, err error) {
		dispatch(d, record, err)
	}
}

func dispatch(d Delegate, record *model.WeatherRecord, err error) {
	if err != nil || record == nil {
		if err == nil {
			err = ErrWeatherService
		}
		d.OnFetchFailed(err)
		return
	}
	d.OnWeatherUpdated(*record)
}

// MultiDelegate forwards to each delegate in order.
type MultiDelegate []Delegate

func (m MultiDelegate) OnWeatherUpdated(record model.WeatherRecord) {
	for _, d := range m {
		d.OnWeatherUpdated(record)
	}
}

func (m MultiDelegate) OnFetchFailed(err error) {
	for _, d := range m {
		d.OnFetchFailed(err)
	}
}

// LogDelegate writes outcomes to a zap logger.
type LogDelegate struct {
	Logger *zap.SugaredLogger
}

func (l LogDelegate) OnWeatherUpdated(record model.WeatherRecord) {
	l.Logger.Infow("Weather updated",
		"city", record.CityName,
		"temperature", record.Temperature,
		"condition_id", record.ConditionID,
		"icon", record.Icon,
	)
}

func (l LogDelegate) OnFetchFailed(err error) {
	l.Logger.Errorw("Weather fetch failed", "error", err)
}
