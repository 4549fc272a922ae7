package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fakhrymubarak/clima-weather/internal/config"
	"github.com/fakhrymubarak/clima-weather/internal/mapper"
	"github.com/fakhrymubarak/clima-weather/internal/model"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Publisher publishes fetch outcomes to Redis pub/sub channels. It implements
// service.Delegate.
type Publisher struct {
	client         redisv9.UniversalClient
	channel        string
	failureChannel string
	timeout        time.Duration
	logger         *zap.SugaredLogger
}

// UpdateMessage is published on the update channel for every fetched record.
type UpdateMessage struct {
	ID          string            `json:"id"`
	PublishedAt time.Time         `json:"publishedAt"`
	Weather     model.WeatherView `json:"weather"`
}

// FailureMessage is published on the failure channel for every failed fetch.
type FailureMessage struct {
	ID          string    `json:"id"`
	PublishedAt time.Time `json:"publishedAt"`
	Error       string    `json:"error"`
}

// NewPublisher creates a publisher on the configured channels. A nil client
// means the shared client from GetClient.
func NewPublisher(client redisv9.UniversalClient) *Publisher {
	if client == nil {
		client = GetClient()
	}
	return &Publisher{
		client:         client,
		channel:        config.GetRedisChannel(),
		failureChannel: config.GetRedisFailureChannel(),
		timeout:        2 * time.Second,
		logger:         config.GetLogger(),
	}
}

func (p *Publisher) OnWeatherUpdated(record model.WeatherRecord) {
	p.publish(p.channel, UpdateMessage{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
		Weather:     mapper.ToView(record),
	})
}

func (p *Publisher) OnFetchFailed(err error) {
	p.publish(p.failureChannel, FailureMessage{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
		Error:       err.Error(),
	})
}

func (p *Publisher) publish(channel string, msg interface{}) {
	b, err := json.Marshal(msg)
	if err != nil {
		p.logger.Errorw("Could not encode message", "channel", channel, "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(GetContext(), p.timeout)
	defer cancel()
	if err := p.client.Publish(ctx, channel, b).Err(); err != nil {
		p.logger.Warnw("Could not publish message", "channel", channel, "error", err)
	}
}
