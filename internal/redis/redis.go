package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fakhrymubarak/clima-weather/internal/config"
	"github.com/fakhrymubarak/clima-weather/internal/model"
	redisv9 "github.com/redis/go-redis/v9"
)

const pingTimeout = 3 * time.Second

var (
	client *redisv9.Client
	once   sync.Once
)

// Options builds client options from redis.url, or from redis.addr when no
// URL is configured.
func Options() (*redisv9.Options, error) {
	if rawURL := config.GetRedisURL(); rawURL != "" {
		opt, err := redisv9.ParseURL(rawURL)
		if err != nil {
			return nil, model.NewWeatherError(model.ErrConfiguration, fmt.Errorf("invalid redis.url: %w", err))
		}
		return opt, nil
	}
	return &redisv9.Options{Addr: config.GetRedisAddr()}, nil
}

// GetClient returns the shared client. An invalid redis.url is logged and the
// client falls back to redis.addr; Ping reports it as an error.
func GetClient() *redisv9.Client {
	once.Do(func() {
		opt, err := Options()
		if err != nil {
			config.GetLogger().Errorw("Falling back to redis.addr", "error", err)
			opt = &redisv9.Options{Addr: config.GetRedisAddr()}
		}
		client = redisv9.NewClient(opt)
	})
	return client
}

// Ping checks the configuration and that the shared client can reach Redis.
func Ping(ctx context.Context) error {
	if _, err := Options(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := GetClient().Ping(ctx).Err(); err != nil {
		return fmt.Errorf("could not connect to Redis at %s: %w", GetClient().Options().Addr, err)
	}
	return nil
}

func GetContext() context.Context {
	return context.Background()
}

// ResetClientForTest resets the Redis client singleton. Use only in tests.
func ResetClientForTest() {
	once = sync.Once{}
	client = nil
}
