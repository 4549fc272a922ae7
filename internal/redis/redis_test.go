package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/fakhrymubarak/clima-weather/internal/config"
	"github.com/fakhrymubarak/clima-weather/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestGetClient(t *testing.T) {
	client := GetClient()
	if client == nil {
		t.Error("Expected Redis client to be created")
	}

	// Test that we can get the same client multiple times (singleton pattern)
	client2 := GetClient()
	if client != client2 {
		t.Error("Expected same client instance (singleton pattern)")
	}
}

func TestGetContext(t *testing.T) {
	ctx := GetContext()
	if ctx == nil {
		t.Error("Expected context to be created")
	}

	select {
	case <-ctx.Done():
		t.Error("Expected context to not be cancelled")
	default:
	}
}

func TestResetClientForTest(t *testing.T) {
	client1 := GetClient()
	ResetClientForTest()
	client2 := GetClient()
	if client1 == client2 {
		t.Error("Expected a new client instance after reset")
	}
}

func TestGetClient_UsesConfiguredAddr(t *testing.T) {
	mr := miniredis.RunT(t)
	viper.Set("redis.addr", mr.Addr())
	config.ReloadConfigForTest()
	ResetClientForTest()
	t.Cleanup(func() {
		ResetClientForTest()
	})

	assert.Equal(t, mr.Addr(), GetClient().Options().Addr)
	assert.NoError(t, GetClient().Ping(GetContext()).Err())
}

func BenchmarkGetClient(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetClient()
	}
}

func TestOptions_URLTakesPrecedence(t *testing.T) {
	viper.Set("redis.url", "redis://:secret@cache.internal:6380/2")
	t.Cleanup(func() { viper.Set("redis.url", "") })

	opt, err := Options()
	assert.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", opt.Addr)
	assert.Equal(t, "secret", opt.Password)
	assert.Equal(t, 2, opt.DB)
}

func TestOptions_InvalidURL(t *testing.T) {
	viper.Set("redis.url", "http://not-redis")
	t.Cleanup(func() { viper.Set("redis.url", "") })

	_, err := Options()
	assert.ErrorIs(t, err, model.ErrConfiguration)
	assert.ErrorIs(t, Ping(context.Background()), model.ErrConfiguration)
}

func TestPing(t *testing.T) {
	mr := miniredis.RunT(t)
	viper.Set("redis.addr", mr.Addr())
	ResetClientForTest()
	t.Cleanup(ResetClientForTest)

	assert.NoError(t, Ping(context.Background()))

	mr.Close()
	assert.Error(t, Ping(context.Background()))
}
