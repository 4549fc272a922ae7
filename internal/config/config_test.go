package config

import (
	"os"
	"testing"
	"time"

	"github.com/fakhrymubarak/clima-weather/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestGetOpenWeatherMapAPIKey(t *testing.T) {
	t.Setenv("OPENWEATHERMAP_API_KEY", " test_api_key_123 ")

	assert.Equal(t, "test_api_key_123", GetOpenWeatherMapAPIKey())

	os.Unsetenv("OPENWEATHERMAP_API_KEY")
	assert.Equal(t, "", GetOpenWeatherMapAPIKey())
}

func TestRequireOpenWeatherMapAPIKey(t *testing.T) {
	t.Setenv("OPENWEATHERMAP_API_KEY", "secret")
	key, err := RequireOpenWeatherMapAPIKey()
	assert.NoError(t, err)
	assert.Equal(t, "secret", key)

	os.Unsetenv("OPENWEATHERMAP_API_KEY")
	key, err = RequireOpenWeatherMapAPIKey()
	assert.Empty(t, key)
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestGetRedisAddr(t *testing.T) {
	ReloadConfigForTest()
	// config_test.yaml overrides the address from config.yaml
	assert.Equal(t, "localhost:16379", GetRedisAddr())

	t.Setenv("REDIS_ADDR", "redis.internal:6379")
	assert.Equal(t, "redis.internal:6379", GetRedisAddr())
}

func TestGetRedisChannels(t *testing.T) {
	assert.Equal(t, "weather:updates", GetRedisChannel())
	assert.Equal(t, "weather:failures", GetRedisFailureChannel())
	assert.False(t, IsRedisEnabled())
}

func TestGetOpenWeatherApiUrl(t *testing.T) {
	want := "https://api.openweathermap.org/data/2.5/weather"
	assert.Equal(t, want, GetOpenWeatherApiUrl())
}

func TestGetServerPort(t *testing.T) {
	assert.Equal(t, "8080", GetServerPort())
}

func TestGetServerTimeout(t *testing.T) {
	assert.Equal(t, 15*time.Second, GetServerTimeout("read_header_timeout", time.Second))
	assert.Equal(t, 10*time.Second, GetServerTimeout("write_timeout", time.Second))
	assert.Equal(t, 7*time.Second, GetServerTimeout("missing_timeout", 7*time.Second))

	viper.Set("server.bogus_timeout", "soon")
	defer viper.Set("server.bogus_timeout", "")
	assert.Equal(t, 3*time.Second, GetServerTimeout("bogus_timeout", 3*time.Second))
}

func TestReloadConfigForTest(t *testing.T) {
	// Should not panic or error
	ReloadConfigForTest()
}

func TestGetProjectRoot(t *testing.T) {
	root, err := getProjectRoot()
	assert.NoError(t, err)
	_, err = os.Stat(root + "/go.mod")
	assert.NoError(t, err)
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger())
	assert.Same(t, GetLogger(), GetLogger())
}
