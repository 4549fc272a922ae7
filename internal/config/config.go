package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fakhrymubarak/clima-weather/internal/model"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const apiKeyEnv = "OPENWEATHERMAP_API_KEY"

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func initConfig() {
	once.Do(func() {
		setDefaults()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Errorw("Error finding project root", "error", err)
			return
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			if err = viper.MergeInConfig(); err != nil {
				GetLogger().Errorw("Error merging test config file", "error", err)
			}
		}
	})
}

func setDefaults() {
	viper.SetDefault("openweathermap.api_url", "https://api.openweathermap.org/data/2.5/weather")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.channel", "weather:updates")
	viper.SetDefault("redis.failure_channel", "weather:failures")
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func GetOpenWeatherApiUrl() string {
	initConfig()
	return viper.GetString("openweathermap.api_url")
}

func GetOpenWeatherMapAPIKey() string {
	_ = godotenv.Load()
	return strings.TrimSpace(os.Getenv(apiKeyEnv))
}

// RequireOpenWeatherMapAPIKey returns the credential or a configuration error
// when it is not set. Called once at startup.
func RequireOpenWeatherMapAPIKey() (string, error) {
	key := GetOpenWeatherMapAPIKey()
	if key == "" {
		return "", model.NewWeatherError(model.ErrConfiguration, errors.New(apiKeyEnv+" is not set"))
	}
	return key, nil
}

func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

// GetRedisURL returns redis.url (e.g. redis://:pass@host:6379/0). When set it
// takes precedence over redis.addr.
func GetRedisURL() string {
	initConfig()
	return viper.GetString("redis.url")
}

func IsRedisEnabled() bool {
	initConfig()
	return viper.GetBool("redis.enabled")
}

func GetRedisChannel() string {
	initConfig()
	return viper.GetString("redis.channel")
}

func GetRedisFailureChannel() string {
	initConfig()
	return viper.GetString("redis.failure_channel")
}

func GetServerPort() string {
	initConfig()
	return viper.GetString("server.port")
}

// GetServerTimeout returns server.<key> as a duration, or def when unset or invalid.
func GetServerTimeout(key string, def time.Duration) time.Duration {
	initConfig()
	durStr := viper.GetString("server." + key)
	if durStr == "" {
		return def
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil {
		GetLogger().Warnw("Invalid server timeout, using default", "key", key, "value", durStr, "error", err)
		return def
	}
	return dur
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}
