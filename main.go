package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fakhrymubarak/clima-weather/internal/config"
	"github.com/fakhrymubarak/clima-weather/internal/handler"
	"github.com/fakhrymubarak/clima-weather/internal/mapper"
	"github.com/fakhrymubarak/clima-weather/internal/middleware"
	"github.com/fakhrymubarak/clima-weather/internal/model"
	"github.com/fakhrymubarak/clima-weather/internal/redis"
	"github.com/fakhrymubarak/clima-weather/internal/repository"
	"github.com/fakhrymubarak/clima-weather/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	os.Exit(run())
}

// run starts the one-shot fetch or the server and returns the exit code.
// Deferred cleanup runs before the process exits.
func run() int {
	city := flag.String("city", "", "fetch the current weather for a city once and exit")
	lat := flag.Float64("lat", math.NaN(), "latitude for a one-shot fetch (requires -lon)")
	lon := flag.Float64("lon", math.NaN(), "longitude for a one-shot fetch (requires -lat)")
	flag.Parse()

	logger := config.GetLogger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(ctx)
	if err != nil {
		logger.Errorw("Cannot start", "error", err)
		return 1
	}
	defer svc.WaitObservers()

	oneShot := *city != "" || !math.IsNaN(*lat) || !math.IsNaN(*lon)
	if oneShot {
		if err := fetchOnce(ctx, svc, *city, *lat, *lon, os.Stdout); err != nil {
			logger.Errorw("Weather fetch failed", "error", err)
			return 1
		}
		return 0
	}

	if err := serve(ctx, svc); err != nil {
		logger.Errorw("Server stopped", "error", err)
		return 1
	}
	return 0
}

// newService wires the repository and observers from configuration.
func newService(ctx context.Context) (*service.WeatherService, error) {
	logger := config.GetLogger()
	apiKey, err := config.RequireOpenWeatherMapAPIKey()
	if err != nil {
		return nil, err
	}
	repo, err := repository.NewWeatherRepository(config.GetOpenWeatherApiUrl(), apiKey)
	if err != nil {
		return nil, err
	}

	observers := []service.Delegate{service.LogDelegate{Logger: logger}}
	if config.IsRedisEnabled() {
		if err := redis.Ping(ctx); err != nil {
			return nil, err
		}
		observers = append(observers, redis.NewPublisher(nil))
	}
	return service.NewWeatherService(repo, observers...), nil
}

// fetchOnce runs a single fetch through the callback API and prints the result.
func fetchOnce(ctx context.Context, svc *service.WeatherService, city string, lat, lon float64, out io.Writer) error {
	done := make(chan service.Result, 1)
	cb := func(record *model.WeatherRecord, err error) {
		done <- service.Result{Record: record, Err: err}
	}

	city = strings.TrimSpace(city)
	switch {
	case city != "":
		svc.FetchByCity(ctx, city, cb)
	case !math.IsNaN(lat) && !math.IsNaN(lon):
		svc.FetchByCoordinate(ctx, lat, lon, cb)
	default:
		return errors.New("either -city or both -lat and -lon are required")
	}

	res := <-done
	if res.Err != nil {
		return res.Err
	}
	render(out, *res.Record)
	return nil
}

func render(w io.Writer, record model.WeatherRecord) {
	fmt.Fprintf(w, "%s: %s°C (%s)\n", record.CityName, mapper.FormatTemperature(record.Temperature), record.Icon)
}

func routes(svc service.WeatherServiceInterface) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/weather", handler.NewWeatherHandler(svc).HandleWeather)
	mux.Handle("/metrics", promhttp.Handler())
	return middleware.Observe(config.GetLogger(), mux, "/weather", "/metrics")
}

func serve(ctx context.Context, svc service.WeatherServiceInterface) error {
	logger := config.GetLogger()
	port := config.GetServerPort()
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           routes(svc),
		ReadHeaderTimeout: config.GetServerTimeout("read_header_timeout", 15*time.Second),
		ReadTimeout:       config.GetServerTimeout("read_timeout", 15*time.Second),
		WriteTimeout:      config.GetServerTimeout("write_timeout", 10*time.Second),
		IdleTimeout:       config.GetServerTimeout("idle_timeout", 30*time.Second),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Weather API server running on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("Shutting down server")
	return srv.Shutdown(shutdownCtx)
}
