package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
	"github.com/wrdrb-app/wrdrb-api/internal/planner"
)

type weatherClient interface {
	Current(ctx context.Context, city string) (*models.CurrentWeather, error)
	Forecast(ctx context.Context, city string) ([]planner.ForecastSample, error)
}

// WeatherService serves current conditions and daily forecasts, caching
// upstream responses per city.
type WeatherService struct {
	client      weatherClient
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
	location    *time.Location
	defaultCity string
	cacheTTL    time.Duration
	now         func() time.Time
}

// NewWeatherService constructs a WeatherService.
func NewWeatherService(client weatherClient, cache *CacheService, metrics *MetricsService, logger *zap.Logger, loc *time.Location, defaultCity string, cacheTTL time.Duration) *WeatherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Minute
	}
	return &WeatherService{
		client:      client,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		location:    loc,
		defaultCity: defaultCity,
		cacheTTL:    cacheTTL,
		now:         time.Now,
	}
}

// Current returns current conditions for a city, preferring the cache.
func (s *WeatherService) Current(ctx context.Context, city string) (*models.CurrentWeather, error) {
	city = s.city(city)
	key := cacheKey("weather:current", city)

	var cached models.CurrentWeather
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	current, err := s.client.Current(ctx, city)
	s.metrics.RecordUpstream("openweather", err != nil)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, current, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache current weather", zap.String("city", city), zap.Error(err))
	}
	return current, nil
}

// DailyForecast returns the deduplicated one-per-day forecast for a city,
// today-inclusive, at most five days.
func (s *WeatherService) DailyForecast(ctx context.Context, city string) ([]planner.DailyForecast, error) {
	samples, err := s.rawForecast(ctx, city)
	if err != nil {
		return nil, err
	}
	return planner.DedupDaily(samples, s.now(), s.location), nil
}

// RefreshCity re-fetches and re-caches a city's forecast and current
// conditions. Used by the background refresh job.
func (s *WeatherService) RefreshCity(ctx context.Context, city string) error {
	city = s.city(city)

	samples, err := s.client.Forecast(ctx, city)
	s.metrics.RecordUpstream("openweather", err != nil)
	if err != nil {
		return fmt.Errorf("refresh forecast for %s: %w", city, err)
	}
	if err := s.cache.Set(ctx, cacheKey("weather:forecast", city), samples, s.cacheTTL); err != nil {
		return err
	}

	current, err := s.client.Current(ctx, city)
	s.metrics.RecordUpstream("openweather", err != nil)
	if err != nil {
		return fmt.Errorf("refresh current weather for %s: %w", city, err)
	}
	return s.cache.Set(ctx, cacheKey("weather:current", city), current, s.cacheTTL)
}

func (s *WeatherService) rawForecast(ctx context.Context, city string) ([]planner.ForecastSample, error) {
	city = s.city(city)
	key := cacheKey("weather:forecast", city)

	var cached []planner.ForecastSample
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	samples, err := s.client.Forecast(ctx, city)
	s.metrics.RecordUpstream("openweather", err != nil)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, samples, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache forecast", zap.String("city", city), zap.Error(err))
	}
	return samples, nil
}

func (s *WeatherService) city(city string) string {
	city = strings.TrimSpace(city)
	if city == "" {
		return s.defaultCity
	}
	return city
}

func cacheKey(prefix, city string) string {
	return prefix + ":" + strings.ToLower(strings.ReplaceAll(city, " ", "-"))
}
