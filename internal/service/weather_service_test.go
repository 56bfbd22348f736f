package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
	"github.com/wrdrb-app/wrdrb-api/internal/planner"
	appErrors "github.com/wrdrb-app/wrdrb-api/pkg/errors"
)

type mockWeatherClient struct {
	current      *models.CurrentWeather
	samples      []planner.ForecastSample
	err          error
	currentCalls int
	forecastCall int
}

func (m *mockWeatherClient) Current(ctx context.Context, city string) (*models.CurrentWeather, error) {
	m.currentCalls++
	return m.current, m.err
}

func (m *mockWeatherClient) Forecast(ctx context.Context, city string) ([]planner.ForecastSample, error) {
	m.forecastCall++
	return m.samples, m.err
}

type memoryCacheRepo struct {
	mu    sync.Mutex
	store map[string][]byte
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.store == nil {
		m.store = make(map[string][]byte)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = make(map[string][]byte)
	return nil
}

func newWeatherService(client *mockWeatherClient) *WeatherService {
	cache := NewCacheService(&memoryCacheRepo{}, nil, time.Minute, nil, true)
	svc := NewWeatherService(client, cache, nil, nil, time.UTC, "Calgary", time.Minute)
	svc.now = func() time.Time { return time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC) }
	return svc
}

func TestCurrentUsesCacheOnSecondCall(t *testing.T) {
	client := &mockWeatherClient{current: &models.CurrentWeather{City: "Calgary", Temperature: 18}}
	svc := newWeatherService(client)

	first, err := svc.Current(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Calgary", first.City)

	second, err := svc.Current(context.Background(), "Calgary")
	require.NoError(t, err)
	assert.Equal(t, first.Temperature, second.Temperature)
	assert.Equal(t, 1, client.currentCalls)
}

func TestDailyForecastDeduplicates(t *testing.T) {
	start := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	samples := make([]planner.ForecastSample, 0, 48)
	for i := 0; i < 48; i++ {
		samples = append(samples, planner.ForecastSample{
			Time:        start.Add(time.Duration(i) * 3 * time.Hour),
			Temperature: float64(i),
			Condition:   "Clouds",
		})
	}
	client := &mockWeatherClient{samples: samples}
	svc := newWeatherService(client)

	daily, err := svc.DailyForecast(context.Background(), "Calgary")
	require.NoError(t, err)
	require.Len(t, daily, 5)
	assert.Equal(t, planner.DateKey("2024-06-10"), daily[0].Key)

	// Second call served from cache, same result.
	again, err := svc.DailyForecast(context.Background(), "Calgary")
	require.NoError(t, err)
	assert.Equal(t, daily, again)
	assert.Equal(t, 1, client.forecastCall)
}

func TestDailyForecastPropagatesUnavailable(t *testing.T) {
	client := &mockWeatherClient{err: appErrors.ErrWeatherUnavailable}
	svc := newWeatherService(client)

	_, err := svc.DailyForecast(context.Background(), "Calgary")
	assert.ErrorIs(t, err, appErrors.ErrWeatherUnavailable)
}

func TestRefreshCityRepopulatesCache(t *testing.T) {
	client := &mockWeatherClient{
		current: &models.CurrentWeather{City: "Calgary", Temperature: 18},
		samples: []planner.ForecastSample{{Time: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), Temperature: 18, Condition: "Clear"}},
	}
	svc := newWeatherService(client)

	require.NoError(t, svc.RefreshCity(context.Background(), "Calgary"))

	// Subsequent reads come from the refreshed cache without new upstream calls.
	upstreamCalls := client.currentCalls + client.forecastCall
	_, err := svc.Current(context.Background(), "Calgary")
	require.NoError(t, err)
	_, err = svc.DailyForecast(context.Background(), "Calgary")
	require.NoError(t, err)
	assert.Equal(t, upstreamCalls, client.currentCalls+client.forecastCall)
}
