// Package weather wraps the OpenWeather REST API: current conditions and the
// 5-day/3-hour forecast feed, both keyed by city name.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
	"github.com/wrdrb-app/wrdrb-api/internal/planner"
	"github.com/wrdrb-app/wrdrb-api/pkg/config"
	appErrors "github.com/wrdrb-app/wrdrb-api/pkg/errors"
)

// Client calls the OpenWeather HTTP endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	units      string
	loc        *time.Location
	logger     *zap.Logger
}

// NewClient constructs a weather client from configuration. loc is the
// timezone used to classify day versus night icons; nil falls back to the
// process-local zone.
func NewClient(cfg config.WeatherConfig, loc *time.Location, logger *zap.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	units := cfg.Units
	if units == "" {
		units = "metric"
	}
	if loc == nil {
		loc = time.Local
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		units:      units,
		loc:        loc,
		logger:     logger,
	}
}

type weatherCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type currentResponse struct {
	Name    string             `json:"name"`
	Weather []weatherCondition `json:"weather"`
	Main    struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	DT int64 `json:"dt"`
}

type forecastResponse struct {
	List []struct {
		DT   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []weatherCondition `json:"weather"`
	} `json:"list"`
}

// Current fetches current conditions for a city.
func (c *Client) Current(ctx context.Context, city string) (*models.CurrentWeather, error) {
	var payload currentResponse
	if err := c.get(ctx, "/weather", city, &payload); err != nil {
		return nil, err
	}

	current := &models.CurrentWeather{
		City:        payload.Name,
		Temperature: payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
		FetchedAt:   time.Unix(payload.DT, 0).UTC(),
	}
	if len(payload.Weather) > 0 {
		current.Condition = payload.Weather[0].Main
		current.Description = payload.Weather[0].Description
		hour := time.Unix(payload.DT, 0).In(c.loc).Hour()
		current.Icon = planner.IconFor(current.Condition, current.Description, hour)
	}
	return current, nil
}

// Forecast fetches the 3-hour forecast feed for a city, in chronological
// order as returned by the API.
func (c *Client) Forecast(ctx context.Context, city string) ([]planner.ForecastSample, error) {
	var payload forecastResponse
	if err := c.get(ctx, "/forecast", city, &payload); err != nil {
		return nil, err
	}

	samples := make([]planner.ForecastSample, 0, len(payload.List))
	for _, entry := range payload.List {
		sample := planner.ForecastSample{
			Time:        time.Unix(entry.DT, 0),
			Temperature: entry.Main.Temp,
		}
		if len(entry.Weather) > 0 {
			sample.Condition = entry.Weather[0].Main
			sample.Description = entry.Weather[0].Description
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func (c *Client) get(ctx context.Context, path, city string, dest interface{}) error {
	if c.apiKey == "" {
		return appErrors.ErrWeatherUnavailable
	}

	endpoint := fmt.Sprintf("%s%s?q=%s&appid=%s&units=%s", c.baseURL, path, url.QueryEscape(city), url.QueryEscape(c.apiKey), c.units)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("weather request failed", zap.String("path", path), zap.String("city", city), zap.Error(err))
		return appErrors.ErrWeatherUnavailable.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("weather request rejected",
			zap.String("path", path),
			zap.String("city", city),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return appErrors.ErrWeatherUnavailable.Wrap(fmt.Errorf("openweather status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode weather response: %w", err)
	}
	return nil
}
