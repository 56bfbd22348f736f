package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
	"github.com/wrdrb-app/wrdrb-api/internal/planner"
	"github.com/wrdrb-app/wrdrb-api/internal/service"
	appErrors "github.com/wrdrb-app/wrdrb-api/pkg/errors"
)

type forecastProviderMock struct {
	forecast []planner.DailyForecast
	err      error
}

func (m *forecastProviderMock) DailyForecast(ctx context.Context, city string) ([]planner.DailyForecast, error) {
	return m.forecast, m.err
}

type eventProviderMock struct {
	events []models.CalendarEvent
	err    error
}

func (m *eventProviderMock) UpcomingEvents(ctx context.Context, userID string) ([]models.CalendarEvent, error) {
	return m.events, m.err
}

type settingsProviderMock struct {
	settings models.UserSettings
}

func (m *settingsProviderMock) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	s := m.settings
	return &s, nil
}

func newPlannerHandler(forecast *forecastProviderMock, events *eventProviderMock) *PlannerHandler {
	svc := service.NewPlannerService(
		&scheduleRepoMock{},
		scheduleTestOutfits(),
		outfitTestCatalog(),
		forecast,
		events,
		&settingsProviderMock{settings: models.UserSettings{UserID: "user-1", City: "Calgary", Units: "metric"}},
		nil,
		time.UTC,
	)
	return NewPlannerHandler(svc)
}

func TestPlannerHandlerBoard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPlannerHandler(&forecastProviderMock{}, &eventProviderMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/planner/board", nil)
	c := authedContext(t, w, req)

	handler.Board(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data service.BoardResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Days, 5)
	assert.Equal(t, "Calgary", envelope.Data.City)
	assert.True(t, envelope.Data.CalendarAvailable)
	assert.Empty(t, envelope.Data.WeatherError)
}

func TestPlannerHandlerBoardDegradesOnWeatherFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPlannerHandler(
		&forecastProviderMock{err: appErrors.ErrWeatherUnavailable},
		&eventProviderMock{err: appErrors.ErrCalendarNotConnected},
	)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/planner/board", nil)
	c := authedContext(t, w, req)

	handler.Board(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data service.BoardResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Days, 5)
	assert.False(t, envelope.Data.CalendarAvailable)
	assert.NotEmpty(t, envelope.Data.WeatherError)
	for _, day := range envelope.Data.Days {
		assert.Nil(t, day.Forecast)
	}
}

func TestPlannerHandlerBoardRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPlannerHandler(&forecastProviderMock{}, &eventProviderMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/planner/board", nil)
	c.Request = req

	handler.Board(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
