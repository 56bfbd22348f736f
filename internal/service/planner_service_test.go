package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
	"github.com/wrdrb-app/wrdrb-api/internal/planner"
	appErrors "github.com/wrdrb-app/wrdrb-api/pkg/errors"
)

type mockPlannerDeps struct {
	schedules   []models.OutfitSchedule
	outfits     []models.Outfit
	items       []models.ClothingItem
	forecast    []planner.DailyForecast
	events      []models.CalendarEvent
	settings    *models.UserSettings
	weatherErr  error
	calendarErr error
	scheduleErr error
}

func (m *mockPlannerDeps) List(ctx context.Context, userID string) ([]models.OutfitSchedule, error) {
	return m.schedules, m.scheduleErr
}

type mockOutfitList struct{ outfits []models.Outfit }

func (m *mockOutfitList) List(ctx context.Context, userID string) ([]models.Outfit, error) {
	return m.outfits, nil
}

func (m *mockOutfitList) FindByID(ctx context.Context, userID, id string) (*models.Outfit, error) {
	for i := range m.outfits {
		if m.outfits[i].ID == id {
			return &m.outfits[i], nil
		}
	}
	return nil, errors.New("not found")
}

type mockItemCatalog struct{ items []models.ClothingItem }

func (m *mockItemCatalog) ListAll(ctx context.Context, userID string) ([]models.ClothingItem, error) {
	return m.items, nil
}

func (m *mockPlannerDeps) DailyForecast(ctx context.Context, city string) ([]planner.DailyForecast, error) {
	return m.forecast, m.weatherErr
}

func (m *mockPlannerDeps) UpcomingEvents(ctx context.Context, userID string) ([]models.CalendarEvent, error) {
	return m.events, m.calendarErr
}

func (m *mockPlannerDeps) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	if m.settings == nil {
		return &models.UserSettings{UserID: userID, City: "Calgary", Units: "metric"}, nil
	}
	return m.settings, nil
}

func newPlannerService(deps *mockPlannerDeps) *PlannerService {
	svc := NewPlannerService(
		deps,
		&mockOutfitList{outfits: deps.outfits},
		&mockItemCatalog{items: deps.items},
		deps,
		deps,
		deps,
		nil,
		time.UTC,
	)
	svc.now = func() time.Time { return time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC) }
	return svc
}

func plannerFixture(t *testing.T) *mockPlannerDeps {
	t.Helper()
	raw, err := models.EncodeItemIDs([]string{"itemA", "missing", "itemB"})
	require.NoError(t, err)
	start := time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC)
	return &mockPlannerDeps{
		schedules: []models.OutfitSchedule{
			{ID: "s1", UserID: "u1", OutfitID: "o1", Date: "2024-06-11", CreatedAt: time.Unix(1, 0)},
		},
		outfits: []models.Outfit{
			{ID: "o1", UserID: "u1", Name: "Office", RawItems: raw},
		},
		items: []models.ClothingItem{
			{ID: "itemA", Category: "Shoes"},
			{ID: "itemB", Category: "Shirt"},
		},
		forecast: []planner.DailyForecast{
			{Key: "2024-06-10", Temperature: 20, Condition: "Clear", Icon: planner.IconClearDay},
			{Key: "2024-06-11", Temperature: 16, Condition: "Rain", Icon: planner.IconRain},
		},
		events: []models.CalendarEvent{
			{ID: "e1", Title: "Standup", StartDateTime: &start},
		},
	}
}

func TestBoardMergesAllSources(t *testing.T) {
	deps := plannerFixture(t)
	svc := newPlannerService(deps)

	board, err := svc.Board(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, board.Days, 5)
	assert.True(t, board.CalendarAvailable)
	assert.Empty(t, board.WeatherError)
	assert.Equal(t, "Calgary", board.City)

	today := board.Days[0]
	assert.Equal(t, planner.DateKey("2024-06-10"), today.Date)
	require.NotNil(t, today.Forecast)
	assert.Equal(t, 20.0, today.Forecast.Temperature)

	tomorrow := board.Days[1]
	require.NotNil(t, tomorrow.Schedule)
	assert.Equal(t, "s1", tomorrow.Schedule.ID)
	// Dangling item id dropped, remaining items sorted by category priority.
	require.Len(t, tomorrow.Schedule.Outfit.Items, 2)
	assert.Equal(t, "itemB", tomorrow.Schedule.Outfit.Items[0].ID)
	assert.Equal(t, "itemA", tomorrow.Schedule.Outfit.Items[1].ID)
	require.Len(t, tomorrow.Events, 1)
}

func TestBoardDegradesWhenWeatherFails(t *testing.T) {
	deps := plannerFixture(t)
	deps.weatherErr = appErrors.ErrWeatherUnavailable
	svc := newPlannerService(deps)

	board, err := svc.Board(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotEmpty(t, board.WeatherError)
	for _, day := range board.Days {
		assert.Nil(t, day.Forecast)
	}
	// Outfits and events still present.
	require.NotNil(t, board.Days[1].Schedule)
	require.Len(t, board.Days[1].Events, 1)
}

func TestBoardDegradesWhenCalendarUnavailable(t *testing.T) {
	deps := plannerFixture(t)
	deps.events = nil
	deps.calendarErr = appErrors.ErrCalendarUnavailable
	svc := newPlannerService(deps)

	board, err := svc.Board(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, board.CalendarAvailable)
	for _, day := range board.Days {
		assert.Empty(t, day.Events)
	}
	require.NotNil(t, board.Days[1].Schedule)
	require.NotNil(t, board.Days[0].Forecast)
}

func TestBoardFailsWhenWardrobeDataFails(t *testing.T) {
	deps := plannerFixture(t)
	deps.scheduleErr = errors.New("db down")
	svc := newPlannerService(deps)

	_, err := svc.Board(context.Background(), "u1")
	require.Error(t, err)
}

func TestBoardDuplicateSchedulesPickFirst(t *testing.T) {
	deps := plannerFixture(t)
	deps.schedules = append(deps.schedules, models.OutfitSchedule{
		ID: "s2", UserID: "u1", OutfitID: "o1", Date: "2024-06-11", CreatedAt: time.Unix(2, 0),
	})
	svc := newPlannerService(deps)

	for i := 0; i < 5; i++ {
		board, err := svc.Board(context.Background(), "u1")
		require.NoError(t, err)
		require.NotNil(t, board.Days[1].Schedule)
		assert.Equal(t, "s1", board.Days[1].Schedule.ID)
	}
}
