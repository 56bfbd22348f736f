package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
	"github.com/wrdrb-app/wrdrb-api/internal/planner"
	appErrors "github.com/wrdrb-app/wrdrb-api/pkg/errors"
)

type plannerScheduleRepository interface {
	List(ctx context.Context, userID string) ([]models.OutfitSchedule, error)
}

type plannerForecastProvider interface {
	DailyForecast(ctx context.Context, city string) ([]planner.DailyForecast, error)
}

type plannerEventProvider interface {
	UpcomingEvents(ctx context.Context, userID string) ([]models.CalendarEvent, error)
}

type plannerSettingsProvider interface {
	Get(ctx context.Context, userID string) (*models.UserSettings, error)
}

// BoardResponse is the assembled 5-day board plus degradation flags. Weather
// and calendar failures never fail the board; the affected columns simply
// carry no forecast or events and the flags explain why.
type BoardResponse struct {
	Days              []planner.DayColumn `json:"days"`
	City              string              `json:"city"`
	WeatherError      string              `json:"weather_error,omitempty"`
	CalendarAvailable bool                `json:"calendar_available"`
	GeneratedAt       time.Time           `json:"generated_at"`
}

// PlannerService assembles the reconciled outfit/event/weather board.
type PlannerService struct {
	schedules plannerScheduleRepository
	outfits   scheduleOutfitRepository
	items     outfitItemCatalog
	forecast  plannerForecastProvider
	events    plannerEventProvider
	settings  plannerSettingsProvider
	logger    *zap.Logger
	location  *time.Location
	now       func() time.Time
}

// NewPlannerService constructs a PlannerService.
func NewPlannerService(
	schedules plannerScheduleRepository,
	outfits scheduleOutfitRepository,
	items outfitItemCatalog,
	forecast plannerForecastProvider,
	events plannerEventProvider,
	settings plannerSettingsProvider,
	logger *zap.Logger,
	loc *time.Location,
) *PlannerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &PlannerService{
		schedules: schedules,
		outfits:   outfits,
		items:     items,
		forecast:  forecast,
		events:    events,
		settings:  settings,
		logger:    logger,
		location:  loc,
		now:       time.Now,
	}
}

// Board gathers schedules, outfits, the closet, calendar events, and the
// forecast concurrently, then reconciles them into five day columns.
// Wardrobe data is authoritative; its failure fails the request. Weather and
// calendar are best-effort.
func (s *PlannerService) Board(ctx context.Context, userID string) (*BoardResponse, error) {
	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		schedules []models.OutfitSchedule
		outfits   []models.Outfit
		items     []models.ClothingItem
		forecast  []planner.DailyForecast
		events    []models.CalendarEvent

		weatherErr  error
		calendarErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		schedules, err = s.schedules.List(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		outfits, err = s.outfits.List(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.items.ListAll(gctx, userID)
		return err
	})
	g.Go(func() error {
		forecast, weatherErr = s.forecast.DailyForecast(gctx, settings.City)
		return nil
	})
	g.Go(func() error {
		events, calendarErr = s.events.UpcomingEvents(gctx, userID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load wardrobe data")
	}

	hydrated, skipped := planner.HydrateSchedules(schedules, outfits, items)
	if skipped > 0 {
		s.logger.Warn("board skipped schedules without outfits", zap.Int("count", skipped), zap.String("user_id", userID))
	}

	grouped, droppedEvents := planner.GroupEvents(events, s.location)
	if droppedEvents > 0 {
		s.logger.Warn("board dropped undated calendar events", zap.Int("count", droppedEvents), zap.String("user_id", userID))
	}

	response := &BoardResponse{
		City:              settings.City,
		CalendarAvailable: calendarErr == nil,
		GeneratedAt:       s.now().UTC(),
	}
	if weatherErr != nil {
		s.logger.Warn("board weather unavailable", zap.String("user_id", userID), zap.Error(weatherErr))
		response.WeatherError = appErrors.FromError(weatherErr).Message
		forecast = nil
	}
	if calendarErr != nil && !errors.Is(calendarErr, appErrors.ErrCalendarNotConnected) {
		s.logger.Warn("board calendar unavailable", zap.String("user_id", userID), zap.Error(calendarErr))
	}

	response.Days = planner.AssembleBoard(s.now(), s.location, hydrated, grouped, forecast)
	return response, nil
}
