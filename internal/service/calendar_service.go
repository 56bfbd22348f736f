package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
	appErrors "github.com/wrdrb-app/wrdrb-api/pkg/errors"
)

type calendarClient interface {
	ListEvents(ctx context.Context, accessToken string, from, to time.Time) ([]models.CalendarEvent, error)
}

type calendarSettings interface {
	Get(ctx context.Context, userID string) (*models.UserSettings, error)
}

// CalendarService lists a user's upcoming Google Calendar events using the
// token stored in their settings. An expired or missing token means
// "calendar unavailable"; the caller decides how to degrade.
type CalendarService struct {
	client   calendarClient
	settings calendarSettings
	metrics  *MetricsService
	logger   *zap.Logger
	window   time.Duration
	now      func() time.Time
}

// NewCalendarService constructs a CalendarService. window is how far ahead
// events are fetched; the board renders only a 5-day slice of it.
func NewCalendarService(client calendarClient, settings calendarSettings, metrics *MetricsService, logger *zap.Logger, window time.Duration) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if window <= 0 {
		window = 30 * 24 * time.Hour
	}
	return &CalendarService{
		client:   client,
		settings: settings,
		metrics:  metrics,
		logger:   logger,
		window:   window,
		now:      time.Now,
	}
}

// UpcomingEvents returns events from today's local midnight through the
// configured window.
func (s *CalendarService) UpcomingEvents(ctx context.Context, userID string) ([]models.CalendarEvent, error) {
	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !settings.GoogleCalendarConnected {
		return nil, appErrors.ErrCalendarNotConnected
	}
	if !settings.HasValidGoogleToken(now) {
		s.logger.Info("calendar token missing or expired", zap.String("user_id", userID))
		return nil, appErrors.ErrCalendarUnavailable
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	events, err := s.client.ListEvents(ctx, *settings.GoogleAccessToken, midnight, midnight.Add(s.window))
	s.metrics.RecordUpstream("google_calendar", err != nil)
	if err != nil {
		return nil, err
	}
	return events, nil
}
