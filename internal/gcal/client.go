// Package gcal wraps the Google Calendar API for read-only event listing on
// the user's primary calendar. Each call builds a service around the user's
// own OAuth access token; no app-level credentials are involved.
package gcal

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
	appErrors "github.com/wrdrb-app/wrdrb-api/pkg/errors"
)

// Client lists events from Google Calendar.
type Client struct {
	logger     *zap.Logger
	maxResults int64
}

// NewClient constructs a calendar client. maxResults caps a single listing;
// zero or negative means the API default.
func NewClient(logger *zap.Logger, maxResults int64) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{logger: logger, maxResults: maxResults}
}

// ListEvents returns the user's primary-calendar events between from and to,
// expanded to single events and ordered by start time. accessToken is the
// user's OAuth token; the caller is responsible for checking its expiry.
func (c *Client) ListEvents(ctx context.Context, accessToken string, from, to time.Time) ([]models.CalendarEvent, error) {
	if accessToken == "" {
		return nil, appErrors.ErrCalendarNotConnected
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	service, err := calendar.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("build calendar service: %w", err)
	}

	call := service.Events.List("primary").
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		ShowDeleted(false).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)
	if c.maxResults > 0 {
		call = call.MaxResults(c.maxResults)
	}

	result, err := call.Do()
	if err != nil {
		c.logger.Warn("calendar list failed", zap.Error(err))
		return nil, appErrors.ErrCalendarUnavailable.Wrap(err)
	}

	events := make([]models.CalendarEvent, 0, len(result.Items))
	for _, item := range result.Items {
		if item == nil {
			continue
		}
		event := models.CalendarEvent{
			ID:          item.Id,
			Title:       item.Summary,
			Description: item.Description,
		}
		if item.Start != nil {
			if item.Start.DateTime != "" {
				if start, err := time.Parse(time.RFC3339, item.Start.DateTime); err == nil {
					event.StartDateTime = &start
				}
			}
			event.StartDate = item.Start.Date
		}
		events = append(events, event)
	}
	return events, nil
}
