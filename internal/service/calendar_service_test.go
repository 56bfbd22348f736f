package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
	appErrors "github.com/wrdrb-app/wrdrb-api/pkg/errors"
)

type mockCalendarClient struct {
	events []models.CalendarEvent
	err    error
	from   time.Time
	to     time.Time
	calls  int
}

func (m *mockCalendarClient) ListEvents(ctx context.Context, accessToken string, from, to time.Time) ([]models.CalendarEvent, error) {
	m.calls++
	m.from, m.to = from, to
	return m.events, m.err
}

type mockSettingsProvider struct{ settings *models.UserSettings }

func (m *mockSettingsProvider) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	return m.settings, nil
}

func connectedSettings(expiry time.Time) *models.UserSettings {
	token := "ya29.valid"
	return &models.UserSettings{
		UserID:                  "u1",
		City:                    "Calgary",
		GoogleCalendarConnected: true,
		GoogleAccessToken:       &token,
		GoogleTokenExpiry:       &expiry,
	}
}

func TestUpcomingEventsFetchesWindow(t *testing.T) {
	client := &mockCalendarClient{events: []models.CalendarEvent{{ID: "e1", Title: "Dinner"}}}
	settings := &mockSettingsProvider{settings: connectedSettings(time.Now().Add(time.Hour))}
	svc := NewCalendarService(client, settings, nil, nil, 30*24*time.Hour)
	svc.now = func() time.Time { return time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC) }

	events, err := svc.UpcomingEvents(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, events, 1)

	// Window starts at local midnight, not the current instant.
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), client.from)
	assert.Equal(t, client.from.Add(30*24*time.Hour), client.to)
}

func TestUpcomingEventsNotConnected(t *testing.T) {
	settings := &mockSettingsProvider{settings: &models.UserSettings{UserID: "u1"}}
	client := &mockCalendarClient{}
	svc := NewCalendarService(client, settings, nil, nil, 0)

	_, err := svc.UpcomingEvents(context.Background(), "u1")
	assert.ErrorIs(t, err, appErrors.ErrCalendarNotConnected)
	assert.Zero(t, client.calls)
}

func TestUpcomingEventsExpiredToken(t *testing.T) {
	settings := &mockSettingsProvider{settings: connectedSettings(time.Now().Add(-time.Minute))}
	client := &mockCalendarClient{}
	svc := NewCalendarService(client, settings, nil, nil, 0)

	_, err := svc.UpcomingEvents(context.Background(), "u1")
	assert.ErrorIs(t, err, appErrors.ErrCalendarUnavailable)
	assert.Zero(t, client.calls)
}
