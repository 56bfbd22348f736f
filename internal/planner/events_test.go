package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
)

func TestGroupEventsAllDayBucketsUnderLiteralDate(t *testing.T) {
	zones := []*time.Location{
		time.FixedZone("UTC-10", -10*3600),
		time.UTC,
		time.FixedZone("UTC+12", 12*3600),
	}
	for _, loc := range zones {
		grouped, dropped := GroupEvents([]models.CalendarEvent{
			{ID: "e1", Title: "Conference", StartDate: "2024-06-10"},
		}, loc)
		assert.Zero(t, dropped)
		require.Len(t, grouped[DateKey("2024-06-10")], 1, "zone %s", loc)
	}
}

func TestGroupEventsTimedTakesPrecedence(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*3600)
	// 02:00 UTC on June 11 is still June 10 locally.
	start := time.Date(2024, 6, 11, 2, 0, 0, 0, time.UTC)
	grouped, dropped := GroupEvents([]models.CalendarEvent{
		{ID: "e1", Title: "Dinner", StartDateTime: &start, StartDate: "2024-06-11"},
	}, loc)
	assert.Zero(t, dropped)
	require.Len(t, grouped[DateKey("2024-06-10")], 1)
	assert.Empty(t, grouped[DateKey("2024-06-11")])
}

func TestGroupEventsPreservesOrderWithinDay(t *testing.T) {
	loc := time.UTC
	morning := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	noon := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	grouped, _ := GroupEvents([]models.CalendarEvent{
		{ID: "e1", Title: "Standup", StartDateTime: &morning},
		{ID: "e2", Title: "Lunch", StartDateTime: &noon},
	}, loc)
	day := grouped[DateKey("2024-06-10")]
	require.Len(t, day, 2)
	assert.Equal(t, "e1", day[0].ID)
	assert.Equal(t, "e2", day[1].ID)
}

func TestGroupEventsDropsUndated(t *testing.T) {
	grouped, dropped := GroupEvents([]models.CalendarEvent{
		{ID: "e1", Title: "No start"},
		{ID: "e2", Title: "Bad date", StartDate: "June 10th"},
		{ID: "e3", Title: "Fine", StartDate: "2024-06-10"},
	}, time.UTC)
	assert.Equal(t, 2, dropped)
	require.Len(t, grouped, 1)
	require.Len(t, grouped[DateKey("2024-06-10")], 1)
}
