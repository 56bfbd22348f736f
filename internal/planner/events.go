package planner

import (
	"time"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
)

// GroupEvents buckets calendar events by day key. Timed events take
// precedence over their all-day representation; all-day events bucket under
// their literal date in every timezone. Events carrying neither
// representation, or an unparseable date, are dropped and counted so the
// caller can log them. Upstream chronological order is preserved within each
// day.
func GroupEvents(events []models.CalendarEvent, loc *time.Location) (map[DateKey][]models.CalendarEvent, int) {
	grouped := make(map[DateKey][]models.CalendarEvent)
	dropped := 0
	for _, ev := range events {
		var key DateKey
		switch {
		case ev.StartDateTime != nil:
			key = KeyForTime(*ev.StartDateTime, loc)
		case ev.StartDate != "":
			k, err := KeyForString(ev.StartDate, loc)
			if err != nil {
				dropped++
				continue
			}
			key = k
		default:
			dropped++
			continue
		}
		grouped[key] = append(grouped[key], ev)
	}
	return grouped, dropped
}
