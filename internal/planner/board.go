package planner

import (
	"sort"
	"time"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
)

// DayColumn is one reconciled day on the board. A column is always emitted
// for each of the five days; missing data shows up as a nil schedule, an
// empty event list, or a nil forecast, never as an omitted column.
type DayColumn struct {
	Date     DateKey                  `json:"date"`
	Schedule *models.HydratedSchedule `json:"schedule,omitempty"`
	Events   []models.CalendarEvent   `json:"events"`
	Forecast *DailyForecast           `json:"forecast,omitempty"`
}

// AssembleBoard merges hydrated schedules, grouped events, and the
// deduplicated forecast into columns for today and the next four days.
// When more than one schedule lands on the same day, the first one in input
// order wins; callers pass schedules ordered by date then creation time, so
// the pick is stable across runs.
func AssembleBoard(
	now time.Time,
	loc *time.Location,
	schedules []models.HydratedSchedule,
	events map[DateKey][]models.CalendarEvent,
	forecast []DailyForecast,
) []DayColumn {
	keys := NextDays(now, loc, maxBoardDays)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	scheduleByDay := make(map[DateKey]*models.HydratedSchedule, len(schedules))
	for i := range schedules {
		key, err := KeyForString(schedules[i].Date, loc)
		if err != nil {
			continue
		}
		if _, ok := scheduleByDay[key]; !ok {
			scheduleByDay[key] = &schedules[i]
		}
	}

	forecastByDay := make(map[DateKey]*DailyForecast, len(forecast))
	for i := range forecast {
		if _, ok := forecastByDay[forecast[i].Key]; !ok {
			forecastByDay[forecast[i].Key] = &forecast[i]
		}
	}

	board := make([]DayColumn, 0, len(keys))
	for _, key := range keys {
		dayEvents := events[key]
		if dayEvents == nil {
			dayEvents = []models.CalendarEvent{}
		}
		board = append(board, DayColumn{
			Date:     key,
			Schedule: scheduleByDay[key],
			Events:   dayEvents,
			Forecast: forecastByDay[key],
		})
	}
	return board
}
