package models

import "time"

// CalendarEvent is a normalized Google Calendar event. Timed events carry
// StartDateTime; all-day events carry only StartDate as YYYY-MM-DD. When both
// are present StartDateTime wins for day bucketing.
type CalendarEvent struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	StartDateTime *time.Time `json:"start_date_time,omitempty"`
	StartDate     string     `json:"start_date,omitempty"`
}
