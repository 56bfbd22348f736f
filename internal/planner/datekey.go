// Package planner contains the pure reconciliation logic behind the 5-day
// board: day-key normalization, forecast deduplication, schedule hydration,
// calendar event grouping, and final board assembly. Everything here operates
// on already-fetched in-memory collections and never touches the network or
// the database.
package planner

import (
	"fmt"
	"time"
)

// dayFormat is the canonical calendar-day layout used as the join key across
// schedules, events, and forecast samples.
const dayFormat = "2006-01-02"

// DateKey identifies one calendar day in a fixed location, formatted as
// YYYY-MM-DD. Keys compare and sort lexicographically in chronological order.
type DateKey string

// KeyForTime returns the day key of t evaluated in loc.
func KeyForTime(t time.Time, loc *time.Location) DateKey {
	return DateKey(t.In(loc).Format(dayFormat))
}

// KeyForUnix returns the day key of an epoch-seconds timestamp in loc.
func KeyForUnix(sec int64, loc *time.Location) DateKey {
	return KeyForTime(time.Unix(sec, 0), loc)
}

// KeyForString normalizes a date string into a day key. Bare YYYY-MM-DD
// values are parsed as midnight in loc, never shifted through UTC, so a
// date-only value names the same calendar day in every timezone. Full
// RFC 3339 timestamps are converted into loc before keying.
func KeyForString(s string, loc *time.Location) (DateKey, error) {
	if t, err := time.ParseInLocation(dayFormat, s, loc); err == nil {
		return KeyForTime(t, loc), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "", fmt.Errorf("unparseable date %q: %w", s, err)
	}
	return KeyForTime(t, loc), nil
}

// NextDays returns n consecutive day keys starting at now's day in loc.
func NextDays(now time.Time, loc *time.Location, n int) []DateKey {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	keys := make([]DateKey, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, KeyForTime(start.AddDate(0, 0, i), loc))
	}
	return keys
}
