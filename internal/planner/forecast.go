package planner

import (
	"math"
	"strings"
	"time"
)

// Icon categories rendered by the board. Conditions outside the known set
// fall back to IconDefault.
const (
	IconClearDay     = "clear-day"
	IconClearNight   = "clear-night"
	IconCloudy       = "cloudy"
	IconRain         = "rain"
	IconDrizzle      = "drizzle"
	IconSnow         = "snow"
	IconThunderstorm = "thunderstorm"
	IconFog          = "fog"
	IconDefault      = "default"
)

// placeholderCondition marks a synthesized entry for a day the feed skipped.
const placeholderCondition = "Unavailable"

// maxBoardDays bounds the deduplicated forecast to the board horizon.
const maxBoardDays = 5

// ForecastSample is one raw reading from the 3-hour forecast feed.
type ForecastSample struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
}

// DailyForecast is the single representative reading kept for a calendar day.
type DailyForecast struct {
	Key         DateKey   `json:"date"`
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

// Placeholder reports whether this entry was synthesized because the feed
// carried no sample for its day.
func (f DailyForecast) Placeholder() bool {
	return f.Condition == placeholderCondition
}

// IconFor maps a condition and description onto an icon category. Matching is
// case-insensitive substring over both strings; hour is the sample's local
// hour and picks day vs night for clear skies, with daytime being [6,18).
func IconFor(condition, description string, hour int) string {
	text := strings.ToLower(condition + " " + description)
	switch {
	case strings.Contains(text, "thunder"):
		return IconThunderstorm
	case strings.Contains(text, "drizzle"):
		return IconDrizzle
	case strings.Contains(text, "rain"):
		return IconRain
	case strings.Contains(text, "snow"):
		return IconSnow
	case strings.Contains(text, "mist"), strings.Contains(text, "fog"), strings.Contains(text, "haze"):
		return IconFog
	case strings.Contains(text, "clear"):
		if hour >= 6 && hour < 18 {
			return IconClearDay
		}
		return IconClearNight
	case strings.Contains(text, "cloud"):
		return IconCloudy
	default:
		return IconDefault
	}
}

// DedupDaily reduces a chronological forecast feed to at most one reading per
// calendar day, keeping the first sample seen for each day. Temperatures are
// rounded to the nearest whole degree for display. The scan stops
// once five distinct days are collected and today's day is among them. When
// the feed skips today entirely, a placeholder entry is prepended so the
// board always has a column for today, and the tail is trimmed back to five.
func DedupDaily(samples []ForecastSample, now time.Time, loc *time.Location) []DailyForecast {
	today := KeyForTime(now, loc)
	seen := make(map[DateKey]struct{}, maxBoardDays)
	daily := make([]DailyForecast, 0, maxBoardDays)
	todaySeen := false

	for _, s := range samples {
		key := KeyForTime(s.Time, loc)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if key == today {
			todaySeen = true
		}
		local := s.Time.In(loc)
		daily = append(daily, DailyForecast{
			Key:         key,
			Time:        s.Time,
			Temperature: math.Round(s.Temperature),
			Condition:   s.Condition,
			Description: s.Description,
			Icon:        IconFor(s.Condition, s.Description, local.Hour()),
		})
		if len(daily) >= maxBoardDays && todaySeen {
			break
		}
	}

	if !todaySeen {
		local := now.In(loc)
		midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		placeholder := DailyForecast{
			Key:       today,
			Time:      midnight,
			Condition: placeholderCondition,
			Icon:      IconDefault,
		}
		daily = append([]DailyForecast{placeholder}, daily...)
	}
	if len(daily) > maxBoardDays {
		daily = daily[:maxBoardDays]
	}
	return daily
}
