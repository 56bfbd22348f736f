package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feed builds a 3-hourly feed of n samples starting at start.
func feed(start time.Time, n int, condition string) []ForecastSample {
	samples := make([]ForecastSample, 0, n)
	for i := 0; i < n; i++ {
		samples = append(samples, ForecastSample{
			Time:        start.Add(time.Duration(i) * 3 * time.Hour),
			Temperature: 10 + float64(i),
			Condition:   condition,
			Description: "",
		})
	}
	return samples
}

func TestDedupDailyOnePerDayCappedAtFive(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*3600)
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, loc)
	// 6 days of coverage, 8 samples per day.
	samples := feed(time.Date(2024, 6, 10, 0, 0, 0, 0, loc), 48, "Clouds")

	daily := DedupDaily(samples, now, loc)
	require.Len(t, daily, 5)

	seen := map[DateKey]bool{}
	for _, d := range daily {
		assert.False(t, seen[d.Key], "duplicate day %s", d.Key)
		seen[d.Key] = true
	}
	assert.Equal(t, DateKey("2024-06-10"), daily[0].Key)
	// First sample of each day wins.
	assert.Equal(t, 10.0, daily[0].Temperature)
	assert.Equal(t, 18.0, daily[1].Temperature)
}

func TestDedupDailyFeedStartsMidAfternoon(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*3600)
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, loc)
	samples := feed(time.Date(2024, 6, 10, 15, 0, 0, 0, loc), 40, "Clear")

	daily := DedupDaily(samples, now, loc)
	require.Len(t, daily, 5)
	assert.Equal(t, DateKey("2024-06-10"), daily[0].Key)
	assert.False(t, daily[0].Placeholder())
	assert.Equal(t, 10.0, daily[0].Temperature)
	assert.Equal(t, IconClearDay, daily[0].Icon)
}

func TestDedupDailySynthesizesTodayWhenFeedStartsTomorrow(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*3600)
	now := time.Date(2024, 6, 10, 23, 0, 0, 0, loc)
	samples := feed(time.Date(2024, 6, 11, 0, 0, 0, 0, loc), 48, "Rain")

	daily := DedupDaily(samples, now, loc)
	require.Len(t, daily, 5)

	assert.Equal(t, DateKey("2024-06-10"), daily[0].Key)
	assert.True(t, daily[0].Placeholder())
	assert.Equal(t, "Unavailable", daily[0].Condition)
	assert.Zero(t, daily[0].Temperature)
	assert.Equal(t, IconDefault, daily[0].Icon)

	// Tail trimmed back to five after the prepend.
	assert.Equal(t, DateKey("2024-06-11"), daily[1].Key)
	assert.Equal(t, DateKey("2024-06-14"), daily[4].Key)
}

func TestDedupDailyRoundsTemperature(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, loc)
	samples := []ForecastSample{
		{Time: now, Temperature: 12.6, Condition: "Clouds"},
		{Time: now.Add(24 * time.Hour), Temperature: -3.5, Condition: "Snow"},
	}

	daily := DedupDaily(samples, now, loc)
	require.Len(t, daily, 2)
	assert.Equal(t, 13.0, daily[0].Temperature)
	assert.Equal(t, -4.0, daily[1].Temperature)
}

func TestDedupDailyEmptyFeed(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, loc)
	daily := DedupDaily(nil, now, loc)
	require.Len(t, daily, 1)
	assert.True(t, daily[0].Placeholder())
	assert.Equal(t, DateKey("2024-06-10"), daily[0].Key)
}

func TestDedupDailyIdempotent(t *testing.T) {
	loc := time.FixedZone("UTC+1", 3600)
	now := time.Date(2024, 6, 10, 23, 30, 0, 0, loc)
	samples := feed(time.Date(2024, 6, 11, 2, 0, 0, 0, loc), 40, "Snow")

	first := DedupDaily(samples, now, loc)
	resampled := make([]ForecastSample, 0, len(first))
	for _, d := range first {
		resampled = append(resampled, ForecastSample{
			Time:        d.Time,
			Temperature: d.Temperature,
			Condition:   d.Condition,
			Description: d.Description,
		})
	}
	second := DedupDaily(resampled, now, loc)
	assert.Equal(t, first, second)
}

func TestIconFor(t *testing.T) {
	cases := []struct {
		condition   string
		description string
		hour        int
		want        string
	}{
		{"Clear", "clear sky", 12, IconClearDay},
		{"Clear", "clear sky", 5, IconClearNight},
		{"Clear", "clear sky", 18, IconClearNight},
		{"Clear", "clear sky", 6, IconClearDay},
		{"Clouds", "overcast clouds", 12, IconCloudy},
		{"Rain", "light rain", 9, IconRain},
		{"Drizzle", "light intensity drizzle", 9, IconDrizzle},
		{"Snow", "heavy snow", 3, IconSnow},
		{"Thunderstorm", "thunderstorm with rain", 15, IconThunderstorm},
		{"Mist", "", 7, IconFog},
		{"Fog", "", 7, IconFog},
		{"Haze", "", 7, IconFog},
		{"Tornado", "", 12, IconDefault},
		{"", "", 12, IconDefault},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IconFor(tc.condition, tc.description, tc.hour),
			"condition=%q description=%q hour=%d", tc.condition, tc.description, tc.hour)
	}
}
