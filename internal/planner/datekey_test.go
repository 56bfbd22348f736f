package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyForStringDateOnlySameDayInEveryTimezone(t *testing.T) {
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("UTC-8", -8*3600),
		time.FixedZone("UTC+9", 9*3600),
		time.FixedZone("UTC-11", -11*3600),
	}
	for _, loc := range zones {
		key, err := KeyForString("2024-06-10", loc)
		require.NoError(t, err)
		assert.Equal(t, DateKey("2024-06-10"), key, "zone %s", loc)
	}
}

func TestKeyForStringTimestampConvertsToLocalDay(t *testing.T) {
	// 01:30 UTC is still the previous evening in UTC-8.
	behind := time.FixedZone("UTC-8", -8*3600)
	key, err := KeyForString("2024-06-10T01:30:00Z", behind)
	require.NoError(t, err)
	assert.Equal(t, DateKey("2024-06-09"), key)

	ahead := time.FixedZone("UTC+9", 9*3600)
	key, err = KeyForString("2024-06-10T01:30:00Z", ahead)
	require.NoError(t, err)
	assert.Equal(t, DateKey("2024-06-10"), key)
}

func TestKeyForStringInvalid(t *testing.T) {
	_, err := KeyForString("not-a-date", time.UTC)
	require.Error(t, err)

	_, err = KeyForString("", time.UTC)
	require.Error(t, err)
}

func TestKeyForUnix(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	// 23:00 UTC on June 9 is already June 10 at UTC+2.
	ts := time.Date(2024, 6, 9, 23, 0, 0, 0, time.UTC).Unix()
	assert.Equal(t, DateKey("2024-06-10"), KeyForUnix(ts, loc))
}

func TestNextDays(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*3600)
	now := time.Date(2024, 6, 10, 22, 45, 0, 0, loc)
	keys := NextDays(now, loc, 5)
	require.Len(t, keys, 5)
	assert.Equal(t, []DateKey{"2024-06-10", "2024-06-11", "2024-06-12", "2024-06-13", "2024-06-14"}, keys)
}

func TestNextDaysCrossesMonthBoundary(t *testing.T) {
	now := time.Date(2024, 6, 28, 8, 0, 0, 0, time.UTC)
	keys := NextDays(now, time.UTC, 5)
	assert.Equal(t, []DateKey{"2024-06-28", "2024-06-29", "2024-06-30", "2024-07-01", "2024-07-02"}, keys)
}
