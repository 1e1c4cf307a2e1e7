package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeze(t *testing.T, instant time.Time) {
	t.Helper()
	restore := SetNowFunc(func() time.Time { return instant })
	t.Cleanup(restore)
}

func TestCurrentDayUsesUTC(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*3600)
	freeze(t, time.Date(2024, 5, 14, 23, 30, 0, 0, loc))

	assert.Equal(t, "2024-05-15", CurrentDay())
}

func TestDayRangeOldestFirst(t *testing.T) {
	freeze(t, time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC))

	days := DayRange(3, false)
	assert.Equal(t, []string{"2024-05-13", "2024-05-14", "2024-05-15"}, days)
}

func TestDayRangeNewestFirst(t *testing.T) {
	freeze(t, time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC))

	days := DayRange(3, true)
	assert.Equal(t, []string{"2024-05-15", "2024-05-14", "2024-05-13"}, days)
}

func TestDayRangeCrossesMonthBoundary(t *testing.T) {
	freeze(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	days := DayRange(2, false)
	// 2024 is a leap year.
	assert.Equal(t, []string{"2024-02-29", "2024-03-01"}, days)
}

func TestNowTimestampIsISO8601UTC(t *testing.T) {
	freeze(t, time.Date(2024, 5, 15, 8, 4, 5, 0, time.UTC))

	ts := NowTimestamp()
	assert.Equal(t, "2024-05-15T08:04:05Z", ts)

	parsed, err := time.Parse(time.RFC3339, ts)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestFormatDayShort(t *testing.T) {
	assert.Equal(t, "Apr 5", FormatDayShort("2024-04-05"))
	assert.Equal(t, "garbage", FormatDayShort("garbage"))
}

func TestToDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	assert.Equal(t, "2024-05-14", ToDay(time.Date(2024, 5, 15, 1, 0, 0, 0, loc)))
}
