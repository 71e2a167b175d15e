package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name       string
		dateStr    string
		expectedOk bool
		expected   time.Time
	}{
		{"ISO format", "2023-01-15", true, date(2023, time.January, 15)},
		{"European format", "15.01.2023", true, date(2023, time.January, 15)},
		{"Day-first slashes", "15/01/2023", true, date(2023, time.January, 15)},
		{"US format when day-first is impossible", "01/15/2023", true, date(2023, time.January, 15)},
		{"Full timestamp drops time", "2023-01-15 10:30:45", true, date(2023, time.January, 15)},
		{"Padded whitespace", "  2023-01-15 ", true, date(2023, time.January, 15)},
		{"Long month name", "January 15, 2023", true, date(2023, time.January, 15)},
		{"Empty string", "", false, time.Time{}},
		{"Invalid format", "not a date", false, time.Time{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.dateStr)
			if !tc.expectedOk {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestCleanDateString(t *testing.T) {
	assert.Equal(t, "15 Jan 2023", CleanDateString("  15   Jan\t2023 "))
	assert.Equal(t, "", CleanDateString("   "))
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	in := time.Date(2024, time.March, 5, 23, 59, 0, 0, loc)
	assert.Equal(t, date(2024, time.March, 5), Day(in))
}

func TestMonthBoundaries(t *testing.T) {
	assert.Equal(t, date(2024, time.February, 1), StartOfMonth(date(2024, time.February, 17)))
	assert.Equal(t, date(2024, time.February, 29), EndOfMonth(date(2024, time.February, 17)))
	assert.Equal(t, 29, DaysInMonth(date(2024, time.February, 3)))
	assert.Equal(t, 28, DaysInMonth(date(2023, time.February, 3)))
	assert.Equal(t, 31, DaysInMonth(date(2023, time.December, 31)))
}

func TestRangeStart(t *testing.T) {
	today := time.Date(2024, time.March, 15, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		preset   string
		expected time.Time
	}{
		{RangeLast7Days, date(2024, time.March, 8)},
		{RangeLast30Days, date(2024, time.February, 14)},
		{RangeLast90Days, date(2023, time.December, 16)},
		{RangeThisMonth, date(2024, time.March, 1)},
		{RangeLastMonth, date(2024, time.February, 1)},
		{RangeThisYear, date(2024, time.January, 1)},
		{"unknown", date(2024, time.February, 14)},
	}

	for _, tc := range tests {
		t.Run(tc.preset, func(t *testing.T) {
			assert.Equal(t, tc.expected, RangeStart(tc.preset, today))
		})
	}
}

func TestRangeStart_LastMonthInJanuary(t *testing.T) {
	assert.Equal(t, date(2023, time.December, 1), RangeStart(RangeLastMonth, date(2024, time.January, 10)))
}

func TestIsRangePreset(t *testing.T) {
	assert.True(t, IsRangePreset(RangeThisYear))
	assert.False(t, IsRangePreset("Last 12 days"))
}
