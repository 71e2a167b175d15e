// Package dateutils provides calendar-date helpers shared by the ledger,
// trend and advice packages. All helpers work on calendar days: the
// time-of-day and location of their inputs are ignored.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date layouts
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
)

// Trend range presets offered by the trend report.
const (
	RangeLast7Days  = "Last 7 days"
	RangeLast30Days = "Last 30 days"
	RangeLast90Days = "Last 90 days"
	RangeThisMonth  = "This month"
	RangeLastMonth  = "Last month"
	RangeThisYear   = "This year"
)

// RangePresets lists the supported presets in display order.
var RangePresets = []string{
	RangeLast7Days,
	RangeLast30Days,
	RangeLast90Days,
	RangeThisMonth,
	RangeLastMonth,
	RangeThisYear,
}

var parseLayouts = []string{
	DateLayoutISO,
	DateLayoutEuropean,
	DateLayoutFull,
	DateLayoutISO + "T15:04:05Z",
	DateLayoutISO + "T15:04:05-07:00",
	"2006/01/02",
	"02/01/2006",
	DateLayoutUS,
	"02-01-2006",
	"2.1.2006",
	"January 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
	"Jan 02, 2006",
}

var spaceRun = regexp.MustCompile(`\s+`)

// CleanDateString trims a date string and collapses inner whitespace.
func CleanDateString(dateStr string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseDate parses a date using the first matching layout and returns it
// as a calendar day. Day-first layouts win over US layouts for ambiguous
// slash dates.
func ParseDate(dateStr string) (time.Time, error) {
	clean := CleanDateString(dateStr)
	if clean == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, clean); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// Day truncates t to its calendar day at midnight UTC, keeping the
// year/month/day fields as seen in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// DaysInMonth returns the number of days in date's month.
func DaysInMonth(date time.Time) int {
	return EndOfMonth(date).Day()
}

// RangeStart returns the first day of a trend range preset relative to
// today. Unknown presets fall back to "Last 30 days".
func RangeStart(preset string, today time.Time) time.Time {
	today = Day(today)
	switch preset {
	case RangeLast7Days:
		return today.AddDate(0, 0, -7)
	case RangeLast30Days:
		return today.AddDate(0, 0, -30)
	case RangeLast90Days:
		return today.AddDate(0, 0, -90)
	case RangeThisMonth:
		return StartOfMonth(today)
	case RangeLastMonth:
		return StartOfMonth(StartOfMonth(today).AddDate(0, 0, -1))
	case RangeThisYear:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return today.AddDate(0, 0, -30)
	}
}

// IsRangePreset reports whether preset is one of RangePresets.
func IsRangePreset(preset string) bool {
	for _, p := range RangePresets {
		if p == preset {
			return true
		}
	}
	return false
}
