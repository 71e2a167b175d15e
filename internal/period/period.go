// Package period maps calendar dates onto regular reporting buckets
// (day, week, fortnight, month, quarter, year) and enumerates the buckets
// a date range touches.
package period

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/budget-insight/internal/dateutils"
)

// Kind is the granularity of a bucket.
type Kind int

// Supported granularities, in increasing length.
const (
	Day Kind = iota
	Week
	Fortnight
	Month
	Quarter
	Year
)

var kindNames = map[Kind]string{
	Day:       "day",
	Week:      "week",
	Fortnight: "fortnight",
	Month:     "month",
	Quarter:   "quarter",
	Year:      "year",
}

// Kinds lists every granularity in increasing length.
var Kinds = []Kind{Day, Week, Fortnight, Month, Quarter, Year}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind accepts both the short names ("week") and the interval labels
// of the trend view ("Weekly"), case-insensitively. Anything unrecognised
// maps to Day.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "weekly":
		return Week
	case "fortnight", "fortnightly":
		return Fortnight
	case "month", "monthly":
		return Month
	case "quarter", "quarterly":
		return Quarter
	case "year", "yearly":
		return Year
	default:
		return Day
	}
}

// Key identifies one calendar bucket. Keys are comparable and can be used
// as map keys.
//
// Index meaning per kind:
//   - Day: day of year (1..366)
//   - Week: ISO week number, Year is the ISO year
//   - Fortnight: representative ISO week (odd, fortnightIndex*2+1), Year is the ISO year
//   - Month: 1..12
//   - Quarter: 1..4
//   - Year: always 0
type Key struct {
	Kind  Kind
	Year  int
	Index int
}

// Compare orders keys by kind, then chronologically within a kind.
func Compare(a, b Key) int {
	switch {
	case a.Kind != b.Kind:
		return cmpInt(int(a.Kind), int(b.Kind))
	case a.Year != b.Year:
		return cmpInt(a.Year, b.Year)
	default:
		return cmpInt(a.Index, b.Index)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether k sorts strictly before other.
func (k Key) Before(other Key) bool {
	return Compare(k, other) < 0
}

// Start returns the first calendar day covered by the bucket.
func (k Key) Start() time.Time {
	switch k.Kind {
	case Week, Fortnight:
		return isoWeekStart(k.Year, k.Index)
	case Month:
		return time.Date(k.Year, time.Month(k.Index), 1, 0, 0, 0, 0, time.UTC)
	case Quarter:
		return time.Date(k.Year, time.Month((k.Index-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	case Year:
		return time.Date(k.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(k.Year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, k.Index-1)
	}
}

func (k Key) String() string {
	switch k.Kind {
	case Week:
		return fmt.Sprintf("%04d-W%02d", k.Year, k.Index)
	case Fortnight:
		return fmt.Sprintf("%04d-F%02d", k.Year, k.Index)
	case Month:
		return fmt.Sprintf("%04d-%02d", k.Year, k.Index)
	case Quarter:
		return fmt.Sprintf("%04d-Q%d", k.Year, k.Index)
	case Year:
		return fmt.Sprintf("%04d", k.Year)
	default:
		return k.Start().Format("2006-01-02")
	}
}

// MarshalText encodes the key as its label so series serialize with
// readable keys.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// isoWeekStart returns the Monday of ISO week `week` in ISO year `year`.
// January 4th always falls in ISO week 1.
func isoWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDate(0, 0, -offset+(week-1)*7)
}

// FortnightIndex returns the zero-based fortnight an ISO week belongs to.
// Weeks 1-2 share index 0, weeks 3-4 index 1, and so on. Week 53 gets an
// index of its own; no adjustment is made at ISO year boundaries.
func FortnightIndex(isoWeek int) int {
	return (isoWeek - 1) / 2
}

// For returns the bucket of the given kind that contains date.
func For(date time.Time, kind Kind) Key {
	day := dateutils.Day(date)
	y, m := day.Year(), day.Month()

	switch kind {
	case Week:
		isoYear, isoWeek := day.ISOWeek()
		return Key{Kind: Week, Year: isoYear, Index: isoWeek}
	case Fortnight:
		isoYear, isoWeek := day.ISOWeek()
		return Key{Kind: Fortnight, Year: isoYear, Index: FortnightIndex(isoWeek)*2 + 1}
	case Month:
		return Key{Kind: Month, Year: y, Index: int(m)}
	case Quarter:
		return Key{Kind: Quarter, Year: y, Index: (int(m)-1)/3 + 1}
	case Year:
		return Key{Kind: Year, Year: y}
	default:
		return Key{Kind: Day, Year: y, Index: day.YearDay()}
	}
}
