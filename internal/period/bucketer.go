package period

import (
	"time"

	"fjacquet/budget-insight/internal/dateutils"
)

// Days calls fn for every calendar day from start to end inclusive.
// Nothing happens when start is after end.
func Days(start, end time.Time, fn func(day time.Time)) {
	first := dateutils.Day(start)
	last := dateutils.Day(end)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// Enumerate returns every bucket of the given kind touched by the range
// [start, end], ascending and without duplicates. Buckets are included
// whether or not any data falls into them. An inverted range yields an
// empty slice.
func Enumerate(start, end time.Time, kind Kind) []Key {
	keys := []Key{}
	seen := make(map[Key]struct{})
	Days(start, end, func(day time.Time) {
		key := For(day, kind)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	})
	return keys
}
