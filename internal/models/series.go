package models

import (
	"time"

	"fjacquet/budget-insight/internal/dateutils"
	"fjacquet/budget-insight/internal/period"

	"github.com/shopspring/decimal"
)

// DailySeries holds one amount per calendar day. Keys are midnight UTC;
// use Add and Get rather than indexing directly with arbitrary times.
type DailySeries map[time.Time]decimal.Decimal

// Add accumulates amount onto the day containing date.
func (s DailySeries) Add(date time.Time, amount decimal.Decimal) {
	day := dateutils.Day(date)
	s[day] = s[day].Add(amount)
}

// Get returns the amount for the day containing date, zero when absent.
func (s DailySeries) Get(date time.Time) decimal.Decimal {
	return s[dateutils.Day(date)]
}

// Point is one bucket of an aggregated series.
type Point struct {
	Key   period.Key      `json:"period"`
	Value decimal.Decimal `json:"value"`
}

// AggregatedSeries is a dense, ascending sequence of bucket totals.
type AggregatedSeries []Point

// Keys returns the bucket keys in order.
func (s AggregatedSeries) Keys() []period.Key {
	keys := make([]period.Key, len(s))
	for i, p := range s {
		keys[i] = p.Key
	}
	return keys
}

// Lookup returns the value for key and whether the bucket exists.
func (s AggregatedSeries) Lookup(key period.Key) (decimal.Decimal, bool) {
	for _, p := range s {
		if p.Key == key {
			return p.Value, true
		}
	}
	return decimal.Zero, false
}

// Total sums every bucket.
func (s AggregatedSeries) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s {
		total = total.Add(p.Value)
	}
	return total
}
