// Package trend turns sparse daily income and expense figures into dense
// per-period series and a comparable budget line.
package trend

import (
	"time"

	"fjacquet/budget-insight/internal/models"
	"fjacquet/budget-insight/internal/period"

	"github.com/shopspring/decimal"
)

// Aggregate sums daily income and expense into one bucket per period of
// kind touched by [start, end]. Every bucket is present, zero when no data
// falls into it, and buckets are ascending. Days outside the range are
// ignored. Both results share the same key sequence.
func Aggregate(income, expense models.DailySeries, start, end time.Time, kind period.Kind) (models.AggregatedSeries, models.AggregatedSeries) {
	keys := period.Enumerate(start, end, kind)
	index := make(map[period.Key]int, len(keys))
	incomeOut := make(models.AggregatedSeries, len(keys))
	expenseOut := make(models.AggregatedSeries, len(keys))
	for i, key := range keys {
		index[key] = i
		incomeOut[i] = models.Point{Key: key, Value: decimal.Zero}
		expenseOut[i] = models.Point{Key: key, Value: decimal.Zero}
	}

	period.Days(start, end, func(day time.Time) {
		i := index[period.For(day, kind)]
		incomeOut[i].Value = incomeOut[i].Value.Add(income.Get(day))
		expenseOut[i].Value = expenseOut[i].Value.Add(expense.Get(day))
	})

	return incomeOut, expenseOut
}
