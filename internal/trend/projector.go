package trend

import (
	"time"

	"fjacquet/budget-insight/internal/dateutils"
	"fjacquet/budget-insight/internal/models"
	"fjacquet/budget-insight/internal/period"

	"github.com/shopspring/decimal"
)

// Conversion factors from a monthly budget to other bucket lengths.
var (
	WeeksPerMonth      = decimal.RequireFromString("4.33")
	FortnightsPerMonth = decimal.RequireFromString("2.165")
	MonthsPerQuarter   = decimal.NewFromInt(3)
	MonthsPerYear      = decimal.NewFromInt(12)
)

// ProjectBudget returns the budget comparable with one bucket of kind.
func ProjectBudget(monthly, daily decimal.Decimal, kind period.Kind) decimal.Decimal {
	switch kind {
	case period.Day:
		return daily
	case period.Week:
		return monthly.Div(WeeksPerMonth)
	case period.Month:
		return monthly
	case period.Quarter:
		return monthly.Mul(MonthsPerQuarter)
	case period.Year:
		return monthly.Mul(MonthsPerYear)
	default:
		return monthly.Div(FortnightsPerMonth)
	}
}

// MonthlyBudget is the sum of all category budgets.
func MonthlyBudget(budgets *models.Allocation) decimal.Decimal {
	return budgets.Total()
}

// DailyBudget spreads monthly over the days of ref's month.
func DailyBudget(monthly decimal.Decimal, ref time.Time) decimal.Decimal {
	return monthly.Div(decimal.NewFromInt(int64(dateutils.DaysInMonth(ref))))
}

// BudgetLine projects the budget once per key of series.
func BudgetLine(series models.AggregatedSeries, monthly, daily decimal.Decimal, kind period.Kind) models.AggregatedSeries {
	line := make(models.AggregatedSeries, len(series))
	value := ProjectBudget(monthly, daily, kind)
	for i, p := range series {
		line[i] = models.Point{Key: p.Key, Value: value}
	}
	return line
}
