package trend

import (
	"context"
	"fmt"
	"time"

	"fjacquet/budget-insight/internal/dateutils"
	"fjacquet/budget-insight/internal/logging"
	"fjacquet/budget-insight/internal/models"
	"fjacquet/budget-insight/internal/period"

	"golang.org/x/sync/errgroup"
)

// SeriesSource supplies sparse daily income and expense totals.
type SeriesSource interface {
	DailyIncomes(ctx context.Context) (models.DailySeries, error)
	DailyExpenses(ctx context.Context) (models.DailySeries, error)
}

// BudgetLoader supplies the current category budgets.
type BudgetLoader interface {
	Load(ctx context.Context) (*models.Allocation, error)
}

// Report holds the three chart series for one range and interval. All
// series share the same ascending key sequence.
type Report struct {
	Range    string                  `json:"range"`
	Interval string                  `json:"interval"`
	Kind     period.Kind             `json:"-"`
	Start    time.Time               `json:"start"`
	End      time.Time               `json:"end"`
	Monthly  string                  `json:"monthly_budget"`
	Income   models.AggregatedSeries `json:"income"`
	Expense  models.AggregatedSeries `json:"expense"`
	Budget   models.AggregatedSeries `json:"budget"`
}

// Reporter builds trend reports from a transaction source and the budget
// store.
type Reporter struct {
	source  SeriesSource
	budgets BudgetLoader
	logger  logging.Logger
}

// NewReporter creates a Reporter.
func NewReporter(source SeriesSource, budgets BudgetLoader, logger logging.Logger) *Reporter {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Reporter{source: source, budgets: budgets, logger: logger}
}

// Build loads incomes, expenses and budgets concurrently and aggregates
// them over the named range ending today. Unknown range names fall back
// to the last 30 days.
func (r *Reporter) Build(ctx context.Context, rangeName string, kind period.Kind, today time.Time) (*Report, error) {
	if !dateutils.IsRangePreset(rangeName) {
		r.logger.Warn("Unknown trend range, using default",
			logging.F(logging.FieldRange, rangeName))
		rangeName = dateutils.RangeLast30Days
	}

	end := dateutils.Day(today)
	start := dateutils.RangeStart(rangeName, end)

	var (
		incomes  models.DailySeries
		expenses models.DailySeries
		budgets  *models.Allocation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		incomes, err = r.source.DailyIncomes(gctx)
		if err != nil {
			return fmt.Errorf("failed to load daily incomes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		expenses, err = r.source.DailyExpenses(gctx)
		if err != nil {
			return fmt.Errorf("failed to load daily expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		budgets, err = r.budgets.Load(gctx)
		if err != nil {
			return fmt.Errorf("failed to load budgets: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	income, expense := Aggregate(incomes, expenses, start, end, kind)
	monthly := MonthlyBudget(budgets)
	budget := BudgetLine(income, monthly, DailyBudget(monthly, end), kind)

	r.logger.Debug("Built trend report",
		logging.F(logging.FieldRange, rangeName),
		logging.F(logging.FieldInterval, kind.String()),
		logging.F(logging.FieldStartDate, dateutils.ToISODate(start)),
		logging.F(logging.FieldEndDate, dateutils.ToISODate(end)),
		logging.F(logging.FieldCount, len(income)))

	return &Report{
		Range:    rangeName,
		Interval: kind.String(),
		Kind:     kind,
		Start:    start,
		End:      end,
		Monthly:  monthly.StringFixed(2),
		Income:   income,
		Expense:  expense,
		Budget:   budget,
	}, nil
}
