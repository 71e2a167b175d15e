// Package ledger reads transactions and exposes the daily and per-category
// figures the trend and advice features consume.
package ledger

import (
	"context"
	"sort"
	"time"

	"fjacquet/budget-insight/internal/models"
)

// Source provides transaction aggregates. Dates are calendar days.
type Source interface {
	DailyIncomes(ctx context.Context) (models.DailySeries, error)
	DailyExpenses(ctx context.Context) (models.DailySeries, error)
	CategoryExpenses(ctx context.Context) (*models.Allocation, error)
	Dates(ctx context.Context) ([]time.Time, error)
}

// Summary holds every aggregate derived from a set of transactions.
type Summary struct {
	Incomes          models.DailySeries
	Expenses         models.DailySeries
	CategoryExpenses *models.Allocation
	Dates            []time.Time
}

// Summarize folds transactions into daily incomes, daily expenses (as
// positive amounts), expense totals per category sorted by name, and the
// sorted distinct booking dates.
func Summarize(txs []models.Transaction) Summary {
	s := Summary{
		Incomes:          models.DailySeries{},
		Expenses:         models.DailySeries{},
		CategoryExpenses: &models.Allocation{},
		Dates:            []time.Time{},
	}

	perCategory := make(map[string]models.CategoryAmount)
	seen := make(map[time.Time]struct{})
	for _, tx := range txs {
		day := tx.Day()
		if _, ok := seen[day]; !ok {
			seen[day] = struct{}{}
			s.Dates = append(s.Dates, day)
		}

		switch {
		case tx.IsIncome():
			s.Incomes.Add(day, tx.Amount)
		case tx.IsExpense():
			amount := tx.Amount.Abs()
			s.Expenses.Add(day, amount)
			category := tx.CategoryOrDefault()
			entry := perCategory[category]
			entry.Category = category
			entry.Amount = entry.Amount.Add(amount)
			perCategory[category] = entry
		}
	}

	names := make([]string, 0, len(perCategory))
	for name := range perCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.CategoryExpenses.Set(name, perCategory[name].Amount)
	}

	sort.Slice(s.Dates, func(i, j int) bool { return s.Dates[i].Before(s.Dates[j]) })
	return s
}

// MemorySource serves aggregates from an in-memory transaction list.
type MemorySource struct {
	summary Summary
}

// NewMemorySource summarizes txs once.
func NewMemorySource(txs []models.Transaction) *MemorySource {
	return &MemorySource{summary: Summarize(txs)}
}

// DailyIncomes implements Source.
func (m *MemorySource) DailyIncomes(ctx context.Context) (models.DailySeries, error) {
	return m.summary.Incomes, ctx.Err()
}

// DailyExpenses implements Source.
func (m *MemorySource) DailyExpenses(ctx context.Context) (models.DailySeries, error) {
	return m.summary.Expenses, ctx.Err()
}

// CategoryExpenses implements Source.
func (m *MemorySource) CategoryExpenses(ctx context.Context) (*models.Allocation, error) {
	return m.summary.CategoryExpenses.Clone(), ctx.Err()
}

// Dates implements Source.
func (m *MemorySource) Dates(ctx context.Context) ([]time.Time, error) {
	out := make([]time.Time, len(m.summary.Dates))
	copy(out, m.summary.Dates)
	return out, ctx.Err()
}
