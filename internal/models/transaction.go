package models

import (
	"strings"
	"time"

	"fjacquet/budget-insight/internal/dateutils"

	"github.com/shopspring/decimal"
)

// Transaction is one ledger row. A positive amount is income, a negative
// amount is an expense.
type Transaction struct {
	Date        time.Time       `json:"date" yaml:"date"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Category    string          `json:"category" yaml:"category"`
	Description string          `json:"description" yaml:"description"`
}

// IsIncome returns true for strictly positive amounts.
func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// IsExpense returns true for strictly negative amounts.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// Day returns the calendar day the transaction was booked on.
func (t Transaction) Day() time.Time {
	return dateutils.Day(t.Date)
}

// CategoryOrDefault returns the category, or CategoryUncategorized when blank.
func (t Transaction) CategoryOrDefault() string {
	if c := strings.TrimSpace(t.Category); c != "" {
		return c
	}
	return CategoryUncategorized
}
