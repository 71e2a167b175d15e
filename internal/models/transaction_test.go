package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionDirection(t *testing.T) {
	income := Transaction{Amount: decimal.NewFromInt(10)}
	expense := Transaction{Amount: decimal.NewFromInt(-10)}
	zero := Transaction{}

	assert.True(t, income.IsIncome())
	assert.False(t, income.IsExpense())
	assert.True(t, expense.IsExpense())
	assert.False(t, zero.IsIncome() || zero.IsExpense())
}

func TestTransactionCategoryOrDefault(t *testing.T) {
	assert.Equal(t, "Food", Transaction{Category: " Food "}.CategoryOrDefault())
	assert.Equal(t, CategoryUncategorized, Transaction{}.CategoryOrDefault())
}

func TestDailySeries(t *testing.T) {
	s := DailySeries{}
	s.Add(time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC), decimal.NewFromInt(10))
	s.Add(time.Date(2024, time.March, 5, 18, 0, 0, 0, time.UTC), decimal.NewFromInt(5))

	assert.Len(t, s, 1)
	assert.True(t, s.Get(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)).Equal(decimal.NewFromInt(15)))
	assert.True(t, s.Get(time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)).IsZero())
}

func TestComparisonChanged(t *testing.T) {
	assert.False(t, Comparison{Difference: decimal.RequireFromString("0.009")}.Changed())
	assert.False(t, Comparison{Difference: decimal.RequireFromString("-0.005")}.Changed())
	assert.True(t, Comparison{Difference: decimal.RequireFromString("0.01")}.Changed())
	assert.True(t, Comparison{Difference: decimal.RequireFromString("-50")}.Changed())
}
