package common

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"fjacquet/budget-insight/internal/models"
	"fjacquet/budget-insight/internal/prefs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(t *testing.T) *prefs.Preferences {
	t.Helper()
	p, err := prefs.New("USD", "$", "DARK", nil)
	require.NoError(t, err)
	return p
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "Mar 05, 2024 09:07", FormatTimestamp(time.Date(2024, time.March, 5, 9, 7, 0, 0, time.UTC)))
	assert.Equal(t, "never", FormatTimestamp(time.Time{}))
}

func TestWriteJSON(t *testing.T) {
	var out bytes.Buffer
	budgets := models.NewAllocation(
		models.CategoryAmount{Category: "Rent", Amount: decimal.NewFromInt(1200)},
		models.CategoryAmount{Category: "Food", Amount: decimal.RequireFromString("450.5")},
	)
	require.NoError(t, WriteJSON(&out, budgets))
	assert.Equal(t, "{\n  \"Rent\": 1200,\n  \"Food\": 450.5\n}\n", out.String())
}

func TestPrintAllocation(t *testing.T) {
	var out bytes.Buffer
	budgets := models.NewAllocation(
		models.CategoryAmount{Category: "Rent", Amount: decimal.NewFromInt(1200)},
		models.CategoryAmount{Category: "Food", Amount: decimal.NewFromInt(450)},
	)
	require.NoError(t, PrintAllocation(&out, budgets, usd(t)))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "Rent"))
	assert.True(t, strings.HasPrefix(lines[2], "Food"))
	assert.Contains(t, lines[3], "$1650.00")

	out.Reset()
	require.NoError(t, PrintAllocation(&out, &models.Allocation{}, usd(t)))
	assert.Equal(t, "No budgets defined.\n", out.String())
}

func TestPrintComparisons(t *testing.T) {
	rows := []models.Comparison{
		{Category: "Rent", Current: decimal.NewFromInt(1200), Suggested: decimal.NewFromInt(1200), Difference: decimal.Zero},
		{Category: "Food", Current: decimal.NewFromInt(450), Suggested: decimal.NewFromInt(500), Difference: decimal.NewFromInt(50)},
		{Category: "Fun", Current: decimal.NewFromInt(100), Suggested: decimal.NewFromInt(50), Difference: decimal.NewFromInt(-50)},
	}

	var out bytes.Buffer
	require.NoError(t, PrintComparisons(&out, rows, usd(t)))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "no change")
	assert.Contains(t, lines[2], "+$50.00")
	assert.Contains(t, lines[3], "-$50.00")
}

func TestPrintTransactions(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PrintTransactions(&out, nil, usd(t)))
	assert.Equal(t, "No transactions recorded.\n", out.String())

	out.Reset()
	txs := []models.Transaction{{Date: time.Date(2024, time.March, 5, 18, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(-9), Description: "Coffee"}}
	require.NoError(t, PrintTransactions(&out, txs, usd(t)))
	assert.Contains(t, out.String(), "2024-03-05")
	assert.Contains(t, out.String(), "-$9.00")
	assert.Contains(t, out.String(), "Uncategorized")
	assert.Contains(t, out.String(), "Coffee")
}
