package budget

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"fjacquet/budget-insight/internal/aiclient"
	"fjacquet/budget-insight/internal/config"
	"fjacquet/budget-insight/internal/container"
	"fjacquet/budget-insight/internal/logging"
	"fjacquet/budget-insight/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, completer aiclient.Completer) *container.Container {
	t.Helper()
	cfg := &config.Config{
		Log:         config.LogConfig{Level: "info", Format: "text"},
		Data:        config.DataConfig{Directory: t.TempDir(), BudgetsFile: "budgets.yaml"},
		Ledger:      config.LedgerConfig{Driver: config.DriverCSV},
		Trend:       config.TrendConfig{Range: "Last 30 days", Interval: "Daily"},
		Preferences: config.PreferencesConfig{CurrencyCode: "USD", CurrencySymbol: "$", Theme: "DARK"},
	}
	opts := []container.Option{container.WithLogger(logging.NewMockLogger())}
	if completer != nil {
		opts = append(opts, container.WithCompleter(completer))
	}
	c, err := container.NewContainer(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func seed(t *testing.T, c *container.Container) {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, Set(context.Background(), c, &out, "Food", "600"))
	require.NoError(t, Set(context.Background(), c, &out, "Transport", "400"))
}

func TestList_Empty(t *testing.T) {
	c := newApp(t, nil)
	var out bytes.Buffer
	require.NoError(t, List(context.Background(), c, &out, false))
	assert.Equal(t, "No budgets defined.\n", out.String())
}

func TestSetAndList(t *testing.T) {
	c := newApp(t, nil)
	var out bytes.Buffer
	require.NoError(t, Set(context.Background(), c, &out, " Food ", "612.5"))
	assert.Equal(t, "Budget for Food set to $612.50\n", out.String())

	out.Reset()
	require.NoError(t, List(context.Background(), c, &out, false))
	assert.Contains(t, out.String(), "CATEGORY")
	assert.Contains(t, out.String(), "Food")
	assert.Contains(t, out.String(), "$612.50")

	out.Reset()
	require.NoError(t, List(context.Background(), c, &out, true))
	assert.JSONEq(t, `{"Food": 612.5}`, out.String())
}

func TestSet_InvalidAmount(t *testing.T) {
	c := newApp(t, nil)
	var out bytes.Buffer

	err := Set(context.Background(), c, &out, "Food", "lots")
	var verr *parsererror.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "amount", verr.Field)

	err = Set(context.Background(), c, &out, "Food", "-5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")

	err = Set(context.Background(), c, &out, "  ", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")
}

func TestDelete(t *testing.T) {
	c := newApp(t, nil)
	seed(t, c)

	var out bytes.Buffer
	require.NoError(t, Delete(context.Background(), c, &out, "Food"))
	assert.Equal(t, "Budget for Food removed\n", out.String())

	err := Delete(context.Background(), c, &out, "Food")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `budget category "Food" not found`)
}

func TestSuggest(t *testing.T) {
	completer := &aiclient.MockCompleter{Response: "```json\n{\"Food\": 550, \"Transport\": 450, \"Gadgets\": 99}\n```"}
	c := newApp(t, completer)
	seed(t, c)

	var out bytes.Buffer
	require.NoError(t, Suggest(context.Background(), c, &out, false))
	assert.Contains(t, out.String(), "SUGGESTED")
	assert.Contains(t, out.String(), "$550.00")
	assert.Contains(t, out.String(), "-$50.00")
	assert.Contains(t, out.String(), "+$50.00")
	assert.NotContains(t, out.String(), "Gadgets")

	budgets, err := c.GetStore().Load(context.Background())
	require.NoError(t, err)
	food, _ := budgets.Get("Food")
	assert.Equal(t, "600", food.String(), "suggest must not save")
}

func TestSuggest_JSONAndFallback(t *testing.T) {
	completer := &aiclient.MockCompleter{Err: errors.New("quota exceeded")}
	c := newApp(t, completer)
	seed(t, c)

	var out bytes.Buffer
	require.NoError(t, Suggest(context.Background(), c, &out, true))

	var got struct {
		Current     map[string]float64 `json:"current"`
		Suggested   map[string]float64 `json:"suggested"`
		Comparisons []struct {
			Category string `json:"category"`
		} `json:"comparisons"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, got.Current, got.Suggested)
	assert.Len(t, got.Comparisons, 2)
}

func TestSuggest_NoChange(t *testing.T) {
	completer := &aiclient.MockCompleter{Response: `{"Food": 600.004, "Transport": 399.996}`}
	c := newApp(t, completer)
	seed(t, c)

	var out bytes.Buffer
	require.NoError(t, Suggest(context.Background(), c, &out, false))
	assert.Contains(t, out.String(), "no change")
}

func TestApply(t *testing.T) {
	completer := &aiclient.MockCompleter{Response: `{"Food": 700, "Transport": 300}`}
	c := newApp(t, completer)
	seed(t, c)

	var out bytes.Buffer
	require.NoError(t, Apply(context.Background(), c, &out, false))
	assert.Contains(t, out.String(), "$700.00")
	assert.Contains(t, out.String(), "$1000.00")

	budgets, err := c.GetStore().Load(context.Background())
	require.NoError(t, err)
	food, _ := budgets.Get("Food")
	assert.Equal(t, "700", food.String())
}

func TestApply_WithoutCompleter(t *testing.T) {
	c := newApp(t, nil)
	seed(t, c)

	err := Apply(context.Background(), c, &bytes.Buffer{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ai.enabled")
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range Cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"list", "set", "delete", "suggest", "apply"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}
