package advice

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"fjacquet/budget-insight/internal/advice"
	"fjacquet/budget-insight/internal/aiclient"
	"fjacquet/budget-insight/internal/ledger"
	"fjacquet/budget-insight/internal/logging"
	"fjacquet/budget-insight/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLedger() *ledger.MemorySource {
	return ledger.NewMemorySource([]models.Transaction{
		{Date: time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(-300), Category: "Gifts"},
		{Date: time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(-120), Category: "Food"},
	})
}

func TestRun_PrintsAdvice(t *testing.T) {
	completer := &aiclient.MockCompleter{Response: "Gift spending peaks in December."}
	advisor := advice.NewAdvisor(sampleLedger(), completer, nil, nil)

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), advisor, logging.NewMockLogger(), &out, nil, false))

	assert.Contains(t, out.String(), "Gift spending peaks in December.\n")
	assert.Contains(t, out.String(), "Generated: ")
	assert.Contains(t, completer.Prompts()[0], "Gifts: 300.00")
}

func TestRun_FailureKeepsPreviousAdvice(t *testing.T) {
	completer := &aiclient.MockCompleter{Err: errors.New("timeout")}
	advisor := advice.NewAdvisor(sampleLedger(), completer, nil, nil)
	advisor.SetAdvice("Earlier advice.", time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC))
	logger := logging.NewMockLogger()

	var out, notice bytes.Buffer
	require.NoError(t, Run(context.Background(), advisor, logger, &out, &notice, false))

	assert.Contains(t, out.String(), "Earlier advice.")
	assert.Contains(t, out.String(), "Generated: Mar 05, 2024 14:30")
	assert.True(t, logger.HasEntry("WARN", "Advice could not be refreshed"))
	assert.Equal(t, "Advice could not be refreshed, showing the last generated advice.\n", notice.String())
}

func TestRun_FailureWithoutPreviousAdvice(t *testing.T) {
	completer := &aiclient.MockCompleter{Err: errors.New("timeout")}
	advisor := advice.NewAdvisor(sampleLedger(), completer, nil, nil)

	var out, notice bytes.Buffer
	require.NoError(t, Run(context.Background(), advisor, logging.NewMockLogger(), &out, &notice, false))

	assert.Equal(t, "No advice available yet.\n", out.String())
	assert.Contains(t, notice.String(), "could not be refreshed")
}

func TestRun_NoAdvice(t *testing.T) {
	advisor := advice.NewAdvisor(ledger.NewMemorySource(nil), &aiclient.MockCompleter{}, nil, nil)

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), advisor, logging.NewMockLogger(), &out, nil, false))
	assert.Equal(t, "No advice available yet.\n", out.String())
}

func TestRun_JSON(t *testing.T) {
	completer := &aiclient.MockCompleter{Response: "Keep it up."}
	advisor := advice.NewAdvisor(sampleLedger(), completer, nil, nil)

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), advisor, logging.NewMockLogger(), &out, nil, true))
	assert.Contains(t, out.String(), `"text": "Keep it up."`)
	assert.Contains(t, out.String(), `"generated_at"`)
}
