// Package advice generates short spending advice from the ledger's
// per-category expenses.
package advice

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"fjacquet/budget-insight/internal/aiclient"
	"fjacquet/budget-insight/internal/dateutils"
	"fjacquet/budget-insight/internal/events"
	"fjacquet/budget-insight/internal/logging"
	"fjacquet/budget-insight/internal/models"

	"golang.org/x/sync/singleflight"
)

// ExpenseSource supplies the figures the advice is based on.
type ExpenseSource interface {
	CategoryExpenses(ctx context.Context) (*models.Allocation, error)
	Dates(ctx context.Context) ([]time.Time, error)
}

// Advice is the latest generated text and when it was produced.
type Advice struct {
	Text        string    `json:"text"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Advisor keeps the last successfully generated advice. Failed
// regenerations leave it untouched.
type Advisor struct {
	source    ExpenseSource
	completer aiclient.Completer
	publisher events.Publisher
	logger    logging.Logger
	now       func() time.Time

	group   singleflight.Group
	mu      sync.RWMutex
	current Advice
}

// NewAdvisor creates an Advisor. completer and publisher may be nil.
func NewAdvisor(source ExpenseSource, completer aiclient.Completer, publisher events.Publisher, logger logging.Logger) *Advisor {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Advisor{
		source:    source,
		completer: completer,
		publisher: publisher,
		logger:    logger.WithField(logging.FieldComponent, "advisor"),
		now:       time.Now,
	}
}

// Advice returns the current advice. The text is empty until a
// regeneration succeeds.
func (a *Advisor) Advice() Advice {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

// SetAdvice replaces the advice and publishes an ADVICE event.
func (a *Advisor) SetAdvice(text string, at time.Time) {
	a.mu.Lock()
	a.current = Advice{Text: text, GeneratedAt: at}
	a.mu.Unlock()

	if a.publisher != nil {
		a.publisher.Publish(events.Event{Type: events.Advice, At: at})
	}
}

// Regenerate asks the completion service for fresh advice. Concurrent
// calls share a single request. Without ledger dates nothing happens.
// Failures are logged and the previous advice is kept; the returned error
// reports them for callers that want to surface a notification.
func (a *Advisor) Regenerate(ctx context.Context) error {
	_, err, shared := a.group.Do("regenerate", func() (interface{}, error) {
		return nil, a.regenerate(ctx)
	})
	if shared {
		a.logger.Debug("Joined in-flight advice regeneration")
	}
	return err
}

func (a *Advisor) regenerate(ctx context.Context) error {
	dates, err := a.source.Dates(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("Failed to load ledger dates, keeping previous advice")
		return fmt.Errorf("failed to load ledger dates: %w", err)
	}
	if len(dates) == 0 {
		a.logger.Debug("No transactions, skipping advice generation")
		return nil
	}

	expenses, err := a.source.CategoryExpenses(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("Failed to load category expenses, keeping previous advice")
		return fmt.Errorf("failed to load category expenses: %w", err)
	}

	if a.completer == nil {
		a.logger.Warn("No completion service configured, keeping previous advice")
		return nil
	}

	start, end := dateRange(dates)
	text, err := a.completer.Complete(ctx, Prompt(start, end, expenses))
	if err != nil {
		a.logger.WithError(err).Warn("Failed to generate advice, keeping previous advice")
		return fmt.Errorf("failed to generate advice: %w", err)
	}

	text = strings.TrimSpace(text)
	a.SetAdvice(text, a.now())
	a.logger.Info("Advice regenerated",
		logging.F(logging.FieldStartDate, dateutils.ToISODate(start)),
		logging.F(logging.FieldEndDate, dateutils.ToISODate(end)),
		logging.F(logging.FieldCount, expenses.Len()))
	return nil
}

func dateRange(dates []time.Time) (time.Time, time.Time) {
	start, end := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(start) {
			start = d
		}
		if d.After(end) {
			end = d
		}
	}
	return dateutils.Day(start), dateutils.Day(end)
}

// Prompt builds the coaching request for the given data range and
// per-category expenses.
func Prompt(start, end time.Time, expenses *models.Allocation) string {
	lines := make([]string, 0, expenses.Len())
	for _, e := range expenses.Entries() {
		lines = append(lines, fmt.Sprintf("%s: %s", e.Category, e.Amount.StringFixed(2)))
	}

	return strings.Join([]string{
		"You are a personal-finance coach.",
		"Data range: " + dateutils.ToISODate(start) + " to " + dateutils.ToISODate(end),
		"Expenses by category:",
		strings.Join(lines, "\n"),
		"",
		"1) Check for seasonal spending spikes around public holidays, shopping festivals, back-to-school season and family celebrations, and point them out.",
		"2) If any category looks abnormally high for the season, point it out and give 1-2 actionable tips.",
		"3) Give 3-4 concise sentences in total. Do not output anything except the advice, and write plain text without markdown symbols such as **.",
	}, "\n")
}
