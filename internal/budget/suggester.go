package budget

import (
	"context"
	"fmt"
	"time"

	"fjacquet/budget-insight/internal/aiclient"
	"fjacquet/budget-insight/internal/logging"
	"fjacquet/budget-insight/internal/models"
	"fjacquet/budget-insight/internal/textutils"

	"github.com/shopspring/decimal"
)

// Store is the authoritative budget storage the suggester applies to.
type Store interface {
	Load(ctx context.Context) (*models.Allocation, error)
	Save(ctx context.Context, budgets *models.Allocation) error
}

// Suggester asks the completion service for a better split of the current
// total across the existing categories.
type Suggester struct {
	completer aiclient.Completer
	logger    logging.Logger
}

// NewSuggester creates a Suggester. A nil completer makes every suggestion
// fall back to the current budgets.
func NewSuggester(completer aiclient.Completer, logger logging.Logger) *Suggester {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Suggester{
		completer: completer,
		logger:    logger.WithField(logging.FieldComponent, "suggester"),
	}
}

// Prompt builds the reallocation request for current.
func Prompt(current *models.Allocation) string {
	return fmt.Sprintf(
		"The current budget allocation is: %s. The total budget is %s. "+
			"Redistribute the total budget across these categories to give a more reasonable allocation, "+
			"keeping the total amount unchanged. "+
			"Answer with a JSON object whose keys are the category names and whose values are the amounts, "+
			"and output nothing else.",
		current.String(), current.Total().StringFixed(2))
}

// Suggest returns a reconciled suggestion for current. Any failure to
// obtain or parse the suggestion is logged and yields a copy of current.
func (s *Suggester) Suggest(ctx context.Context, current *models.Allocation) *models.Allocation {
	if current.Len() == 0 {
		return current.Clone()
	}
	if s.completer == nil {
		s.logger.Warn("No completion service configured, keeping current budgets")
		return current.Clone()
	}

	started := time.Now()
	raw, err := s.fetch(ctx, current)
	suggested := Reconcile(current, raw, err)
	if err != nil {
		s.logger.WithError(err).Warn("Budget suggestion failed, keeping current budgets",
			logging.F(logging.FieldCount, current.Len()))
		return suggested
	}

	s.logger.Info("Budget suggestion generated",
		logging.F(logging.FieldCount, suggested.Len()),
		logging.F(logging.FieldTotal, suggested.Total().StringFixed(2)),
		logging.F(logging.FieldDuration, time.Since(started).Milliseconds()))
	if drift := suggested.Total().Sub(current.Total()).Abs(); drift.GreaterThanOrEqual(models.NoChangeThreshold) {
		s.logger.Debug("Suggested total differs from current total",
			logging.F("drift", drift.StringFixed(2)))
	}
	return suggested
}

func (s *Suggester) fetch(ctx context.Context, current *models.Allocation) (raw map[string]decimal.Decimal, err error) {
	defer func() {
		if r := recover(); r != nil {
			raw, err = nil, fmt.Errorf("completion panicked: %v", r)
		}
	}()

	text, err := s.completer.Complete(ctx, Prompt(current))
	if err != nil {
		return nil, fmt.Errorf("failed to get budget suggestion: %w", err)
	}
	return ParsePayload(textutils.SanitizeResponse(text), current)
}

// Apply loads the stored budgets, asks for a suggestion and saves it as a
// full replacement. Concurrent applies race; the last save wins.
func (s *Suggester) Apply(ctx context.Context, store Store) (*models.Allocation, error) {
	current, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}

	suggested := s.Suggest(ctx, current)
	if err := store.Save(ctx, suggested); err != nil {
		return nil, fmt.Errorf("failed to save suggested budgets: %w", err)
	}
	return suggested, nil
}
