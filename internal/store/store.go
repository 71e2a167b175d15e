// Package store persists the authoritative category budgets.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"fjacquet/budget-insight/internal/events"
	"fjacquet/budget-insight/internal/fileutils"
	"fjacquet/budget-insight/internal/logging"
	"fjacquet/budget-insight/internal/models"
	"fjacquet/budget-insight/internal/parsererror"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultBudgetsFile is the file name used under the data directory.
const DefaultBudgetsFile = "budgets.yaml"

// BudgetStore loads and replaces the full set of category budgets.
type BudgetStore interface {
	Load(ctx context.Context) (*models.Allocation, error)
	Save(ctx context.Context, budgets *models.Allocation) error
}

// budgetDocument is the on-disk layout of the budgets file.
type budgetDocument struct {
	Budgets *models.Allocation `yaml:"budgets"`
}

// YAMLStore keeps budgets in a YAML file. Every save rewrites the whole
// file; the last writer wins.
type YAMLStore struct {
	path      string
	publisher events.Publisher
	logger    logging.Logger
	mu        sync.Mutex
}

// NewYAMLStore creates a store backed by path. publisher may be nil.
func NewYAMLStore(path string, publisher events.Publisher, logger logging.Logger) *YAMLStore {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &YAMLStore{
		path:      path,
		publisher: publisher,
		logger:    logger.WithField(logging.FieldComponent, "store"),
	}
}

// Path returns the backing file path.
func (s *YAMLStore) Path() string {
	return s.path
}

// Load reads the budgets. A missing or empty file yields an empty
// allocation. Files holding a bare category mapping without the top-level
// "budgets" key are accepted too.
func (s *YAMLStore) Load(ctx context.Context) (*models.Allocation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("Budgets file not found, starting empty",
				logging.F(logging.FieldFile, s.path))
			return &models.Allocation{}, nil
		}
		return nil, fmt.Errorf("error reading budgets file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return &models.Allocation{}, nil
	}

	var doc budgetDocument
	if err := yaml.Unmarshal(data, &doc); err == nil && doc.Budgets != nil {
		s.logger.Debug("Loaded budgets",
			logging.F(logging.FieldFile, s.path),
			logging.F(logging.FieldCount, doc.Budgets.Len()))
		return doc.Budgets, nil
	}
	if hasEmptyBudgetsKey(data) {
		return &models.Allocation{}, nil
	}

	var bare models.Allocation
	if err := yaml.Unmarshal(data, &bare); err != nil {
		return nil, &parsererror.PayloadError{Source: s.path, Err: err}
	}
	s.logger.Debug("Loaded budgets from bare mapping",
		logging.F(logging.FieldFile, s.path),
		logging.F(logging.FieldCount, bare.Len()))
	return &bare, nil
}

// hasEmptyBudgetsKey reports whether data is a document whose "budgets"
// key holds no value, such as "budgets:" or "budgets: ~".
func hasEmptyBudgetsKey(data []byte) bool {
	var doc map[string]*yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false
	}
	node, ok := doc["budgets"]
	if !ok {
		return false
	}
	return node == nil || (node.Kind == yaml.ScalarNode && (node.Tag == "!!null" || node.Value == ""))
}

// Save replaces the stored budgets, creating parent directories as needed,
// and publishes a BUDGETS event.
func (s *YAMLStore) Save(ctx context.Context, budgets *models.Allocation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(budgetDocument{Budgets: budgets.Clone()})
	if err != nil {
		return fmt.Errorf("error marshaling budgets: %w", err)
	}

	s.mu.Lock()
	err = fileutils.WriteFileAtomic(s.path, data, models.PermissionDataFile)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("error writing budgets file: %w", err)
	}

	s.logger.Debug("Saved budgets",
		logging.F(logging.FieldFile, s.path),
		logging.F(logging.FieldCount, budgets.Len()),
		logging.F(logging.FieldTotal, budgets.Total().StringFixed(2)))
	if s.publisher != nil {
		s.publisher.Publish(events.Event{Type: events.Budgets})
	}
	return nil
}

// SetCategory sets one category budget with a load-modify-save cycle.
func SetCategory(ctx context.Context, s BudgetStore, category string, amount decimal.Decimal) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return &parsererror.ValidationError{Field: "category", Value: category, Reason: "must not be empty"}
	}

	budgets, err := s.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load budgets: %w", err)
	}
	budgets.Set(category, amount)
	return s.Save(ctx, budgets)
}

// DeleteCategory removes one category budget. It reports whether the
// category existed; nothing is saved when it did not.
func DeleteCategory(ctx context.Context, s BudgetStore, category string) (bool, error) {
	budgets, err := s.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load budgets: %w", err)
	}
	if !budgets.Delete(category) {
		return false, nil
	}
	return true, s.Save(ctx, budgets)
}
