package store

import (
	"context"
	"sync"

	"fjacquet/budget-insight/internal/models"
)

// MockBudgetStore is an in-memory BudgetStore for tests.
type MockBudgetStore struct {
	Budgets *models.Allocation

	// Error fields for testing error conditions
	LoadError error
	SaveError error

	mu    sync.Mutex
	saves int
}

// Load returns a copy of the stored budgets.
func (m *MockBudgetStore) Load(ctx context.Context) (*models.Allocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	return m.Budgets.Clone(), nil
}

// Save stores a copy of budgets.
func (m *MockBudgetStore) Save(ctx context.Context, budgets *models.Allocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Budgets = budgets.Clone()
	m.saves++
	return nil
}

// Saves returns the number of successful saves.
func (m *MockBudgetStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
