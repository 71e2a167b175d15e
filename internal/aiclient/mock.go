package aiclient

import (
	"context"
	"sync"
)

// MockCompleter is a Completer double that returns a canned response and
// records the prompts it received.
type MockCompleter struct {
	Response string
	Err      error

	mu      sync.Mutex
	prompts []string
}

// Complete records prompt and returns the canned response or error. A
// cancelled context wins over both.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Prompts returns a copy of every prompt received so far.
func (m *MockCompleter) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// Calls returns the number of Complete calls.
func (m *MockCompleter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}
