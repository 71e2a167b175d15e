// Package aiclient wraps the external text-completion service used for
// budget suggestions and spending advice.
package aiclient

import "context"

// Completer sends a natural-language prompt to a completion service and
// returns its free-text answer. Implementations must honour ctx
// cancellation and deadlines.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a plain function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
