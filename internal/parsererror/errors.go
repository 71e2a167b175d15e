// Package parsererror defines the error types shared across the budget
// pipeline. Callers inspect them with errors.As.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned by completers when the service answered
// without any text.
var ErrEmptyResponse = errors.New("empty response from completion service")

// PayloadError reports text from an external service that could not be
// interpreted as the expected structure.
type PayloadError struct {
	Source  string
	Snippet string // Optional: leading part of the offending payload
	Err     error
}

func (e *PayloadError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("%s: malformed payload '%s': %v", e.Source, e.Snippet, e.Err)
	}
	return fmt.Sprintf("%s: malformed payload: %v", e.Source, e.Err)
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

// ServiceError wraps a failure of an external service call: transport
// errors, timeouts, quota refusals or empty answers.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Service, e.Operation, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ValidationError represents a rejected configuration or preference value.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Value, e.Reason)
}

// Snippet shortens s for inclusion in error messages.
func Snippet(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
