// Package budget merges AI-suggested budget allocations into the user's
// authoritative category budgets.
package budget

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"fjacquet/budget-insight/internal/models"
	"fjacquet/budget-insight/internal/parsererror"
	"fjacquet/budget-insight/internal/textutils"

	"github.com/shopspring/decimal"
)

const payloadSource = "budget suggestion"

// Reconcile merges a raw suggested allocation into current. The result has
// exactly the categories of current, in the same order: each takes the
// suggested amount when raw has that exact key and keeps its current amount
// otherwise. Keys unknown to current are dropped. When rawErr is non-nil
// the suggestion is discarded and a copy of current is returned. The
// result never shares memory with its inputs.
func Reconcile(current *models.Allocation, raw map[string]decimal.Decimal, rawErr error) *models.Allocation {
	if rawErr != nil {
		return current.Clone()
	}

	out := &models.Allocation{}
	for _, e := range current.Entries() {
		amount := e.Amount
		if suggested, ok := raw[e.Category]; ok {
			amount = suggested
		}
		out.Set(e.Category, amount)
	}
	return out
}

// ParsePayload decodes a sanitized suggestion into category amounts. The
// payload must be a single JSON object. Numbers and numeric strings are
// accepted as amounts. A value of any other kind under a category of
// current fails the whole payload; keys unknown to current are not read.
func ParsePayload(text string, current *models.Allocation) (map[string]decimal.Decimal, error) {
	snippet := parsererror.Snippet(textutils.CollapseWhitespace(text), 80)
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, &parsererror.PayloadError{Source: payloadSource, Snippet: snippet, Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &parsererror.PayloadError{Source: payloadSource, Snippet: snippet, Err: fmt.Errorf("unexpected data after JSON object")}
	}

	obj, ok := doc.(map[string]interface{})
	if !ok {
		return nil, &parsererror.PayloadError{Source: payloadSource, Snippet: snippet, Err: fmt.Errorf("expected a JSON object, got %T", doc)}
	}

	out := make(map[string]decimal.Decimal, len(obj))
	for category, value := range obj {
		if !current.Has(category) {
			continue
		}
		amount, err := amountFromJSON(value)
		if err != nil {
			return nil, &parsererror.PayloadError{Source: payloadSource, Snippet: snippet, Err: fmt.Errorf("category %q: %w", category, err)}
		}
		out[category] = amount
	}
	return out, nil
}

func amountFromJSON(value interface{}) (decimal.Decimal, error) {
	switch v := value.(type) {
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	case nil:
		return decimal.Zero, fmt.Errorf("amount is null")
	default:
		return decimal.Zero, fmt.Errorf("amount must be a number, got %T", v)
	}
}

// Compare lines up current and suggested amounts for every current
// category, in current's order.
func Compare(current, suggested *models.Allocation) []models.Comparison {
	out := make([]models.Comparison, 0, current.Len())
	for _, e := range current.Entries() {
		proposed, ok := suggested.Get(e.Category)
		if !ok {
			proposed = e.Amount
		}
		out = append(out, models.Comparison{
			Category:   e.Category,
			Current:    e.Amount,
			Suggested:  proposed,
			Difference: proposed.Sub(e.Amount),
		})
	}
	return out
}
