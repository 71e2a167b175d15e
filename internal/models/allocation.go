// Package models provides the data structures used throughout the application.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CategoryAmount is a single category budget line.
type CategoryAmount struct {
	Category string          `json:"category" yaml:"category"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
}

// Allocation maps budget categories to amounts while remembering the order
// in which categories were first added. Category names are case-sensitive
// and unique. The zero value is an empty allocation ready to use; a nil
// *Allocation reads as empty.
type Allocation struct {
	order   []string
	amounts map[string]decimal.Decimal
}

// NewAllocation builds an allocation from entries in order. A repeated
// category keeps its first position and its last amount.
func NewAllocation(entries ...CategoryAmount) *Allocation {
	a := &Allocation{}
	for _, e := range entries {
		a.Set(e.Category, e.Amount)
	}
	return a
}

// Len returns the number of categories.
func (a *Allocation) Len() int {
	if a == nil {
		return 0
	}
	return len(a.order)
}

// Set assigns amount to category, appending the category if it is new.
func (a *Allocation) Set(category string, amount decimal.Decimal) {
	if a.amounts == nil {
		a.amounts = make(map[string]decimal.Decimal)
	}
	if _, ok := a.amounts[category]; !ok {
		a.order = append(a.order, category)
	}
	a.amounts[category] = amount
}

// Get returns the amount for category and whether it exists.
func (a *Allocation) Get(category string) (decimal.Decimal, bool) {
	if a == nil {
		return decimal.Zero, false
	}
	amount, ok := a.amounts[category]
	return amount, ok
}

// Has reports whether category is part of the allocation.
func (a *Allocation) Has(category string) bool {
	_, ok := a.Get(category)
	return ok
}

// Delete removes category. It reports whether the category existed.
func (a *Allocation) Delete(category string) bool {
	if a == nil {
		return false
	}
	if _, ok := a.amounts[category]; !ok {
		return false
	}
	delete(a.amounts, category)
	for i, c := range a.order {
		if c == category {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return true
}

// Categories returns the category names in insertion order.
func (a *Allocation) Categories() []string {
	if a == nil {
		return []string{}
	}
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Entries returns the allocation lines in insertion order.
func (a *Allocation) Entries() []CategoryAmount {
	if a == nil {
		return []CategoryAmount{}
	}
	out := make([]CategoryAmount, 0, len(a.order))
	for _, c := range a.order {
		out = append(out, CategoryAmount{Category: c, Amount: a.amounts[c]})
	}
	return out
}

// Total returns the sum of all amounts.
func (a *Allocation) Total() decimal.Decimal {
	total := decimal.Zero
	if a == nil {
		return total
	}
	for _, c := range a.order {
		total = total.Add(a.amounts[c])
	}
	return total
}

// Clone returns a deep copy that shares no memory with a.
func (a *Allocation) Clone() *Allocation {
	return NewAllocation(a.Entries()...)
}

// Equal reports whether both allocations list the same categories in the
// same order with numerically equal amounts.
func (a *Allocation) Equal(other *Allocation) bool {
	if a.Len() != other.Len() {
		return false
	}
	for i, e := range a.Entries() {
		if other.order[i] != e.Category || !other.amounts[e.Category].Equal(e.Amount) {
			return false
		}
	}
	return true
}

// String renders the allocation as "Cat: amount; Cat: amount".
func (a *Allocation) String() string {
	parts := make([]string, 0, a.Len())
	for _, e := range a.Entries() {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Category, e.Amount.StringFixed(2)))
	}
	return strings.Join(parts, "; ")
}

// MarshalJSON encodes the allocation as a JSON object with keys in
// insertion order and amounts as numbers.
func (a *Allocation) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range a.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(e.Amount.String())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of category amounts, keeping the
// document order. Amounts may be numbers or numeric strings.
func (a *Allocation) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("allocation must be a JSON object")
	}

	result := &Allocation{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		category, _ := keyTok.(string)

		var raw interface{}
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		amount, err := decimalFromJSON(raw)
		if err != nil {
			return fmt.Errorf("category %q: %w", category, err)
		}
		result.Set(category, amount)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*a = *result
	return nil
}

func decimalFromJSON(v interface{}) (decimal.Decimal, error) {
	switch val := v.(type) {
	case json.Number:
		return decimal.NewFromString(val.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(val))
	default:
		return decimal.Zero, fmt.Errorf("amount must be a number, got %T", v)
	}
}

// MarshalYAML encodes the allocation as an ordered YAML mapping.
func (a *Allocation) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range a.Entries() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Category},
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Amount.String()},
		)
	}
	return node, nil
}

// UnmarshalYAML decodes an ordered YAML mapping of category amounts. An
// empty or null node yields an empty allocation.
func (a *Allocation) UnmarshalYAML(value *yaml.Node) error {
	result := &Allocation{}
	switch value.Kind {
	case yaml.MappingNode:
	case yaml.ScalarNode:
		if value.Tag == "!!null" || value.Value == "" {
			*a = *result
			return nil
		}
		return fmt.Errorf("line %d: allocation must be a mapping", value.Line)
	default:
		return fmt.Errorf("line %d: allocation must be a mapping", value.Line)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		amount, err := decimal.NewFromString(strings.TrimSpace(valNode.Value))
		if err != nil {
			return fmt.Errorf("line %d: invalid amount for %q: %w", valNode.Line, keyNode.Value, err)
		}
		result.Set(keyNode.Value, amount)
	}

	*a = *result
	return nil
}
