// Package prefs holds the process-wide display preferences (currency and
// theme). A single Preferences value is built at startup and passed to the
// components that need it.
package prefs

import (
	"strings"
	"sync"

	"fjacquet/budget-insight/internal/currencyutils"
	"fjacquet/budget-insight/internal/events"
	"fjacquet/budget-insight/internal/parsererror"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Theme is the UI colour scheme.
type Theme string

// Supported themes.
const (
	ThemeDark  Theme = "DARK"
	ThemeLight Theme = "LIGHT"
)

// ParseTheme parses a theme name case-insensitively. Unknown names map to
// ThemeDark.
func ParseTheme(s string) Theme {
	if Theme(strings.ToUpper(strings.TrimSpace(s))) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// Currency pairs an ISO 4217 code with the symbol shown next to amounts.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

// DefaultCurrency is used when nothing is configured.
var DefaultCurrency = Currency{Code: "USD", Symbol: "$"}

// Preferences is safe for concurrent use.
type Preferences struct {
	mu        sync.RWMutex
	currency  Currency
	theme     Theme
	publisher events.Publisher
}

// New builds Preferences from configured values. An empty code selects
// DefaultCurrency; an invalid code is an error. publisher may be nil.
func New(code, symbol, theme string, publisher events.Publisher) (*Preferences, error) {
	cur := DefaultCurrency
	if strings.TrimSpace(code) != "" {
		var err error
		cur, err = NewCurrency(code, symbol)
		if err != nil {
			return nil, err
		}
	}
	return &Preferences{
		currency:  cur,
		theme:     ParseTheme(theme),
		publisher: publisher,
	}, nil
}

// NewCurrency validates code against ISO 4217. A blank symbol defaults to
// the usual symbol for the code, or the code itself.
func NewCurrency(code, symbol string) (Currency, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	unit, err := currency.ParseISO(normalized)
	if err != nil {
		return Currency{}, &parsererror.ValidationError{Field: "currency_code", Value: code, Reason: "not an ISO 4217 currency code"}
	}
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		symbol = currencyutils.Symbol(unit.String())
	}
	return Currency{Code: unit.String(), Symbol: symbol}, nil
}

// Currency returns the current currency.
func (p *Preferences) Currency() Currency {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.currency
}

// SetCurrency validates and stores a new currency. It publishes a CURRENCY
// event and reports true only when the value actually changed.
func (p *Preferences) SetCurrency(code, symbol string) (bool, error) {
	cur, err := NewCurrency(code, symbol)
	if err != nil {
		return false, err
	}

	p.mu.Lock()
	changed := cur != p.currency
	p.currency = cur
	p.mu.Unlock()

	if changed && p.publisher != nil {
		p.publisher.Publish(events.Event{Type: events.Currency})
	}
	return changed, nil
}

// Theme returns the current theme.
func (p *Preferences) Theme() Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

// SetTheme stores a theme; unknown values become ThemeDark.
func (p *Preferences) SetTheme(theme Theme) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.theme = ParseTheme(string(theme))
}

// FormatAmount renders amount with two decimals behind the currency symbol.
func (p *Preferences) FormatAmount(amount decimal.Decimal) string {
	return currencyutils.FormatAmount(amount, p.Currency().Symbol)
}
