// Package currencyutils parses amounts written in the usual bank and
// spreadsheet notations and formats amounts for display.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyTokens = regexp.MustCompile(`(?i)CHF|EUR|USD|GBP|JPY|[€$£¥\s']`)

var symbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"JPY": "¥",
}

// ParseAmount parses a string representation of an amount into a decimal value
// It handles various formats like "1,234.56", "1.234,56", "1234.56", "1234,56"
// and "CHF -1'234.50". An empty string is zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount converts various currency string formats to a standard format that can be parsed by decimal.NewFromString
// Currency codes and symbols, whitespace and apostrophes are removed. When
// both separators appear the last one is the decimal point. A lone comma
// followed by at most two digits is a decimal comma; other commas are
// thousand separators.
func StandardizeAmount(amountStr string) string {
	amountStr = currencyTokens.ReplaceAllString(amountStr, "")

	lastComma := strings.LastIndex(amountStr, ",")
	lastDot := strings.LastIndex(amountStr, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastDot < lastComma {
			// European format (1.234,56)
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(amountStr, ",") == 1 && len(amountStr)-lastComma-1 <= 2 {
			amountStr = strings.Replace(amountStr, ",", ".", 1)
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	return amountStr
}

// Symbol returns the display symbol for an ISO currency code, or the code
// itself when no symbol is known.
func Symbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if s, ok := symbols[code]; ok {
		return s
	}
	return code
}

// FormatAmount renders amount with two decimals behind symbol, without
// thousands separators. The sign precedes the symbol: "-€3.00".
func FormatAmount(amount decimal.Decimal, symbol string) string {
	if amount.IsNegative() {
		return "-" + symbol + amount.Abs().StringFixed(2)
	}
	return symbol + amount.StringFixed(2)
}
