package models

import "github.com/shopspring/decimal"

// NoChangeThreshold is the absolute difference below which a suggested
// amount is shown as unchanged.
var NoChangeThreshold = decimal.RequireFromString("0.01")

// Comparison lines up a current and a suggested category budget.
type Comparison struct {
	Category   string          `json:"category"`
	Current    decimal.Decimal `json:"current"`
	Suggested  decimal.Decimal `json:"suggested"`
	Difference decimal.Decimal `json:"difference"`
}

// Changed reports whether the difference reaches NoChangeThreshold.
func (c Comparison) Changed() bool {
	return c.Difference.Abs().GreaterThanOrEqual(NoChangeThreshold)
}
