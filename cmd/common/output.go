// Package common contains shared functionality for command handlers
package common

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"fjacquet/budget-insight/internal/dateutils"
	"fjacquet/budget-insight/internal/models"
	"fjacquet/budget-insight/internal/prefs"
	"fjacquet/budget-insight/internal/trend"
)

// TimestampLayout renders generation times, e.g. "Mar 05, 2024 14:30".
const TimestampLayout = "Jan 02, 2006 15:04"

// FormatTimestamp renders t with TimestampLayout, or "never" for the zero
// time.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format(TimestampLayout)
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error encoding JSON output: %w", err)
	}
	return nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// PrintAllocation writes one "category  amount" line per budget and a
// total line.
func PrintAllocation(w io.Writer, budgets *models.Allocation, p *prefs.Preferences) error {
	if budgets.Len() == 0 {
		_, err := fmt.Fprintln(w, "No budgets defined.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "CATEGORY\tBUDGET")
	for _, e := range budgets.Entries() {
		fmt.Fprintf(tw, "%s\t%s\n", e.Category, p.FormatAmount(e.Amount))
	}
	fmt.Fprintf(tw, "Total\t%s\n", p.FormatAmount(budgets.Total()))
	return tw.Flush()
}

// PrintComparisons writes the current and suggested amount per category.
// Differences below models.NoChangeThreshold are shown as "no change".
func PrintComparisons(w io.Writer, rows []models.Comparison, p *prefs.Preferences) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No budgets defined.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "CATEGORY\tCURRENT\tSUGGESTED\tCHANGE")
	for _, r := range rows {
		change := "no change"
		if r.Changed() {
			sign := ""
			if r.Difference.IsPositive() {
				sign = "+"
			}
			change = sign + p.FormatAmount(r.Difference)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Category, p.FormatAmount(r.Current), p.FormatAmount(r.Suggested), change)
	}
	return tw.Flush()
}

// PrintReport writes one line per period with income, expense and budget.
func PrintReport(w io.Writer, report *trend.Report, p *prefs.Preferences) error {
	fmt.Fprintf(w, "%s (%s), %s to %s\n", report.Range, report.Interval,
		dateutils.ToISODate(report.Start), dateutils.ToISODate(report.End))

	tw := newTable(w)
	fmt.Fprintln(tw, "PERIOD\tINCOME\tEXPENSE\tBUDGET")
	for _, key := range report.Income.Keys() {
		income, _ := report.Income.Lookup(key)
		expense, _ := report.Expense.Lookup(key)
		budget, _ := report.Budget.Lookup(key)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", key,
			p.FormatAmount(income), p.FormatAmount(expense), p.FormatAmount(budget))
	}
	fmt.Fprintf(tw, "Total\t%s\t%s\t\n", p.FormatAmount(report.Income.Total()), p.FormatAmount(report.Expense.Total()))
	return tw.Flush()
}

// PrintTransactions writes one line per ledger entry.
func PrintTransactions(w io.Writer, txs []models.Transaction, p *prefs.Preferences) error {
	if len(txs) == 0 {
		_, err := fmt.Fprintln(w, "No transactions recorded.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tAMOUNT\tCATEGORY\tDESCRIPTION")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", dateutils.ToISODate(tx.Day()), p.FormatAmount(tx.Amount), tx.CategoryOrDefault(), tx.Description)
	}
	return tw.Flush()
}
