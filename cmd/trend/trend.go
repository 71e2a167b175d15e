// Package trend prints income, expense and budget series per period
package trend

import (
	"context"
	"fmt"
	"io"
	"time"

	"fjacquet/budget-insight/cmd/common"
	"fjacquet/budget-insight/cmd/root"
	"fjacquet/budget-insight/internal/dateutils"
	"fjacquet/budget-insight/internal/period"
	"fjacquet/budget-insight/internal/prefs"
	"fjacquet/budget-insight/internal/trend"

	"github.com/spf13/cobra"
)

// Options selects the trend view.
type Options struct {
	Range    string
	Interval string
	Today    time.Time
	JSON     bool
}

var (
	rangeName string
	interval  string
	today     string
)

// Cmd represents the trend command
var Cmd = &cobra.Command{
	Use:   "trend",
	Short: "Show income, expenses and budget per period",
	Long: `Aggregate the ledger into day, week, fortnight, month, quarter or year
buckets over a range preset and compare each bucket with the budget
projected to the same period length.

Ranges: "Last 7 days", "Last 30 days", "Last 90 days", "This month",
"Last month", "This year".`,
	Args: cobra.NoArgs,
	RunE: trendFunc,
}

func init() {
	Cmd.Flags().StringVarP(&rangeName, "range", "r", "", "Range preset (default from trend.range)")
	Cmd.Flags().StringVarP(&interval, "interval", "n", "", "Daily, Weekly, Fortnightly, Monthly, Quarterly or Yearly (default from trend.interval)")
	Cmd.Flags().StringVar(&today, "today", "", "Reference date for the range end (default: today)")
}

func trendFunc(cmd *cobra.Command, args []string) error {
	c := root.App()
	cfg := c.GetConfig()

	opts := Options{
		Range:    rangeName,
		Interval: interval,
		Today:    time.Now(),
		JSON:     root.Flags.JSON,
	}
	if opts.Range == "" {
		opts.Range = cfg.Trend.Range
	}
	if opts.Interval == "" {
		opts.Interval = cfg.Trend.Interval
	}
	if today != "" {
		parsed, err := dateutils.ParseDate(today)
		if err != nil {
			return fmt.Errorf("invalid --today value: %w", err)
		}
		opts.Today = parsed
	}

	return Run(cmd.Context(), c.GetReporter(), c.GetPreferences(), cmd.OutOrStdout(), opts)
}

// Run builds the report and prints it as a table or as JSON.
func Run(ctx context.Context, reporter *trend.Reporter, p *prefs.Preferences, w io.Writer, opts Options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := reporter.Build(ctx, opts.Range, period.ParseKind(opts.Interval), opts.Today)
	if err != nil {
		return fmt.Errorf("failed to build trend report: %w", err)
	}

	if opts.JSON {
		return common.WriteJSON(w, report)
	}
	return common.PrintReport(w, report, p)
}
