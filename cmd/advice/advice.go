// Package advice prints short spending advice generated from the ledger
package advice

import (
	"context"
	"fmt"
	"io"

	"fjacquet/budget-insight/cmd/common"
	"fjacquet/budget-insight/cmd/root"
	"fjacquet/budget-insight/internal/advice"
	"fjacquet/budget-insight/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the advice command
var Cmd = &cobra.Command{
	Use:   "advice",
	Short: "Generate spending advice from your expenses",
	Long: `Send the per-category expense totals and the ledger's date range to Gemini
and print a few sentences of advice, pointing out seasonal spikes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.App().GetAdvisor(), root.Log, cmd.OutOrStdout(), cmd.ErrOrStderr(), root.Flags.JSON)
	},
}

// Run regenerates the advice and prints it to w. A failed regeneration is
// logged, a one-line notice goes to notice, and the previous advice, if
// any, is still printed.
func Run(ctx context.Context, advisor *advice.Advisor, logger logging.Logger, w, notice io.Writer, asJSON bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := advisor.Regenerate(ctx); err != nil {
		logger.WithError(err).Warn("Advice could not be refreshed")
		if notice != nil {
			fmt.Fprintln(notice, "Advice could not be refreshed, showing the last generated advice.")
		}
	}

	current := advisor.Advice()
	if asJSON {
		return common.WriteJSON(w, current)
	}

	if current.Text == "" {
		_, err := fmt.Fprintln(w, "No advice available yet.")
		return err
	}
	fmt.Fprintln(w, current.Text)
	_, err := fmt.Fprintf(w, "\nGenerated: %s\n", common.FormatTimestamp(current.GeneratedAt))
	return err
}
