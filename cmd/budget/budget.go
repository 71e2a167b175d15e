// Package budget manages category budgets and AI reallocation suggestions
package budget

import (
	"context"
	"fmt"
	"io"
	"strings"

	"fjacquet/budget-insight/cmd/common"
	"fjacquet/budget-insight/cmd/root"
	"fjacquet/budget-insight/internal/budget"
	"fjacquet/budget-insight/internal/container"
	"fjacquet/budget-insight/internal/models"
	"fjacquet/budget-insight/internal/parsererror"
	"fjacquet/budget-insight/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage category budgets",
	Long:  `List, edit and rebalance the monthly category budgets stored in budgets.yaml.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List category budgets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return List(cmd.Context(), root.App(), cmd.OutOrStdout(), root.Flags.JSON)
	},
}

var setCmd = &cobra.Command{
	Use:   "set <category> <amount>",
	Short: "Set the monthly budget of a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Set(cmd.Context(), root.App(), cmd.OutOrStdout(), args[0], args[1])
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <category>",
	Aliases: []string{"rm"},
	Short:   "Remove a category budget",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Delete(cmd.Context(), root.App(), cmd.OutOrStdout(), args[0])
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask Gemini for a better split of the current total",
	Long: `Ask the completion service to redistribute the current budget total across
the existing categories and show the suggestion next to the current values.
Nothing is saved; use "budget apply" to store the suggestion.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Suggest(cmd.Context(), root.App(), cmd.OutOrStdout(), root.Flags.JSON)
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Replace the budgets with a fresh suggestion",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Apply(cmd.Context(), root.App(), cmd.OutOrStdout(), root.Flags.JSON)
	},
}

func init() {
	Cmd.AddCommand(listCmd, setCmd, deleteCmd, suggestCmd, applyCmd)
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// List prints the stored budgets.
func List(ctx context.Context, c *container.Container, w io.Writer, asJSON bool) error {
	budgets, err := c.GetStore().Load(contextOrBackground(ctx))
	if err != nil {
		return fmt.Errorf("failed to load budgets: %w", err)
	}
	if asJSON {
		return common.WriteJSON(w, budgets)
	}
	return common.PrintAllocation(w, budgets, c.GetPreferences())
}

// Set parses amount strictly and stores it for category.
func Set(ctx context.Context, c *container.Container, w io.Writer, category, amount string) error {
	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return &parsererror.ValidationError{Field: "amount", Value: amount, Reason: "must be a number"}
	}
	if value.IsNegative() {
		return &parsererror.ValidationError{Field: "amount", Value: amount, Reason: "must not be negative"}
	}

	if err := store.SetCategory(contextOrBackground(ctx), c.GetStore(), category, value); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Budget for %s set to %s\n", strings.TrimSpace(category), c.GetPreferences().FormatAmount(value))
	return err
}

// Delete removes category from the stored budgets.
func Delete(ctx context.Context, c *container.Container, w io.Writer, category string) error {
	found, err := store.DeleteCategory(contextOrBackground(ctx), c.GetStore(), category)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("budget category %q not found", category)
	}
	_, err = fmt.Fprintf(w, "Budget for %s removed\n", category)
	return err
}

type suggestion struct {
	Current     *models.Allocation  `json:"current"`
	Suggested   *models.Allocation  `json:"suggested"`
	Comparisons []models.Comparison `json:"comparisons"`
}

// Suggest prints the current budgets next to a reconciled suggestion
// without saving anything.
func Suggest(ctx context.Context, c *container.Container, w io.Writer, asJSON bool) error {
	ctx = contextOrBackground(ctx)
	current, err := c.GetStore().Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load budgets: %w", err)
	}

	suggested := c.GetSuggester().Suggest(ctx, current)
	rows := budget.Compare(current, suggested)
	if asJSON {
		return common.WriteJSON(w, suggestion{Current: current, Suggested: suggested, Comparisons: rows})
	}
	return common.PrintComparisons(w, rows, c.GetPreferences())
}

// Apply replaces the stored budgets with a suggestion and prints them. It
// refuses to run without a completion service.
func Apply(ctx context.Context, c *container.Container, w io.Writer, asJSON bool) error {
	if c.GetCompleter() == nil {
		return fmt.Errorf("budget apply needs AI suggestions: set ai.enabled and GEMINI_API_KEY")
	}
	applied, err := c.GetSuggester().Apply(contextOrBackground(ctx), c.GetStore())
	if err != nil {
		return err
	}
	if asJSON {
		return common.WriteJSON(w, applied)
	}
	return common.PrintAllocation(w, applied, c.GetPreferences())
}
