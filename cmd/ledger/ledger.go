// Package ledger records and lists transactions
package ledger

import (
	"context"
	"fmt"
	"io"
	"strings"

	"fjacquet/budget-insight/cmd/common"
	"fjacquet/budget-insight/cmd/root"
	"fjacquet/budget-insight/internal/config"
	"fjacquet/budget-insight/internal/container"
	"fjacquet/budget-insight/internal/dateutils"
	"fjacquet/budget-insight/internal/fileutils"
	"fjacquet/budget-insight/internal/ledger"
	"fjacquet/budget-insight/internal/models"
	"fjacquet/budget-insight/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// AddFlags holds the fields of a transaction entered on the command line.
type AddFlags struct {
	Date        string
	Amount      string
	Category    string
	Description string
}

var addFlags AddFlags

// Cmd represents the ledger command
var Cmd = &cobra.Command{
	Use:   "ledger",
	Short: "Record and list transactions",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the transactions of the configured ledger",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return List(cmd.Context(), root.App(), cmd.OutOrStdout(), root.Flags.JSON)
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record one transaction in the SQLite ledger",
	Long: `Record one transaction. Expenses are negative amounts, incomes positive.
Requires ledger.driver to be "sqlite".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Add(cmd.Context(), root.App(), cmd.OutOrStdout(), addFlags)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a Date,Amount,Category,Description CSV into the SQLite ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Import(cmd.Context(), root.App(), cmd.OutOrStdout(), args[0])
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file.csv>",
	Short: "Write the configured ledger to a Date,Amount,Category,Description CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Export(cmd.Context(), root.App(), cmd.OutOrStdout(), args[0])
	},
}

func init() {
	addCmd.Flags().StringVarP(&addFlags.Date, "date", "d", "", "Transaction date (YYYY-MM-DD, DD.MM.YYYY, ...)")
	addCmd.Flags().StringVarP(&addFlags.Amount, "amount", "a", "", "Signed amount, negative for expenses")
	addCmd.Flags().StringVarP(&addFlags.Category, "category", "g", "", "Category name")
	addCmd.Flags().StringVarP(&addFlags.Description, "description", "m", "", "Free-text description")
	_ = addCmd.MarkFlagRequired("date")
	_ = addCmd.MarkFlagRequired("amount")

	Cmd.AddCommand(listCmd, addCmd, importCmd, exportCmd)
}

type lister interface {
	Transactions(ctx context.Context) ([]models.Transaction, error)
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

func recorder(c *container.Container) (*ledger.SQLiteSource, error) {
	rec, ok := c.GetRecorder()
	if !ok {
		return nil, fmt.Errorf("recording transactions requires ledger.driver %q (current: %q)",
			config.DriverSQLite, c.GetConfig().Ledger.Driver)
	}
	return rec, nil
}

// List prints every transaction of the configured ledger.
func List(ctx context.Context, c *container.Container, w io.Writer, asJSON bool) error {
	src, ok := c.GetLedger().(lister)
	if !ok {
		return fmt.Errorf("ledger driver %q cannot list transactions", c.GetConfig().Ledger.Driver)
	}
	txs, err := src.Transactions(contextOrBackground(ctx))
	if err != nil {
		return fmt.Errorf("failed to read ledger: %w", err)
	}
	if asJSON {
		return common.WriteJSON(w, txs)
	}
	return common.PrintTransactions(w, txs, c.GetPreferences())
}

// Export writes every transaction of the configured ledger to path. The
// file can be read back by the CSV driver or by Import.
func Export(ctx context.Context, c *container.Container, w io.Writer, path string) error {
	src, ok := c.GetLedger().(lister)
	if !ok {
		return fmt.Errorf("ledger driver %q cannot list transactions", c.GetConfig().Ledger.Driver)
	}
	txs, err := src.Transactions(contextOrBackground(ctx))
	if err != nil {
		return fmt.Errorf("failed to read ledger: %w", err)
	}
	if err := ledger.WriteCSV(path, txs); err != nil {
		return fmt.Errorf("failed to export %s: %w", path, err)
	}
	_, err = fmt.Fprintf(w, "Exported %d transactions to %s\n", len(txs), path)
	return err
}

// Add validates f and records it.
func Add(ctx context.Context, c *container.Container, w io.Writer, f AddFlags) error {
	rec, err := recorder(c)
	if err != nil {
		return err
	}

	date, err := dateutils.ParseDate(f.Date)
	if err != nil {
		return &parsererror.ValidationError{Field: "date", Value: f.Date, Reason: "unrecognized date format"}
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(f.Amount))
	if err != nil {
		return &parsererror.ValidationError{Field: "amount", Value: f.Amount, Reason: "must be a number"}
	}

	tx := models.Transaction{
		Date:        dateutils.Day(date),
		Amount:      amount,
		Category:    strings.TrimSpace(f.Category),
		Description: strings.TrimSpace(f.Description),
	}
	if err := rec.Add(contextOrBackground(ctx), tx); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	_, err = fmt.Fprintf(w, "Recorded %s %s in %s\n", dateutils.ToISODate(tx.Date), c.GetPreferences().FormatAmount(tx.Amount), tx.CategoryOrDefault())
	return err
}

// Import copies every valid row of a CSV ledger into the SQLite ledger.
func Import(ctx context.Context, c *container.Container, w io.Writer, path string) error {
	rec, err := recorder(c)
	if err != nil {
		return err
	}
	if !fileutils.FileExists(path) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	ctx = contextOrBackground(ctx)

	txs, err := ledger.NewCSVSource(path, c.GetLogger()).Transactions(ctx)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := rec.Add(ctx, txs...); err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}
	_, err = fmt.Fprintf(w, "Imported %d transactions from %s\n", len(txs), path)
	return err
}
