// Package prefs shows the active display preferences
package prefs

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/budget-insight/cmd/common"
	"fjacquet/budget-insight/cmd/root"
	"fjacquet/budget-insight/internal/parsererror"
	"fjacquet/budget-insight/internal/prefs"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Cmd represents the prefs command
var Cmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show currency and theme preferences",
	Long: `Show the currency and theme the application runs with. They are read from
the preferences section of the configuration.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(root.App().GetPreferences(), cmd.OutOrStdout(), root.Flags.JSON)
	},
}

// SetFlags holds the preference values given to prefs set. Empty fields
// are left unchanged.
type SetFlags struct {
	Currency string
	Symbol   string
	Theme    string
}

var setFlags SetFlags

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the currency or theme for this run",
	Long: `Change the currency or theme and show the result. The change lasts for
this run only; set preferences.currency_code, preferences.currency_symbol and
preferences.theme in the configuration to keep it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Set(root.App().GetPreferences(), cmd.OutOrStdout(), setFlags, root.Flags.JSON)
	},
}

func init() {
	setCmd.Flags().StringVar(&setFlags.Currency, "currency", "", "ISO 4217 currency code, e.g. CHF")
	setCmd.Flags().StringVar(&setFlags.Symbol, "symbol", "", "Symbol shown next to amounts (default: usual symbol for the currency)")
	setCmd.Flags().StringVar(&setFlags.Theme, "theme", "", "Colour theme (DARK or LIGHT)")

	Cmd.AddCommand(setCmd)
}

// Set applies f to p and prints the resulting preferences. A symbol given
// without a currency replaces the symbol of the current currency.
func Set(p *prefs.Preferences, w io.Writer, f SetFlags, asJSON bool) error {
	code := strings.TrimSpace(f.Currency)
	symbol := strings.TrimSpace(f.Symbol)
	theme := strings.ToUpper(strings.TrimSpace(f.Theme))
	if code == "" && symbol == "" && theme == "" {
		return fmt.Errorf("nothing to set: pass --currency, --symbol or --theme")
	}
	if theme != "" && theme != string(prefs.ThemeDark) && theme != string(prefs.ThemeLight) {
		return &parsererror.ValidationError{Field: "theme", Value: f.Theme, Reason: "must be DARK or LIGHT"}
	}

	if code != "" || symbol != "" {
		if code == "" {
			code = p.Currency().Code
		}
		if _, err := p.SetCurrency(code, symbol); err != nil {
			return err
		}
	}
	if theme != "" {
		p.SetTheme(prefs.Theme(theme))
	}
	return Run(p, w, asJSON)
}

type view struct {
	CurrencyCode   string `json:"currency_code"`
	CurrencySymbol string `json:"currency_symbol"`
	Theme          string `json:"theme"`
	Example        string `json:"example"`
}

// Run prints p.
func Run(p *prefs.Preferences, w io.Writer, asJSON bool) error {
	cur := p.Currency()
	v := view{
		CurrencyCode:   cur.Code,
		CurrencySymbol: cur.Symbol,
		Theme:          string(p.Theme()),
		Example:        p.FormatAmount(decimal.RequireFromString("1234.5")),
	}
	if asJSON {
		return common.WriteJSON(w, v)
	}
	_, err := fmt.Fprintf(w, "Currency: %s (%s)\nTheme:    %s\nExample:  %s\n", v.CurrencyCode, v.CurrencySymbol, v.Theme, v.Example)
	return err
}
