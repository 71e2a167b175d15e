// Package main provides the entry point for the budget-insight CLI application.
package main

import (
	"fmt"
	"os"

	"fjacquet/budget-insight/cmd/advice"
	"fjacquet/budget-insight/cmd/budget"
	"fjacquet/budget-insight/cmd/ledger"
	"fjacquet/budget-insight/cmd/prefs"
	"fjacquet/budget-insight/cmd/root"
	"fjacquet/budget-insight/cmd/trend"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(trend.Cmd)
	root.Cmd.AddCommand(budget.Cmd)
	root.Cmd.AddCommand(advice.Cmd)
	root.Cmd.AddCommand(prefs.Cmd)
	root.Cmd.AddCommand(ledger.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
