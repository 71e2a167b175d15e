// Package root contains the root command for the application
package root

import (
	"fmt"
	"io"
	"os"

	"fjacquet/budget-insight/internal/config"
	"fjacquet/budget-insight/internal/container"
	"fjacquet/budget-insight/internal/events"
	"fjacquet/budget-insight/internal/logging"

	"github.com/spf13/cobra"
)

// GlobalFlags holds the persistent flags shared by every command.
type GlobalFlags struct {
	ConfigFile string
	LogLevel   string
	JSON       bool
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewDiscardLogger()

	// Flags holds the parsed persistent flags
	Flags = GlobalFlags{}

	// Notices receives one line per kind of data refreshed by a command
	Notices io.Writer = os.Stderr

	app *container.Container

	refreshes   <-chan events.Event
	unsubscribe = func() {}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "budget-insight",
		Short: "Track spending trends and rebalance category budgets.",
		Long: `budget-insight aggregates your ledger into daily to yearly trends,
compares spending with your category budgets, and asks Gemini for
budget reallocations and short spending advice.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || app != nil {
				return nil
			}
			return Setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return Teardown()
		},
	}
)

// Init registers the persistent flags on the root command.
func Init() {
	Cmd.PersistentFlags().StringVarP(&Flags.ConfigFile, "config", "c", "", "Config file (default: $BUDGET_CONFIG, or config.yaml in $HOME/.budget-insight, .budget-insight or .)")
	Cmd.PersistentFlags().StringVar(&Flags.LogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	Cmd.PersistentFlags().BoolVar(&Flags.JSON, "json", false, "Print results as JSON")
}

// Setup loads .env and the configuration, then builds the application
// container. Without --config, BUDGET_CONFIG names the config file.
func Setup() error {
	if _, err := config.LoadEnv(nil); err != nil {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	configFile := Flags.ConfigFile
	if configFile == "" {
		configFile = config.GetEnv("BUDGET_CONFIG", "")
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if Flags.LogLevel != "" {
		cfg.Log.Level = Flags.LogLevel
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	SetApp(c)
	return nil
}

// SetApp installs an already built container, replacing the one Setup
// would create.
func SetApp(c *container.Container) {
	unsubscribe()
	app = c
	refreshes, unsubscribe = nil, func() {}
	if c != nil {
		Log = c.GetLogger()
		refreshes, unsubscribe = c.GetBroker().Subscribe(refreshBuffer)
	}
}

// App returns the application container. It is nil before Setup.
func App() *container.Container {
	return app
}

// Teardown closes the application container.
func Teardown() error {
	if app == nil {
		return nil
	}
	reportRefreshes(Notices)
	if dropped := app.GetBroker().Dropped(); dropped > 0 {
		Log.Debug("Refresh events dropped", logging.F(logging.FieldCount, dropped))
	}
	unsubscribe()
	refreshes, unsubscribe = nil, func() {}

	err := app.Close()
	app = nil
	return err
}

const refreshBuffer = 64

var refreshNotices = []struct {
	kind    events.RefreshType
	message string
}{
	{events.Budgets, "Budgets updated."},
	{events.Transactions, "Transactions updated."},
	{events.Advice, "Advice updated."},
	{events.Currency, "Currency updated."},
}

// reportRefreshes drains the pending refresh events and writes one notice
// per refreshed kind, in a fixed order.
func reportRefreshes(w io.Writer) {
	refreshed := make(map[events.RefreshType]bool)
	for pending := true; pending && refreshes != nil; {
		select {
		case e, ok := <-refreshes:
			if !ok {
				pending = false
				break
			}
			for _, n := range refreshNotices {
				if e.Matches(n.kind) {
					refreshed[n.kind] = true
				}
			}
		default:
			pending = false
		}
	}

	for _, n := range refreshNotices {
		if !refreshed[n.kind] {
			continue
		}
		Log.Debug("Data refreshed", logging.F(logging.FieldEventType, string(n.kind)))
		if w != nil {
			fmt.Fprintln(w, n.message)
		}
	}
}
