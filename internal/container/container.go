// Package container provides dependency injection for the budget-insight
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"fjacquet/budget-insight/internal/advice"
	"fjacquet/budget-insight/internal/aiclient"
	"fjacquet/budget-insight/internal/budget"
	"fjacquet/budget-insight/internal/config"
	"fjacquet/budget-insight/internal/events"
	"fjacquet/budget-insight/internal/ledger"
	"fjacquet/budget-insight/internal/logging"
	"fjacquet/budget-insight/internal/prefs"
	"fjacquet/budget-insight/internal/store"
	"fjacquet/budget-insight/internal/trend"
)

// Container holds all application dependencies and provides methods to access them.
// It acts as the central registry for dependency injection, ensuring that all
// components receive their required dependencies through constructors.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	broker      *events.Broker
	preferences *prefs.Preferences
	store       *store.YAMLStore
	ledger      ledger.Source
	recorder    *ledger.SQLiteSource
	completer   aiclient.Completer
	gemini      *aiclient.GeminiClient
	suggester   *budget.Suggester
	reporter    *trend.Reporter
	advisor     *advice.Advisor
}

// Option customizes container construction.
type Option func(*options)

type options struct {
	logger    logging.Logger
	completer aiclient.Completer
}

// WithLogger replaces the logger built from the log configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithCompleter replaces the Gemini completer, regardless of the AI
// configuration.
func WithCompleter(completer aiclient.Completer) Option {
	return func(o *options) { o.completer = completer }
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
//
// Parameters:
//   - cfg: Application configuration
//   - opts: Optional overrides for the logger and completer
//
// Returns:
//   - *Container: Fully wired container with all dependencies
//   - error: Any error encountered during dependency creation
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = config.NewLogger(cfg)
	}

	broker := events.NewBroker(logger)

	preferences, err := prefs.New(cfg.Preferences.CurrencyCode, cfg.Preferences.CurrencySymbol, cfg.Preferences.Theme, broker)
	if err != nil {
		broker.Close()
		return nil, fmt.Errorf("failed to create preferences: %w", err)
	}

	budgetStore := store.NewYAMLStore(cfg.BudgetsPath(), broker, logger)

	c := &Container{
		logger:      logger,
		config:      cfg,
		broker:      broker,
		preferences: preferences,
		store:       budgetStore,
	}

	// Create transaction source for the configured driver
	switch cfg.Ledger.Driver {
	case config.DriverSQLite:
		src, err := ledger.NewSQLiteSource(cfg.LedgerPath(), broker, logger)
		if err != nil {
			broker.Close()
			return nil, fmt.Errorf("failed to open ledger: %w", err)
		}
		c.ledger = src
		c.recorder = src
	default:
		c.ledger = ledger.NewCSVSource(cfg.LedgerPath(), logger)
	}

	// Create completer (if enabled)
	switch {
	case o.completer != nil:
		c.completer = o.completer
	case cfg.AI.Enabled && cfg.AI.APIKey != "":
		gemini, err := aiclient.NewGeminiClient(context.Background(), aiclient.GeminiConfig{
			APIKey:            cfg.AI.APIKey,
			Model:             cfg.AI.Model,
			RequestsPerMinute: cfg.AI.RequestsPerMinute,
			Timeout:           time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		}, logger)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to create completion client: %w", err)
		}
		c.gemini = gemini
		c.completer = gemini
		logger.Info("AI suggestions enabled", logging.F(logging.FieldModel, cfg.AI.Model))
	default:
		logger.Info("AI suggestions disabled")
	}

	c.suggester = budget.NewSuggester(c.completer, logger)
	c.reporter = trend.NewReporter(c.ledger, budgetStore, logger)
	c.advisor = advice.NewAdvisor(c.ledger, c.completer, broker, logger)

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldDriver, cfg.Ledger.Driver),
		logging.F("ai_enabled", c.completer != nil))

	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetBroker returns the event broker shared by all components.
func (c *Container) GetBroker() *events.Broker {
	return c.broker
}

// GetPreferences returns the process-wide display preferences.
func (c *Container) GetPreferences() *prefs.Preferences {
	return c.preferences
}

// GetStore returns the budget store.
func (c *Container) GetStore() *store.YAMLStore {
	return c.store
}

// GetLedger returns the configured transaction source.
func (c *Container) GetLedger() ledger.Source {
	return c.ledger
}

// GetRecorder returns the SQLite ledger when it is the configured driver.
func (c *Container) GetRecorder() (*ledger.SQLiteSource, bool) {
	return c.recorder, c.recorder != nil
}

// GetCompleter returns the completion service, or nil when AI is disabled.
func (c *Container) GetCompleter() aiclient.Completer {
	return c.completer
}

// GetSuggester returns the budget suggester.
func (c *Container) GetSuggester() *budget.Suggester {
	return c.suggester
}

// GetReporter returns the trend reporter.
func (c *Container) GetReporter() *trend.Reporter {
	return c.reporter
}

// GetAdvisor returns the spending advisor.
func (c *Container) GetAdvisor() *advice.Advisor {
	return c.advisor
}

// Close releases the ledger database, the completion client and the
// broker's subscriptions.
func (c *Container) Close() error {
	var firstErr error
	if c.recorder != nil {
		if err := c.recorder.Close(); err != nil {
			firstErr = err
		}
	}
	if c.gemini != nil {
		if err := c.gemini.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.broker.Close()
	c.logger.Debug("Container closed")
	return firstErr
}
