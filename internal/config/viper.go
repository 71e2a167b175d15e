// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/budget-insight/internal/dateutils"
	"fjacquet/budget-insight/internal/store"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

// AppName names the configuration and data directories.
const AppName = "budget-insight"

// Ledger drivers.
const (
	DriverCSV    = "csv"
	DriverSQLite = "sqlite"
)

// LogConfig controls logger level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// AIConfig configures the text-completion service.
type AIConfig struct {
	Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
	Model             string `mapstructure:"model" yaml:"model"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	APIKey            string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
}

// DataConfig locates the budgets file.
type DataConfig struct {
	Directory   string `mapstructure:"directory" yaml:"directory"`
	BudgetsFile string `mapstructure:"budgets_file" yaml:"budgets_file"`
}

// LedgerConfig selects the transaction source.
type LedgerConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
	Path   string `mapstructure:"path" yaml:"path"`
}

// TrendConfig holds the default trend view.
type TrendConfig struct {
	Range    string `mapstructure:"range" yaml:"range"`
	Interval string `mapstructure:"interval" yaml:"interval"`
}

// PreferencesConfig seeds the process-wide display preferences.
type PreferencesConfig struct {
	CurrencyCode   string `mapstructure:"currency_code" yaml:"currency_code"`
	CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
	Theme          string `mapstructure:"theme" yaml:"theme"`
}

// Config represents the complete application configuration
type Config struct {
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
	AI          AIConfig          `mapstructure:"ai" yaml:"ai"`
	Data        DataConfig        `mapstructure:"data" yaml:"data"`
	Ledger      LedgerConfig      `mapstructure:"ledger" yaml:"ledger"`
	Trend       TrendConfig       `mapstructure:"trend" yaml:"trend"`
	Preferences PreferencesConfig `mapstructure:"preferences" yaml:"preferences"`
}

// BudgetsPath returns the location of the budgets file. A relative
// budgets_file is resolved against the data directory.
func (c *Config) BudgetsPath() string {
	if filepath.IsAbs(c.Data.BudgetsFile) {
		return c.Data.BudgetsFile
	}
	return filepath.Join(c.Data.Directory, c.Data.BudgetsFile)
}

// LedgerPath returns the ledger location, defaulting to ledger.csv or
// ledger.db in the data directory depending on the driver.
func (c *Config) LedgerPath() string {
	if c.Ledger.Path != "" {
		return c.Ledger.Path
	}
	if c.Ledger.Driver == DriverSQLite {
		return filepath.Join(c.Data.Directory, "ledger.db")
	}
	return filepath.Join(c.Data.Directory, "ledger.csv")
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return Load("")
}

// Load reads configuration from defaults, an optional config file and
// BUDGET_* environment variables, in increasing precedence. When
// configFile is set it must exist; otherwise config.yaml is searched in
// $HOME/.budget-insight, .budget-insight and the working directory.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/." + AppName)
		v.AddConfigPath("." + AppName)
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("BUDGET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 5. Handle special case for API key (always from env, not prefixed)
	if err := v.BindEnv("ai.api_key", "BUDGET_AI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY environment variable: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if config.Data.Directory == "" {
		config.Data.Directory = DefaultDataDirectory()
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultDataDirectory returns $XDG_DATA_HOME/budget-insight.
func DefaultDataDirectory() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// AI defaults
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.requests_per_minute", 10)
	v.SetDefault("ai.timeout_seconds", 30)

	// Data defaults
	v.SetDefault("data.directory", "")
	v.SetDefault("data.budgets_file", store.DefaultBudgetsFile)

	// Ledger defaults
	v.SetDefault("ledger.driver", DriverCSV)
	v.SetDefault("ledger.path", "")

	// Trend defaults
	v.SetDefault("trend.range", dateutils.RangeLast30Days)
	v.SetDefault("trend.interval", "Daily")

	// Preference defaults
	v.SetDefault("preferences.currency_code", "USD")
	v.SetDefault("preferences.currency_symbol", "$")
	v.SetDefault("preferences.theme", "DARK")
}

var validIntervals = map[string]bool{
	"day": true, "daily": true,
	"week": true, "weekly": true,
	"fortnight": true, "fortnightly": true,
	"month": true, "monthly": true,
	"quarter": true, "quarterly": true,
	"year": true, "yearly": true,
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate AI configuration
	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}

		if config.AI.RequestsPerMinute < 1 || config.AI.RequestsPerMinute > 1000 {
			return fmt.Errorf("ai.requests_per_minute must be between 1 and 1000, got: %d", config.AI.RequestsPerMinute)
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	if strings.TrimSpace(config.Data.BudgetsFile) == "" {
		return fmt.Errorf("data.budgets_file must not be empty")
	}

	// Validate ledger driver
	if config.Ledger.Driver != DriverCSV && config.Ledger.Driver != DriverSQLite {
		return fmt.Errorf("invalid ledger driver: %s (must be '%s' or '%s')", config.Ledger.Driver, DriverCSV, DriverSQLite)
	}

	// Validate trend defaults
	if !dateutils.IsRangePreset(config.Trend.Range) {
		return fmt.Errorf("invalid trend range: %s (must be one of %s)", config.Trend.Range, strings.Join(dateutils.RangePresets, ", "))
	}
	if !validIntervals[strings.ToLower(config.Trend.Interval)] {
		return fmt.Errorf("invalid trend interval: %s", config.Trend.Interval)
	}

	// Validate currency code; the theme falls back to DARK on its own
	if _, err := currency.ParseISO(config.Preferences.CurrencyCode); err != nil {
		return fmt.Errorf("invalid currency code: %s", config.Preferences.CurrencyCode)
	}

	return nil
}
