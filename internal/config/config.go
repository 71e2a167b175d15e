// Package config loads the application configuration and the optional .env
// file that seeds environment variables such as GEMINI_API_KEY.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"fjacquet/budget-insight/internal/logging"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the working
// directory or its parent, if one exists. Variables already set in the
// environment win. It returns the file loaded, or "" when none was found.
func LoadEnv(logger logging.Logger) (string, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file",
				logging.F(logging.FieldFile, envFile))
			return "", err
		}
		logger.Debug("Loaded environment variables", logging.F(logging.FieldFile, envFile))
		return envFile, nil
	}

	logger.Debug("No .env file found, using environment variables")
	return "", nil
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}

// NewLogger builds the application logger from the log section.
func NewLogger(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
