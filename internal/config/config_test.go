package config

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/budget-insight/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("GEMINI_API_KEY") })

	logger := logging.NewMockLogger()
	file, err := LoadEnv(logger)
	require.NoError(t, err)

	assert.Equal(t, ".env", file)
	assert.Equal(t, "from-dotenv", os.Getenv("GEMINI_API_KEY"))
	assert.True(t, logger.HasEntry("DEBUG", "Loaded environment variables"))
}

func TestLoadEnv_KeepsExistingVariables(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BUDGET_LOG_LEVEL=debug\n"), 0600))
	t.Setenv("BUDGET_LOG_LEVEL", "warn")

	_, err := LoadEnv(nil)
	require.NoError(t, err)
	assert.Equal(t, "warn", os.Getenv("BUDGET_LOG_LEVEL"))
}

func TestLoadEnv_NoFile(t *testing.T) {
	isolate(t)

	file, err := LoadEnv(nil)
	require.NoError(t, err)
	assert.Empty(t, file)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("BUDGET_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("BUDGET_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("BUDGET_TEST_UNSET_VALUE", "fallback"))
}
