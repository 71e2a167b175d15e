package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedAdapter(level logrus.Level) (Logger, *bytes.Buffer) {
	logrusLogger := logrus.New()
	var buf bytes.Buffer
	logrusLogger.SetOutput(&buf)
	logrusLogger.SetLevel(level)
	logrusLogger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return NewLogrusAdapterFromLogger(logrusLogger), &buf
}

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
	}{
		{"debug level with text format", "debug", "text", logrus.DebugLevel},
		{"info level with json format", "info", "json", logrus.InfoLevel},
		{"upper case level", "WARN", "text", logrus.WarnLevel},
		{"invalid level defaults to info", "invalid", "text", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			require.NotNil(t, logger)

			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok, "logger should be a LogrusAdapter")
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)

			if tt.format == "json" {
				_, ok := adapter.logger.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok, "formatter should be JSONFormatter")
			} else {
				_, ok := adapter.logger.Formatter.(*logrus.TextFormatter)
				assert.True(t, ok, "formatter should be TextFormatter")
			}
		})
	}
}

func TestNewLogrusAdapterWithOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapterWithOutput("warn", "JSON", &buf)

	logger.Info("hidden")
	logger.Warn("shown", F(FieldRange, "This month"))

	output := buf.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, `"msg":"shown"`)
	assert.Contains(t, output, `"range":"This month"`)
	assert.Contains(t, output, `"level":"warning"`)
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	logger := NewLogrusAdapterFromLogger(nil)
	adapter, ok := logger.(*LogrusAdapter)
	require.True(t, ok)
	assert.NotNil(t, adapter.logger)
}

func TestLogrusAdapter_LoggingMethods(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func(Logger, string, ...Field)
		message string
	}{
		{"Debug", func(l Logger, m string, f ...Field) { l.Debug(m, f...) }, "debug message"},
		{"Info", func(l Logger, m string, f ...Field) { l.Info(m, f...) }, "info message"},
		{"Warn", func(l Logger, m string, f ...Field) { l.Warn(m, f...) }, "warn message"},
		{"Error", func(l Logger, m string, f ...Field) { l.Error(m, f...) }, "error message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferedAdapter(logrus.DebugLevel)
			tt.logFunc(logger, tt.message, F(FieldCategory, "Food"))

			output := buf.String()
			assert.Contains(t, output, tt.message)
			assert.Contains(t, output, "category=Food")
		})
	}
}

func TestLogrusAdapter_ChainedCalls(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.InfoLevel)

	logger.
		WithField(FieldOperation, "suggest").
		WithFields(F(FieldCount, 3)).
		WithError(errors.New("timeout")).
		Error("completion failed")

	output := buf.String()
	assert.Contains(t, output, "completion failed")
	assert.Contains(t, output, "operation=suggest")
	assert.Contains(t, output, "count=3")
	assert.Contains(t, output, "timeout")
}

func TestNewDiscardLogger(t *testing.T) {
	logger := NewDiscardLogger()
	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Info("dropped") })
}

func TestConvertFields(t *testing.T) {
	fields := convertFields([]Field{F("a", 1), F("b", "two")})
	assert.Len(t, fields, 2)
	assert.Equal(t, 1, fields["a"])
	assert.Equal(t, "two", fields["b"])
	assert.Empty(t, convertFields(nil))
}

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	mock := NewMockLogger()
	mock.WithError(errors.New("boom")).WithField(FieldCategory, "Rent").Warn("fallback")
	mock.Info("done")

	entries := mock.GetEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.EqualError(t, entries[0].Error, "boom")
	assert.Equal(t, []Field{F(FieldCategory, "Rent")}, entries[0].Fields)
	assert.True(t, mock.HasEntry("INFO", "done"))
	assert.Len(t, mock.GetEntriesByLevel("WARN"), 1)

	mock.Clear()
	assert.Empty(t, mock.GetEntries())
}

func TestLoggerImplementations(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
}
