package config_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-library-go/config"
)

func Test_ParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			// act
			level, err := config.ParseLevel(tc.input)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.expected, level)
		})
	}
}

func Test_NewLogger_JSONFormatAndLevel(t *testing.T) {
	// arrange
	var buf bytes.Buffer

	// act
	logger, err := config.NewLogger(config.LogConfig{Level: "warn", Format: config.FormatJSON}, &buf)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "isbn", "123-1234567890")

	// assert
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
	assert.Contains(t, buf.String(), `"isbn":"123-1234567890"`)
}

func Test_NewLogger_TextFormat(t *testing.T) {
	// arrange
	var buf bytes.Buffer

	// act
	logger, err := config.NewLogger(config.LogConfig{Level: "info", Format: config.FormatText}, &buf)
	require.NoError(t, err)

	logger.Info("kept", "borrower_id", "B001")

	// assert
	assert.Contains(t, buf.String(), "msg=kept")
	assert.Contains(t, buf.String(), "borrower_id=B001")
}

func Test_NewLogger_UnknownLevel(t *testing.T) {
	// act
	_, err := config.NewLogger(config.LogConfig{Level: "chatty"}, &bytes.Buffer{})

	// assert
	assert.ErrorContains(t, err, "chatty")
}
