package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_TextFiltersBelowLevel(t *testing.T) {
	// Given: a warn-level text logger
	var buf bytes.Buffer
	logger := Setup(Config{Level: "warn", Format: "text"}, &buf)

	// When: logging at debug and warn
	logger.Debug("hidden")
	logger.Warn("visible", "check", "runtime")

	// Then: only the warning is written
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "check=runtime")
}

func TestSetup_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Config{Level: "debug", Format: "json"}, &buf)

	logger.Debug("probe", "tool", "node")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "probe", entry["msg"])
	assert.Equal(t, "node", entry["tool"])
	assert.Equal(t, "DEBUG", entry["level"])
}

func TestDiscard_WritesNothing(t *testing.T) {
	logger := Discard()
	logger.Error("dropped")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "DEBUG"},
		{"DEBUG", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"unknown", "INFO"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseLevel(tc.input).String())
		})
	}
}
