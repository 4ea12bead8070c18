package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pmtest/internal/config"
)

func TestNew_ConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LoggerConfig{Level: "warn"}, zapcore.AddSync(&buf))

	logger.Info("hidden")
	logger.Warn("shown", zap.String("scenario", "Admin Login Test"))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "Admin Login Test")
	assert.Contains(t, out, Name)
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LoggerConfig{Level: "chatty"}, zapcore.AddSync(&buf))

	logger.Debug("debug line")
	logger.Info("info line")
	require.NoError(t, logger.Sync())

	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "info line")
}

func TestNew_FileSinkWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pmtest.log")
	var console bytes.Buffer
	logger := New(config.LoggerConfig{Level: "debug", File: path, MaxSize: 1}, zapcore.AddSync(&console))

	logger.Debug("Scenario started", zap.String("scenario", "Settings Page Test"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "Scenario started", entry["msg"])
	assert.Equal(t, "Settings Page Test", entry["scenario"])
	assert.Equal(t, "debug", entry["level"])
	assert.Contains(t, console.String(), "Scenario started")
}
