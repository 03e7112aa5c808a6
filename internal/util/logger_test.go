package util

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ConsoleText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerOptions{Level: "info", Console: true, Writer: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("dropped interval", F("status", "UNKNOWN_CODE"), F("date", "2025-06-10"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] dropped interval date=2025-06-10 status=UNKNOWN_CODE")
}

func TestNewLogger_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "eld.log")
	logger, err := NewLogger(LoggerOptions{Level: "debug", File: path, Format: FormatJSON})
	require.NoError(t, err)

	logger.With(F("component", "parser")).Debugf("parsed %d files", 3)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry LogEntry
	require.NoError(t, sonic.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "DEBUG", entry.Level)
	assert.Equal(t, "parsed 3 files", entry.Message)
	assert.Equal(t, "parser", entry.Fields["component"])
}

func TestNewLogger_NoOutputs(t *testing.T) {
	logger, err := NewLogger(LoggerOptions{Level: "debug"})
	require.NoError(t, err)
	assert.NotPanics(t, func() { logger.Error("nowhere") })
}

func TestLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerOptions{Console: true, Writer: &buf})
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), ContextKeyDate, "2025-06-10")
	logger.WithContext(ctx).Warn("clipped")

	assert.Contains(t, buf.String(), "log_date=2025-06-10")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, LevelError, ParseLogLevel("error"))
	assert.Equal(t, LevelInfo, ParseLogLevel("nonsense"))
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerOptions{Level: "warn", Console: true, Writer: &buf})
	require.NoError(t, err)
	SetLogger(logger)
	t.Cleanup(func() { SetLogger(nil) })

	LogInfo("skipped")
	LogWarnf("%d warnings", 2)
	LogErrorf("failed: %s", "boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[WARN] 2 warnings")
	assert.Contains(t, lines[1], "[ERROR] failed: boom")
}
