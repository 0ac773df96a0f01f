package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerWritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "scrape.log")

	logger, err := NewLogger("warn", logFile)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("Endpoint failed", zap.String("code", "NOT_FOUND"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, "WARN | "))
	assert.Contains(t, out, "Endpoint failed")
	assert.NotContains(t, out, "hidden")
}

func TestNewLoggerUnknownLevelFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger("chatty", "")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
