package logging

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quvia/centre/internal/domain"
)

func TestLogger_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	logger := New(dir, slog.LevelInfo)
	defer logger.Close()

	logger.Info("startup", "loaded daily file")
	logger.Warn("parser", "skipping record")

	content, err := os.ReadFile(domain.GlobalLogPath(dir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO] [startup] loaded daily file")
	assert.Contains(t, string(content), "[WARN] [parser] skipping record")
}

func TestLogger_LevelFilter(t *testing.T) {
	dir := t.TempDir()
	logger := New(dir, slog.LevelWarn)
	defer logger.Close()

	logger.Debug("noise", "ignored")
	logger.Info("noise", "also ignored")
	logger.Error("save", "write failed")

	content, err := os.ReadFile(domain.GlobalLogPath(dir))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "ignored")
	assert.Contains(t, string(content), "[ERROR] [save] write failed")
}

func TestLogger_DisabledWithEmptyDir(t *testing.T) {
	logger := New("", slog.LevelDebug)

	// must not panic or create files
	logger.Info("noop", "nothing happens")
	assert.NoError(t, logger.Close())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}
