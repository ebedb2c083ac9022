package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quvia/centre/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o600))
}

func TestLoader_Defaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Timer.Tick)
	assert.Equal(t, domain.DefaultEstimateStep, cfg.Timer.EstimateStep)
	assert.Equal(t, domain.DefaultIdleCheck, cfg.Idle.CheckAfter)
	assert.Equal(t, domain.DefaultUndoDepth, cfg.Undo.Depth)
	assert.Equal(t, domain.DefaultLogLevel, cfg.Log.Level)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_LocalOverridesGlobal(t *testing.T) {
	globalDir := t.TempDir()
	localDir := t.TempDir()
	writeConfig(t, globalDir, `
[timer]
tick_ms = 500
estimate_step_minutes = 10

[log]
level = "debug"
`)
	writeConfig(t, localDir, `
[timer]
tick_ms = 250
`)

	cfg, err := NewLoaderWithGlobalDir(localDir, globalDir).Load()

	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Timer.Tick)
	assert.Equal(t, 10*time.Minute, cfg.Timer.EstimateStep)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoader_IdleAndUndoSections(t *testing.T) {
	localDir := t.TempDir()
	writeConfig(t, localDir, `
[idle]
check_minutes = 45
grace_minutes = 15

[undo]
depth = 20
`)

	cfg, err := NewLoaderWithGlobalDir(localDir, t.TempDir()).Load()

	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, cfg.Idle.CheckAfter)
	assert.Equal(t, 15*time.Minute, cfg.Idle.Grace)
	assert.Equal(t, 20, cfg.Undo.Depth)
}

func TestLoader_UnknownKeysWarn(t *testing.T) {
	localDir := t.TempDir()
	writeConfig(t, localDir, `
[timer]
tick_ms = 500
speed = "fast"

[colors]
theme = "dark"
`)

	cfg, err := NewLoaderWithGlobalDir(localDir, t.TempDir()).Load()

	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.Timer.Tick)
	assert.Contains(t, cfg.Warnings, "unknown key in [timer]: speed")
	assert.Contains(t, cfg.Warnings, "unknown section: colors")
}

func TestLoader_MalformedFile(t *testing.T) {
	localDir := t.TempDir()
	writeConfig(t, localDir, "not [valid toml")

	_, err := NewLoaderWithGlobalDir(localDir, t.TempDir()).Load()

	assert.Error(t, err)
}
