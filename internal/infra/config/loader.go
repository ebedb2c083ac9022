// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/quvia/centre/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Path to the .centre directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/centre)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config
// directory. This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "centre")
}

// Load returns the merged configuration (defaults + global + local).
// Local config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	local, err := l.loadFile(filepath.Join(l.dataDir, domain.ConfigFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}

	return base, nil
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and
// collects warnings for unknown keys.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		switch section {
		case "timer":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "tick_ms":
						if n, ok := asInt(v); ok {
							res.Timer.Tick = time.Duration(n) * time.Millisecond
						}
					case "estimate_step_minutes":
						if n, ok := asInt(v); ok {
							res.Timer.EstimateStep = time.Duration(n) * time.Minute
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [timer]: %s", k))
					}
				}
			}
		case "idle":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "check_minutes":
						if n, ok := asInt(v); ok {
							res.Idle.CheckAfter = time.Duration(n) * time.Minute
						}
					case "grace_minutes":
						if n, ok := asInt(v); ok {
							res.Idle.Grace = time.Duration(n) * time.Minute
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [idle]: %s", k))
					}
				}
			}
		case "undo":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "depth":
						if n, ok := asInt(v); ok {
							res.Undo.Depth = int(n)
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [undo]: %s", k))
					}
				}
			}
		case "log":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "level":
						if s, ok := v.(string); ok {
							res.Log.Level = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
					}
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// asInt widens the numeric types the TOML decoder may produce.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

// mergeConfigs merges override into base, field by field. Zero values in
// override leave base untouched.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	res := *base

	if override.Timer.Tick != 0 {
		res.Timer.Tick = override.Timer.Tick
	}
	if override.Timer.EstimateStep != 0 {
		res.Timer.EstimateStep = override.Timer.EstimateStep
	}
	if override.Idle.CheckAfter != 0 {
		res.Idle.CheckAfter = override.Idle.CheckAfter
	}
	if override.Idle.Grace != 0 {
		res.Idle.Grace = override.Idle.Grace
	}
	if override.Undo.Depth != 0 {
		res.Undo.Depth = override.Undo.Depth
	}
	if override.Log.Level != "" {
		res.Log.Level = override.Log.Level
	}

	res.Warnings = append(append([]string(nil), base.Warnings...), override.Warnings...)
	return &res
}
