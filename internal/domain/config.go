package domain

import "time"

// Configuration defaults.
const (
	DefaultTick         = 250 * time.Millisecond
	DefaultEstimateStep = 15 * time.Minute
	DefaultIdleCheck    = 30 * time.Minute
	DefaultIdleGrace    = 30 * time.Minute
	DefaultUndoDepth    = 10
	DefaultLogLevel     = "info"
)

// NewDefaultConfig returns the built-in configuration.
func NewDefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			Tick:         DefaultTick,
			EstimateStep: DefaultEstimateStep,
		},
		Idle: IdleConfig{
			CheckAfter: DefaultIdleCheck,
			Grace:      DefaultIdleGrace,
		},
		Undo: UndoConfig{
			Depth: DefaultUndoDepth,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}
