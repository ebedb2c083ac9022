package domain

import "time"

// DayFile is the in-memory image of one daily file: three ordered sections.
type DayFile struct {
	Active   []*Item
	Done     []*Item
	Archived []*Item
}

// DayStore persists daily files keyed by date in DateLayout form.
type DayStore interface {
	// Exists reports whether a daily file exists for the date.
	Exists(date string) bool

	// Load reads and parses the daily file for the date.
	Load(date string) (*DayFile, error)

	// Save serializes and atomically writes the daily file for the date.
	Save(date string, day *DayFile) error
}

// JournalStore appends and reads per-day journal entries.
type JournalStore interface {
	// Append adds a timestamped entry to the date's journal file.
	Append(date string, now time.Time, entry string) error

	// Read returns the raw contents of the date's journal file.
	Read(date string) (string, error)
}

// MetaStore persists cross-day metadata: mode state and counters.
type MetaStore interface {
	// Load reads the metadata file, returning defaults if it is missing.
	Load() (*Meta, error)

	// Save atomically writes the metadata file.
	Save(meta *Meta) error
}

// LegacyStore detects and reads the pre-unification file layout.
type LegacyStore interface {
	// HasLegacyFiles reports whether any legacy files are present.
	HasLegacyFiles() bool

	// LoadLegacy merges the legacy files into a single day image.
	LoadLegacy(now time.Time) (*DayFile, error)

	// RemoveLegacy deletes the legacy files after a successful migration.
	RemoveLegacy() error
}

// ReportWriter generates daily reports.
type ReportWriter interface {
	// Generate writes the report for the date and returns its path.
	Generate(date string) (string, error)
}

// Notifier delivers desktop notifications. Delivery is best effort; failures
// are logged, never surfaced.
type Notifier interface {
	// TaskDone announces a completed item.
	TaskDone(title string)

	// EstimateReached announces a running item that hit its estimate.
	EstimateReached(title string)
}

// Logger provides categorized application logging.
type Logger interface {
	// Debug logs a debug-level message.
	Debug(category, message string)

	// Info logs an info-level message.
	Info(category, message string)

	// Warn logs a warning-level message.
	Warn(category, message string)

	// Error logs an error-level message.
	Error(category, message string)
}

// Config represents the application configuration.
type Config struct {
	Timer    TimerConfig // [timer] settings
	Idle     IdleConfig  // [idle] settings
	Undo     UndoConfig  // [undo] settings
	Log      LogConfig   // [log] settings
	Warnings []string    // Non-fatal problems found while loading
}

// TimerConfig holds timer settings from the [timer] section.
type TimerConfig struct {
	Tick         time.Duration // Interval between elapsed-time re-baselines
	EstimateStep time.Duration // Step for estimate adjustments
}

// IdleConfig holds idle-detection settings from the [idle] section.
type IdleConfig struct {
	CheckAfter time.Duration // Running time before the idle check fires
	Grace      time.Duration // Time to answer before timers auto-pause
}

// UndoConfig holds undo settings from the [undo] section.
type UndoConfig struct {
	Depth int // Maximum retained undo entries
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string // Log level: debug, info, warn, error
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults + global + local).
	Load() (*Config, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
