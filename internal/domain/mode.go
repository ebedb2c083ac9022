package domain

import (
	"strings"
	"time"
)

// Mode is a global life-context gating whether timers may run.
// Only Working lets timers run; every other mode pauses them.
type Mode string

const (
	ModeWorking  Mode = "Working"
	ModeBreak    Mode = "Break"
	ModeLunch    Mode = "Lunch"
	ModeGym      Mode = "Gym"
	ModeDinner   Mode = "Dinner"
	ModePersonal Mode = "Personal"
	ModeSleep    Mode = "Sleep"
)

// AllModes returns all modes in display order.
func AllModes() []Mode {
	return []Mode{
		ModeWorking,
		ModeBreak,
		ModeLunch,
		ModeGym,
		ModeDinner,
		ModePersonal,
		ModeSleep,
	}
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, bool) {
	for _, m := range AllModes() {
		if strings.EqualFold(s, string(m)) {
			return m, true
		}
	}
	return "", false
}

// PausesTimers returns true if entering this mode pauses all running items.
func (m Mode) PausesTimers() bool {
	return m != ModeWorking
}

// Display returns the mode name for rendering.
func (m Mode) Display() string {
	return string(m)
}

// Symbol returns the emoji shown next to the mode name.
func (m Mode) Symbol() string {
	switch m {
	case ModeWorking:
		return "💼"
	case ModeBreak:
		return "☁️"
	case ModeLunch:
		return "🍽"
	case ModeGym:
		return "🏋️"
	case ModeDinner:
		return "🍲"
	case ModePersonal:
		return "🏡"
	case ModeSleep:
		return "🌙"
	default:
		return ""
	}
}

// Meta is the small side record persisted alongside the daily files.
// It carries the global mode, the exact set of item identifiers that were
// auto-paused by a switch away from Working, and per-mode elapsed counters.
type Meta struct {
	Mode           Mode
	PausedByMode   []string
	ModeTimes      map[Mode]time.Duration
	LastModeChange *time.Time
}

// NewMeta returns a Meta with the default mode and zeroed counters.
func NewMeta() *Meta {
	return &Meta{
		Mode:      ModeWorking,
		ModeTimes: make(map[Mode]time.Duration),
	}
}

// ResetIfNewDay zeroes all per-mode counters when the last recorded mode
// change happened on a different calendar day than now. Returns true if a
// reset occurred.
func (m *Meta) ResetIfNewDay(now time.Time) bool {
	if m.LastModeChange == nil {
		return false
	}
	ly, lm, ld := m.LastModeChange.Date()
	ny, nm, nd := now.Date()
	if ly == ny && lm == nm && ld == nd {
		return false
	}
	m.ModeTimes = make(map[Mode]time.Duration)
	return true
}

// RecordModeTime folds the time spent since the last mode change into the
// counter of the given mode and re-baselines the change timestamp.
func (m *Meta) RecordModeTime(mode Mode, now time.Time) {
	if m.ModeTimes == nil {
		m.ModeTimes = make(map[Mode]time.Duration)
	}
	if m.LastModeChange != nil {
		m.ModeTimes[mode] += now.Sub(*m.LastModeChange)
	}
	t := now
	m.LastModeChange = &t
}
