package domain

import "strings"

// Status represents the run state of an item.
type Status string

const (
	StatusIdle      Status = "idle"      // Not started (or explicitly stopped)
	StatusRunning   Status = "running"   // Timer accumulating
	StatusPaused    Status = "paused"    // Timer stopped, work unfinished
	StatusDone      Status = "done"      // Completed
	StatusPostponed Status = "postponed" // Deferred to a later day
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{
		StatusIdle,
		StatusRunning,
		StatusPaused,
		StatusDone,
		StatusPostponed,
	}
}

// ParseStatusTag parses a daily-file tag like "RUNNING" into a Status.
// Tags are matched case-insensitively.
func ParseStatusTag(tag string) (Status, bool) {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case "IDLE":
		return StatusIdle, true
	case "RUNNING":
		return StatusRunning, true
	case "PAUSED":
		return StatusPaused, true
	case "DONE":
		return StatusDone, true
	case "POSTPONED":
		return StatusPostponed, true
	default:
		return "", false
	}
}

// Tag returns the daily-file tag for the status (e.g. "RUNNING").
func (s Status) Tag() string {
	return strings.ToUpper(string(s))
}

// IsActive returns true if the status belongs in the ACTIVE section of a
// daily file. Done and Postponed items are excluded.
func (s Status) IsActive() bool {
	return s == StatusIdle || s == StatusRunning || s == StatusPaused
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusRunning:
		return "Running"
	case StatusPaused:
		return "Paused"
	case StatusDone:
		return "Done"
	case StatusPostponed:
		return "Postponed"
	default:
		return string(s)
	}
}

// ScheduleDay is the schedule bucket an item belongs to.
type ScheduleDay string

const (
	ScheduleToday    ScheduleDay = "today"
	ScheduleTomorrow ScheduleDay = "tomorrow"
)
