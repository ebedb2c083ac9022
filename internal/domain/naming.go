package domain

import (
	"fmt"
	"path/filepath"
	"time"
)

// DateLayout is the calendar-date format used in file names and headers.
const DateLayout = "2006-01-02"

// File names inside the centre directory.
const (
	MetaFileName   = "meta.json"
	ConfigFileName = "config.toml"

	// Legacy layout, consumed by the one-time migration.
	LegacyTodayFileName    = "today.md"
	LegacyTomorrowFileName = "tomorrow.md"
	LegacyDoneLogFileName  = "done.log.md"
)

// FormatDate renders a time as a daily-file date key.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a date key, rejecting anything not in DateLayout form.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

// DailyFileName returns the file name of the daily record for a date key.
// Format: YYYY-MM-DD.md
func DailyFileName(date string) string {
	return date + ".md"
}

// JournalFileName returns the file name of the journal for a date key.
func JournalFileName(date string) string {
	return fmt.Sprintf("journal-%s.md", date)
}

// ReportFileName returns the file name of the generated report for a date key.
func ReportFileName(date string) string {
	return fmt.Sprintf("report-%s.md", date)
}

// DailyFilePath returns the path to the daily record for a date key.
func DailyFilePath(dir, date string) string {
	return filepath.Join(dir, DailyFileName(date))
}

// JournalFilePath returns the path to the journal for a date key.
func JournalFilePath(dir, date string) string {
	return filepath.Join(dir, JournalFileName(date))
}

// ReportFilePath returns the path to the generated report for a date key.
func ReportFilePath(dir, date string) string {
	return filepath.Join(dir, ReportFileName(date))
}

// MetaFilePath returns the path to the meta.json file.
func MetaFilePath(dir string) string {
	return filepath.Join(dir, MetaFileName)
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(dir string) string {
	return filepath.Join(dir, "logs", "centre.log")
}
