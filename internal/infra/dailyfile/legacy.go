package dailyfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/quvia/centre/internal/domain"
)

// Legacy reads the pre-unification layout: today.md, tomorrow.md, and
// done.log.md, each holding a slice of what is now a single daily file.
type Legacy struct {
	dir    string
	logger domain.Logger
}

var _ domain.LegacyStore = (*Legacy)(nil)

// NewLegacy creates a legacy reader rooted at dir.
func NewLegacy(dir string, logger domain.Logger) *Legacy {
	return &Legacy{dir: dir, logger: logger}
}

func (l *Legacy) todayPath() string {
	return filepath.Join(l.dir, domain.LegacyTodayFileName)
}

func (l *Legacy) tomorrowPath() string {
	return filepath.Join(l.dir, domain.LegacyTomorrowFileName)
}

func (l *Legacy) doneLogPath() string {
	return filepath.Join(l.dir, domain.LegacyDoneLogFileName)
}

// HasLegacyFiles reports whether any legacy file is present.
func (l *Legacy) HasLegacyFiles() bool {
	for _, path := range []string{l.todayPath(), l.tomorrowPath(), l.doneLogPath()} {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	return false
}

// LoadLegacy merges the legacy files into one day image: tomorrow's items
// are promoted to today and appended after today's, and done-log entries
// completed today become the DONE section. Elapsed time is resynced from
// history and running items are coerced to paused.
func (l *Legacy) LoadLegacy(now time.Time) (*domain.DayFile, error) {
	warn := func(line int, err error) {
		l.logger.Warn("legacy", fmt.Sprintf("skipping record at line %d: %v", line, err))
	}

	todayItems := ParseMarkdown(l.readOptional(l.todayPath()), domain.ScheduleToday, now, warn)
	tomorrowItems := ParseMarkdown(l.readOptional(l.tomorrowPath()), domain.ScheduleTomorrow, now, warn)
	doneItems := parseDoneLog(l.readOptional(l.doneLogPath()), now)

	for _, it := range tomorrowItems {
		it.Schedule = domain.ScheduleToday
	}
	active := append(todayItems, tomorrowItems...)

	for _, it := range active {
		it.SyncElapsedFromHistory(now)
		it.CoerceRunningToPaused(now)
	}

	return &domain.DayFile{Active: active, Done: doneItems}, nil
}

// RemoveLegacy deletes the legacy task files. The done log is left in place
// as a historical record.
func (l *Legacy) RemoveLegacy() error {
	for _, path := range []string{l.todayPath(), l.tomorrowPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove legacy file: %w", err)
		}
	}
	return nil
}

func (l *Legacy) readOptional(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(content)
}

// parseDoneLog extracts the done-log entries completed on now's calendar
// day. Each entry starts with an "## <RFC3339 timestamp>" header.
func parseDoneLog(content string, now time.Time) []*domain.Item {
	var items []*domain.Item
	lines := strings.Split(content, "\n")
	i := 0

	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, "## ") {
			i++
			continue
		}

		ts, err := time.Parse(time.RFC3339, strings.TrimPrefix(line, "## "))
		if err != nil || !sameDay(ts.Local(), now) {
			i++
			continue
		}

		if it, ok := parseDoneEntry(lines, &i, ts.Local(), now); ok {
			items = append(items, it)
		} else {
			i++
		}
	}

	return items
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// parseDoneEntry reads one done-log entry starting at its header line.
func parseDoneEntry(lines []string, i *int, completedAt, now time.Time) (*domain.Item, bool) {
	var (
		title         string
		elapsedHours  float64
		estimateHours float64
		notes         []string
		history       []domain.StateEvent
		inNotes       bool
	)

	*i++ // skip the timestamp header

	for *i < len(lines) {
		line := lines[*i]

		if strings.HasPrefix(line, "## ") {
			break
		}

		switch {
		case strings.HasPrefix(line, "Task: \""):
			title = strings.TrimSuffix(strings.TrimPrefix(line, "Task: \""), "\"")
			inNotes = false
		case strings.HasPrefix(line, "Elapsed: "):
			elapsedHours = parseHoursLoose(strings.TrimPrefix(line, "Elapsed: "))
			inNotes = false
		case strings.HasPrefix(line, "Estimate at finish: "):
			estimateHours = parseHoursLoose(strings.TrimPrefix(line, "Estimate at finish: "))
			inNotes = false
		case strings.HasPrefix(line, "Estimate: "):
			estimateHours = parseHoursLoose(strings.TrimPrefix(line, "Estimate: "))
			inNotes = false
		case strings.HasPrefix(line, "History:"):
			inNotes = false
			*i++
			history = parseHistory(lines, i)
			continue
		case strings.HasPrefix(line, "Notes:"):
			inNotes = true
		case inNotes && strings.TrimSpace(line) != "":
			notes = append(notes, line)
		}

		*i++
	}

	if title == "" {
		return nil, false
	}

	it := domain.NewItem(title, domain.HoursToDuration(estimateHours), domain.ScheduleToday, now)
	it.Track.Elapsed = domain.HoursToDuration(elapsedHours)
	it.Notes = strings.Join(notes, "\n")
	if len(history) > 0 {
		it.History = history
	}
	it.MarkDone(completedAt)

	return it, true
}

// parseHoursLoose parses "1.30h" as fractional hours, yielding zero on a
// malformed value.
func parseHoursLoose(s string) float64 {
	hours, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "h"), 64)
	if err != nil {
		return 0
	}
	return hours
}
