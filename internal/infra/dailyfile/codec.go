// Package dailyfile implements the human-readable markdown persistence
// format for daily task files, plus the stores built on it.
package dailyfile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quvia/centre/internal/domain"
)

// section names inside a daily file.
const (
	sectionActive   = "## ACTIVE"
	sectionDone     = "## DONE"
	sectionArchived = "## ARCHIVED"
)

// doneLogTimeLayout is the fallback timestamp format found in legacy
// done-log history lines.
const doneLogTimeLayout = "2006-01-02 15:04:05"

// WarnFunc receives non-fatal parse problems. The line number is 1-based.
type WarnFunc func(line int, err error)

// Serialize renders a day image into the daily file format. The date goes
// into the top-level header; now caps analytics spans for items missing a
// completion timestamp.
func Serialize(day *domain.DayFile, date string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", date)

	b.WriteString(sectionActive + "\n\n")
	for _, it := range day.Active {
		if it.Status.IsActive() {
			serializeItem(&b, it, 0, false, now)
			b.WriteByte('\n')
		}
	}

	if len(day.Done) > 0 {
		b.WriteString(sectionDone + "\n\n")
		for _, it := range day.Done {
			serializeItem(&b, it, 0, true, now)
			b.WriteByte('\n')
		}
	}

	if len(day.Archived) > 0 {
		b.WriteString(sectionArchived + "\n\n")
		for _, it := range day.Archived {
			serializeItem(&b, it, 0, false, now)
			b.WriteByte('\n')
		}
	}

	return b.String()
}

func serializeItem(b *strings.Builder, it *domain.Item, depth int, analytics bool, now time.Time) {
	indent := strings.Repeat("    ", depth)

	fmt.Fprintf(b, "%s- [%s] %s\n", indent, it.Status.Tag(), it.Title)
	fmt.Fprintf(b, "%s  est: %.2fh\n", indent, it.Track.EstimateHours())
	fmt.Fprintf(b, "%s  elapsed: %.2fh\n", indent, it.Track.ElapsedHours())

	if it.CompletedAt != nil {
		fmt.Fprintf(b, "%s  completed: %s\n", indent, it.CompletedAt.Format(time.RFC3339))
	}

	if len(it.Tags) > 0 {
		fmt.Fprintf(b, "%s  tags: %s\n", indent, strings.Join(it.Tags, ", "))
	}

	if strings.TrimSpace(it.Notes) != "" {
		fmt.Fprintf(b, "%s  notes: |\n", indent)
		for _, line := range strings.Split(it.Notes, "\n") {
			fmt.Fprintf(b, "%s    %s\n", indent, line)
		}
	}

	if analytics && it.Status == domain.StatusDone {
		fmt.Fprintf(b, "%s  Analytics:\n", indent)
		if calendar, ok := it.CalendarTime(); ok {
			fmt.Fprintf(b, "%s    Calendar Time: %.2fh\n", indent, minutesAsHours(calendar))
		}
		fmt.Fprintf(b, "%s    Active Time: %.2fh\n", indent, minutesAsHours(it.RunningTime(now)))
		fmt.Fprintf(b, "%s    Interruptions: %d\n", indent, it.InterruptionCount())
		fmt.Fprintf(b, "%s    Sessions: %d\n", indent, it.SessionCount())
	}

	fmt.Fprintf(b, "%s  created: %s\n", indent, it.CreatedAt.Format(time.RFC3339))

	if len(it.History) > 0 {
		fmt.Fprintf(b, "%s  history:\n", indent)
		for _, ev := range it.History {
			var transition string
			if ev.From != nil {
				transition = fmt.Sprintf("%s -> %s", ev.From.Tag(), ev.To.Tag())
			} else {
				transition = ev.To.Tag()
			}
			fmt.Fprintf(b, "%s    - %s: %s\n", indent, ev.Timestamp.Format(time.RFC3339), transition)
		}
	}

	if len(it.Subtasks) > 0 {
		fmt.Fprintf(b, "%s  subtasks:\n", indent)
		for _, sub := range it.Subtasks {
			if analytics || sub.Status.IsActive() || sub.Status == domain.StatusDone {
				serializeItem(b, sub, depth+1, analytics, now)
			}
		}
	}
}

// minutesAsHours converts a duration to fractional hours at whole-minute
// resolution, matching the precision of the written format.
func minutesAsHours(d time.Duration) float64 {
	return float64(int64(d.Minutes())) / 60.0
}

// Parse reads a daily file into its three sections. Records that fail to
// parse are reported through warn and skipped; the rest of the file is
// still loaded. Content before any section header lands in ACTIVE.
func Parse(content string, now time.Time, warn WarnFunc) *domain.DayFile {
	if warn == nil {
		warn = func(int, error) {}
	}

	lines := strings.Split(content, "\n")
	day := &domain.DayFile{}
	target := &day.Active
	i := 0

	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		switch line {
		case sectionActive:
			target = &day.Active
			i++
			continue
		case sectionDone:
			target = &day.Done
			i++
			continue
		case sectionArchived:
			target = &day.Archived
			i++
			continue
		}

		if line == "" || strings.HasPrefix(line, "# ") {
			i++
			continue
		}

		if strings.HasPrefix(line, "- [") {
			it, err := parseItem(lines, &i, now)
			if err != nil {
				warn(i+1, err)
				i++
				continue
			}
			*target = append(*target, it)
			continue
		}

		i++
	}

	return day
}

// ParseMarkdown reads the legacy single-section format of today.md and
// tomorrow.md.
func ParseMarkdown(content string, schedule domain.ScheduleDay, now time.Time, warn WarnFunc) []*domain.Item {
	if warn == nil {
		warn = func(int, error) {}
	}

	lines := strings.Split(content, "\n")
	var items []*domain.Item
	i := 0

	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if line == "" || strings.HasPrefix(line, "#") {
			i++
			continue
		}

		if strings.HasPrefix(line, "- [") {
			it, err := parseItem(lines, &i, now)
			if err != nil {
				warn(i+1, err)
				i++
				continue
			}
			it.Schedule = schedule
			for _, sub := range it.Subtasks {
				sub.Schedule = schedule
			}
			items = append(items, it)
			continue
		}

		i++
	}

	return items
}

// parseItem reads one item record starting at *i and advances *i past it.
func parseItem(lines []string, i *int, now time.Time) (*domain.Item, error) {
	status, title, err := parseTaskLine(strings.TrimSpace(lines[*i]))
	if err != nil {
		return nil, err
	}
	*i++

	var (
		estimate    time.Duration
		elapsed     time.Duration
		notes       string
		tags        []string
		createdAt   *time.Time
		completedAt *time.Time
		history     []domain.StateEvent
		subtasks    []*domain.Item
	)

	for *i < len(lines) {
		raw := lines[*i]
		trimmed := strings.TrimSpace(raw)

		if trimmed == sectionActive || trimmed == sectionDone || trimmed == sectionArchived {
			break
		}
		// next item record (top-level or sibling subtask)
		if strings.HasPrefix(trimmed, "- [") {
			break
		}

		switch {
		case strings.HasPrefix(trimmed, "est:"):
			estimate, err = parseHours(strings.TrimSpace(strings.TrimPrefix(trimmed, "est:")))
			if err != nil {
				return nil, err
			}
			*i++
		case strings.HasPrefix(trimmed, "elapsed:"):
			elapsed, err = parseHours(strings.TrimSpace(strings.TrimPrefix(trimmed, "elapsed:")))
			if err != nil {
				return nil, err
			}
			*i++
		case strings.HasPrefix(trimmed, "notes:"):
			*i++
			notes = parseNotes(lines, i)
		case strings.HasPrefix(trimmed, "tags:"):
			tags = parseTags(strings.TrimSpace(strings.TrimPrefix(trimmed, "tags:")))
			*i++
		case strings.HasPrefix(trimmed, "created:"):
			// malformed timestamps fall back to now rather than failing the record
			if ts, perr := time.Parse(time.RFC3339, strings.TrimSpace(strings.TrimPrefix(trimmed, "created:"))); perr == nil {
				local := ts.Local()
				createdAt = &local
			}
			*i++
		case strings.HasPrefix(trimmed, "completed:"):
			if ts, perr := time.Parse(time.RFC3339, strings.TrimSpace(strings.TrimPrefix(trimmed, "completed:"))); perr == nil {
				local := ts.Local()
				completedAt = &local
			}
			*i++
		case strings.HasPrefix(trimmed, "history:"):
			*i++
			history = parseHistory(lines, i)
		case strings.HasPrefix(trimmed, "subtasks:"):
			*i++
			subtasks = parseSubtasks(lines, i, now)
		default:
			// empty, Analytics block, or unknown field
			*i++
		}
	}

	it := domain.NewItem(title, estimate, domain.ScheduleToday, now)
	it.Status = status
	it.Track.Elapsed = elapsed
	it.Notes = notes
	it.Tags = tags
	if createdAt != nil {
		it.CreatedAt = *createdAt
	}
	it.CompletedAt = completedAt
	if len(history) > 0 {
		it.History = history
	}
	it.Subtasks = subtasks
	it.RegenerateIDs()

	return it, nil
}

// parseTaskLine splits "- [STATUS] Title" into its parts.
func parseTaskLine(line string) (domain.Status, string, error) {
	line = strings.TrimSpace(strings.TrimPrefix(line, "-"))

	end := strings.IndexByte(line, ']')
	if end < 0 || !strings.HasPrefix(line, "[") {
		return "", "", fmt.Errorf("%w: missing status tag in %q", domain.ErrInvalidStatusTag, line)
	}
	tag := line[1:end]
	status, ok := domain.ParseStatusTag(tag)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", domain.ErrInvalidStatusTag, tag)
	}

	title := strings.TrimSpace(line[end+1:])
	if title == "" {
		return "", "", domain.ErrEmptyTitle
	}

	return status, title, nil
}

// parseHours parses a duration like "1.50h" into a whole-second duration.
func parseHours(s string) (time.Duration, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "h")
	hours, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return domain.HoursToDuration(hours), nil
}

var fieldPrefixes = []string{
	"est:", "elapsed:", "notes:", "tags:", "created:",
	"completed:", "history:", "subtasks:", "- [",
}

func startsField(trimmed string, exclude string) bool {
	for _, p := range fieldPrefixes {
		if p == exclude {
			continue
		}
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

// parseNotes collects the indented block after "notes: |".
func parseNotes(lines []string, i *int) string {
	var notes []string

	for *i < len(lines) {
		raw := lines[*i]
		trimmed := strings.TrimSpace(raw)

		if startsField(trimmed, "notes:") {
			break
		}

		if strings.HasPrefix(raw, "    ") || trimmed == "" {
			notes = append(notes, strings.TrimPrefix(raw, "    "))
			*i++
		} else {
			break
		}
	}

	for len(notes) > 0 && strings.TrimSpace(notes[0]) == "" {
		notes = notes[1:]
	}
	for len(notes) > 0 && strings.TrimSpace(notes[len(notes)-1]) == "" {
		notes = notes[:len(notes)-1]
	}

	return strings.Join(notes, "\n")
}

func parseTags(s string) []string {
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// parseHistory reads "- <timestamp>: <TAG>" and "- <timestamp>: FROM -> TO"
// entries after "history:". Malformed entries are dropped silently; the
// ledger is advisory and a bad line must not lose the item.
func parseHistory(lines []string, i *int) []domain.StateEvent {
	var history []domain.StateEvent

	for *i < len(lines) {
		raw := lines[*i]
		trimmed := strings.TrimSpace(raw)

		if startsField(trimmed, "history:") {
			break
		}

		// Entries sit one level deeper than the owning item, so the indent
		// varies with nesting depth. Match the trimmed form; subtask records
		// ("- [") already broke out above.
		if strings.HasPrefix(trimmed, "- ") {
			entry := strings.TrimPrefix(trimmed, "- ")
			if ts, rest, ok := splitHistoryEntry(entry); ok {
				if from, to, isTransition := splitTransition(rest); isTransition {
					history = append(history, domain.StateEvent{Timestamp: ts, From: &from, To: to})
				} else if to, tok := domain.ParseStatusTag(rest); tok {
					history = append(history, domain.StateEvent{Timestamp: ts, To: to})
				}
			}
			*i++
		} else if trimmed == "" {
			*i++
		} else {
			break
		}
	}

	return history
}

// splitHistoryEntry separates "timestamp: rest" and parses the timestamp,
// trying RFC3339 first and the plain done-log layout second.
func splitHistoryEntry(entry string) (time.Time, string, bool) {
	tsStr, rest, found := strings.Cut(entry, ": ")
	if !found {
		return time.Time{}, "", false
	}
	if ts, err := time.Parse(time.RFC3339, tsStr); err == nil {
		return ts.Local(), rest, true
	}
	if ts, err := time.ParseInLocation(doneLogTimeLayout, tsStr, time.Local); err == nil {
		return ts, rest, true
	}
	return time.Time{}, "", false
}

func splitTransition(s string) (from, to domain.Status, ok bool) {
	fromStr, toStr, found := strings.Cut(s, " -> ")
	if !found {
		return "", "", false
	}
	from, fok := domain.ParseStatusTag(fromStr)
	to, tok := domain.ParseStatusTag(toStr)
	if !fok || !tok {
		return "", "", false
	}
	return from, to, true
}

// parseSubtasks reads the indented item records after "subtasks:".
// A failed subtask record is skipped without losing its siblings.
func parseSubtasks(lines []string, i *int, now time.Time) []*domain.Item {
	var subtasks []*domain.Item

	for *i < len(lines) {
		raw := lines[*i]
		trimmed := strings.TrimSpace(raw)

		if strings.HasPrefix(raw, "    - [") {
			sub, err := parseItem(lines, i, now)
			if err != nil {
				*i++
				continue
			}
			subtasks = append(subtasks, sub)
		} else if trimmed == "" {
			*i++
		} else if strings.HasPrefix(trimmed, "- [") {
			break
		} else if !strings.HasPrefix(raw, "    ") {
			break
		} else {
			*i++
		}
	}

	return subtasks
}
