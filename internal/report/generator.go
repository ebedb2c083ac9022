package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/quvia/centre/internal/domain"
	"github.com/quvia/centre/internal/infra/dailyfile"
)

// Ensure Generator implements domain.ReportWriter.
var _ domain.ReportWriter = (*Generator)(nil)

// Generator renders daily reports from the persisted day and metadata.
type Generator struct {
	days  domain.DayStore
	meta  domain.MetaStore
	clock domain.Clock
	dir   string
}

// NewGenerator creates a report generator writing into dir.
func NewGenerator(dir string, days domain.DayStore, meta domain.MetaStore, clock domain.Clock) *Generator {
	return &Generator{dir: dir, days: days, meta: meta, clock: clock}
}

// Generate writes the report for the date and returns its path.
func (g *Generator) Generate(date string) (string, error) {
	day, err := g.days.Load(date)
	if err != nil {
		return "", fmt.Errorf("load day for report: %w", err)
	}

	meta, err := g.meta.Load()
	if err != nil {
		meta = domain.NewMeta()
	}

	content := Render(day, meta, date, g.clock.Now())

	path := domain.ReportFilePath(g.dir, date)
	if err := dailyfile.WriteAtomic(path, []byte(content)); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

func percent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

func ratioPercent(part, whole time.Duration) float64 {
	if whole <= 0 {
		return 0
	}
	return part.Seconds() / whole.Seconds() * 100.0
}

// Render produces the report markdown for one day.
func Render(day *domain.DayFile, meta *domain.Meta, date string, now time.Time) string {
	global := CalculateGlobalStats(day, now)
	estimation := CalculateEstimationStats(day.Done)
	completion := CalculateCompletionStats(day.Done)
	tagStats := CalculateTagStats(day, now)

	var b strings.Builder
	fmt.Fprintf(&b, "# Daily Report - %s\n\n", date)

	// Summary
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Total Tasks:** %d (Active: %d, Done: %d, Archived: %d)\n",
		global.TotalTasks, global.ActiveCount, global.DoneCount, global.ArchivedCount)
	fmt.Fprintf(&b, "- **Total Time:** %s / %s estimated (%s)\n",
		domain.FormatDuration(global.TotalElapsed),
		domain.FormatDuration(global.TotalEstimate),
		percent(ratioPercent(global.TotalElapsed, global.TotalEstimate)))
	fmt.Fprintf(&b, "- **Efficiency:** %s\n",
		percent(ratioPercent(global.RunningTime, global.TotalElapsed)))
	fmt.Fprintf(&b, "- **Completion Rate:** %d/%d tasks done\n\n",
		global.DoneCount, global.TotalTasks)

	renderModes(&b, meta)

	// Time & Productivity
	b.WriteString("## Time & Productivity\n\n")
	fmt.Fprintf(&b, "- **Running Time:** %s (%s)\n",
		domain.FormatDuration(global.RunningTime),
		percent(ratioPercent(global.RunningTime, global.TotalElapsed)))
	fmt.Fprintf(&b, "- **Paused Time:** %s (%s)\n",
		domain.FormatDuration(global.PausedTime),
		percent(ratioPercent(global.PausedTime, global.TotalElapsed)))
	fmt.Fprintf(&b, "- **Idle Time:** %s (%s)\n",
		domain.FormatDuration(global.IdleTime),
		percent(ratioPercent(global.IdleTime, global.TotalElapsed)))
	fmt.Fprintf(&b, "- **Average Session:** %s\n", domain.FormatDuration(global.AvgSession))
	fmt.Fprintf(&b, "- **Longest Session:** %s\n", domain.FormatDuration(global.LongestSession))
	fmt.Fprintf(&b, "- **Total Sessions:** %d\n", global.TotalSessions)
	fmt.Fprintf(&b, "- **Interruptions:** %d\n\n", global.TotalInterruptions)

	// Estimation Accuracy
	b.WriteString("## Estimation Accuracy\n\n")
	fmt.Fprintf(&b, "- **Tasks Over Estimate:** %d (%s of completed)\n",
		estimation.OverEstimateCount, percent(countPercent(estimation.OverEstimateCount, global.DoneCount)))
	fmt.Fprintf(&b, "- **Time Over Estimate:** %s total\n",
		domain.FormatDuration(estimation.OverEstimateTime))
	fmt.Fprintf(&b, "- **Tasks Under Estimate:** %d (%s of completed)\n",
		estimation.UnderEstimateCount, percent(countPercent(estimation.UnderEstimateCount, global.DoneCount)))
	fmt.Fprintf(&b, "- **Time Under Estimate:** %s saved\n",
		domain.FormatDuration(estimation.UnderEstimateTime))
	fmt.Fprintf(&b, "- **Perfect Estimates:** %d\n", estimation.PerfectCount)
	fmt.Fprintf(&b, "- **Average Accuracy:** %s\n\n", percent(estimation.AvgAccuracyPercent))

	// Task Completion
	b.WriteString("## Task Completion\n\n")
	fmt.Fprintf(&b, "- **Completed Today:** %d tasks\n", completion.CompletedCount)
	fmt.Fprintf(&b, "- **Average Time to Complete:** %s\n",
		domain.FormatDuration(completion.AvgCompletionTime))
	if completion.FastestTask != nil {
		fmt.Fprintf(&b, "- **Fastest Task:** %q (%s)\n",
			completion.FastestTask.Title, domain.FormatDuration(completion.FastestTask.Elapsed))
	}
	if completion.LongestTask != nil {
		fmt.Fprintf(&b, "- **Longest Task:** %q (%s)\n",
			completion.LongestTask.Title, domain.FormatDuration(completion.LongestTask.Elapsed))
	}
	b.WriteByte('\n')

	renderTags(&b, tagStats)
	renderBreakdown(&b, day)

	return b.String()
}

func countPercent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100.0
}

func renderModes(b *strings.Builder, meta *domain.Meta) {
	var total time.Duration
	for _, mode := range domain.AllModes() {
		total += meta.ModeTimes[mode]
	}
	if total < time.Minute {
		return
	}

	b.WriteString("## Context Modes\n\n")
	for _, mode := range domain.AllModes() {
		d := meta.ModeTimes[mode]
		if d < time.Minute {
			continue
		}
		fmt.Fprintf(b, "- %s **%s:** %s (%s)\n",
			mode.Symbol(), mode.Display(), domain.FormatDuration(d), percent(ratioPercent(d, total)))
	}
	b.WriteByte('\n')
}

func renderTags(b *strings.Builder, tagStats map[string]*TagStats) {
	if len(tagStats) == 0 {
		return
	}

	b.WriteString("## Tag Analysis\n\n")

	tags := make([]string, 0, len(tagStats))
	for tag := range tagStats {
		tags = append(tags, tag)
	}
	// most time spent first
	sort.Slice(tags, func(i, j int) bool {
		return tagStats[tags[i]].Elapsed > tagStats[tags[j]].Elapsed
	})

	for _, tag := range tags {
		stats := tagStats[tag]
		fmt.Fprintf(b, "### #%s\n\n", tag)
		fmt.Fprintf(b, "- **Tasks:** %d (Done: %d, Active: %d)\n",
			stats.TaskCount, stats.DoneCount, stats.ActiveCount)
		fmt.Fprintf(b, "- **Time:** %s / %s estimated\n",
			domain.FormatDuration(stats.Elapsed), domain.FormatDuration(stats.Estimate))
		fmt.Fprintf(b, "- **Estimation Accuracy:** %s\n", percent(stats.AccuracyPercent))
		fmt.Fprintf(b, "- **Average Session:** %s\n\n", domain.FormatDuration(stats.AvgSession))
	}
}

func statusIcon(s domain.Status) string {
	switch s {
	case domain.StatusRunning:
		return "▶"
	case domain.StatusPaused:
		return "⏸"
	default:
		return " "
	}
}

func tagsSuffix(it *domain.Item) string {
	if len(it.Tags) == 0 {
		return ""
	}
	return fmt.Sprintf(" (%s)", strings.Join(it.Tags, ", "))
}

func renderBreakdown(b *strings.Builder, day *domain.DayFile) {
	b.WriteString("## Tasks Breakdown\n\n")

	if len(day.Done) > 0 {
		b.WriteString("### Done Tasks\n\n")
		for _, it := range day.Done {
			fmt.Fprintf(b, "- [x] **%s**%s\n", it.Title, tagsSuffix(it))
			fmt.Fprintf(b, "  - Time: %s / %s estimated (%s)\n",
				domain.FormatDuration(it.Track.Elapsed),
				domain.FormatDuration(it.Track.Estimate),
				percent(ratioPercent(it.Track.Elapsed, it.Track.Estimate)))
			fmt.Fprintf(b, "  - Sessions: %d | Interruptions: %d\n",
				it.SessionCount(), it.InterruptionCount())
			if calendar, ok := it.CalendarTime(); ok {
				fmt.Fprintf(b, "  - Calendar Time: %s\n", domain.FormatDuration(calendar))
			}
			for _, sub := range it.Subtasks {
				fmt.Fprintf(b, "    - [x] %s (%s / %s)\n", sub.Title,
					domain.FormatDuration(sub.Track.Elapsed),
					domain.FormatDuration(sub.Track.Estimate))
			}
			b.WriteByte('\n')
		}
	}

	if len(day.Active) > 0 {
		b.WriteString("### Active Tasks\n\n")
		for _, it := range day.Active {
			fmt.Fprintf(b, "- [%s] **%s**%s\n", statusIcon(it.Status), it.Title, tagsSuffix(it))
			fmt.Fprintf(b, "  - Time: %s / %s estimated (%s)\n",
				domain.FormatDuration(it.Track.Elapsed),
				domain.FormatDuration(it.Track.Estimate),
				percent(ratioPercent(it.Track.Elapsed, it.Track.Estimate)))
			fmt.Fprintf(b, "  - Sessions: %d | Interruptions: %d\n",
				it.SessionCount(), it.InterruptionCount())
			for _, sub := range it.Subtasks {
				fmt.Fprintf(b, "    - [%s] %s (%s / %s)\n", statusIcon(sub.Status), sub.Title,
					domain.FormatDuration(sub.Track.Elapsed),
					domain.FormatDuration(sub.Track.Estimate))
			}
			b.WriteByte('\n')
		}
	}

	if len(day.Archived) > 0 {
		b.WriteString("### Archived Tasks\n\n")
		for _, it := range day.Archived {
			fmt.Fprintf(b, "- [~] **%s**%s\n", it.Title, tagsSuffix(it))
			fmt.Fprintf(b, "  - Time: %s / %s estimated\n\n",
				domain.FormatDuration(it.Track.Elapsed),
				domain.FormatDuration(it.Track.Estimate))
		}
	}
}
