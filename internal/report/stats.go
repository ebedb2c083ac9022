// Package report computes daily statistics and renders them as markdown.
package report

import (
	"time"

	"github.com/quvia/centre/internal/domain"
)

// GlobalStats summarizes a whole day across all sections.
// Fields are ordered to minimize memory padding.
type GlobalStats struct {
	TotalElapsed       time.Duration
	TotalEstimate      time.Duration
	RunningTime        time.Duration
	PausedTime         time.Duration
	IdleTime           time.Duration
	AvgSession         time.Duration
	LongestSession     time.Duration
	TotalTasks         int
	ActiveCount        int
	DoneCount          int
	ArchivedCount      int
	TotalSessions      int
	TotalInterruptions int
}

// EstimationStats measures estimate accuracy over completed items.
type EstimationStats struct {
	OverEstimateTime   time.Duration
	UnderEstimateTime  time.Duration
	OverEstimateCount  int
	UnderEstimateCount int
	PerfectCount       int
	AvgAccuracyPercent float64
}

// TaskTime names an item together with its elapsed time.
type TaskTime struct {
	Title   string
	Elapsed time.Duration
}

// CompletionStats summarizes the completed items of a day.
type CompletionStats struct {
	FastestTask       *TaskTime
	LongestTask       *TaskTime
	AvgCompletionTime time.Duration
	CompletedCount    int
}

// TagStats aggregates items sharing one tag.
type TagStats struct {
	Elapsed         time.Duration
	Estimate        time.Duration
	AvgSession      time.Duration
	AccuracyPercent float64
	TaskCount       int
	DoneCount       int
	ActiveCount     int
}

func allItems(day *domain.DayFile) []*domain.Item {
	all := make([]*domain.Item, 0, len(day.Active)+len(day.Done)+len(day.Archived))
	all = append(all, day.Active...)
	all = append(all, day.Done...)
	all = append(all, day.Archived...)
	return all
}

// CalculateGlobalStats aggregates timing over every item of the day.
func CalculateGlobalStats(day *domain.DayFile, now time.Time) GlobalStats {
	stats := GlobalStats{
		ActiveCount:   len(day.Active),
		DoneCount:     len(day.Done),
		ArchivedCount: len(day.Archived),
	}

	var sessionAverages []time.Duration
	for _, it := range allItems(day) {
		stats.TotalTasks++
		stats.TotalElapsed += it.Track.Elapsed
		stats.TotalEstimate += it.Track.Estimate

		times := it.TimeInEachState(now)
		stats.RunningTime += times.Running
		stats.PausedTime += times.Paused
		stats.IdleTime += times.Idle

		sessions := it.SessionCount()
		stats.TotalSessions += sessions
		stats.TotalInterruptions += it.InterruptionCount()

		if sessions > 0 {
			sessionAverages = append(sessionAverages, times.Running/time.Duration(sessions))
		}
	}

	if len(sessionAverages) > 0 {
		var sum time.Duration
		for _, d := range sessionAverages {
			sum += d
			if d > stats.LongestSession {
				stats.LongestSession = d
			}
		}
		stats.AvgSession = sum / time.Duration(len(sessionAverages))
	}

	return stats
}

// accuracyPercent maps an elapsed/estimate ratio onto 0-100 where 100 means
// a perfect estimate. Overruns are penalized by inverting the ratio.
func accuracyPercent(elapsed, estimate time.Duration) float64 {
	if estimate <= 0 {
		return 0
	}
	ratio := elapsed.Seconds() / estimate.Seconds()
	if ratio > 1.0 {
		return 100.0 / ratio
	}
	return ratio * 100.0
}

// CalculateEstimationStats measures estimate accuracy over items.
func CalculateEstimationStats(items []*domain.Item) EstimationStats {
	var stats EstimationStats
	var accuracySum float64
	accuracyCount := 0

	for _, it := range items {
		elapsed, estimate := it.Track.Elapsed, it.Track.Estimate
		switch {
		case elapsed > estimate:
			stats.OverEstimateCount++
			stats.OverEstimateTime += elapsed - estimate
		case elapsed < estimate:
			stats.UnderEstimateCount++
			stats.UnderEstimateTime += estimate - elapsed
		default:
			stats.PerfectCount++
		}

		if estimate > 0 {
			accuracySum += accuracyPercent(elapsed, estimate)
			accuracyCount++
		}
	}

	if accuracyCount > 0 {
		stats.AvgAccuracyPercent = accuracySum / float64(accuracyCount)
	}

	return stats
}

// CalculateCompletionStats summarizes the day's completed items.
func CalculateCompletionStats(done []*domain.Item) CompletionStats {
	stats := CompletionStats{CompletedCount: len(done)}

	var total time.Duration
	for _, it := range done {
		elapsed := it.Track.Elapsed
		total += elapsed

		if stats.FastestTask == nil || elapsed < stats.FastestTask.Elapsed {
			stats.FastestTask = &TaskTime{Title: it.Title, Elapsed: elapsed}
		}
		if stats.LongestTask == nil || elapsed > stats.LongestTask.Elapsed {
			stats.LongestTask = &TaskTime{Title: it.Title, Elapsed: elapsed}
		}
	}

	if len(done) > 0 {
		stats.AvgCompletionTime = total / time.Duration(len(done))
	}

	return stats
}

// CalculateTagStats aggregates items per tag across all sections.
func CalculateTagStats(day *domain.DayFile, now time.Time) map[string]*TagStats {
	tagMap := make(map[string]*TagStats)

	doneSet := make(map[*domain.Item]bool, len(day.Done))
	for _, it := range day.Done {
		doneSet[it] = true
	}
	activeSet := make(map[*domain.Item]bool, len(day.Active))
	for _, it := range day.Active {
		activeSet[it] = true
	}

	all := allItems(day)
	for _, it := range all {
		for _, tag := range it.Tags {
			entry := tagMap[tag]
			if entry == nil {
				entry = &TagStats{}
				tagMap[tag] = entry
			}
			entry.TaskCount++
			entry.Elapsed += it.Track.Elapsed
			entry.Estimate += it.Track.Estimate
			if doneSet[it] {
				entry.DoneCount++
			} else if activeSet[it] {
				entry.ActiveCount++
			}
		}
	}

	for tag, stats := range tagMap {
		stats.AccuracyPercent = accuracyPercent(stats.Elapsed, stats.Estimate)

		totalSessions := 0
		var totalRunning time.Duration
		for _, it := range all {
			if !hasTag(it, tag) {
				continue
			}
			totalSessions += it.SessionCount()
			totalRunning += it.TimeInEachState(now).Running
		}
		if totalSessions > 0 {
			stats.AvgSession = totalRunning / time.Duration(totalSessions)
		}
	}

	return tagMap
}

func hasTag(it *domain.Item, tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
