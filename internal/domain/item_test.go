package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestNewItem(t *testing.T) {
	it := NewItem("Write report", 2*time.Hour, ScheduleToday, baseTime)

	assert.Equal(t, "Write report", it.Title)
	assert.Equal(t, StatusIdle, it.Status)
	assert.Equal(t, 2*time.Hour, it.Track.Estimate)
	assert.Equal(t, baseTime, it.CreatedAt)
	assert.True(t, it.Expanded)
	require.Len(t, it.History, 1)
	assert.Nil(t, it.History[0].From)
	assert.Equal(t, StatusIdle, it.History[0].To)
}

func TestItem_StartPause(t *testing.T) {
	it := NewItem("task", time.Hour, ScheduleToday, baseTime)

	it.Start(baseTime)
	assert.Equal(t, StatusRunning, it.Status)
	require.NotNil(t, it.Track.RunningSince)

	// 30 minutes of work, then pause
	it.Pause(baseTime.Add(30 * time.Minute))
	assert.Equal(t, StatusPaused, it.Status)
	assert.Equal(t, 30*time.Minute, it.Track.Elapsed)
	assert.Nil(t, it.Track.RunningSince)
	assert.False(t, it.IsOverEstimate())

	// starting again does not double-count the paused span
	it.Start(baseTime.Add(45 * time.Minute))
	it.Pause(baseTime.Add(60 * time.Minute))
	assert.Equal(t, 45*time.Minute, it.Track.Elapsed)
}

func TestItem_StartIsIdempotent(t *testing.T) {
	it := NewItem("task", time.Hour, ScheduleToday, baseTime)

	it.Start(baseTime)
	it.Start(baseTime.Add(10 * time.Minute))

	assert.Len(t, it.History, 2)
	assert.Equal(t, baseTime, *it.Track.RunningSince)
}

func TestItem_PauseWhenNotRunning(t *testing.T) {
	it := NewItem("task", time.Hour, ScheduleToday, baseTime)

	it.Pause(baseTime.Add(time.Minute))

	assert.Equal(t, StatusIdle, it.Status)
	assert.Len(t, it.History, 1)
	assert.Zero(t, it.Track.Elapsed)
}

func TestItem_ToggleRunPause(t *testing.T) {
	it := NewItem("task", time.Hour, ScheduleToday, baseTime)

	it.ToggleRunPause(baseTime)
	assert.Equal(t, StatusRunning, it.Status)

	it.ToggleRunPause(baseTime.Add(10 * time.Minute))
	assert.Equal(t, StatusPaused, it.Status)
	assert.Equal(t, 10*time.Minute, it.Track.Elapsed)

	it.ToggleRunPause(baseTime.Add(20 * time.Minute))
	assert.Equal(t, StatusRunning, it.Status)
}

func TestItem_MarkDone(t *testing.T) {
	it := NewItem("task", time.Hour, ScheduleToday, baseTime)
	it.Start(baseTime)

	done := baseTime.Add(25 * time.Minute)
	it.MarkDone(done)

	assert.Equal(t, StatusDone, it.Status)
	assert.Equal(t, 25*time.Minute, it.Track.Elapsed)
	require.NotNil(t, it.CompletedAt)
	assert.Equal(t, done, *it.CompletedAt)
	last := it.History[len(it.History)-1]
	assert.Equal(t, StatusDone, last.To)
}

func TestItem_Postpone(t *testing.T) {
	tests := []struct {
		name        string
		status      Status
		wantElapsed time.Duration
		wantEvents  int
	}{
		{name: "running item pauses first", status: StatusRunning, wantElapsed: 15 * time.Minute, wantEvents: 3},
		{name: "paused item goes idle", status: StatusPaused, wantElapsed: 15 * time.Minute, wantEvents: 4},
		{name: "idle item unchanged", status: StatusIdle, wantElapsed: 15 * time.Minute, wantEvents: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := NewItem("task", time.Hour, ScheduleToday, baseTime)
			it.Start(baseTime)
			switch tt.status {
			case StatusPaused:
				it.Pause(baseTime.Add(15 * time.Minute))
			case StatusIdle:
				it.Pause(baseTime.Add(15 * time.Minute))
				it.SetIdle(baseTime.Add(16 * time.Minute))
			}

			it.Postpone(baseTime.Add(15 * time.Minute))

			assert.Equal(t, StatusIdle, it.Status)
			assert.Equal(t, tt.wantElapsed, it.Track.Elapsed)
			assert.Len(t, it.History, tt.wantEvents)
		})
	}
}

func TestItem_Tick(t *testing.T) {
	it := NewItem("parent", time.Hour, ScheduleToday, baseTime)
	sub := NewItem("child", 30*time.Minute, ScheduleToday, baseTime)
	it.AddSubtask(sub)
	it.Start(baseTime)
	sub.Start(baseTime)

	now := baseTime.Add(5 * time.Minute)
	it.Tick(now)

	assert.Equal(t, 5*time.Minute, it.Track.Elapsed)
	assert.Equal(t, 5*time.Minute, sub.Track.Elapsed)
	// the marker is re-baselined so a later pause adds only the new span
	assert.Equal(t, now, *it.Track.RunningSince)

	it.Pause(now.Add(2 * time.Minute))
	assert.Equal(t, 7*time.Minute, it.Track.Elapsed)
}

func TestItem_EstimateAdjustment(t *testing.T) {
	it := NewItem("task", 30*time.Minute, ScheduleToday, baseTime)

	it.IncreaseEstimate(15 * time.Minute)
	assert.Equal(t, 45*time.Minute, it.Track.Estimate)

	it.DecreaseEstimate(time.Hour)
	assert.Equal(t, time.Duration(0), it.Track.Estimate)
}

func TestItem_IsOverEstimate(t *testing.T) {
	it := NewItem("task", 30*time.Minute, ScheduleToday, baseTime)
	it.Start(baseTime)
	it.Tick(baseTime.Add(30 * time.Minute))
	assert.True(t, it.IsOverEstimate())

	// a paused item never reports a breach even with elapsed past estimate
	it.Pause(baseTime.Add(31 * time.Minute))
	assert.False(t, it.IsOverEstimate())
}

func TestTimeTracking_ProgressRatio(t *testing.T) {
	zero := NewTimeTracking(0)
	assert.Equal(t, 1.0, zero.ProgressRatio())

	half := TimeTracking{Estimate: time.Hour, Elapsed: 30 * time.Minute}
	assert.InDelta(t, 0.5, half.ProgressRatio(), 1e-9)
}

func TestItem_CoerceRunningToPaused(t *testing.T) {
	it := NewItem("parent", time.Hour, ScheduleToday, baseTime)
	sub := NewItem("child", time.Hour, ScheduleToday, baseTime)
	it.AddSubtask(sub)
	it.Start(baseTime)
	sub.Start(baseTime)

	it.CoerceRunningToPaused(baseTime.Add(30 * time.Minute))

	assert.Equal(t, StatusPaused, it.Status)
	assert.Equal(t, StatusPaused, sub.Status)
	assert.Nil(t, it.Track.RunningSince)

	// The coercion closes the open running span in the ledger.
	last := it.History[len(it.History)-1]
	assert.Equal(t, StatusPaused, last.To)
	assert.Equal(t, 30*time.Minute, it.TimeInEachState(baseTime.Add(2*time.Hour)).Running)
}

func TestItem_TimeInEachState(t *testing.T) {
	it := NewItem("task", time.Hour, ScheduleToday, baseTime)
	it.Start(baseTime.Add(10 * time.Minute))
	it.Pause(baseTime.Add(40 * time.Minute))
	it.Start(baseTime.Add(50 * time.Minute))

	now := baseTime.Add(70 * time.Minute)
	times := it.TimeInEachState(now)

	assert.Equal(t, 10*time.Minute, times.Idle)
	assert.Equal(t, 50*time.Minute, times.Running)
	assert.Equal(t, 10*time.Minute, times.Paused)
	// buckets partition the whole span from creation to now
	total := times.Idle + times.Running + times.Paused
	assert.Equal(t, now.Sub(it.CreatedAt), total)
}

func TestItem_TimeInEachState_Completed(t *testing.T) {
	it := NewItem("task", time.Hour, ScheduleToday, baseTime)
	it.Start(baseTime)
	it.MarkDone(baseTime.Add(20 * time.Minute))

	// the clock keeps moving but a completed item's spans are frozen
	times := it.TimeInEachState(baseTime.Add(3 * time.Hour))
	assert.Equal(t, 20*time.Minute, times.Running)
	assert.Zero(t, times.Paused)
}

func TestItem_SyncElapsedFromHistory(t *testing.T) {
	it := NewItem("task", time.Hour, ScheduleToday, baseTime)
	it.Start(baseTime)
	it.Pause(baseTime.Add(30 * time.Minute))
	// simulate drift from an unclean shutdown
	it.Track.Elapsed = 5 * time.Minute

	it.SyncElapsedFromHistory(baseTime.Add(time.Hour))

	assert.Equal(t, 30*time.Minute, it.Track.Elapsed)

	// resync is idempotent
	it.SyncElapsedFromHistory(baseTime.Add(2 * time.Hour))
	assert.Equal(t, 30*time.Minute, it.Track.Elapsed)
}

func TestItem_SyncElapsedFromHistory_Running(t *testing.T) {
	it := NewItem("task", time.Hour, ScheduleToday, baseTime)
	it.Start(baseTime)
	it.Track.RunningSince = nil // markers are not persisted

	now := baseTime.Add(45 * time.Minute)
	it.SyncElapsedFromHistory(now)

	assert.Equal(t, 45*time.Minute, it.Track.Elapsed)
	require.NotNil(t, it.Track.RunningSince)
	assert.Equal(t, now, *it.Track.RunningSince)
}

func TestItem_Counters(t *testing.T) {
	it := NewItem("task", time.Hour, ScheduleToday, baseTime)
	it.Start(baseTime)
	it.Pause(baseTime.Add(10 * time.Minute))
	it.Start(baseTime.Add(20 * time.Minute))
	it.Pause(baseTime.Add(30 * time.Minute))
	it.Start(baseTime.Add(40 * time.Minute))
	it.MarkDone(baseTime.Add(50 * time.Minute))

	assert.Equal(t, 2, it.InterruptionCount())
	assert.Equal(t, 3, it.SessionCount())

	cal, ok := it.CalendarTime()
	require.True(t, ok)
	assert.Equal(t, 50*time.Minute, cal)
}

func TestItem_CalendarTime_Incomplete(t *testing.T) {
	it := NewItem("task", time.Hour, ScheduleToday, baseTime)
	_, ok := it.CalendarTime()
	assert.False(t, ok)
}

func TestItem_AddSubtaskFlattensNesting(t *testing.T) {
	parent := NewItem("parent", time.Hour, ScheduleToday, baseTime)
	child := NewItem("child", time.Hour, ScheduleToday, baseTime)
	grandchild := NewItem("grandchild", time.Hour, ScheduleToday, baseTime)
	child.Subtasks = []*Item{grandchild}

	parent.AddSubtask(child)

	require.Len(t, parent.Subtasks, 1)
	assert.Empty(t, parent.Subtasks[0].Subtasks)
}

func TestItem_Clone(t *testing.T) {
	it := NewItem("task", time.Hour, ScheduleToday, baseTime)
	it.Tags = []string{"deep", "work"}
	sub := NewItem("child", 30*time.Minute, ScheduleToday, baseTime)
	it.AddSubtask(sub)
	it.Start(baseTime)

	c := it.Clone()

	require.Len(t, c.Subtasks, 1)
	assert.Equal(t, it.Title, c.Title)
	assert.Equal(t, it.History, c.History)

	// mutating the clone leaves the original untouched
	c.Tags[0] = "changed"
	c.Subtasks[0].Title = "changed"
	c.MarkDone(baseTime.Add(time.Minute))
	assert.Equal(t, "deep", it.Tags[0])
	assert.Equal(t, "child", it.Subtasks[0].Title)
	assert.Equal(t, StatusRunning, it.Status)
	assert.Nil(t, it.CompletedAt)
}

func TestItem_RegenerateIDs(t *testing.T) {
	it := NewItem("task", time.Hour, ScheduleToday, baseTime)
	sub := NewItem("child", time.Hour, ScheduleToday, baseTime)
	it.AddSubtask(sub)
	oldID := it.ID
	oldSubID := sub.ID

	it.RegenerateIDs()

	assert.NotEqual(t, oldID, it.ID)
	assert.NotEqual(t, oldSubID, it.Subtasks[0].ID)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "hours and minutes", d: 90 * time.Minute, want: "1h 30m"},
		{name: "whole hours", d: 2 * time.Hour, want: "2h"},
		{name: "minutes only", d: 45 * time.Minute, want: "45m"},
		{name: "zero", d: 0, want: "0m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.d))
		})
	}
}
