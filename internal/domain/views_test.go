package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T) []*Item {
	t.Helper()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	a := NewItem("alpha", time.Hour, ScheduleToday, now)
	a.AddSubtask(NewItem("alpha-1", 30*time.Minute, ScheduleToday, now))
	a.AddSubtask(NewItem("alpha-2", 30*time.Minute, ScheduleToday, now))
	b := NewItem("beta", time.Hour, ScheduleToday, now)
	return []*Item{a, b}
}

func TestFlattenItems(t *testing.T) {
	items := buildTree(t)

	rows := FlattenItems(items)
	require.Len(t, rows, 4)

	assert.Equal(t, "alpha", rows[0].Item.Title)
	assert.Equal(t, 0, rows[0].Depth)
	assert.Nil(t, rows[0].SubtaskIndex)

	assert.Equal(t, "alpha-1", rows[1].Item.Title)
	assert.Equal(t, 1, rows[1].Depth)
	assert.False(t, rows[1].IsLast)
	require.NotNil(t, rows[1].SubtaskIndex)
	assert.Equal(t, 0, *rows[1].SubtaskIndex)

	assert.True(t, rows[2].IsLast)

	assert.Equal(t, "beta", rows[3].Item.Title)
	assert.Equal(t, 1, rows[3].TaskIndex)
	assert.Equal(t, 3, rows[3].Index)
}

func TestFlattenItems_Collapsed(t *testing.T) {
	items := buildTree(t)
	items[0].Expanded = false

	rows := FlattenItems(items)
	require.Len(t, rows, 2)
	assert.Equal(t, "alpha", rows[0].Item.Title)
	assert.Equal(t, "beta", rows[1].Item.Title)
}

func TestComputeTotals(t *testing.T) {
	items := buildTree(t)
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	items[0].Subtasks[0].MarkDone(now)
	// a done parent with subtasks contributes nothing itself
	items[0].MarkDone(now)

	totals := ComputeTotals(items)
	assert.Equal(t, 3, totals.Total)
	assert.Equal(t, 1, totals.Completed)
}

func TestComputeTotals_Durations(t *testing.T) {
	items := buildTree(t)
	// the parent's own durations must not be double counted over its leaves
	items[0].Track.Estimate = 4 * time.Hour
	items[0].Track.Elapsed = 3 * time.Hour
	items[0].Subtasks[0].Track.Elapsed = 20 * time.Minute
	items[0].Subtasks[1].Track.Elapsed = 10 * time.Minute
	items[1].Track.Elapsed = 15 * time.Minute

	totals := ComputeTotals(items)
	assert.Equal(t, 2*time.Hour, totals.Estimate, "two 30m subtasks plus the 1h leaf")
	assert.Equal(t, 45*time.Minute, totals.Elapsed)
}

func TestDayTotals(t *testing.T) {
	items := buildTree(t)
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	finished := NewItem("gamma", time.Hour, ScheduleToday, now)
	finished.MarkDone(now)

	day := &DayFile{Active: items, Done: []*Item{finished}}

	totals := DayTotals(day)
	assert.Equal(t, 4, totals.Total)
	assert.Equal(t, 1, totals.Completed)
	assert.Equal(t, 3*time.Hour, totals.Estimate, "active leaves plus the finished item")
}

func TestFindByID(t *testing.T) {
	items := buildTree(t)

	got, parent, ok := FindByID(items, items[0].Subtasks[1].ID.String())
	require.True(t, ok)
	assert.Equal(t, "alpha-2", got.Title)
	require.NotNil(t, parent)
	assert.Equal(t, "alpha", parent.Title)

	got, parent, ok = FindByID(items, items[1].ID.String())
	require.True(t, ok)
	assert.Equal(t, "beta", got.Title)
	assert.Nil(t, parent)

	_, _, ok = FindByID(items, "nonexistent")
	assert.False(t, ok)
}

func TestFindByTitle(t *testing.T) {
	items := buildTree(t)

	got, ok := FindByTitle(items, "beta")
	require.True(t, ok)
	assert.Equal(t, "beta", got.Title)

	// subtask titles are not matched
	_, ok = FindByTitle(items, "alpha-1")
	assert.False(t, ok)
}
