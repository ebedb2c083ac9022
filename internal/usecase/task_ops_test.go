package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quvia/centre/internal/domain"
	"github.com/quvia/centre/internal/testutil"
)

// seedToday installs items as today's active list.
func (e *env) seedToday(items ...*domain.Item) {
	e.days.Days["2026-03-10"] = &domain.DayFile{Active: items}
}

func TestAddTask(t *testing.T) {
	e := newEnv()
	uc := NewAddTask(e.loadDay, e.days, e.clock, e.logger)

	out, err := uc.Execute(context.Background(), AddTaskInput{
		Title:         "write docs",
		Tags:          []string{"writing"},
		EstimateHours: 1.5,
	})
	require.NoError(t, err)

	assert.Equal(t, "write docs", out.Item.Title)
	assert.Equal(t, 90*time.Minute, out.Item.Track.Estimate)
	assert.Equal(t, domain.StatusIdle, out.Item.Status)

	saved := e.days.Days["2026-03-10"]
	require.Len(t, saved.Active, 1)
	assert.Same(t, out.Item, saved.Active[0])
}

func TestAddTask_EmptyTitle(t *testing.T) {
	e := newEnv()
	uc := NewAddTask(e.loadDay, e.days, e.clock, e.logger)

	_, err := uc.Execute(context.Background(), AddTaskInput{})
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
}

func TestAddTask_Subtask(t *testing.T) {
	e := newEnv()
	parent := domain.NewItem("release", time.Hour, domain.ScheduleToday, testNow)
	e.seedToday(parent)
	uc := NewAddTask(e.loadDay, e.days, e.clock, e.logger)

	out, err := uc.Execute(context.Background(), AddTaskInput{Title: "changelog", Parent: "release"})
	require.NoError(t, err)

	require.Len(t, parent.Subtasks, 1)
	assert.Same(t, out.Item, parent.Subtasks[0])

	_, err = uc.Execute(context.Background(), AddTaskInput{Title: "orphan", Parent: "missing"})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestStartTask(t *testing.T) {
	e := newEnv()
	e.seedToday(domain.NewItem("focus", time.Hour, domain.ScheduleToday, testNow))
	uc := NewStartTask(e.loadDay, e.days, e.clock, e.logger)

	out, err := uc.Execute(context.Background(), ControlTaskInput{Title: "focus"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRunning, out.Item.Status)
}

func TestStartTask_SubtaskStartsParent(t *testing.T) {
	e := newEnv()
	parent := domain.NewItem("release", time.Hour, domain.ScheduleToday, testNow)
	parent.AddSubtask(domain.NewItem("changelog", 0, domain.ScheduleToday, testNow))
	e.seedToday(parent)
	uc := NewStartTask(e.loadDay, e.days, e.clock, e.logger)

	_, err := uc.Execute(context.Background(), ControlTaskInput{Title: "changelog"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRunning, parent.Subtasks[0].Status)
	assert.Equal(t, domain.StatusRunning, parent.Status)
}

func TestPauseTask_LastSubtaskPausesParent(t *testing.T) {
	e := newEnv()
	parent := domain.NewItem("release", time.Hour, domain.ScheduleToday, testNow)
	sub := domain.NewItem("changelog", 0, domain.ScheduleToday, testNow)
	parent.AddSubtask(sub)
	e.seedToday(parent)
	parent.Start(testNow)
	sub.Start(testNow)

	uc := NewPauseTask(e.loadDay, e.days, e.clock, e.logger)
	e.clock.Advance(30 * time.Minute)

	_, err := uc.Execute(context.Background(), ControlTaskInput{Title: "changelog"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPaused, sub.Status)
	assert.Equal(t, domain.StatusPaused, parent.Status)
}

func TestCompleteTask_TopLevel(t *testing.T) {
	e := newEnv()
	item := domain.NewItem("ship it", time.Hour, domain.ScheduleToday, testNow)
	e.seedToday(item)
	notifier := &testutil.MockNotifier{}
	uc := NewCompleteTask(e.loadDay, e.days, e.clock, e.logger, notifier)

	out, err := uc.Execute(context.Background(), ControlTaskInput{Title: "ship it"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDone, out.Item.Status)
	require.NotNil(t, out.Item.CompletedAt)

	saved := e.days.Days["2026-03-10"]
	assert.Empty(t, saved.Active)
	require.Len(t, saved.Done, 1)
	assert.Equal(t, []string{"ship it"}, notifier.DoneTitles)
}

func TestCompleteTask_SubtaskStaysUnderParent(t *testing.T) {
	e := newEnv()
	parent := domain.NewItem("release", time.Hour, domain.ScheduleToday, testNow)
	sub := domain.NewItem("changelog", 0, domain.ScheduleToday, testNow)
	parent.AddSubtask(sub)
	e.seedToday(parent)
	parent.Start(testNow)
	sub.Start(testNow)

	uc := NewCompleteTask(e.loadDay, e.days, e.clock, e.logger, &testutil.MockNotifier{})
	_, err := uc.Execute(context.Background(), ControlTaskInput{Title: "changelog"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDone, sub.Status)
	require.Len(t, parent.Subtasks, 1)
	assert.Equal(t, domain.StatusPaused, parent.Status, "no running subtasks left")

	saved := e.days.Days["2026-03-10"]
	require.Len(t, saved.Active, 1)
	assert.Empty(t, saved.Done)
}

func TestArchiveTask(t *testing.T) {
	e := newEnv()
	item := domain.NewItem("stale idea", 0, domain.ScheduleToday, testNow)
	item.Start(testNow)
	e.seedToday(item)
	uc := NewArchiveTask(e.loadDay, e.days, e.clock, e.logger)

	out, err := uc.Execute(context.Background(), ControlTaskInput{Title: "stale idea"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusIdle, out.Item.Status)

	saved := e.days.Days["2026-03-10"]
	assert.Empty(t, saved.Active)
	assert.Len(t, saved.Archived, 1)

	_, err = uc.Execute(context.Background(), ControlTaskInput{Title: "stale idea"})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestAdjustEstimate(t *testing.T) {
	e := newEnv()
	item := domain.NewItem("focus", time.Hour, domain.ScheduleToday, testNow)
	e.seedToday(item)
	uc := NewAdjustEstimate(e.loadDay, e.days, e.clock, e.logger, &testutil.MockConfigLoader{})

	_, err := uc.Execute(context.Background(), AdjustEstimateInput{Title: "focus", Steps: 2})
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, item.Track.Estimate)

	_, err = uc.Execute(context.Background(), AdjustEstimateInput{Title: "focus", Steps: -8})
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), item.Track.Estimate, "estimate never goes negative")
}
