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

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// env bundles the mocks behind a wired LoadDay for use case tests.
type env struct {
	days    *testutil.MockDayStore
	meta    *testutil.MockMetaStore
	reports *testutil.MockReportWriter
	clock   *testutil.MockClock
	logger  *testutil.MockLogger
	loadDay *LoadDay
}

func newEnv() *env {
	e := &env{
		days:    testutil.NewMockDayStore(),
		meta:    &testutil.MockMetaStore{},
		reports: &testutil.MockReportWriter{},
		clock:   &testutil.MockClock{NowTime: testNow},
		logger:  &testutil.MockLogger{},
	}
	e.loadDay = NewLoadDay(e.days, e.meta, e.reports, e.clock, e.logger)
	return e
}

func TestLoadDay_Fresh(t *testing.T) {
	e := newEnv()

	out, err := e.loadDay.Execute(context.Background(), LoadDayInput{})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", out.Date)
	assert.Empty(t, out.Day.Active)
	assert.False(t, out.RolledOver)
	assert.Empty(t, e.reports.Generated)
}

func TestLoadDay_TodayExists(t *testing.T) {
	e := newEnv()
	item := domain.NewItem("write tests", time.Hour, domain.ScheduleToday, testNow.Add(-2*time.Hour))
	item.Start(testNow.Add(-time.Hour))
	e.days.Days["2026-03-10"] = &domain.DayFile{Active: []*domain.Item{item}}

	out, err := e.loadDay.Execute(context.Background(), LoadDayInput{})
	require.NoError(t, err)

	require.Len(t, out.Day.Active, 1)
	got := out.Day.Active[0]
	assert.Equal(t, domain.StatusRunning, got.Status, "running timers survive across commands")
	assert.Equal(t, time.Hour, got.Track.Elapsed, "elapsed is resynced from history")
	require.NotNil(t, got.Track.RunningSince)
	assert.Equal(t, testNow, *got.Track.RunningSince)
	assert.False(t, out.RolledOver)
}

func TestLoadDay_RollsOverYesterday(t *testing.T) {
	e := newEnv()
	e.reports.Report = "/tmp/report.md"
	carry := domain.NewItem("carry me", time.Hour, domain.ScheduleTomorrow, testNow.Add(-24*time.Hour))
	carry.Start(testNow.Add(-20 * time.Hour))
	done := domain.NewItem("finished", time.Hour, domain.ScheduleToday, testNow.Add(-24*time.Hour))
	done.MarkDone(testNow.Add(-20 * time.Hour))
	e.days.Days["2026-03-09"] = &domain.DayFile{
		Active: []*domain.Item{carry},
		Done:   []*domain.Item{done},
	}

	out, err := e.loadDay.Execute(context.Background(), LoadDayInput{})
	require.NoError(t, err)

	assert.True(t, out.RolledOver)
	assert.Equal(t, "/tmp/report.md", out.ReportPath)
	assert.Equal(t, []string{"2026-03-09"}, e.reports.Generated)

	require.Len(t, out.Day.Active, 1)
	assert.Equal(t, domain.ScheduleToday, out.Day.Active[0].Schedule)
	assert.Equal(t, domain.StatusPaused, out.Day.Active[0].Status, "timers do not run across a day boundary")
	assert.Empty(t, out.Day.Done, "done items stay behind in yesterday's file")

	saved, ok := e.days.Days["2026-03-10"]
	require.True(t, ok, "new day is persisted immediately")
	assert.Len(t, saved.Active, 1)
}

func TestLoadDay_RolloverSurvivesReportFailure(t *testing.T) {
	e := newEnv()
	e.reports.Err = assert.AnError
	e.days.Days["2026-03-09"] = &domain.DayFile{
		Active: []*domain.Item{domain.NewItem("carry me", 0, domain.ScheduleToday, testNow.Add(-24*time.Hour))},
	}

	out, err := e.loadDay.Execute(context.Background(), LoadDayInput{})
	require.NoError(t, err)
	assert.True(t, out.RolledOver)
	assert.Empty(t, out.ReportPath)
}

func TestLoadDay_ResetsModeCountersOnNewDay(t *testing.T) {
	e := newEnv()
	lastChange := testNow.Add(-18 * time.Hour)
	e.meta.Meta = &domain.Meta{
		Mode:           domain.ModeWorking,
		ModeTimes:      map[domain.Mode]time.Duration{domain.ModeWorking: 5 * time.Hour},
		LastModeChange: &lastChange,
	}

	_, err := e.loadDay.Execute(context.Background(), LoadDayInput{})
	require.NoError(t, err)

	assert.True(t, e.meta.Saved)
	assert.Empty(t, e.meta.Meta.ModeTimes)
}
