package report

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quvia/centre/internal/domain"
)

func TestRender_Sections(t *testing.T) {
	done := doneItem("Ship feature", time.Hour, 90*time.Minute, "dev")
	active := domain.NewItem("Write docs", 2*time.Hour, domain.ScheduleToday, testNow)
	active.Tags = []string{"writing"}
	active.Start(testNow.Add(-30 * time.Minute))
	active.Pause(testNow)

	meta := domain.NewMeta()
	meta.ModeTimes[domain.ModeWorking] = 5 * time.Hour
	meta.ModeTimes[domain.ModeLunch] = time.Hour

	out := Render(&domain.DayFile{
		Active: []*domain.Item{active},
		Done:   []*domain.Item{done},
	}, meta, "2026-03-10", testNow)

	assert.Contains(t, out, "# Daily Report - 2026-03-10")
	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "- **Total Tasks:** 2 (Active: 1, Done: 1, Archived: 0)")
	assert.Contains(t, out, "- **Completion Rate:** 1/2 tasks done")

	assert.Contains(t, out, "## Context Modes")
	assert.Contains(t, out, "**Working:** 5h (83.3%)")
	assert.Contains(t, out, "**Lunch:** 1h (16.7%)")

	assert.Contains(t, out, "## Time & Productivity")
	assert.Contains(t, out, "## Estimation Accuracy")
	assert.Contains(t, out, "- **Tasks Over Estimate:** 1 (100.0% of completed)")

	assert.Contains(t, out, "## Task Completion")
	assert.Contains(t, out, `- **Fastest Task:** "Ship feature" (1h 30m)`)

	assert.Contains(t, out, "## Tag Analysis")
	assert.Contains(t, out, "### #dev")
	assert.Contains(t, out, "### #writing")

	assert.Contains(t, out, "## Tasks Breakdown")
	assert.Contains(t, out, "- [x] **Ship feature** (dev)")
	assert.Contains(t, out, "- [⏸] **Write docs** (writing)")
}

func TestRender_SkipsEmptyModeSection(t *testing.T) {
	out := Render(&domain.DayFile{}, domain.NewMeta(), "2026-03-10", testNow)

	assert.NotContains(t, out, "## Context Modes")
	assert.NotContains(t, out, "## Tag Analysis")
	assert.Contains(t, out, "## Summary")
}

type stubDayStore struct {
	day *domain.DayFile
}

func (s *stubDayStore) Exists(string) bool { return s.day != nil }
func (s *stubDayStore) Load(string) (*domain.DayFile, error) {
	return s.day, nil
}
func (s *stubDayStore) Save(string, *domain.DayFile) error { return nil }

type stubMetaStore struct {
	meta *domain.Meta
}

func (s *stubMetaStore) Load() (*domain.Meta, error) { return s.meta, nil }
func (s *stubMetaStore) Save(*domain.Meta) error     { return nil }

type stubClock struct {
	now time.Time
}

func (c stubClock) Now() time.Time { return c.now }

func TestGenerator_WritesReportFile(t *testing.T) {
	dir := t.TempDir()
	day := &domain.DayFile{Done: []*domain.Item{doneItem("Task", time.Hour, time.Hour)}}

	gen := NewGenerator(dir, &stubDayStore{day: day}, &stubMetaStore{meta: domain.NewMeta()}, stubClock{now: testNow})

	path, err := gen.Generate("2026-03-10")

	require.NoError(t, err)
	assert.Equal(t, domain.ReportFilePath(dir, "2026-03-10"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Daily Report - 2026-03-10")
	assert.Contains(t, string(content), "- **Completed Today:** 1 tasks")
}
