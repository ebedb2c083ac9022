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

func TestMigrateLegacy_NoLegacyFiles(t *testing.T) {
	e := newEnv()
	legacy := &testutil.MockLegacyStore{}
	uc := NewMigrateLegacy(legacy, e.days, e.clock, e.logger)

	out, err := uc.Execute(context.Background(), MigrateLegacyInput{})
	require.NoError(t, err)

	assert.False(t, out.Migrated)
	assert.Empty(t, e.days.Saves)
	assert.False(t, legacy.Removed)
}

func TestMigrateLegacy_ConvertsAndRemoves(t *testing.T) {
	e := newEnv()
	done := domain.NewItem("old win", time.Hour, domain.ScheduleToday, testNow.Add(-3*time.Hour))
	done.MarkDone(testNow.Add(-time.Hour))
	legacy := &testutil.MockLegacyStore{
		HasFiles: true,
		Day: &domain.DayFile{
			Active: []*domain.Item{
				domain.NewItem("carried over", time.Hour, domain.ScheduleToday, testNow.Add(-2*time.Hour)),
				domain.NewItem("from tomorrow", 0, domain.ScheduleToday, testNow.Add(-2*time.Hour)),
			},
			Done: []*domain.Item{done},
		},
	}
	uc := NewMigrateLegacy(legacy, e.days, e.clock, e.logger)

	out, err := uc.Execute(context.Background(), MigrateLegacyInput{})
	require.NoError(t, err)

	assert.True(t, out.Migrated)
	assert.Equal(t, 2, out.ItemCount)
	assert.Equal(t, 1, out.DoneCount)
	assert.True(t, legacy.Removed)

	saved, ok := e.days.Days["2026-03-10"]
	require.True(t, ok)
	assert.Len(t, saved.Active, 2)
	assert.Len(t, saved.Done, 1)
}

func TestMigrateLegacy_LoadFailureLeavesFiles(t *testing.T) {
	e := newEnv()
	legacy := &testutil.MockLegacyStore{HasFiles: true, LoadErr: assert.AnError}
	uc := NewMigrateLegacy(legacy, e.days, e.clock, e.logger)

	_, err := uc.Execute(context.Background(), MigrateLegacyInput{})
	require.Error(t, err)
	assert.False(t, legacy.Removed)
	assert.Empty(t, e.days.Saves)
}
