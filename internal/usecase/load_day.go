// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/quvia/centre/internal/domain"
)

// LoadDayInput contains the parameters for loading the current day.
type LoadDayInput struct{}

// LoadDayOutput contains the loaded day image.
// Fields are ordered to minimize memory padding.
type LoadDayOutput struct {
	Day        *domain.DayFile
	Date       string // Date key of the loaded day
	ReportPath string // Report written during rollover, if any
	RolledOver bool   // True when yesterday's items were carried forward
}

// LoadDay is the use case for loading today's items on startup.
//
// Decision tree: if today's file exists it is loaded with elapsed time
// resynced from history, so running timers keep accruing across commands;
// otherwise yesterday's unfinished items are carried forward into a fresh
// day (and a report for yesterday is generated), with anything still
// running coerced to paused; otherwise the day starts empty.
type LoadDay struct {
	days    domain.DayStore
	meta    domain.MetaStore
	reports domain.ReportWriter
	clock   domain.Clock
	logger  domain.Logger
}

// NewLoadDay creates a new LoadDay use case.
func NewLoadDay(
	days domain.DayStore,
	meta domain.MetaStore,
	reports domain.ReportWriter,
	clock domain.Clock,
	logger domain.Logger,
) *LoadDay {
	return &LoadDay{
		days:    days,
		meta:    meta,
		reports: reports,
		clock:   clock,
		logger:  logger,
	}
}

// Execute loads the current day.
func (uc *LoadDay) Execute(ctx context.Context, in LoadDayInput) (*LoadDayOutput, error) {
	now := uc.clock.Now()
	today := domain.FormatDate(now)

	uc.resetModeCountersIfNewDay(now)

	if uc.days.Exists(today) {
		day, err := uc.days.Load(today)
		if err != nil {
			return nil, fmt.Errorf("load today: %w", err)
		}
		repairItems(day.Active, now)
		return &LoadDayOutput{Day: day, Date: today}, nil
	}

	yesterday := domain.FormatDate(now.AddDate(0, 0, -1))
	if uc.days.Exists(yesterday) {
		return uc.rollOver(ctx, today, yesterday, now)
	}

	uc.logger.Info("startup", "no previous day found, starting fresh")
	return &LoadDayOutput{Day: &domain.DayFile{}, Date: today}, nil
}

// rollOver carries yesterday's unfinished items into a new day. Done and
// archived items stay behind in yesterday's file.
func (uc *LoadDay) rollOver(ctx context.Context, today, yesterday string, now time.Time) (*LoadDayOutput, error) {
	out := &LoadDayOutput{Date: today, RolledOver: true}

	// The report is best effort; a failure must not block the new day.
	if path, err := uc.reports.Generate(yesterday); err != nil {
		uc.logger.Warn("startup", fmt.Sprintf("could not generate report for %s: %v", yesterday, err))
	} else {
		out.ReportPath = path
	}

	previous, err := uc.days.Load(yesterday)
	if err != nil {
		return nil, fmt.Errorf("load previous day: %w", err)
	}

	for _, it := range previous.Active {
		it.Schedule = domain.ScheduleToday
	}
	repairItems(previous.Active, now)
	for _, it := range previous.Active {
		it.CoerceRunningToPaused(now)
	}

	out.Day = &domain.DayFile{Active: previous.Active}
	if err := uc.days.Save(today, out.Day); err != nil {
		return nil, fmt.Errorf("save new day: %w", err)
	}

	uc.logger.Info("startup", fmt.Sprintf("carried %d items forward from %s", len(out.Day.Active), yesterday))
	return out, nil
}

// resetModeCountersIfNewDay zeroes the per-mode counters when the calendar
// day changed since the last recorded mode switch.
func (uc *LoadDay) resetModeCountersIfNewDay(now time.Time) {
	meta, err := uc.meta.Load()
	if err != nil {
		uc.logger.Warn("startup", fmt.Sprintf("could not load metadata: %v", err))
		return
	}
	if meta.ResetIfNewDay(now) {
		if err := uc.meta.Save(meta); err != nil {
			uc.logger.Warn("startup", fmt.Sprintf("could not reset mode counters: %v", err))
		}
	}
}

// repairItems resyncs elapsed time from the history ledger. Applied to
// everything loaded from disk. Items that do not cross a day boundary keep
// their running state.
func repairItems(items []*domain.Item, now time.Time) {
	for _, it := range items {
		it.SyncElapsedFromHistory(now)
	}
}
