package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/quvia/centre/internal/domain"
)

// SetModeInput carries the target context mode.
type SetModeInput struct {
	Mode string
}

// SetModeOutput describes the mode change that took place.
type SetModeOutput struct {
	Previous domain.Mode
	Current  domain.Mode
	Paused   []string
	Resumed  []string
	Changed  bool
}

// SetMode switches the global context mode. Entering a pausing mode stops
// every running timer and remembers which tasks were active; returning to
// Working resumes exactly that set.
type SetMode struct {
	dayOps
	meta domain.MetaStore
}

// NewSetMode creates a new SetMode use case.
func NewSetMode(loadDay *LoadDay, days domain.DayStore, meta domain.MetaStore, clock domain.Clock, logger domain.Logger) *SetMode {
	return &SetMode{
		dayOps: dayOps{loadDay: loadDay, days: days, clock: clock, logger: logger},
		meta:   meta,
	}
}

// Execute switches to the requested mode.
func (uc *SetMode) Execute(ctx context.Context, in SetModeInput) (*SetModeOutput, error) {
	mode, ok := domain.ParseMode(in.Mode)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMode, in.Mode)
	}

	meta, err := uc.meta.Load()
	if err != nil {
		return nil, fmt.Errorf("load meta: %w", err)
	}
	if meta.Mode == mode {
		return &SetModeOutput{Previous: meta.Mode, Current: mode}, nil
	}

	day, date, err := uc.loadToday(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	previous := meta.Mode
	meta.RecordModeTime(previous, now)
	meta.Mode = mode

	out := &SetModeOutput{Previous: previous, Current: mode, Changed: true}
	if mode.PausesTimers() {
		// Pause everything that is running and remember the set so a later
		// switch back to Working restores exactly those tasks.
		if !previous.PausesTimers() {
			meta.PausedByMode = nil
		}
		for _, item := range day.Active {
			uc.pauseTree(item, now, meta, out)
		}
	} else {
		for _, title := range meta.PausedByMode {
			if item := findPausedByTitle(day.Active, title); item != nil {
				item.Start(now)
				out.Resumed = append(out.Resumed, title)
			}
		}
		for _, item := range day.Active {
			if len(item.Subtasks) > 0 {
				domain.SyncParentStatus(item, now)
			}
		}
		meta.PausedByMode = nil
	}

	if err := uc.days.Save(date, day); err != nil {
		return nil, fmt.Errorf("save day: %w", err)
	}
	if err := uc.meta.Save(meta); err != nil {
		return nil, fmt.Errorf("save meta: %w", err)
	}

	uc.logger.Info("mode", fmt.Sprintf("switched from %s to %s", previous, mode))
	return out, nil
}

func (uc *SetMode) pauseTree(item *domain.Item, now time.Time, meta *domain.Meta, out *SetModeOutput) {
	if item.Status == domain.StatusRunning {
		item.Pause(now)
		meta.PausedByMode = append(meta.PausedByMode, item.Title)
		out.Paused = append(out.Paused, item.Title)
	}
	for _, sub := range item.Subtasks {
		uc.pauseTree(sub, now, meta, out)
	}
}

// findPausedByTitle searches the active tree for a paused item with the given
// title. Only paused items match so the resume set never restarts tasks the
// user stopped on purpose while a pausing mode was in effect.
func findPausedByTitle(items []*domain.Item, title string) *domain.Item {
	for _, item := range items {
		if item.Title == title && item.Status == domain.StatusPaused {
			return item
		}
		if found := findPausedByTitle(item.Subtasks, title); found != nil {
			return found
		}
	}
	return nil
}
