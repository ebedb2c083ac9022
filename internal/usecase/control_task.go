package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/quvia/centre/internal/domain"
)

// ControlTaskInput names the item a timer operation targets.
type ControlTaskInput struct {
	Title string
}

// ControlTaskOutput contains the item after the operation.
type ControlTaskOutput struct {
	Item *domain.Item
	Date string
}

// StartTask is the use case for starting an item's timer.
type StartTask struct {
	dayOps
}

// NewStartTask creates a new StartTask use case.
func NewStartTask(loadDay *LoadDay, days domain.DayStore, clock domain.Clock, logger domain.Logger) *StartTask {
	return &StartTask{dayOps{loadDay: loadDay, days: days, clock: clock, logger: logger}}
}

// Execute starts the named item.
func (uc *StartTask) Execute(ctx context.Context, in ControlTaskInput) (*ControlTaskOutput, error) {
	day, date, err := uc.loadToday(ctx)
	if err != nil {
		return nil, err
	}

	item, parent, err := findItem(day, in.Title)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	item.Start(now)
	if parent != nil {
		domain.SyncParentStatus(parent, now)
	}

	if err := uc.days.Save(date, day); err != nil {
		return nil, err
	}

	uc.logger.Info("task", fmt.Sprintf("started %q", item.Title))
	return &ControlTaskOutput{Item: item, Date: date}, nil
}

// PauseTask is the use case for pausing an item's timer.
type PauseTask struct {
	dayOps
}

// NewPauseTask creates a new PauseTask use case.
func NewPauseTask(loadDay *LoadDay, days domain.DayStore, clock domain.Clock, logger domain.Logger) *PauseTask {
	return &PauseTask{dayOps{loadDay: loadDay, days: days, clock: clock, logger: logger}}
}

// Execute pauses the named item.
func (uc *PauseTask) Execute(ctx context.Context, in ControlTaskInput) (*ControlTaskOutput, error) {
	day, date, err := uc.loadToday(ctx)
	if err != nil {
		return nil, err
	}

	item, parent, err := findItem(day, in.Title)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	item.Pause(now)
	if parent != nil {
		domain.SyncParentStatus(parent, now)
	}

	if err := uc.days.Save(date, day); err != nil {
		return nil, err
	}

	uc.logger.Info("task", fmt.Sprintf("paused %q", item.Title))
	return &ControlTaskOutput{Item: item, Date: date}, nil
}

// CompleteTask is the use case for marking an item done.
type CompleteTask struct {
	dayOps
	notifier domain.Notifier
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(loadDay *LoadDay, days domain.DayStore, clock domain.Clock, logger domain.Logger, notifier domain.Notifier) *CompleteTask {
	return &CompleteTask{
		dayOps:   dayOps{loadDay: loadDay, days: days, clock: clock, logger: logger},
		notifier: notifier,
	}
}

// Execute completes the named item. A completed top-level item moves into
// the DONE section; a completed subtask stays under its parent.
func (uc *CompleteTask) Execute(ctx context.Context, in ControlTaskInput) (*ControlTaskOutput, error) {
	day, date, err := uc.loadToday(ctx)
	if err != nil {
		return nil, err
	}

	item, parent, err := findItem(day, in.Title)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	item.MarkDone(now)

	if parent == nil {
		day.Active = removeItem(day.Active, item)
		day.Done = append(day.Done, item)
	} else {
		domain.SyncParentStatus(parent, now)
	}

	if err := uc.days.Save(date, day); err != nil {
		return nil, err
	}

	uc.notifier.TaskDone(item.Title)
	uc.logger.Info("task", fmt.Sprintf("completed %q", item.Title))
	return &ControlTaskOutput{Item: item, Date: date}, nil
}

// ArchiveTask is the use case for archiving a top-level item.
type ArchiveTask struct {
	dayOps
}

// NewArchiveTask creates a new ArchiveTask use case.
func NewArchiveTask(loadDay *LoadDay, days domain.DayStore, clock domain.Clock, logger domain.Logger) *ArchiveTask {
	return &ArchiveTask{dayOps{loadDay: loadDay, days: days, clock: clock, logger: logger}}
}

// Execute moves the named top-level item into the ARCHIVED section.
func (uc *ArchiveTask) Execute(ctx context.Context, in ControlTaskInput) (*ControlTaskOutput, error) {
	day, date, err := uc.loadToday(ctx)
	if err != nil {
		return nil, err
	}

	item, ok := domain.FindByTitle(day.Active, in.Title)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrItemNotFound, in.Title)
	}

	item.SetIdle(uc.clock.Now())
	day.Active = removeItem(day.Active, item)
	day.Archived = append(day.Archived, item)

	if err := uc.days.Save(date, day); err != nil {
		return nil, err
	}

	uc.logger.Info("task", fmt.Sprintf("archived %q", item.Title))
	return &ControlTaskOutput{Item: item, Date: date}, nil
}

// AdjustEstimateInput contains the parameters for an estimate change.
type AdjustEstimateInput struct {
	Title string
	Steps int // Positive to raise, negative to lower
}

// AdjustEstimate is the use case for changing an item's estimate in
// configured steps.
type AdjustEstimate struct {
	dayOps
	config domain.ConfigLoader
}

// NewAdjustEstimate creates a new AdjustEstimate use case.
func NewAdjustEstimate(loadDay *LoadDay, days domain.DayStore, clock domain.Clock, logger domain.Logger, config domain.ConfigLoader) *AdjustEstimate {
	return &AdjustEstimate{
		dayOps: dayOps{loadDay: loadDay, days: days, clock: clock, logger: logger},
		config: config,
	}
}

// Execute adjusts the named item's estimate by Steps increments.
func (uc *AdjustEstimate) Execute(ctx context.Context, in AdjustEstimateInput) (*ControlTaskOutput, error) {
	cfg, err := uc.config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	day, date, err := uc.loadToday(ctx)
	if err != nil {
		return nil, err
	}

	item, _, err := findItem(day, in.Title)
	if err != nil {
		return nil, err
	}

	step := cfg.Timer.EstimateStep
	if in.Steps > 0 {
		item.IncreaseEstimate(time.Duration(in.Steps) * step)
	} else if in.Steps < 0 {
		item.DecreaseEstimate(time.Duration(-in.Steps) * step)
	}

	if err := uc.days.Save(date, day); err != nil {
		return nil, err
	}

	return &ControlTaskOutput{Item: item, Date: date}, nil
}

// removeItem drops the item from the slice by identity, preserving order.
func removeItem(items []*domain.Item, target *domain.Item) []*domain.Item {
	out := items[:0]
	for _, it := range items {
		if it != target {
			out = append(out, it)
		}
	}
	return out
}
