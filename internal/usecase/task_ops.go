package usecase

import (
	"context"
	"fmt"

	"github.com/quvia/centre/internal/domain"
)

// dayOps bundles the collaborators every single-item operation needs.
// Fields are ordered to minimize memory padding.
type dayOps struct {
	loadDay *LoadDay
	days    domain.DayStore
	clock   domain.Clock
	logger  domain.Logger
}

// loadToday loads the current day, rolling over or starting fresh as
// needed.
func (o *dayOps) loadToday(ctx context.Context) (*domain.DayFile, string, error) {
	out, err := o.loadDay.Execute(ctx, LoadDayInput{})
	if err != nil {
		return nil, "", err
	}
	return out.Day, out.Date, nil
}

// findItem locates an item by title, searching top-level items first and
// subtasks second. Returns the item and its parent (nil for top-level).
func findItem(day *domain.DayFile, title string) (*domain.Item, *domain.Item, error) {
	if it, ok := domain.FindByTitle(day.Active, title); ok {
		return it, nil, nil
	}
	for _, parent := range day.Active {
		for _, sub := range parent.Subtasks {
			if sub.Title == title {
				return sub, parent, nil
			}
		}
	}
	return nil, nil, fmt.Errorf("%w: %q", domain.ErrItemNotFound, title)
}

// AddTaskInput contains the parameters for adding a task.
// Fields are ordered to minimize memory padding.
type AddTaskInput struct {
	Title         string
	Notes         string
	Parent        string // Non-empty to add a subtask under this title
	Tags          []string
	EstimateHours float64
}

// AddTaskOutput contains the result of adding a task.
type AddTaskOutput struct {
	Item *domain.Item
	Date string
}

// AddTask is the use case for adding a task or subtask to today.
type AddTask struct {
	dayOps
}

// NewAddTask creates a new AddTask use case.
func NewAddTask(loadDay *LoadDay, days domain.DayStore, clock domain.Clock, logger domain.Logger) *AddTask {
	return &AddTask{dayOps{loadDay: loadDay, days: days, clock: clock, logger: logger}}
}

// Execute adds a task with the given input.
func (uc *AddTask) Execute(ctx context.Context, in AddTaskInput) (*AddTaskOutput, error) {
	if in.Title == "" {
		return nil, domain.ErrEmptyTitle
	}

	day, date, err := uc.loadToday(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	item := domain.NewItem(in.Title, domain.HoursToDuration(in.EstimateHours), domain.ScheduleToday, now)
	item.Tags = in.Tags
	item.Notes = in.Notes

	if in.Parent != "" {
		parent, ok := domain.FindByTitle(day.Active, in.Parent)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrItemNotFound, in.Parent)
		}
		parent.AddSubtask(item)
	} else {
		day.Active = append(day.Active, item)
	}

	if err := uc.days.Save(date, day); err != nil {
		return nil, err
	}

	uc.logger.Info("task", fmt.Sprintf("added %q", in.Title))
	return &AddTaskOutput{Item: item, Date: date}, nil
}
