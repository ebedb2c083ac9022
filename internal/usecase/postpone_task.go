package usecase

import (
	"context"
	"fmt"

	"github.com/quvia/centre/internal/domain"
)

// PostponeTaskInput names the item to defer to tomorrow.
type PostponeTaskInput struct {
	Title string
}

// PostponeTaskOutput contains the result of a postponement.
type PostponeTaskOutput struct {
	Item         *domain.Item
	TomorrowDate string
}

// PostponeTask moves a top-level item out of today and merges it into
// tomorrow's daily file. The item lands there in the Idle state so it is
// immediately actionable when tomorrow's day starts.
type PostponeTask struct {
	dayOps
}

// NewPostponeTask creates a new PostponeTask use case.
func NewPostponeTask(loadDay *LoadDay, days domain.DayStore, clock domain.Clock, logger domain.Logger) *PostponeTask {
	return &PostponeTask{dayOps{loadDay: loadDay, days: days, clock: clock, logger: logger}}
}

// Execute postpones the named item.
func (uc *PostponeTask) Execute(ctx context.Context, in PostponeTaskInput) (*PostponeTaskOutput, error) {
	day, date, err := uc.loadToday(ctx)
	if err != nil {
		return nil, err
	}

	item, ok := domain.FindByTitle(day.Active, in.Title)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrItemNotFound, in.Title)
	}

	now := uc.clock.Now()
	day.Active = removeItem(day.Active, item)
	item.Postpone(now)
	item.Schedule = domain.ScheduleTomorrow

	tomorrow := domain.FormatDate(now.AddDate(0, 0, 1))
	tomorrowDay := &domain.DayFile{}
	if uc.days.Exists(tomorrow) {
		tomorrowDay, err = uc.days.Load(tomorrow)
		if err != nil {
			return nil, fmt.Errorf("load tomorrow: %w", err)
		}
	}
	tomorrowDay.Active = append(tomorrowDay.Active, item)

	if err := uc.days.Save(tomorrow, tomorrowDay); err != nil {
		return nil, fmt.Errorf("save tomorrow: %w", err)
	}
	if err := uc.days.Save(date, day); err != nil {
		return nil, fmt.Errorf("save today: %w", err)
	}

	uc.logger.Info("task", fmt.Sprintf("postponed %q to %s", item.Title, tomorrow))
	return &PostponeTaskOutput{Item: item, TomorrowDate: tomorrow}, nil
}
