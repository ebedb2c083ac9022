package app

import (
	"fmt"
	"time"

	"github.com/quvia/centre/internal/domain"
)

// State is the in-memory aggregate for one interactive session over a day.
// It owns the three item lists, the undo stack and the idle watchdog, and
// tracks whether anything needs to be written back to disk.
// Fields are ordered to minimize memory padding.
type State struct {
	lastActivity time.Time
	idleDeadline *time.Time
	Meta         *domain.Meta
	clock        domain.Clock
	notifier     domain.Notifier
	undo         *undoStack
	notifiedOver map[string]bool
	Date         string
	Active       []*domain.Item
	Done         []*domain.Item
	Archived     []*domain.Item
	cfg          domain.Config
	needsSave    bool
}

// NewState builds a session aggregate around a loaded day.
func NewState(day *domain.DayFile, meta *domain.Meta, date string, cfg domain.Config, clock domain.Clock, notifier domain.Notifier) *State {
	if meta.LastModeChange == nil {
		now := clock.Now()
		meta.LastModeChange = &now
	}
	return &State{
		Date:         date,
		Active:       day.Active,
		Done:         day.Done,
		Archived:     day.Archived,
		Meta:         meta,
		cfg:          cfg,
		clock:        clock,
		notifier:     notifier,
		undo:         newUndoStack(cfg.Undo.Depth),
		notifiedOver: make(map[string]bool),
		lastActivity: clock.Now(),
	}
}

// DayFile returns the current lists as a persistable day image.
func (s *State) DayFile() *domain.DayFile {
	return &domain.DayFile{Active: s.Active, Done: s.Done, Archived: s.Archived}
}

// NeedsSave reports whether the aggregate changed since the last ClearDirty.
func (s *State) NeedsSave() bool { return s.needsSave }

// ClearDirty marks the aggregate as persisted.
func (s *State) ClearDirty() { s.needsSave = false }

func (s *State) markDirty() {
	s.needsSave = true
	s.lastActivity = s.clock.Now()
	s.idleDeadline = nil
}

// DayChanged reports whether the wall clock has crossed into a different
// calendar day than the one this aggregate was loaded for.
func (s *State) DayChanged() bool {
	return domain.FormatDate(s.clock.Now()) != s.Date
}

// Rows returns the flattened, renderable view of the active list.
func (s *State) Rows() []domain.FlatRow {
	return domain.FlattenItems(s.Active)
}

// Totals returns leaf-only completion totals across all lists.
func (s *State) Totals() domain.Totals {
	return domain.DayTotals(s.DayFile())
}

// itemAt resolves a (task index, optional subtask index) address.
func (s *State) itemAt(taskIndex int, subIndex *int) (*domain.Item, *domain.Item, error) {
	if taskIndex < 0 || taskIndex >= len(s.Active) {
		return nil, nil, fmt.Errorf("%w: task %d", domain.ErrItemNotFound, taskIndex)
	}
	parent := s.Active[taskIndex]
	if subIndex == nil {
		return parent, nil, nil
	}
	if *subIndex < 0 || *subIndex >= len(parent.Subtasks) {
		return nil, nil, fmt.Errorf("%w: subtask %d of task %d", domain.ErrItemNotFound, *subIndex, taskIndex)
	}
	return parent.Subtasks[*subIndex], parent, nil
}

// AddTask appends a new top-level item.
func (s *State) AddTask(title string, estimate time.Duration) (*domain.Item, error) {
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	item := domain.NewItem(title, estimate, domain.ScheduleToday, s.clock.Now())
	s.Active = append(s.Active, item)
	s.markDirty()
	return item, nil
}

// AddSubtask appends a new subtask under the addressed task.
func (s *State) AddSubtask(taskIndex int, title string, estimate time.Duration) (*domain.Item, error) {
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	parent, _, err := s.itemAt(taskIndex, nil)
	if err != nil {
		return nil, err
	}
	item := domain.NewItem(title, estimate, domain.ScheduleToday, s.clock.Now())
	parent.AddSubtask(item)
	s.markDirty()
	return item, nil
}

// Toggle flips the addressed item between running and paused, keeping the
// parent in sync when a subtask is toggled.
func (s *State) Toggle(taskIndex int, subIndex *int) error {
	item, parent, err := s.itemAt(taskIndex, subIndex)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	item.ToggleRunPause(now)
	if parent != nil {
		domain.SyncParentStatus(parent, now)
	}
	s.markDirty()
	return nil
}

// MarkDone completes the addressed item. A top-level item moves to the done
// list; a subtask stays under its parent. The removal is undoable.
func (s *State) MarkDone(taskIndex int, subIndex *int) error {
	item, parent, err := s.itemAt(taskIndex, subIndex)
	if err != nil {
		return err
	}
	now := s.clock.Now()

	if parent == nil {
		s.undo.push(undoEntry{kind: undoDone, item: item, index: taskIndex})
		item.MarkDone(now)
		s.Active = append(s.Active[:taskIndex], s.Active[taskIndex+1:]...)
		s.Done = append(s.Done, item)
	} else {
		s.undo.push(undoEntry{kind: undoDone, item: item, index: *subIndex, parentTitle: parent.Title})
		item.MarkDone(now)
		domain.SyncParentStatus(parent, now)
	}

	s.notifier.TaskDone(item.Title)
	s.markDirty()
	return nil
}

// Archive moves a top-level item to the archived list. Undoable.
func (s *State) Archive(taskIndex int) error {
	item, _, err := s.itemAt(taskIndex, nil)
	if err != nil {
		return err
	}
	s.undo.push(undoEntry{kind: undoArchived, item: item, index: taskIndex})
	item.SetIdle(s.clock.Now())
	s.Active = append(s.Active[:taskIndex], s.Active[taskIndex+1:]...)
	s.Archived = append(s.Archived, item)
	s.markDirty()
	return nil
}

// Postpone removes a top-level item from today and returns it marked for
// tomorrow. The caller is responsible for merging it into tomorrow's file.
func (s *State) Postpone(taskIndex int) (*domain.Item, error) {
	item, _, err := s.itemAt(taskIndex, nil)
	if err != nil {
		return nil, err
	}
	item.Postpone(s.clock.Now())
	item.Schedule = domain.ScheduleTomorrow
	s.Active = append(s.Active[:taskIndex], s.Active[taskIndex+1:]...)
	s.markDirty()
	return item, nil
}

// Delete removes the addressed item. A parent that still owns subtasks is
// left untouched so children cannot be lost by accident. Undoable.
func (s *State) Delete(taskIndex int, subIndex *int) error {
	item, parent, err := s.itemAt(taskIndex, subIndex)
	if err != nil {
		return err
	}
	if subIndex == nil && len(item.Subtasks) > 0 {
		return nil
	}

	if parent == nil {
		s.undo.push(undoEntry{kind: undoDeleted, item: item, index: taskIndex})
		s.Active = append(s.Active[:taskIndex], s.Active[taskIndex+1:]...)
	} else {
		s.undo.push(undoEntry{kind: undoDeleted, item: item, index: *subIndex, parentTitle: parent.Title})
		parent.Subtasks = append(parent.Subtasks[:*subIndex], parent.Subtasks[*subIndex+1:]...)
		domain.SyncParentStatus(parent, s.clock.Now())
	}
	s.markDirty()
	return nil
}

// Undo restores the most recent done/deleted/archived item. Restoration is
// best effort: a vanished parent turns a subtask back into a top-level item,
// and indices are clamped to the current list length.
func (s *State) Undo() (*domain.Item, bool) {
	e, ok := s.undo.pop()
	if !ok {
		return nil, false
	}

	switch e.kind {
	case undoDone:
		s.Done = removeByTitle(s.Done, e.item.Title)
	case undoArchived:
		s.Archived = removeByTitle(s.Archived, e.item.Title)
	case undoDeleted:
	}

	restored := e.item
	if e.parentTitle != "" {
		if parent, found := domain.FindByTitle(s.Active, e.parentTitle); found {
			parent.Subtasks = removeByTitle(parent.Subtasks, restored.Title)
			parent.AddSubtask(restored)
			s.markDirty()
			return restored, true
		}
	}

	s.Active = removeByTitle(s.Active, restored.Title)
	idx := e.index
	if idx > len(s.Active) {
		idx = len(s.Active)
	}
	s.Active = append(s.Active[:idx], append([]*domain.Item{restored}, s.Active[idx:]...)...)
	s.markDirty()
	return restored, true
}

// MoveUp swaps the addressed top-level item with its predecessor.
func (s *State) MoveUp(taskIndex int) bool {
	if taskIndex <= 0 || taskIndex >= len(s.Active) {
		return false
	}
	s.Active[taskIndex-1], s.Active[taskIndex] = s.Active[taskIndex], s.Active[taskIndex-1]
	s.markDirty()
	return true
}

// MoveDown swaps the addressed top-level item with its successor.
func (s *State) MoveDown(taskIndex int) bool {
	if taskIndex < 0 || taskIndex >= len(s.Active)-1 {
		return false
	}
	s.Active[taskIndex], s.Active[taskIndex+1] = s.Active[taskIndex+1], s.Active[taskIndex]
	s.markDirty()
	return true
}

// ToggleExpanded flips a parent's collapsed flag.
func (s *State) ToggleExpanded(taskIndex int) error {
	item, _, err := s.itemAt(taskIndex, nil)
	if err != nil {
		return err
	}
	item.Expanded = !item.Expanded
	s.markDirty()
	return nil
}

// Tick folds running spans into elapsed across the whole active list and
// accumulates mode time.
func (s *State) Tick() {
	now := s.clock.Now()
	for _, item := range s.Active {
		item.Tick(now)
	}
	s.Meta.RecordModeTime(s.Meta.Mode, now)
}

// CheckEstimateHits returns the first running item that just crossed its
// estimate, firing a notification once per item per session.
func (s *State) CheckEstimateHits() *domain.Item {
	for _, item := range s.Active {
		for _, candidate := range append([]*domain.Item{item}, item.Subtasks...) {
			if candidate.IsOverEstimate() && !s.notifiedOver[candidate.Title] {
				s.notifiedOver[candidate.Title] = true
				s.notifier.EstimateReached(candidate.Title)
				return candidate
			}
		}
	}
	return nil
}

// ExtendEstimate raises the addressed item's estimate by one configured step
// and re-arms its estimate notification.
func (s *State) ExtendEstimate(taskIndex int, subIndex *int) error {
	item, _, err := s.itemAt(taskIndex, subIndex)
	if err != nil {
		return err
	}
	item.IncreaseEstimate(s.cfg.Timer.EstimateStep)
	delete(s.notifiedOver, item.Title)
	s.markDirty()
	return nil
}

// CheckIdle runs the idle watchdog. It returns true when the session has
// been inactive long enough that the caller should ask whether the user is
// still there; once the grace deadline passes everything is auto-paused.
func (s *State) CheckIdle() bool {
	now := s.clock.Now()
	if now.Sub(s.lastActivity) < s.cfg.Idle.CheckAfter {
		return false
	}
	if s.idleDeadline == nil {
		deadline := now.Add(s.cfg.Idle.Grace)
		s.idleDeadline = &deadline
		return true
	}
	if now.After(*s.idleDeadline) {
		s.AutoPauseAll()
		return false
	}
	return true
}

// ConfirmWorking resets the idle watchdog.
func (s *State) ConfirmWorking() {
	s.lastActivity = s.clock.Now()
	s.idleDeadline = nil
}

// AutoPauseAll pauses every running item, recording the transitions.
func (s *State) AutoPauseAll() {
	now := s.clock.Now()
	for _, item := range s.Active {
		for _, sub := range item.Subtasks {
			sub.Pause(now)
		}
		item.Pause(now)
	}
	s.idleDeadline = nil
	s.needsSave = true
}

// AutoIdleAll returns every active item to idle. Called when the session
// ends so nothing is left running or half-paused in the file.
func (s *State) AutoIdleAll() {
	now := s.clock.Now()
	for _, item := range s.Active {
		for _, sub := range item.Subtasks {
			sub.SetIdle(now)
		}
		item.SetIdle(now)
	}
	s.needsSave = true
}

// removeByTitle drops the first item with the given title, preserving order.
func removeByTitle(items []*domain.Item, title string) []*domain.Item {
	for i, it := range items {
		if it.Title == title {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}
