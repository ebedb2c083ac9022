// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StateEvent records one status transition with its timestamp.
// The history of an item is append-only; all derived timing is
// reconstructed from it.
// Fields are ordered to minimize memory padding.
type StateEvent struct {
	Timestamp time.Time
	From      *Status // nil only for the very first event
	To        Status
}

// NewStateEvent creates a transition event at the given instant.
func NewStateEvent(from *Status, to Status, now time.Time) StateEvent {
	return StateEvent{Timestamp: now, From: from, To: to}
}

// TimeTracking holds an estimate, accumulated elapsed time, and an optional
// running-since marker. RunningSince is never persisted.
type TimeTracking struct {
	Estimate     time.Duration
	Elapsed      time.Duration
	RunningSince *time.Time
}

// NewTimeTracking creates tracking state with the given estimate.
func NewTimeTracking(estimate time.Duration) TimeTracking {
	return TimeTracking{Estimate: estimate}
}

// TrackingFromHours creates tracking state from fractional hours, truncated
// to whole seconds so serialized values round-trip.
func TrackingFromHours(estimateHours, elapsedHours float64) TimeTracking {
	return TimeTracking{
		Estimate: HoursToDuration(estimateHours),
		Elapsed:  HoursToDuration(elapsedHours),
	}
}

// HoursToDuration converts fractional hours to a duration in whole seconds.
func HoursToDuration(hours float64) time.Duration {
	return time.Duration(hours*3600) * time.Second
}

// Start marks the timer as running from now.
func (t *TimeTracking) Start(now time.Time) {
	ts := now
	t.RunningSince = &ts
}

// Pause folds the running span into elapsed and clears the marker.
func (t *TimeTracking) Pause(now time.Time) {
	if t.RunningSince == nil {
		return
	}
	t.Elapsed += now.Sub(*t.RunningSince)
	t.RunningSince = nil
}

// Tick folds the running span into elapsed and re-baselines the marker to
// now. Keeps the in-memory elapsed close to correct even if the process is
// later killed without a clean pause.
func (t *TimeTracking) Tick(now time.Time) {
	if t.RunningSince == nil {
		return
	}
	t.Elapsed += now.Sub(*t.RunningSince)
	ts := now
	t.RunningSince = &ts
}

// IsOverEstimate returns true when elapsed has reached the estimate.
func (t *TimeTracking) IsOverEstimate() bool {
	return t.Elapsed >= t.Estimate
}

// ProgressRatio returns elapsed/estimate. A zero estimate yields 1.0 so
// zero-estimate items count as always complete.
func (t *TimeTracking) ProgressRatio() float64 {
	if t.Estimate == 0 {
		return 1.0
	}
	return t.Elapsed.Seconds() / t.Estimate.Seconds()
}

// EstimateHours returns the estimate in fractional hours.
func (t *TimeTracking) EstimateHours() float64 {
	return t.Estimate.Seconds() / 3600
}

// ElapsedHours returns the elapsed time in fractional hours.
func (t *TimeTracking) ElapsedHours() float64 {
	return t.Elapsed.Seconds() / 3600
}

// FormatDuration formats a duration as "Xh Ym", omitting zero components.
func FormatDuration(d time.Duration) string {
	total := int(d.Minutes())
	hours := total / 60
	minutes := total % 60
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// StateTimes holds the time an item spent in each non-terminal state.
type StateTimes struct {
	Running time.Duration
	Paused  time.Duration
	Idle    time.Duration
}

// Item is a task or one-level subtask; the unit of time tracking.
// ID is ephemeral: it is regenerated on every load and never persisted.
// Fields are ordered to minimize memory padding.
type Item struct {
	CreatedAt   time.Time
	CompletedAt *time.Time
	Title       string
	Notes       string
	Tags        []string
	History     []StateEvent
	Subtasks    []*Item
	Track       TimeTracking
	ID          uuid.UUID
	Status      Status
	Schedule    ScheduleDay
	Expanded    bool
}

// NewItem creates an item in the Idle state with an initial history event.
func NewItem(title string, estimate time.Duration, schedule ScheduleDay, now time.Time) *Item {
	return &Item{
		ID:        uuid.New(),
		Title:     title,
		Track:     NewTimeTracking(estimate),
		Status:    StatusIdle,
		Schedule:  schedule,
		Expanded:  true,
		CreatedAt: now,
		History:   []StateEvent{NewStateEvent(nil, StatusIdle, now)},
	}
}

// appendEvent records a transition into the history ledger.
func (it *Item) appendEvent(from Status, to Status, now time.Time) {
	f := from
	it.History = append(it.History, NewStateEvent(&f, to, now))
}

// Start begins running the item. No-op if already running.
func (it *Item) Start(now time.Time) {
	if it.Status == StatusRunning {
		return
	}
	prev := it.Status
	it.Status = StatusRunning
	it.Track.Start(now)
	it.appendEvent(prev, StatusRunning, now)
}

// Pause stops the timer and accumulates the elapsed span. No-op unless
// running.
func (it *Item) Pause(now time.Time) {
	if it.Status != StatusRunning {
		return
	}
	prev := it.Status
	it.Status = StatusPaused
	it.Track.Pause(now)
	it.appendEvent(prev, StatusPaused, now)
}

// SetIdle moves a running or paused item back to idle, pausing first if
// needed.
func (it *Item) SetIdle(now time.Time) {
	if it.Status != StatusRunning && it.Status != StatusPaused {
		return
	}
	if it.Status == StatusRunning {
		it.Track.Pause(now)
	}
	prev := it.Status
	it.Status = StatusIdle
	it.appendEvent(prev, StatusIdle, now)
}

// ToggleRunPause starts an idle or paused item, pauses a running one.
func (it *Item) ToggleRunPause(now time.Time) {
	switch it.Status {
	case StatusIdle, StatusPaused:
		it.Start(now)
	case StatusRunning:
		it.Pause(now)
	}
}

// MarkDone completes the item, pausing the timer first if running.
func (it *Item) MarkDone(now time.Time) {
	if it.Status == StatusRunning {
		it.Track.Pause(now)
	}
	prev := it.Status
	it.Status = StatusDone
	ts := now
	it.CompletedAt = &ts
	it.appendEvent(prev, StatusDone, now)
}

// Postpone pauses the timer if running and forces the item back to Idle.
// The distinct Postponed status stays reachable only through parsed files.
func (it *Item) Postpone(now time.Time) {
	if it.Status == StatusRunning {
		it.Track.Pause(now)
	}
	if it.Status == StatusIdle {
		return
	}
	prev := it.Status
	it.Status = StatusIdle
	it.appendEvent(prev, StatusIdle, now)
}

// Tick re-baselines the elapsed time of this item and its subtasks.
func (it *Item) Tick(now time.Time) {
	if it.Status == StatusRunning {
		it.Track.Tick(now)
	}
	for _, sub := range it.Subtasks {
		sub.Tick(now)
	}
}

// IncreaseEstimate raises the estimate by amount.
func (it *Item) IncreaseEstimate(amount time.Duration) {
	it.Track.Estimate += amount
}

// DecreaseEstimate lowers the estimate by amount, flooring at zero.
func (it *Item) DecreaseEstimate(amount time.Duration) {
	it.Track.Estimate -= amount
	if it.Track.Estimate < 0 {
		it.Track.Estimate = 0
	}
}

// IsOverEstimate is true only while the item is running with elapsed at or
// past the estimate. A paused item's elapsed is frozen, so reporting a
// breach then would be misleading.
func (it *Item) IsOverEstimate() bool {
	return it.Status == StatusRunning && it.Track.IsOverEstimate()
}

// AddSubtask appends a subtask. Nesting is bounded to one level: any
// subtasks the child carries are discarded.
func (it *Item) AddSubtask(sub *Item) {
	sub.Subtasks = nil
	it.Subtasks = append(it.Subtasks, sub)
}

// HasRunningSubtasks returns true if any subtask is running.
func (it *Item) HasRunningSubtasks() bool {
	for _, sub := range it.Subtasks {
		if sub.Status == StatusRunning {
			return true
		}
	}
	return false
}

// CoerceRunningToPaused forces any running item to paused. Applied on load
// so a timer never survives an unclean exit. The transition is recorded in
// the history ledger to close the open running span; without it a later
// resync would keep counting elapsed time against a paused item.
func (it *Item) CoerceRunningToPaused(now time.Time) {
	if it.Status == StatusRunning {
		it.appendEvent(StatusRunning, StatusPaused, now)
		it.Status = StatusPaused
		it.Track.RunningSince = nil
	}
	for _, sub := range it.Subtasks {
		sub.CoerceRunningToPaused(now)
	}
}

// SyncElapsedFromHistory overwrites elapsed with the running time derived
// from the history ledger, recursively. Called after loading from disk so
// a running timer accrues wall time across invocations. Running items get
// their marker re-baselined to now; the span up to now is already folded
// into elapsed.
func (it *Item) SyncElapsedFromHistory(now time.Time) {
	times := it.TimeInEachState(now)
	it.Track.Elapsed = times.Running
	if it.Status == StatusRunning {
		ts := now
		it.Track.RunningSince = &ts
	}
	for _, sub := range it.Subtasks {
		sub.SyncElapsedFromHistory(now)
	}
}

// RegenerateIDs assigns fresh identities to the item and its subtasks.
// Identity only correlates in-memory state within one running session.
func (it *Item) RegenerateIDs() {
	it.ID = uuid.New()
	for _, sub := range it.Subtasks {
		sub.RegenerateIDs()
	}
}

// CalendarTime returns the wall-clock span from creation to completion.
func (it *Item) CalendarTime() (time.Duration, bool) {
	if it.CompletedAt == nil {
		return 0, false
	}
	return it.CompletedAt.Sub(it.CreatedAt), true
}

// TimeInEachState walks the history and accumulates each event's span into
// the bucket of the status it transitioned to. An event's span ends at the
// next event's timestamp, or at completion time / now for the last one.
// Done and Postponed spans are not accumulated.
func (it *Item) TimeInEachState(now time.Time) StateTimes {
	var times StateTimes
	for i, ev := range it.History {
		var end time.Time
		if i+1 < len(it.History) {
			end = it.History[i+1].Timestamp
		} else if it.CompletedAt != nil {
			end = *it.CompletedAt
		} else {
			end = now
		}
		span := end.Sub(ev.Timestamp)
		switch ev.To {
		case StatusRunning:
			times.Running += span
		case StatusPaused:
			times.Paused += span
		case StatusIdle:
			times.Idle += span
		}
	}
	return times
}

// RunningTime returns the total time spent in the Running state.
func (it *Item) RunningTime(now time.Time) time.Duration {
	return it.TimeInEachState(now).Running
}

// InterruptionCount counts transitions from Running to Paused.
func (it *Item) InterruptionCount() int {
	n := 0
	for _, ev := range it.History {
		if ev.From != nil && *ev.From == StatusRunning && ev.To == StatusPaused {
			n++
		}
	}
	return n
}

// SessionCount counts transitions into the Running state.
func (it *Item) SessionCount() int {
	n := 0
	for _, ev := range it.History {
		if ev.To == StatusRunning {
			n++
		}
	}
	return n
}

// SyncParentStatus propagates subtask state to the parent: any running
// subtask keeps the parent running, and a running parent with no running
// subtasks pauses (when every subtask is paused or idle).
func SyncParentStatus(parent *Item, now time.Time) {
	if len(parent.Subtasks) == 0 {
		return
	}

	if parent.HasRunningSubtasks() {
		parent.Start(now)
		return
	}

	if parent.Status == StatusRunning {
		parent.Pause(now)
	}
}

// Clone returns a deep copy of the item, sharing no mutable state with the
// original. Used to snapshot items for undo.
func (it *Item) Clone() *Item {
	c := *it
	if it.CompletedAt != nil {
		ts := *it.CompletedAt
		c.CompletedAt = &ts
	}
	if it.Track.RunningSince != nil {
		ts := *it.Track.RunningSince
		c.Track.RunningSince = &ts
	}
	c.Tags = append([]string(nil), it.Tags...)
	c.History = make([]StateEvent, len(it.History))
	for i, ev := range it.History {
		c.History[i] = ev
		if ev.From != nil {
			f := *ev.From
			c.History[i].From = &f
		}
	}
	c.Subtasks = make([]*Item, len(it.Subtasks))
	for i, sub := range it.Subtasks {
		c.Subtasks[i] = sub.Clone()
	}
	return &c
}
