package domain

import "time"

// FlatRow is one visible row in a flattened item list. SubtaskIndex is nil
// for top-level rows.
type FlatRow struct {
	SubtaskIndex *int
	Item         *Item
	Index        int
	Depth        int
	TaskIndex    int
	IsLast       bool
}

// FlattenItems projects the item tree into display order. Subtasks of
// collapsed parents are skipped.
func FlattenItems(items []*Item) []FlatRow {
	var rows []FlatRow
	idx := 0
	for ti, item := range items {
		rows = append(rows, FlatRow{
			Item:      item,
			Index:     idx,
			Depth:     0,
			TaskIndex: ti,
		})
		idx++
		if !item.Expanded {
			continue
		}
		for si, sub := range item.Subtasks {
			s := si
			rows = append(rows, FlatRow{
				Item:         sub,
				Index:        idx,
				Depth:        1,
				IsLast:       si == len(item.Subtasks)-1,
				TaskIndex:    ti,
				SubtaskIndex: &s,
			})
			idx++
		}
	}
	return rows
}

// Totals summarizes progress over the leaves of an item list. A parent with
// subtasks delegates its contribution entirely to them, for counts and for
// durations alike.
type Totals struct {
	Estimate  time.Duration
	Elapsed   time.Duration
	Total     int
	Completed int
}

// ComputeTotals counts leaf items only. Parents with subtasks are excluded
// so finishing every subtask means finishing the task and no duration is
// counted twice.
func ComputeTotals(items []*Item) Totals {
	var t Totals
	for _, item := range items {
		if len(item.Subtasks) == 0 {
			t.Total++
			t.Estimate += item.Track.Estimate
			t.Elapsed += item.Track.Elapsed
			if item.Status == StatusDone {
				t.Completed++
			}
			continue
		}
		for _, sub := range item.Subtasks {
			t.Total++
			t.Estimate += sub.Track.Estimate
			t.Elapsed += sub.Track.Elapsed
			if sub.Status == StatusDone {
				t.Completed++
			}
		}
	}
	return t
}

// DayTotals summarizes progress over a whole day, counting active leaves
// alongside the items already moved to the done list.
func DayTotals(day *DayFile) Totals {
	t := ComputeTotals(day.Active)
	for _, item := range day.Done {
		if len(item.Subtasks) == 0 {
			t.Total++
			t.Completed++
			t.Estimate += item.Track.Estimate
			t.Elapsed += item.Track.Elapsed
			continue
		}
		for _, sub := range item.Subtasks {
			t.Total++
			t.Completed++
			t.Estimate += sub.Track.Estimate
			t.Elapsed += sub.Track.Elapsed
		}
	}
	return t
}

// FindByID searches the item tree for an item with the given identity.
// Returns the item, its parent (nil for top-level hits), and whether it was
// found.
func FindByID(items []*Item, id string) (*Item, *Item, bool) {
	for _, item := range items {
		if item.ID.String() == id {
			return item, nil, true
		}
		for _, sub := range item.Subtasks {
			if sub.ID.String() == id {
				return sub, item, true
			}
		}
	}
	return nil, nil, false
}

// FindByTitle returns the first top-level item with the given title.
func FindByTitle(items []*Item, title string) (*Item, bool) {
	for _, item := range items {
		if item.Title == title {
			return item, true
		}
	}
	return nil, false
}
