package app

import (
	"github.com/quvia/centre/internal/domain"
)

// undoKind tags what removed the snapshotted item.
type undoKind int

const (
	undoDone undoKind = iota
	undoDeleted
	undoArchived
)

// undoEntry is a full snapshot of an item plus where it came from, so a
// restore can put it back in roughly the right place.
// Fields are ordered to minimize memory padding.
type undoEntry struct {
	item        *domain.Item
	parentTitle string // Non-empty when the item was a subtask
	index       int    // Position in its original list
	kind        undoKind
}

// undoStack is a bounded LIFO of item snapshots. Pushing beyond capacity
// drops the oldest entry.
type undoStack struct {
	entries []undoEntry
	depth   int
}

func newUndoStack(depth int) *undoStack {
	if depth <= 0 {
		depth = domain.DefaultUndoDepth
	}
	return &undoStack{depth: depth}
}

func (s *undoStack) push(e undoEntry) {
	e.item = e.item.Clone()
	s.entries = append(s.entries, e)
	if len(s.entries) > s.depth {
		s.entries = s.entries[1:]
	}
}

func (s *undoStack) pop() (undoEntry, bool) {
	if len(s.entries) == 0 {
		return undoEntry{}, false
	}
	e := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return e, true
}

func (s *undoStack) len() int {
	return len(s.entries)
}
