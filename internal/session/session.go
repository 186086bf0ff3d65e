// Package session builds and advances the ordered word queue for one
// learning session. A session is an in-memory value owned exclusively
// by its caller: it holds no persistent identity and no locking.
package session

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lexiz/internal/word"
)

// Queue priorities. These are sort keys only, not statuses.
const (
	// PriorityDue sorts due reviews (or relearning) ahead.
	PriorityDue = 0
	// PriorityNew sorts unseen words behind due reviews.
	PriorityNew = 1
)

// QueueItem pairs a word record with its ordering priority.
type QueueItem struct {
	Word     word.Record
	Priority int
}

// Session is the state of one learning run: an ordered queue, a
// cursor, counters and the per-word undo snapshots taken so far.
type Session struct {
	ID              string
	StartTime       time.Time
	ReviewedCount   int
	NewLearnedCount int

	queue     []QueueItem
	cursor    int
	snapshots map[int64]word.Snapshot
}

// New creates an empty session starting now.
func New(now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		StartTime: now,
		snapshots: make(map[int64]word.Snapshot),
	}
}

// AddToQueue appends items and re-sorts the whole queue by priority.
// The sort is stable: items of equal priority keep their insertion
// order, so queue construction is reproducible.
func (s *Session) AddToQueue(items []QueueItem) {
	s.queue = append(s.queue, items...)
	sort.SliceStable(s.queue, func(i, j int) bool {
		return s.queue[i].Priority < s.queue[j].Priority
	})
}

// Len returns the queue length.
func (s *Session) Len() int {
	return len(s.queue)
}

// Current returns a copy of the word at the cursor. Reports false
// once the cursor has advanced past the end.
func (s *Session) Current() (word.Record, bool) {
	if s.cursor >= len(s.queue) {
		return word.Record{}, false
	}
	return s.queue[s.cursor].Word, true
}

// CurrentIsNew reports whether the item at the cursor is a word that
// has never been reviewed. Derived from the record, not the sort key:
// ordering policies reassign priorities freely.
func (s *Session) CurrentIsNew() bool {
	if s.cursor >= len(s.queue) {
		return false
	}
	return s.queue[s.cursor].Word.State.IsNew()
}

// SetCurrent replaces the record at the cursor, typically with the
// updated record returned by a review. No-op past the end.
func (s *Session) SetCurrent(r word.Record) {
	if s.cursor >= len(s.queue) {
		return
	}
	s.queue[s.cursor].Word = r
}

// MoveNext advances the cursor by one and reports whether it moved.
// The cursor stops one past the last item, where IsComplete is true.
func (s *Session) MoveNext() bool {
	if s.cursor >= len(s.queue) {
		return false
	}
	s.cursor++
	return true
}

// IsComplete reports whether the cursor has passed the end.
func (s *Session) IsComplete() bool {
	return s.cursor >= len(s.queue)
}

// Progress returns the completed percentage, rounded. An empty queue
// reports 100: there is nothing left to do, which is distinct from 0%
// of a non-empty queue.
func (s *Session) Progress() int {
	if len(s.queue) == 0 {
		return 100
	}
	return int(float64(s.cursor)/float64(len(s.queue))*100 + 0.5)
}

// CaptureSnapshot stores an undo snapshot for the record, overwriting
// any earlier snapshot for the same word. Each word keeps at most one;
// only its own review can be undone, there is no multi-step stack.
func (s *Session) CaptureSnapshot(r word.Record, now time.Time) {
	s.snapshots[r.ID] = word.Capture(r, now)
}

// SnapshotFor returns the stored snapshot for a word, if any.
func (s *Session) SnapshotFor(wordID int64) (word.Snapshot, bool) {
	snap, ok := s.snapshots[wordID]
	return snap, ok
}

// Undo restores the snapshot for a word and consumes it. Reports
// false, with no other effect, when no snapshot exists: undoing past
// the last captured snapshot is a signaled no-op, not a failure.
func (s *Session) Undo(wordID int64) (word.Record, bool) {
	snap, ok := s.snapshots[wordID]
	if !ok {
		return word.Record{}, false
	}
	delete(s.snapshots, wordID)
	return snap.Restore(), true
}
