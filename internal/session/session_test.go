package session

import (
	"testing"
	"time"

	"github.com/abhisek/lexiz/internal/fsrs"
	"github.com/abhisek/lexiz/internal/word"
)

var testNow = time.UnixMilli(1_700_000_000_000)

// reviewed returns a record that has been seen before, so its state no
// longer counts as new.
func reviewed(id int64, text string) word.Record {
	r := word.NewRecord(id, text, testNow)
	r.State = fsrs.MemoryState{Difficulty: 5, Stability: 2, Retrievability: 0.9, Reps: 1}
	r.Status = word.DeriveStatus(r.State)
	return r
}

func fresh(id int64, text string) word.Record {
	return word.NewRecord(id, text, testNow)
}

func queued(text string, priority int) QueueItem {
	id := int64(len(text)) // ids are irrelevant here, texts carry identity
	if priority == PriorityNew {
		return QueueItem{Word: fresh(id, text), Priority: priority}
	}
	return QueueItem{Word: reviewed(id, text), Priority: priority}
}

func queueWords(s *Session) []string {
	var out []string
	for {
		r, ok := s.Current()
		if !ok {
			break
		}
		out = append(out, r.Word)
		s.MoveNext()
	}
	return out
}

func TestAddToQueue_StableByPriority(t *testing.T) {
	s := New(testNow)
	s.AddToQueue([]QueueItem{
		queued("A", PriorityDue),
		queued("B", PriorityNew),
		queued("C", PriorityDue),
		queued("D", PriorityNew),
	})

	got := queueWords(s)
	want := []string{"A", "C", "B", "D"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("queue order = %v, want %v", got, want)
		}
	}
}

func TestAddToQueue_Incremental(t *testing.T) {
	// A due item added later still sorts ahead of earlier new items.
	s := New(testNow)
	s.AddToQueue([]QueueItem{queued("B", PriorityNew)})
	s.AddToQueue([]QueueItem{queued("A", PriorityDue)})

	r, ok := s.Current()
	if !ok || r.Word != "A" {
		t.Errorf("head of queue = %q, want %q", r.Word, "A")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestSession_CursorWalk(t *testing.T) {
	s := New(testNow)
	s.AddToQueue([]QueueItem{queued("A", PriorityDue), queued("B", PriorityNew)})

	if s.IsComplete() {
		t.Fatal("fresh session with items reported complete")
	}
	if got := s.Progress(); got != 0 {
		t.Errorf("Progress() = %d, want 0", got)
	}

	if !s.MoveNext() {
		t.Fatal("MoveNext failed with items remaining")
	}
	if got := s.Progress(); got != 50 {
		t.Errorf("Progress() after one step = %d, want 50", got)
	}
	if !s.CurrentIsNew() {
		t.Error("second item should be new")
	}

	if !s.MoveNext() {
		t.Fatal("MoveNext failed on last item")
	}
	if !s.IsComplete() {
		t.Error("session not complete after walking the queue")
	}
	if got := s.Progress(); got != 100 {
		t.Errorf("Progress() = %d, want 100", got)
	}
	if s.MoveNext() {
		t.Error("MoveNext advanced past the end")
	}
	if _, ok := s.Current(); ok {
		t.Error("Current() returned an item past the end")
	}
	if s.CurrentIsNew() {
		t.Error("CurrentIsNew() true past the end")
	}
}

func TestSession_EmptyQueue(t *testing.T) {
	s := New(testNow)
	if !s.IsComplete() {
		t.Error("empty session should be complete")
	}
	if got := s.Progress(); got != 100 {
		t.Errorf("Progress() on empty queue = %d, want 100", got)
	}
	if s.MoveNext() {
		t.Error("MoveNext moved on an empty queue")
	}
}

func TestSetCurrent(t *testing.T) {
	s := New(testNow)
	s.AddToQueue([]QueueItem{queued("A", PriorityDue)})

	r, _ := s.Current()
	r.Status = word.StatusKnown
	s.SetCurrent(r)

	got, _ := s.Current()
	if got.Status != word.StatusKnown {
		t.Error("SetCurrent did not replace the record at the cursor")
	}

	s.MoveNext()
	s.SetCurrent(word.Record{}) // past the end, must not panic
}

func TestUndo_RestoresAndConsumes(t *testing.T) {
	s := New(testNow)
	rec := reviewed(1, "abandon")
	s.AddToQueue([]QueueItem{{Word: rec, Priority: PriorityDue}})

	s.CaptureSnapshot(rec, testNow)

	// Review mutates the in-queue record.
	changed := rec
	changed.State.Stability = 42
	s.SetCurrent(changed)

	restored, ok := s.Undo(rec.ID)
	if !ok {
		t.Fatal("Undo reported no snapshot")
	}
	if restored.State.Stability != rec.State.Stability {
		t.Errorf("restored stability = %v, want pre-review %v",
			restored.State.Stability, rec.State.Stability)
	}

	if _, ok := s.Undo(rec.ID); ok {
		t.Error("second Undo for the same word succeeded")
	}
}

func TestUndo_UnknownWord(t *testing.T) {
	s := New(testNow)
	if _, ok := s.Undo(999); ok {
		t.Error("Undo succeeded for a word never captured")
	}
}

func TestCaptureSnapshot_Overwrites(t *testing.T) {
	s := New(testNow)
	rec := reviewed(1, "abandon")

	s.CaptureSnapshot(rec, testNow)
	rec.State.Stability = 42
	s.CaptureSnapshot(rec, testNow.Add(time.Minute))

	restored, ok := s.Undo(rec.ID)
	if !ok {
		t.Fatal("Undo reported no snapshot")
	}
	if restored.State.Stability != 42 {
		t.Errorf("restored stability = %v, want the later snapshot's 42",
			restored.State.Stability)
	}
}

func TestNew_DistinctIDs(t *testing.T) {
	a, b := New(testNow), New(testNow)
	if a.ID == b.ID {
		t.Error("two sessions share an ID")
	}
	if a.ID == "" {
		t.Error("session ID empty")
	}
}
