package word

import (
	"reflect"
	"testing"
	"time"

	"github.com/abhisek/lexiz/internal/fsrs"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleRecord() Record {
	r := NewRecord(42, "abandon", testNow)
	r.State = fsrs.MemoryState{Difficulty: 6, Stability: 3, Retrievability: 1, Reps: 2, Lapses: 1}
	r.Status = DeriveStatus(r.State)
	r.History.Append(fsrs.HistoryEntry{
		Timestamp: testNow.UnixMilli(), Rating: fsrs.Good,
		StateBefore: fsrs.NewMemoryState(), StateAfter: r.State, ScheduledDays: 3,
	})
	r.Definition = Definition{
		Word:     "abandon",
		Phonetic: "əˈbændən",
		Meanings: []Meaning{{Pos: "v.", Meaning: "to give up completely"}},
		Examples: []Example{{Sentence: "He abandoned the car.", Translation: "..."}},
		Source:   "local",
	}
	r.Tags = []string{"unit1"}
	r.ErrorTags = []string{"spelling"}
	r.BookID = "CET4"
	return r
}

func TestClone_DeepCopies(t *testing.T) {
	orig := sampleRecord()
	c := orig.Clone()

	// Mutate every owned nested structure on the original.
	orig.History.Append(fsrs.HistoryEntry{Timestamp: testNow.Add(time.Hour).UnixMilli(), Rating: fsrs.Again})
	orig.Tags[0] = "changed"
	orig.ErrorTags = append(orig.ErrorTags, "meaning")
	orig.Definition.Meanings[0].Meaning = "changed"
	orig.State.Reps = 99

	if c.History.Len() != 1 {
		t.Errorf("clone history grew with original: %d entries", c.History.Len())
	}
	if c.Tags[0] != "unit1" {
		t.Errorf("clone tag mutated: %q", c.Tags[0])
	}
	if len(c.ErrorTags) != 1 {
		t.Errorf("clone error tags grew: %v", c.ErrorTags)
	}
	if c.Definition.Meanings[0].Meaning != "to give up completely" {
		t.Errorf("clone definition mutated: %q", c.Definition.Meanings[0].Meaning)
	}
	if c.State.Reps != 2 {
		t.Errorf("clone state mutated: %d reps", c.State.Reps)
	}
}

func TestMarkKnown(t *testing.T) {
	r := sampleRecord()
	r.MarkKnown(testNow)

	if r.Status != StatusKnown {
		t.Errorf("Status = %v, want KNOWN", r.Status)
	}
	if r.DueDate != 0 {
		t.Errorf("DueDate = %d, want 0", r.DueDate)
	}
	if r.IsDue(testNow.Add(24 * time.Hour)) {
		t.Error("KNOWN record must never be due")
	}
}

func TestMarkKnown_IgnoresMemoryState(t *testing.T) {
	r := NewRecord(1, "cat", testNow) // NEW, never reviewed
	r.MarkKnown(testNow)
	if r.Status != StatusKnown {
		t.Errorf("Status = %v, want KNOWN regardless of prior state", r.Status)
	}
}

func TestRestoreToLearning(t *testing.T) {
	r := sampleRecord()
	r.MarkKnown(testNow)

	later := testNow.Add(48 * time.Hour)
	if !r.RestoreToLearning(later) {
		t.Fatal("RestoreToLearning from KNOWN reported no-op")
	}
	if r.Status != StatusNew {
		t.Errorf("Status = %v, want NEW", r.Status)
	}
	if r.DueDate != later.UnixMilli() {
		t.Errorf("DueDate = %d, want %d", r.DueDate, later.UnixMilli())
	}
}

func TestRestoreToLearning_NonKnownIsNoOp(t *testing.T) {
	r := sampleRecord()
	before := r.Clone()
	if r.RestoreToLearning(testNow) {
		t.Error("RestoreToLearning on non-KNOWN record reported a transition")
	}
	if r.Status != before.Status || r.DueDate != before.DueDate {
		t.Errorf("no-op mutated record: %v/%d", r.Status, r.DueDate)
	}
}

func TestUpdateStatusFromState_PreservesKnown(t *testing.T) {
	r := sampleRecord()
	r.MarkKnown(testNow)
	r.UpdateStatusFromState()
	if r.Status != StatusKnown {
		t.Errorf("derivation overrode KNOWN: %v", r.Status)
	}
}

func TestRecord_RoundTrip(t *testing.T) {
	orig := sampleRecord()
	got := DecodeRecord(orig.Encode())

	if !reflect.DeepEqual(got, orig) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, orig)
	}
}

func TestDecodeRecord_Malformed(t *testing.T) {
	got := DecodeRecord([]byte("totally broken"))
	if got.Status != StatusNew {
		t.Errorf("Status = %v, want NEW", got.Status)
	}
	if got.State != fsrs.NewMemoryState() {
		t.Errorf("State = %+v, want defaults", got.State)
	}
	if got.History.Len() != 0 {
		t.Errorf("History has %d entries, want 0", got.History.Len())
	}
}

func TestDecodeRecord_PartiallyCorrupt(t *testing.T) {
	doc := `{"id": 7, "word": "cat", "status": "MASTERED",
		"fsrsState": "broken", "history": {"also": "broken"},
		"leechLevel": 9}`
	got := DecodeRecord([]byte(doc))

	if got.ID != 7 || got.Word != "cat" {
		t.Errorf("identity lost: %d %q", got.ID, got.Word)
	}
	if got.Status != StatusKnown {
		t.Errorf("legacy status not normalized: %v", got.Status)
	}
	if got.State != fsrs.NewMemoryState() {
		t.Errorf("corrupt state not defaulted: %+v", got.State)
	}
	if got.History.Len() != 0 {
		t.Errorf("corrupt history not defaulted: %d entries", got.History.Len())
	}
	if got.LeechLevel != MaxLeechLevel {
		t.Errorf("LeechLevel = %d, want clamped to %d", got.LeechLevel, MaxLeechLevel)
	}
}

func TestIsDue(t *testing.T) {
	r := sampleRecord()
	r.DueDate = testNow.UnixMilli()
	if !r.IsDue(testNow) {
		t.Error("record due exactly now should be due")
	}
	if r.IsDue(testNow.Add(-time.Minute)) {
		t.Error("record should not be due before its due date")
	}
}

func TestIsSuspended(t *testing.T) {
	r := sampleRecord()
	r.SuspendUntil = testNow.Add(time.Hour).UnixMilli()
	if !r.IsSuspended(testNow) {
		t.Error("record inside cooldown should be suspended")
	}
	if r.IsSuspended(testNow.Add(2 * time.Hour)) {
		t.Error("record past cooldown should not be suspended")
	}
}
