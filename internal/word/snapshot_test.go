package word

import (
	"reflect"
	"testing"
	"time"

	"github.com/abhisek/lexiz/internal/fsrs"
)

func TestCapture_IndependentOfLiveRecord(t *testing.T) {
	rec := sampleRecord()
	snap := Capture(rec, testNow)

	// Mutate the live record after capture.
	rec.Status = StatusKnown
	rec.State.Stability = 99
	rec.History.Append(fsrs.HistoryEntry{Timestamp: testNow.UnixMilli(), Rating: fsrs.Again})
	rec.Tags[0] = "mutated"
	rec.AddErrorTag("late")

	got := snap.Restore()
	if got.Status == StatusKnown {
		t.Error("snapshot saw a status change made after capture")
	}
	if got.State.Stability == 99 {
		t.Error("snapshot saw a state change made after capture")
	}
	if got.History.Len() != 1 {
		t.Errorf("snapshot history length = %d, want 1", got.History.Len())
	}
	if got.Tags[0] == "mutated" {
		t.Error("snapshot shares the tags slice with the live record")
	}
	if got.HasErrorTag("late") {
		t.Error("snapshot saw an error tag added after capture")
	}
}

func TestCapture_Metadata(t *testing.T) {
	rec := sampleRecord()
	snap := Capture(rec, testNow)

	if snap.WordID != rec.ID {
		t.Errorf("WordID = %d, want %d", snap.WordID, rec.ID)
	}
	if snap.CapturedAt != testNow.UnixMilli() {
		t.Errorf("CapturedAt = %d, want %d", snap.CapturedAt, testNow.UnixMilli())
	}
}

func TestRestore_CopiesDoNotAlias(t *testing.T) {
	snap := Capture(sampleRecord(), testNow)

	a := snap.Restore()
	b := snap.Restore()
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two restores of the same snapshot differ")
	}

	a.Tags[0] = "changed"
	a.History.Append(fsrs.HistoryEntry{Timestamp: testNow.Add(time.Hour).UnixMilli(), Rating: fsrs.Good})
	if b.Tags[0] == "changed" {
		t.Error("restored copies share the tags slice")
	}
	if b.History.Len() != 1 {
		t.Errorf("restored copy history length = %d, want 1", b.History.Len())
	}

	// The snapshot itself survives both restores untouched.
	c := snap.Restore()
	if c.Tags[0] == "changed" || c.History.Len() != 1 {
		t.Error("mutating a restored copy changed the snapshot")
	}
}
