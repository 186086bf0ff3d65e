package word

import "time"

// Snapshot is an immutable pre-review copy of one record, enabling a
// single reversible review action. The copy is structurally
// independent: mutating the live record after capture cannot change
// what Restore returns.
type Snapshot struct {
	WordID     int64
	CapturedAt int64 // unix ms

	record Record
}

// Capture deep-copies the record, including its ledger and memory
// state, into a snapshot.
func Capture(r Record, now time.Time) Snapshot {
	return Snapshot{
		WordID:     r.ID,
		CapturedAt: now.UnixMilli(),
		record:     r.Clone(),
	}
}

// Restore returns a fresh independent copy of the captured record.
// Restoring twice yields two copies that do not alias each other.
func (s Snapshot) Restore() Record {
	return s.record.Clone()
}
