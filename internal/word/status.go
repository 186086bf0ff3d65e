package word

import "github.com/abhisek/lexiz/internal/fsrs"

// Status is a word's coarse learning status. All values except
// StatusKnown are derived from the memory state; StatusKnown is a
// user-forced override that excludes the word from scheduling.
type Status string

const (
	StatusNew        Status = "NEW"        // never reviewed
	StatusLearning   Status = "LEARNING"   // in initial learning steps
	StatusReview     Status = "REVIEW"     // in the long-term review cycle
	StatusRelearning Status = "RELEARNING" // lapsed, relearning
	StatusKnown      Status = "KNOWN"      // user marked as known
)

// IsValid reports whether s is one of the five statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusLearning, StatusReview, StatusRelearning, StatusKnown:
		return true
	}
	return false
}

// NormalizeStatus maps a persisted status string to a valid Status.
// Legacy values from earlier schema versions are translated; anything
// unrecognized falls back to NEW.
func NormalizeStatus(raw string) Status {
	switch s := Status(raw); {
	case s.IsValid():
		return s
	case raw == "MASTERED":
		return StatusKnown
	case raw == "SUSPENDED":
		return StatusReview
	default:
		return StatusNew
	}
}

// DeriveStatus computes the status implied by a memory state. The
// checks are ordered and the first match wins: a word with lapses but
// stability >= 1 is REVIEW, not RELEARNING. Never returns StatusKnown;
// that transition is only reachable through Record.MarkKnown.
func DeriveStatus(s fsrs.MemoryState) Status {
	switch {
	case s.Reps == 0 && s.Stability <= 0:
		return StatusNew
	case s.Lapses > 0 && s.Stability < 1:
		return StatusRelearning
	case s.Reps < 2 || s.Stability < 1:
		return StatusLearning
	default:
		return StatusReview
	}
}
