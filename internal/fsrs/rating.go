package fsrs

import "fmt"

// Rating represents the learner's assessment of recall quality.
// Ordinal order matters: Again and Hard count as failure-leaning
// for leech detection.
type Rating int

const (
	Again Rating = iota + 1 // Complete failure to recall.
	Hard                    // Recalled with significant difficulty.
	Good                    // Recalled with some effort.
	Easy                    // Recalled effortlessly.
)

var ratingNames = [...]string{Again: "Again", Hard: "Hard", Good: "Good", Easy: "Easy"}

// IsValid reports whether r is a valid rating (Again through Easy).
func (r Rating) IsValid() bool {
	return r >= Again && r <= Easy
}

// IsFailure reports whether the rating leans toward failure.
// Again and Hard both count against the learner for leech tracking.
func (r Rating) IsFailure() bool {
	return r == Again || r == Hard
}

// String returns the name of the rating ("Again", "Hard", "Good", "Easy").
// For invalid values it returns "Rating(n)".
func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}
