package fsrs

import "encoding/json"

// Defaults for a memory state that has never been reviewed.
const (
	DefaultDifficulty     = 5.0
	DefaultStability      = 0.0
	DefaultRetrievability = 1.0
)

// MemoryState holds the FSRS memory variables for a single word.
// Values are immutable once produced: every review yields a new
// MemoryState, so history can keep both before and after copies.
type MemoryState struct {
	Difficulty     float64 `json:"difficulty"`     // D: [1, 10]
	Stability      float64 `json:"stability"`      // S: days until R decays to 0.9
	Retrievability float64 `json:"retrievability"` // R: recall probability [0, 1]
	Reps           int     `json:"reps"`           // successful reviews
	Lapses         int     `json:"lapses"`         // times forgotten
}

// NewMemoryState returns the default state for a word that has never
// been reviewed (reps=0, stability=0).
func NewMemoryState() MemoryState {
	return MemoryState{
		Difficulty:     DefaultDifficulty,
		Stability:      DefaultStability,
		Retrievability: DefaultRetrievability,
	}
}

// IsNew reports whether the state has never seen a successful review.
func (s MemoryState) IsNew() bool {
	return s.Reps == 0 && s.Stability <= 0
}

// Clone returns a copy of the state. MemoryState has value semantics
// already; the method exists so aggregates can clone uniformly.
func (s MemoryState) Clone() MemoryState {
	return s
}

// normalized clamps all fields into their valid ranges. Out-of-range
// values are a normal consequence of model extremes or stale persisted
// data, corrected silently rather than reported.
func (s MemoryState) normalized() MemoryState {
	s.Difficulty = clampDifficulty(s.Difficulty)
	s.Retrievability = clampUnit(s.Retrievability)
	if s.Stability < 0 {
		s.Stability = 0
	}
	if s.Reps < 0 {
		s.Reps = 0
	}
	if s.Lapses < 0 {
		s.Lapses = 0
	}
	return s
}

// Encode serializes the state to JSON for persistence.
func (s MemoryState) Encode() []byte {
	b, err := json.Marshal(s)
	if err != nil {
		// A struct of numbers cannot fail to marshal.
		return []byte("{}")
	}
	return b
}

// DecodeMemoryState parses a persisted state. Missing fields take their
// documented defaults and malformed input yields the default state;
// decoding never fails so history stays readable past a corrupt row.
func DecodeMemoryState(data []byte) MemoryState {
	aux := struct {
		Difficulty     *float64 `json:"difficulty"`
		Stability      *float64 `json:"stability"`
		Retrievability *float64 `json:"retrievability"`
		Reps           *int     `json:"reps"`
		Lapses         *int     `json:"lapses"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return NewMemoryState()
	}
	s := NewMemoryState()
	if aux.Difficulty != nil {
		s.Difficulty = *aux.Difficulty
	}
	if aux.Stability != nil {
		s.Stability = *aux.Stability
	}
	if aux.Retrievability != nil {
		s.Retrievability = *aux.Retrievability
	}
	if aux.Reps != nil {
		s.Reps = *aux.Reps
	}
	if aux.Lapses != nil {
		s.Lapses = *aux.Lapses
	}
	return s.normalized()
}

func clampDifficulty(d float64) float64 {
	if d < 1 {
		return 1
	}
	if d > 10 {
		return 10
	}
	return d
}

func clampUnit(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
