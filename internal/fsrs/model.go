package fsrs

import "math"

// Forgetting-curve shape constants. The curve R(t, S) = (1 + factor*t/S)^decay
// is calibrated so that R(S, S) = 0.9: after S days retrievability has
// decayed to exactly the 90% reference threshold.
const curveDecay = -0.5

var curveFactor = math.Pow(0.9, 1.0/curveDecay) - 1

// minStability is the floor applied after a lapse so stability never
// reaches exactly zero once a word has been reviewed.
const minStability = 0.001

// minutesPerDay converts policy step minutes into scheduling days.
const minutesPerDay = 24 * 60

// againStabilityFactor is the multiplicative drop applied on a lapse.
const againStabilityFactor = 0.5

// initialStability seeds stability on the first review of a word,
// before the multiplicative growth path applies.
var initialStability = map[Rating]float64{
	Again: minStability,
	Hard:  0.6,
	Good:  2.0,
	Easy:  5.0,
}

// growthBase scales stability growth per successful rating. The
// effective multiplier also shrinks as difficulty rises: harder words
// need more successful reps to grow stability as fast.
var growthBase = map[Rating]float64{
	Hard: 0.6,
	Good: 1.6,
	Easy: 3.0,
}

// difficultyDelta adjusts difficulty per rating, clamped to [1, 10].
var difficultyDelta = map[Rating]float64{
	Again: 1.0,
	Hard:  0.3,
	Good:  0.0,
	Easy:  -0.3,
}

// Model computes memory-state updates and review intervals. It is a
// pure calculator: no clock, no I/O, deterministic for equal inputs.
type Model struct {
	// TargetRetention is the retrievability threshold the next review
	// is scheduled at. Commonly 0.9.
	TargetRetention float64
	// MinStepMinutes is the shortest learning step; no review is
	// scheduled closer than this.
	MinStepMinutes int
	// MaxIntervalDays caps the scheduled interval.
	MaxIntervalDays int
}

// NewModel returns a model with the default scheduling policy.
func NewModel() Model {
	return Model{
		TargetRetention: 0.9,
		MinStepMinutes:  5,
		MaxIntervalDays: 365,
	}
}

// Retrievability returns the projected recall probability after
// elapsedDays given the current stability. A word with no stability
// (never successfully reviewed) is treated as fully retrievable.
func Retrievability(elapsedDays, stability float64) float64 {
	if stability <= 0 || elapsedDays <= 0 {
		return 1
	}
	return clampUnit(math.Pow(1+curveFactor*elapsedDays/stability, curveDecay))
}

// NextState applies a rating to a prior memory state and returns the
// new state plus the scheduled interval in days until the next review.
// The prior state is not mutated; retrievability is recomputed from
// elapsedDays before the rating is applied.
func (m Model) NextState(prior MemoryState, rating Rating, elapsedDays float64) (MemoryState, float64) {
	prior = prior.normalized()
	retr := Retrievability(elapsedDays, prior.Stability)

	next := prior
	next.Difficulty = clampDifficulty(prior.Difficulty + difficultyDelta[rating])
	// The word was just reviewed, so projected recall resets.
	next.Retrievability = 1

	switch {
	case rating == Again:
		next.Lapses++
		if prior.Stability > 0 {
			next.Stability = math.Max(prior.Stability*againStabilityFactor, minStability)
		} else {
			next.Stability = minStability
		}
	case prior.Stability <= 0:
		// First successful review: seed stability from the rating.
		next.Reps++
		next.Stability = initialStability[rating]
	default:
		// Growth shrinks with difficulty and grows when the word was
		// recalled near the edge of forgetting.
		next.Reps++
		growth := 1 + growthBase[rating]*(11-next.Difficulty)/10*(1+(1-retr))
		next.Stability = prior.Stability * growth
	}

	return next, m.scheduledDays(next.Stability)
}

// scheduledDays derives the interval at which retrievability is
// projected to decay to the target threshold, clamped to the
// configured minimum step and maximum interval.
func (m Model) scheduledDays(stability float64) float64 {
	target := m.TargetRetention
	if target <= 0 || target >= 1 {
		target = 0.9
	}
	ivl := stability / curveFactor * (math.Pow(target, 1.0/curveDecay) - 1)

	minDays := float64(m.MinStepMinutes) / minutesPerDay
	if ivl < minDays {
		ivl = minDays
	}
	if max := float64(m.MaxIntervalDays); m.MaxIntervalDays > 0 && ivl > max {
		ivl = max
	}
	return ivl
}
