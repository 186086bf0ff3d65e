package word

import (
	"github.com/samber/lo"

	"github.com/abhisek/lexiz/internal/fsrs"
)

// Leech thresholds. The gap between raise and lower forms a
// hysteresis band so the level does not oscillate on mixed results.
const (
	// LeechWindow is how many recent ratings the detector inspects.
	LeechWindow = 5
	// leechRaiseCount raises the level when reached within the window.
	leechRaiseCount = 4
	// leechLowerCount lowers the level when at or below it.
	leechLowerCount = 1
	// MaxLeechLevel caps the level.
	MaxLeechLevel = 3
)

// UpdateLeechLevel adjusts the leech level from the last few ratings.
// Four or more failure-leaning ratings (Again/Hard) in the window
// raise the level, one or zero lower it, anything between leaves it
// unchanged.
func (r *Record) UpdateLeechLevel(recent []fsrs.Rating) {
	failures := lo.CountBy(recent, fsrs.Rating.IsFailure)

	switch {
	case failures >= leechRaiseCount:
		r.LeechLevel = clampLeechLevel(r.LeechLevel + 1)
	case failures <= leechLowerCount:
		r.LeechLevel = clampLeechLevel(r.LeechLevel - 1)
	}
}

// IsLeech reports whether the word is chronically forgotten and should
// trigger alternate reinforcement. The detector only maintains the
// counter; reacting to it happens outside the core.
func (r Record) IsLeech() bool {
	return r.LeechLevel >= 2
}

// IncrementLapse bumps the lifetime lapse counter.
func (r *Record) IncrementLapse() {
	r.LapseCount++
}

// AddErrorTag records an error category for targeted reinforcement.
// Tags form a set: duplicates are dropped, first-seen order is kept.
func (r *Record) AddErrorTag(tag string) {
	if tag == "" || r.HasErrorTag(tag) {
		return
	}
	r.ErrorTags = append(r.ErrorTags, tag)
}

// HasErrorTag reports whether the tag was recorded before.
func (r Record) HasErrorTag(tag string) bool {
	return lo.Contains(r.ErrorTags, tag)
}

// MostFrequentError returns the error tag with the highest occurrence
// count. Ties break to the first tag that reached the maximum, in
// first-occurrence order, so the result is deterministic. Empty string
// when no tags were recorded.
func (r Record) MostFrequentError() string {
	if len(r.ErrorTags) == 0 {
		return ""
	}

	counts := make(map[string]int, len(r.ErrorTags))
	best := ""
	bestCount := 0
	for _, tag := range r.ErrorTags {
		counts[tag]++
		if counts[tag] > bestCount {
			bestCount = counts[tag]
			best = tag
		}
	}
	return best
}

func clampLeechLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxLeechLevel {
		return MaxLeechLevel
	}
	return level
}
