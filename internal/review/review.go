// Package review runs one review transaction against a word record:
// memory-state update, status derivation, ledger append and prune,
// leech re-evaluation and due-date computation. It is pure computation
// over supplied inputs; persistence happens outside.
package review

import (
	"time"

	"github.com/abhisek/lexiz/internal/config"
	"github.com/abhisek/lexiz/internal/fsrs"
	"github.com/abhisek/lexiz/internal/word"
)

// Outcome is the result of applying one rating to one record.
type Outcome struct {
	// Record is the updated word record, ready to persist.
	Record word.Record
	// ScheduledDays is the computed interval, letting the caller
	// derive and store the new due date independently if needed.
	ScheduledDays float64
}

// Reviewer applies ratings to records using a configured model.
type Reviewer struct {
	model fsrs.Model
}

// New creates a reviewer whose model honors the policy's learning
// steps, retention target and interval cap.
func New(p config.Policy) *Reviewer {
	m := fsrs.NewModel()
	m.MinStepMinutes = p.MinStepMinutes()
	m.MaxIntervalDays = p.MaxIntervalDays
	if p.DesiredRetention > 0 && p.DesiredRetention < 1 {
		m.TargetRetention = p.DesiredRetention
	}
	return &Reviewer{model: m}
}

// Apply runs the full review data flow on a copy of rec and returns
// the outcome. The input record is not mutated. elapsedDays is the
// time since the previous review of this word; use ElapsedDays to
// derive it from the ledger.
func (rv *Reviewer) Apply(rec word.Record, rating fsrs.Rating, elapsedDays float64, now time.Time) Outcome {
	rec = rec.Clone()

	before := rec.State
	next, scheduled := rv.model.NextState(before, rating, elapsedDays)

	rec.State = next
	if rating == fsrs.Again {
		rec.IncrementLapse()
	}
	rec.UpdateStatusFromState()

	rec.History.Append(fsrs.HistoryEntry{
		Timestamp:     now.UnixMilli(),
		Rating:        rating,
		StateBefore:   before,
		StateAfter:    next,
		ScheduledDays: scheduled,
	})
	rec.History.Prune(now)

	rec.UpdateLeechLevel(rec.History.RecentRatings(word.LeechWindow))

	rec.DueDate = now.Add(time.Duration(scheduled * 24 * float64(time.Hour))).UnixMilli()
	rec.UpdatedAt = now.UnixMilli()

	return Outcome{Record: rec, ScheduledDays: scheduled}
}

// ElapsedDays returns the days since the record's last review, from
// the most recent ledger entry. A word with no history has elapsed 0.
func ElapsedDays(rec word.Record, now time.Time) float64 {
	n := rec.History.Len()
	if n == 0 {
		return 0
	}
	last := rec.History.Entries[n-1].Timestamp
	elapsed := float64(now.UnixMilli()-last) / float64(24*time.Hour/time.Millisecond)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
