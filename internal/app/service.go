// Package app wires the store, policy and scheduling core into the
// operations the CLI exposes. All I/O and logging live here; the core
// packages stay pure.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/lexiz/internal/config"
	"github.com/abhisek/lexiz/internal/fsrs"
	"github.com/abhisek/lexiz/internal/review"
	"github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/store"
	"github.com/abhisek/lexiz/internal/word"
)

// ErrNoCurrentWord signals operations invoked with the session queue
// exhausted or empty.
var ErrNoCurrentWord = errors.New("app: no current word")

// Service runs learning sessions against the store.
type Service struct {
	words    *store.WordRepo
	policy   config.Policy
	reviewer *review.Reviewer
	log      *zap.Logger

	current *session.Session
}

// NewService creates a session service.
func NewService(st *store.Store, policy config.Policy, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		words:    st.Words(),
		policy:   policy,
		reviewer: review.New(policy),
		log:      log,
	}
}

// StartSession pulls due and new candidates from the store under the
// daily quotas and builds the session queue.
func (s *Service) StartSession(ctx context.Context, now time.Time) (*session.Session, error) {
	due, err := s.words.Due(ctx, now, s.policy.DailyReviewWords)
	if err != nil {
		return nil, fmt.Errorf("load due words: %w", err)
	}
	fresh, err := s.words.Fresh(ctx, s.policy.DailyNewWords)
	if err != nil {
		return nil, fmt.Errorf("load new words: %w", err)
	}

	s.current = session.Build(due, fresh, s.policy, now)
	s.log.Info("session started",
		zap.String("session_id", s.current.ID),
		zap.Int("due", len(due)),
		zap.Int("new", len(fresh)),
		zap.Int("queue", s.current.Len()),
		zap.String("order", string(s.policy.Order)))
	return s.current, nil
}

// Session returns the in-progress session, if any.
func (s *Service) Session() *session.Session {
	return s.current
}

// ReviewCurrent applies a rating to the word at the cursor: snapshot,
// model update, persist, advance. Returns the review outcome.
func (s *Service) ReviewCurrent(ctx context.Context, rating fsrs.Rating, now time.Time) (review.Outcome, error) {
	sess := s.current
	if sess == nil {
		return review.Outcome{}, ErrNoCurrentWord
	}
	rec, ok := sess.Current()
	if !ok {
		return review.Outcome{}, ErrNoCurrentWord
	}

	sess.CaptureSnapshot(rec, now)
	wasNew := sess.CurrentIsNew()

	out := s.reviewer.Apply(rec, rating, review.ElapsedDays(rec, now), now)
	if err := s.words.Save(ctx, out.Record); err != nil {
		return review.Outcome{}, fmt.Errorf("persist review: %w", err)
	}

	sess.SetCurrent(out.Record)
	sess.ReviewedCount++
	if wasNew {
		sess.NewLearnedCount++
	}
	sess.MoveNext()

	s.log.Info("word reviewed",
		zap.Int64("word_id", out.Record.ID),
		zap.String("word", out.Record.Word),
		zap.String("rating", rating.String()),
		zap.String("status", string(out.Record.Status)),
		zap.Float64("scheduled_days", out.ScheduledDays),
		zap.Int("progress", sess.Progress()))
	return out, nil
}

// UndoLast reverses the most recent review of the given word by
// persisting its pre-review snapshot. Reports ok=false when there is
// nothing to undo.
func (s *Service) UndoLast(ctx context.Context, wordID int64) (word.Record, bool, error) {
	sess := s.current
	if sess == nil {
		return word.Record{}, false, nil
	}
	restored, ok := sess.Undo(wordID)
	if !ok {
		return word.Record{}, false, nil
	}
	if err := s.words.Save(ctx, restored); err != nil {
		return word.Record{}, false, fmt.Errorf("persist undo: %w", err)
	}

	s.log.Info("review undone", zap.Int64("word_id", wordID))
	return restored, true, nil
}

// MarkCurrentKnown forces the word at the cursor out of scheduling
// and advances past it.
func (s *Service) MarkCurrentKnown(ctx context.Context, now time.Time) (word.Record, error) {
	sess := s.current
	if sess == nil {
		return word.Record{}, ErrNoCurrentWord
	}
	rec, ok := sess.Current()
	if !ok {
		return word.Record{}, ErrNoCurrentWord
	}

	rec.MarkKnown(now)
	if err := s.words.Save(ctx, rec); err != nil {
		return word.Record{}, fmt.Errorf("persist known: %w", err)
	}
	sess.SetCurrent(rec)
	sess.MoveNext()

	s.log.Info("word marked known", zap.Int64("word_id", rec.ID), zap.String("word", rec.Word))
	return rec, nil
}

// AddWord inserts a NEW record for the given text.
func (s *Service) AddWord(ctx context.Context, text, bookID string, now time.Time) (word.Record, error) {
	rec := word.NewRecord(0, text, now)
	rec.BookID = bookID
	id, err := s.words.Create(ctx, rec)
	if err != nil {
		return word.Record{}, fmt.Errorf("add word: %w", err)
	}
	rec.ID = id
	return rec, nil
}
