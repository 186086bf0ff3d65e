package session

import (
	"time"

	"github.com/samber/lo"

	"github.com/abhisek/lexiz/internal/config"
	"github.com/abhisek/lexiz/internal/word"
)

// Build assembles a session from candidate records under the given
// policy. Candidates are supplied externally (the core runs no
// queries): due holds words whose due date has passed, fresh holds
// never-reviewed words. KNOWN and suspended words are filtered out,
// daily quotas applied, and the queue ordered per the policy.
func Build(due, fresh []word.Record, p config.Policy, now time.Time) *Session {
	due = selectable(due, now)
	fresh = selectable(fresh, now)

	due = capLen(due, p.DailyReviewWords)
	fresh = capLen(fresh, p.DailyNewWords)
	if p.DailyTotalTasks > 0 && len(due)+len(fresh) > p.DailyTotalTasks {
		// Reviews keep precedence over new words under the total cap.
		due = capLen(due, p.DailyTotalTasks)
		fresh = capLen(fresh, p.DailyTotalTasks-len(due))
	}

	s := New(now)
	s.AddToQueue(order(due, fresh, p.Order))
	return s
}

// order maps the policy onto queue items. Priorities are sort keys
// only, so each policy chooses its own assignment; AddToQueue's stable
// sort then preserves the built order within a priority class.
func order(due, fresh []word.Record, policy config.OrderPolicy) []QueueItem {
	items := make([]QueueItem, 0, len(due)+len(fresh))

	switch policy {
	case config.OrderNewFirst:
		for _, r := range fresh {
			items = append(items, QueueItem{Word: r, Priority: PriorityDue})
		}
		for _, r := range due {
			items = append(items, QueueItem{Word: r, Priority: PriorityNew})
		}
	case config.OrderInterleaved:
		// Alternate classes under one priority; the stable sort keeps
		// the interleaving intact.
		for i := 0; i < len(due) || i < len(fresh); i++ {
			if i < len(due) {
				items = append(items, QueueItem{Word: due[i], Priority: PriorityDue})
			}
			if i < len(fresh) {
				items = append(items, QueueItem{Word: fresh[i], Priority: PriorityDue})
			}
		}
	default: // due_first
		for _, r := range due {
			items = append(items, QueueItem{Word: r, Priority: PriorityDue})
		}
		for _, r := range fresh {
			items = append(items, QueueItem{Word: r, Priority: PriorityNew})
		}
	}
	return items
}

func selectable(records []word.Record, now time.Time) []word.Record {
	return lo.Filter(records, func(r word.Record, _ int) bool {
		return !r.IsKnown() && !r.IsSuspended(now)
	})
}

func capLen(records []word.Record, limit int) []word.Record {
	if limit <= 0 {
		return nil
	}
	if len(records) > limit {
		return records[:limit]
	}
	return records
}
