package fsrs

import (
	"encoding/json"
	"time"
)

// History retention policy. The two caps are independent: the day
// window filter runs first, then the item cap keeps the most recent.
const (
	MaxHistoryItems = 200
	MaxHistoryDays  = 365
)

// HistoryEntry records one review: the rating given and the memory
// state on both sides of it. Entries are never mutated after creation.
type HistoryEntry struct {
	Timestamp     int64       `json:"timestamp"` // unix ms
	Rating        Rating      `json:"rating"`
	StateBefore   MemoryState `json:"stateBefore"`
	StateAfter    MemoryState `json:"stateAfter"`
	ScheduledDays float64     `json:"scheduledDays"`
}

// History is the bounded, append-only review ledger for one word.
// Insertion order is chronological order.
type History struct {
	Entries []HistoryEntry
}

// NewHistory returns an empty ledger.
func NewHistory() History {
	return History{}
}

// Append adds an entry to the end of the ledger.
func (h *History) Append(e HistoryEntry) {
	h.Entries = append(h.Entries, e)
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.Entries)
}

// RemoveLast pops and returns the most recent entry, for undo.
// Reports false when the ledger is empty. Entries are never removed
// from the middle.
func (h *History) RemoveLast() (HistoryEntry, bool) {
	if len(h.Entries) == 0 {
		return HistoryEntry{}, false
	}
	last := h.Entries[len(h.Entries)-1]
	h.Entries = h.Entries[:len(h.Entries)-1]
	return last, true
}

// Prune drops entries older than MaxHistoryDays, then trims to the
// most recent MaxHistoryItems. Returns the number removed. Idempotent:
// pruning an already-pruned ledger removes nothing.
func (h *History) Prune(now time.Time) int {
	cutoff := now.UnixMilli() - int64(MaxHistoryDays)*24*int64(time.Hour/time.Millisecond)

	recent := h.Entries[:0:0]
	for _, e := range h.Entries {
		if e.Timestamp >= cutoff {
			recent = append(recent, e)
		}
	}

	removed := len(h.Entries) - len(recent)
	if len(recent) > MaxHistoryItems {
		removed += len(recent) - MaxHistoryItems
		recent = recent[len(recent)-MaxHistoryItems:]
	}
	h.Entries = recent
	return removed
}

// RecentRatings returns the ratings of the last n entries in
// chronological order. Used as the leech-detection window.
func (h *History) RecentRatings(n int) []Rating {
	entries := h.Entries
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	ratings := make([]Rating, len(entries))
	for i, e := range entries {
		ratings[i] = e.Rating
	}
	return ratings
}

// Clone returns a deep copy of the ledger.
func (h History) Clone() History {
	if h.Entries == nil {
		return History{}
	}
	entries := make([]HistoryEntry, len(h.Entries))
	copy(entries, h.Entries)
	return History{Entries: entries}
}

// Encode serializes the ledger to a JSON array for persistence.
func (h History) Encode() []byte {
	if h.Entries == nil {
		return []byte("[]")
	}
	b, err := json.Marshal(h.Entries)
	if err != nil {
		return []byte("[]")
	}
	return b
}

// MarshalJSON implements json.Marshaler. The ledger serializes as a
// plain array of entries.
func (h History) MarshalJSON() ([]byte, error) {
	return h.Encode(), nil
}

// UnmarshalJSON implements json.Unmarshaler with the same fail-soft
// behavior as DecodeHistory. It never returns an error.
func (h *History) UnmarshalJSON(data []byte) error {
	*h = DecodeHistory(data)
	return nil
}

// DecodeHistory parses a persisted ledger. A malformed document yields
// an empty ledger and a corrupt individual entry is dropped rather
// than failing the whole ledger, so history stays available.
func DecodeHistory(data []byte) History {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return NewHistory()
	}

	h := History{Entries: make([]HistoryEntry, 0, len(raw))}
	for _, r := range raw {
		e, ok := decodeHistoryEntry(r)
		if !ok {
			continue
		}
		h.Entries = append(h.Entries, e)
	}
	return h
}

func decodeHistoryEntry(data []byte) (HistoryEntry, bool) {
	aux := struct {
		Timestamp     *int64          `json:"timestamp"`
		Rating        *int            `json:"rating"`
		StateBefore   json.RawMessage `json:"stateBefore"`
		StateAfter    json.RawMessage `json:"stateAfter"`
		ScheduledDays *float64        `json:"scheduledDays"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return HistoryEntry{}, false
	}
	if aux.Timestamp == nil || aux.Rating == nil || !Rating(*aux.Rating).IsValid() {
		return HistoryEntry{}, false
	}

	e := HistoryEntry{
		Timestamp:   *aux.Timestamp,
		Rating:      Rating(*aux.Rating),
		StateBefore: DecodeMemoryState(aux.StateBefore),
		StateAfter:  DecodeMemoryState(aux.StateAfter),
	}
	if aux.ScheduledDays != nil {
		e.ScheduledDays = *aux.ScheduledDays
	}
	return e, true
}
