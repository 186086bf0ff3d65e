package word

import (
	"encoding/json"
	"time"

	"github.com/abhisek/lexiz/internal/fsrs"
)

// Record is the unit of scheduling: one vocabulary word with its
// memory state, review ledger and leech-tracking fields. Records move
// across the core boundary by value; the core never holds a reference
// into persisted storage.
type Record struct {
	ID           int64             `json:"id"`
	Word         string            `json:"word"`
	Status       Status            `json:"status"`
	State        fsrs.MemoryState  `json:"fsrsState"`
	History      fsrs.History      `json:"history"`
	Definition   Definition        `json:"definition"`
	DueDate      int64             `json:"dueDate"` // unix ms; 0 when KNOWN
	CreatedAt    int64             `json:"createdAt"`
	UpdatedAt    int64             `json:"updatedAt"`
	BookID       string            `json:"bookId"`
	Tags         []string          `json:"tags"`
	LapseCount   int               `json:"lapseCount"`
	LeechLevel   int               `json:"leechLevel"` // 0..3
	ErrorTags    []string          `json:"errorTags"`
	SuspendUntil int64             `json:"suspendUntil"` // unix ms, leech cooldown
}

// NewRecord creates a NEW record due immediately.
func NewRecord(id int64, text string, now time.Time) Record {
	ms := now.UnixMilli()
	return Record{
		ID:        id,
		Word:      text,
		Status:    StatusNew,
		State:     fsrs.NewMemoryState(),
		History:   fsrs.NewHistory(),
		DueDate:   ms,
		CreatedAt: ms,
		UpdatedAt: ms,
	}
}

// Clone returns a deep copy of the record. Every owned nested
// structure is copied transitively so a snapshot cannot be corrupted
// by later mutation of the live record.
func (r Record) Clone() Record {
	out := r
	out.State = r.State.Clone()
	out.History = r.History.Clone()
	out.Definition = r.Definition.Clone()
	if r.Tags != nil {
		out.Tags = make([]string, len(r.Tags))
		copy(out.Tags, r.Tags)
	}
	if r.ErrorTags != nil {
		out.ErrorTags = make([]string, len(r.ErrorTags))
		copy(out.ErrorTags, r.ErrorTags)
	}
	return out
}

// IsDue reports whether the record is due for review at now.
// KNOWN records are never due.
func (r Record) IsDue(now time.Time) bool {
	if r.Status == StatusKnown {
		return false
	}
	return r.DueDate <= now.UnixMilli()
}

// IsSuspended reports whether the record is in a leech cooldown.
func (r Record) IsSuspended(now time.Time) bool {
	return r.SuspendUntil > now.UnixMilli()
}

// IsKnown reports whether the user forced the record out of scheduling.
func (r Record) IsKnown() bool {
	return r.Status == StatusKnown
}

// UpdateStatusFromState recomputes the derived status from the memory
// state. The KNOWN override is preserved; it can only be left through
// RestoreToLearning.
func (r *Record) UpdateStatusFromState() {
	if r.Status == StatusKnown {
		return
	}
	r.Status = DeriveStatus(r.State)
}

// MarkKnown forces the record out of scheduling regardless of memory
// state. DueDate 0 excludes it from all due queries.
func (r *Record) MarkKnown(now time.Time) {
	r.Status = StatusKnown
	r.DueDate = 0
	r.UpdatedAt = now.UnixMilli()
}

// RestoreToLearning is the only transition out of KNOWN: the record
// returns to NEW and becomes due immediately. On a non-KNOWN record it
// is a no-op and reports false.
func (r *Record) RestoreToLearning(now time.Time) bool {
	if r.Status != StatusKnown {
		return false
	}
	r.Status = StatusNew
	r.DueDate = now.UnixMilli()
	r.UpdatedAt = now.UnixMilli()
	return true
}

// Encode serializes the record to JSON for persistence.
func (r Record) Encode() []byte {
	aux := recordJSON{
		ID:           r.ID,
		Word:         r.Word,
		Status:       string(r.Status),
		State:        json.RawMessage(r.State.Encode()),
		History:      json.RawMessage(r.History.Encode()),
		Definition:   json.RawMessage(r.Definition.Encode()),
		DueDate:      r.DueDate,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		BookID:       r.BookID,
		Tags:         r.Tags,
		LapseCount:   r.LapseCount,
		LeechLevel:   r.LeechLevel,
		ErrorTags:    r.ErrorTags,
		SuspendUntil: r.SuspendUntil,
	}
	b, err := json.Marshal(aux)
	if err != nil {
		return []byte("{}")
	}
	return b
}

// DecodeRecord parses a persisted record, substituting defaults for
// anything missing or malformed. It never fails: a fully corrupt
// document yields a default NEW record.
func DecodeRecord(data []byte) Record {
	var aux recordJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return NewRecord(0, "", time.UnixMilli(0))
	}

	r := Record{
		ID:           aux.ID,
		Word:         aux.Word,
		Status:       NormalizeStatus(aux.Status),
		State:        fsrs.DecodeMemoryState(aux.State),
		History:      fsrs.DecodeHistory(aux.History),
		Definition:   DecodeDefinition(aux.Definition),
		DueDate:      aux.DueDate,
		CreatedAt:    aux.CreatedAt,
		UpdatedAt:    aux.UpdatedAt,
		BookID:       aux.BookID,
		Tags:         aux.Tags,
		LapseCount:   aux.LapseCount,
		LeechLevel:   clampLeechLevel(aux.LeechLevel),
		ErrorTags:    aux.ErrorTags,
		SuspendUntil: aux.SuspendUntil,
	}
	return r
}

// recordJSON keeps nested payloads as raw JSON so each decodes through
// its own fail-soft path independently.
type recordJSON struct {
	ID           int64           `json:"id"`
	Word         string          `json:"word"`
	Status       string          `json:"status"`
	State        json.RawMessage `json:"fsrsState"`
	History      json.RawMessage `json:"history"`
	Definition   json.RawMessage `json:"definition"`
	DueDate      int64           `json:"dueDate"`
	CreatedAt    int64           `json:"createdAt"`
	UpdatedAt    int64           `json:"updatedAt"`
	BookID       string          `json:"bookId"`
	Tags         []string        `json:"tags"`
	LapseCount   int             `json:"lapseCount"`
	LeechLevel   int             `json:"leechLevel"`
	ErrorTags    []string        `json:"errorTags"`
	SuspendUntil int64           `json:"suspendUntil"`
}
