package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/abhisek/lexiz/internal/fsrs"
	"github.com/abhisek/lexiz/internal/word"
)

// WordRepo handles database operations for word records.
type WordRepo struct {
	db *sqlx.DB
}

// wordRow is the flat database shape of a record. Nested structures
// live in JSON columns and decode through the core's fail-soft codecs.
type wordRow struct {
	ID           int64  `db:"id"`
	Word         string `db:"word"`
	Status       string `db:"status"`
	FSRSState    string `db:"fsrs_state"`
	History      string `db:"history"`
	Definition   string `db:"definition"`
	DueDate      int64  `db:"due_date"`
	CreatedAt    int64  `db:"created_at"`
	UpdatedAt    int64  `db:"updated_at"`
	BookID       string `db:"book_id"`
	Tags         string `db:"tags"`
	LapseCount   int    `db:"lapse_count"`
	LeechLevel   int    `db:"leech_level"`
	ErrorTags    string `db:"error_tags"`
	SuspendUntil int64  `db:"suspend_until"`
}

func toRow(r word.Record) wordRow {
	return wordRow{
		ID:           r.ID,
		Word:         r.Word,
		Status:       string(r.Status),
		FSRSState:    string(r.State.Encode()),
		History:      string(r.History.Encode()),
		Definition:   string(r.Definition.Encode()),
		DueDate:      r.DueDate,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		BookID:       r.BookID,
		Tags:         encodeStrings(r.Tags),
		LapseCount:   r.LapseCount,
		LeechLevel:   r.LeechLevel,
		ErrorTags:    encodeStrings(r.ErrorTags),
		SuspendUntil: r.SuspendUntil,
	}
}

func (row wordRow) toRecord() word.Record {
	return word.Record{
		ID:           row.ID,
		Word:         row.Word,
		Status:       word.NormalizeStatus(row.Status),
		State:        fsrs.DecodeMemoryState([]byte(row.FSRSState)),
		History:      fsrs.DecodeHistory([]byte(row.History)),
		Definition:   word.DecodeDefinition([]byte(row.Definition)),
		DueDate:      row.DueDate,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		BookID:       row.BookID,
		Tags:         decodeStrings(row.Tags),
		LapseCount:   row.LapseCount,
		LeechLevel:   row.LeechLevel,
		ErrorTags:    decodeStrings(row.ErrorTags),
		SuspendUntil: row.SuspendUntil,
	}
}

// Create inserts a new record and returns its assigned ID.
func (r *WordRepo) Create(ctx context.Context, rec word.Record) (int64, error) {
	row := toRow(rec)
	res, err := r.db.NamedExecContext(ctx, `
		INSERT INTO words (word, status, fsrs_state, history, definition,
			due_date, created_at, updated_at, book_id, tags,
			lapse_count, leech_level, error_tags, suspend_until)
		VALUES (:word, :status, :fsrs_state, :history, :definition,
			:due_date, :created_at, :updated_at, :book_id, :tags,
			:lapse_count, :leech_level, :error_tags, :suspend_until)`,
		row)
	if err != nil {
		return 0, fmt.Errorf("insert word: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert word id: %w", err)
	}
	return id, nil
}

// Save writes an existing record back by ID.
func (r *WordRepo) Save(ctx context.Context, rec word.Record) error {
	row := toRow(rec)
	_, err := r.db.NamedExecContext(ctx, `
		UPDATE words SET word = :word, status = :status,
			fsrs_state = :fsrs_state, history = :history,
			definition = :definition, due_date = :due_date,
			created_at = :created_at, updated_at = :updated_at,
			book_id = :book_id, tags = :tags,
			lapse_count = :lapse_count, leech_level = :leech_level,
			error_tags = :error_tags, suspend_until = :suspend_until
		WHERE id = :id`,
		row)
	if err != nil {
		return fmt.Errorf("save word %d: %w", rec.ID, err)
	}
	return nil
}

// ByID returns the record with the given ID. Reports found=false when
// no such row exists.
func (r *WordRepo) ByID(ctx context.Context, id int64) (word.Record, bool, error) {
	var row wordRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM words WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return word.Record{}, false, nil
	}
	if err != nil {
		return word.Record{}, false, fmt.Errorf("get word %d: %w", id, err)
	}
	return row.toRecord(), true, nil
}

// Due returns non-KNOWN records whose due date has passed, oldest due
// first, capped at limit.
func (r *WordRepo) Due(ctx context.Context, now time.Time, limit int) ([]word.Record, error) {
	var rows []wordRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT * FROM words
		WHERE status NOT IN ('NEW', 'KNOWN') AND due_date <= ?
		ORDER BY due_date ASC
		LIMIT ?`,
		now.UnixMilli(), limit)
	if err != nil {
		return nil, fmt.Errorf("query due words: %w", err)
	}
	return toRecords(rows), nil
}

// Fresh returns NEW records in insertion order, capped at limit.
func (r *WordRepo) Fresh(ctx context.Context, limit int) ([]word.Record, error) {
	var rows []wordRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT * FROM words
		WHERE status = 'NEW'
		ORDER BY id ASC
		LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("query new words: %w", err)
	}
	return toRecords(rows), nil
}

// All returns every record, ordered by word text.
func (r *WordRepo) All(ctx context.Context) ([]word.Record, error) {
	var rows []wordRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM words ORDER BY word ASC"); err != nil {
		return nil, fmt.Errorf("query all words: %w", err)
	}
	return toRecords(rows), nil
}

// CountByStatus returns the number of records per status.
func (r *WordRepo) CountByStatus(ctx context.Context) (map[word.Status]int, error) {
	rows, err := r.db.QueryxContext(ctx, "SELECT status, COUNT(*) FROM words GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[word.Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[word.NormalizeStatus(status)] = n
	}
	return counts, rows.Err()
}

// CountReviewedSince returns how many words were reviewed at or after
// the given time, by their last-update timestamp.
func (r *WordRepo) CountReviewedSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM words
		WHERE status NOT IN ('NEW', 'KNOWN') AND updated_at >= ?`,
		since.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("count reviewed words: %w", err)
	}
	return n, nil
}

func encodeStrings(s []string) string {
	if len(s) == 0 {
		return "[]"
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeStrings(raw string) []string {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func toRecords(rows []wordRow) []word.Record {
	records := make([]word.Record, len(rows))
	for i, row := range rows {
		records[i] = row.toRecord()
	}
	return records
}
