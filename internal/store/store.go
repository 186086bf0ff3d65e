// Package store persists word records in SQLite. It owns the
// serialization boundary: the scheduling core only ever sees decoded
// records, and every JSON column decodes fail-soft through the core
// codecs so one corrupt row cannot take the collection down.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the database handle and provides repositories.
type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at dsn, applies the
// recommended pragmas and creates the schema if missing.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Words returns the word repository backed by this store.
func (s *Store) Words() *WordRepo {
	return &WordRepo{db: s.db}
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS words (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			word TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'NEW',
			fsrs_state TEXT NOT NULL DEFAULT '{}',
			history TEXT NOT NULL DEFAULT '[]',
			definition TEXT NOT NULL DEFAULT '{}',
			due_date INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL DEFAULT 0,
			book_id TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			lapse_count INTEGER NOT NULL DEFAULT 0,
			leech_level INTEGER NOT NULL DEFAULT 0,
			error_tags TEXT NOT NULL DEFAULT '[]',
			suspend_until INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_words_due ON words(status, due_date);
	`)
	if err != nil {
		return fmt.Errorf("create words table: %w", err)
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LEXIZ_DB environment variable
// 2. $XDG_DATA_HOME/lexiz/lexiz.db
// 3. ~/.local/share/lexiz/lexiz.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LEXIZ_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "lexiz", "lexiz.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if needed.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
