// Package history persists completed transcriptions and exposes word
// statistics over them.
package history

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded transcription. Entries are append-only; nothing in
// this package mutates or deletes them.
type Entry struct {
	ID        int64
	Timestamp time.Time // UTC
	Text      string
	Words     int
}

// Store appends transcription entries to a SQLite database. Appends are
// serialized: they arrive from worker goroutines.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at INTEGER NOT NULL,
	text       TEXT NOT NULL,
	words      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries(created_at);
`

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records one completed transcription. The word count is computed
// here so every entry carries a consistent tokenization.
func (s *Store) Append(text string, ts time.Time) (Entry, error) {
	if ts.IsZero() {
		ts = time.Now()
	}
	ts = ts.UTC()
	entry := Entry{Timestamp: ts, Text: text, Words: WordCount(text)}

	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.Exec(
		`INSERT INTO entries (created_at, text, words) VALUES (?, ?, ?)`,
		ts.UnixNano(), entry.Text, entry.Words,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("append history entry: %w", err)
	}
	entry.ID, _ = res.LastInsertId()
	return entry, nil
}

// Entries returns recorded entries, most recent first. limit <= 0 returns
// everything.
func (s *Store) Entries(limit int) ([]Entry, error) {
	query := `SELECT id, created_at, text, words FROM entries ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt int64
		if err := rows.Scan(&e.ID, &createdAt, &e.Text, &e.Words); err != nil {
			// a damaged row should not hide the rest of the history
			slog.Warn("skipping malformed history row", "error", err)
			continue
		}
		e.Timestamp = time.Unix(0, createdAt).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// TotalWordCount returns the total number of words ever transcribed.
func (s *Store) TotalWordCount() (int, error) {
	var total int
	err := s.db.QueryRow(`SELECT COALESCE(SUM(words), 0) FROM entries`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum history words: %w", err)
	}
	return total, nil
}
