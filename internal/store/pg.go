// Package store provides the Postgres-backed word-list source. Only the
// word list itself lives in the database; match results are never persisted.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// PGSource loads and edits the word list from a sensitive_words table. It
// satisfies both wordlist.Source and the server's word remover.
type PGSource struct {
	db *sql.DB
}

// Open connects to dsn and verifies the connection.
func Open(dsn string) (*PGSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open word store: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping word store: %w", err)
	}
	return &PGSource{db: db}, nil
}

// NewPGSource wraps an existing handle, e.g. a test double.
func NewPGSource(db *sql.DB) *PGSource { return &PGSource{db: db} }

// EnsureSchema creates the word table when it does not exist yet.
func (s *PGSource) EnsureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS sensitive_words (
        id   BIGSERIAL PRIMARY KEY,
        word TEXT NOT NULL UNIQUE
    )`)
	if err != nil {
		return fmt.Errorf("ensure word schema: %w", err)
	}
	return nil
}

// Words returns every stored word in insertion order.
func (s *PGSource) Words() ([]string, error) {
	rows, err := s.db.Query(`SELECT word FROM sensitive_words ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan word row: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate word rows: %w", err)
	}
	return out, nil
}

// Add inserts one word, ignoring duplicates.
func (s *PGSource) Add(word string) error {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil
	}
	_, err := s.db.Exec(`INSERT INTO sensitive_words(word) VALUES ($1) ON CONFLICT (word) DO NOTHING`, word)
	if err != nil {
		return fmt.Errorf("add word: %w", err)
	}
	return nil
}

// Remove deletes the exact word. Removing an absent word is a no-op.
func (s *PGSource) Remove(word string) error {
	word = strings.ToLower(strings.TrimSpace(word))
	_, err := s.db.Exec(`DELETE FROM sensitive_words WHERE word = $1`, word)
	if err != nil {
		return fmt.Errorf("remove word: %w", err)
	}
	return nil
}

// Close releases the underlying handle.
func (s *PGSource) Close() error { return s.db.Close() }
