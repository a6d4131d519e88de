// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/askdocs/internal/search"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound  = errors.New("history entry not found")
	ErrAmbiguous = errors.New("history id prefix is ambiguous")
	ErrClosed    = errors.New("history store is closed")
)

// =============================================================================
// ENTRY
// =============================================================================

// Entry is one answered question.
type Entry struct {
	ID            string        `json:"id"`
	Prompt        string        `json:"prompt"`
	RefinedPrompt string        `json:"refined_prompt"`
	Answer        string        `json:"answer"`
	Chunks        int           `json:"chunks"`
	Duration      time.Duration `json:"duration"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ShortID returns the first eight characters of the ID.
func (e Entry) ShortID() string {
	if len(e.ID) <= 8 {
		return e.ID
	}
	return e.ID[:8]
}

// =============================================================================
// STORE
// =============================================================================

// Store persists entries. It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("history path cannot be empty")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if path != ":memory:" {
		_ = os.Chmod(path, 0600)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return err
	}
	_, err := s.db.Exec(InitMetadata)
	return err
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) conn() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrClosed
	}
	return s.db, nil
}

// Add stores e. A missing ID or CreatedAt is filled in; the stored entry is
// returned.
func (s *Store) Add(ctx context.Context, e Entry) (Entry, error) {
	db, err := s.conn()
	if err != nil {
		return Entry{}, err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO entries (id, prompt, refined_prompt, answer, chunks, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Prompt, e.RefinedPrompt, e.Answer, e.Chunks, e.Duration.Milliseconds(), e.CreatedAt.UnixNano())
	if err != nil {
		return Entry{}, fmt.Errorf("failed to insert history entry: %w", err)
	}
	return e, nil
}

// Record implements search.Recorder.
func (s *Store) Record(ctx context.Context, ex search.Exchange) error {
	_, err := s.Add(ctx, Entry{
		Prompt:        ex.Prompt,
		RefinedPrompt: ex.RefinedPrompt,
		Answer:        ex.Answer,
		Chunks:        ex.Chunks,
		Duration:      ex.Duration,
		CreatedAt:     ex.StartedAt,
	})
	return err
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	return s.query(ctx, "", limit)
}

// Search returns entries whose prompt or answer contains q, newest first.
func (s *Store) Search(ctx context.Context, q string, limit int) ([]Entry, error) {
	return s.query(ctx, q, limit)
}

func (s *Store) query(ctx context.Context, q string, limit int) ([]Entry, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	sqlText := `SELECT id, prompt, refined_prompt, answer, chunks, duration_ms, created_at FROM entries`
	var args []any
	if q != "" {
		pattern := "%" + escapeLike(q) + "%"
		sqlText += ` WHERE prompt LIKE ? ESCAPE '\' OR answer LIKE ? ESCAPE '\'`
		args = append(args, pattern, pattern)
	}
	sqlText += ` ORDER BY created_at DESC, rowid DESC`
	if limit > 0 {
		sqlText += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns the entry whose ID starts with idPrefix.
func (s *Store) Get(ctx context.Context, idPrefix string) (Entry, error) {
	db, err := s.conn()
	if err != nil {
		return Entry{}, err
	}
	idPrefix = strings.ToLower(strings.TrimSpace(idPrefix))
	if idPrefix == "" {
		return Entry{}, ErrNotFound
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, prompt, refined_prompt, answer, chunks, duration_ms, created_at
		FROM entries WHERE substr(id, 1, ?) = ? LIMIT 2`,
		len(idPrefix), idPrefix)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var found []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return Entry{}, err
		}
		found = append(found, e)
	}
	if err := rows.Err(); err != nil {
		return Entry{}, err
	}

	switch len(found) {
	case 0:
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, idPrefix)
	case 1:
		return found[0], nil
	default:
		return Entry{}, fmt.Errorf("%w: %s", ErrAmbiguous, idPrefix)
	}
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM entries`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// =============================================================================
// HELPERS
// =============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		e          Entry
		durationMs int64
		createdAt  int64
	)
	if err := row.Scan(&e.ID, &e.Prompt, &e.RefinedPrompt, &e.Answer, &e.Chunks, &durationMs, &createdAt); err != nil {
		return Entry{}, fmt.Errorf("failed to scan history entry: %w", err)
	}
	e.Duration = time.Duration(durationMs) * time.Millisecond
	e.CreatedAt = time.Unix(0, createdAt)
	return e, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

var _ search.Recorder = (*Store)(nil)
