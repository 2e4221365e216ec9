// Package history keeps a local SQLite log of remote commands sent by the
// CLI and the daemon.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS commands (
	id         TEXT PRIMARY KEY,
	server     TEXT NOT NULL,
	command    TEXT NOT NULL,
	ok         INTEGER NOT NULL,
	error      TEXT NOT NULL DEFAULT '',
	body_size  INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
)`

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("history store is closed")

// Entry is one recorded command.
type Entry struct {
	ID        string
	Server    string
	Command   string
	OK        bool
	Error     string
	BodySize  int
	CreatedAt time.Time
}

// Store is safe for concurrent use until Close.
type Store struct {
	db *sql.DB
}

var (
	newID = func() string { return uuid.NewString() }
	now   = time.Now
)

// Open creates (if needed) and opens the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	// one writer keeps sqlite from returning SQLITE_BUSY under the daemon
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history: %w", err)
	}
	return &Store{db: db}, nil
}

// Record stores e, filling ID and CreatedAt when empty, and returns the
// stored entry.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if s == nil || s.db == nil {
		return e, ErrClosed
	}
	if e.ID == "" {
		e.ID = newID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO commands (id, server, command, ok, error, body_size, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Server, e.Command, boolInt(e.OK), e.Error, e.BodySize, e.CreatedAt.UnixNano(),
	)
	if err != nil {
		return e, fmt.Errorf("record command: %w", err)
	}
	return e, nil
}

// List returns the most recent entries first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}
	query := `SELECT id, server, command, ok, error, body_size, created_at FROM commands ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			ok      int
			created int64
		)
		if err := rows.Scan(&e.ID, &e.Server, &e.Command, &ok, &e.Error, &e.BodySize, &created); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.OK = ok != 0
		e.CreatedAt = time.Unix(0, created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

// Flush deletes every entry and reports how many were removed.
func (s *Store) Flush(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, ErrClosed
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM commands`)
	if err != nil {
		return 0, fmt.Errorf("flush history: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
