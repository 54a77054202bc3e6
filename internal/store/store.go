// Package store persists notes and settings in a single SQLite file.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNoteNotFound is returned by operations addressing a note id that does
// not exist.
var ErrNoteNotFound = errors.New("note not found")

// Store locates the data directory holding notary.db.
type Store struct {
	Dir string
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, "notary.db")
}

// Ensure creates the data directory if missing.
func (s Store) Ensure() error {
	if s.Dir == "" {
		return errors.New("store dir not set")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

// Open opens the database, applies pragmas and runs migrations. The caller
// owns the returned handle.
func (s Store) Open(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.dbPath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when CLI and TUI overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		mode TEXT NOT NULL DEFAULT 'text',
		pos_x INTEGER NOT NULL,
		pos_y INTEGER NOT NULL,
		width INTEGER NOT NULL DEFAULT 300,
		height INTEGER NOT NULL DEFAULT 200,
		opacity REAL NOT NULL DEFAULT 0.95,
		is_open INTEGER NOT NULL DEFAULT 1,
		is_minimized INTEGER NOT NULL DEFAULT 0,
		always_on_top INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`); err != nil {
		return err
	}

	// Additive migrations for databases created before these columns existed.
	// Errors are expected when the column is already present.
	_, _ = db.ExecContext(ctx, `ALTER TABLE notes ADD COLUMN title TEXT NOT NULL DEFAULT ''`)
	_, _ = db.ExecContext(ctx, `ALTER TABLE notes ADD COLUMN mode TEXT NOT NULL DEFAULT 'text'`)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO settings (key, value) VALUES ('theme', 'light')`); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO settings (key, value) VALUES ('default_opacity', '0.95')`); err != nil {
		return err
	}
	return nil
}
