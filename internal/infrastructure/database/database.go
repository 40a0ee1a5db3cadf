package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// JSON arrays for all list fields; membership lookups use json_each.
const schema = `
CREATE TABLE IF NOT EXISTS entries (
  ent_seq  INTEGER PRIMARY KEY,
  rebs     TEXT NOT NULL, -- JSON array of readings
  kebs     TEXT NULL      -- JSON array of kanji forms or NULL
);

CREATE TABLE IF NOT EXISTS senses (
  id           INTEGER PRIMARY KEY AUTOINCREMENT,
  ent_seq      INTEGER NOT NULL REFERENCES entries(ent_seq) ON DELETE CASCADE,
  sense_order  INTEGER NOT NULL,
  pos          TEXT,  -- JSON array of strings
  xref         TEXT,  -- JSON array of strings
  gloss        TEXT   -- JSON array of strings
);

CREATE INDEX IF NOT EXISTS idx_senses_entry ON senses(ent_seq);
`

// Connect opens the sqlite store at path, creating it if absent, and ensures
// the schema exists. The returned cleanup closes the handle.
func Connect(path string) (*sql.DB, func(), error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("init schema: %w", err)
	}

	return db, func() { _ = db.Close() }, nil
}

// Reset destroys the store at path together with its -wal and -shm companion
// files and creates an empty one in its place. Safe to call when no store
// exists yet.
func Reset(path string) error {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", p, err)
		}
	}

	_, cleanup, err := Connect(path)
	if err != nil {
		return fmt.Errorf("create empty store: %w", err)
	}
	cleanup()
	return nil
}
