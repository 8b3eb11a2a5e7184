// Package history keeps a journal of the changes made from the panel in a
// small SQLite database, so a user can see what was switched and when.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite"

	"github.com/yllada/xfce-gala-settings/common"
)

// Subject names for window manager changes. Preference changes use the
// setting's short name.
const SubjectWindowManager = "window-manager"

const schema = `
CREATE TABLE IF NOT EXISTS changes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT    NOT NULL,
	changed_at INTEGER NOT NULL,
	subject    TEXT    NOT NULL,
	old_value  TEXT    NOT NULL,
	new_value  TEXT    NOT NULL,
	note       TEXT    NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_changes_changed_at ON changes(changed_at);
`

// Change is one journal row.
type Change struct {
	ID        int64
	SessionID string
	ChangedAt time.Time
	Subject   string
	OldValue  string
	NewValue  string
	// Note carries a non-fatal failure, such as a replace command that
	// could not be started.
	Note string
}

// Journal is an append-only change log.
type Journal struct {
	db *sql.DB
}

// DefaultPath returns the journal location in the XDG state directory.
func DefaultPath() string {
	return filepath.Join(xdg.StateHome, common.ConfigDirName, common.HistoryFileName)
}

// Open opens or creates the journal at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	// One writer, one process.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history: %w", err)
	}
	return &Journal{db: db}, nil
}

// Record appends c. A zero ChangedAt is stamped with the current time.
func (j *Journal) Record(ctx context.Context, c Change) error {
	if c.ChangedAt.IsZero() {
		c.ChangedAt = time.Now()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO changes (session_id, changed_at, subject, old_value, new_value, note)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.SessionID, c.ChangedAt.UnixMilli(), c.Subject, c.OldValue, c.NewValue, c.Note)
	if err != nil {
		return fmt.Errorf("recording change: %w", err)
	}
	return nil
}

// Recent returns up to limit changes, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Change, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, session_id, changed_at, subject, old_value, new_value, note
		 FROM changes ORDER BY changed_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []Change
	for rows.Next() {
		var c Change
		var ms int64
		if err := rows.Scan(&c.ID, &c.SessionID, &ms, &c.Subject, &c.OldValue, &c.NewValue, &c.Note); err != nil {
			return nil, fmt.Errorf("reading history: %w", err)
		}
		c.ChangedAt = time.UnixMilli(ms)
		out = append(out, c)
	}
	return out, rows.Err()
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}
