// Package journal records schedule lifecycle events in a small sqlite
// database under the config directory: arming, firing, cancellation and
// every cancel attempt. Retries are unbounded by protocol, so the journal
// is the only place where credential guessing becomes visible.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Kind classifies a journal entry.
type Kind string

const (
	KindScheduled  Kind = "scheduled"
	KindFired      Kind = "fired"
	KindCancelled  Kind = "cancelled"
	KindAttemptOK  Kind = "attempt_ok"
	KindAttemptBad Kind = "attempt_bad"
)

// Entry is one recorded event.
type Entry struct {
	ID     int64
	At     time.Time
	Kind   Kind
	Detail string
}

// Journal is an append-only event log. Only the primary writes to it, so
// there is a single writer per database file.
type Journal struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	at     INTEGER NOT NULL,
	kind   TEXT    NOT NULL,
	detail TEXT    NOT NULL DEFAULT ''
);`

// Open opens or creates the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Record appends an event. Safe on a nil journal (journaling disabled).
func (j *Journal) Record(kind Kind, detail string) error {
	if j == nil {
		return nil
	}
	_, err := j.db.Exec(
		"INSERT INTO events (at, kind, detail) VALUES (?, ?, ?)",
		time.Now().UnixNano(), string(kind), detail,
	)
	return err
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if j == nil {
		return nil, nil
	}
	rows, err := j.db.Query(
		"SELECT id, at, kind, detail FROM events ORDER BY id DESC LIMIT ?", limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			at int64
		)
		if err := rows.Scan(&e.ID, &at, &e.Kind, &e.Detail); err != nil {
			return nil, err
		}
		e.At = time.Unix(0, at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database. Safe on a nil journal.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	return j.db.Close()
}
