// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/journal/journal.go
// Summary: SQLite journal of finished window transitions.
//
// Records are queued from the render loop without blocking and written by a
// background goroutine. The journal is history only; nothing is restored from it.

package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/framegrace/texeldodge/dodge"
)

const journalSchemaVersion = 1

const journalSchema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS transitions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    from_window TEXT NOT NULL,
    to_window TEXT NOT NULL,
    direction_x REAL NOT NULL,
    direction_y REAL NOT NULL,
    started INTEGER NOT NULL,      -- UnixNano
    finished INTEGER NOT NULL,     -- UnixNano
    handed_off INTEGER DEFAULT 0,
    aborted INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_transitions_started ON transitions(started);
`

// ErrClosed is returned by operations on a closed journal.
var ErrClosed = errors.New("journal: closed")

// Entry is one journaled transition.
type Entry struct {
	ID        int64
	From      string
	To        string
	Direction dodge.Direction
	Started   time.Time
	Finished  time.Time
	HandedOff bool
	Aborted   bool
}

// Duration returns how long the transition ran.
func (e Entry) Duration() time.Duration {
	return e.Finished.Sub(e.Started)
}

// Config holds journal settings.
type Config struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// ChannelBuffer is the size of the async write queue.
	// Default: 64
	ChannelBuffer int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(dbPath string) Config {
	return Config{DBPath: dbPath, ChannelBuffer: 64}
}

// Journal implements dodge.TransitionListener on top of SQLite.
type Journal struct {
	config Config
	db     *sql.DB

	queue   chan dodge.Record
	flushCh chan chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	closed  bool
}

// Open creates or opens the journal at dbPath.
func Open(dbPath string) (*Journal, error) {
	return OpenWithConfig(DefaultConfig(dbPath))
}

// OpenWithConfig creates a journal with custom configuration.
func OpenWithConfig(config Config) (*Journal, error) {
	if config.ChannelBuffer <= 0 {
		config.ChannelBuffer = 64
	}
	if err := os.MkdirAll(filepath.Dir(config.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := config.DBPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(2000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(journalSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := db.Exec("INSERT OR REPLACE INTO schema_version (version) VALUES (?)", journalSchemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to record schema version: %w", err)
	}

	j := &Journal{
		config:  config,
		db:      db,
		queue:   make(chan dodge.Record, config.ChannelBuffer),
		flushCh: make(chan chan struct{}),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go j.writer()
	return j, nil
}

// TransitionStarted is a no-op; only finished transitions are journaled.
func (j *Journal) TransitionStarted(rec dodge.Record) {}

// TransitionFinished queues rec without blocking. When the queue is full the
// record is dropped and logged.
func (j *Journal) TransitionFinished(rec dodge.Record) {
	if j == nil || j.closed {
		return
	}
	select {
	case j.queue <- rec:
	default:
		log.Printf("[JOURNAL] Queue full, dropping %s -> %s", rec.From, rec.To)
	}
}

// Flush blocks until every queued record is written.
func (j *Journal) Flush() error {
	if j.closed {
		return ErrClosed
	}
	done := make(chan struct{})
	j.flushCh <- done
	<-done
	return nil
}

// Close drains the queue and closes the database.
func (j *Journal) Close() error {
	if j.closed {
		return nil
	}
	j.closed = true
	close(j.stopCh)
	<-j.doneCh
	return j.db.Close()
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if j.closed {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, from_window, to_window, direction_x, direction_y, started, finished, handed_off, aborted
		FROM transitions ORDER BY started DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e                 Entry
			started, finished int64
			handedOff, abort  int
		)
		if err := rows.Scan(&e.ID, &e.From, &e.To, &e.Direction.X, &e.Direction.Y, &started, &finished, &handedOff, &abort); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		e.Started = time.Unix(0, started)
		e.Finished = time.Unix(0, finished)
		e.HandedOff = handedOff != 0
		e.Aborted = abort != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

func (j *Journal) writer() {
	defer close(j.doneCh)
	for {
		select {
		case rec := <-j.queue:
			j.insert(rec)
		case done := <-j.flushCh:
			j.drain()
			close(done)
		case <-j.stopCh:
			j.drain()
			return
		}
	}
}

func (j *Journal) drain() {
	for {
		select {
		case rec := <-j.queue:
			j.insert(rec)
		default:
			return
		}
	}
}

func (j *Journal) insert(rec dodge.Record) {
	_, err := j.db.Exec(`
		INSERT INTO transitions (from_window, to_window, direction_x, direction_y, started, finished, handed_off, aborted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.UUID(rec.From).String(), uuid.UUID(rec.To).String(),
		rec.Direction.X, rec.Direction.Y,
		rec.Started.UnixNano(), rec.Finished.UnixNano(),
		boolToInt(rec.HandedOff), boolToInt(rec.Aborted))
	if err != nil {
		log.Printf("[JOURNAL] Failed to insert transition: %v", err)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
