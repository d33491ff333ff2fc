// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/framegrace/texeldodge/dodge"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "nested", "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournalRecordsFinishedTransitions(t *testing.T) {
	j := openTemp(t)

	from, to := dodge.WindowID(uuid.New()), dodge.WindowID(uuid.New())
	start := time.Unix(1700000000, 0)
	j.TransitionStarted(dodge.Record{From: from, To: to, Started: start})
	j.TransitionFinished(dodge.Record{
		From:      from,
		To:        to,
		Direction: dodge.Direction{X: -1.5, Y: 0.25},
		Started:   start,
		Finished:  start.Add(2 * time.Second),
		HandedOff: true,
	})
	j.TransitionFinished(dodge.Record{
		From:     to,
		To:       from,
		Started:  start.Add(5 * time.Second),
		Finished: start.Add(6 * time.Second),
		Aborted:  true,
	})
	if err := j.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	entries, err := j.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	newest, oldest := entries[0], entries[1]
	if !newest.Aborted || newest.HandedOff {
		t.Fatalf("unexpected newest entry %+v", newest)
	}
	if oldest.From != uuid.UUID(from).String() || oldest.To != uuid.UUID(to).String() {
		t.Fatalf("unexpected window ids %s -> %s", oldest.From, oldest.To)
	}
	if oldest.Direction.X != -1.5 || oldest.Direction.Y != 0.25 {
		t.Fatalf("unexpected direction %+v", oldest.Direction)
	}
	if oldest.Duration() != 2*time.Second || !oldest.HandedOff {
		t.Fatalf("unexpected oldest entry %+v", oldest)
	}
}

func TestJournalCloseDrainsQueue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	now := time.Now()
	j.TransitionFinished(dodge.Record{Started: now, Finished: now})
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := j.Recent(context.Background(), 1); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	j.TransitionFinished(dodge.Record{})

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	entries, err := reopened.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected the queued record to survive Close, got %d", len(entries))
	}
}
