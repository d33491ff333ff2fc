// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texel-dodge/journal.go
// Summary: Lists recent journaled transitions as YAML.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/framegrace/texeldodge/config"
	"github.com/framegrace/texeldodge/internal/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List recently finished transitions",
	RunE:  runJournal,
}

func init() {
	journalCmd.Flags().Int("limit", 20, "Maximum number of entries")
	journalCmd.Flags().String("path", "", "Journal database (default from config)")
}

// JournalRow is the YAML view of one journal entry.
type JournalRow struct {
	ID         int64   `yaml:"id"`
	From       string  `yaml:"from"`
	To         string  `yaml:"to"`
	DirectionX float64 `yaml:"direction_x"`
	DirectionY float64 `yaml:"direction_y"`
	Started    string  `yaml:"started"`
	DurationMS int64   `yaml:"duration_ms"`
	HandedOff  bool    `yaml:"handed_off"`
	Aborted    bool    `yaml:"aborted"`
}

func journalRows(entries []journal.Entry) []JournalRow {
	rows := make([]JournalRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, JournalRow{
			ID:         e.ID,
			From:       e.From,
			To:         e.To,
			DirectionX: round3(e.Direction.X),
			DirectionY: round3(e.Direction.Y),
			Started:    e.Started.Format(time.RFC3339),
			DurationMS: e.Duration().Milliseconds(),
			HandedOff:  e.HandedOff,
			Aborted:    e.Aborted,
		})
	}
	return rows
}

func runJournal(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	path, _ := cmd.Flags().GetString("path")
	if path == "" {
		cfg, _ := loadOptions()
		var err error
		if path, err = config.JournalPath(cfg); err != nil {
			return fmt.Errorf("resolve journal path: %w", err)
		}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("no journal at %s; enable it with run --journal", path)
	}

	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(journalRows(entries))
	if err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
