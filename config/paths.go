// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texeldodge configuration and data files.

package config

import (
	"os"
	"path/filepath"
)

const (
	journalFileName = "journal.db"
	logFileName     = "texeldodge.log"
)

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texeldodge"), nil
}

func systemConfigPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

// JournalPath returns the configured journal database path, falling back to
// journal.db next to the system config.
func JournalPath(cfg Config) (string, error) {
	if p := cfg.GetString("journal", "path", ""); p != "" {
		return p, nil
	}
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, journalFileName), nil
}

// LogPath returns the configured log file, falling back to texeldodge.log next
// to the system config.
func LogPath(cfg Config) (string, error) {
	if p := cfg.GetString("log", "file", ""); p != "" {
		return p, nil
	}
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, logFileName), nil
}
