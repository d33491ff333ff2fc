// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the system configuration file.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("dodge", Section{
		"duration_ms": 2000,
		"directional": true,
		"handoff":     "to",
		"frame_ms":    16,
	})
	cfg.RegisterDefaults("journal", Section{
		"enabled": false,
		"path":    "",
	})
	cfg.RegisterDefaults("theme", Section{
		"active_border":   "",
		"inactive_border": "",
		"theme_overrides": map[string]interface{}{},
	})
	cfg.RegisterDefaults("log", Section{
		"file":    "",
		"verbose": false,
	})
}
