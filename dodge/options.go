// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dodge/options.go
// Summary: Maps the "dodge" config section onto engine options.

package dodge

import (
	"time"

	"github.com/framegrace/texeldodge/config"
)

// OptionsFromConfig reads duration and policy from the "dodge" section.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	if ms := cfg.GetInt("dodge", "duration_ms", int(DefaultDuration/time.Millisecond)); ms > 0 {
		opts.Duration = time.Duration(ms) * time.Millisecond
	}
	opts.Policy.Directional = cfg.GetBool("dodge", "directional", true)
	opts.Policy.Handoff = ParseHandoffTarget(cfg.GetString("dodge", "handoff", "to"))
	return opts
}
