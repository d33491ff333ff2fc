// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package dodge

import (
	"testing"
	"time"

	"github.com/framegrace/texeldodge/config"
)

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Config{
		"dodge": map[string]interface{}{
			"duration_ms": float64(750),
			"directional": false,
			"handoff":     "from",
		},
	}
	opts := OptionsFromConfig(cfg)
	if opts.Duration != 750*time.Millisecond {
		t.Fatalf("expected 750ms, got %v", opts.Duration)
	}
	if opts.Policy.Directional || opts.Policy.Handoff != HandoffFrom {
		t.Fatalf("unexpected policy %+v", opts.Policy)
	}
}

func TestOptionsFromConfigDefaults(t *testing.T) {
	opts := OptionsFromConfig(nil)
	if opts.Duration != DefaultDuration || opts.Policy != DefaultPolicy() {
		t.Fatalf("expected defaults, got %+v", opts)
	}
	opts = OptionsFromConfig(config.Config{"dodge": map[string]interface{}{"duration_ms": -5}})
	if opts.Duration != DefaultDuration {
		t.Fatalf("non-positive duration must fall back, got %v", opts.Duration)
	}
}
