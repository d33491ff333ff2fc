// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/palette.go
// Summary: Desktop colors resolved from the shared theme plus config overrides.
// Usage: run resolves ForDesktop(cfg) once and copies the palette onto the desktop.

package theming

import (
	"strings"

	"github.com/framegrace/texelui/theme"
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeldodge/config"
)

// Palette holds the colors the desktop renderer uses for window chrome.
type Palette struct {
	ActiveBorder   tcell.Color
	InactiveBorder tcell.Color
}

// Default returns the built-in palette.
func Default() Palette {
	return Palette{ActiveBorder: tcell.ColorTeal, InactiveBorder: tcell.ColorGray}
}

// ForDesktop returns the user's theme merged with the overrides in cfg.
func ForDesktop(cfg config.Config) theme.Config {
	return WithConfig(theme.Get(), cfg)
}

// WithConfig merges the "theme" config section on top of base. The section's
// theme_overrides map uses theme sections and keys; active_border and
// inactive_border are shortcuts for the pane border colors.
func WithConfig(base theme.Config, cfg config.Config) theme.Config {
	overrides := overridesFromConfig(cfg)
	if len(overrides) == 0 {
		return base
	}
	return theme.WithOverrides(base, overrides)
}

// FromTheme reads the pane border colors, keeping the defaults for missing keys.
func FromTheme(th theme.Config) Palette {
	p := Default()
	if th == nil {
		return p
	}
	p.ActiveBorder = th.GetColor("pane", "active_border_fg", p.ActiveBorder)
	p.InactiveBorder = th.GetColor("pane", "inactive_border_fg", p.InactiveBorder)
	return p
}

func overridesFromConfig(cfg config.Config) theme.Config {
	if cfg == nil {
		return nil
	}
	sec := cfg.Section("theme")
	if sec == nil {
		return nil
	}
	overrides := theme.ParseOverrides(sec["theme_overrides"])
	pane := theme.Section{}
	if c, ok := colorValue(cfg.GetString("theme", "active_border", "")); ok {
		pane["active_border_fg"] = c
	}
	if c, ok := colorValue(cfg.GetString("theme", "inactive_border", "")); ok {
		pane["inactive_border_fg"] = c
	}
	if len(pane) == 0 {
		return overrides
	}
	return theme.WithOverrides(overrides, theme.Config{"pane": pane})
}

// colorValue turns a tcell color name into the theme's #rrggbb form. Hex
// values, palette references (@name) and theme keys pass through.
func colorValue(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if strings.HasPrefix(name, "#") || strings.HasPrefix(name, "@") || strings.Contains(name, ".") {
		return name, true
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return "", false
	}
	return string(theme.FromTcell(c)), true
}
