// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package theming

import (
	"testing"

	"github.com/framegrace/texelui/theme"
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeldodge/config"
)

func baseTheme() theme.Config {
	return theme.Config{"pane": theme.Section{
		"active_border_fg":   "#112233",
		"inactive_border_fg": "#445566",
	}}
}

func TestFromThemeReadsPaneBorders(t *testing.T) {
	p := FromTheme(baseTheme())
	if p.ActiveBorder != tcell.NewHexColor(0x112233) {
		t.Fatalf("unexpected active border %v", p.ActiveBorder)
	}
	if p.InactiveBorder != tcell.NewHexColor(0x445566) {
		t.Fatalf("unexpected inactive border %v", p.InactiveBorder)
	}
}

func TestFromThemeMissingKeysKeepDefault(t *testing.T) {
	if FromTheme(nil) != Default() {
		t.Fatalf("nil theme should give the default palette")
	}
	if FromTheme(theme.Config{}) != Default() {
		t.Fatalf("empty theme should give the default palette")
	}
}

func TestWithConfigAppliesOverrides(t *testing.T) {
	base := baseTheme()
	cfg := config.Config{"theme": map[string]interface{}{
		"theme_overrides": map[string]interface{}{
			"pane": map[string]interface{}{"inactive_border_fg": "#ff8000"},
		},
		"active_border": "red",
	}}
	p := FromTheme(WithConfig(base, cfg))
	if p.InactiveBorder != tcell.NewHexColor(0xff8000) {
		t.Fatalf("override not applied, got %v", p.InactiveBorder)
	}
	if want := theme.FromTcell(tcell.ColorRed).ToTcell(); p.ActiveBorder != want {
		t.Fatalf("active_border shortcut not applied, got %v want %v", p.ActiveBorder, want)
	}
	if got := base["pane"]["inactive_border_fg"]; got != "#445566" {
		t.Fatalf("base theme was modified: %v", got)
	}
}

func TestWithConfigIgnoresUnknownColor(t *testing.T) {
	cfg := config.Config{"theme": map[string]interface{}{
		"active_border":   "not-a-color",
		"inactive_border": "",
	}}
	if p := FromTheme(WithConfig(baseTheme(), cfg)); p != FromTheme(baseTheme()) {
		t.Fatalf("unknown colors should leave the theme alone, got %+v", p)
	}
}
