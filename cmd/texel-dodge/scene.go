// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texel-dodge/scene.go
// Summary: YAML scene files: initial windows, initial focus and a timed script.

package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/framegrace/texeldodge/dodge"
	"github.com/framegrace/texeldodge/texel"
)

// Scene describes a desktop to build and what to do to it over time.
type Scene struct {
	Windows []SceneWindow `yaml:"windows"`
	Focus   string        `yaml:"focus,omitempty"`
	Script  []SceneStep   `yaml:"script,omitempty"`
}

// SceneWindow is one window mapped at startup.
type SceneWindow struct {
	Title  string `yaml:"title"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// SceneStep activates or closes a window at AtMS milliseconds after start.
type SceneStep struct {
	AtMS     int    `yaml:"at_ms"`
	Activate string `yaml:"activate,omitempty"`
	Close    string `yaml:"close,omitempty"`
}

func (s SceneStep) String() string {
	if s.Close != "" {
		return "close " + s.Close
	}
	return "activate " + s.Activate
}

// LoadScene reads and validates a scene file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return ParseScene(data)
}

// ParseScene decodes and validates scene YAML. Script steps are sorted by time.
func ParseScene(data []byte) (*Scene, error) {
	var sc Scene
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	sort.SliceStable(sc.Script, func(i, j int) bool { return sc.Script[i].AtMS < sc.Script[j].AtMS })
	return &sc, nil
}

// DefaultScene is used by run when no scene file is given.
func DefaultScene() *Scene {
	return &Scene{
		Windows: []SceneWindow{
			{Title: "left", X: 4, Y: 3, Width: 30, Height: 10},
			{Title: "right", X: 44, Y: 6, Width: 30, Height: 10},
		},
		Focus: "left",
	}
}

func (sc *Scene) validate() error {
	if len(sc.Windows) == 0 {
		return fmt.Errorf("scene has no windows")
	}
	titles := make(map[string]bool, len(sc.Windows))
	for i, w := range sc.Windows {
		if w.Title == "" {
			return fmt.Errorf("window %d has no title", i)
		}
		if titles[w.Title] {
			return fmt.Errorf("duplicate window title %q", w.Title)
		}
		if w.Width < 2 || w.Height < 2 {
			return fmt.Errorf("window %q is smaller than 2x2", w.Title)
		}
		titles[w.Title] = true
	}
	if sc.Focus != "" && !titles[sc.Focus] {
		return fmt.Errorf("focus refers to unknown window %q", sc.Focus)
	}
	for i, st := range sc.Script {
		if st.AtMS < 0 {
			return fmt.Errorf("script step %d has negative at_ms", i)
		}
		if (st.Activate == "") == (st.Close == "") {
			return fmt.Errorf("script step %d needs exactly one of activate or close", i)
		}
		if target := st.Activate + st.Close; !titles[target] {
			return fmt.Errorf("script step %d refers to unknown window %q", i, target)
		}
	}
	return nil
}

// Apply maps the scene's windows onto d and sets the initial focus. It returns
// the title of every window id it created.
func (sc *Scene) Apply(d *texel.Desktop) map[dodge.WindowID]string {
	titles := make(map[dodge.WindowID]string, len(sc.Windows))
	for _, w := range sc.Windows {
		id := d.Map(w.Title, dodge.Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height})
		titles[id] = w.Title
	}
	if sc.Focus != "" {
		if id, ok := d.FindByTitle(sc.Focus); ok {
			d.Activate(id)
		}
	}
	return titles
}

// ApplyStep performs one script step. Steps naming a closed window are skipped.
func ApplyStep(d *texel.Desktop, st SceneStep) bool {
	if st.Close != "" {
		id, ok := d.FindByTitle(st.Close)
		if ok {
			d.Unmap(id)
		}
		return ok
	}
	id, ok := d.FindByTitle(st.Activate)
	if ok {
		d.Activate(id)
	}
	return ok
}
