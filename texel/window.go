// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/window.go
// Summary: Desktop windows and their named offsets.

package texel

import (
	"math"

	"github.com/framegrace/texeldodge/dodge"
)

// Window is a floating rectangle on the desktop.
type Window struct {
	id      dodge.WindowID
	title   string
	rect    dodge.Rect
	offsets map[string]*offset
	names   []string
}

// ID returns the window handle.
func (w *Window) ID() dodge.WindowID { return w.id }

// Title returns the window title.
func (w *Window) Title() string { return w.title }

// Rect returns the base geometry, without offsets.
func (w *Window) Rect() dodge.Rect { return w.rect }

// Translation sums every attached offset.
func (w *Window) Translation() (float64, float64) {
	var x, y float64
	for _, name := range w.names {
		ox, oy := w.offsets[name].Translation()
		x += ox
		y += oy
	}
	return x, y
}

// DisplayRect is the rect as drawn, offsets applied and rounded to cells.
func (w *Window) DisplayRect() dodge.Rect {
	x, y := w.Translation()
	r := w.rect
	r.X += int(math.Round(x))
	r.Y += int(math.Round(y))
	return r
}

// HasOffset reports whether a named offset is attached.
func (w *Window) HasOffset(name string) bool {
	_, ok := w.offsets[name]
	return ok
}

func (w *Window) attach(name string) *offset {
	if off, ok := w.offsets[name]; ok {
		return off
	}
	off := &offset{}
	w.offsets[name] = off
	w.names = append(w.names, name)
	return off
}

func (w *Window) detach(name string) {
	if _, ok := w.offsets[name]; !ok {
		return
	}
	delete(w.offsets, name)
	for i, n := range w.names {
		if n == name {
			w.names = append(w.names[:i], w.names[i+1:]...)
			break
		}
	}
}

// offset is a 2D translation in cells.
type offset struct {
	x, y float64
}

func (o *offset) SetTranslation(x, y float64) {
	o.x, o.y = x, y
}

func (o *offset) Translation() (float64, float64) {
	return o.x, o.y
}
