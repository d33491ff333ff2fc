// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/runtime_interfaces.go
// Summary: Rendering surface abstraction used by the desktop.

package texel

import "github.com/gdamore/tcell/v2"

// ScreenDriver abstracts the rendering surface used by the desktop. It mirrors
// the subset of tcell.Screen the desktop needs so tests can run headless.
type ScreenDriver interface {
	Init() error
	Fini()
	Size() (int, int)
	SetStyle(style tcell.Style)
	Clear()
	HideCursor()
	Show()
	Sync()
	PollEvent() tcell.Event
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	GetContent(x, y int) (rune, []rune, tcell.Style, int)
}
