// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/focus_listener.go
// Summary: Focus change notifications for desktop consumers outside the dodge stream.
// Usage: The simulate trace registers through Desktop.AddFocusListener.

package texel

import "github.com/framegrace/texeldodge/dodge"

// DesktopFocusListener describes consumers interested in focus changes.
type DesktopFocusListener interface {
	WindowFocused(id dodge.WindowID)
}

// AddFocusListener registers a listener for focus changes.
func (d *Desktop) AddFocusListener(l DesktopFocusListener) {
	d.focusListeners = append(d.focusListeners, l)
}

// RemoveFocusListener unregisters a listener.
func (d *Desktop) RemoveFocusListener(l DesktopFocusListener) {
	for i, cur := range d.focusListeners {
		if cur == l {
			d.focusListeners = append(d.focusListeners[:i], d.focusListeners[i+1:]...)
			return
		}
	}
}

func (d *Desktop) notifyFocus(id dodge.WindowID) {
	for _, l := range d.focusListeners {
		l.WindowFocused(id)
	}
}
