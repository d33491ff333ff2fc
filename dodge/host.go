// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dodge/host.go
// Summary: Capabilities the transition engine consumes from its host.
// Usage: Implemented by texel.Desktop and by test stubs.

package dodge

import "fmt"

// WindowID is an opaque handle to a host-managed window. The zero value means none.
type WindowID [16]byte

// IsZero reports whether the id refers to no window.
func (id WindowID) IsZero() bool {
	return id == WindowID{}
}

func (id WindowID) String() string {
	if id.IsZero() {
		return "none"
	}
	return fmt.Sprintf("%x", id[:4])
}

// OutputID identifies the output (screen) a window is rendered on.
type OutputID int

// FrameHookID is returned by AddFrameHook and handed back to RemoveFrameHook.
type FrameHookID uint64

// SubscriptionID is returned by the notification stream and handed back to Unsubscribe.
type SubscriptionID uint64

// Rect is a screen-space bounding box.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Center returns the midpoint of the box.
func (r Rect) Center() (float64, float64) {
	return float64(r.X) + float64(r.Width)/2, float64(r.Y) + float64(r.Height)/2
}

// Offset is a named 2D translation attached to a window.
type Offset interface {
	SetTranslation(x, y float64)
	Translation() (x, y float64)
}

// WindowQuery answers geometry and liveness questions.
type WindowQuery interface {
	Bounds(id WindowID) (Rect, bool)
	Alive(id WindowID) bool
	Output(id WindowID) (OutputID, bool)
}

// OffsetProvider attaches named translations. AttachOffset returns the existing
// offset when one with the same name is already attached.
type OffsetProvider interface {
	AttachOffset(id WindowID, name string) (Offset, bool)
	DetachOffset(id WindowID, name string)
}

// FrameScheduler runs hooks once per rendered frame of an output.
type FrameScheduler interface {
	AddFrameHook(output OutputID, hook func()) FrameHookID
	RemoveFrameHook(hook FrameHookID)
}

// Stacker changes stacking order.
type Stacker interface {
	Raise(id WindowID)
}

// Focuser reads and moves input focus.
type Focuser interface {
	ActiveWindow() WindowID
	Focus(id WindowID)
}

// Damager requests repaints.
type Damager interface {
	Damage(id WindowID)
}

// Host bundles every capability the engine needs.
type Host interface {
	WindowQuery
	OffsetProvider
	FrameScheduler
	Stacker
	Focuser
	Damager
}

// WindowListener receives lifecycle notifications for all windows.
type WindowListener interface {
	WindowMapped(id WindowID)
	WindowUnmapped(id WindowID)
}

// ActivationListener receives activation-changed notifications of one window.
type ActivationListener interface {
	ActivationChanged(id WindowID, active bool)
}

// WindowEvents is the host's notification stream.
type WindowEvents interface {
	SubscribeWindows(l WindowListener) SubscriptionID
	SubscribeActivation(id WindowID, l ActivationListener) (SubscriptionID, bool)
	Unsubscribe(sub SubscriptionID)
	Windows() []WindowID
}
