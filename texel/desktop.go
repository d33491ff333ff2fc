// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/desktop.go
// Summary: Floating-window terminal desktop implementing the dodge host capabilities.
// Usage: Build with NewDesktop, map windows, start a dodge.Gate against it, then Run.
// Notes: Not safe for concurrent use; Run serializes input and frames on one goroutine.

package texel

import (
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/framegrace/texeldodge/dodge"
)

// PrimaryOutput is the only output of a terminal desktop.
const PrimaryOutput dodge.OutputID = 0

// Desktop manages floating windows on a single screen.
type Desktop struct {
	screen     ScreenDriver
	dispatcher *EventDispatcher

	windows map[dodge.WindowID]*Window
	mapped  []dodge.WindowID // mapping order
	stack   []dodge.WindowID // bottom to top
	active  dodge.WindowID

	hooks     map[dodge.FrameHookID]func()
	hookOrder []dodge.FrameHookID
	nextHook  dodge.FrameHookID

	focusListeners []DesktopFocusListener

	damage     []dodge.Rect // regions to repaint on the next frame
	clip       []dodge.Rect // non-nil while a damage-only repaint runs
	needsDraw  bool         // full repaint
	frames     uint64
	styleCache map[styleKey]tcell.Style

	DefaultFgColor      tcell.Color
	DefaultBgColor      tcell.Color
	ActiveBorderColor   tcell.Color
	InactiveBorderColor tcell.Color
}

// NewDesktop creates a desktop on an initialized screen driver.
func NewDesktop(screen ScreenDriver) *Desktop {
	return &Desktop{
		screen:              screen,
		dispatcher:          NewEventDispatcher(),
		windows:             make(map[dodge.WindowID]*Window),
		hooks:               make(map[dodge.FrameHookID]func()),
		styleCache:          make(map[styleKey]tcell.Style),
		needsDraw:           true,
		DefaultFgColor:      tcell.ColorWhite,
		DefaultBgColor:      tcell.ColorBlack,
		ActiveBorderColor:   tcell.ColorTeal,
		InactiveBorderColor: tcell.ColorGray,
	}
}

// Map creates a window, places it on top and notifies listeners.
func (d *Desktop) Map(title string, rect dodge.Rect) dodge.WindowID {
	id := dodge.WindowID(uuid.New())
	d.windows[id] = &Window{id: id, title: title, rect: rect, offsets: make(map[string]*offset)}
	d.mapped = append(d.mapped, id)
	d.stack = append(d.stack, id)
	d.needsDraw = true
	log.Printf("[DESKTOP] Mapped %q as %s", title, id)
	d.dispatcher.Broadcast(Event{Type: EventWindowMapped, Window: id})
	return id
}

// Unmap destroys a window. If it was active, the topmost remaining window is
// activated after listeners learn about the removal.
func (d *Desktop) Unmap(id dodge.WindowID) {
	w, ok := d.windows[id]
	if !ok {
		return
	}
	d.damage = append(d.damage, w.DisplayRect())
	delete(d.windows, id)
	d.mapped = removeID(d.mapped, id)
	d.stack = removeID(d.stack, id)
	d.dispatcher.DropWindow(id)
	d.needsDraw = true

	refocus := dodge.WindowID{}
	if d.active == id {
		d.active = dodge.WindowID{}
		if len(d.stack) > 0 {
			refocus = d.stack[len(d.stack)-1]
			d.active = refocus
		}
		d.notifyFocus(d.active)
	}
	log.Printf("[DESKTOP] Unmapped %q", w.title)
	d.dispatcher.Broadcast(Event{Type: EventWindowUnmapped, Window: id})
	if !refocus.IsZero() {
		d.dispatcher.Broadcast(Event{Type: EventActivationChanged, Window: refocus, Active: true})
	}
}

// Activate makes id the active window, notifying the old and new window.
func (d *Desktop) Activate(id dodge.WindowID) {
	if _, ok := d.windows[id]; !ok || d.active == id {
		return
	}
	old := d.active
	d.active = id
	d.needsDraw = true
	d.notifyFocus(id)
	if _, ok := d.windows[old]; ok {
		d.dispatcher.Broadcast(Event{Type: EventActivationChanged, Window: old, Active: false})
	}
	d.dispatcher.Broadcast(Event{Type: EventActivationChanged, Window: id, Active: true})
}

// Window returns the window for id.
func (d *Desktop) Window(id dodge.WindowID) (*Window, bool) {
	w, ok := d.windows[id]
	return w, ok
}

// FindByTitle returns the first mapped window with the given title.
func (d *Desktop) FindByTitle(title string) (dodge.WindowID, bool) {
	for _, id := range d.mapped {
		if d.windows[id].title == title {
			return id, true
		}
	}
	return dodge.WindowID{}, false
}

// Stack returns window ids bottom to top.
func (d *Desktop) Stack() []dodge.WindowID {
	return append([]dodge.WindowID(nil), d.stack...)
}

// Dispatcher exposes the notification stream.
func (d *Desktop) Dispatcher() *EventDispatcher { return d.dispatcher }

// Frames returns how many frames were produced.
func (d *Desktop) Frames() uint64 { return d.frames }

// HasFrameHooks reports whether anything is animating.
func (d *Desktop) HasFrameHooks() bool { return len(d.hooks) > 0 }

// Frame runs every frame hook once, then repaints. Structural changes repaint
// the whole screen; otherwise only the damaged regions are redrawn. Damage is
// consumed either way.
func (d *Desktop) Frame() {
	d.frames++
	ids := append([]dodge.FrameHookID(nil), d.hookOrder...)
	for _, id := range ids {
		if hook, ok := d.hooks[id]; ok {
			hook()
		}
	}
	switch {
	case d.needsDraw:
		d.draw()
	case len(d.damage) > 0:
		d.drawDamage(d.damage)
	}
	d.needsDraw = false
	d.damage = nil
}

// Close tears down the screen.
func (d *Desktop) Close() {
	if d.screen != nil {
		d.screen.Fini()
	}
}

// dodge.Host

func (d *Desktop) Bounds(id dodge.WindowID) (dodge.Rect, bool) {
	w, ok := d.windows[id]
	if !ok {
		return dodge.Rect{}, false
	}
	return w.rect, true
}

func (d *Desktop) Alive(id dodge.WindowID) bool {
	_, ok := d.windows[id]
	return ok
}

func (d *Desktop) Output(id dodge.WindowID) (dodge.OutputID, bool) {
	if _, ok := d.windows[id]; !ok {
		return 0, false
	}
	return PrimaryOutput, true
}

func (d *Desktop) AttachOffset(id dodge.WindowID, name string) (dodge.Offset, bool) {
	w, ok := d.windows[id]
	if !ok {
		return nil, false
	}
	return w.attach(name), true
}

func (d *Desktop) DetachOffset(id dodge.WindowID, name string) {
	w, ok := d.windows[id]
	if !ok || !w.HasOffset(name) {
		return
	}
	d.damage = append(d.damage, w.DisplayRect())
	w.detach(name)
	d.damage = append(d.damage, w.DisplayRect())
}

func (d *Desktop) AddFrameHook(output dodge.OutputID, hook func()) dodge.FrameHookID {
	d.nextHook++
	d.hooks[d.nextHook] = hook
	d.hookOrder = append(d.hookOrder, d.nextHook)
	return d.nextHook
}

func (d *Desktop) RemoveFrameHook(hook dodge.FrameHookID) {
	if _, ok := d.hooks[hook]; !ok {
		return
	}
	delete(d.hooks, hook)
	for i, id := range d.hookOrder {
		if id == hook {
			d.hookOrder = append(d.hookOrder[:i], d.hookOrder[i+1:]...)
			break
		}
	}
}

func (d *Desktop) Raise(id dodge.WindowID) {
	if _, ok := d.windows[id]; !ok {
		return
	}
	d.stack = append(removeID(d.stack, id), id)
	d.needsDraw = true
}

func (d *Desktop) ActiveWindow() dodge.WindowID { return d.active }

func (d *Desktop) Focus(id dodge.WindowID) { d.Activate(id) }

func (d *Desktop) Damage(id dodge.WindowID) {
	w, ok := d.windows[id]
	if !ok {
		return
	}
	d.damage = append(d.damage, w.DisplayRect())
}

// dodge.WindowEvents

func (d *Desktop) SubscribeWindows(l dodge.WindowListener) dodge.SubscriptionID {
	return d.dispatcher.SubscribeWindows(l)
}

func (d *Desktop) SubscribeActivation(id dodge.WindowID, l dodge.ActivationListener) (dodge.SubscriptionID, bool) {
	if _, ok := d.windows[id]; !ok {
		return 0, false
	}
	return d.dispatcher.SubscribeActivation(id, l), true
}

func (d *Desktop) Unsubscribe(sub dodge.SubscriptionID) {
	d.dispatcher.Unsubscribe(sub)
}

func (d *Desktop) Windows() []dodge.WindowID {
	return append([]dodge.WindowID(nil), d.mapped...)
}

func removeID(ids []dodge.WindowID, id dodge.WindowID) []dodge.WindowID {
	for i, cur := range ids {
		if cur == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
