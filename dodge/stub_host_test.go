// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package dodge

import (
	"encoding/binary"
	"time"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type stubOffset struct {
	x, y     float64
	history  [][2]float64
	detached bool
}

func (o *stubOffset) SetTranslation(x, y float64) {
	o.x, o.y = x, y
	o.history = append(o.history, [2]float64{x, y})
}

func (o *stubOffset) Translation() (float64, float64) { return o.x, o.y }

type stubWindow struct {
	rect    Rect
	alive   bool
	output  OutputID
	offsets map[string]*stubOffset
}

type stubHook struct {
	output OutputID
	fn     func()
}

type stubActivationSub struct {
	id WindowID
	l  ActivationListener
}

// stubHost is an in-memory host mirroring a compositor's notification order.
type stubHost struct {
	windows map[WindowID]*stubWindow
	order   []WindowID
	active  WindowID
	next    uint64

	hooks         map[FrameHookID]stubHook
	winListeners  map[SubscriptionID]WindowListener
	actListeners  map[SubscriptionID]stubActivationSub
	attachCreated int
	failAttach    map[WindowID]bool
	deadTouches   int

	raised  []WindowID
	focused []WindowID
	damaged map[WindowID]int
	onFocus func(id WindowID)
}

func newStubHost() *stubHost {
	return &stubHost{
		windows:      make(map[WindowID]*stubWindow),
		hooks:        make(map[FrameHookID]stubHook),
		winListeners: make(map[SubscriptionID]WindowListener),
		actListeners: make(map[SubscriptionID]stubActivationSub),
		damaged:      make(map[WindowID]int),
		failAttach:   make(map[WindowID]bool),
	}
}

func (h *stubHost) nextID() uint64 {
	h.next++
	return h.next
}

// Map creates a live window and notifies window listeners.
func (h *stubHost) Map(r Rect) WindowID {
	var id WindowID
	binary.BigEndian.PutUint64(id[8:], h.nextID())
	h.windows[id] = &stubWindow{rect: r, alive: true, offsets: make(map[string]*stubOffset)}
	h.order = append(h.order, id)
	for _, l := range h.snapshotWindowListeners() {
		l.WindowMapped(id)
	}
	return id
}

// Unmap kills a window, refocuses the most recent live one, then notifies.
func (h *stubHost) Unmap(id WindowID) {
	w := h.windows[id]
	if w == nil || !w.alive {
		return
	}
	w.alive = false
	refocus := false
	if h.active == id {
		h.active = WindowID{}
		for i := len(h.order) - 1; i >= 0; i-- {
			if cand := h.windows[h.order[i]]; cand != nil && cand.alive {
				h.active = h.order[i]
				refocus = true
				break
			}
		}
	}
	for _, l := range h.snapshotWindowListeners() {
		l.WindowUnmapped(id)
	}
	if refocus {
		h.notifyActivation(h.active, true)
	}
}

// Activate moves focus like a user click would.
func (h *stubHost) Activate(id WindowID) {
	if !h.Alive(id) || h.active == id {
		return
	}
	old := h.active
	h.active = id
	if !old.IsZero() && h.Alive(old) {
		h.notifyActivation(old, false)
	}
	h.notifyActivation(id, true)
}

// Frame runs every registered hook once.
func (h *stubHost) Frame() {
	hooks := make([]func(), 0, len(h.hooks))
	for _, hk := range h.hooks {
		hooks = append(hooks, hk.fn)
	}
	for _, fn := range hooks {
		fn()
	}
}

func (h *stubHost) offset(id WindowID, name string) *stubOffset {
	w := h.windows[id]
	if w == nil {
		return nil
	}
	return w.offsets[name]
}

func (h *stubHost) notifyActivation(id WindowID, active bool) {
	subs := make([]ActivationListener, 0)
	for _, s := range h.actListeners {
		if s.id == id {
			subs = append(subs, s.l)
		}
	}
	for _, l := range subs {
		l.ActivationChanged(id, active)
	}
}

func (h *stubHost) snapshotWindowListeners() []WindowListener {
	out := make([]WindowListener, 0, len(h.winListeners))
	for _, l := range h.winListeners {
		out = append(out, l)
	}
	return out
}

func (h *stubHost) Bounds(id WindowID) (Rect, bool) {
	w := h.windows[id]
	if w == nil || !w.alive {
		return Rect{}, false
	}
	return w.rect, true
}

func (h *stubHost) Alive(id WindowID) bool {
	w := h.windows[id]
	return w != nil && w.alive
}

func (h *stubHost) Output(id WindowID) (OutputID, bool) {
	w := h.windows[id]
	if w == nil || !w.alive {
		return 0, false
	}
	return w.output, true
}

func (h *stubHost) AttachOffset(id WindowID, name string) (Offset, bool) {
	w := h.windows[id]
	if w == nil || !w.alive {
		h.deadTouches++
		return nil, false
	}
	if h.failAttach[id] {
		return nil, false
	}
	if off, ok := w.offsets[name]; ok && !off.detached {
		return off, true
	}
	off := &stubOffset{}
	w.offsets[name] = off
	h.attachCreated++
	return off, true
}

func (h *stubHost) DetachOffset(id WindowID, name string) {
	w := h.windows[id]
	if w == nil || !w.alive {
		h.deadTouches++
		return
	}
	if off, ok := w.offsets[name]; ok {
		off.detached = true
	}
}

func (h *stubHost) AddFrameHook(output OutputID, hook func()) FrameHookID {
	id := FrameHookID(h.nextID())
	h.hooks[id] = stubHook{output: output, fn: hook}
	return id
}

func (h *stubHost) RemoveFrameHook(hook FrameHookID) {
	delete(h.hooks, hook)
}

func (h *stubHost) Raise(id WindowID) {
	if !h.Alive(id) {
		h.deadTouches++
		return
	}
	h.raised = append(h.raised, id)
}

func (h *stubHost) ActiveWindow() WindowID { return h.active }

func (h *stubHost) Focus(id WindowID) {
	if !h.Alive(id) {
		h.deadTouches++
		return
	}
	h.focused = append(h.focused, id)
	if h.onFocus != nil {
		h.onFocus(id)
	}
	h.Activate(id)
}

func (h *stubHost) Damage(id WindowID) {
	if !h.Alive(id) {
		h.deadTouches++
		return
	}
	h.damaged[id]++
}

func (h *stubHost) SubscribeWindows(l WindowListener) SubscriptionID {
	id := SubscriptionID(h.nextID())
	h.winListeners[id] = l
	return id
}

func (h *stubHost) SubscribeActivation(id WindowID, l ActivationListener) (SubscriptionID, bool) {
	if !h.Alive(id) {
		return 0, false
	}
	sub := SubscriptionID(h.nextID())
	h.actListeners[sub] = stubActivationSub{id: id, l: l}
	return sub, true
}

func (h *stubHost) Unsubscribe(sub SubscriptionID) {
	delete(h.winListeners, sub)
	delete(h.actListeners, sub)
}

func (h *stubHost) Windows() []WindowID {
	out := make([]WindowID, 0, len(h.order))
	for _, id := range h.order {
		if h.Alive(id) {
			out = append(out, id)
		}
	}
	return out
}

type recordingListener struct {
	started  []Record
	finished []Record
}

func (r *recordingListener) TransitionStarted(rec Record)  { r.started = append(r.started, rec) }
func (r *recordingListener) TransitionFinished(rec Record) { r.finished = append(r.finished, rec) }
