// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dodge/gate.go
// Summary: Translates host window notifications into engine commands.
// Usage: Start once after the host is up; Close on teardown.

package dodge

// Gate subscribes to mapped/unmapped notifications and re-arms an activation
// subscription on every mapped window.
type Gate struct {
	events  WindowEvents
	engine  *Engine
	global  SubscriptionID
	started bool
	perWin  map[WindowID]SubscriptionID
}

// NewGate builds a gate feeding engine.
func NewGate(events WindowEvents, engine *Engine) *Gate {
	return &Gate{
		events: events,
		engine: engine,
		perWin: make(map[WindowID]SubscriptionID),
	}
}

// Start subscribes to the host and arms windows that are already mapped.
func (g *Gate) Start() {
	if g.started {
		return
	}
	g.started = true
	g.global = g.events.SubscribeWindows(g)
	for _, id := range g.events.Windows() {
		g.arm(id)
	}
}

// Close cancels every subscription and tears the engine down.
func (g *Gate) Close() {
	if !g.started {
		g.engine.Close()
		return
	}
	for id, sub := range g.perWin {
		g.events.Unsubscribe(sub)
		delete(g.perWin, id)
	}
	g.events.Unsubscribe(g.global)
	g.started = false
	g.engine.Close()
}

// Armed reports whether the window's activation stream is subscribed.
func (g *Gate) Armed(id WindowID) bool {
	_, ok := g.perWin[id]
	return ok
}

// WindowMapped arms activation notifications for the new window.
func (g *Gate) WindowMapped(id WindowID) {
	g.arm(id)
}

// WindowUnmapped drops the window's subscription and informs the engine.
func (g *Gate) WindowUnmapped(id WindowID) {
	if sub, ok := g.perWin[id]; ok {
		g.events.Unsubscribe(sub)
		delete(g.perWin, id)
	}
	g.engine.OnWindowRemoved(id)
}

// ActivationChanged forwards activations; deactivations carry no new target.
func (g *Gate) ActivationChanged(id WindowID, active bool) {
	if !active {
		return
	}
	g.engine.OnActivation(id)
}

func (g *Gate) arm(id WindowID) {
	if id.IsZero() {
		return
	}
	if _, ok := g.perWin[id]; ok {
		return
	}
	sub, ok := g.events.SubscribeActivation(id, g)
	if !ok {
		debugLog.Printf("[GATE] Window %s vanished before it could be armed", id)
		return
	}
	g.perWin[id] = sub
}
