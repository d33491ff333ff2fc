// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/dispatcher.go
// Summary: Window notification stream with explicit subscription handles.
// Usage: Owned by Desktop; consumed by dodge.Gate through dodge.WindowEvents.

package texel

import (
	"sync"

	"github.com/framegrace/texeldodge/dodge"
)

// EventType defines the type of a window notification.
type EventType int

const (
	EventWindowMapped EventType = iota
	EventWindowUnmapped
	EventActivationChanged
)

func (e EventType) String() string {
	switch e {
	case EventWindowMapped:
		return "WindowMapped"
	case EventWindowUnmapped:
		return "WindowUnmapped"
	case EventActivationChanged:
		return "ActivationChanged"
	default:
		return "UnknownEvent"
	}
}

// Event is a single notification.
type Event struct {
	Type   EventType
	Window dodge.WindowID
	Active bool
}

type activationSub struct {
	window   dodge.WindowID
	listener dodge.ActivationListener
}

// EventDispatcher fans notifications out to global window listeners and to
// per-window activation listeners.
type EventDispatcher struct {
	mu         sync.RWMutex
	next       dodge.SubscriptionID
	windows    map[dodge.SubscriptionID]dodge.WindowListener
	activation map[dodge.SubscriptionID]activationSub
	order      []dodge.SubscriptionID
}

// NewEventDispatcher creates a new dispatcher.
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{
		windows:    make(map[dodge.SubscriptionID]dodge.WindowListener),
		activation: make(map[dodge.SubscriptionID]activationSub),
	}
}

// SubscribeWindows registers l for mapped/unmapped notifications.
func (d *EventDispatcher) SubscribeWindows(l dodge.WindowListener) dodge.SubscriptionID {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	d.windows[d.next] = l
	d.order = append(d.order, d.next)
	return d.next
}

// SubscribeActivation registers l for activation changes of one window.
func (d *EventDispatcher) SubscribeActivation(id dodge.WindowID, l dodge.ActivationListener) dodge.SubscriptionID {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	d.activation[d.next] = activationSub{window: id, listener: l}
	d.order = append(d.order, d.next)
	return d.next
}

// Unsubscribe removes a subscription. Unknown handles are ignored.
func (d *EventDispatcher) Unsubscribe(sub dodge.SubscriptionID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.windows, sub)
	delete(d.activation, sub)
	for i, s := range d.order {
		if s == sub {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// DropWindow removes every activation subscription of a window.
func (d *EventDispatcher) DropWindow(id dodge.WindowID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	kept := d.order[:0]
	for _, s := range d.order {
		if sub, ok := d.activation[s]; ok && sub.window == id {
			delete(d.activation, s)
			continue
		}
		kept = append(kept, s)
	}
	d.order = kept
}

// Subscriptions returns the number of live subscriptions.
func (d *EventDispatcher) Subscriptions() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.windows) + len(d.activation)
}

// Broadcast delivers event in subscription order. Listeners may subscribe or
// unsubscribe while being notified.
func (d *EventDispatcher) Broadcast(event Event) {
	d.mu.RLock()
	var winTargets []dodge.WindowListener
	var actTargets []dodge.ActivationListener
	for _, s := range d.order {
		switch event.Type {
		case EventWindowMapped, EventWindowUnmapped:
			if l, ok := d.windows[s]; ok {
				winTargets = append(winTargets, l)
			}
		case EventActivationChanged:
			if sub, ok := d.activation[s]; ok && sub.window == event.Window {
				actTargets = append(actTargets, sub.listener)
			}
		}
	}
	d.mu.RUnlock()

	for _, l := range winTargets {
		if event.Type == EventWindowMapped {
			l.WindowMapped(event.Window)
		} else {
			l.WindowUnmapped(event.Window)
		}
	}
	for _, l := range actTargets {
		l.ActivationChanged(event.Window, event.Active)
	}
}
