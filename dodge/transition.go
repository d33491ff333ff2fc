// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dodge/transition.go
// Summary: The single in-flight transition and the policy that shapes it.

package dodge

import (
	"strings"
	"time"
)

// Offset names attached to the two windows of a transition.
const (
	OffsetFrom = "dodge_transformer_from"
	OffsetTo   = "dodge_transformer_to"
)

// Phase is the lifecycle stage of the engine's transition.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseStarting
	PhaseRunning
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseStarting:
		return "starting"
	case PhaseRunning:
		return "running"
	default:
		return "unknown"
	}
}

// HandoffTarget selects which window receives focus at the halfway point.
type HandoffTarget int

const (
	// HandoffTo focuses the newly activated window.
	HandoffTo HandoffTarget = iota
	// HandoffFrom focuses the previously focused window, as the horizontal-only engine did.
	HandoffFrom
)

func (h HandoffTarget) String() string {
	if h == HandoffFrom {
		return "from"
	}
	return "to"
}

// ParseHandoffTarget accepts "to" or "from"; anything else yields HandoffTo.
func ParseHandoffTarget(s string) HandoffTarget {
	if strings.EqualFold(strings.TrimSpace(s), "from") {
		return HandoffFrom
	}
	return HandoffTo
}

// Policy selects between the directional and the horizontal-only swing.
type Policy struct {
	Directional bool
	Handoff     HandoffTarget
}

// DefaultPolicy is the directional swing handing focus to the new window.
func DefaultPolicy() Policy {
	return Policy{Directional: true, Handoff: HandoffTo}
}

// Transition is the engine-owned state of one from/to swap.
type Transition struct {
	from, to         WindowID
	fromGone, toGone bool
	direction        Direction
	handedOff        bool
	phase            Phase
	startedAt        time.Time

	fromOffset, toOffset Offset
	hooks                map[OutputID]FrameHookID
}

func newTransition() *Transition {
	return &Transition{hooks: make(map[OutputID]FrameHookID)}
}

// reset returns the transition to idle, dropping every reference.
func (t *Transition) reset() {
	*t = Transition{hooks: make(map[OutputID]FrameHookID)}
}

// endpoints reports whether both windows are set and not marked gone.
func (t *Transition) endpoints() bool {
	return !t.from.IsZero() && !t.to.IsZero() && !t.fromGone && !t.toGone
}

// Record summarizes a transition for listeners.
type Record struct {
	From      WindowID
	To        WindowID
	Direction Direction
	Started   time.Time
	Finished  time.Time
	HandedOff bool
	Aborted   bool
}

func (t *Transition) record() Record {
	return Record{
		From:      t.from,
		To:        t.to,
		Direction: t.direction,
		Started:   t.startedAt,
		HandedOff: t.handedOff,
	}
}
