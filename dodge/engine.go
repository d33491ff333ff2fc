// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dodge/engine.go
// Summary: Transition state machine for the window swap ("dodge") effect.
// Usage: Fed by Gate notifications; ticked by the host once per frame.
// Notes: Single-threaded. Every call must come from the host's event/render loop.

package dodge

import (
	"math"
	"time"

	"github.com/framegrace/texeldodge/internal/effects"
)

const (
	progressKey = "dodge.progress"

	// handoffThreshold is the progress past which focus moves.
	handoffThreshold = 0.5

	// DefaultDuration is the full swing time.
	DefaultDuration = 2000 * time.Millisecond
)

// Options configures an Engine.
type Options struct {
	Duration time.Duration
	Policy   Policy
	Clock    func() time.Time
	Listener TransitionListener
}

// DefaultOptions returns the directional policy over DefaultDuration.
func DefaultOptions() Options {
	return Options{
		Duration: DefaultDuration,
		Policy:   DefaultPolicy(),
	}
}

// Engine owns at most one Transition and drives it frame by frame.
type Engine struct {
	host        Host
	opts        Options
	timeline    *effects.Timeline
	tr          *Transition
	lastFocused WindowID
	closed      bool
}

// NewEngine wires an engine to its host.
func NewEngine(host Host, opts Options) *Engine {
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	tl := effects.NewTimeline(0)
	tl.SetDefaultEasing(effects.EaseCircle)
	return &Engine{
		host:        host,
		opts:        opts,
		timeline:    tl,
		tr:          newTransition(),
		lastFocused: host.ActiveWindow(),
	}
}

// OnActivation handles a window becoming the active window.
func (e *Engine) OnActivation(id WindowID) {
	if e.closed || id.IsZero() {
		return
	}
	if id == e.lastFocused {
		e.lastFocused = e.host.ActiveWindow()
		return
	}

	running := e.Running()
	var from, to WindowID
	if !running {
		from, to = e.lastFocused, id
	}
	e.lastFocused = e.host.ActiveWindow()

	if running {
		debugLog.Printf("[DODGE] Activation of %s ignored, transition running", id)
		return
	}
	if from.IsZero() || to.IsZero() || from == to {
		return
	}
	if !e.host.Alive(from) || !e.host.Alive(to) {
		return
	}
	e.start(from, to)
}

// OnWindowRemoved handles a window being unmapped or destroyed. A transition
// that loses an endpoint is finished immediately.
func (e *Engine) OnWindowRemoved(id WindowID) {
	if e.closed {
		return
	}
	e.lastFocused = e.host.ActiveWindow()
	if e.tr.phase == PhaseIdle || id.IsZero() {
		return
	}
	hit := false
	if id == e.tr.from {
		e.tr.fromGone = true
		hit = true
	}
	if id == e.tr.to {
		e.tr.toGone = true
		hit = true
	}
	if hit {
		debugLog.Printf("[DODGE] Window %s removed mid-transition, finishing", id)
		e.finish(true)
	}
}

// Tick advances the running transition by one frame and reports whether it
// is still running afterwards.
func (e *Engine) Tick() bool {
	if e.tr.phase != PhaseRunning {
		return false
	}
	e.damage()
	running := e.step()
	e.damage()
	if !running {
		e.finish(false)
	}
	return running
}

// Close releases every offset and frame hook still held, whatever the phase.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.finish(true)
	e.closed = true
}

// Phase reports the lifecycle stage.
func (e *Engine) Phase() Phase { return e.tr.phase }

// Running reports whether a transition is in flight.
func (e *Engine) Running() bool { return e.tr.phase == PhaseRunning }

// Progress returns the progress computed on the latest frame.
func (e *Engine) Progress() float64 {
	if e.tr.phase == PhaseIdle {
		return 0
	}
	return e.timeline.GetCached(progressKey)
}

// Current returns the windows of the active transition.
func (e *Engine) Current() (from, to WindowID) { return e.tr.from, e.tr.to }

// Direction returns the direction of the running transition.
func (e *Engine) Direction() (Direction, bool) {
	if e.tr.phase != PhaseRunning {
		return Direction{}, false
	}
	return e.tr.direction, true
}

// HandedOff reports whether focus already moved in this transition.
func (e *Engine) HandedOff() bool { return e.tr.handedOff }

// LastFocused returns the window the engine treats as previously focused.
func (e *Engine) LastFocused() WindowID { return e.lastFocused }

func (e *Engine) start(from, to WindowID) {
	tr := e.tr
	tr.from, tr.to = from, to
	tr.phase = PhaseStarting

	e.host.Raise(to)

	var ok bool
	if tr.fromOffset, ok = e.host.AttachOffset(from, OffsetFrom); !ok {
		e.cancelStart()
		return
	}
	if tr.toOffset, ok = e.host.AttachOffset(to, OffsetTo); !ok {
		e.cancelStart()
		return
	}
	e.hookOutput(from)
	e.hookOutput(to)

	if e.opts.Policy.Directional {
		fromBox, _ := e.host.Bounds(from)
		toBox, _ := e.host.Bounds(to)
		tr.direction = ComputeDirection(fromBox, toBox)
	} else {
		tr.direction = fallbackDirection
	}
	tr.handedOff = false

	now := e.opts.Clock()
	tr.startedAt = now
	e.timeline.Reset(progressKey)
	e.timeline.AnimateTo(progressKey, 1, e.opts.Duration, now)
	tr.phase = PhaseRunning

	debugLog.Printf("[DODGE] Transition %s -> %s started, direction (%.3f, %.3f)", from, to, tr.direction.X, tr.direction.Y)
	if e.opts.Listener != nil {
		e.opts.Listener.TransitionStarted(tr.record())
	}
}

// cancelStart undoes a start that failed before listeners heard of it.
func (e *Engine) cancelStart() {
	tr := e.tr
	if tr.fromOffset != nil && e.host.Alive(tr.from) {
		e.host.DetachOffset(tr.from, OffsetFrom)
	}
	debugLog.Printf("[DODGE] Transition %s -> %s not started, offset attach failed", tr.from, tr.to)
	tr.reset()
}

func (e *Engine) hookOutput(id WindowID) {
	out, ok := e.host.Output(id)
	if !ok {
		return
	}
	if _, exists := e.tr.hooks[out]; exists {
		return
	}
	e.tr.hooks[out] = e.host.AddFrameHook(out, func() { e.Tick() })
}

func (e *Engine) damage() {
	tr := e.tr
	if !tr.fromGone && !tr.from.IsZero() && e.host.Alive(tr.from) {
		e.host.Damage(tr.from)
	}
	if !tr.toGone && !tr.to.IsZero() && e.host.Alive(tr.to) {
		e.host.Damage(tr.to)
	}
}

// step recomputes offsets for the current frame.
func (e *Engine) step() bool {
	tr := e.tr
	if !tr.endpoints() || tr.fromOffset == nil || tr.toOffset == nil {
		return false
	}
	fromBox, ok := e.host.Bounds(tr.from)
	if !ok {
		return false
	}
	toBox, ok := e.host.Bounds(tr.to)
	if !ok {
		return false
	}

	now := e.opts.Clock()
	progress := e.timeline.Get(progressKey, now)
	s := math.Sin(progress * math.Pi)
	if progress >= 1 {
		s = 0
	}

	var dx, dy float64
	if e.opts.Policy.Directional {
		dx = s * tr.direction.X * float64(min(fromBox.Width, toBox.Width)) * 0.5
		dy = s * tr.direction.Y * float64(min(fromBox.Height, toBox.Height)) * 0.5
	} else {
		dx = s * float64(max(fromBox.Width, toBox.Width)) * 0.5
	}
	tr.fromOffset.SetTranslation(dx, dy)
	tr.toOffset.SetTranslation(-dx, -dy)

	if progress > handoffThreshold && !tr.handedOff {
		target := tr.to
		if e.opts.Policy.Handoff == HandoffFrom {
			target = tr.from
		}
		tr.handedOff = true
		e.host.Focus(target)
		e.host.Raise(target)
		debugLog.Printf("[DODGE] Focus handed off to %s at progress %.3f", target, progress)
	}

	return e.timeline.IsAnimating(progressKey, now)
}

// finish detaches everything and returns to idle.
func (e *Engine) finish(aborted bool) {
	tr := e.tr
	if tr.phase == PhaseIdle {
		return
	}
	for _, hook := range tr.hooks {
		e.host.RemoveFrameHook(hook)
	}
	if !tr.from.IsZero() && !tr.fromGone && e.host.Alive(tr.from) {
		e.host.DetachOffset(tr.from, OffsetFrom)
	}
	if !tr.to.IsZero() && !tr.toGone && e.host.Alive(tr.to) {
		e.host.DetachOffset(tr.to, OffsetTo)
	}
	e.timeline.Reset(progressKey)

	rec := tr.record()
	rec.Finished = e.opts.Clock()
	rec.Aborted = aborted
	tr.reset()

	debugLog.Printf("[DODGE] Transition %s -> %s finished (aborted=%v)", rec.From, rec.To, aborted)
	if e.opts.Listener != nil {
		e.opts.Listener.TransitionFinished(rec)
	}
}
