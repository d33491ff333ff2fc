// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/timeline.go
// Summary: Thread-safe animation timeline with explicit clock and easing.
// Usage: Drives transition progress values from 0 to 1 across frames.
// Notes: Callers pass `now` so the same frame observes one consistent value.

package effects

import (
	"math"
	"sync"
	"time"
)

// EasingFunc maps linear progress [0,1] to an eased value [0,1].
type EasingFunc func(progress float64) float64

var (
	// EaseLinear - No easing, constant speed
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseCircle - Quarter-circle ease-out. Fast start, gentle landing on 1.
	EaseCircle EasingFunc = func(t float64) float64 {
		return math.Sqrt(t * (2.0 - t))
	}
)

// AnimateOptions configures an animation transition
type AnimateOptions struct {
	Duration time.Duration // Animation duration (0 = instant)
	Easing   EasingFunc    // Easing function (default: timeline default)
}

// keyState tracks animation state for a single key
type keyState struct {
	current   float64
	start     float64
	target    float64
	startTime time.Time
	duration  time.Duration
	easing    EasingFunc
}

// Timeline provides per-key animation timelines with automatic state management.
type Timeline struct {
	states         map[interface{}]*keyState
	mu             sync.RWMutex
	defaultEasing  EasingFunc
	defaultInitial float64
}

// NewTimeline creates a new timeline manager.
// defaultInitial is the value reported for keys that were never animated.
func NewTimeline(defaultInitial float64) *Timeline {
	return &Timeline{
		states:         make(map[interface{}]*keyState),
		defaultEasing:  EaseLinear,
		defaultInitial: defaultInitial,
	}
}

// SetDefaultEasing replaces the easing used when AnimateOptions.Easing is nil.
func (tl *Timeline) SetDefaultEasing(easing EasingFunc) {
	if easing == nil {
		return
	}
	tl.mu.Lock()
	tl.defaultEasing = easing
	tl.mu.Unlock()
}

// AnimateTo starts or retargets an animation for key and returns the value at now.
func (tl *Timeline) AnimateTo(key interface{}, target float64, duration time.Duration, now time.Time) float64 {
	return tl.AnimateToWithOptions(key, target, AnimateOptions{Duration: duration}, now)
}

// AnimateToWithOptions starts an animation with a custom easing function.
// An existing animation is retargeted from its current value.
func (tl *Timeline) AnimateToWithOptions(key interface{}, target float64, opts AnimateOptions, now time.Time) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	easing := opts.Easing
	if easing == nil {
		easing = tl.defaultEasing
	}

	state := tl.states[key]
	if state == nil {
		state = &keyState{
			current:   tl.defaultInitial,
			start:     tl.defaultInitial,
			target:    target,
			startTime: now,
			duration:  opts.Duration,
			easing:    easing,
		}
		tl.states[key] = state
		if opts.Duration <= 0 {
			state.current = target
		}
		return state.current
	}

	current := tl.computeValue(state, now)
	state.current = current
	state.start = current
	state.target = target
	state.startTime = now
	state.duration = opts.Duration
	state.easing = easing

	if opts.Duration <= 0 || current == target {
		state.current = target
	}
	return state.current
}

// Get computes, caches and returns the value for key at now.
func (tl *Timeline) Get(key interface{}, now time.Time) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	state := tl.states[key]
	if state == nil {
		return tl.defaultInitial
	}
	state.current = tl.computeValue(state, now)
	return state.current
}

// GetCached returns the last computed value without advancing the clock.
func (tl *Timeline) GetCached(key interface{}) float64 {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	state := tl.states[key]
	if state == nil {
		return tl.defaultInitial
	}
	return state.current
}

// IsAnimating reports whether key still has time left at now.
func (tl *Timeline) IsAnimating(key interface{}, now time.Time) bool {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	state := tl.states[key]
	if state == nil || state.duration <= 0 {
		return false
	}
	return now.Sub(state.startTime) < state.duration && state.start != state.target
}

// Reset removes the timeline state for a key
func (tl *Timeline) Reset(key interface{}) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	delete(tl.states, key)
}

// computeValue must be called with the lock held.
func (tl *Timeline) computeValue(state *keyState, now time.Time) float64 {
	if state.duration <= 0 {
		return state.target
	}
	if now.Before(state.startTime) {
		return state.start
	}
	elapsed := now.Sub(state.startTime)
	if elapsed >= state.duration {
		return state.target
	}

	progress := float64(elapsed) / float64(state.duration)
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}

	easing := state.easing
	if easing == nil {
		easing = tl.defaultEasing
	}
	return state.start + (state.target-state.start)*easing(progress)
}
