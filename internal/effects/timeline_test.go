// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package effects

import (
	"math"
	"testing"
	"time"
)

func TestTimelineReachesTargetExactly(t *testing.T) {
	tl := NewTimeline(0)
	start := time.Unix(100, 0)
	tl.AnimateTo("p", 1, time.Second, start)

	if got := tl.Get("p", start); got != 0 {
		t.Fatalf("expected 0 at start, got %v", got)
	}
	if got := tl.Get("p", start.Add(500*time.Millisecond)); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected 0.5 halfway with linear easing, got %v", got)
	}
	if got := tl.Get("p", start.Add(time.Second)); got != 1 {
		t.Fatalf("expected exactly 1 at the end, got %v", got)
	}
	if tl.IsAnimating("p", start.Add(time.Second)) {
		t.Fatalf("expected animation to be finished at its duration")
	}
	if !tl.IsAnimating("p", start.Add(999*time.Millisecond)) {
		t.Fatalf("expected animation to be running before its duration")
	}
}

func TestTimelineProgressMonotonic(t *testing.T) {
	tl := NewTimeline(0)
	tl.SetDefaultEasing(EaseCircle)
	start := time.Unix(0, 0)
	tl.AnimateTo("p", 1, 2*time.Second, start)

	prev := -1.0
	for ms := 0; ms <= 2100; ms += 16 {
		v := tl.Get("p", start.Add(time.Duration(ms)*time.Millisecond))
		if v < prev {
			t.Fatalf("progress went backwards at %dms: %v < %v", ms, v, prev)
		}
		if v < 0 || v > 1 {
			t.Fatalf("progress out of range at %dms: %v", ms, v)
		}
		prev = v
	}
	if prev != 1 {
		t.Fatalf("expected final progress 1, got %v", prev)
	}
}

func TestTimelineZeroDurationJumps(t *testing.T) {
	tl := NewTimeline(0)
	now := time.Unix(0, 0)
	if got := tl.AnimateTo("k", 1, 0, now); got != 1 {
		t.Fatalf("expected instant jump to 1, got %v", got)
	}
	if tl.IsAnimating("k", now) {
		t.Fatalf("zero-duration animation should not report animating")
	}
}

func TestTimelineResetRestoresDefault(t *testing.T) {
	tl := NewTimeline(0)
	now := time.Unix(0, 0)
	tl.AnimateTo("k", 1, time.Second, now)
	tl.Get("k", now.Add(500*time.Millisecond))
	tl.Reset("k")
	if got := tl.GetCached("k"); got != 0 {
		t.Fatalf("expected default after reset, got %v", got)
	}
	if tl.IsAnimating("k", now) {
		t.Fatalf("expected no animation after reset")
	}
}

func TestEaseCircleEndpoints(t *testing.T) {
	if EaseCircle(0) != 0 || EaseCircle(1) != 1 {
		t.Fatalf("circle easing must map 0->0 and 1->1, got %v %v", EaseCircle(0), EaseCircle(1))
	}
}
