// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package dodge

import (
	"math"
	"testing"
)

func TestComputeDirectionHorizontalPair(t *testing.T) {
	a := Rect{X: 100, Y: 100, Width: 200, Height: 200}
	b := Rect{X: 500, Y: 100, Width: 200, Height: 200}

	dir := ComputeDirection(a, b)
	if math.Abs(dir.X-(-math.Pi/2)) > 1e-9 {
		t.Fatalf("expected X=-π/2 when `to` sits to the right, got %v", dir.X)
	}
	if dir.Y != 0 {
		t.Fatalf("expected no vertical component, got %v", dir.Y)
	}

	back := ComputeDirection(b, a)
	if math.Abs(back.X-math.Pi/2) > 1e-9 {
		t.Fatalf("expected X=π/2 for the reversed pair, got %v", back.X)
	}
}

func TestComputeDirectionDiagonalIsSoftened(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 300, Y: 100, Width: 100, Height: 100}

	dir := ComputeDirection(a, b)
	dx, dy := -300.0, -100.0
	m := math.Hypot(dx, dy)
	if math.Abs(dir.X-math.Asin(dx/m)) > 1e-12 || math.Abs(dir.Y-math.Asin(dy/m)) > 1e-12 {
		t.Fatalf("unexpected direction %+v", dir)
	}
	if dir.X >= 0 || dir.Y >= 0 {
		t.Fatalf("expected both components negative, got %+v", dir)
	}
	if math.Abs(dir.X) > math.Pi/2 || math.Abs(dir.Y) > math.Pi/2 {
		t.Fatalf("components must stay within [-π/2, π/2], got %+v", dir)
	}
}

func TestComputeDirectionSameCenterIsFinite(t *testing.T) {
	a := Rect{X: 10, Y: 10, Width: 100, Height: 50}
	b := Rect{X: 35, Y: 20, Width: 50, Height: 30}

	dir := ComputeDirection(a, b)
	for _, v := range []float64{dir.X, dir.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("expected finite direction for coincident centers, got %+v", dir)
		}
	}
	if dir != fallbackDirection {
		t.Fatalf("expected fallback direction, got %+v", dir)
	}
}

func TestRectCenter(t *testing.T) {
	x, y := Rect{X: 1, Y: 2, Width: 3, Height: 4}.Center()
	if x != 2.5 || y != 4 {
		t.Fatalf("unexpected center (%v, %v)", x, y)
	}
}
