// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dodge/direction.go
// Summary: Computes the swing direction between two windows.

package dodge

import "math"

// Direction biases the per-axis swing of a transition. Components lie in
// [-π/2, π/2]; it is not a unit vector.
type Direction struct {
	X float64
	Y float64
}

// fallbackDirection is used when both boxes share a center.
var fallbackDirection = Direction{X: 1, Y: 0}

// ComputeDirection returns how `to` appears to emerge relative to `from`.
// The normalized center delta is remapped through asin so near axis-aligned
// pairs get a softer perpendicular swing.
func ComputeDirection(from, to Rect) Direction {
	fx, fy := from.Center()
	tx, ty := to.Center()
	dx, dy := fx-tx, fy-ty

	m := math.Hypot(dx, dy)
	if m == 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return fallbackDirection
	}
	return Direction{
		X: math.Asin(clampUnit(dx / m)),
		Y: math.Asin(clampUnit(dy / m)),
	}
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
