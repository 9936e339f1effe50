// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package geo holds world-space positions as the host engine reports them.
package geo

import "math"

// DuplicateRadius is the distance under which two geo spots are treated as
// the same spot. Some maps place duplicate geovents on top of each other.
const DuplicateRadius = 64.0

// Vec3 is a world position in elmos. Y is height; the map plane is X/Z.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// SqDistance2D returns the squared distance between a and b on the map plane.
func (a Vec3) SqDistance2D(b Vec3) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return dx*dx + dz*dz
}

// Distance2D returns the distance between a and b on the map plane.
func (a Vec3) Distance2D(b Vec3) float64 {
	return math.Sqrt(a.SqDistance2D(b))
}

// Dedupe returns spots in input order, dropping any spot within radius of
// one already kept.
func Dedupe(spots []Vec3, radius float64) []Vec3 {
	limit := radius * radius
	out := make([]Vec3, 0, len(spots))
next:
	for _, s := range spots {
		for _, kept := range out {
			if kept.SqDistance2D(s) <= limit {
				continue next
			}
		}
		out = append(out, s)
	}
	return out
}
