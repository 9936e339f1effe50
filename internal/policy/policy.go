// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package policy holds the small stateless calculators the bot consults when
// deciding how many constructors to keep, where to expand and when builders
// should stop retreating.
//
// The constants differ between bot variants; each variant is a named Profile.
package policy

// ConstructorPolicy turns the number of free geo spots into a wanted
// constructor count: geospots / Divisor, clamped to [Min, Max].
// Max == 0 leaves the count uncapped.
type ConstructorPolicy struct {
	Divisor int
	Min     int
	Max     int
}

// Wanted returns the number of constructors to keep alive. Map dimensions
// are accepted for parity with the host callback but do not affect the result.
func (p ConstructorPolicy) Wanted(geospots, _, _ int) int {
	n := 0
	if p.Divisor > 0 {
		n = floorDiv(geospots, p.Divisor)
	}
	if n < p.Min {
		n = p.Min
	}
	if p.Max > 0 && n > p.Max {
		n = p.Max
	}
	return n
}

// Denominator selects how map dimensions normalize distance in the build-spot score.
type Denominator int

const (
	// DenomLinear divides by width + height.
	DenomLinear Denominator = iota
	// DenomScaled divides by (width + height) * square size, i.e. the map
	// perimeter half in elmos.
	DenomScaled
)

func (d Denominator) String() string {
	if d == DenomScaled {
		return "scaled"
	}
	return "linear"
}

// PriorityPolicy ranks build spots: influence - distance/f(width, height)*Scale,
// truncated toward zero.
type PriorityPolicy struct {
	Scale       float64
	Denominator Denominator
}

// Score returns the build-spot priority. squareSize is only used by DenomScaled.
func (p PriorityPolicy) Score(distance, influence float64, width, height, squareSize int) int {
	denom := float64(width + height)
	if p.Denominator == DenomScaled {
		denom *= float64(squareSize)
	}
	if denom <= 0 {
		return int(influence)
	}
	return int(influence - distance/denom*p.Scale)
}

// RetreatPolicy gives a retreating builder a fixed grace period.
type RetreatPolicy struct {
	Seconds int
}

// Deadline returns the tick at which the builder retreat times out.
func (p RetreatPolicy) Deadline(frame, gameSpeed int) int {
	return frame + p.Seconds*gameSpeed
}

// ConstructorDeficit returns how many more constructors to order given the
// ones alive and the ones already queued.
func ConstructorDeficit(have, pending, wanted int) int {
	if d := wanted - have - pending; d > 0 {
		return d
	}
	return 0
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
