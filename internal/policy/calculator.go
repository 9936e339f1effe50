// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package policy

import "github.com/ManuGH/kpai/internal/host"

// Calculator binds a profile to the host constants of a running game.
type Calculator struct {
	profile Profile
	host    host.Constants
}

// NewCalculator returns a calculator for profile p.
func NewCalculator(p Profile, hc host.Constants) Calculator {
	return Calculator{profile: p, host: hc}
}

// Profile returns the bound profile.
func (c Calculator) Profile() Profile { return c.profile }

// WantedConstructors returns the desired constructor count for the given
// number of build spots and map size (in squares).
func (c Calculator) WantedConstructors(geospots, width, height int) int {
	return c.profile.Constructors.Wanted(geospots, width, height)
}

// BuildSpotPriority scores a build spot at distance elmos away with the
// given faction influence.
func (c Calculator) BuildSpotPriority(distance, influence float64, width, height int) int {
	return c.profile.Priority.Score(distance, influence, width, height, c.host.SquareSize)
}

// BuilderRetreatTimeout returns the tick at which a builder retreat started
// at frame ends.
func (c Calculator) BuilderRetreatTimeout(frame int) int {
	return c.profile.Retreat.Deadline(frame, c.host.GameSpeed)
}
