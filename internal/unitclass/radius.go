// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package unitclass

// Radii maps unit classes to the behavioral radius the bot uses when
// positioning them. Classes without an entry have no special radius.
type Radii map[Class]float64

// Lookup returns the radius configured for c.
func (r Radii) Lookup(c Class) (float64, bool) {
	v, ok := r[c]
	return v, ok
}

// Roster names the spam, heavy and artillery class a faction fields.
type Roster struct {
	Spam  Class
	Heavy Class
	Arty  Class
}

// Slots returns the roster entries keyed by the role they fill.
func (r Roster) Slots() map[Role]Class {
	return map[Role]Class{
		RoleSpam:  r.Spam,
		RoleHeavy: r.Heavy,
		RoleArty:  r.Arty,
	}
}

// BuildRadii derives the radius table from per-faction rosters: every spam
// class shares spamRadius, artillery classes take their own entry from arty.
func BuildRadii(rosters map[Faction]Roster, spamRadius float64, arty map[Class]float64) Radii {
	out := make(Radii)
	for _, roster := range rosters {
		if roster.Spam.Valid() {
			out[roster.Spam] = spamRadius
		}
		if r, ok := arty[roster.Arty]; ok && roster.Arty.Valid() {
			out[roster.Arty] = r
		}
	}
	return out
}
