// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package bot

import (
	"sort"

	"github.com/ManuGH/kpai/internal/geo"
	"github.com/ManuGH/kpai/internal/host"
	"github.com/ManuGH/kpai/internal/policy"
	"github.com/ManuGH/kpai/internal/unitclass"
)

// SpotScore is a ranked expansion candidate.
type SpotScore struct {
	Pos       geo.Vec3
	Distance  float64
	Influence int
	Priority  int
}

// RankBuildSpots scores every distinct geo spot of s as seen from origin,
// best first. Spots whose influence is below expansionInfluenceLimit are
// left out.
func (i *Instance) RankBuildSpots(s host.Snapshot, origin geo.Vec3) []SpotScore {
	limit := i.store.Tuning().ExpansionInfluenceLimit
	m := i.influenceMap(s)

	var out []SpotScore
	for _, g := range geo.Dedupe(s.Geos, geo.DuplicateRadius) {
		inf := m.At(g.X, g.Z)
		if inf < limit {
			continue
		}
		d := origin.Distance2D(g)
		out = append(out, SpotScore{
			Pos:       g,
			Distance:  d,
			Influence: inf,
			Priority:  i.calc.BuildSpotPriority(d, float64(inf), s.Map.Width, s.Map.Height),
		})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Priority > out[b].Priority })
	return out
}

// WantedConstructors returns the constructor count the instance aims for.
func (i *Instance) WantedConstructors(s host.Snapshot) int {
	spots := len(geo.Dedupe(s.Geos, geo.DuplicateRadius))
	return i.calc.WantedConstructors(spots, s.Map.Width, s.Map.Height)
}

// ConstructorsToOrder returns how many constructors to queue given those
// alive and those already being built.
func (i *Instance) ConstructorsToOrder(s host.Snapshot, have, pending int) int {
	return policy.ConstructorDeficit(have, pending, i.WantedConstructors(s))
}

// ConstructorOrder asks a home base to produce Count constructors that
// will place Expansion buildings on geo spots.
type ConstructorOrder struct {
	Factory   host.Unit
	Builder   unitclass.Class
	Expansion unitclass.Class
	Count     int
}

// PlanConstructors picks the first friendly home base of s and returns the
// order it should queue. ok is false when no home base is alive or no
// constructor is missing.
func (i *Instance) PlanConstructors(s host.Snapshot, have, pending int) (ConstructorOrder, bool) {
	n := i.ConstructorsToOrder(s, have, pending)
	if n == 0 {
		return ConstructorOrder{}, false
	}
	for _, u := range s.Friends {
		c, err := unitclass.ParseClass(u.Name)
		if err != nil {
			continue
		}
		builder, ok := unitclass.ConstructorFor(c)
		if !ok {
			continue
		}
		expansion, _ := unitclass.ExpansionFor(builder)
		return ConstructorOrder{Factory: u, Builder: builder, Expansion: expansion, Count: n}, true
	}
	return ConstructorOrder{}, false
}

// BuilderRetreatDeadline returns the tick at which a builder retreat
// started at frame ends.
func (i *Instance) BuilderRetreatDeadline(frame int) int {
	return i.calc.BuilderRetreatTimeout(frame)
}
