// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package policy

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownProfile is returned when a profile name is not registered.
var ErrUnknownProfile = errors.New("unknown policy profile")

// Profile names shipped with the bot.
const (
	ProfileBaseline = "baseline"
	ProfileCapped   = "capped"
)

// DefaultProfile is used when no profile is configured.
const DefaultProfile = ProfileBaseline

// Profile bundles the calculator constants of one bot variant.
type Profile struct {
	Name         string
	Constructors ConstructorPolicy
	Priority     PriorityPolicy
	Retreat      RetreatPolicy
}

var profiles = map[string]Profile{
	ProfileBaseline: {
		Name:         ProfileBaseline,
		Constructors: ConstructorPolicy{Divisor: 4, Min: 1},
		Priority:     PriorityPolicy{Scale: 10, Denominator: DenomLinear},
		Retreat:      RetreatPolicy{Seconds: 10},
	},
	ProfileCapped: {
		Name:         ProfileCapped,
		Constructors: ConstructorPolicy{Divisor: 4, Min: 1, Max: 3},
		Priority:     PriorityPolicy{Scale: 10, Denominator: DenomScaled},
		Retreat:      RetreatPolicy{Seconds: 10},
	},
}

// Lookup returns the named profile. The empty name selects DefaultProfile.
func Lookup(name string) (Profile, error) {
	if name == "" {
		name = DefaultProfile
	}
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownProfile, name, Names())
	}
	return p, nil
}

// Names lists the registered profile names in sorted order.
func Names() []string {
	out := make([]string, 0, len(profiles))
	for n := range profiles {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
