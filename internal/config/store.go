// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"reflect"
	"sort"

	"github.com/ManuGH/kpai/internal/host"
	"github.com/ManuGH/kpai/internal/policy"
	"github.com/ManuGH/kpai/internal/unitclass"
)

// Store is the merged, read-only configuration table of one AI instance.
// All accessors return copies; a Store is safe to share.
type Store struct {
	tuning  Tuning
	runtime Runtime
	profile policy.Profile
	host    host.Constants
	values  map[string]any
	sources map[string]Source
}

func newStore(reg *Registry, t Tuning, rt Runtime, p policy.Profile, hc host.Constants, sources map[string]Source) *Store {
	v := reflect.ValueOf(t)
	values := make(map[string]any, len(reg.ByName))
	for name, entry := range reg.ByName {
		if val, ok := getField(v, entry.FieldPath); ok {
			values[name] = val
		}
	}
	return &Store{
		tuning:  t,
		runtime: rt,
		profile: p,
		host:    hc,
		values:  values,
		sources: sources,
	}
}

// Get returns the value of the named option. The bool reports whether the
// option exists.
func (s *Store) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Float returns a float option.
func (s *Store) Float(name string) (float64, bool) {
	v, ok := s.values[name].(float64)
	return v, ok
}

// Int returns an integer option.
func (s *Store) Int(name string) (int, bool) {
	v, ok := s.values[name].(int)
	return v, ok
}

// Bool returns a boolean option.
func (s *Store) Bool(name string) (bool, bool) {
	v, ok := s.values[name].(bool)
	return v, ok
}

// Class returns a unit class option.
func (s *Store) Class(name string) (unitclass.Class, bool) {
	v, ok := s.values[name].(unitclass.Class)
	return v, ok
}

// Names returns every option name in sorted order.
func (s *Store) Names() []string {
	out := make([]string, 0, len(s.values))
	for n := range s.values {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Source reports where the named option's value came from.
func (s *Store) Source(name string) (Source, bool) {
	src, ok := s.sources[name]
	return src, ok
}

// Tuning returns a typed copy of the tuning options.
func (s *Store) Tuning() Tuning { return s.tuning }

// Runtime returns the instance settings.
func (s *Store) Runtime() Runtime { return s.runtime }

// Profile returns the selected policy profile.
func (s *Store) Profile() policy.Profile { return s.profile }

// Host returns the host constants the table was built with.
func (s *Store) Host() host.Constants { return s.host }

// Calculator returns the policy calculator for the selected profile.
func (s *Store) Calculator() policy.Calculator {
	return policy.NewCalculator(s.profile, s.host)
}

// Radii returns the unit class radius table.
func (s *Store) Radii() unitclass.Radii {
	return s.tuning.Radii()
}
