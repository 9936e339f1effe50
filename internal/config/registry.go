// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/ManuGH/kpai/internal/host"
	"github.com/ManuGH/kpai/internal/unitclass"
)

// Unit defines how a registry default is scaled by the host constants.
type Unit string

const (
	UnitPlain   Unit = "plain"
	UnitSeconds Unit = "seconds" // default is in game seconds, stored in ticks
	UnitSquares Unit = "squares" // default is in map squares, stored in elmos
)

// Entry defines a single tuning option's metadata.
type Entry struct {
	Name      string // option name as used in override tables (e.g. "importantRadius")
	Env       string // environment variable (e.g. "KPAI_IMPORTANT_RADIUS")
	FieldPath string // Tuning field name (e.g. "ImportantRadius")
	Unit      Unit
	Default   any
}

// Registry manages the tuning option inventory.
type Registry struct {
	ByName  map[string]Entry
	ByField map[string]Entry
	ByEnv   map[string]Entry
}

var (
	globalRegistry    *Registry
	globalRegistryErr error
	registryOnce      sync.Once
)

// GetRegistry returns the option registry.
// It returns an error if the registry contains duplicates or does not cover Tuning.
func GetRegistry() (*Registry, error) {
	registryOnce.Do(func() {
		globalRegistry, globalRegistryErr = buildRegistry(entries())
		if globalRegistryErr == nil {
			globalRegistryErr = globalRegistry.ValidateFieldCoverage()
		}
	})
	return globalRegistry, globalRegistryErr
}

func entries() []Entry {
	return []Entry{
		// --- GROUPS ---
		{Name: "importantRadius", Env: "KPAI_IMPORTANT_RADIUS", FieldPath: "ImportantRadius", Unit: UnitPlain, Default: 1000.0},
		{Name: "maxBaseStuckCount", Env: "KPAI_MAX_BASE_STUCK_COUNT", FieldPath: "MaxBaseStuckCount", Unit: UnitPlain, Default: 3},
		{Name: "baseSearchRadius", Env: "KPAI_BASE_SEARCH_RADIUS", FieldPath: "BaseSearchRadius", Unit: UnitPlain, Default: 16.0},
		{Name: "retreatGroupTimeout", Env: "KPAI_RETREAT_GROUP_TIMEOUT", FieldPath: "RetreatGroupTimeout", Unit: UnitSeconds, Default: 15},
		{Name: "attackStateChangeTimeout", Env: "KPAI_ATTACK_STATE_CHANGE_TIMEOUT", FieldPath: "AttackStateChangeTimeout", Unit: UnitSeconds, Default: 90},
		{Name: "battleGroupHealthRetreatLimit", Env: "KPAI_BATTLE_GROUP_HEALTH_RETREAT_LIMIT", FieldPath: "BattleGroupHealthRetreatLimit", Unit: UnitPlain, Default: 0.2},
		{Name: "gatherMinOffset", Env: "KPAI_GATHER_MIN_OFFSET", FieldPath: "GatherMinOffset", Unit: UnitSquares, Default: 8.0},
		{Name: "gatherMaxOffset", Env: "KPAI_GATHER_MAX_OFFSET", FieldPath: "GatherMaxOffset", Unit: UnitSquares, Default: 24.0},
		{Name: "baseDefenseRadius", Env: "KPAI_BASE_DEFENSE_RADIUS", FieldPath: "BaseDefenseRadius", Unit: UnitPlain, Default: 1536.0},
		{Name: "rushBaseUnitCount", Env: "KPAI_RUSH_BASE_UNIT_COUNT", FieldPath: "RushBaseUnitCount", Unit: UnitPlain, Default: 250},

		// --- BUILDERS ---
		{Name: "builderRetreatMaxDist", Env: "KPAI_BUILDER_RETREAT_MAX_DIST", FieldPath: "BuilderRetreatMaxDist", Unit: UnitSquares, Default: 40.0},
		{Name: "builderRetreatMinDist", Env: "KPAI_BUILDER_RETREAT_MIN_DIST", FieldPath: "BuilderRetreatMinDist", Unit: UnitSquares, Default: 10.0},
		{Name: "builderRetreatCheckOffset", Env: "KPAI_BUILDER_RETREAT_CHECK_OFFSET", FieldPath: "BuilderRetreatCheckOffset", Unit: UnitSquares, Default: 10.0},
		{Name: "expansionInfluenceLimit", Env: "KPAI_EXPANSION_INFLUENCE_LIMIT", FieldPath: "ExpansionInfluenceLimit", Unit: UnitPlain, Default: 0},

		// --- UNITS ---
		{Name: "spam_radius", Env: "KPAI_SPAM_RADIUS", FieldPath: "SpamRadius", Unit: UnitPlain, Default: 384.0},

		{Name: "system_spam", Env: "KPAI_SYSTEM_SPAM", FieldPath: "SystemSpam", Unit: UnitPlain, Default: unitclass.Bit},
		{Name: "system_heavy", Env: "KPAI_SYSTEM_HEAVY", FieldPath: "SystemHeavy", Unit: UnitPlain, Default: unitclass.Byte},
		{Name: "system_arty", Env: "KPAI_SYSTEM_ARTY", FieldPath: "SystemArty", Unit: UnitPlain, Default: unitclass.Pointer},
		{Name: "pointer_radius", Env: "KPAI_POINTER_RADIUS", FieldPath: "PointerRadius", Unit: UnitPlain, Default: 1400.0},

		{Name: "hacker_spam", Env: "KPAI_HACKER_SPAM", FieldPath: "HackerSpam", Unit: UnitPlain, Default: unitclass.Bug},
		{Name: "hacker_heavy", Env: "KPAI_HACKER_HEAVY", FieldPath: "HackerHeavy", Unit: UnitPlain, Default: unitclass.Worm},
		{Name: "hacker_arty", Env: "KPAI_HACKER_ARTY", FieldPath: "HackerArty", Unit: UnitPlain, Default: unitclass.DoS},
		{Name: "dos_radius", Env: "KPAI_DOS_RADIUS", FieldPath: "DosRadius", Unit: UnitPlain, Default: 768.0},

		{Name: "network_spam", Env: "KPAI_NETWORK_SPAM", FieldPath: "NetworkSpam", Unit: UnitPlain, Default: unitclass.Packet},
		{Name: "network_heavy", Env: "KPAI_NETWORK_HEAVY", FieldPath: "NetworkHeavy", Unit: UnitPlain, Default: unitclass.Connection},
		{Name: "network_arty", Env: "KPAI_NETWORK_ARTY", FieldPath: "NetworkArty", Unit: UnitPlain, Default: unitclass.Flow},
		{Name: "flow_radius", Env: "KPAI_FLOW_RADIUS", FieldPath: "FlowRadius", Unit: UnitPlain, Default: 500.0},

		// --- PROBABILITIES ---
		{Name: "pr_MOVEOnAttack", Env: "KPAI_PR_MOVE_ON_ATTACK", FieldPath: "MoveOnAttackProbability", Unit: UnitPlain, Default: 0.1},

		// --- DEBUGGING ---
		{Name: "debugDrawLines", Env: "KPAI_DEBUG_DRAW_LINES", FieldPath: "DebugDrawLines", Unit: UnitPlain, Default: false},
		{Name: "debugMessages", Env: "KPAI_DEBUG_MESSAGES", FieldPath: "DebugMessages", Unit: UnitPlain, Default: false},
	}
}

func buildRegistry(list []Entry) (*Registry, error) {
	r := &Registry{
		ByName:  make(map[string]Entry),
		ByField: make(map[string]Entry),
		ByEnv:   make(map[string]Entry),
	}

	for _, e := range list {
		if e.Name == "" || e.FieldPath == "" {
			return nil, fmt.Errorf("registry entry without name or field: %+v", e)
		}
		if _, dup := r.ByName[e.Name]; dup {
			return nil, fmt.Errorf("duplicate registry name: %s", e.Name)
		}
		r.ByName[e.Name] = e
		if _, dup := r.ByField[e.FieldPath]; dup {
			return nil, fmt.Errorf("duplicate registry field: %s", e.FieldPath)
		}
		r.ByField[e.FieldPath] = e
		if e.Env != "" {
			if _, dup := r.ByEnv[e.Env]; dup {
				return nil, fmt.Errorf("duplicate registry env: %s", e.Env)
			}
			r.ByEnv[e.Env] = e
		}
	}

	return r, nil
}

// Names returns every option name in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.ByName))
	for n := range r.ByName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ValidateFieldCoverage uses reflection to ensure every Tuning field is registered
// and every registered field exists.
func (r *Registry) ValidateFieldCoverage() error {
	t := reflect.TypeOf(Tuning{})
	seen := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		seen[f.Name] = struct{}{}
		if _, ok := r.ByField[f.Name]; !ok {
			return fmt.Errorf("field %q is not registered in the tuning registry", f.Name)
		}
	}
	for field := range r.ByField {
		if _, ok := seen[field]; !ok {
			return fmt.Errorf("registry field %q does not exist on Tuning", field)
		}
	}
	return nil
}

// ApplyDefaults writes every registered default into t, scaled by hc.
// Returns an error if any default cannot be set (indicates registry misconfiguration).
func (r *Registry) ApplyDefaults(t *Tuning, hc host.Constants) error {
	v := reflect.ValueOf(t).Elem()
	for _, entry := range r.ByField {
		if entry.Default == nil {
			continue
		}
		val, err := scaleDefault(entry, hc)
		if err != nil {
			return err
		}
		if err := setField(v, entry.FieldPath, val); err != nil {
			return fmt.Errorf("failed to set default for %s: %w", entry.FieldPath, err)
		}
	}
	return nil
}

func scaleDefault(e Entry, hc host.Constants) (any, error) {
	switch e.Unit {
	case UnitPlain, "":
		return e.Default, nil
	case UnitSeconds:
		s, ok := e.Default.(int)
		if !ok {
			return nil, fmt.Errorf("default for %s: seconds must be int, got %T", e.Name, e.Default)
		}
		return hc.Seconds(s), nil
	case UnitSquares:
		n, ok := e.Default.(float64)
		if !ok {
			return nil, fmt.Errorf("default for %s: squares must be float64, got %T", e.Name, e.Default)
		}
		return hc.Squares(n), nil
	default:
		return nil, fmt.Errorf("default for %s: unknown unit %q", e.Name, e.Unit)
	}
}

func setField(v reflect.Value, fieldPath string, value any) error {
	f := v.FieldByName(fieldPath)
	if !f.IsValid() {
		return fmt.Errorf("field %s not found", fieldPath)
	}
	val := reflect.ValueOf(value)
	if f.Type() != val.Type() {
		// Try to convert if possible (e.g. int to float64)
		if !val.Type().ConvertibleTo(f.Type()) {
			return fmt.Errorf("type mismatch for %s: expected %v, got %v", fieldPath, f.Type(), val.Type())
		}
		val = val.Convert(f.Type())
	}
	f.Set(val)
	return nil
}

func getField(v reflect.Value, fieldPath string) (any, bool) {
	f := v.FieldByName(fieldPath)
	if !f.IsValid() {
		return nil, false
	}
	return f.Interface(), true
}
