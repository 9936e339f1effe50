// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "github.com/ManuGH/kpai/internal/unitclass"

// Tuning holds every recognized tuning option. Distances are in elmos,
// timeouts in ticks. Defaults live in the registry.
type Tuning struct {
	// An attacking group with an important target inside this radius is
	// less likely to retreat.
	ImportantRadius float64 `yaml:"importantRadius" json:"importantRadius"`

	// Control of units that never leave the base (e.g. builders on spooler maps).
	MaxBaseStuckCount int     `yaml:"maxBaseStuckCount" json:"maxBaseStuckCount"`
	BaseSearchRadius  float64 `yaml:"baseSearchRadius" json:"baseSearchRadius"`

	RetreatGroupTimeout      int `yaml:"retreatGroupTimeout" json:"retreatGroupTimeout"`
	AttackStateChangeTimeout int `yaml:"attackStateChangeTimeout" json:"attackStateChangeTimeout"`

	// Fraction of starting health below which a battle group retreats.
	BattleGroupHealthRetreatLimit float64 `yaml:"battleGroupHealthRetreatLimit" json:"battleGroupHealthRetreatLimit"`

	GatherMinOffset float64 `yaml:"gatherMinOffset" json:"gatherMinOffset"`
	GatherMaxOffset float64 `yaml:"gatherMaxOffset" json:"gatherMaxOffset"`

	BaseDefenseRadius float64 `yaml:"baseDefenseRadius" json:"baseDefenseRadius"`

	// Once the gather group exceeds this many units it heads for the enemy base.
	RushBaseUnitCount int `yaml:"rushBaseUnitCount" json:"rushBaseUnitCount"`

	BuilderRetreatMaxDist     float64 `yaml:"builderRetreatMaxDist" json:"builderRetreatMaxDist"`
	BuilderRetreatMinDist     float64 `yaml:"builderRetreatMinDist" json:"builderRetreatMinDist"`
	BuilderRetreatCheckOffset float64 `yaml:"builderRetreatCheckOffset" json:"builderRetreatCheckOffset"`

	// Influence < 0 is enemy territory, > 0 friendly.
	ExpansionInfluenceLimit int `yaml:"expansionInfluenceLimit" json:"expansionInfluenceLimit"`

	SpamRadius float64 `yaml:"spam_radius" json:"spam_radius"`

	SystemSpam    unitclass.Class `yaml:"system_spam" json:"system_spam"`
	SystemHeavy   unitclass.Class `yaml:"system_heavy" json:"system_heavy"`
	SystemArty    unitclass.Class `yaml:"system_arty" json:"system_arty"`
	PointerRadius float64         `yaml:"pointer_radius" json:"pointer_radius"`

	HackerSpam  unitclass.Class `yaml:"hacker_spam" json:"hacker_spam"`
	HackerHeavy unitclass.Class `yaml:"hacker_heavy" json:"hacker_heavy"`
	HackerArty  unitclass.Class `yaml:"hacker_arty" json:"hacker_arty"`
	DosRadius   float64         `yaml:"dos_radius" json:"dos_radius"`

	NetworkSpam  unitclass.Class `yaml:"network_spam" json:"network_spam"`
	NetworkHeavy unitclass.Class `yaml:"network_heavy" json:"network_heavy"`
	NetworkArty  unitclass.Class `yaml:"network_arty" json:"network_arty"`
	FlowRadius   float64         `yaml:"flow_radius" json:"flow_radius"`

	MoveOnAttackProbability float64 `yaml:"pr_MOVEOnAttack" json:"pr_MOVEOnAttack"`

	DebugDrawLines bool `yaml:"debugDrawLines" json:"debugDrawLines"`
	DebugMessages  bool `yaml:"debugMessages" json:"debugMessages"`
}

// Rosters returns the configured spam/heavy/arty classes per faction.
func (t Tuning) Rosters() map[unitclass.Faction]unitclass.Roster {
	return map[unitclass.Faction]unitclass.Roster{
		unitclass.FactionSystem:  {Spam: t.SystemSpam, Heavy: t.SystemHeavy, Arty: t.SystemArty},
		unitclass.FactionHacker:  {Spam: t.HackerSpam, Heavy: t.HackerHeavy, Arty: t.HackerArty},
		unitclass.FactionNetwork: {Spam: t.NetworkSpam, Heavy: t.NetworkHeavy, Arty: t.NetworkArty},
	}
}

// Radii returns the behavioral radius table for the configured rosters.
func (t Tuning) Radii() unitclass.Radii {
	return unitclass.BuildRadii(t.Rosters(), t.SpamRadius, map[unitclass.Class]float64{
		t.SystemArty:  t.PointerRadius,
		t.HackerArty:  t.DosRadius,
		t.NetworkArty: t.FlowRadius,
	})
}
