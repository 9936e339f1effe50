// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"

	"github.com/ManuGH/kpai/internal/policy"
	"github.com/ManuGH/kpai/internal/unitclass"
	"github.com/ManuGH/kpai/internal/validate"
)

// Validate validates the merged tuning table and runtime settings.
// Returns a validate.ValidationError listing every problem.
func Validate(t Tuning, rt Runtime) error {
	v := validate.New()

	// Distances
	v.NonNegativeFloat("importantRadius", t.ImportantRadius)
	v.NonNegativeFloat("baseSearchRadius", t.BaseSearchRadius)
	v.NonNegativeFloat("gatherMinOffset", t.GatherMinOffset)
	v.NonNegativeFloat("gatherMaxOffset", t.GatherMaxOffset)
	v.Ordered("gatherMinOffset", t.GatherMinOffset, "gatherMaxOffset", t.GatherMaxOffset)
	v.NonNegativeFloat("baseDefenseRadius", t.BaseDefenseRadius)
	v.NonNegativeFloat("builderRetreatMaxDist", t.BuilderRetreatMaxDist)
	v.NonNegativeFloat("builderRetreatMinDist", t.BuilderRetreatMinDist)
	v.Ordered("builderRetreatMinDist", t.BuilderRetreatMinDist, "builderRetreatMaxDist", t.BuilderRetreatMaxDist)
	v.NonNegativeFloat("builderRetreatCheckOffset", t.BuilderRetreatCheckOffset)
	v.NonNegativeFloat("spam_radius", t.SpamRadius)
	v.NonNegativeFloat("pointer_radius", t.PointerRadius)
	v.NonNegativeFloat("dos_radius", t.DosRadius)
	v.NonNegativeFloat("flow_radius", t.FlowRadius)

	// Counts and timeouts
	v.NonNegative("maxBaseStuckCount", t.MaxBaseStuckCount)
	v.NonNegative("rushBaseUnitCount", t.RushBaseUnitCount)
	v.NonNegative("retreatGroupTimeout", t.RetreatGroupTimeout)
	v.NonNegative("attackStateChangeTimeout", t.AttackStateChangeTimeout)

	// Fractions
	v.FloatRange("battleGroupHealthRetreatLimit", t.BattleGroupHealthRetreatLimit, 0, 1)
	v.FloatRange("pr_MOVEOnAttack", t.MoveOnAttackProbability, 0, 1)

	validateRosters(v, t)

	// Runtime
	v.OneOf("profile", rt.Profile, policy.Names())
	v.Custom("logLevel", rt.LogLevel, func(value interface{}) error {
		_, err := validate.ParseLogLevel(value.(string))
		return err
	})
	v.Positive("diagnostics.statusInterval", rt.StatusInterval)
	v.FileName("diagnostics.statusFile", rt.StatusFile)
	v.Directory("dataDir", rt.DataDir, false)

	return v.Err()
}

// validateRosters checks that every faction slot holds a class of that
// faction with the slot's role.
func validateRosters(v *validate.Validator, t Tuning) {
	rosters := t.Rosters()
	for _, faction := range unitclass.Factions() {
		for role, class := range rosters[faction].Slots() {
			field := fmt.Sprintf("%s_%s", faction, role)
			if class.Faction() != faction || class.Role() != role {
				v.AddError(field, fmt.Sprintf("must be a %s %s class, got %s", faction, role, class), class.String())
			}
		}
	}
}
