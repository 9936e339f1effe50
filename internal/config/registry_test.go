// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"testing"

	"github.com/ManuGH/kpai/internal/host"
	"github.com/ManuGH/kpai/internal/unitclass"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Integrity(t *testing.T) {
	reg, err := GetRegistry()
	require.NoError(t, err)
	require.NoError(t, reg.ValidateFieldCoverage())

	assert.Len(t, reg.ByName, 30)
	assert.Len(t, reg.ByField, 30)
	assert.Len(t, reg.ByEnv, 30)

	for name, e := range reg.ByName {
		assert.NotEmpty(t, e.Env, "option %s has no env key", name)
		assert.NotNil(t, e.Default, "option %s has no default", name)
	}
}

func TestRegistry_DuplicateDetection(t *testing.T) {
	_, err := buildRegistry([]Entry{
		{Name: "a", Env: "KPAI_A", FieldPath: "ImportantRadius"},
		{Name: "a", Env: "KPAI_B", FieldPath: "BaseSearchRadius"},
	})
	assert.ErrorContains(t, err, "duplicate registry name")

	_, err = buildRegistry([]Entry{
		{Name: "a", Env: "KPAI_A", FieldPath: "ImportantRadius"},
		{Name: "b", Env: "KPAI_A", FieldPath: "BaseSearchRadius"},
	})
	assert.ErrorContains(t, err, "duplicate registry env")

	_, err = buildRegistry([]Entry{
		{Name: "a", Env: "KPAI_A", FieldPath: "ImportantRadius"},
		{Name: "b", Env: "KPAI_B", FieldPath: "ImportantRadius"},
	})
	assert.ErrorContains(t, err, "duplicate registry field")
}

func TestRegistry_CoverageDetectsMissingField(t *testing.T) {
	reg, err := buildRegistry([]Entry{
		{Name: "importantRadius", FieldPath: "ImportantRadius"},
	})
	require.NoError(t, err)
	assert.Error(t, reg.ValidateFieldCoverage())

	reg, err = buildRegistry(append(entries(), Entry{Name: "ghost", FieldPath: "Ghost"}))
	require.NoError(t, err)
	assert.ErrorContains(t, reg.ValidateFieldCoverage(), "Ghost")
}

func TestApplyDefaults_ScalesUnits(t *testing.T) {
	reg, err := GetRegistry()
	require.NoError(t, err)

	hc := host.Constants{GameSpeed: 60, MaxUnits: 100, SquareSize: 16}
	var tun Tuning
	require.NoError(t, reg.ApplyDefaults(&tun, hc))

	assert.Equal(t, 15*60, tun.RetreatGroupTimeout)
	assert.Equal(t, 90*60, tun.AttackStateChangeTimeout)
	assert.Equal(t, 8.0*16, tun.GatherMinOffset)
	assert.Equal(t, 24.0*16, tun.GatherMaxOffset)
	assert.Equal(t, 40.0*16, tun.BuilderRetreatMaxDist)
	assert.Equal(t, 10.0*16, tun.BuilderRetreatMinDist)
	assert.Equal(t, 10.0*16, tun.BuilderRetreatCheckOffset)
	assert.Equal(t, 1000.0, tun.ImportantRadius)
	assert.Equal(t, unitclass.Pointer, tun.SystemArty)
}
