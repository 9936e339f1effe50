// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package geo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDistance2D_IgnoresHeight(t *testing.T) {
	a := Vec3{X: 0, Y: 100, Z: 0}
	b := Vec3{X: 3, Y: -50, Z: 4}
	assert.Equal(t, 25.0, a.SqDistance2D(b))
	assert.Equal(t, 5.0, a.Distance2D(b))
}

func TestDedupe(t *testing.T) {
	spots := []Vec3{
		{X: 1000, Z: 1000},
		// 50 away
		{X: 1030, Z: 1040},
		// exactly on the radius
		{X: 1064, Z: 1000},
		// just outside
		{X: 1065, Z: 1000},
		{X: 2000, Z: 2000},
		// same plane position, other height
		{X: 2000, Y: 90, Z: 2000},
	}
	want := []Vec3{
		{X: 1000, Z: 1000},
		{X: 1065, Z: 1000},
		{X: 2000, Z: 2000},
	}

	got := Dedupe(spots, DuplicateRadius)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Dedupe() mismatch (-want +got):\n%s", diff)
	}
}

func TestDedupe_Empty(t *testing.T) {
	assert.Empty(t, Dedupe(nil, DuplicateRadius))
}
