// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package host describes what the game engine hands to the AI: load-time
// constants and the per-tick view of the world.
package host

import (
	"fmt"

	"github.com/ManuGH/kpai/internal/geo"
)

// Engine defaults for the constants the host exports at load time.
const (
	DefaultGameSpeed  = 30   // simulation ticks per game second
	DefaultMaxUnits   = 5000 // hard unit cap of the engine
	DefaultSquareSize = 8    // elmos per heightmap square
)

// Constants are supplied once by the host when the AI is loaded.
type Constants struct {
	GameSpeed  int
	MaxUnits   int
	SquareSize int
}

// DefaultConstants returns the stock engine constants.
func DefaultConstants() Constants {
	return Constants{
		GameSpeed:  DefaultGameSpeed,
		MaxUnits:   DefaultMaxUnits,
		SquareSize: DefaultSquareSize,
	}
}

// Validate rejects constants that would make tick or distance scaling meaningless.
func (c Constants) Validate() error {
	if c.GameSpeed <= 0 {
		return fmt.Errorf("host constants: game speed must be positive, got %d", c.GameSpeed)
	}
	if c.MaxUnits <= 0 {
		return fmt.Errorf("host constants: max units must be positive, got %d", c.MaxUnits)
	}
	if c.SquareSize <= 0 {
		return fmt.Errorf("host constants: square size must be positive, got %d", c.SquareSize)
	}
	return nil
}

// Seconds converts game seconds into ticks.
func (c Constants) Seconds(s int) int {
	return s * c.GameSpeed
}

// Squares converts heightmap squares into elmos.
func (c Constants) Squares(n float64) float64 {
	return n * float64(c.SquareSize)
}

// MapInfo is the map size in heightmap squares.
type MapInfo struct {
	Width  int
	Height int
}

// Unit is one unit as seen in a snapshot.
type Unit struct {
	ID   int
	Name string // unit definition name, e.g. "kernel"
	Pos  geo.Vec3
}

// Snapshot is the read-only per-tick view handed to the diagnostics hooks.
type Snapshot struct {
	Team    int
	Frame   int
	Map     MapInfo
	Geos    []geo.Vec3
	Friends []Unit
	Foes    []Unit
}

// Messenger posts in-game text on behalf of the AI.
type Messenger interface {
	SendTextMessage(team int, text string) error
}
