// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package influence

import (
	"math"

	"github.com/ManuGH/kpai/internal/host"
	"github.com/ManuGH/kpai/internal/unitclass"
)

// SizeDivisor is the number of heightmap squares per influence cell side.
const SizeDivisor = 8

// Map is a coarse grid of summed influence. Positive cells are friendly
// territory, negative cells enemy territory.
type Map struct {
	table    Table
	width    int
	height   int
	cellSize float64 // elmos per cell side
	cells    []int
}

// NewMap returns an empty grid covering a map of m squares.
func NewMap(table Table, m host.MapInfo, squareSize int) *Map {
	w := max(m.Width/SizeDivisor, 1)
	h := max(m.Height/SizeDivisor, 1)
	return &Map{
		table:    table,
		width:    w,
		height:   h,
		cellSize: float64(SizeDivisor * squareSize),
		cells:    make([]int, w*h),
	}
}

// Size returns the grid dimensions in cells.
func (m *Map) Size() (width, height int) {
	return m.width, m.height
}

// Cell returns the value of cell (cx, cz). Out of range cells read as zero.
func (m *Map) Cell(cx, cz int) int {
	if cx < 0 || cz < 0 || cx >= m.width || cz >= m.height {
		return 0
	}
	return m.cells[cz*m.width+cx]
}

// Rows returns a copy of the grid, one slice per row.
func (m *Map) Rows() [][]int {
	out := make([][]int, m.height)
	for z := range out {
		row := make([]int, m.width)
		copy(row, m.cells[z*m.width:(z+1)*m.width])
		out[z] = row
	}
	return out
}

// At returns the influence at world position (x, z) in elmos.
func (m *Map) At(x, z float64) int {
	if x < 0 || z < 0 {
		return 0
	}
	return m.Cell(int(x/m.cellSize), int(z/m.cellSize))
}

// Update recomputes the grid from scratch. It returns the number of units
// whose class has no table entry.
func (m *Map) Update(friends, foes []host.Unit) int {
	clear(m.cells)
	skipped := 0
	for _, u := range friends {
		if !m.add(u, 1) {
			skipped++
		}
	}
	for _, u := range foes {
		if !m.add(u, -1) {
			skipped++
		}
	}
	return skipped
}

func (m *Map) add(u host.Unit, sign int) bool {
	c, err := unitclass.ParseClass(u.Name)
	if err != nil {
		return false
	}
	e, ok := m.table[c]
	if !ok {
		return false
	}
	if e.Radius <= 0 {
		return true
	}

	r := float64(e.Radius)
	minX := max(int((u.Pos.X-r)/m.cellSize), 0)
	maxX := min(int((u.Pos.X+r)/m.cellSize), m.width-1)
	minZ := max(int((u.Pos.Z-r)/m.cellSize), 0)
	maxZ := min(int((u.Pos.Z+r)/m.cellSize), m.height-1)

	for cz := minZ; cz <= maxZ; cz++ {
		for cx := minX; cx <= maxX; cx++ {
			// distance from the unit to the cell centre
			dx := (float64(cx)+0.5)*m.cellSize - u.Pos.X
			dz := (float64(cz)+0.5)*m.cellSize - u.Pos.Z
			d := math.Hypot(dx, dz)
			if d > r {
				continue
			}
			v := float64(e.Max) - float64(e.Max-e.Min)*d/r
			m.cells[cz*m.width+cx] += sign * int(v)
		}
	}
	return true
}
