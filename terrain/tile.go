// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Range is an inclusive range of heights.
type Range struct {
	Min float32 `json:"min"`
	Max float32 `json:"max"`
}

// Contains is false for NaN.
func (r Range) Contains(v float32) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp maps NaN to Min.
func (r Range) Clamp(v float32) float32 {
	if math32.IsNaN(v) {
		return r.Min
	}
	return math32.Max(r.Min, math32.Min(r.Max, v))
}

// Normalize maps v from the range to [0, 1].
func (r Range) Normalize(v float32) float32 {
	return (v - r.Min) / (r.Max - r.Min)
}

// Cell is a lattice point that is either undefined or holds a height.
type Cell struct {
	value   float32
	defined bool
}

// Value returns the height and whether it has been generated yet.
func (c *Cell) Value() (float32, bool) {
	return c.value, c.defined
}

// Edge holds the points strictly between the two corners of a tile side.
// Adjacent tiles hold the same *Edge for their touching sides, so a point
// written through one is visible to the other.
type Edge struct {
	cells []Cell
}

func newEdge(n int) *Edge {
	return &Edge{cells: make([]Cell, n)}
}

func (e *Edge) Len() int {
	return len(e.cells)
}

// At returns the i-th point, counted from the west or north end.
func (e *Edge) At(i int) (float32, bool) {
	return e.cells[i].Value()
}

// Tile is a square lattice of heights whose side has a power of two cells.
// Its border is stored as four shareable edges and four shareable corners.
type Tile struct {
	size     int
	bounds   Range
	interior []Cell
	edges    [4]*Edge
	corners  [4]*Cell
}

// ValidSize reports whether size-1 is a power of two.
func ValidSize(size int) bool {
	n := size - 1
	return n >= 1 && n&(n-1) == 0
}

// NewTile allocates a tile with every point undefined.
func NewTile(size int, bounds Range) *Tile {
	if !ValidSize(size) {
		panic(fmt.Sprintf("terrain: tile size %d is not a power of two plus one", size))
	}
	if !(bounds.Min < bounds.Max) {
		panic(fmt.Sprintf("terrain: empty height range [%g, %g]", bounds.Min, bounds.Max))
	}

	inner := size - 2
	t := &Tile{
		size:     size,
		bounds:   bounds,
		interior: make([]Cell, inner*inner),
	}
	for i := range t.edges {
		t.edges[i] = newEdge(inner)
	}
	for i := range t.corners {
		t.corners[i] = new(Cell)
	}
	return t
}

// Size is the number of lattice points per side.
func (t *Tile) Size() int {
	return t.size
}

func (t *Tile) Bounds() Range {
	return t.bounds
}

func (t *Tile) cell(x, y int) *Cell {
	last := t.size - 1
	if x < 0 || x > last || y < 0 || y > last {
		panic(fmt.Sprintf("terrain: point (%d, %d) outside tile of size %d", x, y, t.size))
	}

	switch {
	case y == 0:
		switch x {
		case 0:
			return t.corners[NorthWest]
		case last:
			return t.corners[NorthEast]
		}
		return &t.edges[North].cells[x-1]
	case y == last:
		switch x {
		case 0:
			return t.corners[SouthWest]
		case last:
			return t.corners[SouthEast]
		}
		return &t.edges[South].cells[x-1]
	case x == 0:
		return &t.edges[West].cells[y-1]
	case x == last:
		return &t.edges[East].cells[y-1]
	}
	return &t.interior[(y-1)*(t.size-2)+x-1]
}

// Get returns the height at (x, y) and whether it is defined.
// It panics if the point is outside the tile.
func (t *Tile) Get(x, y int) (float32, bool) {
	return t.cell(x, y).Value()
}

func (t *Tile) Defined(x, y int) bool {
	return t.cell(x, y).defined
}

// Set writes a height. Unless overwrite is true, a defined point is left as is.
// It panics if the point is outside the tile or the value outside its bounds.
func (t *Tile) Set(x, y int, value float32, overwrite bool) {
	c := t.cell(x, y)
	if !t.bounds.Contains(value) {
		panic(fmt.Sprintf("terrain: height %g outside [%g, %g]", value, t.bounds.Min, t.bounds.Max))
	}
	if c.defined && !overwrite {
		return
	}
	c.value = value
	c.defined = true
}

// Complete reports whether every point is defined.
func (t *Tile) Complete() bool {
	for y := 0; y < t.size; y++ {
		for x := 0; x < t.size; x++ {
			if !t.cell(x, y).defined {
				return false
			}
		}
	}
	return true
}

// Edge returns the shared interior of a side.
func (t *Tile) Edge(dir Direction) *Edge {
	return t.edges[dir]
}

// Corner returns the shared corner cell.
func (t *Tile) Corner(c Corner) *Cell {
	return t.corners[c]
}

// ShareEdge replaces a side with an edge owned by a neighbor.
// Any points previously held by the replaced edge are dropped.
func (t *Tile) ShareEdge(dir Direction, edge *Edge) {
	if edge.Len() != t.size-2 {
		panic(fmt.Sprintf("terrain: edge of length %d does not fit tile of size %d", edge.Len(), t.size))
	}
	t.edges[dir] = edge
}

// ShareCorner replaces a corner with a cell owned by a neighbor.
func (t *Tile) ShareCorner(c Corner, cell *Cell) {
	if cell == nil {
		panic("terrain: nil corner")
	}
	t.corners[c] = cell
}

// Border returns a full side including both corners. Undefined points read as Min.
func (t *Tile) Border(dir Direction) []float32 {
	last := t.size - 1
	border := make([]float32, t.size)
	for i := range border {
		var x, y int
		switch dir {
		case North:
			x, y = i, 0
		case East:
			x, y = last, i
		case South:
			x, y = i, last
		case West:
			x, y = 0, i
		}
		border[i] = t.valueOrMin(x, y)
	}
	return border
}

// Grid returns a row-major copy of the lattice. Undefined points read as Min.
func (t *Tile) Grid() []float32 {
	grid := make([]float32, t.size*t.size)
	for y := 0; y < t.size; y++ {
		for x := 0; x < t.size; x++ {
			grid[y*t.size+x] = t.valueOrMin(x, y)
		}
	}
	return grid
}

func (t *Tile) valueOrMin(x, y int) float32 {
	if v, ok := t.cell(x, y).Value(); ok {
		return v
	}
	return t.bounds.Min
}

// Shrink returns a tile with half as many cells per side covering the same area.
// Each point averages the defined points of the 2x2 block at twice its
// coordinates; the last row and column average 2 points and the last corner is copied.
func (t *Tile) Shrink() *Tile {
	half := (t.size - 1) / 2
	if half < 1 {
		panic("terrain: cannot shrink a tile of size 2")
	}

	shrunk := NewTile(half+1, t.bounds)
	for j := 0; j <= half; j++ {
		for i := 0; i <= half; i++ {
			if v, ok := t.blockAverage(i*2, j*2); ok {
				shrunk.Set(i, j, v, false)
			}
		}
	}
	return shrunk
}

// blockAverage clips the 2x2 block at the far sides of the tile.
func (t *Tile) blockAverage(x, y int) (float32, bool) {
	var sum float32
	n := 0
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			px, py := x+dx, y+dy
			if px >= t.size || py >= t.size {
				continue
			}
			if v, ok := t.cell(px, py).Value(); ok {
				sum += v
				n++
			}
		}
	}
	if n == 0 {
		return 0, false
	}
	return t.bounds.Clamp(sum / float32(n)), true
}

// Stretch returns a tile of the same size holding one quadrant of this tile
// at double scale: the quadrant's points land on every other lattice point
// and the points in between are left undefined.
func (t *Tile) Stretch(quadrant Corner) *Tile {
	half := (t.size - 1) / 2
	if half < 1 {
		panic("terrain: cannot stretch a tile of size 2")
	}

	dx, dy := quadrant.Offsets()
	ox, oy := dx*half, dy*half

	stretched := NewTile(t.size, t.bounds)
	for j := 0; j <= half; j++ {
		for i := 0; i <= half; i++ {
			if v, ok := t.cell(ox+i, oy+j).Value(); ok {
				stretched.Set(i*2, j*2, v, false)
			}
		}
	}
	return stretched
}

// Insert copies the defined points of other, offset by (xOffset, yOffset),
// into undefined points of t. Points falling outside t are skipped.
func (t *Tile) Insert(other *Tile, xOffset, yOffset int) {
	for j := 0; j < other.size; j++ {
		y := yOffset + j
		if y < 0 || y >= t.size {
			continue
		}
		for i := 0; i < other.size; i++ {
			x := xOffset + i
			if x < 0 || x >= t.size {
				continue
			}
			if v, ok := other.cell(i, j).Value(); ok {
				t.Set(x, y, v, false)
			}
		}
	}
}
