// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"math"
	"math/rand/v2"
)

// Displacer fills tiles by recursive midpoint displacement.
type Displacer struct {
	schedule Schedule
	rng      *rand.Rand
}

func NewDisplacer(schedule Schedule, rng *rand.Rand) *Displacer {
	return &Displacer{schedule: schedule, rng: rng}
}

// NewSeededDisplacer uses a PCG source seeded with seed.
func NewSeededDisplacer(schedule Schedule, seed int64) *Displacer {
	return NewDisplacer(schedule, rand.New(rand.NewPCG(uint64(seed), 0)))
}

// Displace defines every undefined point of the tile, leaving defined points as is.
// The level converts window widths to level 0 lattice units for the schedule.
//
// Each window writes its east and south midpoints and its center, but its
// north and west midpoints only in the first row and column of windows.
// Every other north/west midpoint is the south/east midpoint of a preceding
// window, so each point is written exactly once.
func (d *Displacer) Displace(tile *Tile, level int) {
	last := tile.size - 1

	for _, c := range Corners {
		dx, dy := c.Offsets()
		if !tile.corners[c].defined {
			tile.Set(dx*last, dy*last, d.uniform(tile.bounds), false)
		}
	}

	for window := last; window > 1; window /= 2 {
		r := d.schedule.Magnitude(math.Ldexp(float64(window), level))
		for y := 0; y < last; y += window {
			for x := 0; x < last; x += window {
				d.window(tile, x, y, window, r)
			}
		}
	}
}

func (d *Displacer) window(t *Tile, x0, y0, w int, r float32) {
	x1, y1 := x0+w, y0+w
	xm, ym := x0+w/2, y0+w/2

	nw := t.mustGet(x0, y0)
	ne := t.mustGet(x1, y0)
	se := t.mustGet(x1, y1)
	sw := t.mustGet(x0, y1)

	d.displace(t, x1, ym, (ne+se)/2, r)
	d.displace(t, xm, y1, (se+sw)/2, r)
	d.displace(t, xm, ym, (nw+ne+se+sw)/4, r)
	if y0 == 0 {
		d.displace(t, xm, y0, (nw+ne)/2, r)
	}
	if x0 == 0 {
		d.displace(t, x0, ym, (sw+nw)/2, r)
	}
}

func (d *Displacer) displace(t *Tile, x, y int, average, r float32) {
	if t.Defined(x, y) {
		return
	}
	if r > 0 {
		average += (d.rng.Float32()*2 - 1) * r
	}
	t.Set(x, y, t.bounds.Clamp(average), false)
}

func (d *Displacer) uniform(bounds Range) float32 {
	return bounds.Min + d.rng.Float32()*(bounds.Max-bounds.Min)
}

func (t *Tile) mustGet(x, y int) float32 {
	v, ok := t.Get(x, y)
	if !ok {
		panic("terrain: window corner undefined during displacement")
	}
	return v
}
