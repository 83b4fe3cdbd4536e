// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"math"

	"github.com/SoftbearStudios/fractal/terrain"
	"github.com/aquilax/go-perlin"
)

const (
	// Perlin noise is zero on integer lattice points so corners are
	// sampled off grid.
	frequency     = 0.0137
	zoneFrequency = 0.0021
)

// Generator seeds tile corners from perlin noise. The value at a lattice
// corner depends only on its world position, so it is the same whichever
// tile asks first.
type Generator struct {
	land *perlin.Perlin // for smaller/higher frequency details
	zone *perlin.Perlin // for larger/lower frequency details

	bounds terrain.Range
}

func NewDefault() *Generator {
	return New(terrain.Seed, terrain.DefaultConfig().Bounds())
}

// New creates a new Generator with a seed.
func New(seed int64, bounds terrain.Range) *Generator {
	return &Generator{
		land:   perlin.NewPerlin(1.5, 2.0, 4, seed),
		zone:   perlin.NewPerlin(2.5, 3.0, 4, seed+1),
		bounds: bounds,
	}
}

// Seed implements terrain.Seeder. Corner (x, y) of level L lies at level 0
// lattice position (x·2^L, y·2^L). Positions too far out to represent get
// the middle of the range.
func (g *Generator) Seed(level, x, y int) float32 {
	wx := math.Ldexp(float64(x), level)
	wy := math.Ldexp(float64(y), level)
	if !finite(wx*frequency) || !finite(wy*frequency) {
		return g.midpoint()
	}

	h := g.land.Noise2D(wx*frequency, wy*frequency)

	// Zone is very low frequency
	zone := g.zone.Noise2D(wx*zoneFrequency, wy*zoneFrequency)*2.0 + 0.6
	h *= clamp(zone, 0.2, 1)
	if !finite(h) {
		return g.midpoint()
	}

	return g.bounds.Clamp(g.bounds.Min + float32(clamp(h*0.5+0.5, 0, 1))*(g.bounds.Max-g.bounds.Min))
}

func (g *Generator) midpoint() float32 {
	return g.bounds.Min + (g.bounds.Max-g.bounds.Min)*0.5
}
