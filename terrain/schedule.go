// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"math"

	"github.com/chewxy/math32"
)

// Schedule decides how far a midpoint may be displaced from the average of
// its window. span is the window width in level 0 lattice units.
type Schedule interface {
	Magnitude(span float64) float32
}

// Flat displaces every window by the same magnitude.
type Flat struct {
	Base float32
}

func (f Flat) Magnitude(float64) float32 {
	return f.Base
}

// Geometric multiplies the magnitude by Decay each time the span halves below
// Reference. Spans of Reference or more use Base.
type Geometric struct {
	Base      float32
	Decay     float32
	Reference float64
}

func (g Geometric) Magnitude(span float64) float32 {
	if span <= 0 || span >= g.Reference {
		return g.Base
	}
	halvings := float32(math.Log2(g.Reference / span))
	return g.Base * math32.Pow(g.Decay, halvings)
}
