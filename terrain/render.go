// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"fmt"
	"image"
	"image/color"
)

type ColorVec [3]float32

var colors = [...]ColorVec{
	RGB(0, 50, 115),
	RGB(0, 75, 130),
	RGB(194, 178, 128),
	RGB(90, 180, 30),
	RGB(105, 110, 115),
	Gray(220),
}

// Render colors a tile by height band, one pixel per lattice point.
func Render(t *Tile) image.Image {
	size := t.Size()
	grid := t.Grid()
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	for j := 0; j < size; j++ {
		for i := 0; i < size; i++ {
			img.Set(i, j, HeightColor(t.bounds.Quantize(grid[i+j*size])).Color())
		}
	}

	return img
}

// HeightColor returns the color of a quantized height.
func HeightColor(h byte) ColorVec {
	switch {
	case h <= OceanLevel:
		return colors[0].Lerp(colors[1], clamp(float32(h)/float32(OceanLevel)))
	case h <= SandLevel:
		return colors[2]
	case h <= GrassLevel:
		return colors[2].Lerp(colors[3], clamp(float32(h-SandLevel)*0.05))
	case h <= RockLevel:
		return colors[3].Lerp(colors[4], clamp(float32(h-GrassLevel)*0.1))
	default:
		return colors[4].Lerp(colors[5], clamp(float32(h-RockLevel)*0.07))
	}
}

func Gray(v byte) ColorVec {
	return RGB(v, v, v)
}

func RGB(r, g, b byte) ColorVec {
	const factor = 1.0 / 255
	return ColorVec{float32(r) * factor, float32(g) * factor, float32(b) * factor}
}

func (vec ColorVec) String() string {
	return fmt.Sprintf("vec4(%.3f, %.3f, %.3f, 1.0)", vec[0], vec[1], vec[2])
}

func (vec ColorVec) Lerp(other ColorVec, factor float32) ColorVec {
	for i := range vec {
		vec[i] = lerp(vec[i], other[i], factor)
	}
	return vec
}

func (vec ColorVec) Color() color.RGBA {
	return color.RGBA{R: floatToByte(vec[0]), G: floatToByte(vec[1]), B: floatToByte(vec[2]), A: 255}
}

func lerp(a, b, factor float32) float32 {
	return a + (b-a)*factor
}

func clamp(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func floatToByte(f float32) byte {
	if f < 0 {
		return 0
	}
	if f > 1.0 {
		return 255
	}
	return byte(f*255 + 0.5)
}
