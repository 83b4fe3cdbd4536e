// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

// Height bands of a tile normalized to bytes.
const (
	OceanLevel = 63
	SandLevel  = OceanLevel + 10
	GrassLevel = SandLevel + 50
	RockLevel  = GrassLevel + 40
	SnowLevel  = 255
)

// Quantize maps a height to a byte across the range.
func (r Range) Quantize(v float32) byte {
	return floatToByte(r.Normalize(v))
}

// Dequantize is the inverse of Quantize up to its precision.
func (r Range) Dequantize(b byte) float32 {
	return r.Min + float32(b)*(r.Max-r.Min)/255
}
