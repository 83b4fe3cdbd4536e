// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

// Seeder supplies heights for tile corners that no neighbor, parent or
// child constrains. Tile (level, x, y) has its north west corner at lattice
// corner (x, y) of its level.
type Seeder interface {
	Seed(level, x, y int) float32
}
