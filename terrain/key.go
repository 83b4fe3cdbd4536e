// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import "fmt"

// Key identifies a tile in the pyramid.
// Higher levels are coarser; each level doubles the area covered by a tile.
type Key struct {
	Level int `json:"level"`
	X     int `json:"x"`
	Y     int `json:"y"`
}

// Parent returns the key of the coarser tile containing this one.
// Shifts floor towards negative infinity, unlike division.
func (key Key) Parent() Key {
	return Key{Level: key.Level + 1, X: key.X >> 1, Y: key.Y >> 1}
}

// Quadrant returns which quadrant of its parent the tile occupies.
func (key Key) Quadrant() Corner {
	return CornerAt(key.X&1, key.Y&1)
}

// Child returns the finer tile occupying a quadrant of this one.
func (key Key) Child(quadrant Corner) Key {
	dx, dy := quadrant.Offsets()
	return Key{Level: key.Level - 1, X: key.X*2 + dx, Y: key.Y*2 + dy}
}

// Neighbor returns the adjacent tile on the same level.
// North is towards negative y.
func (key Key) Neighbor(dir Direction) Key {
	dx, dy := dir.offsets()
	key.X += dx
	key.Y += dy
	return key
}

// Diagonal returns the tile sharing only the given corner with this one.
func (key Key) Diagonal(corner Corner) Key {
	dx, dy := corner.Offsets()
	key.X += dx*2 - 1
	key.Y += dy*2 - 1
	return key
}

func (key Key) String() string {
	return fmt.Sprintf("(%d, %d, %d)", key.Level, key.X, key.Y)
}
