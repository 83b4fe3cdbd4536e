// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"fmt"
	"strings"
)

// Direction is one of the four sides of a tile.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every Direction in clockwise order.
var Directions = [...]Direction{North, East, South, West}

var directionNames = [...]string{"north", "east", "south", "west"}

func (dir Direction) String() string {
	if int(dir) < len(directionNames) {
		return directionNames[dir]
	}
	return fmt.Sprintf("Direction(%d)", uint8(dir))
}

// Opposite returns the facing side of the neighbor in this direction.
func (dir Direction) Opposite() Direction {
	return (dir + 2) & 3
}

func (dir Direction) offsets() (dx, dy int) {
	switch dir {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	panic("invalid direction " + dir.String())
}

// ParseDirection parses the lower case name of a Direction.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if strings.EqualFold(s, name) {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Corner is one of the four corners of a tile, or a quadrant of it.
type Corner uint8

const (
	NorthWest Corner = iota
	NorthEast
	SouthEast
	SouthWest
)

// Corners lists every Corner in clockwise order.
var Corners = [...]Corner{NorthWest, NorthEast, SouthEast, SouthWest}

var cornerNames = [...]string{"northwest", "northeast", "southeast", "southwest"}

func (c Corner) String() string {
	if int(c) < len(cornerNames) {
		return cornerNames[c]
	}
	return fmt.Sprintf("Corner(%d)", uint8(c))
}

// Offsets returns 0 for west/north and 1 for east/south.
func (c Corner) Offsets() (dx, dy int) {
	switch c {
	case NorthWest:
		return 0, 0
	case NorthEast:
		return 1, 0
	case SouthEast:
		return 1, 1
	case SouthWest:
		return 0, 1
	}
	panic("invalid corner " + c.String())
}

// Opposite returns the diagonally opposite corner.
func (c Corner) Opposite() Corner {
	return (c + 2) & 3
}

// MirrorX returns the corner on the other side of a vertical line.
func (c Corner) MirrorX() Corner {
	dx, dy := c.Offsets()
	return CornerAt(1-dx, dy)
}

// MirrorY returns the corner on the other side of a horizontal line.
func (c Corner) MirrorY() Corner {
	dx, dy := c.Offsets()
	return CornerAt(dx, 1-dy)
}

// CornerAt is the inverse of Corner.Offsets.
func CornerAt(dx, dy int) Corner {
	if dy == 0 {
		if dx == 0 {
			return NorthWest
		}
		return NorthEast
	}
	if dx == 0 {
		return SouthWest
	}
	return SouthEast
}
