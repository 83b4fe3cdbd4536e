// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package navigator

import "github.com/SoftbearStudios/fractal/terrain"

// Source produces the tile at a level and position.
// *pyramid.Pyramid implements it.
type Source interface {
	GetOrCreate(level, x, y int) *terrain.Tile
}

// Navigator is a cursor over a Source. Each move returns the tile now
// under the cursor. It is not safe for concurrent use.
type Navigator struct {
	source Source
	key    terrain.Key
	tile   *terrain.Tile
}

func New(source Source, start terrain.Key) *Navigator {
	n := &Navigator{source: source}
	n.Goto(start)
	return n
}

func (n *Navigator) Position() terrain.Key {
	return n.key
}

// Tile returns the tile under the cursor.
func (n *Navigator) Tile() *terrain.Tile {
	return n.tile
}

// Pan moves one tile on the current level. North is y - 1.
func (n *Navigator) Pan(dir terrain.Direction) *terrain.Tile {
	return n.Goto(n.key.Neighbor(dir))
}

// ZoomIn moves to the north west child.
func (n *Navigator) ZoomIn() *terrain.Tile {
	return n.Goto(n.key.Child(terrain.NorthWest))
}

// ZoomOut moves to the parent.
func (n *Navigator) ZoomOut() *terrain.Tile {
	return n.Goto(n.key.Parent())
}

func (n *Navigator) Goto(key terrain.Key) *terrain.Tile {
	n.key = key
	n.tile = n.source.GetOrCreate(key.Level, key.X, key.Y)
	return n.tile
}
