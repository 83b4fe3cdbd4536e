// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package pyramid

import (
	"container/list"

	"github.com/SoftbearStudios/fractal/terrain"
)

// cache maps keys to tiles in order of use. It is not safe for concurrent
// use; Pyramid guards it with its mutex.
type cache struct {
	capacity int // 0 means unbounded
	items    map[terrain.Key]*list.Element
	order    *list.List // Front = most recent, Back = least recent
}

type cacheEntry struct {
	key  terrain.Key
	tile *terrain.Tile
}

func newCache(capacity int) *cache {
	return &cache{
		capacity: capacity,
		items:    make(map[terrain.Key]*list.Element),
		order:    list.New(),
	}
}

// peek looks up a tile without marking it used.
func (c *cache) peek(key terrain.Key) (*terrain.Tile, bool) {
	if elem, ok := c.items[key]; ok {
		return elem.Value.(*cacheEntry).tile, true
	}
	return nil, false
}

func (c *cache) get(key terrain.Key) (*terrain.Tile, bool) {
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*cacheEntry).tile, true
	}
	return nil, false
}

// add stores a tile as the most recently used and returns the keys it
// evicted to stay within capacity. The added key is never evicted.
func (c *cache) add(key terrain.Key, tile *terrain.Tile) (evicted []terrain.Key) {
	if elem, ok := c.items[key]; ok {
		elem.Value.(*cacheEntry).tile = tile
		c.order.MoveToFront(elem)
		return nil
	}

	c.items[key] = c.order.PushFront(&cacheEntry{key: key, tile: tile})

	for c.capacity > 0 && c.order.Len() > c.capacity {
		oldest := c.order.Back()
		entry := oldest.Value.(*cacheEntry)
		c.order.Remove(oldest)
		delete(c.items, entry.key)
		evicted = append(evicted, entry.key)
	}
	return
}

func (c *cache) len() int {
	return c.order.Len()
}

// levels counts cached tiles per level.
func (c *cache) levels() map[int]int {
	counts := make(map[int]int)
	for key := range c.items {
		counts[key.Level]++
	}
	return counts
}
