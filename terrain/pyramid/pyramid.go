// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package pyramid

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SoftbearStudios/fractal/terrain"
	"github.com/SoftbearStudios/fractal/terrain/noise"
)

// Pyramid is a sparse, lazily generated set of tiles at every level.
// Level 0 is the finest; each level up halves the resolution.
//
// A new tile takes its boundary from existing neighbors on the same level,
// then whatever its existing descendants know about it, then its parent,
// and finally displaces the rest. Earlier sources win because tile cells
// are write-once.
type Pyramid struct {
	config    terrain.Config
	displacer *terrain.Displacer
	seeder    terrain.Seeder
	logger    *slog.Logger

	mutex sync.Mutex
	tiles *cache
}

type Option func(*Pyramid)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Pyramid) {
		p.logger = logger
	}
}

// WithSeeder picks corners that no other tile constrains. Without one,
// corners are uniformly random.
func WithSeeder(seeder terrain.Seeder) Option {
	return func(p *Pyramid) {
		p.seeder = seeder
	}
}

// New panics if the config is invalid.
func New(config terrain.Config, options ...Option) *Pyramid {
	if err := config.Validate(); err != nil {
		panic(err)
	}

	capacity := 0
	if config.Eviction.Policy == terrain.EvictionLRU {
		capacity = config.Eviction.Capacity
	}

	p := &Pyramid{
		config:    config,
		displacer: terrain.NewSeededDisplacer(config.Schedule(), config.Seed),
		logger:    slog.Default(),
		tiles:     newCache(capacity),
	}
	if config.Seeder == terrain.SeederPerlin {
		p.seeder = noise.New(config.Seed, config.Bounds())
	}

	for _, option := range options {
		option(p)
	}
	return p
}

func (p *Pyramid) Config() terrain.Config {
	return p.config
}

// GetOrCreate returns the tile at a level and position, generating it and
// up to MaxRecursionDepth ancestors if needed. Repeated calls return the
// same tile unless it was evicted in between.
func (p *Pyramid) GetOrCreate(level, x, y int) *terrain.Tile {
	key := terrain.Key{Level: level, X: x, Y: y}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if tile, ok := p.tiles.get(key); ok {
		tileHits.Inc()
		return tile
	}

	start := time.Now()
	tile := p.create(key, p.config.MaxRecursionDepth)
	elapsed := time.Since(start)
	generationSeconds.Observe(elapsed.Seconds())

	p.logger.Debug("generated tile", "key", key.String(), "duration", elapsed, "tiles", p.tiles.len())
	return tile
}

// Get returns a tile only if it exists.
func (p *Pyramid) Get(key terrain.Key) (*terrain.Tile, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.tiles.peek(key)
}

func (p *Pyramid) Len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.tiles.len()
}

func (p *Pyramid) Debug() {
	// Take lock so all generation is done
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.logger.Info("pyramid", "tiles", p.tiles.len(), "levels", fmt.Sprint(p.tiles.levels()))
}

// create must be called with the mutex held.
func (p *Pyramid) create(key terrain.Key, depth int) *terrain.Tile {
	tile := terrain.NewTile(p.config.TileSize, p.config.Bounds())

	p.adoptNeighbors(key, tile)

	if base := p.gatherBase(key, depth); base != nil {
		tile.Insert(base, 0, 0)
	}

	if parent := p.roof(key, depth); parent != nil {
		tile.Insert(parent.Stretch(key.Quadrant()), 0, 0)
	}

	if p.seeder != nil {
		last := tile.Size() - 1
		bounds := tile.Bounds()
		for _, c := range terrain.Corners {
			dx, dy := c.Offsets()
			if !tile.Defined(dx*last, dy*last) {
				height := bounds.Clamp(p.seeder.Seed(key.Level, key.X+dx, key.Y+dy))
				tile.Set(dx*last, dy*last, height, false)
			}
		}
	}

	p.displacer.Displace(tile, key.Level)

	tilesCreated.Inc()
	for _, evicted := range p.tiles.add(key, tile) {
		tilesEvicted.Inc()
		p.logger.Debug("evicted tile", "key", evicted.String())
	}
	return tile
}

// adoptNeighbors shares the edges and corners of existing tiles on the same
// level that touch key.
func (p *Pyramid) adoptNeighbors(key terrain.Key, tile *terrain.Tile) {
	for _, dir := range terrain.Directions {
		if neighbor, ok := p.tiles.peek(key.Neighbor(dir)); ok {
			tile.ShareEdge(dir, neighbor.Edge(dir.Opposite()))
		}
	}

	for _, c := range terrain.Corners {
		if cell := p.sharedCorner(key, c); cell != nil {
			tile.ShareCorner(c, cell)
		}
	}
}

// sharedCorner finds the cell another tile holds for corner c of key. The
// tiles meeting at a lattice point already agree, so the first one found
// suffices.
func (p *Pyramid) sharedCorner(key terrain.Key, c terrain.Corner) *terrain.Cell {
	dx, dy := c.Offsets()

	horizontal, vertical := terrain.West, terrain.North
	if dx == 1 {
		horizontal = terrain.East
	}
	if dy == 1 {
		vertical = terrain.South
	}

	if neighbor, ok := p.tiles.peek(key.Neighbor(horizontal)); ok {
		return neighbor.Corner(c.MirrorX())
	}
	if neighbor, ok := p.tiles.peek(key.Neighbor(vertical)); ok {
		return neighbor.Corner(c.MirrorY())
	}
	if neighbor, ok := p.tiles.peek(key.Diagonal(c)); ok {
		return neighbor.Corner(c.Opposite())
	}
	return nil
}

// gatherBase assembles what existing descendants know about key without
// creating any tiles. Missing children are themselves gathered from their
// descendants while depth remains. Returns nil if nothing is known.
func (p *Pyramid) gatherBase(key terrain.Key, depth int) *terrain.Tile {
	var scaffold *terrain.Tile
	half := (p.config.TileSize - 1) / 2

	for _, q := range terrain.Corners {
		child := p.descendant(key.Child(q), depth)
		if child == nil {
			continue
		}
		if scaffold == nil {
			scaffold = terrain.NewTile(p.config.TileSize, p.config.Bounds())
		}
		dx, dy := q.Offsets()
		scaffold.Insert(child.Shrink(), dx*half, dy*half)
	}
	return scaffold
}

func (p *Pyramid) descendant(key terrain.Key, depth int) *terrain.Tile {
	if tile, ok := p.tiles.peek(key); ok {
		return tile
	}
	if depth <= 0 {
		return nil
	}
	return p.gatherBase(key, depth-1)
}

// roof returns the parent of key, creating it while depth remains.
func (p *Pyramid) roof(key terrain.Key, depth int) *terrain.Tile {
	parentKey := key.Parent()
	if parent, ok := p.tiles.peek(parentKey); ok {
		return parent
	}
	if depth <= 0 {
		return nil
	}
	return p.create(parentKey, depth-1)
}

// Window joins tiles×tiles tiles around center into one tile for display.
// The window's north west tile is (center.X-tiles/2, center.Y-tiles/2).
// tiles must be a power of two.
func (p *Pyramid) Window(center terrain.Key, tiles int) *terrain.Tile {
	if tiles < 1 || tiles&(tiles-1) != 0 {
		panic(fmt.Sprintf("pyramid: window of %d tiles is not a power of two", tiles))
	}

	span := p.config.TileSize - 1
	window := terrain.NewTile(tiles*span+1, p.config.Bounds())
	x0, y0 := center.X-tiles/2, center.Y-tiles/2

	for j := 0; j < tiles; j++ {
		for i := 0; i < tiles; i++ {
			tile := p.GetOrCreate(center.Level, x0+i, y0+j)
			window.Insert(tile, i*span, j*span)
		}
	}
	return window
}
