// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package pyramid

import (
	"testing"

	"github.com/SoftbearStudios/fractal/terrain"
)

func testConfig(depth int) terrain.Config {
	config := terrain.DefaultConfig()
	config.TileSize = 17
	config.MaxRecursionDepth = depth
	return config
}

type constantSeeder float32

func (s constantSeeder) Seed(int, int, int) float32 {
	return float32(s)
}

func TestPyramid_GetOrCreate(t *testing.T) {
	p := New(testConfig(2))

	a := p.GetOrCreate(0, 3, -4)
	if !a.Complete() {
		t.Fatal("generated tile has undefined points")
	}
	if b := p.GetOrCreate(0, 3, -4); a != b {
		t.Error("second GetOrCreate returned a different tile")
	}
	// The tile and two ancestors.
	if n := p.Len(); n != 3 {
		t.Errorf("Len() = %d, want 3", n)
	}

	bounds := p.Config().Bounds()
	for _, v := range a.Grid() {
		if !bounds.Contains(v) {
			t.Fatalf("height %g outside %v", v, bounds)
		}
	}
}

func TestPyramid_Get(t *testing.T) {
	p := New(testConfig(0))

	key := terrain.Key{Level: 2, X: 1, Y: 1}
	if _, ok := p.Get(key); ok {
		t.Fatal("Get found a tile before creation")
	}
	tile := p.GetOrCreate(key.Level, key.X, key.Y)
	if got, ok := p.Get(key); !ok || got != tile {
		t.Error("Get did not return the created tile")
	}
}

func TestPyramid_Deterministic(t *testing.T) {
	keys := []terrain.Key{
		{Level: 0, X: 0, Y: 0},
		{Level: 0, X: 1, Y: 0},
		{Level: 1, X: -3, Y: 2},
		{Level: 0, X: 0, Y: 1},
		{Level: 3, X: 0, Y: 0},
	}

	a, b := New(testConfig(3)), New(testConfig(3))
	for _, key := range keys {
		ga := a.GetOrCreate(key.Level, key.X, key.Y).Grid()
		gb := b.GetOrCreate(key.Level, key.X, key.Y).Grid()
		for i := range ga {
			if ga[i] != gb[i] {
				t.Fatalf("tile %s differs at %d: %g != %g", key, i, ga[i], gb[i])
			}
		}
	}
}

func TestPyramid_LateralEdges(t *testing.T) {
	p := New(testConfig(3))

	a := p.GetOrCreate(0, 0, 0)
	east := p.GetOrCreate(0, 1, 0)
	south := p.GetOrCreate(0, 0, 1)

	if a.Edge(terrain.East) != east.Edge(terrain.West) {
		t.Error("east neighbor does not share its west edge")
	}
	if a.Edge(terrain.South) != south.Edge(terrain.North) {
		t.Error("south neighbor does not share its north edge")
	}

	ab, eb := a.Border(terrain.East), east.Border(terrain.West)
	for i := range ab {
		if ab[i] != eb[i] {
			t.Errorf("border %d: %g != %g", i, ab[i], eb[i])
		}
	}
}

func TestPyramid_Corners(t *testing.T) {
	for depth := 0; depth < 3; depth++ {
		p := New(testConfig(depth))

		// Diagonal first so the corner can only come from a diagonal neighbor.
		nw := p.GetOrCreate(0, 0, 0)
		se := p.GetOrCreate(0, 1, 1)
		ne := p.GetOrCreate(0, 1, 0)
		sw := p.GetOrCreate(0, 0, 1)

		cell := nw.Corner(terrain.SouthEast)
		if se.Corner(terrain.NorthWest) != cell ||
			ne.Corner(terrain.SouthWest) != cell ||
			sw.Corner(terrain.NorthEast) != cell {
			t.Errorf("depth %d: tiles meeting at a point hold different cells", depth)
		}
		if _, ok := cell.Value(); !ok {
			t.Errorf("depth %d: shared corner undefined", depth)
		}
	}
}

func TestPyramid_CoarseThenFine(t *testing.T) {
	p := New(testConfig(2))

	parent := p.GetOrCreate(1, 0, 0)
	child := p.GetOrCreate(0, 1, 1) // south east quadrant

	half := (p.Config().TileSize - 1) / 2
	for j := 0; j <= half; j++ {
		for i := 0; i <= half; i++ {
			want, _ := parent.Get(half+i, half+j)
			if got, _ := child.Get(i*2, j*2); got != want {
				t.Fatalf("child (%d, %d) = %g, parent has %g", i*2, j*2, got, want)
			}
		}
	}
}

func TestPyramid_FineThenCoarse(t *testing.T) {
	p := New(testConfig(0))

	children := make(map[terrain.Corner]*terrain.Tile)
	for _, q := range terrain.Corners {
		dx, dy := q.Offsets()
		children[q] = p.GetOrCreate(0, dx, dy)
	}
	parent := p.GetOrCreate(1, 0, 0)

	half := (p.Config().TileSize - 1) / 2
	for _, q := range terrain.Corners {
		shrunk := children[q].Shrink()
		dx, dy := q.Offsets()
		for j := 0; j <= half; j++ {
			for i := 0; i <= half; i++ {
				x, y := dx*half+i, dy*half+j
				// Quadrants overlap on the center lines; the north west
				// quadrant is inserted first and owns them.
				if q != terrain.NorthWest && (x == half || y == half) {
					continue
				}
				want, _ := shrunk.Get(i, j)
				if got, _ := parent.Get(x, y); got != want {
					t.Fatalf("%s parent (%d, %d) = %g, shrunk child has %g", q, x, y, got, want)
				}
			}
		}
	}
}

func TestPyramid_DistantDescendants(t *testing.T) {
	p := New(testConfig(2))

	// Grandchild exists; the intermediate level does not.
	grandchild := p.GetOrCreate(0, 0, 0)
	p = New(testConfig(2))
	p.tiles.add(terrain.Key{Level: 0, X: 0, Y: 0}, grandchild)

	grandparent := p.GetOrCreate(2, 0, 0)
	want, _ := grandchild.Shrink().Shrink().Get(0, 0)
	if got, _ := grandparent.Get(0, 0); got != want {
		t.Errorf("grandparent corner = %g, want %g", got, want)
	}
	if _, ok := p.Get(terrain.Key{Level: 1, X: 0, Y: 0}); ok {
		t.Error("gathering descendants created an intermediate tile")
	}
}

func TestPyramid_RecursionBounded(t *testing.T) {
	for _, depth := range []int{0, 1, 3, 5} {
		p := New(testConfig(depth))

		p.GetOrCreate(0, 1000, -1000)
		if n := p.Len(); n != depth+1 {
			t.Errorf("depth %d: Len() = %d after one request, want %d", depth, n, depth+1)
		}

		p.GetOrCreate(10, 0, 0)
		if n := p.Len(); n != 2*(depth+1) {
			t.Errorf("depth %d: Len() = %d after two requests, want %d", depth, n, 2*(depth+1))
		}
	}
}

func TestPyramid_LRU(t *testing.T) {
	config := testConfig(0)
	config.Eviction = terrain.EvictionConfig{Policy: terrain.EvictionLRU, Capacity: 3}
	p := New(config)

	t0 := p.GetOrCreate(0, 0, 0)
	p.GetOrCreate(0, 1, 0)
	t2 := p.GetOrCreate(0, 2, 0)

	// Touch 0 and 2 so 1 is least recently used.
	p.GetOrCreate(0, 0, 0)
	p.GetOrCreate(0, 2, 0)
	p.GetOrCreate(0, 5, 0)

	if n := p.Len(); n != 3 {
		t.Fatalf("Len() = %d, want 3", n)
	}
	if _, ok := p.Get(terrain.Key{Level: 0, X: 1, Y: 0}); ok {
		t.Fatal("least recently used tile survived")
	}

	// Regenerated between cached neighbors it adopts their edges.
	t1 := p.GetOrCreate(0, 1, 0)
	if t1.Edge(terrain.West) != t0.Edge(terrain.East) || t1.Edge(terrain.East) != t2.Edge(terrain.West) {
		t.Error("regenerated tile did not adopt neighbor edges")
	}
	if n := p.Len(); n != 3 {
		t.Errorf("Len() = %d after regeneration, want 3", n)
	}
}

func TestPyramid_Seeder(t *testing.T) {
	p := New(testConfig(0), WithSeeder(constantSeeder(42)))

	tile := p.GetOrCreate(0, 0, 0)
	last := tile.Size() - 1
	for _, c := range terrain.Corners {
		dx, dy := c.Offsets()
		if v, _ := tile.Get(dx*last, dy*last); v != 42 {
			t.Errorf("%s corner = %g, want 42", c, v)
		}
	}
}

func TestPyramid_PerlinSeeder(t *testing.T) {
	config := testConfig(1)
	config.Seeder = terrain.SeederPerlin
	p := New(config)

	if p.seeder == nil {
		t.Fatal("perlin config did not install a seeder")
	}
	if !p.GetOrCreate(0, 2, 2).Complete() {
		t.Error("tile incomplete")
	}
}

func TestPyramid_HugeLevels(t *testing.T) {
	config := testConfig(1)
	config.Seeder = terrain.SeederPerlin
	p := New(config)
	bounds := config.Bounds()

	for _, key := range []terrain.Key{
		{Level: 1100, X: 1, Y: 1},
		{Level: 2000, X: 1, Y: 1},
		{Level: 2000, X: -3, Y: 5},
	} {
		tile := p.GetOrCreate(key.Level, key.X, key.Y)
		if !tile.Complete() {
			t.Fatalf("%v incomplete", key)
		}
		for _, v := range tile.Grid() {
			if !bounds.Contains(v) {
				t.Fatalf("%v: height %g outside %v", key, v, bounds)
			}
		}
	}
}

// A tile created between an existing parent and child takes its quadrant
// from the child and the rest from the parent.
func TestPyramid_ParentAndChild(t *testing.T) {
	p := New(testConfig(0))

	parent := p.GetOrCreate(2, 0, 0)
	child := p.GetOrCreate(0, 0, 0)
	if n := p.Len(); n != 2 {
		t.Fatalf("Len() = %d, want 2", n)
	}
	middle := p.GetOrCreate(1, 0, 0)

	size := middle.Size()
	half := size / 2
	shrunk := child.Shrink()
	for y := 0; y <= half; y++ {
		for x := 0; x <= half; x++ {
			want, _ := shrunk.Get(x, y)
			if got, _ := middle.Get(x, y); got != want {
				t.Fatalf("NW quadrant (%d, %d) = %g, child gave %g", x, y, got, want)
			}
		}
	}

	// (1, 0, 0) is the NW quadrant of (2, 0, 0).
	for y := 0; y < size; y += 2 {
		for x := 0; x < size; x += 2 {
			if x <= half && y <= half {
				continue
			}
			want, _ := parent.Get(x/2, y/2)
			if got, _ := middle.Get(x, y); got != want {
				t.Fatalf("(%d, %d) = %g, parent gave %g", x, y, got, want)
			}
		}
	}
}

func TestPyramid_Window(t *testing.T) {
	p := New(testConfig(1))

	center := terrain.Key{Level: 0, X: 0, Y: 0}
	window := p.Window(center, 2)

	span := p.Config().TileSize - 1
	if size := window.Size(); size != 2*span+1 {
		t.Fatalf("window size %d, want %d", size, 2*span+1)
	}
	if !window.Complete() {
		t.Fatal("window has undefined points")
	}

	tile := p.GetOrCreate(0, 0, 0)
	for y := 0; y <= span; y++ {
		for x := 0; x <= span; x++ {
			want, _ := tile.Get(x, y)
			if got, _ := window.Get(span+x, span+y); got != want {
				t.Fatalf("window (%d, %d) = %g, tile has %g", span+x, span+y, got, want)
			}
		}
	}
}

func TestPyramid_InvalidConfig(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New accepted an invalid config")
		}
	}()
	config := testConfig(0)
	config.TileSize = 10
	New(config)
}

func BenchmarkPyramid_GetOrCreate(b *testing.B) {
	p := New(terrain.DefaultConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.GetOrCreate(0, i, 0)
	}
}
