// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"math/rand"
	"testing"
)

func TestKey_Parent(t *testing.T) {
	tests := []struct {
		key, parent Key
		quadrant    Corner
	}{
		{Key{0, 0, 0}, Key{1, 0, 0}, NorthWest},
		{Key{0, 1, 0}, Key{1, 0, 0}, NorthEast},
		{Key{0, 3, 3}, Key{1, 1, 1}, SouthEast},
		{Key{0, -1, -1}, Key{1, -1, -1}, SouthEast},
		{Key{-2, -4, 5}, Key{-1, -2, 2}, SouthWest},
	}

	for _, test := range tests {
		if p := test.key.Parent(); p != test.parent {
			t.Errorf("%s.Parent() expected %s got %s", test.key, test.parent, p)
		}
		if q := test.key.Quadrant(); q != test.quadrant {
			t.Errorf("%s.Quadrant() expected %s got %s", test.key, test.quadrant, q)
		}
	}
}

func TestKey_ChildParent(t *testing.T) {
	for i := 0; i < 1000; i++ {
		key := Key{Level: rand.Intn(20) - 10, X: rand.Intn(1<<16) - 1<<15, Y: rand.Intn(1<<16) - 1<<15}
		for _, q := range Corners {
			child := key.Child(q)
			if child.Parent() != key || child.Quadrant() != q {
				t.Fatalf("%s.Child(%s) = %s does not round trip", key, q, child)
			}
		}
	}
}

func TestKey_Neighbor(t *testing.T) {
	key := Key{Level: 2, X: 5, Y: -3}

	for _, dir := range Directions {
		if back := key.Neighbor(dir).Neighbor(dir.Opposite()); back != key {
			t.Errorf("Neighbor(%s) then Neighbor(%s) expected %s got %s", dir, dir.Opposite(), key, back)
		}
	}

	if n := key.Neighbor(North); n != (Key{2, 5, -4}) {
		t.Error("Neighbor(north) expected y-1 got", n)
	}
	if d := key.Diagonal(SouthEast); d != (Key{2, 6, -2}) {
		t.Error("Diagonal(southeast) expected (2, 6, -2) got", d)
	}
	if d := key.Diagonal(NorthWest); d != (Key{2, 4, -4}) {
		t.Error("Diagonal(northwest) expected (2, 4, -4) got", d)
	}
}

func TestParseDirection(t *testing.T) {
	for _, dir := range Directions {
		parsed, err := ParseDirection(dir.String())
		if err != nil || parsed != dir {
			t.Errorf("ParseDirection(%q) expected %s got %s, %v", dir.String(), dir, parsed, err)
		}
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Error("ParseDirection(up) expected error")
	}
}
