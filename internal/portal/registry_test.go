package portal

import (
	"math/rand"
	"testing"

	"github.com/kmoroz/repodelve/internal/world"
)

// gridWithDoors builds a walled grid with door tiles at the given points.
func gridWithDoors(points ...world.Point) *world.Grid {
	g := world.NewGrid(8, 8)
	for _, p := range points {
		g.Set(p.X, p.Y, world.TileDoor)
	}
	return g
}

func TestBindMoreDoorsThanContent(t *testing.T) {
	doors := []world.Point{{X: 1, Y: 1}, {X: 3, Y: 2}, {X: 5, Y: 3}, {X: 2, Y: 5}, {X: 6, Y: 6}}
	g := gridWithDoors(doors...)

	r := Bind(g, 3, rand.New(rand.NewSource(7)))
	if r.Len() != 3 {
		t.Fatalf("bound doors = %d, want 3", r.Len())
	}

	seen := map[int]bool{}
	bound := 0
	for _, d := range doors {
		idx, ok := r.Lookup(d)
		if !ok {
			continue
		}
		bound++
		if idx < 0 || idx >= 3 {
			t.Errorf("door %v bound to index %d, out of range", d, idx)
		}
		if seen[idx] {
			t.Errorf("index %d assigned to more than one door", idx)
		}
		seen[idx] = true
	}
	if bound != 3 {
		t.Errorf("doors with a binding = %d, want 3", bound)
	}
}

func TestBindMoreContentThanDoors(t *testing.T) {
	g := gridWithDoors(world.Point{X: 2, Y: 2}, world.Point{X: 4, Y: 4})

	r := Bind(g, 5, rand.New(rand.NewSource(7)))
	if r.Len() != 2 {
		t.Fatalf("bound doors = %d, want 2", r.Len())
	}

	seen := map[int]bool{}
	for _, d := range []world.Point{{X: 2, Y: 2}, {X: 4, Y: 4}} {
		idx, ok := r.Lookup(d)
		if !ok {
			t.Fatalf("door %v unbound with surplus content", d)
		}
		seen[idx] = true
	}
	// Only the first indices are handed out; the tail of the list stays unused.
	if !seen[0] || !seen[1] {
		t.Errorf("assigned indices = %v, want {0,1}", seen)
	}
}

func TestBindDeterministicForSeed(t *testing.T) {
	doors := []world.Point{{X: 1, Y: 1}, {X: 3, Y: 2}, {X: 5, Y: 3}, {X: 2, Y: 5}}

	a := Bind(gridWithDoors(doors...), 4, rand.New(rand.NewSource(42)))
	b := Bind(gridWithDoors(doors...), 4, rand.New(rand.NewSource(42)))

	for _, d := range doors {
		ai, aok := a.Lookup(d)
		bi, bok := b.Lookup(d)
		if ai != bi || aok != bok {
			t.Errorf("door %v bound to %d/%v and %d/%v across identical seeds", d, ai, aok, bi, bok)
		}
	}
}

func TestBindNoContent(t *testing.T) {
	g := gridWithDoors(world.Point{X: 2, Y: 2})

	r := Bind(g, 0, rand.New(rand.NewSource(1)))
	if r.Len() != 0 {
		t.Errorf("bound doors = %d, want 0", r.Len())
	}
	if _, ok := r.Lookup(world.Point{X: 2, Y: 2}); ok {
		t.Error("door bound with an empty content list")
	}
}

func TestLookupNonDoorCoordinate(t *testing.T) {
	g := gridWithDoors(world.Point{X: 2, Y: 2})
	r := Bind(g, 1, rand.New(rand.NewSource(1)))

	if _, ok := r.Lookup(world.Point{X: 6, Y: 6}); ok {
		t.Error("lookup of a plain wall coordinate returned a binding")
	}
}
