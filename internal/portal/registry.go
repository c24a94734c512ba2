// Package portal binds door tiles to indices into an external content list.
package portal

import (
	"math/rand"

	"github.com/kmoroz/repodelve/internal/world"
)

// Registry maps door tile coordinates to content indices. It is built once
// after generation and read-only afterwards. The mapping is partial and
// injective: at most one content index per door, no index used twice, and
// when there are more doors than content items the surplus doors stay
// unbound on purpose.
type Registry struct {
	bindings map[world.Point]int
}

// Bind collects every door tile in scan order, shuffles the coordinate list
// with the given rng, and assigns content indices 0..n-1 positionally,
// stopping at min(doors, contentCount). Shuffling the door positions rather
// than the content keeps the content list in its natural order while
// scattering it over the dungeon differently on every regeneration.
func Bind(g *world.Grid, contentCount int, rng *rand.Rand) *Registry {
	doors := g.Doors()
	rng.Shuffle(len(doors), func(i, j int) {
		doors[i], doors[j] = doors[j], doors[i]
	})

	n := len(doors)
	if contentCount < n {
		n = contentCount
	}

	bindings := make(map[world.Point]int, n)
	for i := 0; i < n; i++ {
		bindings[doors[i]] = i
	}
	return &Registry{bindings: bindings}
}

// Lookup returns the content index bound to the door at the given tile
// coordinate. The second return is false for unbound doors and non-door
// coordinates alike; the caller treats both as "nothing to open".
func (r *Registry) Lookup(p world.Point) (int, bool) {
	idx, ok := r.bindings[p]
	return idx, ok
}

// Len returns the number of bound doors.
func (r *Registry) Len() int {
	return len(r.bindings)
}
