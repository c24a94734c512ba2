package world

import (
	"context"
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kmoroz/repodelve/internal/telemetry"
)

const (
	// DefaultSize is the default grid side length.
	DefaultSize = 154

	minRoomSize = 4 // Minimum room dimension
	maxRoomSize = 8 // Maximum room dimension
	roomPadding = 2 // Tiles of clearance required between rooms

	// maxAttempts bounds room placement. If the attempts run out the
	// generator keeps whatever rooms were accepted; it never fails.
	maxAttempts = 100

	// loopChance is the probability of carving each supplementary
	// corridor. Loops add alternate routes; connectivity is already
	// guaranteed by the spanning tree.
	loopChance = 0.4
)

// Generator builds a dungeon grid: non-overlapping rooms connected by a
// minimum spanning tree of L-shaped corridors, plus door, exit, and spawn
// placement. Deterministic for a given rng seed.
type Generator struct {
	width       int
	height      int
	targetRooms int
	rng         *rand.Rand

	rooms []Room
	grid  *Grid
}

// NewGenerator creates a generator for a width x height grid aiming for
// targetRooms rooms. The rng is the only source of randomness.
func NewGenerator(width, height, targetRooms int, rng *rand.Rand) *Generator {
	return &Generator{
		width:       width,
		height:      height,
		targetRooms: targetRooms,
		rng:         rng,
	}
}

// Generate builds the grid and returns it with the spawn tile. Generation
// degrades rather than fails: too little space means fewer rooms, fewer
// door candidates mean fewer doors, and an all-wall grid with the fallback
// spawn is a valid (if degenerate) result.
func (g *Generator) Generate(ctx context.Context) (*Grid, Point) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	g.grid = NewGrid(g.width, g.height)
	g.rooms = nil

	g.placeRooms()
	for _, room := range g.rooms {
		g.carveRoom(room)
	}
	g.connectRooms()
	g.addLoops()
	doorCount := g.placeDoors()
	g.placeExit()
	spawn := g.findSpawn()

	span.SetAttributes(
		attribute.Int("dungeon.width", g.width),
		attribute.Int("dungeon.height", g.height),
		attribute.Int("dungeon.room_target", g.targetRooms),
		attribute.Int("dungeon.room_count", len(g.rooms)),
		attribute.Int("dungeon.door_count", doorCount),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return g.grid, spawn
}

// Rooms returns the rooms accepted during the last Generate call. Exposed
// for tests and diagnostics; rooms are not part of the served grid.
func (g *Generator) Rooms() []Room {
	return g.rooms
}

// placeRooms tries up to maxAttempts times to place targetRooms rooms with
// random sizes in [minRoomSize, maxRoomSize], rejecting any candidate that
// overlaps an accepted room within roomPadding tiles.
func (g *Generator) placeRooms() {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if len(g.rooms) >= g.targetRooms {
			break
		}

		roomW := minRoomSize + g.rng.Intn(maxRoomSize-minRoomSize+1)
		roomH := minRoomSize + g.rng.Intn(maxRoomSize-minRoomSize+1)

		// Keep a 1-tile border of wall around the grid edge.
		maxX := g.width - roomW - 2
		maxY := g.height - roomH - 2
		if maxX < 1 || maxY < 1 {
			continue
		}
		roomX := 1 + g.rng.Intn(maxX)
		roomY := 1 + g.rng.Intn(maxY)

		candidate := Room{X: roomX, Y: roomY, Width: roomW, Height: roomH}

		overlaps := false
		for _, existing := range g.rooms {
			if candidate.Intersects(existing, roomPadding) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			g.rooms = append(g.rooms, candidate)
		}
	}
}

// carveRoom sets the room interior to floor.
func (g *Generator) carveRoom(room Room) {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			g.grid.Set(x, y, TileEmpty)
		}
	}
}

// connectRooms joins every room into one component by repeatedly carving a
// corridor between the closest (connected, unconnected) pair under Manhattan
// center distance. Ties go to the first pair found in room index order.
func (g *Generator) connectRooms() {
	if len(g.rooms) == 0 {
		return
	}

	connected := mapset.New[int]()
	start := g.rng.Intn(len(g.rooms))
	connected.Put(start)

	for connected.Size() < len(g.rooms) {
		bestFrom, bestTo := -1, -1
		bestDist := 0

		for from := range g.rooms {
			if !connected.Has(from) {
				continue
			}
			for to := range g.rooms {
				if connected.Has(to) {
					continue
				}
				dist := g.rooms[from].distanceTo(g.rooms[to])
				if bestTo == -1 || dist < bestDist {
					bestFrom, bestTo = from, to
					bestDist = dist
				}
			}
		}

		g.carveCorridor(g.rooms[bestFrom], g.rooms[bestTo])
		connected.Put(bestTo)
	}
}

// addLoops carves floor(R/2) extra corridors between random room pairs,
// each with probability loopChance.
func (g *Generator) addLoops() {
	if len(g.rooms) < 2 {
		return
	}

	for i := 0; i < len(g.rooms)/2; i++ {
		a := g.rng.Intn(len(g.rooms))
		b := g.rng.Intn(len(g.rooms) - 1)
		if b >= a {
			b++
		}
		if g.rng.Float64() < loopChance {
			g.carveCorridor(g.rooms[a], g.rooms[b])
		}
	}
}

// carveCorridor carves an L-shaped corridor between two room centers: a
// horizontal run at the source row, then a vertical run at the destination
// column. Already-carved tiles are simply carved again.
func (g *Generator) carveCorridor(from, to Room) {
	x1, y1 := from.Center()
	x2, y2 := to.Center()

	lo, hi := x1, x2
	if lo > hi {
		lo, hi = hi, lo
	}
	for x := lo; x <= hi; x++ {
		g.grid.Set(x, y1, TileEmpty)
	}

	lo, hi = y1, y2
	if lo > hi {
		lo, hi = hi, lo
	}
	for y := lo; y <= hi; y++ {
		g.grid.Set(x2, y, TileEmpty)
	}
}

// placeDoors scans every wall cell strictly inside the grid border and
// collects those with exactly one empty orthogonal neighbor: a wall
// separating exactly one floor region from solid rock. Interior walls with
// floor on two sides never qualify, nor do walls touching no floor. Up to
// min(targetRooms, candidates) doors are sampled without replacement.
// Returns the number of doors placed.
func (g *Generator) placeDoors() int {
	var candidates []Point
	for y := 1; y < g.height-1; y++ {
		for x := 1; x < g.width-1; x++ {
			if g.grid.Tiles[y][x] != TileWall {
				continue
			}
			if g.emptyNeighbors(x, y) == 1 {
				candidates = append(candidates, Point{X: x, Y: y})
			}
		}
	}

	count := g.targetRooms
	if count > len(candidates) {
		count = len(candidates)
	}

	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, p := range candidates[:count] {
		g.grid.Set(p.X, p.Y, TileDoor)
	}
	return count
}

// emptyNeighbors counts the orthogonal neighbors of (x, y) that are floor.
func (g *Generator) emptyNeighbors(x, y int) int {
	count := 0
	for _, d := range [4]Point{{0, 1}, {0, -1}, {1, 0}, {-1, 0}} {
		if g.grid.At(x+d.X, y+d.Y) == TileEmpty {
			count++
		}
	}
	return count
}

// placeExit marks one random interior cell of a random room as the exit.
func (g *Generator) placeExit() {
	if len(g.rooms) == 0 {
		return
	}
	room := g.rooms[g.rng.Intn(len(g.rooms))]
	exitX := room.X + 1 + g.rng.Intn(room.Width-1)
	exitY := room.Y + 1 + g.rng.Intn(room.Height-1)
	g.grid.Set(exitX, exitY, TileExit)
}

// findSpawn returns the first empty tile in column-major scan order
// (outer loop x, inner loop y), or (1,1) if the grid has no floor at all.
func (g *Generator) findSpawn() Point {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			if g.grid.Tiles[y][x] == TileEmpty {
				return Point{X: x, Y: y}
			}
		}
	}
	return Point{X: 1, Y: 1}
}
