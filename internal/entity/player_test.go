package entity

import (
	"math"
	"testing"

	"github.com/kmoroz/repodelve/internal/world"
)

// openGrid carves a 3x3 floor area in the middle of a 5x5 grid.
func openGrid() *world.Grid {
	g := world.NewGrid(5, 5)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			g.Set(x, y, world.TileEmpty)
		}
	}
	return g
}

// atTileEdge places a player a few pixels west of the boundary between
// tile column 3 and 4, facing east, so one forward step crosses into (4,2).
func atTileEdge() *Player {
	p := NewPlayer(world.Point{X: 3, Y: 2})
	p.X = 4*world.TileSize - 4
	return p
}

func TestMoveBlockedByWallAndDoor(t *testing.T) {
	for _, tile := range []world.Tile{world.TileWall, world.TileDoor} {
		g := openGrid()
		g.Set(4, 2, tile)

		p := atTileEdge()
		x, y := p.X, p.Y
		if p.MoveForward(g) {
			t.Errorf("move into %v accepted", tile)
		}
		if p.X != x || p.Y != y {
			t.Errorf("position changed on rejected move into %v", tile)
		}
	}
}

func TestMoveAcceptedOntoFloorAndExit(t *testing.T) {
	for _, tile := range []world.Tile{world.TileEmpty, world.TileExit} {
		g := openGrid()
		g.Set(4, 2, tile)

		p := atTileEdge()
		x := p.X
		if !p.MoveForward(g) {
			t.Errorf("move onto %v rejected", tile)
		}
		if p.X <= x {
			t.Errorf("position did not advance onto %v", tile)
		}
	}
}

func TestMoveBackward(t *testing.T) {
	g := openGrid()
	p := NewPlayer(world.Point{X: 2, Y: 2})
	x := p.X

	if !p.MoveBackward(g) {
		t.Fatal("backward move within open floor rejected")
	}
	if p.X >= x {
		t.Error("backward move did not retreat")
	}
}

func TestTurnNeverCollides(t *testing.T) {
	// Boxed in on all sides; turning must still work.
	g := world.NewGrid(3, 3)
	g.Set(1, 1, world.TileEmpty)
	p := NewPlayer(world.Point{X: 1, Y: 1})

	p.TurnLeft()
	if p.Angle != -p.RotationSpeed {
		t.Errorf("angle after left turn = %f, want %f", p.Angle, -p.RotationSpeed)
	}
	p.TurnRight()
	p.TurnRight()
	if math.Abs(p.Angle-p.RotationSpeed) > 1e-9 {
		t.Errorf("angle after right turns = %f, want %f", p.Angle, p.RotationSpeed)
	}
}

func TestAheadQuery(t *testing.T) {
	g := openGrid()
	g.Set(4, 2, world.TileDoor)

	// From the center of (3,2) facing east, 80 pixels ahead lands in (4,2).
	p := NewPlayer(world.Point{X: 3, Y: 2})
	point, tile := p.Ahead(g, DefaultCheckDistance)

	if point != (world.Point{X: 4, Y: 2}) {
		t.Errorf("ahead point = %v, want (4,2)", point)
	}
	if tile != world.TileDoor {
		t.Errorf("ahead tile = %v, want door", tile)
	}
}

func TestAheadOutOfBoundsIsWall(t *testing.T) {
	g := openGrid()
	p := NewPlayer(world.Point{X: 1, Y: 1})
	p.Angle = math.Pi // facing west, toward the edge

	p.X = 0.5 * world.TileSize
	_, tile := p.Ahead(g, DefaultCheckDistance)
	if tile != world.TileWall {
		t.Errorf("ahead tile past the edge = %v, want wall", tile)
	}
}

func TestSpawnCentersPlayerInTile(t *testing.T) {
	p := NewPlayer(world.Point{X: 3, Y: 7})
	if p.X != 3.5*world.TileSize || p.Y != 7.5*world.TileSize {
		t.Errorf("spawn position = (%f,%f), want tile center", p.X, p.Y)
	}
}
