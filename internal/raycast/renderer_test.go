package raycast

import (
	"math"
	"reflect"
	"testing"

	"github.com/kmoroz/repodelve/internal/world"
)

// corridorGrid builds a grid with a single east-west corridor at row 2,
// open from x=1 through x=10, walls everywhere else.
func corridorGrid() *world.Grid {
	g := world.NewGrid(12, 5)
	for x := 1; x <= 10; x++ {
		g.Set(x, 2, world.TileEmpty)
	}
	return g
}

// corridorPose stands the player in tile (1,2) facing east.
func corridorPose() Pose {
	return Pose{
		X: 1.5 * world.TileSize,
		Y: 2.5 * world.TileSize,
	}
}

func TestCastRayStraightCorridor(t *testing.T) {
	r := NewRenderer(64, 48)
	g := corridorGrid()
	pose := corridorPose()

	hit := r.CastRay(g, pose.X, pose.Y, 0)

	if hit.Tile != world.TileWall {
		t.Fatalf("hit tile = %v, want wall", hit.Tile)
	}

	// The wall face at x=11 is 11*64 - 96 = 608 pixels away; the marcher
	// overshoots by at most one step.
	wantDist := 11*world.TileSize - pose.X
	if hit.Distance < wantDist || hit.Distance > wantDist+r.StepSize {
		t.Errorf("distance = %f, want within [%f, %f]", hit.Distance, wantDist, wantDist+r.StepSize)
	}
}

func TestCastRayOutOfBoundsIsWall(t *testing.T) {
	r := NewRenderer(64, 48)
	g := world.NewGrid(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			g.Set(x, y, world.TileEmpty)
		}
	}

	// Facing west from the middle: the only thing out there is the void,
	// which reads as wall.
	hit := r.CastRay(g, 1.5*world.TileSize, 1.5*world.TileSize, math.Pi)
	if hit.Tile != world.TileWall {
		t.Errorf("out-of-bounds hit tile = %v, want wall", hit.Tile)
	}
	if hit.Distance >= r.MaxDepth {
		t.Errorf("out-of-bounds hit distance = %f, want < max depth", hit.Distance)
	}
}

func TestCastRayRespectsMaxDepth(t *testing.T) {
	r := NewRenderer(64, 48)
	r.MaxDepth = 3 * world.TileSize
	g := corridorGrid()
	pose := corridorPose()

	hit := r.CastRay(g, pose.X, pose.Y, 0)
	if hit.Tile != world.TileEmpty {
		t.Errorf("capped ray hit tile = %v, want empty", hit.Tile)
	}
	if hit.Distance != r.MaxDepth {
		t.Errorf("capped ray distance = %f, want %f", hit.Distance, r.MaxDepth)
	}
}

func TestCenterColumnPerpendicularDistance(t *testing.T) {
	r := NewRenderer(64, 48)
	g := corridorGrid()
	pose := corridorPose()

	columns := r.RenderFrame(g, pose)

	// The center column points straight down the corridor, so its
	// corrected distance equals the raw corridor length.
	center := columns[len(columns)/2]
	wantDist := 11*world.TileSize - pose.X
	tolerance := r.StepSize + 1
	if math.Abs(center.Distance-wantDist) > tolerance {
		t.Errorf("center distance = %f, want %f ± %f", center.Distance, wantDist, tolerance)
	}
	if center.Tile != world.TileWall {
		t.Errorf("center tile = %v, want wall", center.Tile)
	}
}

func TestFishEyeCorrectionShortensOffCenterRays(t *testing.T) {
	r := NewRenderer(64, 48)
	g := corridorGrid()
	pose := corridorPose()

	// The leftmost ray leaves at -FOV/2 from the heading; its raw travel
	// distance is a longer diagonal than the corrected distance.
	edgeAngle := pose.Angle - r.FOV/2
	raw := r.CastRay(g, pose.X, pose.Y, edgeAngle)
	columns := r.RenderFrame(g, pose)

	if columns[0].Distance >= raw.Distance {
		t.Errorf("corrected distance %f not less than raw distance %f", columns[0].Distance, raw.Distance)
	}
}

func TestWallHeightMonotonicInDistance(t *testing.T) {
	r := NewRenderer(64, 48)
	g := corridorGrid()
	columns := r.RenderFrame(g, corridorPose())

	for i := range columns {
		for j := range columns {
			if columns[i].Distance < columns[j].Distance && columns[i].Height <= columns[j].Height {
				t.Fatalf("column %d (dist %f, height %f) not taller than column %d (dist %f, height %f)",
					i, columns[i].Distance, columns[i].Height, j, columns[j].Distance, columns[j].Height)
			}
		}
	}
}

func TestShadeFlooredAtMinimum(t *testing.T) {
	r := NewRenderer(64, 48)
	r.MaxDepth = 4 * world.TileSize
	g := corridorGrid()
	columns := r.RenderFrame(g, corridorPose())

	for _, col := range columns {
		if col.Shade < minShade || col.Shade > 1 {
			t.Errorf("column %d shade = %f, want within [%f, 1]", col.Index, col.Shade, minShade)
		}
	}

	// A ray that runs out of depth sits exactly on the floor value.
	center := columns[len(columns)/2]
	if center.Tile == world.TileEmpty && center.Shade != minShade {
		t.Errorf("max-depth column shade = %f, want %f", center.Shade, minShade)
	}
}

func TestRenderFrameIdempotent(t *testing.T) {
	r := NewRenderer(64, 48)
	g := corridorGrid()
	pose := corridorPose()

	first := r.RenderFrame(g, pose)
	second := r.RenderFrame(g, pose)

	if !reflect.DeepEqual(first, second) {
		t.Error("two renders of the same grid and pose differ")
	}
}

func TestDoorHitReportsDoorTile(t *testing.T) {
	r := NewRenderer(64, 48)
	g := corridorGrid()
	g.Set(11, 2, world.TileDoor)
	pose := corridorPose()

	columns := r.RenderFrame(g, pose)
	center := columns[len(columns)/2]
	if center.Tile != world.TileDoor {
		t.Errorf("center tile = %v, want door", center.Tile)
	}
}
