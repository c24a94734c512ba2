// Package raycast projects the tile grid into a first-person column image.
// It owns the geometry only; putting the columns on an actual screen is the
// front end's job.
package raycast

import (
	"math"

	"github.com/kmoroz/repodelve/internal/world"
)

const (
	// DefaultFOV is the horizontal field of view in radians.
	DefaultFOV = math.Pi / 3
	// DefaultMaxDepth is how far a ray travels before giving up, in pixels.
	DefaultMaxDepth = 20 * world.TileSize
	// DefaultStepSize is the ray march increment in pixels. Smaller steps
	// cost more and land more precisely; the hit semantics do not change.
	DefaultStepSize = 2.0

	// minShade floors the distance dimming so nothing renders fully black.
	minShade = 0.3

	// epsilon guards the wall height division when a ray starts inside or
	// flush against a wall.
	epsilon = 1e-4
)

// Pose is the viewpoint a frame is rendered from: a position in pixel
// coordinates and a heading in radians.
type Pose struct {
	X, Y  float64
	Angle float64
}

// Hit is the result of casting a single ray: the raw travel distance in
// pixels and the tile code that stopped it. A ray that reaches max depth
// without hitting anything reports TileEmpty.
type Hit struct {
	Distance float64
	Tile     world.Tile
}

// Column is one vertical slice of a rendered frame.
type Column struct {
	Index    int        // screen column, 0-based from the left
	Distance float64    // perpendicular (fish-eye corrected) distance, pixels
	Height   float64    // projected wall slice height, screen pixels
	Shade    float64    // brightness factor in [minShade, 1]
	Tile     world.Tile // what the ray hit
}

// Renderer casts one ray per screen column. It holds no per-frame state, so
// a single Renderer may serve any number of grids and poses.
type Renderer struct {
	FOV          float64
	RayCount     int
	MaxDepth     float64
	StepSize     float64
	ScreenHeight int
}

// NewRenderer creates a renderer with rayCount columns projected onto a
// screen of the given height.
func NewRenderer(rayCount, screenHeight int) *Renderer {
	return &Renderer{
		FOV:          DefaultFOV,
		RayCount:     rayCount,
		MaxDepth:     DefaultMaxDepth,
		StepSize:     DefaultStepSize,
		ScreenHeight: screenHeight,
	}
}

// CastRay marches from (x, y) along angle in StepSize increments until the
// sampled tile is not empty floor or the distance reaches MaxDepth.
// Out-of-bounds samples read as wall, so every ray terminates.
func (r *Renderer) CastRay(g *world.Grid, x, y, angle float64) Hit {
	dirX := math.Cos(angle)
	dirY := math.Sin(angle)

	for depth := r.StepSize; depth < r.MaxDepth; depth += r.StepSize {
		tile := g.AtPixel(x+dirX*depth, y+dirY*depth)
		if tile != world.TileEmpty {
			return Hit{Distance: depth, Tile: tile}
		}
	}
	return Hit{Distance: r.MaxDepth, Tile: world.TileEmpty}
}

// RenderFrame casts RayCount rays across the FOV centered on the pose's
// heading and returns one column per ray. The output depends only on the
// inputs: rendering the same grid and pose twice gives identical columns.
func (r *Renderer) RenderFrame(g *world.Grid, pose Pose) []Column {
	columns := make([]Column, r.RayCount)

	for i := 0; i < r.RayCount; i++ {
		rayAngle := pose.Angle - r.FOV/2 + float64(i)*(r.FOV/float64(r.RayCount))
		hit := r.CastRay(g, pose.X, pose.Y, rayAngle)

		// Correct fish-eye distortion: an off-center ray travels a longer
		// diagonal path to the same wall plane, so project its distance
		// onto the viewing direction. Rendering the raw distance bows the
		// walls at the screen edges.
		perp := hit.Distance * math.Cos(rayAngle-pose.Angle)

		columns[i] = Column{
			Index:    i,
			Distance: perp,
			Height:   world.TileSize * float64(r.ScreenHeight) / (perp + epsilon),
			Shade:    math.Max(minShade, 1-perp/r.MaxDepth),
			Tile:     hit.Tile,
		}
	}

	return columns
}
