// Package entity provides the player and its movement against the grid.
package entity

import (
	"math"

	"github.com/kmoroz/repodelve/internal/raycast"
	"github.com/kmoroz/repodelve/internal/world"
)

const (
	// DefaultSpeed is the forward/backward step per frame, pixels.
	DefaultSpeed = 8.0
	// DefaultRotationSpeed is the turn step per frame, radians.
	DefaultRotationSpeed = 0.07
	// DefaultCheckDistance is how far ahead the look-ahead query
	// projects, pixels.
	DefaultCheckDistance = 80.0
)

// Player is the mutable player pose: a position in continuous pixel
// coordinates and a heading in radians. The renderer reads it; only the
// movement methods mutate it.
type Player struct {
	X, Y          float64
	Angle         float64
	Speed         float64
	RotationSpeed float64
}

// NewPlayer places a player at the center of the spawn tile, facing east.
func NewPlayer(spawn world.Point) *Player {
	return &Player{
		X:             (float64(spawn.X) + 0.5) * world.TileSize,
		Y:             (float64(spawn.Y) + 0.5) * world.TileSize,
		Speed:         DefaultSpeed,
		RotationSpeed: DefaultRotationSpeed,
	}
}

// Pose returns the current viewpoint for the renderer.
func (p *Player) Pose() raycast.Pose {
	return raycast.Pose{X: p.X, Y: p.Y, Angle: p.Angle}
}

// MoveForward advances one step along the heading. The move is rejected if
// the destination tile blocks (wall or door); exit tiles are walkable.
// Returns true if the player moved.
func (p *Player) MoveForward(g *world.Grid) bool {
	return p.tryMove(g, 1)
}

// MoveBackward steps against the heading, with the same collision rule.
func (p *Player) MoveBackward(g *world.Grid) bool {
	return p.tryMove(g, -1)
}

func (p *Player) tryMove(g *world.Grid, dir float64) bool {
	newX := p.X + math.Cos(p.Angle)*p.Speed*dir
	newY := p.Y + math.Sin(p.Angle)*p.Speed*dir

	if !g.AtPixel(newX, newY).IsWalkable() {
		return false
	}
	p.X = newX
	p.Y = newY
	return true
}

// TurnLeft rotates counter-clockwise. Rotation never collides.
func (p *Player) TurnLeft() {
	p.Angle -= p.RotationSpeed
}

// TurnRight rotates clockwise.
func (p *Player) TurnRight() {
	p.Angle += p.RotationSpeed
}

// Ahead projects a point checkDistance pixels along the heading and returns
// the tile coordinate it lands on together with that tile's code. This is
// the query behind both the "you are facing X" indicator and the interact
// action.
func (p *Player) Ahead(g *world.Grid, checkDistance float64) (world.Point, world.Tile) {
	px := p.X + math.Cos(p.Angle)*checkDistance
	py := p.Y + math.Sin(p.Angle)*checkDistance

	tileX := int(math.Floor(px / world.TileSize))
	tileY := int(math.Floor(py / world.TileSize))
	return world.Point{X: tileX, Y: tileY}, g.At(tileX, tileY)
}
