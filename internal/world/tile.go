// Package world provides the tile grid and procedural dungeon generation.
package world

// TileSize is the side length of one tile in pixel coordinates. The player
// and the raycaster work in pixels; the grid works in tiles.
const TileSize = 64.0

// Tile is a single map cell code. The numeric values are part of the wire
// format served to clients and must not change.
type Tile int

const (
	// TileEmpty is walkable floor.
	TileEmpty Tile = 0
	// TileWall is an impassable wall.
	TileWall Tile = 1
	// TileDoor is an impassable, interactive wall cell bound to content.
	TileDoor Tile = 2
	// TileExit is walkable floor marking the dungeon exit.
	TileExit Tile = 5
)

// IsWalkable returns true if the player may stand on the tile.
func (t Tile) IsWalkable() bool {
	return t == TileEmpty || t == TileExit
}

// Blocks returns true if the tile stops both movement and rays.
func (t Tile) Blocks() bool {
	return t == TileWall || t == TileDoor
}

// Rune returns the tile's display character for map views.
func (t Tile) Rune() rune {
	switch t {
	case TileEmpty:
		return '.'
	case TileWall:
		return '#'
	case TileDoor:
		return '+'
	case TileExit:
		return '>'
	default:
		return '?'
	}
}

// Point is a tile coordinate. It is used directly as a map key, so door
// lookups are keyed by the coordinate pair rather than a derived scalar.
type Point struct {
	X, Y int
}
