package world

import "math"

// Grid is the square tile matrix the renderer and the player controller read
// every frame. It is mutated only during generation; after Generate returns
// it is treated as immutable, so concurrent reads need no locking.
type Grid struct {
	Width  int
	Height int
	Tiles  [][]Tile // indexed Tiles[y][x]
}

// NewGrid creates a grid filled with walls.
func NewGrid(width, height int) *Grid {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}

	return &Grid{
		Width:  width,
		Height: height,
		Tiles:  tiles,
	}
}

// InBounds returns true if the tile coordinate is inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at the given coordinate. Anything outside the grid
// reads as a wall, for both collision and raycasting.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.Tiles[y][x]
}

// Set writes a tile code. Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, t Tile) {
	if g.InBounds(x, y) {
		g.Tiles[y][x] = t
	}
}

// IsWalkable returns true if the player may stand on the tile at (x, y).
func (g *Grid) IsWalkable(x, y int) bool {
	return g.At(x, y).IsWalkable()
}

// AtPixel returns the tile containing the given pixel coordinate.
func (g *Grid) AtPixel(px, py float64) Tile {
	return g.At(int(math.Floor(px/TileSize)), int(math.Floor(py/TileSize)))
}

// Doors returns the coordinates of every door tile in scan order
// (row by row, left to right).
func (g *Grid) Doors() []Point {
	var doors []Point
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Tiles[y][x] == TileDoor {
				doors = append(doors, Point{X: x, Y: y})
			}
		}
	}
	return doors
}

// Ints returns the grid as row-major integers for transport to clients.
func (g *Grid) Ints() [][]int {
	out := make([][]int, g.Height)
	for y := range out {
		out[y] = make([]int, g.Width)
		for x := range out[y] {
			out[y][x] = int(g.Tiles[y][x])
		}
	}
	return out
}
