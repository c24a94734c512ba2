package world

import "testing"

func TestTilePredicates(t *testing.T) {
	cases := []struct {
		tile     Tile
		walkable bool
		blocks   bool
		rune     rune
	}{
		{TileEmpty, true, false, '.'},
		{TileWall, false, true, '#'},
		{TileDoor, false, true, '+'},
		{TileExit, true, false, '>'},
	}
	for _, c := range cases {
		if c.tile.IsWalkable() != c.walkable {
			t.Errorf("%v IsWalkable = %v, want %v", c.tile, c.tile.IsWalkable(), c.walkable)
		}
		if c.tile.Blocks() != c.blocks {
			t.Errorf("%v Blocks = %v, want %v", c.tile, c.tile.Blocks(), c.blocks)
		}
		if c.tile.Rune() != c.rune {
			t.Errorf("%v Rune = %q, want %q", c.tile, c.tile.Rune(), c.rune)
		}
	}
}
