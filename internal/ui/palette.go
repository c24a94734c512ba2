package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kmoroz/repodelve/internal/world"
)

// Base colors of the flat-shaded surfaces, dimmed per column by the
// renderer's shade factor.
var (
	wallColor    = MustParseHexColor("#B8B8B8")
	doorColor    = MustParseHexColor("#D4A017")
	exitColor    = MustParseHexColor("#3CB371")
	ceilingStyle = tcell.StyleDefault.Foreground(MustParseHexColor("#1C1C2E"))
	floorStyle   = tcell.StyleDefault.Foreground(MustParseHexColor("#3A3A3A"))
	hudStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	labelStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(doorColor)
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid red component in %s: %w", hex, err)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid green component in %s: %w", hex, err)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid blue component in %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}

// wallStyle returns the style for a wall slice: the tile's base color
// scaled by the shade factor.
func wallStyle(tile world.Tile, shade float64) tcell.Style {
	var base tcell.Color
	switch tile {
	case world.TileDoor:
		base = doorColor
	case world.TileExit:
		base = exitColor
	default:
		base = wallColor
	}

	r, g, b := base.RGB()
	dim := tcell.NewRGBColor(
		int32(float64(r)*shade),
		int32(float64(g)*shade),
		int32(float64(b)*shade),
	)
	return tcell.StyleDefault.Foreground(dim)
}

// shadeRune picks the fill character for a wall slice: solid up close,
// sparser with distance.
func shadeRune(shade float64) rune {
	switch {
	case shade > 0.8:
		return '█'
	case shade > 0.6:
		return '▓'
	case shade > 0.4:
		return '▒'
	default:
		return '░'
	}
}
