package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kmoroz/repodelve/internal/content"
	"github.com/kmoroz/repodelve/internal/raycast"
	"github.com/kmoroz/repodelve/internal/world"
)

const (
	// labelMinHeight is the fraction of the screen a door slice must
	// reach before its label is drawn.
	labelMinHeight = 0.45

	minimapRadius = 5
)

// View draws rendered frames and the reading overlay onto a Screen.
type View struct {
	screen *Screen
	scroll int
}

// NewView creates a view for the given screen.
func NewView(screen *Screen) *View {
	return &View{screen: screen}
}

// Size returns the screen dimensions.
func (v *View) Size() (width, height int) {
	return v.screen.Size()
}

// RenderWorld draws one first-person frame: per-column wall slices shaded
// by distance, flat ceiling and floor halves, door labels, a minimap, and
// the facing indicator on the HUD line.
func (v *View) RenderWorld(columns []raycast.Column, grid *world.Grid, px, py float64, facingTile world.Tile, facing *content.Repository) {
	v.screen.Clear()
	width, height := v.screen.Size()

	n := len(columns)
	if n > width {
		n = width
	}

	for i := 0; i < n; i++ {
		col := columns[i]
		v.drawColumn(i, col, height)
	}

	v.drawDoorLabels(columns[:n], height, facing)
	v.drawMinimap(grid, px, py)
	v.drawHUD(width, height, facingTile, facing)

	v.screen.Show()
}

// drawColumn paints one vertical slice: ceiling, wall, floor.
func (v *View) drawColumn(x int, col raycast.Column, height int) {
	wallHeight := int(col.Height)
	if wallHeight > height {
		wallHeight = height
	}
	top := (height - wallHeight) / 2
	bottom := top + wallHeight

	if col.Tile == world.TileEmpty {
		// Ray ran out of depth; nothing but ceiling and floor.
		top, bottom = height/2, height/2
	}

	style := wallStyle(col.Tile, col.Shade)
	fill := shadeRune(col.Shade)

	for y := 0; y < height; y++ {
		switch {
		case y < top:
			v.screen.SetContent(x, y, ' ', ceilingStyle)
		case y < bottom:
			v.screen.SetContent(x, y, fill, style)
		default:
			// Floor brightness falls off toward the horizon.
			b := float64(y-height/2) / math.Max(1, float64(height)/2)
			var r rune
			switch {
			case b > 0.66:
				r = '.'
			case b > 0.33:
				r = '-'
			default:
				r = ' '
			}
			v.screen.SetContent(x, y, r, floorStyle)
		}
	}
}

// drawDoorLabels overlays a short label on each contiguous run of door
// columns tall enough to read. The label marks the tile as interactive;
// the HUD names the repository behind it.
func (v *View) drawDoorLabels(columns []raycast.Column, height int, facing *content.Repository) {
	width := len(columns)
	threshold := float64(height) * labelMinHeight

	runStart := -1
	for x := 0; x <= width; x++ {
		isDoor := x < width && columns[x].Tile == world.TileDoor && columns[x].Height >= threshold
		if isDoor && runStart < 0 {
			runStart = x
		}
		if !isDoor && runStart >= 0 {
			v.labelRun(runStart, x, height, facing)
			runStart = -1
		}
	}
}

func (v *View) labelRun(start, end, height int, facing *content.Repository) {
	runWidth := end - start
	if runWidth < 4 {
		return
	}

	label := "[door]"
	if facing != nil && start <= v.centerColumn() && v.centerColumn() < end {
		label = "[" + facing.Title + "]"
	}
	if len(label) > runWidth {
		label = label[:runWidth]
	}

	x := start + (runWidth-len(label))/2
	v.screen.Print(x, height/2, label, labelStyle)
}

func (v *View) centerColumn() int {
	width, _ := v.screen.Size()
	return width / 2
}

// drawMinimap renders a small tile window around the player in the top-left
// corner, the dungeon seen from above.
func (v *View) drawMinimap(grid *world.Grid, px, py float64) {
	ptx := int(px / world.TileSize)
	pty := int(py / world.TileSize)

	mapStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	playerStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)

	for dy := -minimapRadius; dy <= minimapRadius; dy++ {
		for dx := -minimapRadius; dx <= minimapRadius; dx++ {
			sx := dx + minimapRadius
			sy := dy + minimapRadius
			if dx == 0 && dy == 0 {
				v.screen.SetContent(sx, sy, '@', playerStyle)
				continue
			}
			v.screen.SetContent(sx, sy, grid.At(ptx+dx, pty+dy).Rune(), mapStyle)
		}
	}
}

// drawHUD writes the facing indicator on the bottom line.
func (v *View) drawHUD(width, height int, facingTile world.Tile, facing *content.Repository) {
	var msg string
	switch {
	case facing != nil:
		msg = fmt.Sprintf("Facing: %s (enter to read)", facing.Title)
	case facingTile == world.TileDoor:
		msg = "Facing: a sealed door"
	case facingTile == world.TileExit:
		msg = "Facing: the exit"
	default:
		msg = "arrows/wasd move · enter interact · q quit"
	}
	if len(msg) > width {
		msg = msg[:width]
	}
	v.screen.Print(0, height-1, msg, hudStyle)
}

// RenderOverlay draws the reading panel for an open repository: title, URL,
// description, and the README body with scrolling.
func (v *View) RenderOverlay(repo *content.Repository) {
	v.screen.Clear()
	width, height := v.screen.Size()

	margin := 2
	innerW := width - margin*2
	if innerW < 10 || height < 6 {
		v.screen.Show()
		return
	}

	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	urlStyle := tcell.StyleDefault.Foreground(tcell.ColorTeal).Underline(true)
	bodyStyle := tcell.StyleDefault.Foreground(tcell.ColorSilver)

	var lines []struct {
		text  string
		style tcell.Style
	}
	push := func(text string, style tcell.Style) {
		lines = append(lines, struct {
			text  string
			style tcell.Style
		}{text, style})
	}

	push(repo.Title, titleStyle)
	push(repo.URL, urlStyle)
	if repo.Description != "" {
		push(repo.Description, bodyStyle)
	}
	push("", bodyStyle)
	for _, line := range wrapText(repo.Readme, innerW) {
		push(line, bodyStyle)
	}

	// Clamp scroll to the visible window.
	visible := height - margin - 1
	maxScroll := len(lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if v.scroll > maxScroll {
		v.scroll = maxScroll
	}
	if v.scroll < 0 {
		v.scroll = 0
	}

	y := margin
	for i := v.scroll; i < len(lines) && y < height-1; i++ {
		text := lines[i].text
		if len(text) > innerW {
			text = text[:innerW]
		}
		v.screen.Print(margin, y, text, lines[i].style)
		y++
	}

	v.screen.Print(margin, height-1, "up/down scroll · esc close", hudStyle)
	v.screen.Show()
}

// Scroll moves the overlay viewport by delta lines.
func (v *View) Scroll(delta int) {
	v.scroll += delta
}

// ResetScroll rewinds the overlay to the top, for the next opened item.
func (v *View) ResetScroll() {
	v.scroll = 0
}

// wrapText greedily wraps text to the given width, preserving paragraph
// breaks.
func wrapText(text string, width int) []string {
	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}

		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) > width {
				out = append(out, line)
				line = word
				continue
			}
			line += " " + word
		}
		out = append(out, line)
	}
	return out
}
