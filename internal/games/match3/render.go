package match3

import (
	"fmt"

	"github.com/tilelab/cascade/internal/cascade"
	"github.com/tilelab/cascade/internal/core"
)

// Board cells render two columns wide: the tile glyph and a layer marker.
const cellW = 2

func colorFor(t cascade.TileType) core.Color {
	switch t {
	case cascade.TileRed:
		return core.ColorRed
	case cascade.TileGreen:
		return core.ColorGreen
	case cascade.TileBlue:
		return core.ColorBlue
	case cascade.TileYellow:
		return core.ColorYellow
	case cascade.TilePurple:
		return core.ColorMagenta
	case cascade.TileOrange:
		return core.ColorOrange
	case cascade.TileRainbow:
		return core.ColorBrightWhite
	default:
		return core.ColorDefault
	}
}

func glyphFor(t cascade.Tile) rune {
	switch t.Bomb {
	case cascade.BombRow:
		return '═'
	case cascade.BombColumn:
		return '║'
	case cascade.BombArea:
		return '◈'
	case cascade.BombHoming:
		return '✦'
	case cascade.BombRainbow:
		return '★'
	default:
		return '●'
	}
}

// Render draws the board, layers, cursor and HUD.
func (g *Game) Render(dst *core.Screen) {
	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	b := g.engine.Board()
	boardW := b.W * cellW
	left := (dst.Width() - boardW) / 2
	top := 2

	g.renderHUD(dst, left, boardW)
	dst.DrawBox(core.NewRect(left-1, top-1, boardW+2, b.H+2))

	// Ground and covers first so tiles draw over them.
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			sx := left + x*cellW
			sy := top + y
			if gr := b.GroundAt(x, y); gr.Present() {
				r := '░'
				if gr.Kind == cascade.GroundStone {
					r = '▒'
				}
				dst.SetColored(sx, sy, r, core.ColorGray)
			}
		}
	}

	// Tiles at their continuous positions.
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			t := b.At(x, y)
			if t.Empty() {
				continue
			}
			row := int(t.PY + 0.5)
			if row < 0 || row >= b.H {
				continue
			}
			col := int(t.PX + 0.5)
			sx := left + col*cellW
			sy := top + row
			color := colorFor(t.Type)
			if g.flashes[cascade.Point{X: x, Y: y}] > 0 {
				color = core.ColorBrightWhite
			}
			dst.SetColored(sx, sy, glyphFor(t), color)
		}
	}

	// Cover markers in the cell's second column.
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			c := b.CoverAt(x, y)
			if !c.Present() {
				continue
			}
			var r rune
			switch c.Kind {
			case cascade.CoverIce:
				r = '▫'
			case cascade.CoverChain:
				r = '#'
			case cascade.CoverBubble:
				r = 'o'
			}
			dst.SetColored(left+x*cellW+1, top+y, r, core.ColorBrightCyan)
		}
	}

	// Cursor and selection markers.
	g.drawMarker(dst, left, top, g.cursor, '>', '<', core.ColorBrightYellow)
	if g.selected {
		g.drawMarker(dst, left, top, g.selCell, '[', ']', core.ColorBrightGreen)
	}

	g.renderStatus(dst, left, top, b)
}

// drawMarker brackets a cell with the given runes.
func (g *Game) drawMarker(dst *core.Screen, left, top int, p cascade.Point, lr, rr rune, c core.Color) {
	sx := left + p.X*cellW
	sy := top + p.Y
	dst.SetColored(sx-1, sy, lr, c)
	dst.SetColored(sx+1, sy, rr, c)
}

// renderHUD draws the top status line.
func (g *Game) renderHUD(dst *core.Screen, left, boardW int) {
	hud := fmt.Sprintf("%s  Score: %d", g.Title(), g.State().Score)
	switch g.mode {
	case ModeSprint:
		hud += fmt.Sprintf("  Moves: %d/%d", g.engine.Moves(), g.moveBudget)
	case ModeQuarry:
		lv := GetLevel(g.levelIndex)
		hud += fmt.Sprintf("  Level %d: %s  Ground: %d", lv.ID, lv.Name, groundRemaining(g.engine.Board()))
	default:
		hud += fmt.Sprintf("  Moves: %d", g.engine.Moves())
	}
	dst.DrawText(left-1, 0, hud)
	if g.gainTicks > 0 && g.lastGain > 0 {
		dst.DrawTextColored(left+boardW-8, 1, fmt.Sprintf("+%d", g.lastGain), core.ColorBrightGreen)
	}
}

// renderStatus draws overlays under the board.
func (g *Game) renderStatus(dst *core.Screen, left, top int, b *cascade.Board) {
	line := top + b.H + 2
	switch {
	case g.won:
		dst.DrawTextCentered(line, "Quarry cleared! Press R to restart")
	case g.gameOver:
		dst.DrawTextCentered(line, "Game over. Press R to restart")
	case g.levelCleared:
		dst.DrawTextCentered(line, "Level cleared!")
	case g.paused:
		dst.DrawTextCentered(line, "Paused")
	default:
		dst.DrawTextCentered(line, "Arrows move, Enter selects, Esc cancels")
	}
}
