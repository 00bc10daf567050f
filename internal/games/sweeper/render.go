package sweeper

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/mines"
)

const hudHeight = 3 // title, counters, status line

// glyphWidths is the terminal column width of each theme's glyphs.
var glyphWidths = map[string]int{
	mines.ASCII.Name: 1,
	mines.Emoji.Name: 2,
}

// pitch is the number of columns per board cell: a separator plus the glyph.
func (g *Game) pitch() int {
	w, ok := glyphWidths[g.theme.Name]
	if !ok {
		w = 1
	}
	return w + 1
}

// boardSize returns the outer size of the framed board.
func (g *Game) boardSize() (w, h int) {
	return g.engine.Width()*g.pitch() + 3, g.engine.Height() + 2
}

// minScreen returns the smallest screen that fits the board and footer.
func (g *Game) minScreen() (w, h int) {
	boxW, boxH := g.boardSize()
	return core.Max(boxW, 24), hudHeight + boxH + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boxW, boxH := g.boardSize()
	boardX := core.Max((g.screenW-boxW)/2, 0)
	boardY := hudHeight

	g.renderHUD(dst)
	dst.DrawBox(core.NewRect(boardX, boardY, boxW, boxH), core.ColorGray)

	if g.paused {
		dst.DrawTextCenteredColor(boardY+boxH/2, "PAUSED", core.ColorBrightYellow)
	} else {
		g.renderCells(dst, boardX+1, boardY+1)
	}

	g.renderFooter(dst, boardY+boxH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := g.minScreen()
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small")
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d, have %dx%d", minW, minH, g.screenW, g.screenH))
	dst.DrawTextCentered(y+1, "Resize the terminal or pick a smaller preset")
}

// renderHUD draws the title, counters and round status.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCenteredColor(0, g.title, core.ColorBrightCyan)

	// The bomb count is random and stays hidden until the round ends.
	stats := g.engine.Stats()
	hud := fmt.Sprintf("Flags: %d  Score: %d", stats.Flags, g.score)
	if g.engine.State().Over() {
		hud = fmt.Sprintf("Mines: %d  Score: %d", stats.Bombs, g.score)
	}
	if g.cfg.Display.ShowClock {
		hud += "  Time: " + formatClock(g.Elapsed())
	}
	dst.DrawTextCentered(1, hud)

	switch g.engine.State() {
	case mines.Won:
		dst.DrawTextCenteredColor(2, "YOU WIN!  Press R for a new board", core.ColorBrightGreen)
	case mines.Lost:
		dst.DrawTextCenteredColor(2, "BOOM!  Press R to try again", core.ColorBrightRed)
	}
}

// renderCells draws every interior cell and the cursor brackets.
func (g *Game) renderCells(dst *core.Screen, originX, originY int) {
	pitch := g.pitch()
	glyphW := pitch - 1

	for y := 1; y <= g.engine.Height(); y++ {
		row := originY + y - 1
		for x := 1; x <= g.engine.Width(); x++ {
			px := originX + (x-1)*pitch
			glyph := g.engine.SymbolAt(g.theme, x, y)
			dst.SetGlyph(px+1, row, glyph, glyphW, g.cellColor(x, y))
		}
	}

	if g.engine.State() == mines.Playing {
		px := originX + (g.cursor.X-1)*pitch
		row := originY + g.cursor.Y - 1
		dst.SetColor(px, row, '[', core.ColorBrightYellow)
		dst.SetColor(px+pitch, row, ']', core.ColorBrightYellow)
	}
}

// cellColor picks the color of the glyph at (x, y).
func (g *Game) cellColor(x, y int) core.Color {
	switch g.engine.OverlayAt(x, y) {
	case mines.Open:
		switch g.engine.ContentAt(x, y) {
		case mines.Bomb:
			return core.ColorRed
		case mines.BombExploded:
			return core.ColorBrightRed
		default:
			return core.NumberColors[g.engine.BombCount(x, y)]
		}
	case mines.Flagged:
		return core.ColorOrange
	case mines.Awake:
		return core.ColorYellow
	case mines.Secret:
		return core.ColorBrightMagenta
	default:
		return core.ColorGray
	}
}

// renderFooter draws the last message and key hints below the board.
func (g *Game) renderFooter(dst *core.Screen, y int) {
	if g.message != "" {
		dst.DrawTextCentered(y, g.message)
	}
	dst.DrawTextCenteredColor(y+1, g.Controls(), core.ColorGray)
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/HJKL: Move | Space: Open | F: Flag | R: New | P: Pause | Q: Quit"
}

// formatClock renders a duration as mm:ss.
func formatClock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
