package snake

import (
	"fmt"

	"github.com/vovakirdan/noodle/internal/core"
	"github.com/vovakirdan/noodle/internal/engine"
)

// Render draws the HUD, the board and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	board := core.NewRect(g.offsetX, g.offsetY, g.arena.Cols()*cellWidth+2, g.arena.Rows()+2)
	dst.DrawBox(board, core.ColorGray)

	fruit := g.arena.Fruit().Position()
	g.drawCell(dst, fruit, "()", core.ColorBrightRed)

	for i, seg := range g.arena.Snake().Segments() {
		if i == 0 {
			g.drawCell(dst, seg, "██", core.ColorBrightGreen)
		} else {
			g.drawCell(dst, seg, "▓▓", core.ColorGreen)
		}
	}

	m := g.arena.Metrics()
	switch {
	case m.Done:
		hint := "Press R to restart"
		if g.mode == ModeAutopilot {
			hint = "Restarting..."
		}
		g.renderOverlay(dst, endMessage(m), hint)
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// drawCell paints the grid cell at pixel position p.
func (g *Game) drawCell(dst *core.Screen, p engine.Point, glyph string, c core.Color) {
	col, row := g.arena.Cell(p)
	dst.DrawTextColored(g.offsetX+1+col*cellWidth, g.offsetY+1+row, glyph, c)
}

func (g *Game) renderHUD(dst *core.Screen) {
	m := g.arena.Metrics()
	perFood := "-"
	if m.HasMovesPerFood() {
		perFood = fmt.Sprintf("%.1f", m.MovesPerFood)
	}
	hud := fmt.Sprintf(" %s  Score: %d  Steps: %d  Moves/food: %s",
		g.Title(), m.Score, m.StepsTaken, perFood)
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)

	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}
}

func endMessage(m engine.Metrics) string {
	switch m.Reason {
	case engine.EndBoardFull:
		return fmt.Sprintf("Board cleared! Score: %d", m.Score)
	case engine.EndSelf:
		return fmt.Sprintf("Bit yourself! Score: %d", m.Score)
	default:
		return fmt.Sprintf("Hit the wall! Score: %d", m.Score)
	}
}

// renderOverlay draws a centred two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.CenteredIn(dst.Bounds(), w, 5)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorYellow)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}
