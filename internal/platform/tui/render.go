package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-duel/internal/core"
	"github.com/vovakirdan/snake-duel/internal/games/duel"
	"github.com/vovakirdan/snake-duel/internal/multiplayer"
)

// Board glyphs. Each grid cell is two characters wide so the board looks square.
const (
	cellWidth = 2
	bodyGlyph = '█'
	headGlyph = '▓'
	foodGlyph = '●'
	deadGlyph = '✖'
)

// HUD carries the non-board state drawn around the duel.
type HUD struct {
	Opponent string          // Strategy ID of snake B
	Paused   bool
	Last     duel.TickResult // Most recent tick; used for the end banner
	Err      error
}

// BoardSize returns the screen size needed to draw a cols x rows board
// with its frame, the score line and the status line.
func BoardSize(cols, rows int) (w, h int) {
	return cols*cellWidth + 2, rows + 4
}

// DrawDuel draws the board, both snakes, the food and the HUD into s.
func DrawDuel(s *core.Screen, snap duel.Snapshot, hud HUD) {
	needW, needH := BoardSize(snap.Cols, snap.Rows)
	if s.Width() < needW || s.Height() < needH {
		_, cy := core.NewRect(0, 0, s.Width(), s.Height()).Center()
		s.DrawTextCentered(cy-1, "Terminal too small", core.ColorBrightRed)
		s.DrawTextCentered(cy, fmt.Sprintf("need %dx%d, have %dx%d", needW, needH, s.Width(), s.Height()), core.ColorGray)
		return
	}

	ox := (s.Width() - needW) / 2
	oy := core.Max((s.Height()-needH)/2, 0)
	frame := core.NewRect(ox, oy+1, needW, snap.Rows+2)

	score := fmt.Sprintf("YOU %d   %s %d   tick %d", snap.ScoreA, strings.ToUpper(hud.Opponent), snap.ScoreB, snap.Tick)
	s.DrawTextColor(ox, oy, score, core.ColorBrightWhite)

	s.DrawBox(frame, core.ColorGray)

	// plot clips to the grid, so duel.NoFood draws nothing.
	grid := core.NewRect(frame.X+1, frame.Y+1, snap.Cols*cellWidth, snap.Rows)
	plot := func(c duel.Cell, r rune, col core.Color) {
		x := grid.X + c.X*cellWidth
		y := grid.Y + c.Y
		if !grid.Contains(x, y) {
			return
		}
		for i := range cellWidth {
			s.SetColor(x+i, y, r, col)
		}
	}

	plot(snap.Food, foodGlyph, core.ColorBrightRed)
	drawSnake(plot, snap.BodyB, core.ColorCyan, core.ColorBrightCyan, hud.Last.BCollided)
	drawSnake(plot, snap.BodyA, core.ColorGreen, core.ColorBrightGreen, hud.Last.ACollided)

	status, statusColor := statusLine(snap, hud)
	s.DrawTextCentered(frame.Bottom(), status, statusColor)
}

// drawSnake plots a body tail first so the head ends up on top.
func drawSnake(plot func(duel.Cell, rune, core.Color), body []duel.Cell, bodyColor, headColor core.Color, dead bool) {
	for i := len(body) - 1; i > 0; i-- {
		plot(body[i], bodyGlyph, bodyColor)
	}
	if len(body) == 0 {
		return
	}
	if dead {
		plot(body[0], deadGlyph, core.ColorBrightYellow)
		return
	}
	plot(body[0], headGlyph, headColor)
}

// statusLine returns the line shown under the board.
func statusLine(snap duel.Snapshot, hud HUD) (string, core.Color) {
	if snap.State == duel.StateTerminal {
		switch multiplayer.WinnerFromResult(hud.Last) {
		case multiplayer.Player1:
			return "YOU WIN  [R] again  [Q] quit", core.ColorBrightGreen
		case multiplayer.Player2:
			return fmt.Sprintf("%s WINS, you hit %s  [R] again  [Q] quit", strings.ToUpper(hud.Opponent), hud.Last.ACause), core.ColorBrightRed
		default:
			if hud.Last.BoardFull {
				return "BOARD FULL, DRAW  [R] again  [Q] quit", core.ColorBrightYellow
			}
			return "DRAW  [R] again  [Q] quit", core.ColorBrightYellow
		}
	}
	if hud.Err != nil {
		return hud.Err.Error(), core.ColorOrange
	}
	if hud.Paused {
		return "PAUSED  [P] resume  [Q] quit", core.ColorYellow
	}
	return "WASD/arrows steer  [P] pause  [Q] quit", core.ColorGray
}

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = func() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(core.Colors))
	for _, c := range core.Colors {
		style := lipgloss.NewStyle()
		if code := c.ANSI(); code != "" {
			style = style.Foreground(lipgloss.Color(code))
		}
		styles[c] = style
	}
	return styles
}()

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
