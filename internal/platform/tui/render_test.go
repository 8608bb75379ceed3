package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/snake-duel/internal/core"
	"github.com/vovakirdan/snake-duel/internal/games/duel"
)

// smallSnapshot is a 4x3 board that fits exactly in a 10x7 screen.
// Grid cell (x, y) lands at screen column 1+2x, row 2+y.
func smallSnapshot() duel.Snapshot {
	return duel.Snapshot{
		Cols:     4,
		Rows:     3,
		BodyA:    []duel.Cell{{X: 1, Y: 0}, {X: 0, Y: 0}},
		BodyB:    []duel.Cell{{X: 3, Y: 2}},
		HeadingA: duel.Right,
		HeadingB: duel.Left,
		Food:     duel.Cell{X: 2, Y: 1},
		State:    duel.StateRunning,
	}
}

func TestBoardSize(t *testing.T) {
	w, h := BoardSize(20, 20)
	if w != 42 || h != 24 {
		t.Errorf("BoardSize(20, 20) = %dx%d, expected 42x24", w, h)
	}
}

func TestDrawDuelPlacesPieces(t *testing.T) {
	s := core.NewScreen(10, 7)
	DrawDuel(s, smallSnapshot(), HUD{Opponent: "greedy"})

	tests := []struct {
		name  string
		x, y  int
		glyph rune
		color core.Color
	}{
		{"frame corner", 0, 1, '┌', core.ColorGray},
		{"food left half", 5, 3, foodGlyph, core.ColorBrightRed},
		{"food right half", 6, 3, foodGlyph, core.ColorBrightRed},
		{"A head", 3, 2, headGlyph, core.ColorBrightGreen},
		{"A body", 1, 2, bodyGlyph, core.ColorGreen},
		{"B head", 7, 4, headGlyph, core.ColorBrightCyan},
		{"empty cell", 1, 3, ' ', core.ColorDefault},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.GetCell(tc.x, tc.y)
			if got.Rune != tc.glyph || got.Color != tc.color {
				t.Errorf("cell (%d,%d) = %q/%v, expected %q/%v", tc.x, tc.y, got.Rune, got.Color, tc.glyph, tc.color)
			}
		})
	}

	if !strings.HasPrefix(s.Row(0), "YOU 0") {
		t.Errorf("score line = %q", s.Row(0))
	}
}

func TestDrawDuelMarksCollidedHead(t *testing.T) {
	snap := smallSnapshot()
	snap.State = duel.StateTerminal

	s := core.NewScreen(10, 7)
	DrawDuel(s, snap, HUD{Last: duel.TickResult{ACollided: true, ACause: duel.CauseWall}})

	if got := s.Get(3, 2); got != deadGlyph {
		t.Errorf("collided A head = %q, expected %q", got, deadGlyph)
	}
	if got := s.Get(7, 4); got != headGlyph {
		t.Errorf("B head = %q, expected %q", got, headGlyph)
	}
}

func TestDrawDuelWithoutFood(t *testing.T) {
	snap := smallSnapshot()
	snap.Food = duel.NoFood

	s := core.NewScreen(10, 7)
	DrawDuel(s, snap, HUD{})

	if got := s.Get(0, 1); got != '┌' {
		t.Errorf("frame corner = %q, expected the box to stay intact", got)
	}
	if strings.ContainsRune(s.String(), foodGlyph) {
		t.Errorf("food drawn for an empty board:\n%s", s.String())
	}
}

func TestDrawDuelTooSmall(t *testing.T) {
	s := core.NewScreen(30, 5)
	DrawDuel(s, duel.Snapshot{Cols: 20, Rows: 20}, HUD{})

	if !strings.Contains(s.String(), "Terminal too small") {
		t.Errorf("expected size warning, got:\n%s", s.String())
	}
	if !strings.Contains(s.String(), "need 42x24") {
		t.Errorf("expected required size, got:\n%s", s.String())
	}
}

func TestStatusLine(t *testing.T) {
	running := smallSnapshot()
	over := smallSnapshot()
	over.State = duel.StateTerminal

	tests := []struct {
		name string
		snap duel.Snapshot
		hud  HUD
		want string
	}{
		{"running", running, HUD{}, "steer"},
		{"paused", running, HUD{Paused: true}, "PAUSED"},
		{"A wins", over, HUD{Last: duel.TickResult{BCollided: true}}, "YOU WIN"},
		{"B wins", over, HUD{Opponent: "cautious", Last: duel.TickResult{ACollided: true, ACause: duel.CauseSelf}}, "CAUTIOUS WINS, you hit self"},
		{"draw", over, HUD{Last: duel.TickResult{ACollided: true, BCollided: true}}, "DRAW"},
		{"board full", over, HUD{Last: duel.TickResult{AAte: true, BoardFull: true, ScoreA: 1, ScoreB: 1}}, "BOARD FULL, DRAW"},
		{"board full, A ahead", over, HUD{Last: duel.TickResult{AAte: true, BoardFull: true, ScoreA: 2}}, "YOU WIN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := statusLine(tc.snap, tc.hud)
			if !strings.Contains(got, tc.want) {
				t.Errorf("statusLine() = %q, expected it to contain %q", got, tc.want)
			}
		})
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(8, 1)
	s.DrawTextColor(0, 0, "duel", core.ColorGreen)
	if out := RenderScreen(s); !strings.Contains(out, "duel") {
		t.Errorf("RenderScreen() = %q, expected it to contain the text", out)
	}
}
