package bot

import (
	"testing"

	"github.com/vovakirdan/snake-duel/internal/games/duel"
	"github.com/vovakirdan/snake-duel/internal/registry"
)

// pocketView has snake A facing right with a one-cell pocket above its
// head, where the food sits.
func pocketView() duel.View {
	return duel.View{
		Player:      duel.PlayerA,
		Cols:        5,
		Rows:        3,
		Self:        []duel.Cell{{X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		SelfHeading: duel.Right,
		Opponent:    []duel.Cell{{X: 1, Y: 0}, {X: 3, Y: 0}},
		Food:        duel.Cell{X: 2, Y: 0},
	}
}

func TestGreedyHeadsForFood(t *testing.T) {
	g := NewGreedy(registry.Params{Seed: 1})

	v := duel.View{
		Cols:        10,
		Rows:        10,
		Self:        []duel.Cell{{X: 5, Y: 5}, {X: 4, Y: 5}},
		SelfHeading: duel.Right,
		Opponent:    []duel.Cell{{X: 9, Y: 9}},
		Food:        duel.Cell{X: 5, Y: 2},
	}
	if got := g.NextHeading(v); got != duel.Up {
		t.Errorf("NextHeading() = %v, expected up", got)
	}

	if got := g.NextHeading(pocketView()); got != duel.Up {
		t.Errorf("greedy should take the pocket food, got %v", got)
	}
}

func TestCautiousAvoidsPocket(t *testing.T) {
	c := NewCautious()
	if got := c.NextHeading(pocketView()); got != duel.Right {
		t.Errorf("NextHeading() = %v, expected right", got)
	}
}

func TestReachable(t *testing.T) {
	v := pocketView()
	tests := []struct {
		start duel.Cell
		want  int
	}{
		{duel.Cell{X: 2, Y: 0}, 1},
		{duel.Cell{X: 3, Y: 1}, 10},
		{duel.Cell{X: 2, Y: 2}, 10},
	}
	for _, tc := range tests {
		if got := reachable(v, tc.start); got != tc.want {
			t.Errorf("reachable(%v) = %d, expected %d", tc.start, got, tc.want)
		}
	}
}

func TestBotsKeepHeadingWhenTrapped(t *testing.T) {
	// Walls above and below, opponent ahead.
	v := duel.View{
		Cols:        3,
		Rows:        1,
		Self:        []duel.Cell{{X: 1, Y: 0}, {X: 0, Y: 0}},
		SelfHeading: duel.Right,
		Opponent:    []duel.Cell{{X: 2, Y: 0}},
		Food:        duel.Cell{X: 2, Y: 0},
	}

	for _, id := range []string{"greedy", "cautious", "random", "straight"} {
		src, err := registry.Create(id, registry.Params{Seed: 3, Epsilon: 1, Retries: 4})
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if got := src.NextHeading(v); got != duel.Right {
			t.Errorf("%s: NextHeading() = %v, expected right", id, got)
		}
	}
}

func TestBotsNeverReverse(t *testing.T) {
	for _, info := range registry.List() {
		t.Run(info.ID, func(t *testing.T) {
			a, err := registry.Create(info.ID, registry.Params{Seed: 5, Epsilon: 0.3, Retries: 3})
			if err != nil {
				t.Fatalf("Create() failed: %v", err)
			}
			b, err := registry.Create("greedy", registry.Params{Seed: 6})
			if err != nil {
				t.Fatalf("Create() failed: %v", err)
			}

			e, err := duel.New(duel.DefaultConfig(), duel.WithSeed(7), duel.WithSources(a, b))
			if err != nil {
				t.Fatalf("duel.New() failed: %v", err)
			}
			for i := 0; i < 300 && !e.IsTerminal(); i++ {
				if _, err := e.Step(); err != nil {
					t.Fatalf("tick %d: Step() failed: %v", i, err)
				}
			}
		})
	}
}

func TestSeededBotsAreReproducible(t *testing.T) {
	run := func() duel.Snapshot {
		a := NewRandom(11)
		b := NewGreedy(registry.Params{Seed: 12, Epsilon: 0.5, Retries: 2})
		e, err := duel.New(duel.DefaultConfig(), duel.WithSeed(13), duel.WithSources(a, b))
		if err != nil {
			t.Fatalf("duel.New() failed: %v", err)
		}
		for i := 0; i < 200 && !e.IsTerminal(); i++ {
			if _, err := e.Step(); err != nil {
				t.Fatalf("Step() failed: %v", err)
			}
		}
		return e.Snapshot()
	}

	s1, s2 := run(), run()
	if s1.Tick != s2.Tick || s1.ScoreA != s2.ScoreA || s1.ScoreB != s2.ScoreB || s1.Food != s2.Food {
		t.Errorf("runs diverged: %+v vs %+v", s1, s2)
	}
}
