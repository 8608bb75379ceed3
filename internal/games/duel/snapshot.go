package duel

// StateType is the coarse simulation state.
type StateType string

const (
	StateRunning  StateType = "running"
	StateTerminal StateType = "terminal"
)

// Snapshot captures the complete simulation state for determinism testing
// and for renderers that must not touch the live engine.
type Snapshot struct {
	Tick        uint64
	Cols        int
	Rows        int
	BodyA       []Cell
	BodyB       []Cell
	HeadingA    Heading
	HeadingB    Heading
	Food        Cell
	ScoreA      int
	ScoreB      int
	FoodA       int
	FoodB       int
	LastOutcome Outcome
	State       StateType
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	state := StateRunning
	if e.terminal {
		state = StateTerminal
	}

	return Snapshot{
		Tick:        e.tick,
		Cols:        e.board.Cols(),
		Rows:        e.board.Rows(),
		BodyA:       e.a.Body(),
		BodyB:       e.b.Body(),
		HeadingA:    e.a.heading,
		HeadingB:    e.b.heading,
		Food:        e.board.Food(),
		ScoreA:      e.scoreA,
		ScoreB:      e.scoreB,
		FoodA:       e.foodA,
		FoodB:       e.foodB,
		LastOutcome: e.last.Outcome,
		State:       state,
	}
}
