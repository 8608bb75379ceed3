package duel

// Player identifies one of the two snakes.
type Player int

const (
	PlayerA Player = iota + 1
	PlayerB
)

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "snake A"
	case PlayerB:
		return "snake B"
	default:
		return "snake"
	}
}

// Other returns the opposing player.
func (p Player) Other() Player {
	if p == PlayerA {
		return PlayerB
	}
	return PlayerA
}

// Outcome is the single result reported for one tick.
type Outcome int

const (
	OutcomeNothing Outcome = iota
	OutcomeACollided
	OutcomeBCollided
	OutcomeBothCollided
	OutcomeAAteFood
	OutcomeBAteFood
)

// IsTerminal reports whether the outcome ends the simulation.
func (o Outcome) IsTerminal() bool {
	return o == OutcomeACollided || o == OutcomeBCollided || o == OutcomeBothCollided
}

// Code maps the outcome to the legacy integer encoding used by reward tables:
// -1/1 for A/B collisions, -2/2 for A/B food, 0 for nothing.
// OutcomeBothCollided has no legacy code; ok is false for it.
func (o Outcome) Code() (code int, ok bool) {
	switch o {
	case OutcomeNothing:
		return 0, true
	case OutcomeACollided:
		return -1, true
	case OutcomeBCollided:
		return 1, true
	case OutcomeAAteFood:
		return -2, true
	case OutcomeBAteFood:
		return 2, true
	default:
		return 0, false
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeNothing:
		return "nothing"
	case OutcomeACollided:
		return "a_collided"
	case OutcomeBCollided:
		return "b_collided"
	case OutcomeBothCollided:
		return "both_collided"
	case OutcomeAAteFood:
		return "a_ate_food"
	case OutcomeBAteFood:
		return "b_ate_food"
	default:
		return "unknown"
	}
}

// CollisionCause records which rule ended a snake's run.
type CollisionCause int

const (
	CauseNone CollisionCause = iota
	CauseSelf
	CauseWall
	CauseOpponent
)

func (c CollisionCause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseSelf:
		return "self"
	case CauseWall:
		return "wall"
	case CauseOpponent:
		return "opponent"
	default:
		return "unknown"
	}
}

// TickResult is returned by every successful step. Outcome is the single
// reported variant; the flags keep every event of the tick visible.
type TickResult struct {
	Tick      uint64
	Outcome   Outcome
	ACollided bool
	BCollided bool
	ACause    CollisionCause
	BCause    CollisionCause
	AAte      bool
	BAte      bool
	BoardFull bool // A capture left no free cell; the tick is terminal
	Food      Cell // Food after the tick, NoFood when the board is full
	ScoreA    int
	ScoreB    int
}

// Terminal reports whether the tick ended the simulation, by collision or
// by a capture that filled the board.
func (r TickResult) Terminal() bool {
	return r.Outcome.IsTerminal() || r.BoardFull
}

// Collided reports whether p collided this tick.
func (r TickResult) Collided(p Player) bool {
	if p == PlayerA {
		return r.ACollided
	}
	return r.BCollided
}

// Ate reports whether p ate food this tick.
func (r TickResult) Ate(p Player) bool {
	if p == PlayerA {
		return r.AAte
	}
	return r.BAte
}

// resolveOutcome picks the single outcome; collisions outrank food.
func resolveOutcome(aCollided, bCollided, aAte, bAte bool) Outcome {
	switch {
	case aCollided && bCollided:
		return OutcomeBothCollided
	case aCollided:
		return OutcomeACollided
	case bCollided:
		return OutcomeBCollided
	case aAte:
		return OutcomeAAteFood
	case bAte:
		return OutcomeBAteFood
	default:
		return OutcomeNothing
	}
}
