package duel

import (
	"errors"
	"fmt"
)

// Contract violations. The engine refuses the operation instead of clamping it.
var (
	ErrInvalidHeading    = errors.New("duel: invalid heading")
	ErrTerminal          = errors.New("duel: simulation is terminal, reset required")
	ErrNoDirectionSource = errors.New("duel: no direction source configured")
)

// Configuration errors. Raised at construction or food placement.
var (
	ErrMisalignedBoard  = errors.New("duel: board dimensions not aligned to step")
	ErrInvalidLength    = errors.New("duel: snake length must be at least 1")
	ErrSnakeOutOfBounds = errors.New("duel: snake placed out of bounds")
	ErrSnakeOverlap     = errors.New("duel: snakes overlap")
	ErrNoFreeCell       = errors.New("duel: no free cell for food")
	ErrFoodOccupied     = errors.New("duel: food cell is occupied or out of bounds")
)

// HeadingError describes a rejected heading.
type HeadingError struct {
	Player  Player
	Heading Heading
	Current Heading
	Reason  string
}

func (e *HeadingError) Error() string {
	return fmt.Sprintf("duel: invalid heading %s for %s (current %s): %s",
		e.Heading, e.Player, e.Current, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidHeading.
func (e *HeadingError) Unwrap() error {
	return ErrInvalidHeading
}

// checkHeading returns nil if next may follow current.
func checkHeading(p Player, current, next Heading) error {
	switch {
	case next.IsZero():
		return &HeadingError{Player: p, Heading: next, Current: current, Reason: "zero vector"}
	case !next.Valid():
		return &HeadingError{Player: p, Heading: next, Current: current, Reason: "not a unit vector"}
	case next.IsReverseOf(current):
		return &HeadingError{Player: p, Heading: next, Current: current, Reason: "reverses current heading"}
	}
	return nil
}
