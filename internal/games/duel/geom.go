// Package duel implements the two-snake simulation engine.
// It contains no rendering or input handling: collaborators feed headings in
// and read snake bodies, food and scores back out.
package duel

import "fmt"

// Cell is an integer coordinate on the board grid.
// X grows to the right, Y grows downward.
type Cell struct {
	X, Y int
}

// Add returns the cell one step away in the given heading.
func (c Cell) Add(h Heading) Cell {
	return Cell{X: c.X + h.DX, Y: c.Y + h.DY}
}

// String returns the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Heading is a unit movement vector.
type Heading struct {
	DX, DY int
}

// The four valid headings.
var (
	Right = Heading{DX: 1, DY: 0}
	Left  = Heading{DX: -1, DY: 0}
	Down  = Heading{DX: 0, DY: 1}
	Up    = Heading{DX: 0, DY: -1}
)

// Headings lists the valid headings in a fixed order.
var Headings = [4]Heading{Right, Down, Left, Up}

// Valid reports whether h is one of the four unit vectors.
func (h Heading) Valid() bool {
	return (h.DX == 0) != (h.DY == 0) && abs(h.DX)+abs(h.DY) == 1
}

// IsZero reports whether h is the zero vector.
func (h Heading) IsZero() bool {
	return h.DX == 0 && h.DY == 0
}

// Opposite returns the exact inverse of h.
func (h Heading) Opposite() Heading {
	return Heading{DX: -h.DX, DY: -h.DY}
}

// IsReverseOf reports whether h is the exact inverse of other.
func (h Heading) IsReverseOf(other Heading) bool {
	return !h.IsZero() && h == other.Opposite()
}

// Turn is a move relative to the current heading.
type Turn int

const (
	TurnStraight Turn = iota
	TurnLeft
	TurnRight
)

// Apply returns the heading after turning. Turns never produce a reversal.
func (h Heading) Apply(t Turn) Heading {
	switch t {
	case TurnLeft:
		// Counter-clockwise on a y-down grid.
		return Heading{DX: h.DY, DY: -h.DX}
	case TurnRight:
		return Heading{DX: -h.DY, DY: h.DX}
	default:
		return h
	}
}

func (t Turn) String() string {
	switch t {
	case TurnStraight:
		return "straight"
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	default:
		return "unknown"
	}
}

func (h Heading) String() string {
	switch h {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("(%d,%d)", h.DX, h.DY)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
