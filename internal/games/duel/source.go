package duel

import (
	"math"
	"sync"
)

// View is a read-only snapshot of the board from one snake's point of view.
// Bodies are copies; a source may keep a View across ticks.
type View struct {
	Player          Player
	Tick            uint64
	Cols, Rows      int
	Self            []Cell // Head first
	SelfHeading     Heading
	Opponent        []Cell
	OpponentHeading Heading
	Food            Cell
}

// Head returns the viewer's head cell.
func (v View) Head() Cell {
	return v.Self[0]
}

// InBounds reports whether c is on the board.
func (v View) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < v.Cols && c.Y >= 0 && c.Y < v.Rows
}

// Candidates returns the three headings that are not a reversal:
// straight, left, right.
func (v View) Candidates() []Heading {
	h := v.SelfHeading
	return []Heading{h.Apply(TurnStraight), h.Apply(TurnLeft), h.Apply(TurnRight)}
}

// Safe applies the engine's collision rules to h against the current
// board: own body minus tail, walls, then the whole opponent body.
func (v View) Safe(h Heading) bool {
	if !h.Valid() || h.IsReverseOf(v.SelfHeading) {
		return false
	}
	next := v.Head().Add(h)
	for _, c := range v.Self[:len(v.Self)-1] {
		if c == next {
			return false
		}
	}
	if !v.InBounds(next) {
		return false
	}
	for _, c := range v.Opponent {
		if c == next {
			return false
		}
	}
	return true
}

// DistanceToFood returns the Euclidean distance from the prospective head
// under h to the food cell.
func (v View) DistanceToFood(h Heading) float64 {
	next := v.Head().Add(h)
	dx := float64(next.X - v.Food.X)
	dy := float64(next.Y - v.Food.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// DirectionSource produces the heading a snake intends to take this tick.
// It is called once per snake per tick and must return a non-zero unit
// heading that does not reverse View.SelfHeading; the engine rejects
// anything else.
type DirectionSource interface {
	NextHeading(v View) Heading
}

// HeadingFunc adapts a plain function to DirectionSource.
type HeadingFunc func(v View) Heading

// NextHeading calls f.
func (f HeadingFunc) NextHeading(v View) Heading {
	return f(v)
}

// Buffered is a DirectionSource for human input. Requests arrive
// asynchronously; invalid ones are dropped here and never reach the engine.
type Buffered struct {
	mu      sync.Mutex
	pending Heading
}

// NewBuffered returns an empty buffer.
func NewBuffered() *Buffered {
	return &Buffered{}
}

// Request buffers h for the next tick. Zero and non-unit headings are
// rejected and false is returned. Reversals are filtered at NextHeading time,
// since only then is the committed heading known.
func (b *Buffered) Request(h Heading) bool {
	if !h.Valid() {
		return false
	}
	b.mu.Lock()
	b.pending = h
	b.mu.Unlock()
	return true
}

// Reset drops any buffered request.
func (b *Buffered) Reset() {
	b.mu.Lock()
	b.pending = Heading{}
	b.mu.Unlock()
}

// NextHeading returns the buffered heading, or keeps the current heading
// when nothing valid is pending. The buffer is consumed.
func (b *Buffered) NextHeading(v View) Heading {
	b.mu.Lock()
	h := b.pending
	b.pending = Heading{}
	b.mu.Unlock()

	if !h.Valid() || h.IsReverseOf(v.SelfHeading) {
		return v.SelfHeading
	}
	return h
}

// Straight keeps the current heading forever.
var Straight DirectionSource = HeadingFunc(func(v View) Heading {
	return v.SelfHeading
})
