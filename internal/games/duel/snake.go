package duel

import "fmt"

// Snake is an ordered body of cells, head first, plus its current heading.
// A Snake is owned by one Engine; callers only ever see copies of its body.
type Snake struct {
	body    []Cell // Head at index 0, tail last
	heading Heading
}

// NewSnake builds a snake whose head sits on origin and whose body extends
// backward along the negative heading, one cell per unit of length.
func NewSnake(origin Cell, length int, heading Heading) (*Snake, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLength, length)
	}
	if !heading.Valid() {
		return nil, &HeadingError{Heading: heading, Reason: "initial heading is not a unit vector"}
	}

	body := make([]Cell, length)
	for i := range length {
		body[i] = Cell{X: origin.X - heading.DX*i, Y: origin.Y - heading.DY*i}
	}
	return &Snake{body: body, heading: heading}, nil
}

// Head returns the head cell.
func (s *Snake) Head() Cell {
	return s.body[0]
}

// Tail returns the last body cell.
func (s *Snake) Tail() Cell {
	return s.body[len(s.body)-1]
}

// Len returns the body length.
func (s *Snake) Len() int {
	return len(s.body)
}

// Heading returns the last committed heading.
func (s *Snake) Heading() Heading {
	return s.heading
}

// Body returns a copy of the body, head first.
func (s *Snake) Body() []Cell {
	out := make([]Cell, len(s.body))
	copy(out, s.body)
	return out
}

// Next returns the prospective head under h without mutating the snake.
func (s *Snake) Next(h Heading) Cell {
	return s.body[0].Add(h)
}

// Contains reports whether c is any body cell.
func (s *Snake) Contains(c Cell) bool {
	for _, seg := range s.body {
		if seg == c {
			return true
		}
	}
	return false
}

// WillSelfCollide reports whether moving under h would put the head on the
// body. The current tail cell is excluded: it vacates this tick, so a snake
// may step onto the cell its own tail occupies.
func (s *Snake) WillSelfCollide(h Heading) bool {
	next := s.Next(h)
	for _, seg := range s.body[:len(s.body)-1] {
		if seg == next {
			return true
		}
	}
	return false
}

// Move commits one step. A zero or reversing heading is a contract violation.
// The tail is dropped unless grew is set, in which case length grows by one.
func (s *Snake) Move(h Heading, grew bool) error {
	if err := checkHeading(0, s.heading, h); err != nil {
		return err
	}

	s.heading = h
	s.body = append([]Cell{s.Next(h)}, s.body...)
	if !grew {
		s.body = s.body[:len(s.body)-1]
	}
	return nil
}
