package duel

import (
	"fmt"
	"math/rand"
)

// NoFood is the food cell of a board with nothing to eat: before the
// first placement and after a capture fills the board.
var NoFood = Cell{X: -1, Y: -1}

// Board tracks the grid dimensions and the single active food cell.
// It owns no snakes; occupancy is supplied by the caller on each placement.
type Board struct {
	width  int // Raw units; the grid has width/step columns
	height int
	step   int
	food   Cell
	rng    *rand.Rand
}

// NewBoard validates the dimensions and returns an empty board.
// width and height must be positive multiples of step.
func NewBoard(width, height, step int, rng *rand.Rand) (*Board, error) {
	if step < 1 {
		return nil, fmt.Errorf("%w: step %d", ErrMisalignedBoard, step)
	}
	if width < step || height < step || width%step != 0 || height%step != 0 {
		return nil, fmt.Errorf("%w: %dx%d with step %d", ErrMisalignedBoard, width, height, step)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Board{
		width:  width,
		height: height,
		step:   step,
		food:   NoFood,
		rng:    rng,
	}, nil
}

// Cols returns the number of grid columns.
func (b *Board) Cols() int {
	return b.width / b.step
}

// Rows returns the number of grid rows.
func (b *Board) Rows() int {
	return b.height / b.step
}

// InBounds reports whether c lies inside [0, Cols) x [0, Rows).
func (b *Board) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < b.Cols() && c.Y >= 0 && c.Y < b.Rows()
}

// Food returns the active food cell, or NoFood.
func (b *Board) Food() Cell {
	return b.food
}

// ClearFood removes the food.
func (b *Board) ClearFood() {
	b.food = NoFood
}

// FreeCells lists, in row-major order, every cell for which occupied is false.
func (b *Board) FreeCells(occupied func(Cell) bool) []Cell {
	free := make([]Cell, 0, b.Cols()*b.Rows())
	for y := range b.Rows() {
		for x := range b.Cols() {
			c := Cell{X: x, Y: y}
			if !occupied(c) {
				free = append(free, c)
			}
		}
	}
	return free
}

// PlaceFood draws the next food cell uniformly from the free cells.
// A full board is a configuration error and leaves the old food in place.
func (b *Board) PlaceFood(occupied func(Cell) bool) (Cell, error) {
	free := b.FreeCells(occupied)
	if len(free) == 0 {
		return b.food, ErrNoFreeCell
	}
	b.food = free[b.rng.Intn(len(free))]
	return b.food, nil
}

// SetFood puts food on a specific cell.
func (b *Board) SetFood(c Cell, occupied func(Cell) bool) error {
	if !b.InBounds(c) || occupied(c) {
		return fmt.Errorf("%w: %s", ErrFoodOccupied, c)
	}
	b.food = c
	return nil
}
