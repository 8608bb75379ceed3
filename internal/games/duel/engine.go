package duel

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// SnakeConfig places one snake at reset.
type SnakeConfig struct {
	Origin  Cell    // Head cell
	Length  int     // Initial body length
	Heading Heading // Initial heading; the body trails behind it
}

// Config describes a simulation. Width and Height are raw units that must
// be multiples of Step; the grid is Width/Step by Height/Step cells.
type Config struct {
	Width, Height int
	Step          int
	A, B          SnakeConfig

	FoodReward       int // Added to a snake's score per capture
	CollisionPenalty int // Deducted from each snake that collides
}

// DefaultConfig returns a 20x20 board with the snakes facing each other.
func DefaultConfig() Config {
	return Config{
		Width:  20,
		Height: 20,
		Step:   1,
		A: SnakeConfig{
			Origin:  Cell{X: 5, Y: 9},
			Length:  3,
			Heading: Right,
		},
		B: SnakeConfig{
			Origin:  Cell{X: 14, Y: 10},
			Length:  3,
			Heading: Left,
		},
		FoodReward:       1,
		CollisionPenalty: 1,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the RNG used for food placement.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSeed seeds a fresh RNG for food placement.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSources sets the direction sources pulled by Step.
func WithSources(a, b DirectionSource) Option {
	return func(e *Engine) {
		e.sourceA = a
		e.sourceB = b
	}
}

// WithLogger sets the logger for tick events. Defaults to discarding.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine runs the two-snake simulation one tick at a time.
//
// An Engine is not safe for concurrent use: one Step must return before the
// next call of any method begins.
type Engine struct {
	cfg    Config
	board  *Board
	a, b   *Snake
	rng    *rand.Rand
	logger *log.Logger

	sourceA DirectionSource
	sourceB DirectionSource

	tick     uint64
	terminal bool
	last     TickResult
	scoreA   int
	scoreB   int
	foodA    int // Captures by A this run
	foodB    int
}

// New validates cfg and returns an engine reset to its initial state.
func New(cfg Config, opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(1)),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset re-initializes both snakes, the board, the food and the scores.
// On error the previous state is left untouched.
func (e *Engine) Reset() error {
	return e.ResetWith(e.cfg)
}

// ResetWith is Reset with a new configuration.
func (e *Engine) ResetWith(cfg Config) error {
	board, err := NewBoard(cfg.Width, cfg.Height, cfg.Step, e.rng)
	if err != nil {
		return err
	}

	a, err := placeSnake(board, PlayerA, cfg.A)
	if err != nil {
		return err
	}
	b, err := placeSnake(board, PlayerB, cfg.B)
	if err != nil {
		return err
	}
	for _, c := range a.body {
		if b.Contains(c) {
			return fmt.Errorf("%w: both occupy %s", ErrSnakeOverlap, c)
		}
	}

	occupied := func(c Cell) bool { return a.Contains(c) || b.Contains(c) }
	if _, err := board.PlaceFood(occupied); err != nil {
		return fmt.Errorf("duel: initial food: %w", err)
	}

	e.cfg = cfg
	e.board = board
	e.a = a
	e.b = b
	e.tick = 0
	e.terminal = false
	e.last = TickResult{Food: board.Food()}
	e.scoreA, e.scoreB = 0, 0
	e.foodA, e.foodB = 0, 0

	e.logger.Debug("reset", "cols", board.Cols(), "rows", board.Rows(), "food", board.Food())
	return nil
}

// placeSnake builds a snake and checks that every cell is on the board.
func placeSnake(board *Board, p Player, sc SnakeConfig) (*Snake, error) {
	s, err := NewSnake(sc.Origin, sc.Length, sc.Heading)
	if err != nil {
		var he *HeadingError
		if errors.As(err, &he) {
			he.Player = p
		}
		return nil, fmt.Errorf("duel: %s: %w", p, err)
	}
	for _, c := range s.body {
		if !board.InBounds(c) {
			return nil, fmt.Errorf("%w: %s cell %s", ErrSnakeOutOfBounds, p, c)
		}
	}
	return s, nil
}

// Step pulls a heading for each snake from its direction source and
// advances one tick. Both sources see the same pre-tick state.
func (e *Engine) Step() (TickResult, error) {
	if e.terminal {
		return TickResult{}, ErrTerminal
	}
	if e.sourceA == nil || e.sourceB == nil {
		return TickResult{}, ErrNoDirectionSource
	}
	viewA := e.View(PlayerA)
	viewB := e.View(PlayerB)
	return e.StepWith(e.sourceA.NextHeading(viewA), e.sourceB.NextHeading(viewB))
}

// StepWith advances one tick with explicit headings.
//
// Resolution order per snake, against the pre-tick board: self (body minus
// tail), wall, then opponent (its whole current body, tail included). Two
// prospective heads on the same empty cell mark both snakes. Food goes to a
// non-colliding snake whose prospective head lands on it; when both reach it
// in the same tick snake A eats and snake B makes a plain move.
// Nothing is mutated when an error is returned for an invalid heading.
func (e *Engine) StepWith(ha, hb Heading) (TickResult, error) {
	if e.terminal {
		return TickResult{}, ErrTerminal
	}
	if err := checkHeading(PlayerA, e.a.heading, ha); err != nil {
		return TickResult{}, err
	}
	if err := checkHeading(PlayerB, e.b.heading, hb); err != nil {
		return TickResult{}, err
	}

	nextA := e.a.Next(ha)
	nextB := e.b.Next(hb)

	causeA := e.collisionCause(e.a, ha, e.b)
	causeB := e.collisionCause(e.b, hb, e.a)

	// Both heads claim the same cell. On the food cell this is contention
	// and is settled below; anywhere else it is a head-on crash.
	food := e.board.Food()
	if nextA == nextB && nextA != food {
		if causeA == CauseNone {
			causeA = CauseOpponent
		}
		if causeB == CauseNone {
			causeB = CauseOpponent
		}
	}
	aCollided := causeA != CauseNone
	bCollided := causeB != CauseNone

	aAte := !aCollided && nextA == food
	bAte := !bCollided && nextB == food && !aAte

	if err := e.a.Move(ha, aAte); err != nil {
		return TickResult{}, err
	}
	if err := e.b.Move(hb, bAte); err != nil {
		return TickResult{}, err
	}
	e.tick++

	if aAte {
		e.foodA++
		e.scoreA += e.cfg.FoodReward
	}
	if bAte {
		e.foodB++
		e.scoreB += e.cfg.FoodReward
	}
	if aCollided {
		e.scoreA -= e.cfg.CollisionPenalty
	}
	if bCollided {
		e.scoreB -= e.cfg.CollisionPenalty
	}

	outcome := resolveOutcome(aCollided, bCollided, aAte, bAte)
	if outcome.IsTerminal() {
		e.terminal = true
	}

	var placeErr error
	boardFull := false
	if aAte || bAte {
		if _, err := e.board.PlaceFood(e.occupied); err != nil {
			// The eaten cell is now a head; no food remains to chase.
			e.board.ClearFood()
			e.terminal = true
			boardFull = true
			placeErr = fmt.Errorf("duel: tick %d: %w", e.tick, err)
		} else {
			e.logger.Debug("food placed", "tick", e.tick, "cell", e.board.Food())
		}
	}

	result := TickResult{
		Tick:      e.tick,
		Outcome:   outcome,
		ACollided: aCollided,
		BCollided: bCollided,
		ACause:    causeA,
		BCause:    causeB,
		AAte:      aAte,
		BAte:      bAte,
		BoardFull: boardFull,
		Food:      e.board.Food(),
		ScoreA:    e.scoreA,
		ScoreB:    e.scoreB,
	}
	e.last = result

	if result.Terminal() {
		e.logger.Debug("terminal",
			"tick", e.tick,
			"outcome", outcome,
			"cause_a", causeA,
			"cause_b", causeB,
			"board_full", boardFull,
		)
	}
	return result, placeErr
}

// collisionCause applies the fixed rule order to s moving under h.
// other is the opponent before its move, tail included.
func (e *Engine) collisionCause(s *Snake, h Heading, other *Snake) CollisionCause {
	next := s.Next(h)
	switch {
	case s.WillSelfCollide(h):
		return CauseSelf
	case !e.board.InBounds(next):
		return CauseWall
	case other.Contains(next):
		return CauseOpponent
	}
	return CauseNone
}

func (e *Engine) occupied(c Cell) bool {
	return e.a.Contains(c) || e.b.Contains(c)
}

// SetFood moves the food to c. Used to set up deterministic scenarios.
func (e *Engine) SetFood(c Cell) error {
	if err := e.board.SetFood(c, e.occupied); err != nil {
		return err
	}
	e.last.Food = c
	return nil
}

// View returns the board as seen by p.
func (e *Engine) View(p Player) View {
	self, opp := e.a, e.b
	if p == PlayerB {
		self, opp = e.b, e.a
	}
	return View{
		Player:          p,
		Tick:            e.tick,
		Cols:            e.board.Cols(),
		Rows:            e.board.Rows(),
		Self:            self.Body(),
		SelfHeading:     self.heading,
		Opponent:        opp.Body(),
		OpponentHeading: opp.heading,
		Food:            e.board.Food(),
	}
}

// SnakeABody returns a copy of snake A's body, head first.
func (e *Engine) SnakeABody() []Cell {
	return e.a.Body()
}

// SnakeBBody returns a copy of snake B's body, head first.
func (e *Engine) SnakeBBody() []Cell {
	return e.b.Body()
}

// HeadingA returns snake A's committed heading.
func (e *Engine) HeadingA() Heading {
	return e.a.heading
}

// HeadingB returns snake B's committed heading.
func (e *Engine) HeadingB() Heading {
	return e.b.heading
}

// FoodCell returns the active food cell, or NoFood once the board is full.
func (e *Engine) FoodCell() Cell {
	return e.board.Food()
}

// IsTerminal reports whether a collision or a full board has ended the
// simulation.
func (e *Engine) IsTerminal() bool {
	return e.terminal
}

// Score returns the scores of snake A and snake B.
func (e *Engine) Score() (int, int) {
	return e.scoreA, e.scoreB
}

// FoodEaten returns how many captures p has made since reset.
func (e *Engine) FoodEaten(p Player) int {
	if p == PlayerB {
		return e.foodB
	}
	return e.foodA
}

// Tick returns the number of ticks since reset.
func (e *Engine) Tick() uint64 {
	return e.tick
}

// Last returns the most recent tick result.
func (e *Engine) Last() TickResult {
	return e.last
}

// Width returns the number of grid columns.
func (e *Engine) Width() int {
	return e.board.Cols()
}

// Height returns the number of grid rows.
func (e *Engine) Height() int {
	return e.board.Rows()
}

// Config returns the active configuration.
func (e *Engine) Config() Config {
	return e.cfg
}
