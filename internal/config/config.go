// Package config provides YAML-based duel configuration loading and
// difficulty management for snake duel.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/snake-duel/internal/games/duel"
)

// DuelConfig contains all configuration for a snake duel.
type DuelConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Snakes     SnakesConfig     `yaml:"snakes"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Bots       BotsConfig       `yaml:"bots"`
	Play       PlayConfig       `yaml:"play"`
	Arena      ArenaConfig      `yaml:"arena"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the board size in raw units.
// Width and Height must be multiples of Step.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Step   int `yaml:"step"`
}

// SnakesConfig places both snakes at reset.
type SnakesConfig struct {
	A SnakeSpec `yaml:"a"`
	B SnakeSpec `yaml:"b"`
}

// SnakeSpec defines one snake's head cell, length and heading.
type SnakeSpec struct {
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Length  int    `yaml:"length"`
	Heading string `yaml:"heading"` // up, down, left or right
}

// ScoringConfig defines score changes per event.
type ScoringConfig struct {
	FoodReward       int `yaml:"food_reward"`
	CollisionPenalty int `yaml:"collision_penalty"`
}

// BotsConfig defines the computer opponent.
type BotsConfig struct {
	Opponent string  `yaml:"opponent"` // Strategy ID for snake B in play mode
	Epsilon  float64 `yaml:"epsilon"`
	Retries  int     `yaml:"retries"`
}

// PlayConfig defines interactive timing.
type PlayConfig struct {
	TickRate          int `yaml:"tick_rate"`            // UI ticks per second
	MoveEveryTicks    int `yaml:"move_every_ticks"`     // UI ticks per engine step at level 0
	MinMoveEveryTicks int `yaml:"min_move_every_ticks"` // Fastest allowed step interval
}

// ArenaConfig defines headless bot-vs-bot runs.
type ArenaConfig struct {
	BotA        string `yaml:"bot_a"`
	BotB        string `yaml:"bot_b"`
	Episodes    int    `yaml:"episodes"`
	Concurrency int    `yaml:"concurrency"`
	MaxTicks    int    `yaml:"max_ticks"` // Episodes longer than this are truncated
	MetricsAddr string `yaml:"metrics_addr"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Speed added at max difficulty
	EpsilonReduction float64 `yaml:"epsilon_reduction"` // Bot exploration removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParseHeading converts a config heading name into a duel heading.
func ParseHeading(s string) (duel.Heading, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return duel.Up, nil
	case "down":
		return duel.Down, nil
	case "left":
		return duel.Left, nil
	case "right":
		return duel.Right, nil
	}
	return duel.Heading{}, fmt.Errorf("config: unknown heading %q", s)
}

func (s SnakeSpec) snakeConfig() (duel.SnakeConfig, error) {
	h, err := ParseHeading(s.Heading)
	if err != nil {
		return duel.SnakeConfig{}, err
	}
	return duel.SnakeConfig{
		Origin:  duel.Cell{X: s.X, Y: s.Y},
		Length:  s.Length,
		Heading: h,
	}, nil
}

// EngineConfig converts the YAML shape into an engine configuration.
func (c DuelConfig) EngineConfig() (duel.Config, error) {
	a, err := c.Snakes.A.snakeConfig()
	if err != nil {
		return duel.Config{}, fmt.Errorf("config: snakes.a: %w", err)
	}
	b, err := c.Snakes.B.snakeConfig()
	if err != nil {
		return duel.Config{}, fmt.Errorf("config: snakes.b: %w", err)
	}
	return duel.Config{
		Width:            c.Board.Width,
		Height:           c.Board.Height,
		Step:             c.Board.Step,
		A:                a,
		B:                b,
		FoodReward:       c.Scoring.FoodReward,
		CollisionPenalty: c.Scoring.CollisionPenalty,
	}, nil
}

// Validate reports every configuration problem it finds. The board and
// snake layout are checked by building an engine from them.
func (c DuelConfig) Validate() error {
	var errs []error

	ec, err := c.EngineConfig()
	if err != nil {
		errs = append(errs, err)
	} else if _, err := duel.New(ec); err != nil {
		errs = append(errs, fmt.Errorf("config: layout: %w", err))
	}

	if c.Bots.Epsilon < 0 || c.Bots.Epsilon > 1 {
		errs = append(errs, fmt.Errorf("config: bots.epsilon %v outside [0,1]", c.Bots.Epsilon))
	}
	if c.Bots.Retries < 0 {
		errs = append(errs, fmt.Errorf("config: bots.retries must not be negative"))
	}
	if c.Play.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("config: play.tick_rate must be positive"))
	}
	if c.Play.MoveEveryTicks <= 0 || c.Play.MinMoveEveryTicks <= 0 {
		errs = append(errs, fmt.Errorf("config: play move intervals must be positive"))
	} else if c.Play.MinMoveEveryTicks > c.Play.MoveEveryTicks {
		errs = append(errs, fmt.Errorf("config: play.min_move_every_ticks exceeds move_every_ticks"))
	}
	if c.Arena.Episodes < 0 || c.Arena.Concurrency < 0 || c.Arena.MaxTicks < 0 {
		errs = append(errs, fmt.Errorf("config: arena counts must not be negative"))
	}

	return errors.Join(errs...)
}
