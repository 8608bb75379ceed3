package config

import "math"

// DifficultyManager calculates dynamic duel parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.cfg.Enabled || d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the current speed multiplier based on difficulty level.
func (d *DifficultyManager) Speed(score int, ticks int) float64 {
	level := d.Level(score, ticks)
	return 1.0 + level*d.cfg.Scaling.SpeedMultiplier
}

// MoveInterval returns how many UI ticks pass between engine steps.
// The interval shrinks with speed and never drops below minEvery.
func (d *DifficultyManager) MoveInterval(baseEvery, minEvery int, score int, ticks int) int {
	every := int(math.Round(float64(baseEvery) / d.Speed(score, ticks)))
	if every < minEvery {
		every = minEvery
	}
	if every < 1 {
		every = 1
	}
	return every
}

// Epsilon returns the bot exploration rate at the current difficulty.
// Harder levels make the bot less random.
func (d *DifficultyManager) Epsilon(baseEpsilon float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	return clampF(baseEpsilon-level*d.cfg.Scaling.EpsilonReduction, 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
