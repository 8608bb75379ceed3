package config

import (
	_ "embed"
)

//go:embed defaults/duel.yaml
var defaultDuelYAML []byte

// DefaultDuelConfig returns the default duel configuration.
func DefaultDuelConfig() DuelConfig {
	return DuelConfig{
		Board: BoardConfig{
			Width:  20,
			Height: 20,
			Step:   1,
		},
		Snakes: SnakesConfig{
			A: SnakeSpec{X: 5, Y: 9, Length: 3, Heading: "right"},
			B: SnakeSpec{X: 14, Y: 10, Length: 3, Heading: "left"},
		},
		Scoring: ScoringConfig{
			FoodReward:       1,
			CollisionPenalty: 1,
		},
		Bots: BotsConfig{
			Opponent: "greedy",
			Epsilon:  0.1,
			Retries:  4,
		},
		Play: PlayConfig{
			TickRate:          60,
			MoveEveryTicks:    8,
			MinMoveEveryTicks: 3,
		},
		Arena: ArenaConfig{
			BotA:        "greedy",
			BotB:        "cautious",
			Episodes:    100,
			Concurrency: 4,
			MaxTicks:    2000,
			MetricsAddr: "",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  1.5,
				EpsilonReduction: 0.08,
			},
		},
	}
}
