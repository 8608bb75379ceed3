package bot

import (
	"math/rand"

	"github.com/vovakirdan/snake-duel/internal/games/duel"
	"github.com/vovakirdan/snake-duel/internal/registry"
)

func init() {
	registry.Register("greedy", "Greedy", func(p registry.Params) duel.DirectionSource {
		return NewGreedy(p)
	})
}

// Greedy heads for the food along the shortest straight-line distance.
// With probability Epsilon it first probes up to Retries random headings
// and takes the first safe one, which keeps it from being fully predictable.
type Greedy struct {
	rng     *rand.Rand
	epsilon float64
	retries int
}

// NewGreedy creates a greedy bot.
func NewGreedy(p registry.Params) *Greedy {
	return &Greedy{
		rng:     newRand(p.Seed),
		epsilon: p.Epsilon,
		retries: p.Retries,
	}
}

// NextHeading implements duel.DirectionSource.
func (g *Greedy) NextHeading(v duel.View) duel.Heading {
	if g.epsilon > 0 && g.rng.Float64() < g.epsilon {
		cands := v.Candidates()
		for range g.retries {
			h := cands[g.rng.Intn(len(cands))]
			if v.Safe(h) {
				return h
			}
		}
	}

	safe := safeCandidates(v)
	if len(safe) == 0 {
		return v.SelfHeading
	}
	return closestToFood(v, safe)
}
