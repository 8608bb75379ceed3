package bot

import (
	"math/rand"

	"github.com/vovakirdan/snake-duel/internal/games/duel"
	"github.com/vovakirdan/snake-duel/internal/registry"
)

func init() {
	registry.Register("random", "Random", func(p registry.Params) duel.DirectionSource {
		return NewRandom(p.Seed)
	})
	registry.Register("straight", "Straight", func(registry.Params) duel.DirectionSource {
		return duel.Straight
	})
}

// Random picks uniformly among the safe headings.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random bot with its own seeded RNG.
func NewRandom(seed int64) *Random {
	return &Random{rng: newRand(seed)}
}

// NextHeading implements duel.DirectionSource.
func (r *Random) NextHeading(v duel.View) duel.Heading {
	safe := safeCandidates(v)
	if len(safe) == 0 {
		return v.SelfHeading
	}
	return safe[r.rng.Intn(len(safe))]
}
