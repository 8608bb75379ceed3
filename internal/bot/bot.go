// Package bot provides computer-controlled direction sources for snake duel.
// Each strategy registers itself with the registry under a short ID.
package bot

import (
	"math/rand"

	"github.com/vovakirdan/snake-duel/internal/games/duel"
)

// safeCandidates returns the non-reversing headings that do not collide
// this tick, in straight, left, right order.
func safeCandidates(v duel.View) []duel.Heading {
	var safe []duel.Heading
	for _, h := range v.Candidates() {
		if v.Safe(h) {
			safe = append(safe, h)
		}
	}
	return safe
}

// closestToFood picks the heading whose prospective head is nearest the food.
// Earlier headings win ties.
func closestToFood(v duel.View, hs []duel.Heading) duel.Heading {
	best := hs[0]
	bestDist := v.DistanceToFood(best)
	for _, h := range hs[1:] {
		if d := v.DistanceToFood(h); d < bestDist {
			best, bestDist = h, d
		}
	}
	return best
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
