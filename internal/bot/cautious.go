package bot

import (
	"github.com/vovakirdan/snake-duel/internal/games/duel"
	"github.com/vovakirdan/snake-duel/internal/registry"
)

func init() {
	registry.Register("cautious", "Cautious", func(registry.Params) duel.DirectionSource {
		return NewCautious()
	})
}

// Cautious avoids walling itself in. Among safe headings it prefers the one
// whose prospective head can reach the most free cells, then the one closest
// to the food.
type Cautious struct{}

// NewCautious creates a cautious bot.
func NewCautious() *Cautious {
	return &Cautious{}
}

// NextHeading implements duel.DirectionSource.
func (c *Cautious) NextHeading(v duel.View) duel.Heading {
	safe := safeCandidates(v)
	if len(safe) == 0 {
		return v.SelfHeading
	}

	var best []duel.Heading
	bestArea := -1
	for _, h := range safe {
		area := reachable(v, v.Head().Add(h))
		switch {
		case area > bestArea:
			best, bestArea = []duel.Heading{h}, area
		case area == bestArea:
			best = append(best, h)
		}
	}
	return closestToFood(v, best)
}

// reachable counts the free cells reachable from start, treating both bodies
// as walls except the viewer's own tail, which moves away this tick.
func reachable(v duel.View, start duel.Cell) int {
	blocked := make(map[duel.Cell]bool, len(v.Self)+len(v.Opponent)+1)
	for _, c := range v.Self[:len(v.Self)-1] {
		blocked[c] = true
	}
	for _, c := range v.Opponent {
		blocked[c] = true
	}

	seen := map[duel.Cell]bool{start: true}
	queue := []duel.Cell{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, h := range duel.Headings {
			n := cur.Add(h)
			if seen[n] || blocked[n] || !v.InBounds(n) {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return len(seen)
}
