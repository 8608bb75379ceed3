// Package registry provides a global registry for bot strategies.
// Strategies register themselves in init() functions, allowing the CLI,
// the arena and the TUI to pick opponents by ID without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/snake-duel/internal/games/duel"
)

// Params tunes a strategy instance. Strategies ignore fields they don't use.
type Params struct {
	// Seed seeds the strategy's private RNG so bot choices are reproducible.
	Seed int64

	// Epsilon is the probability of exploring a random heading instead of
	// the greedy choice.
	Epsilon float64

	// Retries bounds how many random headings an exploring bot tries
	// before falling back to its greedy choice.
	Retries int
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{
		Seed:    1,
		Epsilon: 0.1,
		Retries: 4,
	}
}

// StrategyInfo contains metadata about a registered strategy.
type StrategyInfo struct {
	ID    string
	Title string
}

// Factory creates a new direction source for one snake.
type Factory func(p Params) duel.DirectionSource

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a strategy factory to the registry.
// Typically called from a strategy's init() function.
// Panics if a strategy with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: strategy %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered strategies, sorted by ID.
func List() []StrategyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]StrategyInfo, 0, len(factories))
	for id := range factories {
		result = append(result, StrategyInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new strategy by its ID.
// Returns an error if the strategy ID is not registered.
func Create(id string, p Params) (duel.DirectionSource, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown strategy %q", id)
	}

	return f(p), nil
}

// Exists checks if a strategy with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
