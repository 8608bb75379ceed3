// Package multiplayer provides match metadata shared by the interactive
// player, the SSH server and the headless arena.
package multiplayer

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/snake-duel/internal/games/duel"
)

// PlayerID identifies a side of the duel.
// Player1 always drives snake A, Player2 drives snake B.
type PlayerID = duel.Player

// Player constants for convenience. NoPlayer marks a draw.
const (
	NoPlayer PlayerID = 0
	Player1           = duel.PlayerA
	Player2           = duel.PlayerB
)

// MatchID uniquely identifies a match.
type MatchID string

// NewMatchID returns a fresh random match ID.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// MatchMode defines who controls each snake.
type MatchMode int

const (
	// MatchModeVsCPU is a human on snake A against a bot on snake B.
	MatchModeVsCPU MatchMode = iota

	// MatchModeCPUvsCPU is bot against bot, as run by the arena.
	MatchModeCPUvsCPU
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeVsCPU:
		return "vs CPU"
	case MatchModeCPUvsCPU:
		return "CPU vs CPU"
	default:
		return "Unknown"
	}
}

// Key returns the stable identifier stored with match results.
func (m MatchMode) Key() string {
	switch m {
	case MatchModeVsCPU:
		return "vs_cpu"
	case MatchModeCPUvsCPU:
		return "cpu_vs_cpu"
	default:
		return "unknown"
	}
}

// MatchEndReason records why a match stopped.
type MatchEndReason string

const (
	EndCompleted MatchEndReason = "completed" // A collision ended the simulation
	EndTruncated MatchEndReason = "truncated" // Tick limit reached
	EndCancelled MatchEndReason = "cancelled" // Context cancelled
	EndQuit      MatchEndReason = "quit"      // Player left before the end
)

// Match describes one duel from start to finish.
type Match struct {
	id        MatchID
	mode      MatchMode
	startedAt time.Time

	// SourceA and SourceB name what drives each snake, e.g. "human" or a
	// strategy ID.
	SourceA string
	SourceB string
}

// NewMatch creates a new match with a fresh ID.
func NewMatch(mode MatchMode, sourceA, sourceB string) *Match {
	return &Match{
		id:        NewMatchID(),
		mode:      mode,
		startedAt: time.Now(),
		SourceA:   sourceA,
		SourceB:   sourceB,
	}
}

// ID returns the match identifier.
func (m *Match) ID() MatchID {
	return m.id
}

// Mode returns the match mode.
func (m *Match) Mode() MatchMode {
	return m.mode
}

// StartedAt returns when the match was created.
func (m *Match) StartedAt() time.Time {
	return m.startedAt
}
