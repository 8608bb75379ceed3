package multiplayer

import (
	"time"

	"github.com/vovakirdan/snake-duel/internal/games/duel"
)

// MatchResultSaver is an interface for saving match results.
// This allows the arena and the TUI to save results without depending on
// the storage package.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// MatchResultData contains match result data for persistence.
type MatchResultData struct {
	MatchID      string
	Mode         string
	SourceA      string
	SourceB      string
	ScoreA       int
	ScoreB       int
	Winner       int    // 0 on draw, 1 for snake A, 2 for snake B
	Outcome      string // Outcome of the last tick
	EndReason    string
	Ticks        int
	DurationSecs int
}

// WinnerFromResult returns the winning side for the last tick of a match.
// When a collision ended the match the surviving snake wins; when both
// collided it is a draw. Matches stopped without a collision are decided
// on score.
func WinnerFromResult(r duel.TickResult) PlayerID {
	switch {
	case r.ACollided && r.BCollided:
		return NoPlayer
	case r.BCollided:
		return Player1
	case r.ACollided:
		return Player2
	case r.ScoreA > r.ScoreB:
		return Player1
	case r.ScoreB > r.ScoreA:
		return Player2
	}
	return NoPlayer
}

// Result builds the persistence record for m ending with last.
func (m *Match) Result(last duel.TickResult, reason MatchEndReason) MatchResultData {
	return MatchResultData{
		MatchID:      string(m.id),
		Mode:         m.mode.Key(),
		SourceA:      m.SourceA,
		SourceB:      m.SourceB,
		ScoreA:       last.ScoreA,
		ScoreB:       last.ScoreB,
		Winner:       int(WinnerFromResult(last)),
		Outcome:      last.Outcome.String(),
		EndReason:    string(reason),
		Ticks:        int(last.Tick),
		DurationSecs: int(time.Since(m.startedAt).Seconds()),
	}
}
