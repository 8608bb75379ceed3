// Package storage provides SQLite-based persistence for duel match summaries.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/snake-duel/internal/multiplayer"
)

// Store manages the SQLite database connection for match persistence.
type Store struct {
	db *sql.DB
}

// MatchRecord represents one finished match.
type MatchRecord struct {
	ID        int64
	MatchID   string
	Mode      string
	SourceA   string
	SourceB   string
	ScoreA    int
	ScoreB    int
	Winner    int // 0 on draw, 1 for snake A, 2 for snake B
	Outcome   string
	EndReason string // "completed", "truncated", "cancelled", "quit"
	Ticks     int
	Duration  int // Duration in seconds
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Arena workers save concurrently; one connection serializes the writes.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			source_a TEXT NOT NULL,
			source_b TEXT NOT NULL,
			score_a INTEGER NOT NULL DEFAULT 0,
			score_b INTEGER NOT NULL DEFAULT 0,
			winner INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			end_reason TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_matches_sources ON matches(source_a, source_b);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a finished match.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(m MatchRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, mode, source_a, source_b, score_a, score_b, winner, outcome, end_reason, ticks, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.MatchID,
		m.Mode,
		m.SourceA,
		m.SourceB,
		m.ScoreA,
		m.ScoreB,
		m.Winner,
		m.Outcome,
		m.EndReason,
		m.Ticks,
		m.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const matchColumns = `id, match_id, mode, source_a, source_b, score_a, score_b,
	winner, outcome, end_reason, ticks, duration_secs, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(r rowScanner) (MatchRecord, error) {
	var m MatchRecord
	var createdAt any
	err := r.Scan(
		&m.ID,
		&m.MatchID,
		&m.Mode,
		&m.SourceA,
		&m.SourceB,
		&m.ScoreA,
		&m.ScoreB,
		&m.Winner,
		&m.Outcome,
		&m.EndReason,
		&m.Ticks,
		&m.Duration,
		&createdAt,
	)
	if err != nil {
		return m, err
	}
	m.CreatedAt = parseTime(createdAt)
	return m, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// MatchByID retrieves a match by its match ID.
// Returns nil without error when no such match exists.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	m, err := scanMatch(s.db.QueryRow(
		`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`,
		matchID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &m, nil
}

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var results []MatchRecord
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// ClearMatches deletes all recorded matches.
func (s *Store) ClearMatches() error {
	_, err := s.db.Exec("DELETE FROM matches")
	if err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// SaveMatchResult implements multiplayer.MatchResultSaver.
func (s *Store) SaveMatchResult(data multiplayer.MatchResultData) error {
	_, err := s.SaveMatch(MatchRecord{
		MatchID:   data.MatchID,
		Mode:      data.Mode,
		SourceA:   data.SourceA,
		SourceB:   data.SourceB,
		ScoreA:    data.ScoreA,
		ScoreB:    data.ScoreB,
		Winner:    data.Winner,
		Outcome:   data.Outcome,
		EndReason: data.EndReason,
		Ticks:     data.Ticks,
		Duration:  data.DurationSecs,
	})
	return err
}

// Ensure Store implements MatchResultSaver
var _ multiplayer.MatchResultSaver = (*Store)(nil)

// Standings contains aggregated statistics over all recorded matches.
type Standings struct {
	Matches    int
	WinsA      int
	WinsB      int
	Draws      int
	Truncated  int
	AvgScoreA  float64
	AvgScoreB  float64
	AvgTicks   float64
	LastPlayed time.Time
}

// Standings retrieves aggregated statistics over all recorded matches.
func (s *Store) Standings() (*Standings, error) {
	st := &Standings{}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN winner = 1 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = 2 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = 0 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN end_reason = 'truncated' THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(score_a), 0), COALESCE(AVG(score_b), 0), COALESCE(AVG(ticks), 0)
		 FROM matches`,
	).Scan(&st.Matches, &st.WinsA, &st.WinsB, &st.Draws, &st.Truncated,
		&st.AvgScoreA, &st.AvgScoreB, &st.AvgTicks)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get standings: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM matches ORDER BY created_at DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		st.LastPlayed = parseTime(lastPlayed)
	}

	return st, nil
}
