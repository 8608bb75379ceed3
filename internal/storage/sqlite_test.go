package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vovakirdan/snake-duel/internal/multiplayer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	rec := MatchRecord{
		MatchID:   "m-1",
		Mode:      "cpu_vs_cpu",
		SourceA:   "greedy",
		SourceB:   "cautious",
		ScoreA:    4,
		ScoreB:    -1,
		Winner:    1,
		Outcome:   "b_collided",
		EndReason: "completed",
		Ticks:     87,
		Duration:  2,
	}
	id, err := store.SaveMatch(rec)
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveMatch() returned id %d", id)
	}

	got, err := store.MatchByID("m-1")
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("MatchByID() returned nil")
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}
	got.ID, got.CreatedAt = 0, rec.CreatedAt
	if *got != rec {
		t.Errorf("MatchByID() = %+v, expected %+v", *got, rec)
	}

	missing, err := store.MatchByID("nope")
	if err != nil {
		t.Fatalf("MatchByID() for missing match failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing match, got %+v", missing)
	}
}

func TestStoreDuplicateMatchID(t *testing.T) {
	store := openTestStore(t)

	rec := MatchRecord{MatchID: "dup", Mode: "vs_cpu", SourceA: "human", SourceB: "greedy", Outcome: "nothing", EndReason: "quit"}
	if _, err := store.SaveMatch(rec); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if _, err := store.SaveMatch(rec); err == nil {
		t.Error("expected error saving the same match twice")
	}
}

func TestStoreRecentMatches(t *testing.T) {
	store := openTestStore(t)

	for i := range 25 {
		_, err := store.SaveMatch(MatchRecord{
			MatchID:   fmt.Sprintf("m-%02d", i),
			Mode:      "cpu_vs_cpu",
			SourceA:   "greedy",
			SourceB:   "random",
			Ticks:     i,
			Outcome:   "a_collided",
			EndReason: "completed",
		})
		if err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	recent, err := store.RecentMatches(5)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(recent) != 5 {
		t.Fatalf("Expected 5 matches, got %d", len(recent))
	}
	if recent[0].MatchID != "m-24" {
		t.Errorf("Expected newest match first, got %s", recent[0].MatchID)
	}

	// Default limit
	all, err := store.RecentMatches(0)
	if err != nil {
		t.Fatalf("RecentMatches(0) failed: %v", err)
	}
	if len(all) != 20 {
		t.Errorf("Expected default limit of 20, got %d", len(all))
	}
}

func TestStoreStandings(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Standings()
	if err != nil {
		t.Fatalf("Standings() on empty store failed: %v", err)
	}
	if empty.Matches != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty standings = %+v", empty)
	}

	records := []MatchRecord{
		{MatchID: "1", Winner: 1, ScoreA: 4, ScoreB: 0, Ticks: 100, EndReason: "completed"},
		{MatchID: "2", Winner: 2, ScoreA: 0, ScoreB: 2, Ticks: 50, EndReason: "completed"},
		{MatchID: "3", Winner: 0, ScoreA: 2, ScoreB: 2, Ticks: 300, EndReason: "truncated"},
		{MatchID: "4", Winner: 1, ScoreA: 2, ScoreB: 0, Ticks: 30, EndReason: "completed"},
	}
	for _, r := range records {
		r.Mode, r.SourceA, r.SourceB, r.Outcome = "cpu_vs_cpu", "greedy", "cautious", "nothing"
		if _, err := store.SaveMatch(r); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	st, err := store.Standings()
	if err != nil {
		t.Fatalf("Standings() failed: %v", err)
	}
	if st.Matches != 4 || st.WinsA != 2 || st.WinsB != 1 || st.Draws != 1 || st.Truncated != 1 {
		t.Errorf("Standings() = %+v", st)
	}
	if st.AvgScoreA != 2 || st.AvgScoreB != 1 || st.AvgTicks != 120 {
		t.Errorf("averages = %v/%v/%v", st.AvgScoreA, st.AvgScoreB, st.AvgTicks)
	}
	if st.LastPlayed.IsZero() {
		t.Error("LastPlayed was not set")
	}
}

func TestStoreClearMatches(t *testing.T) {
	store := openTestStore(t)

	for i := range 3 {
		rec := MatchRecord{MatchID: fmt.Sprint(i), Mode: "vs_cpu", SourceA: "human", SourceB: "greedy", Outcome: "nothing", EndReason: "quit"}
		if _, err := store.SaveMatch(rec); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}
	if err := store.ClearMatches(); err != nil {
		t.Fatalf("ClearMatches() failed: %v", err)
	}
	recent, err := store.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("Expected no matches after clear, got %d", len(recent))
	}
}

func TestStoreSaveMatchResultConcurrent(t *testing.T) {
	store := openTestStore(t)
	var saver multiplayer.MatchResultSaver = store

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- saver.SaveMatchResult(multiplayer.MatchResultData{
				MatchID:   fmt.Sprintf("c-%d", i),
				Mode:      "cpu_vs_cpu",
				SourceA:   "greedy",
				SourceB:   "greedy",
				Outcome:   "both_collided",
				EndReason: "completed",
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("SaveMatchResult() failed: %v", err)
		}
	}

	st, err := store.Standings()
	if err != nil {
		t.Fatalf("Standings() failed: %v", err)
	}
	if st.Matches != 16 {
		t.Errorf("Expected 16 matches, got %d", st.Matches)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
