package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/snake-duel/internal/games/duel"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, ok := parseOver(defaultDuelYAML)
	if !ok {
		t.Fatal("embedded duel.yaml failed to parse")
	}
	if cfg != DefaultDuelConfig() {
		t.Errorf("embedded defaults drifted:\n%+v\n%+v", cfg, DefaultDuelConfig())
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultDuelConfig().Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}

	ec, err := DefaultDuelConfig().EngineConfig()
	if err != nil {
		t.Fatalf("EngineConfig() failed: %v", err)
	}
	if ec != duel.DefaultConfig() {
		t.Errorf("EngineConfig() = %+v, expected duel.DefaultConfig()", ec)
	}
}

func TestLoadDuelCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "duel.yaml")
	data := []byte("board:\n  width: 30\n  height: 16\nbots:\n  opponent: cautious\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadDuel(path)
	if err != nil {
		t.Fatalf("LoadDuel() failed: %v", err)
	}
	if cfg.Board.Width != 30 || cfg.Board.Height != 16 {
		t.Errorf("board = %dx%d, expected 30x16", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Bots.Opponent != "cautious" {
		t.Errorf("opponent = %q, expected cautious", cfg.Bots.Opponent)
	}
	// Unset fields keep their defaults.
	if cfg.Board.Step != 1 || cfg.Snakes.A.Length != 3 {
		t.Errorf("defaults lost: step=%d lenA=%d", cfg.Board.Step, cfg.Snakes.A.Length)
	}
}

func TestLoadDuelErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadDuel(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [1, 2\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadDuel(bad); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*DuelConfig)
		wantErr error
	}{
		{"misaligned board", func(c *DuelConfig) { c.Board.Step = 3 }, duel.ErrMisalignedBoard},
		{"overlapping snakes", func(c *DuelConfig) { c.Snakes.B = c.Snakes.A }, duel.ErrSnakeOverlap},
		{"snake off board", func(c *DuelConfig) { c.Snakes.A.X = 1 }, duel.ErrSnakeOutOfBounds},
		{"bad heading", func(c *DuelConfig) { c.Snakes.B.Heading = "sideways" }, nil},
		{"epsilon", func(c *DuelConfig) { c.Bots.Epsilon = 1.5 }, nil},
		{"tick rate", func(c *DuelConfig) { c.Play.TickRate = 0 }, nil},
		{"move interval", func(c *DuelConfig) { c.Play.MinMoveEveryTicks = 20 }, nil},
		{"arena", func(c *DuelConfig) { c.Arena.MaxTicks = -1 }, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultDuelConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestParseHeading(t *testing.T) {
	tests := []struct {
		in   string
		want duel.Heading
	}{
		{"up", duel.Up},
		{"Down", duel.Down},
		{" left ", duel.Left},
		{"RIGHT", duel.Right},
	}
	for _, tc := range tests {
		got, err := ParseHeading(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseHeading(%q) = %v, %v; expected %v", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParseHeading("north"); err == nil {
		t.Error("expected error for unknown heading")
	}
}

func TestApplyDuelPreset(t *testing.T) {
	cfg := DefaultDuelConfig()
	ApplyDuelPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	cfg = DefaultDuelConfig()
	ApplyDuelPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: enabled=%v level=%v", cfg.Difficulty.Enabled, cfg.Difficulty.InitialLevel)
	}
	if cfg.Bots.Opponent != "cautious" {
		t.Errorf("hard preset opponent = %q", cfg.Bots.Opponent)
	}
}
