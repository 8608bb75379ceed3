package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-duel/internal/config"
	"github.com/vovakirdan/snake-duel/internal/core"
	"github.com/vovakirdan/snake-duel/internal/platform/tui"
	"github.com/vovakirdan/snake-duel/internal/registry"
	"github.com/vovakirdan/snake-duel/internal/storage"
)

var (
	flagOpponent   string
	flagDifficulty string
	flagFPS        int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake A against a bot",
	Long: `Start a duel: you steer snake A, a bot steers snake B.

Controls:
  Arrows/WASD/HJKL  - Steer
  P/Space           - Pause
  R                 - Restart (after the duel ends)
  Q/Esc/Ctrl+C      - Quit
  Ctrl+S            - Save a screenshot to ~/.snakeduel/screenshots

Difficulty options:
  easy   - Random bot, slow start
  normal - Config's bot, moderate start
  hard   - Cautious bot that rarely explores, fast start
  fixed  - No speed-up, stays at config's initial level

Examples:
  snakeduel play
  snakeduel play --opponent cautious
  snakeduel play --difficulty hard
  snakeduel play --config ./my-duel.yaml --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagOpponent, "opponent", "", "Bot strategy for snake B (see 'snakeduel bots')")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagFPS, "fps", 0, "UI tick rate (0 = config's play.tick_rate)")
}

func runPlay(cmd *cobra.Command, args []string) {
	duelCfg := loadDuelConfig()
	if flagDifficulty != "" {
		config.ApplyDuelPreset(&duelCfg, config.DifficultyPreset(flagDifficulty))
	}

	opponent := duelCfg.Bots.Opponent
	if flagOpponent != "" {
		opponent = flagOpponent
	}
	if !registry.Exists(opponent) {
		fmt.Fprintf(os.Stderr, "Error: unknown bot %q\n", opponent)
		fmt.Fprintln(os.Stderr, "Run 'snakeduel bots' to see available bots.")
		os.Exit(1)
	}

	runtime := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}
	runtime.TickRate = duelCfg.Play.TickRate
	if flagFPS > 0 {
		runtime.TickRate = flagFPS
	}
	runtime.Seed = flagSeed

	opts := tui.PlayOptions{
		Duel:     duelCfg,
		Runtime:  runtime,
		Opponent: opponent,
	}

	// Open match storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match database: %v\n", err)
		// Continue without storage - the duel still works
	} else {
		opts.Saver = store
	}

	runErr := tui.Run(opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running duel: %v\n", runErr)
		os.Exit(1)
	}
}
