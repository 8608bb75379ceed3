// snakeduel runs two snakes on one board: a human against a bot in the
// terminal, bots against each other in a headless arena, or everyone over SSH.
//
// Usage:
//
//	snakeduel play             - Play against a bot
//	snakeduel arena            - Run bot-vs-bot episodes and print standings
//	snakeduel serve            - Start SSH server for remote play
//	snakeduel history          - Browse recorded matches
//	snakeduel bots             - List available bot strategies
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible matches
//	--db <path>          - Set database path (default: ~/.snakeduel/matches.db)
//	--config <path>      - Custom duel config YAML
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import bots to register them
	_ "github.com/vovakirdan/snake-duel/internal/bot"
	"github.com/vovakirdan/snake-duel/internal/config"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snakeduel",
	Short: "Snake Duel - two snakes, one board, one food",
	Long: `Snake Duel puts two snakes on the same grid. Each tick both move at once,
the first to reach the food grows and scores, and a collision with a wall,
itself or the other snake ends the duel.

Available commands:
  play     - Play snake A against a bot on snake B
  arena    - Run headless bot-vs-bot episodes
  serve    - Start SSH server for remote play
  history  - Browse recorded matches
  bots     - List available bot strategies

Examples:
  snakeduel play
  snakeduel play --opponent cautious --difficulty hard
  snakeduel arena --bot-a greedy --bot-b cautious --episodes 500
  snakeduel serve --ssh :2222
  snakeduel history`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snakeduel/matches.db", "Path to match database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom duel config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(arenaCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(botsCmd)
}

// newLogger builds a stderr logger at the --log-level level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadDuelConfig loads and validates the duel config, exiting on failure.
func loadDuelConfig() config.DuelConfig {
	cfg, err := config.LoadDuel(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config:\n%v\n", err)
		os.Exit(1)
	}
	return cfg
}

// seed returns --seed, or the current time when it is unset.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
