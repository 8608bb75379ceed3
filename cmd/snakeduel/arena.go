package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-duel/internal/arena"
	"github.com/vovakirdan/snake-duel/internal/metrics"
	"github.com/vovakirdan/snake-duel/internal/registry"
	"github.com/vovakirdan/snake-duel/internal/storage"
)

var (
	flagBotA        string
	flagBotB        string
	flagEpisodes    int
	flagConcurrency int
	flagMaxTicks    int
	flagMetricsAddr string
	flagNoSave      bool
)

var arenaCmd = &cobra.Command{
	Use:   "arena",
	Short: "Run headless bot-vs-bot episodes",
	Long: `Run many duels between two bot strategies without a terminal UI and
print the aggregate standings.

Episode i uses seed+i for food placement, so a run is reproducible with
--seed. Episodes that hit --max-ticks are recorded as truncated.
Unset flags fall back to the config's arena section.

Examples:
  snakeduel arena
  snakeduel arena --bot-a greedy --bot-b cautious --episodes 1000
  snakeduel arena --concurrency 8 --seed 7 --no-save
  snakeduel arena --metrics-addr :9090   # Serve /metrics while running`,
	Args: cobra.NoArgs,
	RunE: runArena,
}

func init() {
	arenaCmd.Flags().StringVar(&flagBotA, "bot-a", "", "Strategy for snake A")
	arenaCmd.Flags().StringVar(&flagBotB, "bot-b", "", "Strategy for snake B")
	arenaCmd.Flags().IntVar(&flagEpisodes, "episodes", 0, "Number of episodes")
	arenaCmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "Episodes run in parallel")
	arenaCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 0, "Truncate episodes after this many ticks")
	arenaCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	arenaCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record episodes in the match database")
}

func runArena(cmd *cobra.Command, _ []string) error {
	duelCfg := loadDuelConfig()
	logger := newLogger("snakeduel-arena")

	ac := duelCfg.Arena
	flags := cmd.Flags()
	if flags.Changed("bot-a") {
		ac.BotA = flagBotA
	}
	if flags.Changed("bot-b") {
		ac.BotB = flagBotB
	}
	if flags.Changed("episodes") {
		ac.Episodes = flagEpisodes
	}
	if flags.Changed("concurrency") {
		ac.Concurrency = flagConcurrency
	}
	if flags.Changed("max-ticks") {
		ac.MaxTicks = flagMaxTicks
	}
	if flags.Changed("metrics-addr") {
		ac.MetricsAddr = flagMetricsAddr
	}

	for _, id := range []string{ac.BotA, ac.BotB} {
		if !registry.Exists(id) {
			return fmt.Errorf("unknown bot %q, run 'snakeduel bots' to see available bots", id)
		}
	}
	if ac.Episodes < 1 {
		return errors.New("--episodes must be at least 1")
	}

	engineCfg, err := duelCfg.EngineConfig()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	m := metrics.New()
	opts := []arena.Option{arena.WithMetrics(m), arena.WithLogger(logger)}

	if !flagNoSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open match database, episodes will not be saved", "error", err)
		} else {
			defer store.Close()
			opts = append(opts, arena.WithSaver(store))
		}
	}

	if ac.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              ac.MetricsAddr,
			Handler:           metrics.NewRouter(m, logger),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("serving metrics", "address", ac.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", "error", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			//nolint:errcheck // Best-effort shutdown on exit
			srv.Shutdown(ctx)
		}()
	}

	params := registry.Params{
		Epsilon: duelCfg.Bots.Epsilon,
		Retries: duelCfg.Bots.Retries,
	}
	runner := arena.NewRunner(arena.Config{
		Engine:      engineCfg,
		BotA:        ac.BotA,
		BotB:        ac.BotB,
		Params:      params,
		Seed:        seed(),
		MaxTicks:    ac.MaxTicks,
		Concurrency: ac.Concurrency,
	}, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("arena starting",
		"bot_a", ac.BotA,
		"bot_b", ac.BotB,
		"episodes", ac.Episodes,
		"concurrency", ac.Concurrency,
	)
	start := time.Now()
	report, runErr := runner.Run(ctx, ac.Episodes)

	printReport(ac.BotA, ac.BotB, report, time.Since(start))

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Interrupted; report covers finished episodes only.")
			return nil
		}
		return fmt.Errorf("running arena: %w", runErr)
	}
	return nil
}

// printReport writes the aggregate standings to stdout.
func printReport(botA, botB string, r arena.Report, took time.Duration) {
	pct := func(n int) float64 {
		if r.Episodes == 0 {
			return 0
		}
		return 100 * float64(n) / float64(r.Episodes)
	}

	fmt.Printf("Arena - %s (A) vs %s (B)\n", botA, botB)
	fmt.Println()
	fmt.Printf("  %-12s  %6s  %6s\n", "Result", "Count", "Share")
	fmt.Printf("  %-12s  %6s  %6s\n", "------", "-----", "-----")
	fmt.Printf("  %-12s  %6d  %5.1f%%\n", "A wins", r.WinsA, pct(r.WinsA))
	fmt.Printf("  %-12s  %6d  %5.1f%%\n", "B wins", r.WinsB, pct(r.WinsB))
	fmt.Printf("  %-12s  %6d  %5.1f%%\n", "Draws", r.Draws, pct(r.Draws))
	fmt.Printf("  %-12s  %6d  %5.1f%%\n", "Truncated", r.Truncated, pct(r.Truncated))
	fmt.Println()
	fmt.Printf("Episodes: %d in %s\n", r.Episodes, took.Round(time.Millisecond))
	fmt.Printf("Mean ticks: %.1f   Mean score: %.2f (A) / %.2f (B)\n", r.MeanTicks, r.MeanScoreA, r.MeanScoreB)
}
