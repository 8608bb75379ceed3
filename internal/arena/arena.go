// Package arena runs headless bot-vs-bot duels in parallel and aggregates
// the results.
package arena

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/snake-duel/internal/games/duel"
	"github.com/vovakirdan/snake-duel/internal/metrics"
	"github.com/vovakirdan/snake-duel/internal/multiplayer"
	"github.com/vovakirdan/snake-duel/internal/registry"
)

// Config describes an arena run.
type Config struct {
	Engine duel.Config
	BotA   string
	BotB   string
	Params registry.Params // Shared bot tuning; Seed is replaced per episode

	Seed        int64 // Episode i uses Seed+i
	MaxTicks    int   // 0 means no limit
	Concurrency int   // 0 or less means 1
}

// Option configures a Runner.
type Option func(*Runner)

// WithSaver persists every finished episode.
func WithSaver(s multiplayer.MatchResultSaver) Option {
	return func(r *Runner) { r.saver = s }
}

// WithMetrics records ticks and episodes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithLogger sets the logger. Defaults to discarding.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// Runner plays episodes between two registered strategies.
type Runner struct {
	cfg     Config
	saver   multiplayer.MatchResultSaver
	metrics *metrics.Metrics
	logger  *log.Logger
}

// NewRunner creates a runner.
func NewRunner(cfg Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Episode is the result of one duel.
type Episode struct {
	Index     int
	Seed      int64
	MatchID   multiplayer.MatchID
	Last      duel.TickResult
	Winner    multiplayer.PlayerID
	EndReason multiplayer.MatchEndReason
}

// Report aggregates finished episodes.
type Report struct {
	Episodes   int
	WinsA      int
	WinsB      int
	Draws      int
	Truncated  int
	MeanTicks  float64
	MeanScoreA float64
	MeanScoreB float64
	Results    []Episode // Finished episodes in index order
}

// Run plays episodes concurrently and returns the aggregate report.
// On cancellation or failure the report covers the episodes that finished.
func (r *Runner) Run(ctx context.Context, episodes int) (Report, error) {
	for _, id := range []string{r.cfg.BotA, r.cfg.BotB} {
		if !registry.Exists(id) {
			return Report{}, fmt.Errorf("arena: unknown strategy %q", id)
		}
	}

	limit := r.cfg.Concurrency
	if limit < 1 {
		limit = 1
	}

	results := make([]*Episode, episodes)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range episodes {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			ep, err := r.RunEpisode(gctx, i)
			if err != nil {
				return err
			}
			results[i] = &ep
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	report := summarize(results)
	r.logger.Info("arena finished",
		"episodes", report.Episodes,
		"wins_a", report.WinsA,
		"wins_b", report.WinsB,
		"draws", report.Draws,
		"truncated", report.Truncated,
	)
	return report, err
}

// RunEpisode plays episode i to the end, the tick limit, or cancellation.
// A cancelled episode is returned with the context error and not saved.
func (r *Runner) RunEpisode(ctx context.Context, i int) (Episode, error) {
	seed := r.cfg.Seed + int64(i)

	pa, pb := r.cfg.Params, r.cfg.Params
	pa.Seed, pb.Seed = seed*2+1, seed*2+2
	srcA, err := registry.Create(r.cfg.BotA, pa)
	if err != nil {
		return Episode{}, fmt.Errorf("arena: %w", err)
	}
	srcB, err := registry.Create(r.cfg.BotB, pb)
	if err != nil {
		return Episode{}, fmt.Errorf("arena: %w", err)
	}

	e, err := duel.New(r.cfg.Engine,
		duel.WithSeed(seed),
		duel.WithSources(srcA, srcB),
		duel.WithLogger(r.logger.With("episode", i)),
	)
	if err != nil {
		return Episode{}, fmt.Errorf("arena: episode %d: %w", i, err)
	}

	match := multiplayer.NewMatch(multiplayer.MatchModeCPUvsCPU, r.cfg.BotA, r.cfg.BotB)
	ep := Episode{Index: i, Seed: seed, MatchID: match.ID()}

	reason := multiplayer.EndCompleted
	for !e.IsTerminal() {
		if err := ctx.Err(); err != nil {
			ep.Last = e.Last()
			ep.EndReason = multiplayer.EndCancelled
			return ep, err
		}
		if r.cfg.MaxTicks > 0 && e.Tick() >= uint64(r.cfg.MaxTicks) {
			reason = multiplayer.EndTruncated
			break
		}

		start := time.Now()
		res, err := e.Step()
		if err != nil && !errors.Is(err, duel.ErrNoFreeCell) {
			return ep, fmt.Errorf("arena: episode %d: %w", i, err)
		}
		r.metrics.ObserveTick(res, time.Since(start))
	}

	ep.Last = e.Last()
	ep.EndReason = reason
	ep.Winner = multiplayer.WinnerFromResult(ep.Last)
	r.metrics.ObserveEpisode(e.Tick(), string(reason))

	if r.saver != nil {
		if err := r.saver.SaveMatchResult(match.Result(ep.Last, reason)); err != nil {
			return ep, fmt.Errorf("arena: episode %d: %w", i, err)
		}
	}

	r.logger.Debug("episode finished",
		"episode", i,
		"seed", seed,
		"ticks", ep.Last.Tick,
		"outcome", ep.Last.Outcome,
		"winner", int(ep.Winner),
		"reason", reason,
	)
	return ep, nil
}

func summarize(results []*Episode) Report {
	var rep Report
	var ticks, scoreA, scoreB float64
	for _, ep := range results {
		if ep == nil {
			continue
		}
		rep.Episodes++
		rep.Results = append(rep.Results, *ep)
		switch ep.Winner {
		case multiplayer.Player1:
			rep.WinsA++
		case multiplayer.Player2:
			rep.WinsB++
		default:
			rep.Draws++
		}
		if ep.EndReason == multiplayer.EndTruncated {
			rep.Truncated++
		}
		ticks += float64(ep.Last.Tick)
		scoreA += float64(ep.Last.ScoreA)
		scoreB += float64(ep.Last.ScoreB)
	}
	if rep.Episodes > 0 {
		n := float64(rep.Episodes)
		rep.MeanTicks = ticks / n
		rep.MeanScoreA = scoreA / n
		rep.MeanScoreB = scoreB / n
	}
	return rep
}
