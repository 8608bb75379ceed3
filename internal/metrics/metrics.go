// Package metrics exposes duel simulation counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vovakirdan/snake-duel/internal/games/duel"
)

// Metrics holds the duel collectors on a dedicated registry, so several
// instances can coexist in tests. A nil *Metrics records nothing.
//
// Labels are bounded: outcome names, sides "a"/"b", and end reasons.
type Metrics struct {
	registry *prometheus.Registry

	ticks         prometheus.Counter
	tickDuration  prometheus.Histogram
	outcomes      *prometheus.CounterVec
	food          *prometheus.CounterVec
	episodes      *prometheus.CounterVec
	episodeLength prometheus.Histogram
}

// New creates the collectors and registers them with a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ticks: factory.NewCounter(prometheus.CounterOpts{
			Name: "snakeduel_ticks_total",
			Help: "Total simulation ticks advanced",
		}),
		tickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "snakeduel_tick_duration_seconds",
			Help:    "Time spent resolving one tick, direction sources included",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
		}),
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "snakeduel_outcomes_total",
			Help: "Tick outcomes by variant",
		}, []string{"outcome"}),
		food: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "snakeduel_food_captured_total",
			Help: "Food captures by side",
		}, []string{"side"}),
		episodes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "snakeduel_episodes_total",
			Help: "Finished episodes by end reason",
		}, []string{"end_reason"}),
		episodeLength: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "snakeduel_episode_ticks",
			Help:    "Episode length in ticks",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10),
		}),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveTick records one resolved tick.
func (m *Metrics) ObserveTick(r duel.TickResult, took time.Duration) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	m.tickDuration.Observe(took.Seconds())
	m.outcomes.WithLabelValues(r.Outcome.String()).Inc()
	if r.AAte {
		m.food.WithLabelValues("a").Inc()
	}
	if r.BAte {
		m.food.WithLabelValues("b").Inc()
	}
}

// ObserveEpisode records a finished episode.
func (m *Metrics) ObserveEpisode(ticks uint64, endReason string) {
	if m == nil {
		return
	}
	m.episodes.WithLabelValues(endReason).Inc()
	m.episodeLength.Observe(float64(ticks))
}
