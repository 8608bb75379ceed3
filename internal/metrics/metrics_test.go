package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vovakirdan/snake-duel/internal/games/duel"
)

func TestObserveTick(t *testing.T) {
	m := New()

	m.ObserveTick(duel.TickResult{Outcome: duel.OutcomeAAteFood, AAte: true}, time.Microsecond)
	m.ObserveTick(duel.TickResult{Outcome: duel.OutcomeNothing}, time.Microsecond)
	m.ObserveTick(duel.TickResult{Outcome: duel.OutcomeBCollided, BCollided: true}, time.Microsecond)

	if got := testutil.ToFloat64(m.ticks); got != 3 {
		t.Errorf("ticks = %v, expected 3", got)
	}
	if got := testutil.ToFloat64(m.food.WithLabelValues("a")); got != 1 {
		t.Errorf("food a = %v, expected 1", got)
	}
	if got := testutil.ToFloat64(m.food.WithLabelValues("b")); got != 0 {
		t.Errorf("food b = %v, expected 0", got)
	}
	if got := testutil.ToFloat64(m.outcomes.WithLabelValues("b_collided")); got != 1 {
		t.Errorf("b_collided = %v, expected 1", got)
	}
}

func TestObserveEpisode(t *testing.T) {
	m := New()
	m.ObserveEpisode(120, "completed")
	m.ObserveEpisode(2000, "truncated")
	m.ObserveEpisode(40, "completed")

	if got := testutil.ToFloat64(m.episodes.WithLabelValues("completed")); got != 2 {
		t.Errorf("completed = %v, expected 2", got)
	}
	if got := testutil.CollectAndCount(m.episodeLength); got != 1 {
		t.Errorf("episode length series = %d, expected 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveTick(duel.TickResult{}, 0)
	m.ObserveEpisode(1, "completed")
}

func TestRouter(t *testing.T) {
	m := New()
	m.ObserveTick(duel.TickResult{Outcome: duel.OutcomeNothing}, time.Microsecond)

	ts := httptest.NewServer(NewRouter(m, log.New(io.Discard)))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/healthz status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "snakeduel_ticks_total 1") {
		t.Errorf("/metrics missing tick counter:\n%s", body)
	}

	resp, err = http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("/nope status = %d, expected 404", resp.StatusCode)
	}
}
