package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-duel/internal/config"
	"github.com/vovakirdan/snake-duel/internal/core"
	"github.com/vovakirdan/snake-duel/internal/games/duel"
	"github.com/vovakirdan/snake-duel/internal/multiplayer"
	"github.com/vovakirdan/snake-duel/internal/registry"
)

// humanSource names the human side in saved matches when no player is given.
const humanSource = "human"

// PlayOptions configures a human-vs-bot session.
type PlayOptions struct {
	Duel     config.DuelConfig
	Runtime  core.RuntimeConfig
	Player   string                       // Name recorded for snake A; defaults to "human"
	Opponent string                       // Strategy ID for snake B; defaults to Duel.Bots.Opponent
	Saver    multiplayer.MatchResultSaver // Optional, can be nil
	Logger   *log.Logger                  // Optional, defaults to discarding
}

// Model is the Bubble Tea model for a duel between the human (snake A)
// and a bot (snake B).
type Model struct {
	cfg        config.DuelConfig
	runtime    core.RuntimeConfig
	player     string
	opponent   string
	saver      multiplayer.MatchResultSaver
	logger     *log.Logger
	difficulty *config.DifficultyManager

	engine *duel.Engine
	human  *duel.Buffered
	match  *multiplayer.Match
	round  int

	screen     *core.Screen
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	sinceStep  int // UI ticks since the last engine step
	paused     bool
	quitting   bool
	saved      bool // Whether the current match has been saved
	err        error
}

// NewModel creates a new Bubble Tea model and starts the first round.
func NewModel(opts PlayOptions) (Model, error) {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = opts.Duel.Play.TickRate
	}
	if opts.Player == "" {
		opts.Player = humanSource
	}
	if opts.Opponent == "" {
		opts.Opponent = opts.Duel.Bots.Opponent
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	m := Model{
		cfg:        opts.Duel,
		runtime:    opts.Runtime,
		player:     opts.Player,
		opponent:   opts.Opponent,
		saver:      opts.Saver,
		logger:     opts.Logger,
		difficulty: config.NewDifficultyManager(opts.Duel.Difficulty),
		screen:     core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
	if err := m.newRound(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// newRound builds a fresh engine, bot and match. Round n uses Seed+n so a
// whole session replays from one seed.
func (m *Model) newRound() error {
	ec, err := m.cfg.EngineConfig()
	if err != nil {
		return err
	}

	seed := m.runtime.Seed + int64(m.round)
	params := registry.Params{
		Seed:    seed + 1,
		Epsilon: m.difficulty.Epsilon(m.cfg.Bots.Epsilon, 0, 0),
		Retries: m.cfg.Bots.Retries,
	}
	bot, err := registry.Create(m.opponent, params)
	if err != nil {
		return err
	}

	human := duel.NewBuffered()
	engine, err := duel.New(ec,
		duel.WithSeed(seed),
		duel.WithSources(human, bot),
		duel.WithLogger(m.logger),
	)
	if err != nil {
		return err
	}

	m.engine = engine
	m.human = human
	m.match = multiplayer.NewMatch(multiplayer.MatchModeVsCPU, m.player, m.opponent)
	m.round++
	m.sinceStep = 0
	m.paused = false
	m.saved = false
	m.err = nil
	return nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Steering goes straight into the
// human's buffer so the latest key before a step wins.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit || action == core.ActionBack {
		m.finish(multiplayer.EndQuit)
		m.quitting = true
		return m, tea.Quit
	}

	if action.IsSteer() {
		if h, ok := HeadingFor(action); ok && !m.paused && !m.engine.IsTerminal() {
			m.human.Request(h)
		}
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick applies frame actions and steps the engine when due.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	defer m.inputFrame.Clear()

	if m.inputFrame.Has(core.ActionRestart) && m.engine.IsTerminal() {
		if err := m.newRound(); err != nil {
			m.err = err
		}
		return m, tickCmd(m.runtime.TickRate)
	}
	if m.inputFrame.Has(core.ActionPause) && !m.engine.IsTerminal() {
		m.paused = !m.paused
	}

	if m.paused || m.engine.IsTerminal() {
		return m, tickCmd(m.runtime.TickRate)
	}

	m.sinceStep++
	if m.sinceStep >= m.moveInterval() {
		m.sinceStep = 0
		if _, err := m.engine.Step(); err != nil {
			m.err = err
			m.logger.Warn("step failed", "match", m.match.ID(), "error", err)
		}
		if m.engine.IsTerminal() {
			m.finish(multiplayer.EndCompleted)
		}
	}

	return m, tickCmd(m.runtime.TickRate)
}

// moveInterval returns the UI ticks per engine step at the current score.
func (m Model) moveInterval() int {
	scoreA, _ := m.engine.Score()
	return m.difficulty.MoveInterval(
		m.cfg.Play.MoveEveryTicks,
		m.cfg.Play.MinMoveEveryTicks,
		scoreA,
		int(m.engine.Tick()),
	)
}

// finish saves the current match once. Matches quit before the first step
// are not recorded.
func (m *Model) finish(reason multiplayer.MatchEndReason) {
	if m.saved || m.engine.Tick() == 0 {
		return
	}
	m.saved = true
	if m.saver == nil {
		return
	}
	result := m.match.Result(m.engine.Last(), reason)
	if err := m.saver.SaveMatchResult(result); err != nil {
		m.logger.Warn("could not save match", "match", result.MatchID, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".snakeduel", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("duel_%s.txt", timestamp))

	var sb strings.Builder
	for y := range m.screen.Height() {
		sb.WriteString(strings.TrimRight(m.screen.Row(y), " "))
		sb.WriteByte('\n')
	}

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(sb.String()), 0o600)
}

// render draws the current state into the screen buffer.
func (m Model) render() {
	m.screen.Clear()
	DrawDuel(m.screen, m.engine.Snapshot(), HUD{
		Opponent: m.opponent,
		Paused:   m.paused,
		Last:     m.engine.Last(),
		Err:      m.err,
	})
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.render()
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user asked to leave.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program with the given options.
func Run(opts PlayOptions) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
