package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-duel/internal/core"
	"github.com/vovakirdan/snake-duel/internal/storage"
)

// History layout constants
const (
	maxMatches     = 100 // Max matches to load
	historyChrome  = 10  // Rows used by title, standings, help and margins
	minTableHeight = 3
)

// MatchHistory is the read side of the match store.
type MatchHistory interface {
	RecentMatches(limit int) ([]storage.MatchRecord, error)
	Standings() (*storage.Standings, error)
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Refresh, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model listing recorded matches.
type HistoryModel struct {
	store     MatchHistory
	matches   []storage.MatchRecord
	standings *storage.Standings
	loadErr   error
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
}

// NewHistoryModel creates a new history model and loads the matches.
func NewHistoryModel(store MatchHistory, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the current window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 12},
		{Title: "Mode", Width: 10},
		{Title: "A", Width: 10},
		{Title: "B", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Winner", Width: 7},
		{Title: "Outcome", Width: 12},
		{Title: "Ticks", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Clamp(m.height-historyChrome, minTableHeight, maxMatches)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads matches and standings from the store.
func (m *HistoryModel) load() {
	m.matches, m.standings, m.loadErr = nil, nil, nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	matches, err := m.store.RecentMatches(maxMatches)
	if err != nil {
		m.loadErr = err
	} else {
		m.matches = matches
	}
	if st, err := m.store.Standings(); err == nil {
		m.standings = st
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded matches.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.matches))
	for i, r := range m.matches {
		rows[i] = historyRow(r)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// historyRow formats one match for the table.
func historyRow(r storage.MatchRecord) table.Row {
	winner := "draw"
	switch r.Winner {
	case 1:
		winner = "A"
	case 2:
		winner = "B"
	}
	outcome := r.Outcome
	if r.EndReason != "" && r.EndReason != "completed" {
		outcome = r.EndReason
	}
	return table.Row{
		r.CreatedAt.Format("Jan 02 15:04"),
		r.Mode,
		r.SourceA,
		r.SourceB,
		fmt.Sprintf("%d:%d", r.ScoreA, r.ScoreB),
		winner,
		outcome,
		fmt.Sprintf("%d", r.Ticks),
	}
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Top):
			m.table.GotoTop()
			return m, nil

		case key.Matches(msg, m.keys.Bottom):
			m.table.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("MATCH HISTORY", m.width)))
	b.WriteString("\n\n")

	if m.standings != nil && m.standings.Matches > 0 {
		st := m.standings
		line := fmt.Sprintf("%d matches   A %d   B %d   draws %d   avg %.1f:%.1f over %.0f ticks",
			st.Matches, st.WinsA, st.WinsB, st.Draws, st.AvgScoreA, st.AvgScoreB, st.AvgTicks)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render("Could not load matches:\n" + m.loadErr.Error())
	}
	if len(m.matches) == 0 {
		return emptyStyle.Render("No matches recorded yet.\nPlay a duel or run the arena!")
	}
	return m.table.View()
}

// IsQuitting returns true if the user closed the screen.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// centerText pads text on the left so it sits in the middle of width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// RunHistory runs the match history screen.
func RunHistory(store MatchHistory, width, height int) error {
	model := NewHistoryModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
