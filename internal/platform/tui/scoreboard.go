package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/minigame-engine/internal/registry"
	"github.com/vovakirdan/minigame-engine/internal/storage"
)

const (
	boardResults   = 100 // rows loaded per listing
	boardWideWidth = 84  // below this the tier and perfect columns are dropped
	boardChrome    = 12  // rows used by title, tabs, filter line, stats and help
)

// ScoreboardKeyMap defines the key bindings for the results screen.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Stage    key.Binding
	Sort     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextGame, k.Stage, k.Sort, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Stage, k.Sort, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		NextGame: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next game")),
		PrevGame: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev game")),
		Stage:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stage")),
		Sort:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "order")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardColumn is one table column and how a result fills it.
type boardColumn struct {
	title string
	width int
	sort  storage.SortOrder // column marked when the listing is ranked by it; -1 for none
	cell  func(rank int, r storage.Result) string
	wide  bool // shown only on wide terminals
	stage bool // hidden while filtering to one stage
}

var boardColumns = []boardColumn{
	{title: "#", width: 4, sort: -1, cell: func(rank int, _ storage.Result) string { return fmt.Sprintf("%d", rank) }},
	{title: "Score", width: 9, sort: storage.SortScore, cell: func(_ int, r storage.Result) string { return humanize.Comma(int64(r.Score)) }},
	{title: "Combo", width: 6, sort: storage.SortCombo, cell: func(_ int, r storage.Result) string { return fmt.Sprintf("x%d", r.MaxCombo) }},
	{title: "Acc", width: 6, sort: storage.SortAccuracy, cell: func(_ int, r storage.Result) string { return fmt.Sprintf("%.0f%%", r.Accuracy) }},
	{title: "Perf", width: 5, sort: -1, wide: true, cell: func(_ int, r storage.Result) string { return fmt.Sprintf("%d", r.PerfectHits) }},
	{title: "Tier", width: 7, sort: -1, wide: true, cell: func(_ int, r storage.Result) string { return r.Tier }},
	{title: "Stage", width: 9, sort: -1, stage: true, cell: func(_ int, r storage.Result) string { return r.Stage }},
	{title: "When", width: 14, sort: -1, cell: func(_ int, r storage.Result) string { return humanize.Time(r.PlayedAt()) }},
}

// ScoreboardModel lists stored results per game, filterable by stage and
// ranked by score, combo or accuracy.
type ScoreboardModel struct {
	store *storage.Store
	games []registry.GameInfo
	game  int

	stages []string // "" first, meaning every stage
	stage  int
	order  storage.SortOrder

	results []storage.Result
	stats   *storage.GameStats
	columns []boardColumn

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates the results screen starting at the first game.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		games:  registry.List(),
		stages: []string{""},
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.loadStages()
	m.reload()
	return m
}

func (m *ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.game].ID
}

func (m *ScoreboardModel) stageFilter() string {
	return m.stages[m.stage]
}

// loadStages refreshes the stage filter choices for the current game.
func (m *ScoreboardModel) loadStages() {
	m.stages = []string{""}
	m.stage = 0
	if m.store == nil || len(m.games) == 0 {
		return
	}
	played, err := m.store.PlayedStages(m.gameID())
	if err == nil {
		m.stages = append(m.stages, played...)
	}
}

// reload queries results and stats for the current game, stage and order,
// then rebuilds the table.
func (m *ScoreboardModel) reload() {
	m.results, m.stats = nil, nil
	if m.store != nil && len(m.games) > 0 {
		q := storage.ResultQuery{Stage: m.stageFilter(), Sort: m.order, Limit: boardResults}
		if results, err := m.store.QueryResults(m.gameID(), q); err == nil {
			m.results = results
		}
		if stats, err := m.store.StageStats(m.gameID(), q.Stage); err == nil {
			m.stats = stats
		}
	}
	m.buildTable()
}

// buildTable picks the columns that fit and fills the rows.
func (m *ScoreboardModel) buildTable() {
	m.columns = nil
	for _, c := range boardColumns {
		if c.wide && m.width < boardWideWidth {
			continue
		}
		if c.stage && m.stageFilter() != "" {
			continue
		}
		m.columns = append(m.columns, c)
	}

	cols := make([]table.Column, len(m.columns))
	for i, c := range m.columns {
		title := c.title
		if c.sort == m.order {
			title += " ▼"
		}
		cols[i] = table.Column{Title: title, Width: c.width}
	}

	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		row := make(table.Row, len(m.columns))
		for j, c := range m.columns {
			row[j] = c.cell(i+1, r)
		}
		rows[i] = row
	}

	st := table.DefaultStyles()
	st.Header = st.Header.Bold(true).
		BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).
		BorderForeground(lipgloss.Color("240"))
	st.Selected = st.Selected.Foreground(lipgloss.Color("16")).Background(lipgloss.Color("86"))

	m.table = table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-boardChrome)),
		table.WithStyles(st),
	)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame):
			m.switchGame(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			m.switchGame(-1)
			return m, nil
		case key.Matches(msg, m.keys.Stage):
			m.stage = (m.stage + 1) % len(m.stages)
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Sort):
			m.order = m.order.Next()
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.buildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) switchGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.game = (m.game + delta + len(m.games)) % len(m.games)
	m.loadStages()
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	parts := []string{
		centerText(panelTitle.Render("R E S U L T S"), m.width),
		centerText(m.renderTabs(), m.width),
		centerText(m.renderFilter(), m.width),
		"",
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderBody()),
		"",
		dimStyle.Render(m.help.View(m.keys)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderTabs lists the games, collapsing to "< title >" when they do not fit.
func (m ScoreboardModel) renderTabs() string {
	if len(m.games) == 0 {
		return dimStyle.Render("no games registered")
	}

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.game {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = dimStyle.Render(" " + g.Title + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = activeTabStyle.Render("< " + m.games[m.game].Title + " >")
	}
	return line
}

func (m ScoreboardModel) renderFilter() string {
	stage := m.stageFilter()
	if stage == "" {
		stage = "all stages"
	}
	return dimStyle.Render(fmt.Sprintf("stage: %s  ·  ranked by %s", stage, m.order))
}

func (m ScoreboardModel) renderBody() string {
	if len(m.results) == 0 {
		msg := "No results recorded yet.\nFinish a session to set a score!"
		if m.stageFilter() != "" {
			msg = "No results on this stage."
		}
		return boardPanelStyle.Render(dimStyle.Italic(true).Render(msg))
	}
	return boardPanelStyle.Render(m.table.View() + "\n" + m.renderStats())
}

// renderStats renders the aggregate line under the table.
func (m ScoreboardModel) renderStats() string {
	if m.stats == nil || m.stats.Sessions == 0 {
		return ""
	}
	return dimStyle.Render(fmt.Sprintf("%s sessions · best %s · avg %s · best combo x%d · avg acc %.0f%% · last %s",
		humanize.Comma(int64(m.stats.Sessions)),
		humanize.Comma(int64(m.stats.BestScore)),
		humanize.Comma(int64(m.stats.AvgScore)),
		m.stats.BestCombo,
		m.stats.AvgAccuracy,
		humanize.Time(m.stats.LastPlayed()),
	))
}

var (
	activeTabStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("86")).Padding(0, 1)
	boardPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the results screen until the user leaves. It returns
// true when the user wants the menu back.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
