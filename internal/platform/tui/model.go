package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigame-engine/internal/core"
	"github.com/vovakirdan/minigame-engine/internal/registry"
	"github.com/vovakirdan/minigame-engine/internal/session"
	"github.com/vovakirdan/minigame-engine/internal/storage"
)

// chromeRows is the number of terminal rows used around the playfield:
// HUD, status line and help.
const chromeRows = 3

// Options configures a game model beyond the game itself.
type Options struct {
	StageID    string        // stored with results
	StageName  string        // shown in the HUD
	AdDuration time.Duration // 0 uses DefaultAdDuration
	Logger     *log.Logger   // nil discards
}

// hostEvents collects session callbacks. It lives behind a pointer because
// the model is copied on every update.
type hostEvents struct {
	grant, deny session.GrantFunc // pending continue decision
	adSeq       int
	adPlaying   bool
	exit        bool
}

func (e *hostEvents) clearAd() {
	e.grant, e.deny = nil, nil
	e.adPlaying = false
}

// Model is the Bubble Tea model for running one minigame.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	opts      Options
	logger    *log.Logger
	keys      KeyMap
	help      help.Model
	input     *heldInput
	events    *hostEvents
	gameState core.GameState
	width     int
	height    int
	savedKey  string // session id and continue count of the last saved result
	best      int
	quitting  bool
	back      bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.AdDuration <= 0 {
		opts.AdDuration = DefaultAdDuration
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	events := &hostEvents{}
	sess := game.Session()
	sess.OnContinueRequested(func(grant, deny session.GrantFunc) {
		events.grant, events.deny = grant, deny
	})
	sess.OnExitRequested(func() {
		events.exit = true
	})

	m := Model{
		game:   game,
		store:  store,
		config: cfg,
		opts:   opts,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  newHeldInput(),
		events: events,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
	}
	m.screen = core.NewScreen(m.playfieldSize())
	m.help.Width = cfg.ScreenW
	return m
}

// playfieldSize returns the screen area left for the game.
func (m Model) playfieldSize() (int, int) {
	return max(1, m.width), max(1, m.height-chromeRows)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("session started", "game", m.game.ID(), "session", m.game.Session().SessionID(), "stage", m.opts.StageID)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case adFinishedMsg:
		return m.handleAdFinished(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	sess := m.game.Session()
	action := m.keys.Action(msg)

	if action == core.ActionQuit {
		if m.events.deny != nil {
			m.events.deny()
		}
		m.events.clearAd()
		m.quitting = true
		return m, tea.Quit
	}

	// While the ad plays only skipping it is possible.
	if m.events.adPlaying {
		if action == core.ActionBack {
			m.logger.Debug("continue ad skipped", "session", sess.SessionID())
			m.events.deny()
			m.events.clearAd()
		}
		return m, nil
	}

	switch action {
	case core.ActionBack:
		switch sess.Phase() {
		case session.PhasePlaying:
			sess.Pause()
		case session.PhaseReady:
			m.back = true
			return m, tea.Quit
		default:
			sess.Exit()
		}
		return m, nil

	case core.ActionRetry:
		sess.Retry()
		m.input.Release()
		return m, nil

	case core.ActionContinue:
		return m.requestContinue()
	}

	m.input.Press(action)
	return m, nil
}

// requestContinue asks the session for a continue and, when the host is
// offered a decision, starts the ad that grants it.
func (m Model) requestContinue() (tea.Model, tea.Cmd) {
	sess := m.game.Session()
	if !sess.Phase().IsOver() {
		return m, nil
	}

	sess.RequestContinue()
	if m.events.grant == nil {
		return m, nil
	}

	m.events.adSeq++
	m.events.adPlaying = true
	m.logger.Debug("continue ad started", "session", sess.SessionID(), "duration", m.opts.AdDuration)
	return m, adCmd(m.opts.AdDuration, m.events.adSeq)
}

// handleAdFinished grants the continue once the current ad has played.
func (m Model) handleAdFinished(msg adFinishedMsg) (tea.Model, tea.Cmd) {
	if !m.events.adPlaying || msg.seq != m.events.adSeq {
		return m, nil
	}
	grant := m.events.grant
	m.events.clearAd()
	grant()
	m.input.Release()
	m.logger.Info("continue granted", "session", m.game.Session().SessionID())
	return m, nil
}

// handleResize processes window resize events. Games run in world units so
// only the screen buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(m.playfieldSize())
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.input.Frame())
	m.gameState = result.State

	if m.events.exit {
		if m.events.deny != nil {
			m.events.deny()
		}
		m.events.clearAd()
		m.logger.Info("session left", "game", m.game.ID(), "session", m.game.Session().SessionID())
		m.back = true
		return m, tea.Quit
	}

	if m.gameState.Result {
		m.saveResult()
	}

	return m, tickCmd(m.config.TickRate)
}

// saveResult persists the session once per result screen. A continued
// session is saved again under the same id, replacing the earlier row.
func (m *Model) saveResult() {
	snap := m.game.Session().Snapshot()
	savedKey := fmt.Sprintf("%s/%d", snap.SessionID, snap.Continues)
	if savedKey == m.savedKey {
		return
	}
	m.savedKey = savedKey

	m.logger.Info("session finished",
		"game", m.game.ID(),
		"session", snap.SessionID,
		"score", snap.Score.Score,
		"tier", snap.TierName,
	)

	if m.store == nil {
		return
	}
	best, err := m.store.BestScore(m.game.ID())
	if err != nil {
		m.logger.Warn("could not read best score", "error", err)
	}
	m.best = best

	r := storage.ResultFromSnapshot(m.game.ID(), m.opts.StageID, snap)
	if err := m.store.SaveResult(r); err != nil {
		m.logger.Warn("could not save result", "error", err)
		return
	}
	m.best = max(m.best, snap.Score.Score)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".minigame", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// helpKeys enables only the bindings that do something in the current phase.
func (m Model) helpKeys() KeyMap {
	k := m.keys
	phase := m.game.Session().Phase()
	k.Retry.SetEnabled(phase == session.PhaseResult)
	k.Continue.SetEnabled(phase.IsOver() && !m.events.adPlaying)
	k.Fire.SetEnabled(phase == session.PhasePlaying)
	k.Pause.SetEnabled(phase == session.PhasePlaying || phase == session.PhasePaused)
	return k
}

// statusLine describes the session phase below the playfield.
func (m Model) statusLine() string {
	if m.events.adPlaying {
		return statusStyle.Render("Watching ad for a continue... (esc to skip)")
	}
	switch m.game.Session().Phase() {
	case session.PhasePaused:
		return statusStyle.Render("PAUSED") + dimStyle.Render("  p resume · esc leave")
	case session.PhaseGameOver:
		return statusStyle.Render("GAME OVER")
	case session.PhaseResult:
		return dimStyle.Render("r retry · c continue · esc leave")
	}
	return ""
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	snap := m.game.Session().Snapshot()
	w, h := m.playfieldSize()

	var field string
	if snap.Phase == session.PhaseResult {
		field = renderResult(m.game.Title(), snap, m.best, m.store != nil, w, h)
	} else {
		m.game.Render(m.screen)
		field = RenderScreen(m.screen)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderHUD(m.game.Title(), m.opts.StageName, snap, m.width),
		field,
		m.statusLine(),
		strings.TrimRight(m.help.View(m.helpKeys()), "\n"),
	)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the player left the minigame.
func (m Model) BackToMenu() bool {
	return m.back
}

// Run starts the Bubble Tea program for game and blocks until the player
// leaves. It reports whether the player went back rather than quitting.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) (back bool, err error) {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
