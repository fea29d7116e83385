package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/minigame-engine/internal/core"
	"github.com/vovakirdan/minigame-engine/internal/games/sharpshooter"
	"github.com/vovakirdan/minigame-engine/internal/registry"
	"github.com/vovakirdan/minigame-engine/internal/session"
	"github.com/vovakirdan/minigame-engine/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	opts := registry.DefaultOptions()
	opts.IDs = session.NewSequenceGenerator("tui")

	g, err := sharpshooter.New(opts)
	if err != nil {
		t.Fatalf("sharpshooter.New() failed: %v", err)
	}

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	m := NewModel(g, store, cfg, Options{StageID: "calm", StageName: "Calm", AdDuration: time.Millisecond})
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return mm, cmd
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func endSession(m Model) {
	sess := m.game.Session()
	for sess.Phase() == session.PhasePlaying {
		sess.ReportMiss()
	}
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"w", runeKey("w"), core.ActionUp},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"d", runeKey("d"), core.ActionRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire},
		{"p", runeKey("p"), core.ActionPause},
		{"r", runeKey("r"), core.ActionRetry},
		{"c", runeKey("c"), core.ActionContinue},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey("z"), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.Action(tc.msg); got != tc.want {
				t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestHeldInputSteering(t *testing.T) {
	h := newHeldInput()
	h.Press(core.ActionLeft)
	h.Press(core.ActionFire)

	first := h.Frame()
	if !first.Has(core.ActionLeft) || !first.Has(core.ActionFire) {
		t.Fatalf("first frame = %v, expected left and fire", first.Actions)
	}

	for i := 2; i <= holdTicks; i++ {
		f := h.Frame()
		if !f.Has(core.ActionLeft) {
			t.Fatalf("frame %d lost the held left", i)
		}
		if f.Has(core.ActionFire) {
			t.Fatalf("frame %d repeated fire", i)
		}
	}

	if f := h.Frame(); f.Has(core.ActionLeft) {
		t.Errorf("left still held after %d ticks", holdTicks)
	}
}

func TestHeldInputOppositeCancels(t *testing.T) {
	h := newHeldInput()
	h.Press(core.ActionLeft)
	h.Press(core.ActionRight)

	f := h.Frame()
	if f.Has(core.ActionLeft) || !f.Has(core.ActionRight) {
		t.Errorf("frame = %v, expected only right", f.Actions)
	}

	h.Press(core.ActionUp)
	h.Release()
	if f := h.Frame(); len(f.Actions) != 0 {
		t.Errorf("frame after Release = %v, expected empty", f.Actions)
	}
}

func TestBackPausesThenLeaves(t *testing.T) {
	m := newTestModel(t, nil)
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	m, _ = update(t, m, esc)
	if phase := m.game.Session().Phase(); phase != session.PhasePaused {
		t.Fatalf("phase after first back = %v, expected paused", phase)
	}

	m, _ = update(t, m, esc)
	m, _ = update(t, m, TickMsg(time.Now()))
	if !m.BackToMenu() {
		t.Error("second back did not leave the minigame")
	}
	if m.View() != "" {
		t.Error("View() after leaving should be empty")
	}
}

func TestContinueAdGrantsLife(t *testing.T) {
	m := newTestModel(t, nil)
	endSession(m)

	m, cmd := update(t, m, runeKey("c"))
	if cmd == nil || !m.events.adPlaying {
		t.Fatal("continue did not start the ad")
	}

	// Input other than back is ignored while the ad plays.
	m, _ = update(t, m, runeKey("r"))
	if phase := m.game.Session().Phase(); phase != session.PhaseGameOver {
		t.Fatalf("phase during ad = %v, expected gameover", phase)
	}

	m, _ = update(t, m, adFinishedMsg{seq: m.events.adSeq})
	snap := m.game.Session().Snapshot()
	if snap.Phase != session.PhasePlaying || snap.Lives.Lives != 1 || snap.Continues != 1 {
		t.Errorf("snapshot after ad = %+v, expected playing with 1 life", snap)
	}
	if m.events.adPlaying {
		t.Error("ad still marked as playing")
	}
}

func TestContinueAdSkipped(t *testing.T) {
	m := newTestModel(t, nil)
	endSession(m)

	m, _ = update(t, m, runeKey("c"))
	seq := m.events.adSeq
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, adFinishedMsg{seq: seq})

	if phase := m.game.Session().Phase(); !phase.IsOver() {
		t.Errorf("phase after skipped ad = %v, expected still over", phase)
	}
	if m.BackToMenu() {
		t.Error("skipping the ad left the minigame")
	}
}

func TestResultSavedOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	endSession(m)

	for i := 0; i < 120; i++ {
		m, _ = update(t, m, TickMsg(time.Now()))
	}
	if phase := m.game.Session().Phase(); phase != session.PhaseResult {
		t.Fatalf("phase = %v, expected result", phase)
	}

	r, err := store.ResultBySession("tui-1")
	if err != nil {
		t.Fatalf("ResultBySession() failed: %v", err)
	}
	if r == nil {
		t.Fatal("result was not saved")
	}
	if r.GameID != "sharpshooter" || r.Stage != "calm" || r.TotalShots != 3 {
		t.Errorf("saved result = %+v", r)
	}

	if view := m.View(); !strings.Contains(view, "RESULT") {
		t.Errorf("result view does not show the summary panel:\n%s", view)
	}

	// Retry starts a new session that is saved separately.
	m, _ = update(t, m, runeKey("r"))
	if id := m.game.Session().SessionID(); id != "tui-2" {
		t.Errorf("session id after retry = %q, expected tui-2", id)
	}
}

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.SetColored(1, 1, 'x', core.ColorRed)

	got := RenderScreen(s)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen produced %d lines, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "abc") || !strings.Contains(lines[1], "x") {
		t.Errorf("RenderScreen = %q", got)
	}
}
