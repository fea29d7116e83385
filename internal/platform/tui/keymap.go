package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/minigame-engine/internal/core"
)

// holdTicks is how many ticks a steering key stays down after its last key
// event. Terminals only report presses, so held arrows arrive as a stream of
// repeats and the gap between them is bridged here.
const holdTicks = 8

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Fire     key.Binding
	Pause    key.Binding
	Retry    key.Binding
	Continue key.Binding
	Back     key.Binding
	Quit     key.Binding
	Help     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fire, k.Pause, k.Retry, k.Continue, k.Back, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Fire, k.Pause},
		{k.Retry, k.Continue, k.Back},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "f"),
			key.WithHelp("space", "fire/boost"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Continue: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "continue (ad)"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// Action translates a key message to a game action.
// Returns core.ActionNone for unbound keys.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Fire):
		return core.ActionFire
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Retry):
		return core.ActionRetry
	case key.Matches(msg, k.Continue):
		return core.ActionContinue
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
}

// heldInput accumulates key events between ticks and turns them into one
// InputFrame per tick. Steering actions stay down for holdTicks ticks,
// everything else lasts a single tick.
type heldInput struct {
	held map[core.Action]int
	once core.InputFrame
}

func newHeldInput() *heldInput {
	return &heldInput{
		held: make(map[core.Action]int),
		once: core.NewInputFrame(),
	}
}

// opposite returns the steering action cancelled by a.
func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}

// Press records a key event.
func (h *heldInput) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if o := opposite(a); o != core.ActionNone {
		delete(h.held, o)
		h.held[a] = holdTicks
		return
	}
	h.once.Set(a)
}

// Frame returns the input for the next tick and ages held actions.
func (h *heldInput) Frame() core.InputFrame {
	frame := core.NewInputFrame()
	for a := range h.once.Actions {
		frame.Set(a)
	}
	h.once.Clear()

	for a, n := range h.held {
		frame.Set(a)
		if n <= 1 {
			delete(h.held, a)
		} else {
			h.held[a] = n - 1
		}
	}
	return frame
}

// Release drops every pending and held action.
func (h *heldInput) Release() {
	h.once.Clear()
	for a := range h.held {
		delete(h.held, a)
	}
}
