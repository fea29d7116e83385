// Package tui provides the Bubble Tea host for minigame sessions.
// It handles the terminal UI loop, input mapping, the simulated continue ad
// and result persistence.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultAdDuration is how long the simulated continue ad plays.
const DefaultAdDuration = 3 * time.Second

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// adFinishedMsg reports that the ad started as number seq has played out.
type adFinishedMsg struct {
	seq int
}

// adCmd plays a pretend ad for d and then reports it finished.
func adCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return adFinishedMsg{seq: seq}
	})
}
