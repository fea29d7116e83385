package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/minigame-engine/internal/core"
	"github.com/vovakirdan/minigame-engine/internal/session"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// tierColors colors the tier badge in the HUD, easiest first.
var tierColors = []lipgloss.Color{"2", "3", "208", "1"}

var (
	hudStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	heartStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statusStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 3)
	panelTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	newBestStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// renderLives draws the life counter as hearts.
func renderLives(lives, maxLives int) string {
	if maxLives > 8 {
		return heartStyle.Render(fmt.Sprintf("♥ %d/%d", lives, maxLives))
	}
	full := strings.Repeat("♥", lives)
	empty := strings.Repeat("♡", max(0, maxLives-lives))
	return heartStyle.Render(full) + dimStyle.Render(empty)
}

// renderTier draws the tier name in its color.
func renderTier(snap session.Snapshot) string {
	c := tierColors[len(tierColors)-1]
	if t := int(snap.Tier); t >= 0 && t < len(tierColors) {
		c = tierColors[t]
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c).Render(strings.ToUpper(snap.TierName))
}

// formatClock renders seconds as m:ss.
func formatClock(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// renderHUD draws the single status line above the playfield.
func renderHUD(title, stage string, snap session.Snapshot, width int) string {
	left := hudStyle.Render(title)
	if stage != "" {
		left += dimStyle.Render(" · " + stage)
	}

	parts := []string{
		fmt.Sprintf("Score %s", humanize.Comma(int64(snap.Score.Score))),
		fmt.Sprintf("x%d", snap.Score.Combo),
		renderLives(snap.Lives.Lives, snap.Lives.MaxLives),
		renderTier(snap),
		formatClock(snap.GameTime),
	}
	right := strings.Join(parts, "  ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		return left + "  " + right
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderResult draws the summary panel shown in the result phase, centered in
// a width x height area.
func renderResult(title string, snap session.Snapshot, best int, saved bool, width, height int) string {
	var b strings.Builder
	b.WriteString(panelTitle.Render(title + " · RESULT"))
	b.WriteString("\n")

	rows := [][2]string{
		{"Score", humanize.Comma(int64(snap.Score.Score))},
		{"Max combo", fmt.Sprintf("%d", snap.Score.MaxCombo)},
		{"Perfect", fmt.Sprintf("%d", snap.Score.PerfectHits)},
		{"Hits", fmt.Sprintf("%d / %d", snap.Score.Hits, snap.Score.TotalShots)},
		{"Accuracy", fmt.Sprintf("%.1f%%", snap.Accuracy)},
		{"Tier", snap.TierName},
		{"Time", formatClock(snap.GameTime)},
	}
	if snap.Continues > 0 {
		rows = append(rows, [2]string{"Continues", fmt.Sprintf("%d", snap.Continues)})
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%-10s %s\n", r[0], r[1])
	}

	b.WriteString("\n")
	switch {
	case saved && snap.Score.Score > 0 && snap.Score.Score >= best:
		b.WriteString(newBestStyle.Render("New best!"))
	case best > 0:
		b.WriteString(dimStyle.Render("Best " + humanize.Comma(int64(best))))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panelStyle.Render(b.String()))
}
