package sharpshooter

import (
	"math"

	"github.com/vovakirdan/minigame-engine/internal/core"
)

// Render draws targets, the crosshair and score popups. The arena is scaled
// to fill dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	for _, t := range g.targets.Targets() {
		g.drawTarget(dst, t)
	}

	if g.session.Profile().WindEffect {
		g.drawWind(dst)
	}

	for _, p := range g.popups {
		x, y := g.toScreen(dst, p.pos)
		dst.DrawTextColored(x-len([]rune(p.text))/2, y-1, p.text, p.col)
	}

	x, y := g.toScreen(dst, g.crosshair)
	dst.SetColored(x, y, CrosshairChar, core.ColorWhite)
}

// toScreen maps an arena position to a cell.
func (g *Game) toScreen(dst *core.Screen, p core.Vec2) (int, int) {
	x := int(p.X / g.cfg.ArenaWidth * float64(dst.Width()))
	y := int(p.Y / g.cfg.ArenaHeight * float64(dst.Height()))
	return core.Clamp(x, 0, dst.Width()-1), core.Clamp(y, 0, dst.Height()-1)
}

// drawTarget fills every cell whose center lies inside the target.
func (g *Game) drawTarget(dst *core.Screen, t Target) {
	cellW := g.cfg.ArenaWidth / float64(dst.Width())
	cellH := g.cfg.ArenaHeight / float64(dst.Height())

	col := core.ColorGreen
	switch r := t.Remaining(); {
	case r < 0.25:
		col = core.ColorRed
	case r < 0.5:
		col = core.ColorYellow
	}

	x0 := int(math.Floor((t.Pos.X - t.Radius) / cellW))
	x1 := int(math.Ceil((t.Pos.X + t.Radius) / cellW))
	y0 := int(math.Floor((t.Pos.Y - t.Radius) / cellH))
	y1 := int(math.Ceil((t.Pos.Y + t.Radius) / cellH))

	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			center := core.V((float64(cx)+0.5)*cellW, (float64(cy)+0.5)*cellH)
			d := center.Dist(t.Pos)
			switch {
			case d > t.Radius:
				continue
			case d <= t.Radius*g.cfg.PerfectRatio:
				dst.SetColored(cx, cy, BullseyeChar, core.ColorRed)
			case d >= t.Radius-math.Max(cellW, cellH):
				dst.SetColored(cx, cy, RingChar, col)
			default:
				dst.SetColored(cx, cy, FillChar, col)
			}
		}
	}

	// Targets smaller than a cell still need a visible center.
	cx, cy := g.toScreen(dst, t.Pos)
	if dst.Get(cx, cy) == ' ' {
		dst.SetColored(cx, cy, BullseyeChar, core.ColorRed)
	}
}

// drawWind shows the current drift direction on the bottom row.
func (g *Game) drawWind(dst *core.Screen) {
	w := g.wind.At(g.session.GameTime())
	arrow := "wind »"
	if w < 0 {
		arrow = "« wind"
	}
	if math.Abs(w) > g.cfg.WindStrength/2 {
		if w < 0 {
			arrow = "«" + arrow
		} else {
			arrow += "»"
		}
	}
	dst.DrawTextColored(1, dst.Height()-1, arrow, core.ColorCyan)
}
