package drift

import (
	"math"

	"github.com/vovakirdan/minigame-engine/internal/core"
)

// Visual characters for rendering
const (
	ShipChar   = '▲'
	HazardChar = '◆'
	VortexChar = '@'
	WallChar   = '─'
)

// Render draws the vortex, hazards and ship. The arena is scaled to fill dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	if g.stage.Modifiers.Gravity > 0 {
		dst.DrawHLine(0, dst.Height()-1, dst.Width(), WallChar, core.ColorGray)
	}

	if v := g.stage.Modifiers.Vortex; v != nil {
		x, y := g.toScreen(dst, core.V(v.Center.X*g.cfg.ArenaWidth, v.Center.Y*g.cfg.ArenaHeight))
		dst.SetColored(x, y, VortexChar, core.ColorMagenta)
	}

	for _, h := range g.field.Hazards() {
		col := core.ColorRed
		if h.NearMiss {
			col = core.ColorOrange
		}
		g.drawDisc(dst, h.Pos, h.Radius, HazardChar, col)
	}

	// Blink while invulnerable.
	if g.grace > 0 && int(g.session.Clock()*10)%2 == 1 {
		return
	}
	x, y := g.toScreen(dst, g.ship.Pos)
	dst.SetColored(x, y, ShipChar, core.ColorCyan)
}

// toScreen maps an arena position to a cell.
func (g *Game) toScreen(dst *core.Screen, p core.Vec2) (int, int) {
	x := int(p.X / g.cfg.ArenaWidth * float64(dst.Width()))
	y := int(p.Y / g.cfg.ArenaHeight * float64(dst.Height()))
	return core.Clamp(x, 0, dst.Width()-1), core.Clamp(y, 0, dst.Height()-1)
}

// drawDisc fills cells whose center lies inside the circle, always at least
// the cell holding its center.
func (g *Game) drawDisc(dst *core.Screen, center core.Vec2, radius float64, r rune, c core.Color) {
	cellW := g.cfg.ArenaWidth / float64(dst.Width())
	cellH := g.cfg.ArenaHeight / float64(dst.Height())

	x0 := int(math.Floor((center.X - radius) / cellW))
	x1 := int(math.Ceil((center.X + radius) / cellW))
	y0 := int(math.Floor((center.Y - radius) / cellH))
	y1 := int(math.Ceil((center.Y + radius) / cellH))

	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			p := core.V((float64(cx)+0.5)*cellW, (float64(cy)+0.5)*cellH)
			if p.Dist(center) <= radius {
				dst.SetColored(cx, cy, r, c)
			}
		}
	}

	if center.X >= 0 && center.X <= g.cfg.ArenaWidth && center.Y >= 0 && center.Y <= g.cfg.ArenaHeight {
		x, y := g.toScreen(dst, center)
		dst.SetColored(x, y, r, c)
	}
}
