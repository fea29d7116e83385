package drift

import (
	"math"

	"github.com/vovakirdan/minigame-engine/internal/core"
)

// dangerFactor scales the combined radii into the distance at which the bot
// starts evading a hazard.
const dangerFactor = 4.0

// Autopilot evades the closest threatening hazard and otherwise drifts back
// toward the arena center. It boosts while evading.
func (g *Game) Autopilot() core.InputFrame {
	in := core.NewInputFrame()

	var away core.Vec2
	closest := math.Inf(1)
	for _, h := range g.field.Hazards() {
		gap := h.Pos.Dist(g.ship.Pos) - h.Radius - g.ship.Radius
		if gap < closest && gap < dangerFactor*(h.Radius+g.ship.Radius) {
			closest = gap
			away = g.ship.Pos.Sub(h.Pos)
		}
	}

	dir := away
	if math.IsInf(closest, 1) {
		dir = core.V(g.cfg.ArenaWidth/2, g.cfg.ArenaHeight/2).Sub(g.ship.Pos)
		if dir.Len() < g.ship.Radius*4 {
			return in
		}
	} else {
		in.Set(core.ActionFire)
	}

	// Only steer along an axis that carries a real share of the direction.
	n := dir.Normalized()
	switch {
	case n.X < -0.3:
		in.Set(core.ActionLeft)
	case n.X > 0.3:
		in.Set(core.ActionRight)
	}
	switch {
	case n.Y < -0.3:
		in.Set(core.ActionUp)
	case n.Y > 0.3:
		in.Set(core.ActionDown)
	}
	return in
}
