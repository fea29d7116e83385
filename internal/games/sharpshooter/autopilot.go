package sharpshooter

import (
	"math"

	"github.com/vovakirdan/minigame-engine/internal/core"
)

// autopilotAim is the fraction of a target's radius the bot waits for before
// firing. Below 1 it trades speed for accuracy.
const autopilotAim = 0.6

// Autopilot chases the nearest target and fires once the crosshair is
// inside its aim circle. Steering is per axis with a deadzone of one
// crosshair step.
func (g *Game) Autopilot() core.InputFrame {
	in := core.NewInputFrame()

	idx, dist, ok := g.targets.Nearest(g.crosshair)
	if !ok {
		return in
	}
	t := g.targets.Targets()[idx]

	step := g.cfg.CrosshairSpeed * g.runtime.TickSeconds()
	d := t.Pos.Sub(g.crosshair)
	if math.Abs(d.X) > step {
		if d.X < 0 {
			in.Set(core.ActionLeft)
		} else {
			in.Set(core.ActionRight)
		}
	}
	if math.Abs(d.Y) > step {
		if d.Y < 0 {
			in.Set(core.ActionUp)
		} else {
			in.Set(core.ActionDown)
		}
	}

	if dist <= t.Radius*autopilotAim {
		in.Set(core.ActionFire)
	}
	return in
}
