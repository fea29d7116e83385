// Package drift implements a survival minigame.
// The player pilots a ship through an arena whose stage applies gravity,
// friction, wall bounce and an optional vortex, dodging hazards thrown at it.
package drift

import (
	"fmt"
	"math"

	"github.com/vovakirdan/minigame-engine/internal/config"
	"github.com/vovakirdan/minigame-engine/internal/core"
	"github.com/vovakirdan/minigame-engine/internal/physics"
	"github.com/vovakirdan/minigame-engine/internal/registry"
	"github.com/vovakirdan/minigame-engine/internal/scoring"
	"github.com/vovakirdan/minigame-engine/internal/session"
)

const (
	BoostFactor  = 2.0 // steering acceleration multiplier while Fire is held
	GraceSeconds = 1.0 // invulnerability after a collision
	ResumeGrace  = 2.0 // invulnerability after a continue
)

// Game implements the drift logic.
type Game struct {
	cfg     config.Drift
	stage   physics.Stage
	session *session.Controller
	runtime core.RuntimeConfig
	ship    Ship
	field   *HazardField
	grace   float64 // seconds of invulnerability left
}

// New creates a drift instance with its own session controller.
func New(opts registry.Options) (*Game, error) {
	sess, err := session.New(opts.Config.Session, opts.SessionOptions()...)
	if err != nil {
		return nil, fmt.Errorf("drift: %w", err)
	}

	stage := opts.Stage
	if stage.ID == "" {
		stage = registry.DefaultOptions().Stage
	}

	g := &Game{cfg: opts.Config.Drift, stage: stage, session: sess}
	g.runtime = core.DefaultConfig()
	g.field = NewHazardField(0, g.cfg)

	sess.OnRetryRequested(g.clearField)
	sess.OnContinued(func() {
		g.field.Clear()
		g.ship.Vel = core.Vec2{}
		g.grace = ResumeGrace
	})
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "drift"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Drift"
}

// Session returns the controller driving this game.
func (g *Game) Session() *session.Controller {
	return g.session
}

// Stage returns the active stage.
func (g *Game) Stage() physics.Stage {
	return g.stage
}

// Reset reseeds the field and starts a new session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.field.Reset(runtime.Seed)
	g.clearField()

	g.session.Reset()
	g.session.Start()
}

func (g *Game) clearField() {
	g.field.Clear()
	g.ship = Ship{
		Pos:    core.V(g.cfg.ArenaWidth/2, g.cfg.ArenaHeight/2),
		Radius: g.cfg.ShipRadius,
	}
	g.grace = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	dt := g.runtime.TickSeconds()

	if in.Has(core.ActionPause) {
		g.session.TogglePause()
	}
	g.session.Update(dt)

	if g.session.Phase() != session.PhasePlaying {
		return core.StepResult{State: g.State()}
	}

	k := dt * physics.ReferenceFPS
	g.grace = math.Max(0, g.grace-dt)

	g.steerShip(in, k)
	g.ship.Vel = g.applyStage(g.ship.Pos, g.ship.Vel, dt)
	g.ship.Vel = g.ship.Vel.Scale(math.Pow(g.stage.Modifiers.Friction, k))
	g.ship.Pos = g.ship.Pos.Add(g.ship.Vel.Scale(k))
	g.bounceShip()

	g.updateHazards(dt, k)

	if g.session.Phase() == session.PhasePlaying {
		g.field.Tick(dt, g.session.Profile(), g.ship.Pos)
	}

	return core.StepResult{State: g.State()}
}

// steerShip adds thrust from the input axis, capped at the ship's max speed.
func (g *Game) steerShip(in core.InputFrame, k float64) {
	dx, dy := in.Axis()
	if dx == 0 && dy == 0 {
		return
	}

	accel := g.cfg.ShipAccel
	if in.Has(core.ActionFire) {
		accel *= BoostFactor
	}

	v := g.ship.Vel.Add(core.V(dx, dy).Normalized().Scale(accel * k))
	if l := v.Len(); l > g.cfg.ShipMaxSpeed && l > g.ship.Vel.Len() {
		v = v.Scale(math.Max(g.cfg.ShipMaxSpeed, g.ship.Vel.Len()) / l)
	}
	g.ship.Vel = v
}

// applyStage applies the stage's field forces to a velocity.
func (g *Game) applyStage(pos, vel core.Vec2, dt float64) core.Vec2 {
	mods := g.stage.Modifiers
	vel.Y = physics.ApplyGravity(vel.Y, dt, mods.Gravity)
	if mods.Vortex != nil {
		vel = physics.ApplyVortex(pos, vel, g.cfg.ArenaWidth, g.cfg.ArenaHeight, *mods.Vortex, dt)
	}
	return vel
}

// bounceShip reflects the ship off the arena walls, losing energy per the
// stage's bounce factor.
func (g *Game) bounceShip() {
	s := &g.ship
	bounce := g.stage.Modifiers.Bounce
	maxX := g.cfg.ArenaWidth - s.Radius
	maxY := g.cfg.ArenaHeight - s.Radius

	if s.Pos.X < s.Radius || s.Pos.X > maxX {
		s.Pos.X = core.ClampF(s.Pos.X, s.Radius, maxX)
		s.Vel.X = -s.Vel.X * bounce
	}
	if s.Pos.Y < s.Radius || s.Pos.Y > maxY {
		s.Pos.Y = core.ClampF(s.Pos.Y, s.Radius, maxY)
		s.Vel.Y = -s.Vel.Y * bounce
	}
}

// updateHazards moves hazards and resolves collisions and dodges.
func (g *Game) updateHazards(dt, k float64) {
	profile := g.session.Profile()
	hazards := g.field.Hazards()

	for i := 0; i < len(hazards); {
		h := &hazards[i]
		h.Age += dt

		if profile.MovingTargets {
			h.Vel = steer(h.Vel, h.Pos, g.ship.Pos, h.Speed, k)
		}
		h.Vel = g.applyStage(h.Pos, h.Vel, dt)
		h.Pos = h.Pos.Add(h.Vel.Scale(k))

		gap := h.Pos.Dist(g.ship.Pos) - h.Radius - g.ship.Radius
		if g.grace > 0 && gap <= 0 {
			// Contact while invulnerable only breaks the combo.
			g.session.ReportLapse()
			g.field.Remove(i)
			hazards = g.field.Hazards()
			continue
		}
		if g.grace <= 0 {
			h.Closest = math.Min(h.Closest, gap)
			if gap <= 0 {
				g.collide(*h)
				g.field.Remove(i)
				hazards = g.field.Hazards()
				continue
			}
			if gap <= g.cfg.NearMissMargin {
				h.NearMiss = true
			}
		}

		if g.field.outside(*h) || h.Age >= g.cfg.HazardLifetime {
			g.session.ReportHit(scoring.HitResult{Hit: true, Perfect: h.NearMiss, Distance: h.Closest})
			g.field.Remove(i)
			hazards = g.field.Hazards()
			continue
		}
		i++
	}
}

// collide knocks the ship away from the hazard and costs a life.
func (g *Game) collide(h Hazard) {
	dir := g.ship.Pos.Sub(h.Pos).Normalized()
	if dir == (core.Vec2{}) {
		dir = core.V(0, -1)
	}
	impulse := g.cfg.KnockbackImpulse * g.stage.Modifiers.KnockbackMultiplier
	g.ship.Vel = g.ship.Vel.Add(dir.Scale(impulse))
	g.grace = GraceSeconds

	g.session.ReportMiss()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	snap := g.session.Snapshot()
	return core.GameState{
		Score:    snap.Score.Score,
		Lives:    snap.Lives.Lives,
		GameOver: snap.IsGameOver,
		Result:   snap.Phase == session.PhaseResult,
		Paused:   snap.IsPaused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("drift", func(opts registry.Options) (registry.Game, error) {
		g, err := New(opts)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
}
