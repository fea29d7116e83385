// Package sharpshooter implements an aim-and-shoot minigame.
// The player steers a crosshair over the arena and fires at targets before
// they expire. Difficulty shrinks targets, sets them moving and adds wind.
package sharpshooter

import (
	"fmt"

	"github.com/vovakirdan/minigame-engine/internal/config"
	"github.com/vovakirdan/minigame-engine/internal/core"
	"github.com/vovakirdan/minigame-engine/internal/registry"
	"github.com/vovakirdan/minigame-engine/internal/scoring"
	"github.com/vovakirdan/minigame-engine/internal/session"
)

// Visual characters for rendering
const (
	CrosshairChar = '╋'
	BullseyeChar  = '●'
	RingChar      = '○'
	FillChar      = '·'
)

// popupTTL is how long a score popup stays on screen, in seconds.
const popupTTL = 0.8

type popup struct {
	pos  core.Vec2
	text string
	born float64 // session clock at creation
	col  core.Color
}

// Game implements the sharpshooter logic.
type Game struct {
	cfg       config.Sharpshooter
	session   *session.Controller
	runtime   core.RuntimeConfig
	targets   *TargetManager
	wind      *Wind
	crosshair core.Vec2
	popups    []popup
}

// New creates a sharpshooter instance with its own session controller.
func New(opts registry.Options) (*Game, error) {
	sess, err := session.New(opts.Config.Session, opts.SessionOptions()...)
	if err != nil {
		return nil, fmt.Errorf("sharpshooter: %w", err)
	}

	g := &Game{cfg: opts.Config.Sharpshooter, session: sess}
	g.runtime = core.DefaultConfig()
	g.targets = NewTargetManager(0, g.cfg)
	g.wind = NewWind(0, g.cfg.WindStrength)

	sess.OnRetryRequested(g.clearField)
	sess.OnContinued(g.clearField)
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "sharpshooter"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Sharpshooter"
}

// Session returns the controller driving this game.
func (g *Game) Session() *session.Controller {
	return g.session
}

// Reset reseeds the field and starts a new session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.targets.Reset(runtime.Seed)
	g.wind = NewWind(runtime.Seed, g.cfg.WindStrength)
	g.clearField()

	g.session.Reset()
	g.session.Start()
}

// clearField removes targets and recenters the crosshair so a retried or
// continued session does not resume under fire.
func (g *Game) clearField() {
	g.targets.Clear()
	g.popups = g.popups[:0]
	g.crosshair = core.V(g.cfg.ArenaWidth/2, g.cfg.ArenaHeight/2)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	dt := g.runtime.TickSeconds()

	if in.Has(core.ActionPause) {
		g.session.TogglePause()
	}
	g.session.Update(dt)
	g.expirePopups()

	if g.session.Phase() != session.PhasePlaying {
		return core.StepResult{State: g.State()}
	}

	g.moveCrosshair(in, dt)

	profile := g.session.Profile()
	if in.Has(core.ActionFire) {
		g.fire()
	}

	expired := g.targets.Update(dt, profile, g.wind.At(g.session.GameTime()))
	for i := 0; i < expired; i++ {
		g.session.ReportMiss()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCrosshair(in core.InputFrame, dt float64) {
	dx, dy := in.Axis()
	step := g.cfg.CrosshairSpeed * dt
	g.crosshair = g.crosshair.Add(core.V(dx*step, dy*step))
	g.crosshair.X = core.ClampF(g.crosshair.X, 0, g.cfg.ArenaWidth)
	g.crosshair.Y = core.ClampF(g.crosshair.Y, 0, g.cfg.ArenaHeight)
}

// fire resolves a shot at the crosshair against the nearest target.
// Shooting at an empty field is a missed shot.
func (g *Game) fire() {
	profile := g.session.Profile()

	idx, dist, ok := g.targets.Nearest(g.crosshair)
	if !ok {
		g.session.ReportHit(scoring.HitResult{})
		g.addPopup("MISS", core.ColorGray)
		return
	}

	t := g.targets.Targets()[idx]
	res := ResolveShot(dist, t.Radius, profile.HitTolerance, g.cfg.PerfectRatio)
	points := g.session.ReportHit(res)

	switch {
	case res.Perfect:
		g.targets.Remove(idx)
		g.addPopup(fmt.Sprintf("PERFECT +%d", points), core.ColorMagenta)
	case res.Hit:
		g.targets.Remove(idx)
		g.addPopup(fmt.Sprintf("+%d", points), core.ColorYellow)
	default:
		g.addPopup("MISS", core.ColorGray)
	}
}

func (g *Game) addPopup(text string, c core.Color) {
	g.popups = append(g.popups, popup{pos: g.crosshair, text: text, born: g.session.Clock(), col: c})
}

func (g *Game) expirePopups() {
	now := g.session.Clock()
	kept := g.popups[:0]
	for _, p := range g.popups {
		if now-p.born < popupTTL {
			kept = append(kept, p)
		}
	}
	g.popups = kept
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
	registry.Register("sharpshooter", func(opts registry.Options) (registry.Game, error) {
		g, err := New(opts)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
}
