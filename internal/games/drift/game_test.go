package drift

import (
	"math"
	"testing"

	"github.com/vovakirdan/minigame-engine/internal/config"
	"github.com/vovakirdan/minigame-engine/internal/core"
	"github.com/vovakirdan/minigame-engine/internal/difficulty"
	"github.com/vovakirdan/minigame-engine/internal/physics"
	"github.com/vovakirdan/minigame-engine/internal/registry"
	"github.com/vovakirdan/minigame-engine/internal/scoring"
	"github.com/vovakirdan/minigame-engine/internal/session"
)

func stageByID(t *testing.T, id string) physics.Stage {
	t.Helper()
	for _, s := range config.DefaultStages() {
		if s.ID == id {
			return s
		}
	}
	if id == "maelstrom" {
		return physics.Stage{
			ID: "maelstrom",
			Modifiers: physics.Modifiers{
				Friction:            1,
				Bounce:              1,
				KnockbackMultiplier: 1,
				Vortex:              &physics.Vortex{Center: core.V(0.5, 0.5), Strength: 2.5},
			},
		}
	}
	if id == "ice" {
		return physics.Stage{ID: "ice", Modifiers: physics.Modifiers{Friction: 0.999, Bounce: 1, KnockbackMultiplier: 1.6}}
	}
	t.Fatalf("unknown stage %q", id)
	return physics.Stage{}
}

func newGame(t *testing.T, stageID string, seed int64) *Game {
	t.Helper()
	opts := registry.DefaultOptions()
	opts.Stage = stageByID(t, stageID)
	opts.IDs = session.NewSequenceGenerator("drift")

	g, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func TestFrictionSlowsIdleShip(t *testing.T) {
	g := newGame(t, "calm", 1)
	g.ship.Vel = core.V(3, 0)

	for i := 0; i < 30; i++ {
		g.Step(idle())
	}

	expected := 3 * math.Pow(0.99, 30)
	if math.Abs(g.ship.Vel.X-expected) > 1e-6 {
		t.Errorf("vel.X = %g, expected %g", g.ship.Vel.X, expected)
	}
	if g.ship.Vel.Y != 0 {
		t.Errorf("vel.Y = %g on a stage without gravity", g.ship.Vel.Y)
	}
}

func TestGravityPullsShipDown(t *testing.T) {
	g := newGame(t, "heavy", 1)
	startY := g.ship.Pos.Y

	for i := 0; i < 30; i++ {
		g.Step(idle())
	}

	if g.ship.Vel.Y <= 0 {
		t.Errorf("vel.Y = %g, expected positive under gravity", g.ship.Vel.Y)
	}
	if g.ship.Pos.Y <= startY {
		t.Errorf("ship did not fall: y %g -> %g", startY, g.ship.Pos.Y)
	}
}

func TestVortexPullsShipToCenter(t *testing.T) {
	g := newGame(t, "maelstrom", 1)
	center := core.V(g.cfg.ArenaWidth/2, g.cfg.ArenaHeight/2)
	g.ship.Pos = core.V(100, 100)
	before := g.ship.Pos.Dist(center)

	for i := 0; i < 30; i++ {
		g.Step(idle())
	}

	if after := g.ship.Pos.Dist(center); after >= before {
		t.Errorf("distance to vortex %g -> %g, expected it to shrink", before, after)
	}
}

func TestWallBounce(t *testing.T) {
	g := newGame(t, "calm", 1)
	g.ship.Pos = core.V(g.cfg.ArenaWidth-g.ship.Radius-1, 240)
	g.ship.Vel = core.V(10, 0)

	g.Step(idle())

	expected := -10 * 0.99 * 0.8
	if math.Abs(g.ship.Vel.X-expected) > 1e-6 {
		t.Errorf("vel.X after bounce = %g, expected %g", g.ship.Vel.X, expected)
	}
	if g.ship.Pos.X > g.cfg.ArenaWidth-g.ship.Radius {
		t.Errorf("ship left the arena: x=%g", g.ship.Pos.X)
	}
}

func TestCollisionCostsLifeAndKnocksBack(t *testing.T) {
	tests := []struct {
		stage    string
		expected float64
	}{
		{"calm", -6},
		{"ice", -9.6},
	}

	for _, tc := range tests {
		t.Run(tc.stage, func(t *testing.T) {
			g := newGame(t, tc.stage, 1)
			g.field.Add(Hazard{
				Pos:    g.ship.Pos.Add(core.V(g.ship.Radius+g.cfg.HazardRadius-5, 0)),
				Radius: g.cfg.HazardRadius,
			})

			g.Step(idle())

			snap := g.session.Snapshot()
			if snap.Lives.Lives != 2 {
				t.Errorf("lives = %d, expected 2", snap.Lives.Lives)
			}
			if math.Abs(g.ship.Vel.X-tc.expected) > 1e-9 {
				t.Errorf("knockback vel.X = %g, expected %g", g.ship.Vel.X, tc.expected)
			}
			if len(g.field.Hazards()) != 0 {
				t.Errorf("colliding hazard was not removed")
			}
		})
	}
}

func TestGraceBlocksRepeatCollision(t *testing.T) {
	g := newGame(t, "calm", 1)
	overlap := func() {
		g.field.Add(Hazard{Pos: g.ship.Pos, Radius: g.cfg.HazardRadius})
	}

	overlap()
	g.Step(idle())
	overlap()
	g.Step(idle())

	if lives := g.session.Snapshot().Lives.Lives; lives != 2 {
		t.Errorf("lives = %d, expected 2 while invulnerable", lives)
	}
}

func TestGraceContactBreaksCombo(t *testing.T) {
	g := newGame(t, "calm", 1)
	g.session.ReportHit(scoring.HitResult{Hit: true})
	g.session.ReportHit(scoring.HitResult{Hit: true})
	g.grace = GraceSeconds

	g.field.Add(Hazard{Pos: g.ship.Pos, Radius: g.cfg.HazardRadius})
	g.Step(idle())

	snap := g.session.Snapshot()
	if snap.Score.Combo != 0 {
		t.Errorf("combo = %d, expected 0 after contact", snap.Score.Combo)
	}
	if snap.Score.TotalShots != 2 {
		t.Errorf("totalShots = %d, expected 2", snap.Score.TotalShots)
	}
	if snap.Lives.Lives != 3 {
		t.Errorf("lives = %d, expected 3 while invulnerable", snap.Lives.Lives)
	}
	if len(g.field.Hazards()) != 0 {
		t.Error("touching hazard was not removed")
	}
}

func TestDodgeScoresHit(t *testing.T) {
	g := newGame(t, "calm", 1)
	r := g.cfg.HazardRadius
	g.field.Add(Hazard{Pos: core.V(g.cfg.ArenaWidth+2*r-1, 240), Vel: core.V(5, 0), Speed: 5, Radius: r})

	g.Step(idle())

	snap := g.session.Snapshot()
	if snap.Score.Hits != 1 || snap.Score.PerfectHits != 0 {
		t.Errorf("score state = %+v, expected one plain dodge", snap.Score)
	}
	if snap.Score.Score != 110 {
		t.Errorf("score = %d, expected 110", snap.Score.Score)
	}
}

func TestNearMissIsPerfect(t *testing.T) {
	g := newGame(t, "calm", 1)
	dt := 1.0 / 60
	g.field.Add(Hazard{
		Pos:    g.ship.Pos.Add(core.V(0, g.ship.Radius+g.cfg.HazardRadius+10)),
		Radius: g.cfg.HazardRadius,
		Age:    g.cfg.HazardLifetime - dt/2,
	})

	g.Step(idle())

	snap := g.session.Snapshot()
	if snap.Score.PerfectHits != 1 {
		t.Errorf("perfect hits = %d, expected 1", snap.Score.PerfectHits)
	}
	if snap.Lives.Lives != 3 {
		t.Errorf("near miss cost a life")
	}
}

func TestContinueClearsHazards(t *testing.T) {
	g := newGame(t, "calm", 1)
	for g.session.Phase() == session.PhasePlaying {
		g.session.ReportMiss()
	}
	g.field.Add(Hazard{Pos: g.ship.Pos, Radius: g.cfg.HazardRadius})

	g.session.ContinueWithExternalGrant()

	if len(g.field.Hazards()) != 0 {
		t.Errorf("hazards survived continue: %d", len(g.field.Hazards()))
	}
	if g.grace != ResumeGrace {
		t.Errorf("grace = %g, expected %g", g.grace, ResumeGrace)
	}

	g.Step(idle())
	if g.session.Phase() != session.PhasePlaying || g.State().Lives != 1 {
		t.Errorf("state after continue = %+v, expected playing with 1 life", g.State())
	}
}

func TestSpawnAimsAtTarget(t *testing.T) {
	cfg := config.Default().Drift
	f := NewHazardField(42, cfg)
	profile := difficulty.DefaultProfiles()[2]
	target := core.V(cfg.ArenaWidth/2, cfg.ArenaHeight/2)

	for i := 0; i < 50; i++ {
		f.Spawn(profile, target)
	}

	for i, h := range f.Hazards() {
		toTarget := target.Sub(h.Pos)
		dot := toTarget.X*h.Vel.X + toTarget.Y*h.Vel.Y
		if dot <= 0 {
			t.Errorf("hazard %d heads away from the target: pos %+v vel %+v", i, h.Pos, h.Vel)
		}
		if math.Abs(h.Vel.Len()-cfg.HazardSpeed*profile.SpeedMultiplier) > 1e-9 {
			t.Errorf("hazard %d speed = %g", i, h.Vel.Len())
		}
		if h.Radius != cfg.HazardRadius*profile.SizeMultiplier {
			t.Errorf("hazard %d radius = %g", i, h.Radius)
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() (core.GameState, Ship) {
		g := newGame(t, "maelstrom", 777)
		for i := 0; i < 1800; i++ {
			in := core.NewInputFrame()
			switch (i / 40) % 4 {
			case 0:
				in.Set(core.ActionLeft)
			case 1:
				in.Set(core.ActionUp)
			case 2:
				in.Set(core.ActionRight)
			default:
				in.Set(core.ActionDown)
			}
			g.Step(in)
		}
		return g.State(), g.ship
	}

	s1, ship1 := run()
	s2, ship2 := run()

	if s1 != s2 {
		t.Errorf("Determinism failed: states differ. Run1=%+v, Run2=%+v", s1, s2)
	}
	if ship1 != ship2 {
		t.Errorf("Determinism failed: ships differ. Run1=%+v, Run2=%+v", ship1, ship2)
	}
}

func TestAutopilotEvadesHazard(t *testing.T) {
	g := newGame(t, "calm", 1)
	r := g.cfg.HazardRadius
	g.field.Add(Hazard{Pos: g.ship.Pos.Add(core.V(g.ship.Radius+r+20, 0)), Radius: r})

	in := g.Autopilot()
	if !in.Has(core.ActionLeft) || in.Has(core.ActionRight) {
		t.Errorf("autopilot = %v, expected to steer left away from the hazard", in.Actions)
	}
	if !in.Has(core.ActionFire) {
		t.Error("autopilot should boost while evading")
	}
}

func TestAutopilotReturnsToCenter(t *testing.T) {
	g := newGame(t, "calm", 1)
	g.ship.Pos = core.V(100, 100)

	in := g.Autopilot()
	if !in.Has(core.ActionRight) || !in.Has(core.ActionDown) {
		t.Errorf("autopilot = %v, expected right and down toward the center", in.Actions)
	}
	if in.Has(core.ActionFire) {
		t.Error("autopilot boosted with no hazard near")
	}

	g.ship.Pos = core.V(g.cfg.ArenaWidth/2, g.cfg.ArenaHeight/2)
	if in := g.Autopilot(); len(in.Actions) != 0 {
		t.Errorf("autopilot at the center = %v, expected no input", in.Actions)
	}
}
