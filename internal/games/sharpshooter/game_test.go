package sharpshooter

import (
	"math"
	"testing"

	"github.com/vovakirdan/minigame-engine/internal/core"
	"github.com/vovakirdan/minigame-engine/internal/registry"
	"github.com/vovakirdan/minigame-engine/internal/session"
)

func newGame(t *testing.T, seed int64) *Game {
	t.Helper()
	opts := registry.DefaultOptions()
	opts.IDs = session.NewSequenceGenerator("shot")

	g, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func fireFrame() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionFire)
	return in
}

func TestResolveShot(t *testing.T) {
	tests := []struct {
		name      string
		dist      float64
		tolerance float64
		hit       bool
		perfect   bool
	}{
		{"center", 0, 1, true, true},
		{"inside perfect ring", 10, 1, true, true},
		{"edge", 40, 1, true, false},
		{"outside", 41, 1, false, false},
		{"tolerance shrinks hit area", 35, 0.8, false, false},
		{"tolerance keeps perfect", 8, 0.5, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := ResolveShot(tc.dist, 40, tc.tolerance, 0.25)
			if res.Hit != tc.hit || res.Perfect != tc.perfect {
				t.Errorf("ResolveShot(%g) = %+v, expected hit=%v perfect=%v", tc.dist, res, tc.hit, tc.perfect)
			}
			if res.Distance != tc.dist {
				t.Errorf("Distance = %g, expected %g", res.Distance, tc.dist)
			}
		})
	}
}

func TestFirstTargetSpawnsImmediately(t *testing.T) {
	g := newGame(t, 7)
	g.Step(core.NewInputFrame())

	if n := len(g.targets.Targets()); n != 1 {
		t.Fatalf("targets after first tick = %d, expected 1", n)
	}
	tgt := g.targets.Targets()[0]
	if tgt.Radius != g.cfg.TargetRadius {
		t.Errorf("radius = %g, expected %g at easy tier", tgt.Radius, g.cfg.TargetRadius)
	}
	if tgt.Pos.X < tgt.Radius || tgt.Pos.X > g.cfg.ArenaWidth-tgt.Radius {
		t.Errorf("target spawned outside the arena: %+v", tgt.Pos)
	}
}

func TestPerfectShot(t *testing.T) {
	g := newGame(t, 7)
	g.Step(core.NewInputFrame())

	g.crosshair = g.targets.Targets()[0].Pos
	g.Step(fireFrame())

	snap := g.session.Snapshot()
	if snap.Score.Hits != 1 || snap.Score.PerfectHits != 1 {
		t.Fatalf("score state = %+v, expected one perfect hit", snap.Score)
	}
	// 100 base * 2.0 perfect * 1.1 combo
	if snap.Score.Score != 220 {
		t.Errorf("score = %d, expected 220", snap.Score.Score)
	}
	if len(g.targets.Targets()) != 0 {
		t.Errorf("hit target was not removed")
	}
}

func TestShotAtEmptyFieldIsMissedShot(t *testing.T) {
	g := newGame(t, 7)
	g.Step(fireFrame())

	snap := g.session.Snapshot()
	if snap.Score.TotalShots != 1 || snap.Score.Hits != 0 {
		t.Errorf("score state = %+v, expected one missed shot", snap.Score)
	}
	if snap.Lives.Lives != snap.Lives.MaxLives {
		t.Errorf("missed shot cost a life: %+v", snap.Lives)
	}
}

func TestExpiredTargetCostsLife(t *testing.T) {
	g := newGame(t, 11)

	ticks := int(g.cfg.TargetLifetime*60) + 2
	for i := 0; i < ticks; i++ {
		g.Step(core.NewInputFrame())
	}

	snap := g.session.Snapshot()
	if snap.Lives.Lives != snap.Lives.MaxLives-1 {
		t.Errorf("lives = %d, expected %d", snap.Lives.Lives, snap.Lives.MaxLives-1)
	}
	if snap.Score.Combo != 0 {
		t.Errorf("combo = %d, expected 0", snap.Score.Combo)
	}
}

func TestIgnoredTargetsEndSession(t *testing.T) {
	g := newGame(t, 3)

	for i := 0; i < 60*60 && !g.State().Result; i++ {
		g.Step(core.NewInputFrame())
	}

	state := g.State()
	if !state.GameOver || !state.Result {
		t.Fatalf("state = %+v, expected the result screen", state)
	}
	if state.Lives != 0 {
		t.Errorf("lives = %d, expected 0", state.Lives)
	}
}

func TestPauseFreezesField(t *testing.T) {
	g := newGame(t, 5)
	g.Step(core.NewInputFrame())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("pause action did not pause")
	}

	before := g.targets.Targets()[0]
	for i := 0; i < 600; i++ {
		g.Step(core.NewInputFrame())
	}
	after := g.targets.Targets()[0]
	if before != after {
		t.Errorf("target changed while paused: %+v -> %+v", before, after)
	}
	if g.session.GameTime() > 0.05 {
		t.Errorf("game time advanced while paused: %g", g.session.GameTime())
	}
}

func TestCrosshairStaysInArena(t *testing.T) {
	g := newGame(t, 1)

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	in.Set(core.ActionUp)
	for i := 0; i < 300; i++ {
		g.Step(in)
	}
	if g.crosshair.X != 0 || g.crosshair.Y != 0 {
		t.Errorf("crosshair = %+v, expected clamped to (0, 0)", g.crosshair)
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() (int, []Target) {
		g := newGame(t, 12345)
		for i := 0; i < 900; i++ {
			in := core.NewInputFrame()
			if i%20 == 0 {
				in.Set(core.ActionFire)
			}
			if i%7 == 0 {
				in.Set(core.ActionRight)
			}
			g.Step(in)
		}
		return g.State().Score, append([]Target(nil), g.targets.Targets()...)
	}

	score1, targets1 := run()
	score2, targets2 := run()

	if score1 != score2 {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", score1, score2)
	}
	if len(targets1) != len(targets2) {
		t.Fatalf("Determinism failed: target counts differ. Run1=%d, Run2=%d", len(targets1), len(targets2))
	}
	for i := range targets1 {
		if targets1[i] != targets2[i] {
			t.Errorf("Determinism failed: target %d differs: %+v vs %+v", i, targets1[i], targets2[i])
		}
	}
}

func TestRetryClearsField(t *testing.T) {
	g := newGame(t, 3)
	for i := 0; i < 60*60 && !g.State().Result; i++ {
		g.Step(core.NewInputFrame())
	}
	firstID := g.session.SessionID()

	g.session.Retry()

	if len(g.targets.Targets()) != 0 {
		t.Errorf("targets survived retry: %d", len(g.targets.Targets()))
	}
	if g.session.Phase() != session.PhasePlaying {
		t.Errorf("phase after retry = %v, expected playing", g.session.Phase())
	}
	if g.session.SessionID() == firstID {
		t.Errorf("retry kept session ID %q", firstID)
	}
}

func TestWindIsBoundedAndSmooth(t *testing.T) {
	w := NewWind(99, 60)
	prev := w.At(0)
	for i := 1; i <= 1000; i++ {
		v := w.At(float64(i) / 60)
		if math.Abs(v) > 60 {
			t.Fatalf("wind %g exceeds strength", v)
		}
		if math.Abs(v-prev) > 5 {
			t.Fatalf("wind jumped from %g to %g in one tick", prev, v)
		}
		prev = v
	}

	if NewWind(99, 60).At(3.5) != w.At(3.5) {
		t.Error("wind is not deterministic for a seed")
	}
}

func TestRenderDrawsCrosshair(t *testing.T) {
	g := newGame(t, 7)
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 22)
	g.Render(screen)

	if got := screen.Get(40, 11); got != CrosshairChar {
		t.Errorf("cell under crosshair = %q, expected %q", got, CrosshairChar)
	}
}

func TestAutopilotClearsEasyTier(t *testing.T) {
	g := newGame(t, 5)

	for i := 0; i < 600; i++ {
		g.Step(g.Autopilot())
	}

	snap := g.session.Snapshot()
	if snap.Score.Hits < 4 {
		t.Errorf("hits = %d, expected the bot to clear at least 4 targets", snap.Score.Hits)
	}
	if snap.Score.TotalShots != snap.Score.Hits {
		t.Errorf("shots = %d, hits = %d; the bot should never miss on easy", snap.Score.TotalShots, snap.Score.Hits)
	}
	if snap.Lives.Lives != 3 {
		t.Errorf("lives = %d, expected no expired targets", snap.Lives.Lives)
	}
}
