package physics

import (
	"math"
	"testing"

	"github.com/vovakirdan/minigame-engine/internal/core"
)

const eps = 1e-9

func TestApplyGravity(t *testing.T) {
	got := ApplyGravity(0, 1.0/60.0, 0.15)
	if math.Abs(got-0.15) > eps {
		t.Errorf("ApplyGravity(0, 1/60, 0.15) = %f, expected 0.15", got)
	}

	if got := ApplyGravityScaled(2, 0.5, 0.1, 2); math.Abs(got-(2+0.1*0.5*60*2)) > eps {
		t.Errorf("ApplyGravityScaled() = %f", got)
	}
}

func TestApplyGravityIgnoresNonPositive(t *testing.T) {
	if got := ApplyGravity(3, 1, 0); got != 3 {
		t.Errorf("zero gravity changed vy to %f", got)
	}
	if got := ApplyGravity(3, 1, -1); got != 3 {
		t.Errorf("negative gravity changed vy to %f", got)
	}
}

func TestGravityFrameRateIndependent(t *testing.T) {
	// One second at 30fps and at 120fps accumulate the same velocity.
	slow, fast := 0.0, 0.0
	for i := 0; i < 30; i++ {
		slow = ApplyGravity(slow, 1.0/30.0, 0.2)
	}
	for i := 0; i < 120; i++ {
		fast = ApplyGravity(fast, 1.0/120.0, 0.2)
	}
	if math.Abs(slow-fast) > 1e-6 {
		t.Errorf("gravity depends on frame rate: %f vs %f", slow, fast)
	}
}

func TestApplyVortexDeadzone(t *testing.T) {
	v := Vortex{Center: core.V(0.5, 0.5), Strength: 3}
	// Center is (400, 300) in an 800x600 arena; entity exactly 50 away.
	pos := core.V(350, 300)
	vel := core.V(1, -2)

	got := ApplyVortex(pos, vel, 800, 600, v, 1.0/60.0)
	if got != vel {
		t.Errorf("ApplyVortex at deadzone = %v, expected unchanged %v", got, vel)
	}
}

func TestApplyVortexPullsTowardCenter(t *testing.T) {
	v := Vortex{Center: core.V(0.5, 0.5), Strength: 3}
	pos := core.V(300, 300) // 100 left of center
	vel := core.V(0, 0)
	dt := 1.0 / 60.0

	got := ApplyVortex(pos, vel, 800, 600, v, dt)

	expected := (3 / (100 * 0.01)) * dt
	if math.Abs(got.X-expected) > eps || math.Abs(got.Y) > eps {
		t.Errorf("ApplyVortex = %v, expected (%f, 0)", got, expected)
	}
	if got.X <= 0 || math.IsInf(got.X, 0) {
		t.Errorf("pull should be finite and positive toward center, got %v", got)
	}
}

func TestApplyVortexInverseDistance(t *testing.T) {
	v := Vortex{Center: core.V(0, 0), Strength: 1}
	near := ApplyVortex(core.V(100, 0), core.Vec2{}, 1000, 1000, v, 1)
	far := ApplyVortex(core.V(400, 0), core.Vec2{}, 1000, 1000, v, 1)

	ratio := near.Len() / far.Len()
	if math.Abs(ratio-4) > 1e-6 {
		t.Errorf("pull ratio near/far = %f, expected 4 (inverse distance)", ratio)
	}
}

func TestApplyVortexWithinCustomDeadzone(t *testing.T) {
	v := Vortex{Center: core.V(0.5, 0.5), Strength: 1}
	pos := core.V(450, 300)

	if got := ApplyVortexWithin(pos, core.Vec2{}, 800, 600, v, 1, 10); got == (core.Vec2{}) {
		t.Error("entity outside a 10-unit deadzone should be pulled")
	}
	if got := ApplyVortexWithin(pos, core.Vec2{}, 800, 600, v, 1, 60); got != (core.Vec2{}) {
		t.Errorf("entity inside a 60-unit deadzone was pulled: %v", got)
	}
}

func TestCatalog(t *testing.T) {
	c, err := NewCatalog([]Stage{
		{ID: "calm", Name: "Calm", Modifiers: DefaultModifiers()},
		{ID: "maelstrom", Name: "Maelstrom", Modifiers: Modifiers{Friction: 0.98, Bounce: 0.7, KnockbackMultiplier: 1.5, Vortex: &Vortex{Center: core.V(0.5, 0.5), Strength: 2}}},
	})
	if err != nil {
		t.Fatalf("NewCatalog() failed: %v", err)
	}

	st, ok := c.Get("maelstrom")
	if !ok || st.Modifiers.Vortex == nil {
		t.Fatalf("Get(maelstrom) = %+v, %v", st, ok)
	}
	if first, _ := c.First(); first.ID != "calm" {
		t.Errorf("First() = %q, expected calm", first.ID)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should fail")
	}

	if _, err := NewCatalog([]Stage{{ID: "a"}, {ID: "a"}}); err == nil {
		t.Error("duplicate ids should be rejected")
	}
}
