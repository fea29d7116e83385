package sharpshooter

import (
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"

	"github.com/vovakirdan/minigame-engine/internal/config"
	"github.com/vovakirdan/minigame-engine/internal/core"
	"github.com/vovakirdan/minigame-engine/internal/difficulty"
	"github.com/vovakirdan/minigame-engine/internal/scoring"
)

// windFrequency is how fast the wind field is sampled along game time.
const windFrequency = 0.15

// Target is a circle the player has to shoot before its lifetime runs out.
type Target struct {
	Pos      core.Vec2
	Dir      core.Vec2 // unit heading, used when targets move
	Radius   float64
	Age      float64
	Lifetime float64
}

// Remaining returns the fraction of lifetime left, 1 at spawn and 0 at expiry.
func (t Target) Remaining() float64 {
	if t.Lifetime <= 0 {
		return 0
	}
	return core.ClampF(1-t.Age/t.Lifetime, 0, 1)
}

// TargetManager handles spawning, movement and expiry of targets.
type TargetManager struct {
	targets    []Target
	rng        *rand.Rand
	cfg        config.Sharpshooter
	spawnTimer float64
}

// NewTargetManager creates a manager with the given RNG seed.
func NewTargetManager(seed int64, cfg config.Sharpshooter) *TargetManager {
	m := &TargetManager{
		targets: make([]Target, 0, cfg.MaxTargets),
		cfg:     cfg,
	}
	m.Reset(seed)
	return m
}

// Reset removes all targets and reseeds the RNG. The first target spawns on
// the next update.
func (m *TargetManager) Reset(seed int64) {
	m.rng = rand.New(rand.NewSource(seed))
	m.Clear()
}

// Clear removes all targets and restarts the spawn timer.
func (m *TargetManager) Clear() {
	m.targets = m.targets[:0]
	m.spawnTimer = 0
}

// Targets returns the live targets.
func (m *TargetManager) Targets() []Target {
	return m.targets
}

// Update ages and moves targets and spawns new ones per the active profile.
// wind is a horizontal drift in units per second. It returns how many targets
// expired this tick.
func (m *TargetManager) Update(dt float64, p difficulty.Profile, wind float64) int {
	expired := 0
	kept := m.targets[:0]
	for _, t := range m.targets {
		t.Age += dt
		if t.Age >= t.Lifetime {
			expired++
			continue
		}
		if p.MovingTargets {
			t.Pos = t.Pos.Add(t.Dir.Scale(m.cfg.TargetSpeed * p.SpeedMultiplier * dt))
		}
		if p.WindEffect {
			t.Pos.X += wind * dt
		}
		m.bounce(&t)
		kept = append(kept, t)
	}
	m.targets = kept

	m.spawnTimer -= dt
	if m.spawnTimer <= 0 {
		if len(m.targets) < m.cfg.MaxTargets {
			m.spawn(p)
		}
		m.spawnTimer = p.SpawnInterval
	}

	return expired
}

// bounce reflects a target off the arena walls.
func (m *TargetManager) bounce(t *Target) {
	maxX := m.cfg.ArenaWidth - t.Radius
	maxY := m.cfg.ArenaHeight - t.Radius

	if t.Pos.X < t.Radius || t.Pos.X > maxX {
		t.Dir.X = -t.Dir.X
		t.Pos.X = core.ClampF(t.Pos.X, t.Radius, maxX)
	}
	if t.Pos.Y < t.Radius || t.Pos.Y > maxY {
		t.Dir.Y = -t.Dir.Y
		t.Pos.Y = core.ClampF(t.Pos.Y, t.Radius, maxY)
	}
}

func (m *TargetManager) spawn(p difficulty.Profile) {
	radius := m.cfg.TargetRadius * p.SizeMultiplier
	angle := m.rng.Float64() * 2 * math.Pi

	m.targets = append(m.targets, Target{
		Pos: core.V(
			radius+m.rng.Float64()*(m.cfg.ArenaWidth-2*radius),
			radius+m.rng.Float64()*(m.cfg.ArenaHeight-2*radius),
		),
		Dir:      core.V(math.Cos(angle), math.Sin(angle)),
		Radius:   radius,
		Lifetime: m.cfg.TargetLifetime,
	})
}

// Nearest returns the index of the target closest to p and its distance.
func (m *TargetManager) Nearest(p core.Vec2) (int, float64, bool) {
	best, bestDist := -1, math.Inf(1)
	for i, t := range m.targets {
		if d := t.Pos.Dist(p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist, best >= 0
}

// Remove deletes the target at index i.
func (m *TargetManager) Remove(i int) {
	m.targets = append(m.targets[:i], m.targets[i+1:]...)
}

// ResolveShot classifies a shot landing dist units from the center of a
// target. A shot within radius*tolerance hits; within radius*perfectRatio it
// is perfect.
func ResolveShot(dist, radius, tolerance, perfectRatio float64) scoring.HitResult {
	res := scoring.HitResult{Distance: dist}
	if dist <= radius*tolerance {
		res.Hit = true
		res.Perfect = dist <= radius*perfectRatio
	}
	return res
}

// Wind is a smooth horizontal drift sampled from simplex noise.
type Wind struct {
	noise    opensimplex.Noise
	strength float64
}

// NewWind creates a wind field for the seed with a peak of strength units
// per second.
func NewWind(seed int64, strength float64) *Wind {
	return &Wind{noise: opensimplex.NewNormalized(seed), strength: strength}
}

// At returns the drift at game time t, in [-strength, strength].
func (w *Wind) At(t float64) float64 {
	return (w.noise.Eval2(t*windFrequency, 0)*2 - 1) * w.strength
}
