package drift

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/minigame-engine/internal/config"
	"github.com/vovakirdan/minigame-engine/internal/core"
	"github.com/vovakirdan/minigame-engine/internal/difficulty"
)

// homingRate is how strongly moving hazards turn toward the ship, per frame.
const homingRate = 0.03

// Ship is the player's craft.
type Ship struct {
	Pos    core.Vec2
	Vel    core.Vec2 // units per reference frame
	Radius float64
}

// Hazard is a drifting obstacle. Leaving the arena or outliving its lifetime
// counts as a dodge.
type Hazard struct {
	Pos      core.Vec2
	Vel      core.Vec2 // units per reference frame
	Speed    float64   // cruise speed kept while homing
	Radius   float64
	Age      float64
	NearMiss bool    // passed within the near-miss margin
	Closest  float64 // smallest gap to the ship so far
}

// HazardField handles spawning of hazards.
type HazardField struct {
	hazards    []Hazard
	rng        *rand.Rand
	cfg        config.Drift
	spawnTimer float64
}

// NewHazardField creates a field with the given RNG seed.
func NewHazardField(seed int64, cfg config.Drift) *HazardField {
	f := &HazardField{
		hazards: make([]Hazard, 0, 16),
		cfg:     cfg,
	}
	f.Reset(seed)
	return f
}

// Reset removes all hazards and reseeds the RNG.
func (f *HazardField) Reset(seed int64) {
	f.rng = rand.New(rand.NewSource(seed))
	f.Clear()
}

// Clear removes all hazards. The next spawn waits a full interval.
func (f *HazardField) Clear() {
	f.hazards = f.hazards[:0]
	f.spawnTimer = 1
}

// Hazards returns the live hazards.
func (f *HazardField) Hazards() []Hazard {
	return f.hazards
}

// Tick advances the spawn timer and spawns a hazard aimed at target when it
// runs out.
func (f *HazardField) Tick(dt float64, p difficulty.Profile, target core.Vec2) {
	f.spawnTimer -= dt
	if f.spawnTimer > 0 {
		return
	}
	f.spawnTimer = p.SpawnInterval
	f.Spawn(p, target)
}

// Spawn adds a hazard on a random edge heading roughly toward target.
func (f *HazardField) Spawn(p difficulty.Profile, target core.Vec2) {
	radius := f.cfg.HazardRadius * p.SizeMultiplier
	w, h := f.cfg.ArenaWidth, f.cfg.ArenaHeight

	var pos core.Vec2
	switch f.rng.Intn(4) {
	case 0:
		pos = core.V(f.rng.Float64()*w, -radius)
	case 1:
		pos = core.V(w+radius, f.rng.Float64()*h)
	case 2:
		pos = core.V(f.rng.Float64()*w, h+radius)
	default:
		pos = core.V(-radius, f.rng.Float64()*h)
	}

	aim := target.Sub(pos).Normalized()
	jitter := (f.rng.Float64() - 0.5) * math.Pi / 4
	sin, cos := math.Sincos(jitter)
	dir := core.V(aim.X*cos-aim.Y*sin, aim.X*sin+aim.Y*cos)

	speed := f.cfg.HazardSpeed * p.SpeedMultiplier
	f.hazards = append(f.hazards, Hazard{
		Pos:     pos,
		Vel:     dir.Scale(speed),
		Speed:   speed,
		Radius:  radius,
		Closest: math.Inf(1),
	})
}

// Add inserts a hazard directly.
func (f *HazardField) Add(h Hazard) {
	if h.Closest == 0 {
		h.Closest = math.Inf(1)
	}
	f.hazards = append(f.hazards, h)
}

// Remove deletes the hazard at index i.
func (f *HazardField) Remove(i int) {
	f.hazards = append(f.hazards[:i], f.hazards[i+1:]...)
}

// outside reports whether a hazard has fully left the arena.
func (f *HazardField) outside(h Hazard) bool {
	m := h.Radius * 2
	return h.Pos.X < -m || h.Pos.X > f.cfg.ArenaWidth+m ||
		h.Pos.Y < -m || h.Pos.Y > f.cfg.ArenaHeight+m
}

// steer turns v toward target keeping speed.
func steer(v core.Vec2, from, target core.Vec2, speed, k float64) core.Vec2 {
	turned := v.Add(target.Sub(from).Normalized().Scale(speed * homingRate * k))
	return turned.Normalized().Scale(speed)
}
