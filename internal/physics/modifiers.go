// Package physics holds the per-stage force rules a host simulation applies to
// moving entities each frame. It is not a physics engine: there is no
// collision detection, only velocity contributions.
package physics

import "github.com/vovakirdan/minigame-engine/internal/core"

// ReferenceFPS is the frame rate stage constants are tuned against.
const ReferenceFPS = 60.0

// DefaultVortexDeadzone is the radius, in world units, inside which a vortex
// stops pulling.
const DefaultVortexDeadzone = 50.0

// vortexDistanceScale converts world distance into the vortex falloff unit.
const vortexDistanceScale = 0.01

// Vortex is a point attractor at a normalized (0-1) arena coordinate.
type Vortex struct {
	Center   core.Vec2 `yaml:"center"`
	Strength float64   `yaml:"strength"`
}

// Modifiers are the constants of one stage. The host applies them as:
// velocity *= Friction each frame, reflected velocity *= Bounce on boundary
// contact, knockback velocity *= KnockbackMultiplier on a hit, and optionally
// ApplyGravity and ApplyVortex.
type Modifiers struct {
	Gravity             float64 `yaml:"gravity"`
	Friction            float64 `yaml:"friction"`
	Bounce              float64 `yaml:"bounce"`
	KnockbackMultiplier float64 `yaml:"knockback_multiplier"`
	Vortex              *Vortex `yaml:"vortex,omitempty"`
}

// DefaultModifiers is a neutral stage: no gravity, no drag, elastic walls.
func DefaultModifiers() Modifiers {
	return Modifiers{
		Gravity:             0,
		Friction:            1,
		Bounce:              1,
		KnockbackMultiplier: 1,
	}
}

// ApplyGravity adds downward acceleration to vy at the reference scale.
func ApplyGravity(vy, dt, gravity float64) float64 {
	return ApplyGravityScaled(vy, dt, gravity, 1)
}

// ApplyGravityScaled adds gravity*dt*60*scale to vy when gravity is positive.
// Gravity only ever pulls toward +y.
func ApplyGravityScaled(vy, dt, gravity, scale float64) float64 {
	if gravity <= 0 {
		return vy
	}
	return vy + gravity*dt*ReferenceFPS*scale
}

// ApplyVortex pulls vel toward the vortex center using the default deadzone.
func ApplyVortex(pos, vel core.Vec2, width, height float64, v Vortex, dt float64) core.Vec2 {
	return ApplyVortexWithin(pos, vel, width, height, v, dt, DefaultVortexDeadzone)
}

// ApplyVortexWithin pulls vel toward the vortex center scaled to the
// width x height arena. The pull is strength/(dist*0.01)*dt, an inverse
// distance law. Entities at or inside minDistance are left alone.
func ApplyVortexWithin(pos, vel core.Vec2, width, height float64, v Vortex, dt, minDistance float64) core.Vec2 {
	center := core.V(v.Center.X*width, v.Center.Y*height)
	toCenter := center.Sub(pos)
	dist := toCenter.Len()
	if dist <= minDistance {
		return vel
	}

	force := (v.Strength / (dist * vortexDistanceScale)) * dt
	return vel.Add(toCenter.Scale(force / dist))
}
