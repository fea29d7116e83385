// Package difficulty maps elapsed session time to a difficulty tier and the
// tunable parameters of that tier.
package difficulty

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Tier indexes the ordered profile table. Lower tiers are easier.
type Tier int

// Tiers of the default table.
const (
	TierEasy Tier = iota
	TierMedium
	TierHard
	TierInsane
)

// String returns the default name of the tier.
func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierMedium:
		return "medium"
	case TierHard:
		return "hard"
	case TierInsane:
		return "insane"
	default:
		return fmt.Sprintf("tier-%d", int(t))
	}
}

// Profile is the parameter set of one tier, active for game times in [Start, End).
type Profile struct {
	Tier            Tier    `yaml:"-"`
	Name            string  `yaml:"name"`
	Start           float64 `yaml:"start"`
	End             float64 `yaml:"end"` // +Inf on the last tier
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	SizeMultiplier  float64 `yaml:"size_multiplier"`
	HitTolerance    float64 `yaml:"hit_tolerance"`
	SpawnInterval   float64 `yaml:"spawn_interval"` // seconds between spawns
	MovingTargets   bool    `yaml:"moving_targets"`
	WindEffect      bool    `yaml:"wind_effect"`
}

// Contains reports whether gameTime falls within [Start, End).
func (p Profile) Contains(gameTime float64) bool {
	return gameTime >= p.Start && gameTime < p.End
}

// DefaultProfiles returns the built-in easy/medium/hard/insane table.
func DefaultProfiles() []Profile {
	return []Profile{
		{Tier: TierEasy, Name: "easy", Start: 0, End: 30, SpeedMultiplier: 1.0, SizeMultiplier: 1.0, HitTolerance: 1.0, SpawnInterval: 2.0},
		{Tier: TierMedium, Name: "medium", Start: 30, End: 60, SpeedMultiplier: 1.3, SizeMultiplier: 0.85, HitTolerance: 0.9, SpawnInterval: 1.6, MovingTargets: true},
		{Tier: TierHard, Name: "hard", Start: 60, End: 90, SpeedMultiplier: 1.6, SizeMultiplier: 0.7, HitTolerance: 0.8, SpawnInterval: 1.2, MovingTargets: true, WindEffect: true},
		{Tier: TierInsane, Name: "insane", Start: 90, End: math.Inf(1), SpeedMultiplier: 2.0, SizeMultiplier: 0.55, HitTolerance: 0.7, SpawnInterval: 0.9, MovingTargets: true, WindEffect: true},
	}
}

// Normalize returns a copy of the table sorted by Start with Tier indexes
// assigned and an unset End on the last entry widened to +Inf.
func Normalize(profiles []Profile) []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })

	for i := range out {
		out[i].Tier = Tier(i)
		if out[i].Name == "" {
			out[i].Name = out[i].Tier.String()
		}
	}
	if n := len(out); n > 0 && out[n-1].End == 0 {
		out[n-1].End = math.Inf(1)
	}
	return out
}

// Validate checks that a normalized table is exhaustive over [0, +Inf).
func Validate(profiles []Profile) error {
	if len(profiles) == 0 {
		return errors.New("difficulty: profile table is empty")
	}

	var errs []error
	if profiles[0].Start != 0 {
		errs = append(errs, fmt.Errorf("difficulty: first tier %q starts at %g, expected 0", profiles[0].Name, profiles[0].Start))
	}
	for i, p := range profiles {
		if p.End <= p.Start {
			errs = append(errs, fmt.Errorf("difficulty: tier %q has empty range [%g, %g)", p.Name, p.Start, p.End))
		}
		if i+1 < len(profiles) && p.End != profiles[i+1].Start {
			errs = append(errs, fmt.Errorf("difficulty: tier %q ends at %g but %q starts at %g", p.Name, p.End, profiles[i+1].Name, profiles[i+1].Start))
		}
		if p.SpawnInterval <= 0 {
			errs = append(errs, fmt.Errorf("difficulty: tier %q needs a positive spawn interval", p.Name))
		}
	}
	if last := profiles[len(profiles)-1]; !math.IsInf(last.End, 1) {
		errs = append(errs, fmt.Errorf("difficulty: last tier %q must be unbounded, ends at %g", last.Name, last.End))
	}
	return errors.Join(errs...)
}
