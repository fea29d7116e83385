// Package config provides YAML-based configuration for the session engine,
// the bundled minigames and the stage catalog.
package config

import (
	"github.com/vovakirdan/minigame-engine/internal/difficulty"
	"github.com/vovakirdan/minigame-engine/internal/lives"
	"github.com/vovakirdan/minigame-engine/internal/physics"
	"github.com/vovakirdan/minigame-engine/internal/scoring"
)

// Config is the root of minigame.yaml.
type Config struct {
	Session      Session      `yaml:"session"`
	Sharpshooter Sharpshooter `yaml:"sharpshooter"`
	Drift        Drift        `yaml:"drift"`
}

// Session configures the engine shared by every minigame.
type Session struct {
	ResultDelay float64          `yaml:"result_delay"` // seconds from gameover to result
	Lives       LivesConfig      `yaml:"lives"`
	Scoring     scoring.Params   `yaml:"scoring"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// LivesConfig sets the life counter bounds. Initial 0 means start at Max.
type LivesConfig struct {
	Max     int `yaml:"max"`
	Initial int `yaml:"initial"`
}

// DifficultyConfig defines the tier table and how progression runs.
type DifficultyConfig struct {
	Enabled    bool                 `yaml:"enabled"`
	TimeOffset float64              `yaml:"time_offset"` // seconds skipped at session start
	Tiers      []difficulty.Profile `yaml:"tiers"`
}

// Sharpshooter configures the aim-and-shoot minigame. Distances are world units.
type Sharpshooter struct {
	ArenaWidth     float64 `yaml:"arena_width"`
	ArenaHeight    float64 `yaml:"arena_height"`
	TargetRadius   float64 `yaml:"target_radius"`
	TargetSpeed    float64 `yaml:"target_speed"`    // units per second at speed multiplier 1
	TargetLifetime float64 `yaml:"target_lifetime"` // seconds before a target expires
	MaxTargets     int     `yaml:"max_targets"`
	CrosshairSpeed float64 `yaml:"crosshair_speed"` // units per second
	PerfectRatio   float64 `yaml:"perfect_ratio"`   // fraction of radius counted as perfect
	WindStrength   float64 `yaml:"wind_strength"`   // peak wind drift, units per second
}

// Drift configures the survival minigame. Speeds are per reference frame.
type Drift struct {
	ArenaWidth       float64 `yaml:"arena_width"`
	ArenaHeight      float64 `yaml:"arena_height"`
	ShipRadius       float64 `yaml:"ship_radius"`
	ShipAccel        float64 `yaml:"ship_accel"`
	ShipMaxSpeed     float64 `yaml:"ship_max_speed"`
	HazardRadius     float64 `yaml:"hazard_radius"`
	HazardSpeed      float64 `yaml:"hazard_speed"`
	HazardLifetime   float64 `yaml:"hazard_lifetime"` // seconds a hazard stays in play
	NearMissMargin   float64 `yaml:"near_miss_margin"`
	KnockbackImpulse float64 `yaml:"knockback_impulse"`
}

// StageFile is the root of stages.yaml.
type StageFile struct {
	Stages []physics.Stage `yaml:"stages"`
}

// Default returns the hardcoded configuration used when no YAML is readable.
func Default() Config {
	return Config{
		Session: Session{
			ResultDelay: 1.5,
			Lives:       LivesConfig{Max: lives.DefaultMaxLives},
			Scoring:     scoring.DefaultParams(),
			Difficulty: DifficultyConfig{
				Enabled: true,
				Tiers:   difficulty.DefaultProfiles(),
			},
		},
		Sharpshooter: Sharpshooter{
			ArenaWidth:     800,
			ArenaHeight:    480,
			TargetRadius:   48,
			TargetSpeed:    90,
			TargetLifetime: 4,
			MaxTargets:     4,
			CrosshairSpeed: 420,
			PerfectRatio:   0.25,
			WindStrength:   60,
		},
		Drift: Drift{
			ArenaWidth:       800,
			ArenaHeight:      480,
			ShipRadius:       14,
			ShipAccel:        0.9,
			ShipMaxSpeed:     9,
			HazardRadius:     18,
			HazardSpeed:      3,
			HazardLifetime:   8,
			NearMissMargin:   30,
			KnockbackImpulse: 6,
		},
	}
}

// DefaultStages returns the hardcoded stage list.
func DefaultStages() []physics.Stage {
	return []physics.Stage{
		{ID: "calm", Name: "Calm Waters", Modifiers: physics.Modifiers{Friction: 0.99, Bounce: 0.8, KnockbackMultiplier: 1}},
		{ID: "heavy", Name: "Heavy Sky", Modifiers: physics.Modifiers{Gravity: 0.15, Friction: 0.995, Bounce: 0.9, KnockbackMultiplier: 1.2}},
	}
}
