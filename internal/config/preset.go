package config

import "fmt"

// DifficultyPreset represents a named starting difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Empty means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyPreset adjusts lives and progression for a preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	d := &cfg.Session.Difficulty
	switch preset {
	case DifficultyEasy:
		d.Enabled = true
		d.TimeOffset = 0
		cfg.Session.Lives = LivesConfig{Max: 5}
	case DifficultyNormal:
		d.Enabled = true
		d.TimeOffset = 0
	case DifficultyHard:
		d.Enabled = true
		// Skip the first tier
		if len(d.Tiers) > 1 {
			d.TimeOffset = d.Tiers[1].Start
		}
		cfg.Session.Lives = LivesConfig{Max: 2}
	case DifficultyFixed:
		d.Enabled = false
	}
}
