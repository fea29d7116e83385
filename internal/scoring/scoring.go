// Package scoring accumulates score and combo from a stream of hit/miss events.
package scoring

import "math"

// HitResult describes one resolved shot. Distance is informational only.
type HitResult struct {
	Hit      bool
	Perfect  bool
	Distance float64 // distance from the target center, world units
}

// Params tunes the point formula.
type Params struct {
	BasePoints          float64 `yaml:"base_points"`
	PerfectMultiplier   float64 `yaml:"perfect_multiplier"`
	ComboStep           float64 `yaml:"combo_step"`
	ComboCap            float64 `yaml:"combo_cap"`
	SpeedBonus          float64 `yaml:"speed_bonus"`
	SpeedBonusThreshold float64 `yaml:"speed_bonus_threshold"` // seconds between hits
}

// DefaultParams returns the built-in scoring parameters.
func DefaultParams() Params {
	return Params{
		BasePoints:          100,
		PerfectMultiplier:   2.0,
		ComboStep:           0.1,
		ComboCap:            3.0,
		SpeedBonus:          50,
		SpeedBonusThreshold: 0.5,
	}
}

// State is a copy of the accumulated counters.
type State struct {
	Score       int `json:"score"`
	Combo       int `json:"combo"`
	MaxCombo    int `json:"max_combo"`
	PerfectHits int `json:"perfect_hits"`
	TotalShots  int `json:"total_shots"`
	Hits        int `json:"hits"`
}

// System is the score accumulator for one session.
type System struct {
	params      Params
	state       State
	lastHitTime float64
	hasHit      bool
}

// New creates a score system with the given parameters.
func New(params Params) *System {
	return &System{params: params}
}

// Params returns the scoring parameters.
func (s *System) Params() Params {
	return s.params
}

// RecordShot counts a shot at gameTime and returns the points awarded.
func (s *System) RecordShot(result HitResult, gameTime float64) int {
	s.state.TotalShots++

	// A missed shot always breaks the combo.
	if !result.Hit {
		s.state.Combo = 0
		return 0
	}

	s.state.Hits++
	s.state.Combo++
	if s.state.Combo > s.state.MaxCombo {
		s.state.MaxCombo = s.state.Combo
	}

	points := s.params.BasePoints
	if result.Perfect {
		points *= s.params.PerfectMultiplier
		s.state.PerfectHits++
	}

	comboMultiplier := math.Min(1+float64(s.state.Combo)*s.params.ComboStep, s.params.ComboCap)
	points *= comboMultiplier

	if s.hasHit && gameTime-s.lastHitTime < s.params.SpeedBonusThreshold {
		points += s.params.SpeedBonus
	}

	s.lastHitTime = gameTime
	s.hasHit = true

	awarded := int(math.Round(points))
	s.state.Score += awarded
	return awarded
}

// RecordMiss resets the combo for an expired or avoided target. Shot counters
// are untouched.
func (s *System) RecordMiss() {
	s.state.Combo = 0
}

// Accuracy returns hits as a percentage of shots, 0 before the first shot.
func (s *System) Accuracy() float64 {
	if s.state.TotalShots == 0 {
		return 0
	}
	return float64(s.state.Hits) / float64(s.state.TotalShots) * 100
}

// State returns a copy of the counters.
func (s *System) State() State {
	return s.state
}

// Reset zeroes every counter and the last hit time.
func (s *System) Reset() {
	s.state = State{}
	s.lastHitTime = 0
	s.hasHit = false
}
