// Package core provides the small shared vocabulary of the minigame host:
// runtime configuration, semantic input actions, 2D vectors and a character
// screen buffer. It has no terminal dependencies so minigame logic stays pure
// and testable.
package core

// RuntimeConfig contains configuration passed to minigames at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickSeconds returns the fixed simulation step in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the coarse per-tick status a minigame reports to the platform.
// Detailed numbers live in the session snapshot.
type GameState struct {
	Score    int
	Lives    int
	GameOver bool // true in both the gameover and result phases
	Result   bool // true once the result summary should be shown
	Paused   bool
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
