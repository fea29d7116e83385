// Package session implements the controller that owns one play-through of a
// minigame: its lifecycle phase, game clock, and the difficulty, scoring and
// life subsystems it composes.
package session

// Phase is the top-level lifecycle state of a session.
type Phase int

const (
	PhaseReady    Phase = iota // waiting for Start
	PhasePlaying               // gameplay logic runs
	PhasePaused                // gameplay suspended, rendering continues
	PhaseGameOver              // lives exhausted, failure feedback plays
	PhaseResult                // summary screen, waiting for retry/continue/exit
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "gameover"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// IsOver reports whether the session has ended (gameover or result).
func (p Phase) IsOver() bool {
	return p == PhaseGameOver || p == PhaseResult
}

// MarshalText encodes the phase by name, e.g. in JSON snapshots.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
