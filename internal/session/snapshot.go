package session

import (
	"github.com/vovakirdan/minigame-engine/internal/difficulty"
	"github.com/vovakirdan/minigame-engine/internal/lives"
	"github.com/vovakirdan/minigame-engine/internal/scoring"
)

// Snapshot is the read-only view of a session for HUDs, result screens and
// persistence. It is assembled on every call.
type Snapshot struct {
	SessionID  string             `json:"session_id"`
	Phase      Phase              `json:"phase"`
	GameTime   float64            `json:"game_time"`
	Tier       difficulty.Tier    `json:"tier"`
	TierName   string             `json:"tier_name"`
	Profile    difficulty.Profile `json:"-"`
	Score      scoring.State      `json:"score"`
	Accuracy   float64            `json:"accuracy"`
	Lives      lives.State        `json:"lives"`
	IsGameOver bool               `json:"is_game_over"`
	IsPaused   bool               `json:"is_paused"`
	Continues  int                `json:"continues"`
}

// Snapshot assembles the current session state. It has no side effects.
func (c *Controller) Snapshot() Snapshot {
	profile := c.difficulty.Profile()
	return Snapshot{
		SessionID:  c.id,
		Phase:      c.phase,
		GameTime:   c.gameTime,
		Tier:       c.difficulty.Tier(),
		TierName:   profile.Name,
		Profile:    profile,
		Score:      c.scorer.State(),
		Accuracy:   c.scorer.Accuracy(),
		Lives:      c.lives.State(),
		IsGameOver: c.phase.IsOver(),
		IsPaused:   c.phase == PhasePaused,
		Continues:  c.continues,
	}
}
