package session

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigame-engine/internal/config"
	"github.com/vovakirdan/minigame-engine/internal/difficulty"
	"github.com/vovakirdan/minigame-engine/internal/lives"
	"github.com/vovakirdan/minigame-engine/internal/scoring"
)

// Difficulty is the tier tracker the controller refreshes every playing tick.
type Difficulty interface {
	Update(gameTime float64) bool
	Reset()
	Tier() difficulty.Tier
	Profile() difficulty.Profile
	OnTierChange(fn difficulty.ChangeFunc)
}

// Scorer receives gameplay outcomes.
type Scorer interface {
	RecordShot(result scoring.HitResult, gameTime float64) int
	RecordMiss()
	Accuracy() float64
	State() scoring.State
	Reset()
}

// Lives is the failure counter that ends the session at zero.
type Lives interface {
	LoseLife()
	GainLife() bool
	Reset()
	State() lives.State
	OnLifeChange(fn func(lives, maxLives int))
	OnGameOver(fn func())
}

var (
	_ Difficulty = (*difficulty.Manager)(nil)
	_ Scorer     = (*scoring.System)(nil)
	_ Lives      = (*lives.System)(nil)
)

// Option customizes a Controller.
type Option func(*Controller)

// WithDifficulty replaces the tier tracker built from configuration.
func WithDifficulty(d Difficulty) Option {
	return func(c *Controller) { c.difficulty = d }
}

// WithScorer replaces the score system built from configuration.
func WithScorer(s Scorer) Option {
	return func(c *Controller) { c.scorer = s }
}

// WithLives replaces the life counter built from configuration.
func WithLives(l Lives) Option {
	return func(c *Controller) { c.lives = l }
}

// WithIDGenerator sets the source of session IDs (UUIDs by default).
func WithIDGenerator(g IDGenerator) Option {
	return func(c *Controller) { c.ids = g }
}

// WithResultDelay overrides how long the gameover phase lasts before result.
func WithResultDelay(seconds float64) Option {
	return func(c *Controller) { c.resultDelay = seconds }
}

// WithLogger enables debug logging of transitions.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller drives one session. It is not safe for concurrent use; the host
// calls it from a single frame loop.
type Controller struct {
	difficulty Difficulty
	scorer     Scorer
	lives      Lives
	ids        IDGenerator
	logger     *log.Logger
	hooks      hooks

	id          string
	phase       Phase
	gameTime    float64 // seconds of play, frozen outside PhasePlaying
	clock       float64 // seconds of every Update, for cosmetic animation
	resultDelay float64
	overElapsed float64 // time spent in PhaseGameOver
	continues   int
}

// New builds a controller from session configuration. Options may swap any
// subsystem for another implementation.
func New(cfg config.Session, opts ...Option) (*Controller, error) {
	c := &Controller{resultDelay: cfg.ResultDelay}
	for _, opt := range opts {
		opt(c)
	}

	if c.difficulty == nil {
		m, err := difficulty.NewManager(cfg.Difficulty.Tiers)
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		m.SetEnabled(cfg.Difficulty.Enabled)
		m.SetTimeOffset(cfg.Difficulty.TimeOffset)
		c.difficulty = m
	}
	if c.scorer == nil {
		c.scorer = scoring.New(cfg.Scoring)
	}
	if c.lives == nil {
		l := lives.New(cfg.Lives.Max)
		if cfg.Lives.Initial > 0 {
			l.ConfigureWithInitial(cfg.Lives.Max, cfg.Lives.Initial)
		}
		c.lives = l
	}
	if c.ids == nil {
		c.ids = UUIDGenerator{}
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}

	c.difficulty.OnTierChange(c.handleTierChange)
	c.lives.OnLifeChange(c.handleLifeChange)
	c.lives.OnGameOver(c.handleLivesExhausted)

	c.difficulty.Reset()
	c.id = c.ids.NextID()
	c.phase = PhaseReady
	return c, nil
}

// Start begins play from PhaseReady.
func (c *Controller) Start() {
	if c.phase != PhaseReady {
		return
	}
	c.setPhase(PhasePlaying)
}

// Pause suspends play.
func (c *Controller) Pause() {
	if c.phase != PhasePlaying {
		return
	}
	c.setPhase(PhasePaused)
}

// Resume returns from PhasePaused to play.
func (c *Controller) Resume() {
	if c.phase != PhasePaused {
		return
	}
	c.setPhase(PhasePlaying)
}

// TogglePause pauses a running session or resumes a paused one.
func (c *Controller) TogglePause() {
	switch c.phase {
	case PhasePlaying:
		c.Pause()
	case PhasePaused:
		c.Resume()
	}
}

// Reset returns to PhaseReady from any phase with a fresh game clock,
// subsystems at their initial values and a new session ID.
func (c *Controller) Reset() {
	c.gameTime = 0
	c.overElapsed = 0
	c.continues = 0
	c.difficulty.Reset()
	c.scorer.Reset()
	c.lives.Reset()
	c.id = c.ids.NextID()
	c.setPhase(PhaseReady)
}

// Retry restarts a finished session: retry listeners fire, then the session
// is reset and started.
func (c *Controller) Retry() {
	if c.phase != PhaseResult {
		return
	}
	fireAll(c.hooks.retryRequested)
	c.Reset()
	c.Start()
}

// Exit notifies exit listeners when leaving is allowed (paused or ended).
// The phase is unchanged; the host tears the minigame down.
func (c *Controller) Exit() {
	if c.phase != PhasePaused && !c.phase.IsOver() {
		return
	}
	fireAll(c.hooks.exitRequested)
}

// RequestContinue asks the registered collaborators for a continue grant.
// Each receives a one-shot grant/deny pair shared by all of them.
func (c *Controller) RequestContinue() {
	if !c.phase.IsOver() || len(c.hooks.continueRequest) == 0 {
		return
	}

	sessionID := c.id
	resolved := false
	grant := func() {
		// Stale grants from an earlier session are ignored.
		if resolved || c.id != sessionID {
			return
		}
		resolved = true
		c.ContinueWithExternalGrant()
	}
	deny := func() {
		if resolved {
			return
		}
		resolved = true
		c.logger.Debug("continue denied", "session", sessionID, "phase", c.phase)
	}

	for _, fn := range c.hooks.continueRequest {
		fn(grant, deny)
	}
}

// ContinueWithExternalGrant resumes an ended session with one extra life.
// The caller must already have confirmed the grant.
func (c *Controller) ContinueWithExternalGrant() {
	if !c.phase.IsOver() {
		return
	}
	c.lives.GainLife()
	c.continues++
	c.overElapsed = 0
	c.setPhase(PhasePlaying)
	fireAll(c.hooks.continued)
}

// Update advances the session by dt seconds. Outside PhasePlaying only the
// cosmetic clock and the gameover-to-result delay advance.
func (c *Controller) Update(dt float64) {
	c.clock += dt

	switch c.phase {
	case PhasePlaying:
		c.gameTime += dt
		c.difficulty.Update(c.gameTime)
	case PhaseGameOver:
		c.overElapsed += dt
		if c.overElapsed >= c.resultDelay {
			c.setPhase(PhaseResult)
		}
	}
}

// ReportHit forwards a resolved shot to scoring and returns the points
// awarded. Ignored unless playing.
func (c *Controller) ReportHit(result scoring.HitResult) int {
	if c.phase != PhasePlaying {
		return 0
	}
	return c.scorer.RecordShot(result, c.gameTime)
}

// ReportMiss records a failure: it counts as an unsuccessful attempt, so the
// combo breaks and accuracy drops, and a life is lost. Ignored unless playing.
func (c *Controller) ReportMiss() {
	if c.phase != PhasePlaying {
		return
	}
	c.scorer.RecordShot(scoring.HitResult{}, c.gameTime)
	c.lives.LoseLife()
}

// ReportLapse breaks the combo without counting a shot or costing a life.
// Ignored unless playing.
func (c *Controller) ReportLapse() {
	if c.phase != PhasePlaying {
		return
	}
	c.scorer.RecordMiss()
}

// SessionID returns the current session identifier.
func (c *Controller) SessionID() string { return c.id }

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// GameTime returns seconds of play in this session.
func (c *Controller) GameTime() float64 { return c.gameTime }

// Clock returns seconds of every Update call, including paused and ended
// time. Use it for animation that should keep running.
func (c *Controller) Clock() float64 { return c.clock }

// Profile returns the active difficulty profile.
func (c *Controller) Profile() difficulty.Profile { return c.difficulty.Profile() }

func (c *Controller) setPhase(to Phase) {
	from := c.phase
	if from == to {
		return
	}
	c.phase = to
	c.logger.Debug("phase", "session", c.id, "from", from, "to", to, "game_time", c.gameTime)
	for _, fn := range c.hooks.stateChange {
		fn(from, to)
	}
}

func (c *Controller) handleTierChange(profile difficulty.Profile, previous difficulty.Tier) {
	c.logger.Debug("tier", "session", c.id, "tier", profile.Name, "previous", previous, "game_time", c.gameTime)
	for _, fn := range c.hooks.phaseChange {
		fn(profile, previous)
	}
}

func (c *Controller) handleLifeChange(lives, maxLives int) {
	for _, fn := range c.hooks.lifeChange {
		fn(lives, maxLives)
	}
}

func (c *Controller) handleLivesExhausted() {
	if c.phase != PhasePlaying {
		return
	}
	c.overElapsed = 0
	c.setPhase(PhaseGameOver)
	fireAll(c.hooks.gameOver)
}
