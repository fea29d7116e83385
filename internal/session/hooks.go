package session

import "github.com/vovakirdan/minigame-engine/internal/difficulty"

// GrantFunc resolves a pending continue request. Only the first call of a
// grant/deny pair has any effect.
type GrantFunc func()

// hooks holds the host's listeners. Each list fires synchronously in
// registration order.
type hooks struct {
	phaseChange     []func(profile difficulty.Profile, previous difficulty.Tier)
	lifeChange      []func(lives, maxLives int)
	gameOver        []func()
	retryRequested  []func()
	exitRequested   []func()
	continueRequest []func(grant, deny GrantFunc)
	continued       []func()
	stateChange     []func(from, to Phase)
}

// OnPhaseChange registers a listener for difficulty tier changes.
func (c *Controller) OnPhaseChange(fn func(profile difficulty.Profile, previous difficulty.Tier)) {
	if fn != nil {
		c.hooks.phaseChange = append(c.hooks.phaseChange, fn)
	}
}

// OnLifeChange registers a listener for every change of the life counter.
func (c *Controller) OnLifeChange(fn func(lives, maxLives int)) {
	if fn != nil {
		c.hooks.lifeChange = append(c.hooks.lifeChange, fn)
	}
}

// OnGameOver registers a listener for the session ending.
func (c *Controller) OnGameOver(fn func()) {
	if fn != nil {
		c.hooks.gameOver = append(c.hooks.gameOver, fn)
	}
}

// OnRetryRequested registers a listener invoked right before a retry resets
// the session.
func (c *Controller) OnRetryRequested(fn func()) {
	if fn != nil {
		c.hooks.retryRequested = append(c.hooks.retryRequested, fn)
	}
}

// OnExitRequested registers a listener for the player leaving the minigame.
func (c *Controller) OnExitRequested(fn func()) {
	if fn != nil {
		c.hooks.exitRequested = append(c.hooks.exitRequested, fn)
	}
}

// OnContinueRequested registers the collaborator that decides whether a
// continue is granted, e.g. after an ad finishes. It must eventually call
// grant or deny, or neither if the player walks away.
func (c *Controller) OnContinueRequested(fn func(grant, deny GrantFunc)) {
	if fn != nil {
		c.hooks.continueRequest = append(c.hooks.continueRequest, fn)
	}
}

// OnContinued registers a listener invoked after a granted continue puts the
// session back into play.
func (c *Controller) OnContinued(fn func()) {
	if fn != nil {
		c.hooks.continued = append(c.hooks.continued, fn)
	}
}

// OnStateChange registers a listener for every lifecycle phase transition.
func (c *Controller) OnStateChange(fn func(from, to Phase)) {
	if fn != nil {
		c.hooks.stateChange = append(c.hooks.stateChange, fn)
	}
}

func fireAll(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
