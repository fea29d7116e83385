// Package lives implements the bounded life counter that ends a session when
// it reaches zero.
package lives

// DefaultMaxLives is used when a minigame does not configure its own limit.
const DefaultMaxLives = 3

// State is a copy of the counter.
type State struct {
	Lives    int `json:"lives"`
	MaxLives int `json:"max_lives"`
}

// System is a life counter clamped to [0, MaxLives].
type System struct {
	lives    int
	maxLives int

	onChange   []func(lives, maxLives int)
	onGameOver []func()
}

// New creates a system with maxLives lives.
func New(maxLives int) *System {
	s := &System{}
	s.Configure(maxLives)
	return s
}

// Configure sets the maximum and starts the session at full lives.
func (s *System) Configure(maxLives int) {
	s.ConfigureWithInitial(maxLives, maxLives)
}

// ConfigureWithInitial sets the maximum and the starting count. maxLives is
// raised to at least 1; initial is clamped to [0, maxLives].
func (s *System) ConfigureWithInitial(maxLives, initial int) {
	if maxLives < 1 {
		maxLives = 1
	}
	if initial < 0 {
		initial = 0
	}
	if initial > maxLives {
		initial = maxLives
	}
	s.maxLives = maxLives
	s.lives = initial
}

// OnLifeChange registers a listener for every change of the counter.
func (s *System) OnLifeChange(fn func(lives, maxLives int)) {
	if fn != nil {
		s.onChange = append(s.onChange, fn)
	}
}

// OnGameOver registers a listener for the counter reaching zero.
func (s *System) OnGameOver(fn func()) {
	if fn != nil {
		s.onGameOver = append(s.onGameOver, fn)
	}
}

// LoseLife removes one life. At zero it does nothing.
func (s *System) LoseLife() {
	if s.lives <= 0 {
		return
	}
	s.lives--
	s.notifyChange()

	if s.lives == 0 {
		for _, fn := range s.onGameOver {
			fn()
		}
	}
}

// GainLife adds one life and returns true, or returns false when already full.
func (s *System) GainLife() bool {
	if s.lives >= s.maxLives {
		return false
	}
	s.lives++
	s.notifyChange()
	return true
}

func (s *System) notifyChange() {
	for _, fn := range s.onChange {
		fn(s.lives, s.maxLives)
	}
}

// Lives returns the current count.
func (s *System) Lives() int {
	return s.lives
}

// MaxLives returns the configured maximum.
func (s *System) MaxLives() int {
	return s.maxLives
}

// State returns a copy of the counter.
func (s *System) State() State {
	return State{Lives: s.lives, MaxLives: s.maxLives}
}

// Reset refills the counter to the configured maximum. The starting count
// given to ConfigureWithInitial applies only until the first Reset.
func (s *System) Reset() {
	s.lives = s.maxLives
}
