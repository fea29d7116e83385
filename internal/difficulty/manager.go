package difficulty

import "sort"

// ChangeFunc is notified when the active tier changes.
type ChangeFunc func(profile Profile, previous Tier)

// Manager resolves the current tier from game time.
type Manager struct {
	profiles  []Profile
	current   Tier
	enabled   bool
	offset    float64 // seconds added to game time before lookup
	listeners []ChangeFunc
}

// NewManager creates a manager over the given table. The table is normalized
// and must cover [0, +Inf) without gaps.
func NewManager(profiles []Profile) (*Manager, error) {
	table := Normalize(profiles)
	if err := Validate(table); err != nil {
		return nil, err
	}

	m := &Manager{profiles: table, enabled: true}
	m.current = m.Lookup(0)
	return m, nil
}

// OnTierChange registers a listener. Listeners fire in registration order.
func (m *Manager) OnTierChange(fn ChangeFunc) {
	if fn != nil {
		m.listeners = append(m.listeners, fn)
	}
}

// SetEnabled toggles progression. A disabled manager keeps its current tier.
func (m *Manager) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (m *Manager) IsEnabled() bool {
	return m.enabled
}

// SetTimeOffset shifts the lookup clock so a session can start later in the
// table. It takes effect on the next Reset.
func (m *Manager) SetTimeOffset(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	m.offset = seconds
}

// Lookup returns the tier whose range contains gameTime. Negative times map to
// the first tier.
func (m *Manager) Lookup(gameTime float64) Tier {
	t := gameTime + m.offset
	// First tier whose End is past t; ranges are contiguous and half-open.
	i := sort.Search(len(m.profiles), func(i int) bool {
		return m.profiles[i].End > t
	})
	if i >= len(m.profiles) {
		i = len(m.profiles) - 1
	}
	return Tier(i)
}

// Update resolves the tier for gameTime and notifies listeners when it
// changed. Returns true on a tier change.
func (m *Manager) Update(gameTime float64) bool {
	if !m.enabled {
		return false
	}

	next := m.Lookup(gameTime)
	if next == m.current {
		return false
	}

	previous := m.current
	m.current = next
	profile := m.profiles[next]
	for _, fn := range m.listeners {
		fn(profile, previous)
	}
	return true
}

// Reset restores the tier for game time 0 without notifying listeners.
func (m *Manager) Reset() {
	m.current = m.Lookup(0)
}

// Tier returns the current tier.
func (m *Manager) Tier() Tier {
	return m.current
}

// Profile returns the current tier's profile.
func (m *Manager) Profile() Profile {
	return m.profiles[m.current]
}

// Profiles returns a copy of the normalized table.
func (m *Manager) Profiles() []Profile {
	out := make([]Profile, len(m.profiles))
	copy(out, m.profiles)
	return out
}

// SpeedMultiplier returns the current target speed multiplier.
func (m *Manager) SpeedMultiplier() float64 { return m.Profile().SpeedMultiplier }

// SizeMultiplier returns the current target size multiplier.
func (m *Manager) SizeMultiplier() float64 { return m.Profile().SizeMultiplier }

// HitTolerance returns the current hit tolerance multiplier.
func (m *Manager) HitTolerance() float64 { return m.Profile().HitTolerance }

// SpawnInterval returns the current spawn interval in seconds.
func (m *Manager) SpawnInterval() float64 { return m.Profile().SpawnInterval }

// MovingTargets reports whether targets move in the current tier.
func (m *Manager) MovingTargets() bool { return m.Profile().MovingTargets }

// WindEffect reports whether wind applies in the current tier.
func (m *Manager) WindEffect() bool { return m.Profile().WindEffect }
