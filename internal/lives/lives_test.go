package lives

import "testing"

func TestLoseLifeToZero(t *testing.T) {
	s := New(3)

	gameOvers := 0
	var changes []int
	s.OnGameOver(func() { gameOvers++ })
	s.OnLifeChange(func(lives, maxLives int) {
		if maxLives != 3 {
			t.Errorf("maxLives = %d in callback, expected 3", maxLives)
		}
		changes = append(changes, lives)
	})

	for i, want := range []int{2, 1, 0} {
		s.LoseLife()
		if s.Lives() != want {
			t.Errorf("after loss %d lives = %d, expected %d", i+1, s.Lives(), want)
		}
		expectedGameOvers := 0
		if want == 0 {
			expectedGameOvers = 1
		}
		if gameOvers != expectedGameOvers {
			t.Errorf("after loss %d gameOvers = %d, expected %d", i+1, gameOvers, expectedGameOvers)
		}
	}

	// A fourth loss is clamped and silent
	s.LoseLife()
	if s.Lives() != 0 {
		t.Errorf("lives = %d after extra loss, expected 0", s.Lives())
	}
	if gameOvers != 1 {
		t.Errorf("onGameOver re-fired, count=%d", gameOvers)
	}
	if len(changes) != 3 {
		t.Errorf("life change callbacks = %v, expected 3 entries", changes)
	}
}

func TestGainLife(t *testing.T) {
	s := New(3)

	if s.GainLife() {
		t.Error("GainLife at full lives should return false")
	}

	s.LoseLife()
	if !s.GainLife() {
		t.Error("GainLife below max should return true")
	}
	if s.Lives() != 3 {
		t.Errorf("lives = %d, expected 3", s.Lives())
	}
}

func TestGameOverFiresAgainAfterRecovery(t *testing.T) {
	s := New(1)
	gameOvers := 0
	s.OnGameOver(func() { gameOvers++ })

	s.LoseLife()
	s.GainLife()
	s.LoseLife()

	if gameOvers != 2 {
		t.Errorf("each zero crossing should notify once, got %d", gameOvers)
	}
}

func TestConfigureAndReset(t *testing.T) {
	s := New(DefaultMaxLives)
	s.ConfigureWithInitial(5, 2)

	if s.Lives() != 2 || s.MaxLives() != 5 {
		t.Fatalf("state = %+v, expected 2/5", s.State())
	}

	s.Reset()
	if s.Lives() != 5 {
		t.Errorf("Reset() lives = %d, expected configured max 5", s.Lives())
	}

	s.Configure(4)
	s.LoseLife()
	s.Reset()
	if s.Lives() != 4 || s.MaxLives() != 4 {
		t.Errorf("Reset() state = %+v, expected 4/4 after Configure(4)", s.State())
	}
}

func TestResetRefillsAfterGameOver(t *testing.T) {
	s := New(DefaultMaxLives)
	s.ConfigureWithInitial(3, 1)

	changes := 0
	s.OnLifeChange(func(int, int) { changes++ })

	s.LoseLife()
	s.Reset()

	if s.Lives() != 3 {
		t.Errorf("lives = %d after Reset, expected 3", s.Lives())
	}
	if changes != 1 {
		t.Errorf("life change callbacks = %d, expected only the loss", changes)
	}
}

func TestConfigureClamps(t *testing.T) {
	s := New(0)
	if s.MaxLives() != 1 {
		t.Errorf("MaxLives() = %d, expected minimum of 1", s.MaxLives())
	}

	s.ConfigureWithInitial(3, 10)
	if s.Lives() != 3 {
		t.Errorf("initial clamped to %d, expected 3", s.Lives())
	}
}
