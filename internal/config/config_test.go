package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsParse(t *testing.T) {
	cfg := Default()
	if err := yaml.Unmarshal(defaultMinigameYAML, &cfg); err != nil {
		t.Fatalf("embedded minigame.yaml does not parse: %v", err)
	}

	tiers := cfg.Session.Difficulty.Tiers
	if len(tiers) != 4 {
		t.Fatalf("Expected 4 tiers, got %d", len(tiers))
	}
	if !math.IsInf(tiers[3].End, 1) {
		t.Errorf("last tier end = %g, expected +Inf", tiers[3].End)
	}
	if cfg.Session.Scoring.BasePoints != 100 || cfg.Session.Lives.Max != 3 {
		t.Errorf("unexpected session defaults: %+v", cfg.Session)
	}

	var stages StageFile
	if err := yaml.Unmarshal(defaultStagesYAML, &stages); err != nil {
		t.Fatalf("embedded stages.yaml does not parse: %v", err)
	}
	var vortexStages int
	for _, st := range stages.Stages {
		if st.Modifiers.Vortex != nil {
			vortexStages++
			if st.Modifiers.Vortex.Center.X != 0.5 || st.Modifiers.Vortex.Strength <= 0 {
				t.Errorf("unexpected vortex on %s: %+v", st.ID, st.Modifiers.Vortex)
			}
		}
	}
	if vortexStages != 1 {
		t.Errorf("Expected one vortex stage, got %d", vortexStages)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `
session:
  lives:
    max: 7
  difficulty:
    enabled: true
    tiers:
      - {name: only, start: 0, spawn_interval: 1}
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Session.Lives.Max != 7 {
		t.Errorf("lives.max = %d, expected 7", cfg.Session.Lives.Max)
	}
	if len(cfg.Session.Difficulty.Tiers) != 1 || !math.IsInf(cfg.Session.Difficulty.Tiers[0].End, 1) {
		t.Errorf("single tier should be normalized to unbounded: %+v", cfg.Session.Difficulty.Tiers)
	}
	// Unspecified sections keep their defaults
	if cfg.Sharpshooter.ArenaWidth != 800 {
		t.Errorf("sharpshooter arena width = %g, expected default 800", cfg.Sharpshooter.ArenaWidth)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := `
session:
  lives:
    max: 0
  difficulty:
    tiers:
      - {name: a, start: 5, end: 10, spawn_interval: 1}
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"lives.max", "starts at 5", "must be unbounded"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing custom config")
	}
}

func TestLoadStagesCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stages.yaml")
	data := `
stages:
  - id: spin
    name: Spin
    modifiers: {friction: 0.97, bounce: 0.5, knockback_multiplier: 2, vortex: {center: {x: 0.25, y: 0.75}, strength: 4}}
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	catalog, err := LoadStages(path)
	if err != nil {
		t.Fatalf("LoadStages() failed: %v", err)
	}
	st, ok := catalog.Get("spin")
	if !ok {
		t.Fatal("stage spin not found")
	}
	if v := st.Modifiers.Vortex; v == nil || v.Center.Y != 0.75 || v.Strength != 4 {
		t.Errorf("unexpected vortex: %+v", v)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := Default()
	ApplyPreset(&cfg, DifficultyHard)
	if cfg.Session.Lives.Max != 2 || cfg.Session.Difficulty.TimeOffset != 30 {
		t.Errorf("hard preset = %+v", cfg.Session)
	}

	cfg = Default()
	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Session.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	if _, err := ParsePreset("brutal"); err == nil {
		t.Error("ParsePreset should reject unknown presets")
	}
}

// partialYAML decodes result_delay, then fails on lives.max.
const partialYAML = `
session:
  result_delay: 9
  lives:
    max: many
`

func TestBrokenEmbedKeepsHardcodedDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := Default()
	if err := loadYAML("", minigameFile, []byte(partialYAML), &cfg); err != nil {
		t.Fatalf("loadYAML() failed: %v", err)
	}
	if cfg.Session.ResultDelay != Default().Session.ResultDelay {
		t.Errorf("ResultDelay = %g, expected hardcoded %g", cfg.Session.ResultDelay, Default().Session.ResultDelay)
	}
}

func TestBrokenUserFileFallsThrough(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".minigame", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, minigameFile), []byte(partialYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	embedded := []byte("session:\n  lives:\n    max: 4\n")
	if err := loadYAML("", minigameFile, embedded, &cfg); err != nil {
		t.Fatalf("loadYAML() failed: %v", err)
	}
	if cfg.Session.Lives.Max != 4 {
		t.Errorf("Lives.Max = %d, expected 4 from the embedded file", cfg.Session.Lives.Max)
	}
	if cfg.Session.ResultDelay != Default().Session.ResultDelay {
		t.Errorf("ResultDelay = %g leaked from the broken user file", cfg.Session.ResultDelay)
	}
}

func TestBrokenCustomFileLeavesConfigUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte(partialYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := loadYAML(path, minigameFile, defaultMinigameYAML, &cfg); err == nil {
		t.Fatal("Expected parse error for custom config")
	}
	if cfg.Session.ResultDelay != Default().Session.ResultDelay {
		t.Errorf("ResultDelay = %g after failed decode", cfg.Session.ResultDelay)
	}
}
