package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/minigame-engine/internal/difficulty"
	"github.com/vovakirdan/minigame-engine/internal/physics"
)

//go:embed defaults/minigame.yaml
var defaultMinigameYAML []byte

//go:embed defaults/stages.yaml
var defaultStagesYAML []byte

const (
	minigameFile = "minigame.yaml"
	stagesFile   = "stages.yaml"
)

// Load loads the engine and minigame configuration.
// Search order: customPath -> ~/.minigame/configs/minigame.yaml ->
// ./configs/minigame.yaml -> embedded default -> hardcoded default.
func Load(customPath string) (Config, error) {
	cfg := Default()
	if err := loadYAML(customPath, minigameFile, defaultMinigameYAML, &cfg); err != nil {
		return cfg, err
	}
	cfg.Session.Difficulty.Tiers = difficulty.Normalize(cfg.Session.Difficulty.Tiers)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadStages loads the stage catalog using the same search order as Load.
func LoadStages(customPath string) (*physics.Catalog, error) {
	file := StageFile{Stages: DefaultStages()}
	if err := loadYAML(customPath, stagesFile, defaultStagesYAML, &file); err != nil {
		return nil, err
	}
	catalog, err := physics.NewCatalog(file.Stages)
	if err != nil {
		return nil, fmt.Errorf("config: invalid stages: %w", err)
	}
	return catalog, nil
}

// loadYAML decodes the first readable source into out. Only an explicit
// customPath failure is an error; the other sources fall through silently.
// out is only modified by a source that decodes cleanly.
func loadYAML[T any](customPath, filename string, embedded []byte, out *T) error {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := decodeYAML(data, out); err != nil {
			return fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return nil
	}

	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if err := decodeYAML(data, out); err == nil {
				return nil
			}
		}
	}

	// A broken embed leaves the hardcoded defaults in out.
	_ = decodeYAML(embedded, out)
	return nil
}

// decodeYAML unmarshals data over a copy of out and stores the copy only on
// success. yaml.v3 keeps filling fields after a type error, so decoding in
// place could leave a mix of two sources.
func decodeYAML[T any](data []byte, out *T) error {
	tmp := *out
	if err := yaml.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*out = tmp
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".minigame", "configs", filename)
}

// Validate reports every problem in the configuration at once.
func (c Config) Validate() error {
	var errs []error

	s := c.Session
	if s.Lives.Max < 1 {
		errs = append(errs, fmt.Errorf("session.lives.max must be at least 1, got %d", s.Lives.Max))
	}
	if s.Lives.Initial < 0 || s.Lives.Initial > s.Lives.Max {
		errs = append(errs, fmt.Errorf("session.lives.initial must be within [0, %d], got %d", s.Lives.Max, s.Lives.Initial))
	}
	if s.ResultDelay < 0 {
		errs = append(errs, fmt.Errorf("session.result_delay must not be negative, got %g", s.ResultDelay))
	}
	if s.Scoring.ComboCap < 1 {
		errs = append(errs, fmt.Errorf("session.scoring.combo_cap must be at least 1, got %g", s.Scoring.ComboCap))
	}
	if err := difficulty.Validate(s.Difficulty.Tiers); err != nil {
		errs = append(errs, err)
	}
	if c.Sharpshooter.ArenaWidth <= 0 || c.Sharpshooter.ArenaHeight <= 0 {
		errs = append(errs, errors.New("sharpshooter arena must have a positive size"))
	}
	if c.Drift.ArenaWidth <= 0 || c.Drift.ArenaHeight <= 0 {
		errs = append(errs, errors.New("drift arena must have a positive size"))
	}

	return errors.Join(errs...)
}
