package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/minigame-engine/internal/config"
	"github.com/vovakirdan/minigame-engine/internal/core"
	"github.com/vovakirdan/minigame-engine/internal/physics"
	"github.com/vovakirdan/minigame-engine/internal/registry"
)

// Flags shared by the commands that create games.
var (
	flagConfig     string
	flagStagesPath string
	flagDifficulty string
	flagStage      string
)

// addGameFlags registers the configuration flags on cmd.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom minigame.yaml")
	cmd.Flags().StringVar(&flagStagesPath, "stages", "", "Path to custom stages.yaml")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// setup is the configuration every game-creating command starts from.
type setup struct {
	Config  config.Config
	Catalog *physics.Catalog
}

// loadSetup loads configuration and the stage catalog and applies the
// difficulty preset.
func loadSetup() (setup, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return setup{}, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return setup{}, err
	}
	config.ApplyPreset(&cfg, preset)

	catalog, err := config.LoadStages(flagStagesPath)
	if err != nil {
		return setup{}, err
	}

	logger.Debug("configuration loaded",
		"config", flagConfig,
		"stages", len(catalog.Stages()),
		"difficulty", preset,
	)
	return setup{Config: cfg, Catalog: catalog}, nil
}

// stage resolves a stage id, empty meaning the first stage.
func (s setup) stage(id string) (physics.Stage, error) {
	if id == "" {
		st, ok := s.Catalog.First()
		if !ok {
			return physics.Stage{}, errors.New("stage catalog is empty")
		}
		return st, nil
	}
	st, ok := s.Catalog.Get(id)
	if !ok {
		return physics.Stage{}, fmt.Errorf("unknown stage %q (available: %v)", id, s.Catalog.IDs())
	}
	return st, nil
}

// stageIndex returns the catalog position of id, 0 if unknown.
func (s setup) stageIndex(id string) int {
	for i, st := range s.Catalog.Stages() {
		if st.ID == id {
			return i
		}
	}
	return 0
}

// options builds registry options for a game played on stage.
func (s setup) options(stage physics.Stage) registry.Options {
	return registry.Options{
		Config: s.Config,
		Stage:  stage,
		Logger: logger,
	}
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// requireGame exits when gameID is not registered.
func requireGame(gameID string) {
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'minigame list' to see available games.")
		os.Exit(1)
	}
}

// fail prints what went wrong and exits.
func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", what, err)
	os.Exit(1)
}
