package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigame-engine/internal/platform/tui"
	"github.com/vovakirdan/minigame-engine/internal/registry"
	"github.com/vovakirdan/minigame-engine/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a minigame",
	Long: `Start playing the specified minigame.

Controls:
  Arrows/WASD  - Move crosshair or ship
  Space        - Fire (sharpshooter) / boost (drift)
  P            - Pause
  Esc/B        - Pause, then leave
  R            - Retry (on the result screen)
  C            - Watch an ad to continue (after game over)
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Five lives, full difficulty curve
  normal - Default lives, full difficulty curve
  hard   - Two lives, starts at the second tier
  fixed  - No progression, stays at the first tier

Examples:
  minigame play sharpshooter
  minigame play drift --stage heavy
  minigame play sharpshooter --difficulty hard
  minigame play drift --config ./my-minigame.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().StringVar(&flagStage, "stage", "", "Stage id (see 'minigame stages')")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]
	requireGame(gameID)

	s, err := loadSetup()
	if err != nil {
		fail("loading configuration", err)
	}
	stage, err := s.stage(flagStage)
	if err != nil {
		fail("selecting stage", err)
	}

	game, err := registry.Create(gameID, s.options(stage))
	if err != nil {
		fail("creating game", err)
	}

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, store, runtimeConfig(), tui.Options{
		StageID:   stage.ID,
		StageName: stage.Name,
		Logger:    logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game", runErr)
	}
}
