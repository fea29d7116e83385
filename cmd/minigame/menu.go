package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigame-engine/internal/platform/tui"
	"github.com/vovakirdan/minigame-engine/internal/registry"
	"github.com/vovakirdan/minigame-engine/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start interactive minigame picker",
	Long: `Opens an interactive menu to browse and select minigames.

Controls:
  Up/Down     - Navigate games
  Left/Right  - Change stage
  Enter       - Play selected game
  Tab         - View results
  Q/Esc       - Quit

After a game ends, press Esc to return to the menu.`,
	Run: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) {
	s, err := loadSetup()
	if err != nil {
		fail("loading configuration", err)
	}

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()
	stages := s.Catalog.Stages()
	stageIdx := 0

	for {
		menuResult, err := tui.RunMenu(store, cfg, stages, stageIdx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config
		stageIdx = s.stageIndex(menuResult.Stage.ID)

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			if !goBack {
				break
			}
			continue
		}

		game, err := registry.Create(menuResult.GameID, s.options(menuResult.Stage))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		back, err := tui.Run(game, store, cfg, tui.Options{
			StageID:   menuResult.Stage.ID,
			StageName: menuResult.Stage.Name,
			Logger:    logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
		if !back {
			break
		}
	}
}
