// minigame hosts arcade minigames on top of a shared session engine:
// lifecycle, difficulty progression, scoring, lives and stage physics.
//
// Usage:
//
//	minigame list              - List available minigames
//	minigame play <game>       - Play a minigame
//	minigame menu              - Start menu to pick minigames interactively
//	minigame serve             - Start SSH server for remote play
//	minigame scores <game>     - Show top results for a minigame
//	minigame stages            - Show the stage catalog
//	minigame simulate <game>   - Run a headless bot session
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.minigame/results.db)
//	--log-level <level>   - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/minigame-engine/internal/games/drift"
	_ "github.com/vovakirdan/minigame-engine/internal/games/sharpshooter"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "minigame",
	Short: "Minigame host - session-driven arcade minigames in your terminal",
	Long: `minigame runs short arcade minigames on a shared session engine.
Every play-through gets a difficulty curve that ramps with time, combo
scoring, a life counter and stage physics such as gravity or a vortex.

Available commands:
  list      - Show all available minigames
  play      - Play a specific minigame directly
  menu      - Interactive minigame picker
  serve     - Start SSH server for remote play
  scores    - View top results
  stages    - Show the stage catalog
  simulate  - Run a headless seeded bot session

Examples:
  minigame list
  minigame play sharpshooter
  minigame play drift --stage heavy --difficulty hard
  minigame menu
  minigame serve --ssh :2222
  minigame simulate drift --seconds 60 --seed 7`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			Level:           level,
			ReportTimestamp: true,
			Prefix:          "minigame",
		})
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.minigame/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(simulateCmd)
}
