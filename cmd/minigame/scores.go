package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigame-engine/internal/registry"
	"github.com/vovakirdan/minigame-engine/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show top results for a minigame",
	Long: `Display the best results recorded for the specified minigame,
with aggregate statistics.

Examples:
  minigame scores sharpshooter
  minigame scores drift --limit 25
  minigame scores drift --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all results for the game")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]
	requireGame(gameID)

	game, err := registry.Create(gameID, registry.DefaultOptions())
	if err != nil {
		fail("creating game", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening results database", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearResults(gameID); err != nil {
			fail("clearing results", err)
		}
		fmt.Printf("Cleared all results for %s.\n", title)
		return
	}

	results, err := store.TopResults(gameID, flagScoresLimit)
	if err != nil {
		fail("retrieving results", err)
	}

	fmt.Printf("Top Results - %s\n", title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'minigame play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-9s  %-5s  %-6s  %-7s  %-8s  %s\n", "Rank", "Score", "Combo", "Acc", "Tier", "Stage", "When")
	fmt.Printf("  %-4s  %-9s  %-5s  %-6s  %-7s  %-8s  %s\n", "----", "-----", "-----", "---", "----", "-----", "----")

	for i, r := range results {
		fmt.Printf("  %-4d  %-9s  %-5d  %-6s  %-7s  %-8s  %s\n",
			i+1,
			humanize.Comma(int64(r.Score)),
			r.MaxCombo,
			fmt.Sprintf("%.0f%%", r.Accuracy),
			r.Tier,
			r.Stage,
			humanize.Time(r.PlayedAt()),
		)
	}

	stats, err := store.Stats(gameID)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Best: %s  Sessions: %s  Average: %s  Avg accuracy: %.1f%%\n",
		humanize.Comma(int64(stats.BestScore)),
		humanize.Comma(int64(stats.Sessions)),
		humanize.Comma(int64(stats.AvgScore)),
		stats.AvgAccuracy,
	)
}
