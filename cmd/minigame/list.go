package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigame-engine/internal/registry"
	"github.com/vovakirdan/minigame-engine/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available minigames",
	Long:  `Shows a list of all minigames registered with the host, with the
best score and last play time when results exist.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	stats := loadAllStats()

	fmt.Printf("  %-*s  %-14s  %8s  %s\n", maxIDLen, "ID", "Title", "Best", "Last played")
	fmt.Printf("  %-*s  %-14s  %8s  %s\n", maxIDLen, "--", "-----", "----", "-----------")

	for _, g := range games {
		best, last := "-", "never"
		if st, ok := stats[g.ID]; ok {
			best = humanize.Comma(int64(st.BestScore))
			last = humanize.Time(st.LastPlayed())
		}
		fmt.Printf("  %-*s  %-14s  %8s  %s\n", maxIDLen, g.ID, g.Title, best, last)
	}

	fmt.Println()
	fmt.Println("Run 'minigame play <id>' to play a game.")
}

// loadAllStats reads per-game stats, empty when the database is unavailable.
func loadAllStats() map[string]*storage.GameStats {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Debug("results database unavailable", "err", err)
		return nil
	}
	defer store.Close()

	stats, err := store.AllStats()
	if err != nil {
		logger.Warn("cannot read stats", "err", err)
		return nil
	}
	return stats
}
