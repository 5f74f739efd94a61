package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockblast/internal/registry"
	"github.com/vovakirdan/blockblast/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game modes",
	Long:  `Shows every registered game mode with its best score.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	// Best scores are optional; the list works without a database
	var best map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		best, _ = store.GetAllGamesStats()
		store.Close()
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-24s  %-4s  %s\n", maxIDLen, "ID", "Title", "Save", "Best")
	fmt.Printf("  %-*s  %-24s  %-4s  %s\n", maxIDLen, "--", "-----", "----", "----")

	for _, g := range games {
		save := "no"
		if g.Persistent {
			save = "yes"
		}
		score := "-"
		if s, ok := best[g.ID]; ok {
			score = fmt.Sprintf("%d", s.HighScore)
		}
		fmt.Printf("  %-*s  %-24s  %-4s  %s\n", maxIDLen, g.ID, g.Title, save, score)
	}

	fmt.Println()
	fmt.Println("Run 'blast play <id>' to play a mode.")
}
