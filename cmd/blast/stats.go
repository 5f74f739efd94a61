package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockblast/internal/games/blast"
	"github.com/vovakirdan/blockblast/internal/platform/tui"
	"github.com/vovakirdan/blockblast/internal/registry"
	"github.com/vovakirdan/blockblast/internal/storage"
)

var (
	flagRecent     int
	flagDeleteSave bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [mode]",
	Short: "Show lifetime statistics for a mode",
	Long: `Display the statistics accumulated over all games of a mode
(classic when omitted) and the most recent finished games.

Examples:
  blast stats
  blast stats timed --recent 5
  blast stats --delete-save`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent games to list")
	statsCmd.Flags().BoolVar(&flagDeleteSave, "delete-save", false, "Delete the saved game of the mode")
}

func runStats(_ *cobra.Command, args []string) {
	gameID := gameIDArg(args)
	info, _ := registry.Info(gameID)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagDeleteSave {
		if err := store.DeleteSave(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting save: %v\n", err)
			return
		}
		fmt.Printf("Deleted the saved game of %s.\n", info.Title)
		return
	}

	fmt.Printf("Statistics - %s\n", info.Title)
	fmt.Println()

	data, found, err := store.LoadStatistics(gameID)
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error reading statistics: %v\n", err)
		return
	case !found:
		fmt.Println("No games finished yet.")
		return
	}

	var stats blast.Statistics
	if err := json.Unmarshal(data, &stats); err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding statistics: %v\n", err)
		return
	}
	fmt.Println(tui.FormatStatistics(stats))

	sessions, err := store.RecentSessions(gameID, flagRecent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading sessions: %v\n", err)
		return
	}
	if len(sessions) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent games:")
	fmt.Printf("  %-16s  %-8s  %-6s  %-6s  %-8s  %s\n", "Date", "Score", "Lines", "Blocks", "Time", "Result")
	for _, s := range sessions {
		result := "over"
		if s.Completed {
			result = "complete"
		}
		fmt.Printf("  %-16s  %-8d  %-6d  %-6d  %-8s  %s\n",
			s.Start.Local().Format("2006-01-02 15:04"),
			s.Score, s.Lines, s.Blocks,
			s.Duration.Round(time.Second), result,
		)
	}
}
