// blast is a block-placement puzzle for the terminal.
//
// Usage:
//
//	blast list              - List game modes
//	blast play [mode]       - Play a mode (classic, timed, challenge)
//	blast menu              - Start menu to pick modes interactively
//	blast serve             - Start SSH server for remote play
//	blast scores [mode]     - Show high scores for a mode
//	blast stats [mode]      - Show lifetime statistics and recent games
//	blast config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.blast/blast.db)
//	--config <path>       - Use a custom blast.yaml
//	--difficulty <preset> - easy, normal or hard
//	--sound               - Ring the terminal bell on game events
//	--debug               - Log at debug level
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockblast/internal/games/blast"
	"github.com/vovakirdan/blockblast/internal/platform/tui"
	"github.com/vovakirdan/blockblast/internal/registry"
	"github.com/vovakirdan/blockblast/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagSound      bool
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blast",
	Short: "Block Blast - place blocks, clear lines",
	Long: `Block Blast is a block-placement puzzle for the terminal.

Place the offered blocks on a 10x10 grid. Complete rows or columns to
clear them; consecutive clears build a combo, and emptying the board
earns a perfect clear bonus. The game ends when no block fits.

Available commands:
  list     - Show all game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  stats    - View lifetime statistics
  config   - Print the effective configuration

Examples:
  blast play
  blast play timed --difficulty hard
  blast menu
  blast serve --ssh :2222
  blast scores challenge`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		blast.SetConfigPath(flagConfig)
		blast.SetDifficultyPreset(flagDifficulty)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom blast.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", false, "Ring the terminal bell on game events")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
}

// resolveGameID accepts a registered game ID or a mode name.
func resolveGameID(arg string) (string, error) {
	if registry.Exists(arg) {
		return arg, nil
	}
	if m := blast.Mode(arg); m.Valid() {
		return blast.GameID(m), nil
	}
	return "", fmt.Errorf("unknown mode %q (run 'blast list' to see modes)", arg)
}

// gameIDArg resolves the optional mode argument, defaulting to classic.
func gameIDArg(args []string) string {
	if len(args) == 0 {
		return blast.GameID(blast.ModeClassic)
	}
	id, err := resolveGameID(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return id
}

// openLog routes interactive logging to the log file so it does not
// corrupt the alt screen. The returned closer is never nil.
func openLog() (*log.Logger, io.Closer) {
	f, err := tui.OpenLogFile(tui.DefaultLogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return log.New(io.Discard), io.NopCloser(nil)
	}
	logger := tui.NewLogger(f, "blast", flagDebug)
	blast.SetLogger(logger)
	return logger, f
}

// openStore opens the database, or returns nil so the game still runs.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		logger.Warn("could not open database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
