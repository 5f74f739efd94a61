package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockblast/internal/core"
	"github.com/vovakirdan/blockblast/internal/platform/tui"
	"github.com/vovakirdan/blockblast/internal/registry"
)

var flagMode string

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the given mode (classic when omitted).

Modes:
  classic    - Play until no block fits
  timed      - Score as much as possible before the clock runs out
  challenge  - Reach the target score

Controls:
  Arrows/WASD  - Move cursor
  1 2 3        - Select a block
  Tab          - Next block
  X / Z        - Rotate clockwise / counterclockwise
  Space/Enter  - Place block
  P            - Pause
  R            - Restart
  Shift+S / L  - Save / load the game in progress
  Esc          - Back (when paused or over)
  Q/Ctrl+C     - Quit

Examples:
  blast play
  blast play timed
  blast play --mode challenge --difficulty easy
  blast play --seed 42 --config ./my-blast.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Game mode: classic, timed, challenge")
}

func runPlay(_ *cobra.Command, args []string) {
	if flagMode != "" && len(args) == 0 {
		args = []string{flagMode}
	}
	gameID := gameIDArg(args)

	logger, logFile := openLog()
	defer logFile.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)

	runErr := tui.Run(game, store, cfg, tui.Options{Sound: flagSound, Logger: logger})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
