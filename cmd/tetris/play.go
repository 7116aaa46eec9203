package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: tetris).

Controls:
  Left/Right, A/D  - Move
  Down, S          - Soft drop
  Up, W, X         - Rotate clockwise
  Z                - Rotate counter-clockwise
  Enter            - Start
  P/Space          - Pause
  R                - Restart (after game over or a win)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower gravity, smaller level bonus
  normal - Default constants
  hard   - Faster gravity from level 1
  fixed  - Levels still count but gravity never speeds up

Examples:
  tetris play
  tetris play tetris_endless
  tetris play --difficulty hard
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	mode := string(tetris.ModeClassic)
	if len(args) > 0 {
		mode = args[0]
	}

	base, preset, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := openFileLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	game, err := newGameFactory(base, logger, nil)(mode, preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available modes.")
		os.Exit(1)
	}

	store := openStore(logger)
	user := os.Getenv("USER")
	runErr := tui.Run(game, tui.Options{Store: store, Logger: logger, Player: user}, terminalConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
