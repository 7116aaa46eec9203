// tetris is a terminal Tetris with a win-time leaderboard and SSH hosting.
//
// Usage:
//
//	tetris list              - List game modes
//	tetris play [mode]       - Play a mode (default: tetris)
//	tetris menu              - Pick modes and difficulty interactively
//	tetris serve             - Start SSH server for remote play
//	tetris scores [mode]     - Show scores and fastest wins
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/tetris.db)
//	--config <path>       - Custom tetris.yaml
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-file <path>     - Log destination for interactive commands
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "TUI Tetris - race to the win score in your terminal",
	Long: `TUI Tetris is a terminal Tetris. Clear lines to reach the win score as
fast as you can, or play the endless mode for a high score.

Available commands:
  list     - Show the game modes
  play     - Play a mode directly
  menu     - Interactive mode and difficulty picker
  serve    - Start SSH server for remote play
  scores   - View high scores and fastest wins

Examples:
  tetris play
  tetris play tetris_endless --difficulty hard
  tetris menu
  tetris serve --ssh :2222 --metrics :9090
  tetris scores`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/tetris.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom tetris config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogFile, "log-file", "~/.arcade/tetris.log", "Log file for interactive commands")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
