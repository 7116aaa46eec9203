package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagScoresClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and fastest wins",
	Long: `Display the top 10 scores, the fastest wins and overall stats for a mode
(default: tetris).

Examples:
  tetris scores
  tetris scores tetris_endless
  tetris scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every score and win time of the mode")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := string(tetris.ModeClassic)
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared all scores for %s.\n", game.Title())
		return
	}

	if err := printScores(store, gameID, game.Title()); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}
}

func printScores(store *storage.Store, gameID, title string) error {
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tetris play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-10s  %-5s  %-5s  %s\n", "Rank", "Score", "Lines", "Level", "When")
		fmt.Printf("  %-4s  %-10s  %-5s  %-5s  %s\n", "----", "-----", "-----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10s  %-5d  %-5d  %s\n",
				i+1, humanize.Comma(int64(entry.Score)), entry.Lines, entry.Level, humanize.Time(entry.CreatedAt))
		}
	}

	wins, err := store.TopWinTimes(gameID, storage.LeaderboardSize)
	if err != nil {
		return err
	}
	if len(wins) > 0 {
		fmt.Println()
		fmt.Println("Fastest Wins")
		fmt.Println()
		fmt.Printf("  %-4s  %-24s  %-8s  %s\n", "Rank", "Name", "Time", "When")
		fmt.Printf("  %-4s  %-24s  %-8s  %s\n", "----", "----", "----", "----")
		for i, w := range wins {
			fmt.Printf("  %-4d  %-24s  %-8s  %s\n", i+1, w.Name, tetris.FormatElapsed(w.Time), humanize.Time(w.CreatedAt))
		}
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	if stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Games: %s  Best: %s  Average: %s  Lines: %s  Wins: %d  Last played: %s\n",
			humanize.Comma(int64(stats.GamesCount)),
			humanize.Comma(int64(stats.HighScore)),
			humanize.CommafWithDigits(stats.AvgScore, 0),
			humanize.Comma(stats.TotalLines),
			stats.Wins,
			humanize.Time(stats.LastPlayed))
	}
	return nil
}
