package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/zapatico/internal/core"
	"github.com/vovakirdan/zapatico/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show high scores",
	Long: `Display the top scores for a difficulty, or across all difficulties
when none is given.

Examples:
  zapatico scores
  zapatico scores pro
  zapatico scores --limit 25
  zapatico scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the score history (the best score is kept)")
}

func runScores(_ *cobra.Command, args []string) {
	var difficulty *core.Difficulty
	if len(args) == 1 {
		d, ok := core.LookupDifficulty(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'zapatico list' to see difficulties.")
			os.Exit(1)
		}
		difficulty = &d
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Println("Score history cleared.")
		return
	}

	scores, err := store.TopScores(difficulty, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	if difficulty != nil {
		fmt.Printf("High Scores - %s (%d BPM)\n", difficulty.Title(), difficulty.BPM())
	} else {
		fmt.Println("High Scores - all difficulties")
	}
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'zapatico play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Score", "Tier", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "-----", "----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-8s  %s\n", i+1, entry.Score, entry.Difficulty, dateStr)
	}

	fmt.Println()
	if difficulty != nil {
		if stats, err := store.Stats(*difficulty); err == nil {
			fmt.Printf("Games: %d  Average: %.0f\n", stats.GamesCount, stats.AvgScore)
		}
	}
	if highScore, err := store.HighScore(); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
}
