package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/games/runner"
	"github.com/vovakirdan/lane-runner/internal/registry"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the best runs",
	Long: `Display the best runs, optionally filtered by --difficulty,
followed by lifetime statistics.

Examples:
  runner scores
  runner scores --difficulty hard
  runner scores --limit 25
  runner scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores and runs")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := runner.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'runner list' to see available games)", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	// Only an explicit --difficulty filters; the default lists every preset.
	filter := flagDifficulty
	runs, err := store.TopRuns(gameID, filter, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving runs: %w", err)
	}

	title := "Best Runs"
	if filter != "" {
		title += " (" + filter + ")"
	}
	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to set the first record!")
		return nil
	}

	printRuns(runs)

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return nil
	}
	fmt.Println()
	fmt.Printf("Best: %d  |  Games: %d  |  Avg: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	fmt.Printf("Longest run: %.0f  |  Total distance: %.0f  |  Total hits: %d\n",
		stats.BestDistance, stats.TotalDistance, stats.TotalHits)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRuns(runs []storage.Run) {
	fmt.Printf("  %-4s  %-7s  %-9s  %-4s  %-7s  %s\n", "Rank", "Score", "Distance", "Hits", "Mode", "Date")
	fmt.Printf("  %-4s  %-7s  %-9s  %-4s  %-7s  %s\n", "----", "-----", "--------", "----", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-7d  %-9.0f  %-4d  %-7s  %s\n",
			i+1, r.Score, r.Distance, r.Hits, r.Difficulty, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
