package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/noodle/internal/games/snake"
	"github.com/vovakirdan/noodle/internal/registry"
	"github.com/vovakirdan/noodle/internal/storage"
)

var flagRuns bool

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top 10 scores for a game (snake by default), or the
latest training runs with --runs.

Examples:
  noodle scores
  noodle scores snake_autopilot
  noodle scores --runs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "Show training runs instead")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if flagRuns {
		return printRuns(store)
	}

	gameID := snake.IDHuman
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'noodle list' to see available games", gameID)
	}
	return printScores(store, gameID)
}

func printScores(store *storage.Store, gameID string) error {
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n\n", gameID)
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-10s  %s\n", "Rank", "Score", "Steps", "End", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-10s  %s\n", "----", "-----", "-----", "---", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-6d  %-6d  %-10s  %s\n", i+1, e.Score, e.Steps, e.Reason, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Printf("\nGames: %d  Best: %d  Avg: %.1f\n", stats.GamesCount, stats.HighScore, stats.AvgScore)
	}
	return nil
}

func printRuns(store *storage.Store) error {
	runs, err := store.RecentRuns(20)
	if err != nil {
		return err
	}

	fmt.Print("Training Runs\n\n")
	if len(runs) == 0 {
		fmt.Println("No training runs yet. Run 'noodle train' to start one.")
		return nil
	}

	fmt.Printf("  %-24s  %-8s  %-5s  %-8s  %s\n", "Run", "Episodes", "Best", "Avg", "Reward")
	for _, r := range runs {
		fmt.Printf("  %-24s  %-8d  %-5d  %-8.2f  %.2f\n", r.RunID, r.Episodes, r.BestScore, r.AvgScore, r.AvgReward)
	}
	return nil
}
