// noodle is a terminal snake game with an autopilot, a reinforcement-learning
// environment and a tabular Q-learning trainer.
//
// Usage:
//
//	noodle list              - List available games
//	noodle play              - Play snake
//	noodle watch             - Watch a policy play
//	noodle menu              - Start menu to pick games interactively
//	noodle serve             - Start SSH server for remote play
//	noodle env               - Serve the RL environment over HTTP
//	noodle train             - Train the Q-learning agent
//	noodle scores [game]     - Show high scores
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.noodle/noodle.db)
//	--config <path>      - Custom snake config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>  - Log level for servers and training
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/noodle/internal/games/snake"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "noodle",
	Short: "Noodle - snake in your terminal, for humans and agents",
	Long: `Noodle is a grid snake game you can play in the terminal, watch an
agent play, or expose as a reinforcement-learning environment.

Available commands:
  list     - Show all available games
  play     - Play snake
  watch    - Watch the autopilot play
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  env      - Serve the environment over HTTP
  train    - Train the Q-learning agent
  scores   - View high scores and training runs

Examples:
  noodle play --difficulty hard
  noodle watch --policy qlearning
  noodle train --episodes 5000
  noodle env --addr :8080
  noodle serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.noodle/noodle.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(scoresCmd)
}
