package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/noodle/internal/agent"
	"github.com/vovakirdan/noodle/internal/engine"
	"github.com/vovakirdan/noodle/internal/env"
	"github.com/vovakirdan/noodle/internal/storage"
)

var (
	flagEpisodes   int
	flagTrainTable string
	flagFresh      bool
	flagLogEvery   int
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the Q-learning agent",
	Long: `Run Q-learning episodes against the environment and save the table.

Training continues from the saved table unless --fresh is given. Every
episode is recorded and shows up on the scoreboard's training tab.
Ctrl+C stops after the current episode and still saves the table.

Examples:
  noodle train --episodes 5000
  noodle train --table small --config ./small-board.yaml
  noodle train --fresh --seed 7`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().IntVar(&flagEpisodes, "episodes", 1000, "Number of episodes")
	trainCmd.Flags().StringVar(&flagTrainTable, "table", "default", "Q-table name to load and save")
	trainCmd.Flags().BoolVar(&flagFresh, "fresh", false, "Start from an empty table")
	trainCmd.Flags().IntVar(&flagLogEvery, "log-every", 100, "Log progress every n episodes")
}

func runTrain(_ *cobra.Command, _ []string) error {
	logger, err := newLogger("train")
	if err != nil {
		return err
	}
	cfg, err := loadSnakeConfig("")
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e, err := env.New(cfg, engine.WithSeed(seed))
	if err != nil {
		return err
	}

	q := agent.NewQLearner(cfg.Agent, uint64(seed))
	if !flagFresh {
		found, err := agent.LoadTable(store, flagTrainTable, q)
		if err != nil {
			return err
		}
		if found {
			logger.Info("resuming", "table", flagTrainTable, "episodes", q.Episodes(), "epsilon", q.Epsilon())
		}
	}

	trainer := agent.NewTrainer(e, q,
		agent.WithRecorder(store),
		agent.WithLogger(logger),
		agent.WithLogEvery(flagLogEvery),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, trainErr := trainer.Train(ctx, flagEpisodes)
	if trainErr != nil && !errors.Is(trainErr, context.Canceled) {
		return trainErr
	}

	if err := agent.SaveTable(store, flagTrainTable, q); err != nil {
		return err
	}
	logger.Info("saved table", "table", flagTrainTable, "states", len(q.Table()))

	fmt.Printf("Run %s: %d episodes, best %d, avg score %.2f, avg reward %.2f, epsilon %.3f\n",
		sum.RunID, sum.Episodes, sum.BestScore, sum.AvgScore, sum.AvgReward, sum.Epsilon)
	return nil
}
