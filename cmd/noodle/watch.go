package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/noodle/internal/agent"
	"github.com/vovakirdan/noodle/internal/games/snake"
	"github.com/vovakirdan/noodle/internal/storage"
)

var (
	flagPolicy string
	flagTable  string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a policy play snake",
	Long: `Watch the autopilot play. The game restarts by itself after each death.

Policies:
  greedy     - Avoid danger, turn toward the fruit
  qlearning  - Play the Q-table saved by 'noodle train'

Examples:
  noodle watch
  noodle watch --policy qlearning --table default
  noodle watch --fps 30 --difficulty fixed`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagPolicy, "policy", agent.PolicyGreedy, "Policy: greedy, qlearning")
	watchCmd.Flags().StringVar(&flagTable, "table", "default", "Q-table name for the qlearning policy")
}

func runWatch(_ *cobra.Command, _ []string) error {
	cfg, err := loadSnakeConfig(flagDifficulty)
	if err != nil {
		return err
	}

	factory, err := policyFactory(flagPolicy, flagTable)
	if err != nil {
		return err
	}
	snake.SetConfig(cfg)
	snake.SetPolicyFactory(factory)

	return runGame(snake.IDAutopilot, runtimeConfig())
}

// policyFactory builds the factory autopilot games take their policy from.
// The policy is created once and shared; a Q-learner comes out of NewPolicy
// with exploration off, so it only reads the table loaded here.
func policyFactory(name, table string) (snake.PolicyFactory, error) {
	p, err := agent.NewPolicy(name, uint64(flagSeed))
	if err != nil {
		return nil, err
	}

	if q, ok := p.(*agent.QLearner); ok {
		if err := loadPolicyTable(q, table); err != nil {
			return nil, err
		}
	}
	return func(int64) agent.Policy { return p }, nil
}

func loadPolicyTable(q *agent.QLearner, table string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	found, err := agent.LoadTable(store, table, q)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(os.Stderr, "Warning: no Q-table %q yet, run 'noodle train' first\n", table)
	}
	return nil
}
