// Package agent holds the controllers that play the snake through the
// relative scheme: a rule-based greedy policy and a tabular Q-learner.
package agent

import (
	"fmt"

	"github.com/vovakirdan/noodle/internal/engine"
	"github.com/vovakirdan/noodle/internal/env"
)

// Policy picks the next relative action for an observation.
type Policy interface {
	Act(obs env.Observation) engine.Action
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(obs env.Observation) engine.Action

func (f PolicyFunc) Act(obs env.Observation) engine.Action {
	return f(obs)
}

// Policy names accepted by NewPolicy.
const (
	PolicyGreedy = "greedy"
	PolicyQ      = "qlearning"
)

// NewPolicy returns a fresh policy by name. A Q-learner created here starts
// with an empty table and exploration off; load a table into it to make it
// useful.
func NewPolicy(name string, seed uint64) (Policy, error) {
	switch name {
	case PolicyGreedy, "":
		return Greedy{}, nil
	case PolicyQ:
		q := NewQLearner(DefaultLearnerConfig(), seed)
		q.SetExploration(false)
		return q, nil
	}
	return nil, fmt.Errorf("agent: unknown policy %q", name)
}
