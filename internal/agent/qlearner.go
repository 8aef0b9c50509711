package agent

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/vovakirdan/noodle/internal/config"
	"github.com/vovakirdan/noodle/internal/engine"
	"github.com/vovakirdan/noodle/internal/env"
)

// QTable maps an observation key to one value per relative action, indexed
// by the action's ordinal.
type QTable map[string][]float64

// DefaultLearnerConfig returns the agent section of the default config.
func DefaultLearnerConfig() config.AgentConfig {
	return config.DefaultSnakeConfig().Agent
}

// QLearner is a tabular Q-learning agent with epsilon-greedy exploration.
// Epsilon decays per finished episode as Epsilon*EpsilonDecay^episodes and
// never drops below MinEpsilon. Not safe for concurrent use.
type QLearner struct {
	cfg      config.AgentConfig
	table    QTable
	epsilon  float64
	episodes int
	explore  bool
	rng      *rand.Rand
}

// NewQLearner returns a learner with an empty table and exploration on.
func NewQLearner(cfg config.AgentConfig, seed uint64) *QLearner {
	return &QLearner{
		cfg:     cfg,
		table:   make(QTable),
		epsilon: cfg.Epsilon,
		explore: true,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Act picks a random action with probability epsilon while exploring, and
// the best known action otherwise.
func (q *QLearner) Act(obs env.Observation) engine.Action {
	if q.explore && q.rng.Float64() < q.epsilon {
		return engine.Actions[q.rng.Intn(len(engine.Actions))]
	}
	return q.Best(obs.Key())
}

// Best returns the action with the highest value for state. Unseen states
// and ties resolve to the lowest ordinal, which is straight.
func (q *QLearner) Best(state string) engine.Action {
	values, ok := q.table[state]
	if !ok {
		return engine.ActionStraight
	}
	best, bestQ := 0, math.Inf(-1)
	for i, v := range values {
		if v > bestQ {
			best, bestQ = i, v
		}
	}
	return engine.Action(best)
}

// Update applies the Bellman update
//
//	Q(s,a) += lr * (r + discount * max Q(s',·) - Q(s,a))
//
// Terminal transitions do not bootstrap from next.
func (q *QLearner) Update(state string, a engine.Action, reward float64, next string, terminal bool) {
	values := q.values(state)
	target := reward
	if !terminal {
		target += q.cfg.Discount * q.maxValue(next)
	}
	values[a] += q.cfg.LearningRate * (target - values[a])
}

func (q *QLearner) values(state string) []float64 {
	values, ok := q.table[state]
	if !ok {
		values = make([]float64, len(engine.Actions))
		q.table[state] = values
	}
	return values
}

// maxValue is 0 for states never seen.
func (q *QLearner) maxValue(state string) float64 {
	values, ok := q.table[state]
	if !ok {
		return 0
	}
	m := math.Inf(-1)
	for _, v := range values {
		m = max(m, v)
	}
	return m
}

// EndEpisode counts a finished episode and decays epsilon.
func (q *QLearner) EndEpisode() {
	q.episodes++
	q.epsilon = max(q.cfg.MinEpsilon, q.cfg.Epsilon*math.Pow(q.cfg.EpsilonDecay, float64(q.episodes)))
}

// SetExploration turns epsilon-greedy exploration on or off. With it off
// the learner always exploits.
func (q *QLearner) SetExploration(on bool) {
	q.explore = on
}

// Epsilon returns the current exploration rate.
func (q *QLearner) Epsilon() float64 {
	return q.epsilon
}

// Episodes returns the number of finished episodes.
func (q *QLearner) Episodes() int {
	return q.episodes
}

// Table returns the live table.
func (q *QLearner) Table() QTable {
	return q.table
}

// Restore replaces the table and the episode counter, for example with a
// table loaded from storage. Rows of the wrong width are dropped.
func (q *QLearner) Restore(table QTable, epsilon float64, episodes int) {
	q.table = make(QTable, len(table))
	for state, values := range table {
		if len(values) == len(engine.Actions) {
			q.table[state] = values
		}
	}
	q.epsilon = epsilon
	q.episodes = episodes
}
