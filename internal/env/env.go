// Package env wraps the engine as a reinforcement-learning environment:
// relative actions in, observations and shaped rewards out.
package env

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/noodle/internal/config"
	"github.com/vovakirdan/noodle/internal/engine"
)

// ErrEpisodeDone is returned by Step once the episode has ended.
var ErrEpisodeDone = errors.New("env: episode is over, call Reset")

// StepResult is the outcome of one environment step.
type StepResult struct {
	Observation Observation
	Reward      float64
	Terminated  bool // The snake died or filled the board
	Truncated   bool // Stopped for going too long without food
	Metrics     engine.Metrics
}

// Done reports whether the episode is over either way.
func (r StepResult) Done() bool {
	return r.Terminated || r.Truncated
}

// Env is one episode stream over a relative-scheme arena. It is not safe for
// concurrent use.
type Env struct {
	cfg    config.EnvConfig
	arena  *engine.Arena
	encode Encoder

	obs       Observation
	over      bool
	truncated bool
	reward    float64 // Accumulated this episode
}

// New creates an environment for cfg and resets it. Options are passed to
// the arena, so engine.WithSeed makes episodes reproducible.
func New(cfg config.SnakeConfig, opts ...engine.Option) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	encode, err := NewEncoder(cfg.Env.Observation)
	if err != nil {
		return nil, err
	}

	e := &Env{
		cfg:    cfg.Env,
		arena:  engine.NewArena(cfg.Grid.Engine(engine.SchemeRelative), opts...),
		encode: encode,
	}
	e.Reset()
	return e, nil
}

// Reset starts a new episode and returns its first observation.
func (e *Env) Reset() Observation {
	e.arena.Reset()
	// A board with no room for fruit is over before the first move
	e.over = e.arena.Metrics().Done
	e.truncated = false
	e.reward = 0
	e.obs = e.encode(e.arena)
	return e.obs
}

// Step applies one relative action.
//
// Rewards: RewardDeath when the snake collides, RewardDeath and truncation
// when it has gone StallLimit moves without food, RewardFood when it eats
// (including the meal that fills the board), RewardStep otherwise.
func (e *Env) Step(a engine.Action) (StepResult, error) {
	if e.over {
		return StepResult{}, ErrEpisodeDone
	}
	if !a.Valid() {
		return StepResult{}, fmt.Errorf("env: invalid action %d", a)
	}

	scoreBefore := e.arena.Metrics().Score
	m := e.arena.Step(engine.Turn(a))

	res := StepResult{Metrics: m}
	switch {
	case m.Done && m.Reason == engine.EndBoardFull && m.Score > scoreBefore:
		res.Reward = e.cfg.RewardFood
		res.Terminated = true
	case m.Done:
		res.Reward = e.cfg.RewardDeath
		res.Terminated = true
	case e.cfg.StallLimit > 0 && m.TurnsSinceAte >= e.cfg.StallLimit:
		res.Reward = e.cfg.RewardDeath
		res.Truncated = true
	case m.Score > scoreBefore:
		res.Reward = e.cfg.RewardFood
	default:
		res.Reward = e.cfg.RewardStep
	}

	e.obs = e.encode(e.arena)
	res.Observation = e.obs
	e.reward += res.Reward
	e.over = res.Done()
	e.truncated = res.Truncated
	return res, nil
}

// Observation returns the latest observation.
func (e *Env) Observation() Observation {
	return e.obs
}

// Done reports whether the current episode has ended.
func (e *Env) Done() bool {
	return e.over
}

// Truncated reports whether the current episode ended on the stall limit.
func (e *Env) Truncated() bool {
	return e.truncated
}

// TotalReward returns the reward accumulated in the current episode.
func (e *Env) TotalReward() float64 {
	return e.reward
}

// Metrics returns the arena's latest snapshot.
func (e *Env) Metrics() engine.Metrics {
	return e.arena.Metrics()
}

// Arena exposes the arena for read-only queries such as rendering.
func (e *Env) Arena() *engine.Arena {
	return e.arena
}
