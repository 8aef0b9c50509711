package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/noodle/internal/env"
	"github.com/vovakirdan/noodle/internal/storage"
)

// EpisodeRecorder persists finished training episodes.
type EpisodeRecorder interface {
	SaveEpisode(e storage.Episode) (int64, error)
}

// TableStore persists Q-tables by name.
type TableStore interface {
	SaveQTable(name string, table map[string][]float64, meta storage.QTableMeta) error
	LoadQTable(name string) (map[string][]float64, storage.QTableMeta, error)
}

// Summary is the outcome of a training run.
type Summary struct {
	RunID     string
	Episodes  int
	BestScore int
	AvgScore  float64
	AvgReward float64
	Epsilon   float64
}

// Trainer runs Q-learning episodes against an environment.
type Trainer struct {
	env      *env.Env
	learner  *QLearner
	recorder EpisodeRecorder
	logger   *log.Logger
	runID    string
	logEvery int
}

// TrainerOption configures a Trainer.
type TrainerOption func(*Trainer)

// WithRecorder stores every finished episode.
func WithRecorder(r EpisodeRecorder) TrainerOption {
	return func(t *Trainer) { t.recorder = r }
}

// WithLogger sets the logger. By default the trainer is silent.
func WithLogger(l *log.Logger) TrainerOption {
	return func(t *Trainer) { t.logger = l }
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) TrainerOption {
	return func(t *Trainer) { t.runID = id }
}

// WithLogEvery logs a progress line every n episodes.
func WithLogEvery(n int) TrainerOption {
	return func(t *Trainer) { t.logEvery = n }
}

// NewTrainer creates a trainer. The learner's exploration is switched on.
func NewTrainer(e *env.Env, q *QLearner, opts ...TrainerOption) *Trainer {
	t := &Trainer{
		env:      e,
		learner:  q,
		logEvery: 100,
		runID:    "run-" + time.Now().UTC().Format("20060102T150405.000"),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = log.New(io.Discard)
	}
	q.SetExploration(true)
	return t
}

// RunID returns the identifier episodes are recorded under.
func (t *Trainer) RunID() string {
	return t.runID
}

// Train plays n episodes. It stops early, returning the summary so far and
// ctx.Err(), when ctx is cancelled between episodes.
func (t *Trainer) Train(ctx context.Context, n int) (Summary, error) {
	sum := Summary{RunID: t.runID}
	var totalScore, totalReward float64

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return t.finish(sum, totalScore, totalReward), err
		}

		ep, err := t.runEpisode()
		if err != nil {
			return t.finish(sum, totalScore, totalReward), err
		}
		ep.Episode = i + 1

		sum.Episodes++
		sum.BestScore = max(sum.BestScore, ep.Score)
		totalScore += float64(ep.Score)
		totalReward += ep.Reward

		if t.recorder != nil {
			if _, err := t.recorder.SaveEpisode(ep); err != nil {
				return t.finish(sum, totalScore, totalReward), err
			}
		}
		if t.logEvery > 0 && ep.Episode%t.logEvery == 0 {
			t.logger.Info("episode finished",
				"run", t.runID,
				"episode", ep.Episode,
				"score", ep.Score,
				"best", sum.BestScore,
				"reason", ep.Reason,
				"epsilon", fmt.Sprintf("%.3f", ep.Epsilon),
			)
		}
	}

	sum = t.finish(sum, totalScore, totalReward)
	t.logger.Info("training finished",
		"run", t.runID,
		"episodes", sum.Episodes,
		"best", sum.BestScore,
		"avg_score", fmt.Sprintf("%.2f", sum.AvgScore),
	)
	return sum, nil
}

func (t *Trainer) runEpisode() (storage.Episode, error) {
	obs := t.env.Reset()
	for {
		a := t.learner.Act(obs)
		res, err := t.env.Step(a)
		if err != nil {
			return storage.Episode{}, fmt.Errorf("agent: step failed: %w", err)
		}
		t.learner.Update(obs.Key(), a, res.Reward, res.Observation.Key(), res.Terminated)
		obs = res.Observation

		if res.Done() {
			t.learner.EndEpisode()
			reason := string(res.Metrics.Reason)
			if res.Truncated {
				reason = "stall"
			}
			return storage.Episode{
				RunID:     t.runID,
				Score:     res.Metrics.Score,
				Steps:     res.Metrics.StepsTaken,
				Reward:    t.env.TotalReward(),
				Reason:    reason,
				Truncated: res.Truncated,
				Epsilon:   t.learner.Epsilon(),
			}, nil
		}
	}
}

func (t *Trainer) finish(sum Summary, totalScore, totalReward float64) Summary {
	if sum.Episodes > 0 {
		sum.AvgScore = totalScore / float64(sum.Episodes)
		sum.AvgReward = totalReward / float64(sum.Episodes)
	}
	sum.Epsilon = t.learner.Epsilon()
	return sum
}

// SaveTable writes the learner's table and progress under name.
func SaveTable(s TableStore, name string, q *QLearner) error {
	return s.SaveQTable(name, q.Table(), storage.QTableMeta{
		Epsilon:  q.Epsilon(),
		Episodes: q.Episodes(),
	})
}

// LoadTable restores a learner from the table saved under name. It reports
// false without error when nothing was saved yet.
func LoadTable(s TableStore, name string, q *QLearner) (bool, error) {
	table, meta, err := s.LoadQTable(name)
	if errors.Is(err, storage.ErrNoQTable) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	q.Restore(table, meta.Epsilon, meta.Episodes)
	return true, nil
}
