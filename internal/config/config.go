// Package config provides YAML-based configuration loading and difficulty
// management for noodle.
package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/noodle/internal/engine"
)

// SnakeConfig contains every tunable of the game, the RL environment and the
// tabular agent.
type SnakeConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Play       PlayConfig       `yaml:"play"`
	Env        EnvConfig        `yaml:"env"`
	Agent      AgentConfig      `yaml:"agent"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig sizes the arena in pixels.
type GridConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	CellSize    int `yaml:"cell_size"`
	StartLength int `yaml:"start_length"`
}

// PlayConfig paces interactive play.
type PlayConfig struct {
	MoveEveryTicks    int `yaml:"move_every_ticks"`     // Ticks between moves at the start
	MinMoveEveryTicks int `yaml:"min_move_every_ticks"` // Fastest pace difficulty can reach
}

// EnvConfig shapes rewards and observations of the RL environment.
type EnvConfig struct {
	RewardFood  float64 `yaml:"reward_food"`
	RewardDeath float64 `yaml:"reward_death"`
	RewardStep  float64 `yaml:"reward_step"`
	StallLimit  int     `yaml:"stall_limit"` // Moves without food before truncation, 0 disables
	Observation string  `yaml:"observation"` // "features" or "distances"
}

// AgentConfig holds the tabular Q-learning hyperparameters.
type AgentConfig struct {
	LearningRate float64 `yaml:"learning_rate"`
	Discount     float64 `yaml:"discount"`
	Epsilon      float64 `yaml:"epsilon"`
	MinEpsilon   float64 `yaml:"min_epsilon"`
	EpsilonDecay float64 `yaml:"epsilon_decay"`
}

// DifficultyConfig defines how the snake speeds up.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives difficulty up.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Speed added at max difficulty
}

// Observation encoders understood by the environment.
const (
	ObservationFeatures  = "features"
	ObservationDistances = "distances"
)

// Engine returns the engine configuration for this grid.
func (g GridConfig) Engine(scheme engine.Scheme) engine.Config {
	return engine.Config{
		Width:       g.Width,
		Height:      g.Height,
		CellSize:    g.CellSize,
		StartLength: g.StartLength,
		Scheme:      scheme,
	}
}

// Cols returns the number of cells per row.
func (g GridConfig) Cols() int {
	return g.Width / g.CellSize
}

// Rows returns the number of cells per column.
func (g GridConfig) Rows() int {
	return g.Height / g.CellSize
}

// Validate checks the settings the engine relies on but does not check
// itself.
func (c SnakeConfig) Validate() error {
	g := c.Grid
	switch {
	case g.Width <= 0 || g.Height <= 0 || g.CellSize <= 0:
		return fmt.Errorf("config: grid %dx%d with cell %d must be positive", g.Width, g.Height, g.CellSize)
	case g.Width%g.CellSize != 0 || g.Height%g.CellSize != 0:
		return fmt.Errorf("config: grid %dx%d is not a multiple of cell size %d", g.Width, g.Height, g.CellSize)
	case g.StartLength < 1:
		return fmt.Errorf("config: start length %d must be at least 1", g.StartLength)
	case g.StartLength > g.Cols()/2+1:
		// The body is laid out left of the centre cell
		return fmt.Errorf("config: start length %d does not fit a %d column grid", g.StartLength, g.Cols())
	case g.StartLength >= g.Cols()*g.Rows():
		return fmt.Errorf("config: start length %d leaves no free cell on a %dx%d grid", g.StartLength, g.Cols(), g.Rows())
	}

	if c.Play.MoveEveryTicks < 1 {
		return fmt.Errorf("config: move_every_ticks %d must be at least 1", c.Play.MoveEveryTicks)
	}
	if c.Play.MinMoveEveryTicks < 1 || c.Play.MinMoveEveryTicks > c.Play.MoveEveryTicks {
		return fmt.Errorf("config: min_move_every_ticks %d must be in [1, %d]", c.Play.MinMoveEveryTicks, c.Play.MoveEveryTicks)
	}

	switch c.Env.Observation {
	case ObservationFeatures, ObservationDistances:
	default:
		return fmt.Errorf("config: unknown observation %q", c.Env.Observation)
	}
	if c.Env.StallLimit < 0 {
		return fmt.Errorf("config: stall_limit %d must not be negative", c.Env.StallLimit)
	}

	a := c.Agent
	if a.LearningRate <= 0 || a.LearningRate > 1 {
		return fmt.Errorf("config: learning_rate %v must be in (0, 1]", a.LearningRate)
	}
	if a.Discount < 0 || a.Discount > 1 {
		return fmt.Errorf("config: discount %v must be in [0, 1]", a.Discount)
	}
	if a.MinEpsilon < 0 || a.MinEpsilon > a.Epsilon || a.Epsilon > 1 {
		return fmt.Errorf("config: epsilon range [%v, %v] is invalid", a.MinEpsilon, a.Epsilon)
	}
	if a.EpsilonDecay <= 0 || a.EpsilonDecay > 1 {
		return fmt.Errorf("config: epsilon_decay %v must be in (0, 1]", a.EpsilonDecay)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(name))
	switch p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
