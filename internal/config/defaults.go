package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in configuration. It matches the
// embedded defaults/snake.yaml.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Width:       400,
			Height:      400,
			CellSize:    25,
			StartLength: 3,
		},
		Play: PlayConfig{
			MoveEveryTicks:    6,
			MinMoveEveryTicks: 2,
		},
		Env: EnvConfig{
			RewardFood:  10,
			RewardDeath: -10,
			RewardStep:  1,
			StallLimit:  50,
			Observation: ObservationFeatures,
		},
		Agent: AgentConfig{
			LearningRate: 0.1,
			Discount:     0.9,
			Epsilon:      0.9,
			MinEpsilon:   0.1,
			EpsilonDecay: 0.999,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 40,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 2.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
