package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/noodle/internal/core"
	"github.com/vovakirdan/noodle/internal/games/snake"
	"github.com/vovakirdan/noodle/internal/platform/tui"
	"github.com/vovakirdan/noodle/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake",
	Long: `Play snake in the terminal.

Controls:
  Arrows/WASD/HJKL  - Steer
  P/Space           - Pause
  R                 - Restart (after game over)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Start slow, speed up as you eat
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty and faster
  fixed  - Keep the configured pace

Without --difficulty a picker is shown first.

Examples:
  noodle play
  noodle play --difficulty hard
  noodle play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	rc := runtimeConfig()

	preset, ok, err := choosePreset(rc)
	if err != nil || !ok {
		return err
	}
	cfg, err := loadSnakeConfig(preset)
	if err != nil {
		return err
	}
	snake.SetConfig(cfg)

	return runGame(snake.IDHuman, rc)
}

// choosePreset returns --difficulty, or asks for one. ok is false when the
// user backed out of the picker.
func choosePreset(rc core.RuntimeConfig) (preset string, ok bool, err error) {
	if flagDifficulty != "" {
		return flagDifficulty, true, nil
	}
	p, err := tui.RunDifficultySelector(rc)
	if err != nil || p == nil {
		return "", false, err
	}
	return string(*p), true, nil
}

func runGame(gameID string, rc core.RuntimeConfig) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, rc); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
