package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/noodle/internal/games/snake"
	"github.com/vovakirdan/noodle/internal/platform/tui"
	"github.com/vovakirdan/noodle/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game, Tab for the
scoreboard. After a game ends, you return to the menu.

Examples:
  noodle menu
  noodle menu --fps 30`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}

	rc := runtimeConfig()
	for {
		res, err := tui.RunMenu(rc)
		if err != nil {
			return err
		}
		rc = res.Config

		if res.Quit {
			return nil
		}

		if res.WantsScoreboard {
			back, err := tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if back {
				continue
			}
			return nil
		}

		if res.GameID == "" {
			return nil
		}

		preset, ok, err := choosePreset(rc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if !ok {
			continue
		}
		cfg, err := loadSnakeConfig(preset)
		if err != nil {
			return err
		}
		snake.SetConfig(cfg)

		game, err := registry.Create(res.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// New seed for every game unless one was pinned
		if flagSeed == 0 {
			rc.Seed = time.Now().UnixNano()
		}

		back, err := tui.Run(game, store, rc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !back {
			return nil
		}
	}
}
