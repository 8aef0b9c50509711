package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var fromYAML SnakeConfig
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if fromYAML != DefaultSnakeConfig() {
		t.Errorf("embedded defaults differ from DefaultSnakeConfig():\n%+v\n%+v", fromYAML, DefaultSnakeConfig())
	}
	if err := fromYAML.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SnakeConfig)
		wantErr string
	}{
		{"defaults", func(*SnakeConfig) {}, ""},
		{"zero cell", func(c *SnakeConfig) { c.Grid.CellSize = 0 }, "must be positive"},
		{"negative width", func(c *SnakeConfig) { c.Grid.Width = -400 }, "must be positive"},
		{"width not multiple", func(c *SnakeConfig) { c.Grid.Width = 410 }, "not a multiple"},
		{"height not multiple", func(c *SnakeConfig) { c.Grid.Height = 390 }, "not a multiple"},
		{"start length zero", func(c *SnakeConfig) { c.Grid.StartLength = 0 }, "at least 1"},
		{"start length too long", func(c *SnakeConfig) { c.Grid.StartLength = 10 }, "does not fit"},
		{"start length fills board", func(c *SnakeConfig) {
			c.Grid.Width, c.Grid.Height, c.Grid.CellSize, c.Grid.StartLength = 50, 25, 25, 2
		}, "no free cell"},
		{"tiny grid fits length 3", func(c *SnakeConfig) { c.Grid.Width, c.Grid.Height = 100, 100 }, ""},
		{"zero pace", func(c *SnakeConfig) { c.Play.MoveEveryTicks = 0 }, "move_every_ticks"},
		{"min pace above base", func(c *SnakeConfig) { c.Play.MinMoveEveryTicks = 8 }, "min_move_every_ticks"},
		{"unknown observation", func(c *SnakeConfig) { c.Env.Observation = "pixels" }, "unknown observation"},
		{"negative stall", func(c *SnakeConfig) { c.Env.StallLimit = -1 }, "stall_limit"},
		{"learning rate zero", func(c *SnakeConfig) { c.Agent.LearningRate = 0 }, "learning_rate"},
		{"discount above one", func(c *SnakeConfig) { c.Agent.Discount = 1.5 }, "discount"},
		{"epsilon below min", func(c *SnakeConfig) { c.Agent.Epsilon = 0.05 }, "epsilon range"},
		{"decay zero", func(c *SnakeConfig) { c.Agent.EpsilonDecay = 0 }, "epsilon_decay"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() = %v, expected error containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := "grid:\n  width: 200\n  height: 100\nenv:\n  observation: distances\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Grid.Width != 200 || cfg.Grid.Height != 100 {
		t.Errorf("grid = %dx%d, expected 200x100", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Grid.CellSize != 25 {
		t.Errorf("unset cell_size = %d, expected default 25", cfg.Grid.CellSize)
	}
	if cfg.Env.Observation != ObservationDistances {
		t.Errorf("observation = %q", cfg.Env.Observation)
	}
	if cfg.Agent != DefaultSnakeConfig().Agent {
		t.Errorf("agent settings changed: %+v", cfg.Agent)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("grid: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(broken); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("grid:\n  cell_size: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(invalid)
	if err == nil || !strings.Contains(err.Error(), "invalid.yaml") {
		t.Errorf("Load() of an invalid grid = %v, expected error naming the file", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded defaults
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != DefaultSnakeConfig() {
		t.Errorf("Load() without files = %+v, expected defaults", cfg)
	}

	writeYAML := func(dir, body string) {
		t.Helper()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "snake.yaml"), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	writeYAML(filepath.Join(work, "configs"), "play:\n  move_every_ticks: 8\n")
	cfg, _ = Load("")
	if cfg.Play.MoveEveryTicks != 8 {
		t.Errorf("local config ignored, move_every_ticks = %d", cfg.Play.MoveEveryTicks)
	}

	writeYAML(filepath.Join(home, ".noodle", "configs"), "play:\n  move_every_ticks: 4\n")
	cfg, _ = Load("")
	if cfg.Play.MoveEveryTicks != 4 {
		t.Errorf("user config should win over local, move_every_ticks = %d", cfg.Play.MoveEveryTicks)
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"easy", "normal", "HARD", "fixed"} {
		if _, err := ParsePreset(name); err != nil {
			t.Errorf("ParsePreset(%q) error: %v", name, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset should reject unknown presets")
	}
}

func TestApplySnakePreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		enabled      bool
		initialLevel float64
		moveEvery    int
	}{
		{DifficultyEasy, true, 0.0, 6},
		{DifficultyNormal, true, 0.3, 6},
		{DifficultyHard, true, 0.7, 4},
		{DifficultyFixed, false, 0.0, 6},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			ApplySnakePreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.initialLevel {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.initialLevel)
			}
			if cfg.Play.MoveEveryTicks != tc.moveEvery {
				t.Errorf("MoveEveryTicks = %d, expected %d", cfg.Play.MoveEveryTicks, tc.moveEvery)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}
