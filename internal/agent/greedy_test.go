package agent

import (
	"testing"

	"github.com/vovakirdan/noodle/internal/config"
	"github.com/vovakirdan/noodle/internal/engine"
	"github.com/vovakirdan/noodle/internal/env"
)

func TestGreedyFeatures(t *testing.T) {
	tests := []struct {
		name     string
		obs      env.Features
		expected engine.Action
	}{
		{
			name:     "food ahead",
			obs:      env.Features{Heading: engine.DirRight, FoodRight: true},
			expected: engine.ActionStraight,
		},
		{
			name:     "food above while heading right",
			obs:      env.Features{Heading: engine.DirRight, FoodUp: true},
			expected: engine.ActionLeft,
		},
		{
			name:     "food below while heading right",
			obs:      env.Features{Heading: engine.DirRight, FoodDown: true},
			expected: engine.ActionRight,
		},
		{
			name:     "food ahead but blocked",
			obs:      env.Features{Heading: engine.DirUp, FoodUp: true, DangerStraight: true},
			expected: engine.ActionLeft,
		},
		{
			name:     "only right is safe",
			obs:      env.Features{Heading: engine.DirUp, FoodLeft: true, DangerStraight: true, DangerLeft: true},
			expected: engine.ActionRight,
		},
		{
			name:     "food behind goes straight",
			obs:      env.Features{Heading: engine.DirDown, FoodUp: true},
			expected: engine.ActionStraight,
		},
		{
			name:     "trapped",
			obs:      env.Features{Heading: engine.DirLeft, DangerStraight: true, DangerLeft: true, DangerRight: true},
			expected: engine.ActionStraight,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := (Greedy{}).Act(tc.obs); got != tc.expected {
				t.Errorf("Act() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestGreedyDistances(t *testing.T) {
	tests := []struct {
		name     string
		obs      env.Distances
		expected engine.Action
	}{
		{"open ahead", env.Distances{Heading: engine.DirRight, Right: 5, Up: 2, Down: 2}, engine.ActionStraight},
		{"open above", env.Distances{Heading: engine.DirRight, Right: 0, Up: 4, Down: 2}, engine.ActionLeft},
		{"open to the right", env.Distances{Heading: engine.DirUp, Up: 1, Left: 1, Right: 3}, engine.ActionRight},
		{"tie keeps heading", env.Distances{Heading: engine.DirDown, Down: 2, Left: 2, Right: 2}, engine.ActionStraight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := (Greedy{}).Act(tc.obs); got != tc.expected {
				t.Errorf("Act() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestGreedyEats(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Env.StallLimit = 0

	e, err := env.New(cfg, engine.WithSeed(42))
	if err != nil {
		t.Fatalf("env.New() error: %v", err)
	}

	var res env.StepResult
	for i := 0; i < 500 && !res.Done(); i++ {
		res, err = e.Step(Greedy{}.Act(e.Observation()))
		if err != nil {
			t.Fatalf("Step() error: %v", err)
		}
	}
	if res.Metrics.Score == 0 {
		t.Error("greedy policy never ate")
	}
}

func TestNewPolicy(t *testing.T) {
	for _, name := range []string{PolicyGreedy, PolicyQ, ""} {
		if _, err := NewPolicy(name, 1); err != nil {
			t.Errorf("NewPolicy(%q) error: %v", name, err)
		}
	}
	if _, err := NewPolicy("dqn", 1); err == nil {
		t.Error("NewPolicy should reject unknown names")
	}
}
