package agent

import (
	"math"
	"testing"

	"github.com/vovakirdan/noodle/internal/config"
	"github.com/vovakirdan/noodle/internal/engine"
	"github.com/vovakirdan/noodle/internal/env"
)

type keyObs string

func (k keyObs) Key() string       { return string(k) }
func (k keyObs) Vector() []float64 { return nil }

func testAgentConfig() config.AgentConfig {
	return config.AgentConfig{
		LearningRate: 0.5,
		Discount:     0.9,
		Epsilon:      0.9,
		MinEpsilon:   0.1,
		EpsilonDecay: 0.5,
	}
}

func TestQLearnerUpdate(t *testing.T) {
	q := NewQLearner(testAgentConfig(), 1)

	// Unseen next state bootstraps from 0
	q.Update("s", engine.ActionLeft, 10, "s2", false)
	if got := q.Table()["s"][engine.ActionLeft]; got != 5 {
		t.Fatalf("Q(s, left) = %v, expected 5", got)
	}

	q.Update("s2", engine.ActionRight, 2, "x", true)
	if got := q.Table()["s2"][engine.ActionRight]; got != 1 {
		t.Fatalf("Q(s2, right) = %v, expected 1", got)
	}

	// 5 + 0.5 * (1 + 0.9*1 - 5) = 3.45
	q.Update("s", engine.ActionLeft, 1, "s2", false)
	if got := q.Table()["s"][engine.ActionLeft]; math.Abs(got-3.45) > 1e-9 {
		t.Errorf("Q(s, left) = %v, expected 3.45", got)
	}
}

func TestQLearnerTerminalIgnoresNext(t *testing.T) {
	q := NewQLearner(testAgentConfig(), 1)
	q.Update("next", engine.ActionStraight, 100, "end", true)

	q.Update("s", engine.ActionStraight, -10, "next", true)
	if got := q.Table()["s"][engine.ActionStraight]; got != -5 {
		t.Errorf("terminal update = %v, expected -5", got)
	}
}

func TestQLearnerBest(t *testing.T) {
	q := NewQLearner(testAgentConfig(), 1)

	if got := q.Best("unseen"); got != engine.ActionStraight {
		t.Errorf("Best(unseen) = %v, expected straight", got)
	}

	q.Restore(QTable{"s": {0.1, -1, 0.7}}, 0.5, 3)
	if got := q.Best("s"); got != engine.ActionRight {
		t.Errorf("Best(s) = %v, expected right", got)
	}

	q.SetExploration(false)
	for i := 0; i < 20; i++ {
		if got := q.Act(keyObs("s")); got != engine.ActionRight {
			t.Fatalf("Act() without exploration = %v", got)
		}
	}
}

func TestQLearnerEpsilonDecay(t *testing.T) {
	q := NewQLearner(testAgentConfig(), 1)

	expected := []float64{0.45, 0.225, 0.1125, 0.1, 0.1}
	for i, want := range expected {
		q.EndEpisode()
		if got := q.Epsilon(); math.Abs(got-want) > 1e-9 {
			t.Errorf("after %d episodes epsilon = %v, expected %v", i+1, got, want)
		}
	}
	if q.Episodes() != len(expected) {
		t.Errorf("Episodes() = %d", q.Episodes())
	}
}

func TestQLearnerExplores(t *testing.T) {
	cfg := testAgentConfig()
	cfg.Epsilon = 1
	q := NewQLearner(cfg, 7)
	q.Restore(QTable{"s": {1, 0, 0}}, 1, 0)

	seen := map[engine.Action]bool{}
	for i := 0; i < 200; i++ {
		seen[q.Act(keyObs("s"))] = true
	}
	if len(seen) != len(engine.Actions) {
		t.Errorf("full exploration picked only %v", seen)
	}
}

func TestQLearnerSameSeedSameChoices(t *testing.T) {
	a := NewQLearner(testAgentConfig(), 3)
	b := NewQLearner(testAgentConfig(), 3)
	for i := 0; i < 100; i++ {
		if x, y := a.Act(keyObs("s")), b.Act(keyObs("s")); x != y {
			t.Fatalf("choice %d differs: %v vs %v", i, x, y)
		}
	}
}

func TestRestoreDropsMalformedRows(t *testing.T) {
	q := NewQLearner(testAgentConfig(), 1)
	q.Restore(QTable{"ok": {1, 2, 3}, "short": {1}}, 0.2, 9)

	if _, ok := q.Table()["short"]; ok {
		t.Error("row with the wrong width was kept")
	}
	if _, ok := q.Table()["ok"]; !ok {
		t.Error("valid row was dropped")
	}
	if q.Epsilon() != 0.2 || q.Episodes() != 9 {
		t.Errorf("epsilon/episodes = %v/%d", q.Epsilon(), q.Episodes())
	}
}

var _ Policy = (*QLearner)(nil)
var _ Policy = Greedy{}
var _ env.Observation = keyObs("")
