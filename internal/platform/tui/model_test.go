package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/noodle/internal/core"
	"github.com/vovakirdan/noodle/internal/engine"
	"github.com/vovakirdan/noodle/internal/storage"
)

// scriptedGame ends after a fixed number of ticks with a fixed score.
type scriptedGame struct {
	resets int
	ticks  int
	endAt  int
	score  int
	lastIn core.InputFrame
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.ticks = 0
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.lastIn = core.NewInputFrame()
	for a := range in.Actions {
		g.lastIn.Set(a)
	}
	if in.Has(core.ActionRestart) && g.ticks >= g.endAt {
		g.Reset(core.RuntimeConfig{})
		return core.StepResult{State: g.State()}
	}
	if g.ticks < g.endAt {
		g.ticks++
	}
	return core.StepResult{State: g.State()}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.ticks >= g.endAt}
}

func (g *scriptedGame) Metrics() engine.Metrics {
	return engine.Metrics{Score: g.score, StepsTaken: g.ticks, Done: g.ticks >= g.endAt, Reason: engine.EndSelf}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg{})
	return next.(Model)
}

func TestModelSavesScoreOnce(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{endAt: 3, score: 7}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1})
	m.Init()

	for i := 0; i < 6; i++ {
		m = tick(t, m)
	}

	scores, err := store.AllScores("scripted")
	if err != nil {
		t.Fatalf("AllScores() error: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, expected 1", len(scores))
	}
	if scores[0].Score != 7 || scores[0].Steps != 3 || scores[0].Reason != "self" {
		t.Errorf("saved %+v", scores[0])
	}

	// A restart re-arms saving for the next game over
	next, _ := m.Update(runeKey('r'))
	m = next.(Model)
	for i := 0; i < 6; i++ {
		m = tick(t, m)
	}
	if scores, _ := store.AllScores("scripted"); len(scores) != 2 {
		t.Errorf("saved %d scores after the second game, expected 2", len(scores))
	}
}

func TestModelSkipsZeroScores(t *testing.T) {
	store := openStore(t)
	m := NewModel(&scriptedGame{endAt: 1}, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 1})
	m.Init()
	m = tick(t, m)
	m = tick(t, m)

	if scores, _ := store.AllScores("scripted"); len(scores) != 0 {
		t.Errorf("zero score was saved: %+v", scores)
	}
}

func TestModelForwardsInputOnce(t *testing.T) {
	game := &scriptedGame{endAt: 100}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 1})
	m.Init()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(Model)
	m = tick(t, m)
	if !game.lastIn.Has(core.ActionLeft) {
		t.Fatal("key press did not reach the game")
	}
	m = tick(t, m)
	if game.lastIn.Has(core.ActionLeft) {
		t.Error("input frame was not cleared after the tick")
	}
}

func TestModelQuitAndBack(t *testing.T) {
	m := NewModel(&scriptedGame{endAt: 100}, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 1})
	next, cmd := m.Update(runeKey('q'))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).BackToMenu() || cmd == nil {
		t.Error("esc should leave a standalone game")
	}

	embedded := newEmbeddedModel(&scriptedGame{endAt: 100}, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 1})
	next, cmd = embedded.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).BackToMenu() || cmd != nil {
		t.Error("esc in an embedded game should hand back without quitting")
	}
}

func TestModelResizeRestartsRunningGame(t *testing.T) {
	game := &scriptedGame{endAt: 100}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 1})
	m.Init()
	m = tick(t, m)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(Model)
	if game.resets != 2 {
		t.Errorf("resets = %d, expected 2", game.resets)
	}
	if m.screen.Width() != 60 || m.screen.Height() != 20 {
		t.Errorf("screen is %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(&scriptedGame{endAt: 100}, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 3, Seed: 1})
	m.Init()
	if m.View() != "" {
		t.Error("view before the first tick should be empty")
	}
	m = tick(t, m)
	if !strings.Contains(m.View(), "scripted") {
		t.Errorf("View() = %q", m.View())
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.DrawTextColored(2, 0, "cd", core.ColorRed)
	s.DrawTextColored(0, 1, "xyz", core.Color(200))

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, expected 2", len(lines))
	}
	// Styles may or may not emit escapes depending on the terminal profile
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "cd") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "xyz") {
		t.Errorf("unknown colours should fall back to the default style: %q", lines[1])
	}
}
