package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/noodle/internal/core"
	_ "github.com/vovakirdan/noodle/internal/games/snake"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(SessionModel), cmd
}

func TestMenuListsRegisteredGames(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	view := m.View()
	for _, title := range []string{"Snake", "Snake (Autopilot)"} {
		if !strings.Contains(view, title) {
			t.Errorf("menu is missing %q:\n%s", title, view)
		}
	}
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	s := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})

	// The first item is the keyboard game
	s, cmd := sessionUpdate(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	if s.view != viewGame {
		t.Fatalf("enter did not start a game, view = %v", s.view)
	}
	if cmd == nil {
		t.Error("starting a game should schedule a tick")
	}
	if s.game.game.ID() != "snake" {
		t.Errorf("started %q", s.game.game.ID())
	}

	s, _ = sessionUpdate(t, s, TickMsg{})
	if !strings.Contains(s.View(), "Score: 0") {
		t.Errorf("game view missing HUD:\n%s", s.View())
	}

	s, cmd = sessionUpdate(t, s, tea.KeyMsg{Type: tea.KeyEsc})
	if s.view != viewMenu || cmd != nil {
		t.Errorf("esc should return to the menu without quitting (view %v)", s.view)
	}
	if !strings.Contains(s.View(), "Select a game") {
		t.Error("menu not shown after leaving the game")
	}
}

func TestSessionScoreboardAndBack(t *testing.T) {
	s := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	s, _ = sessionUpdate(t, s, tea.KeyMsg{Type: tea.KeyTab})
	if s.view != viewScoreboard {
		t.Fatalf("tab did not open the scoreboard")
	}
	if !strings.Contains(s.View(), "HIGH SCORES") {
		t.Errorf("scoreboard view:\n%s", s.View())
	}

	s, cmd := sessionUpdate(t, s, tea.KeyMsg{Type: tea.KeyEsc})
	if s.view != viewMenu || cmd != nil {
		t.Error("esc should return from the scoreboard to the menu")
	}
}

func TestSessionQuit(t *testing.T) {
	s := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	s, cmd := sessionUpdate(t, s, runeKey('q'))
	if !s.quitting || cmd == nil {
		t.Error("q should quit the session")
	}
	if s.View() != "" {
		t.Error("quitting session should render nothing")
	}
}

func TestScoreboardTrainingTab(t *testing.T) {
	store := openStore(t)
	m := NewScoreboardModel(store, 100, 30)

	// The training tab is always last
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if !m.onTrainingTab() {
		t.Fatal("shift+tab from the first tab should wrap to the training tab")
	}
	if !strings.Contains(m.View(), "No training runs yet") {
		t.Errorf("empty training tab:\n%s", m.View())
	}
}

func TestScoreboardStatsFooter(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("snake", 7, 90, "wall"); err != nil {
		t.Fatal(err)
	}

	m := NewScoreboardModel(store, 100, 30)
	view := m.View()
	if !strings.Contains(view, "1 games  best 7") {
		t.Errorf("stats footer missing:\n%s", view)
	}
	if !strings.Contains(view, "wall") {
		t.Errorf("end reason column missing:\n%s", view)
	}
}
