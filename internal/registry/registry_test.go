package registry

import (
	"testing"

	"github.com/vovakirdan/noodle/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register(GameInfo{ID: "zz_stub", Title: "Stub"}, func() Game { return &stubGame{id: "zz_stub"} })
	Register(GameInfo{ID: "aa_stub", Title: "Stub A"}, func() Game { return &stubGame{id: "aa_stub"} })

	if !Exists("zz_stub") {
		t.Fatal("Exists() = false after Register")
	}

	g, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if g.ID() != "zz_stub" {
		t.Errorf("created game ID = %q", g.ID())
	}

	// Each call builds a fresh instance
	g2, _ := Create("zz_stub")
	if g == g2 {
		t.Error("Create() returned the same instance twice")
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("tetris"); err == nil {
		t.Error("Create() of an unknown game should fail")
	}
	if Exists("tetris") {
		t.Error("Exists() = true for an unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(GameInfo{ID: "dup_stub"}, func() Game { return &stubGame{} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register(GameInfo{ID: "dup_stub"}, func() Game { return &stubGame{} })
}
