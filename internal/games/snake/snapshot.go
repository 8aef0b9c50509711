package snake

import "github.com/vovakirdan/noodle/internal/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick           uint64
	Mode           Mode
	Score          int
	Steps          int
	SnakeLen       int
	Head           engine.Point
	Dir            engine.Direction
	Fruit          engine.Point
	MoveEveryTicks int
	Reason         engine.EndReason
	State          GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	m := g.arena.Metrics()
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case m.Done:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	s := g.arena.Snake()
	return Snapshot{
		Tick:           g.tick,
		Mode:           g.mode,
		Score:          m.Score,
		Steps:          m.StepsTaken,
		SnakeLen:       s.Len(),
		Head:           s.Head(),
		Dir:            s.Direction(),
		Fruit:          g.arena.Fruit().Position(),
		MoveEveryTicks: g.moveEvery,
		Reason:         m.Reason,
		State:          state,
	}
}
