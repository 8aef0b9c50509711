package core

// RuntimeConfig is what the platform tells a game when (re)starting it.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in cells
	ScreenH  int   // Screen height in cells
	TickRate int   // Ticks per second
	Seed     int64 // 0 lets the platform pick one from the clock
}

// DefaultConfig returns an 80×24 screen at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the part of a game's state the platform cares about.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by every game tick.
type StepResult struct {
	State GameState
}
