package engine

import "math"

// EndReason describes why an episode ended.
type EndReason string

const (
	EndNone      EndReason = ""
	EndWall      EndReason = "wall"
	EndSelf      EndReason = "self"
	EndBoardFull EndReason = "board_full" // No free cell left for the fruit
)

// Metrics is the snapshot produced by every step. It is returned by value and
// never modified afterwards.
type Metrics struct {
	Done           bool
	Score          int     // Fruits eaten this episode
	StepsTaken     int     // Completed moves this episode
	TurnsSinceAte  int     // Moves since the last fruit
	DistanceToFood int     // Manhattan distance from head to fruit, in cells
	MovesPerFood   float64 // StepsTaken / Score, +Inf while Score is 0
	Reason         EndReason
}

// HasMovesPerFood reports whether MovesPerFood is a finite average.
func (m Metrics) HasMovesPerFood() bool {
	return m.Score > 0
}

func movesPerFood(steps, score int) float64 {
	if score == 0 {
		return math.Inf(1)
	}
	return float64(steps) / float64(score)
}
