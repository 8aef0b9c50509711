// Package engine implements the deterministic snake game state: grid geometry,
// the snake body, food placement, collision rules and per-step metrics.
//
// The package has no I/O and no timing. Drivers (the terminal UI, the RL
// environment, the HTTP adapter) call Reset and Step and read state through
// accessors; they never mutate engine state directly.
package engine

import "fmt"

// Point is a grid position in pixel units. Cells are CellSize pixels wide, so
// valid positions are multiples of the cell size.
type Point struct {
	X, Y int
}

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the component-wise difference p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Manhattan returns |dx| + |dy| between p and q in pixel units.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
