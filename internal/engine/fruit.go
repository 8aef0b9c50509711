package engine

// Fruit is the single food item on the grid. It has no behaviour of its own:
// the arena decides where it respawns because legal positions depend on the
// snake.
type Fruit struct {
	position Point
	size     int
}

// Position returns the fruit's cell.
func (f Fruit) Position() Point {
	return f.position
}

// Size returns the fruit's footprint in pixels.
func (f Fruit) Size() int {
	return f.size
}
