package engine

import "slices"

// Snake is the body of the player: an ordered list of occupied cells with the
// head at index 0, a target length, a heading and a counter of ticks since the
// last meal.
//
// The segment list never exceeds the target length, and every pair of
// neighbouring segments is exactly one cell apart along one axis.
type Snake struct {
	segments  []Point // Head at index 0
	length    int
	direction Direction
	size      int
	sinceAte  int
}

// NewSnake creates a snake whose head is at head, facing dir, with length
// segments laid out in a straight line behind the head.
func NewSnake(head Point, length, size int, dir Direction) *Snake {
	if length < 1 {
		length = 1
	}
	segments := make([]Point, length)
	back := dir.Opposite().Offset(size)
	segments[0] = head
	for i := 1; i < length; i++ {
		segments[i] = segments[i-1].Add(back)
	}
	return &Snake{
		segments:  segments,
		length:    length,
		direction: dir,
		size:      size,
	}
}

// Direction returns the current heading.
func (s *Snake) Direction() Direction {
	return s.direction
}

// SetDirection changes the heading unless d reverses it. Reversal attempts are
// ignored so the head can never turn back into the neck.
func (s *Snake) SetDirection(d Direction) {
	if !d.Valid() || d == s.direction.Opposite() {
		return
	}
	s.direction = d
}

// Move rotates the heading according to a relative action and advances.
func (s *Snake) Move(a Action) {
	s.direction = a.Apply(s.direction)
	s.Advance()
}

// Advance moves the head one cell along the heading and drops the tail while
// the body is longer than its target length.
func (s *Snake) Advance() {
	newHead := s.Head().Add(s.direction.Offset(s.size))
	s.segments = append([]Point{newHead}, s.segments...)
	for len(s.segments) > s.length {
		s.segments = s.segments[:len(s.segments)-1]
	}
}

// Eat grows the target length by one and resets the fed counter. The body
// itself grows over the following moves, one segment per move.
func (s *Snake) Eat() {
	s.length++
	s.sinceAte = 0
}

// tick records one step without food.
func (s *Snake) tick() {
	s.sinceAte++
}

// Head returns the head position.
func (s *Snake) Head() Point {
	return s.segments[0]
}

// Tail returns the last segment.
func (s *Snake) Tail() Point {
	return s.segments[len(s.segments)-1]
}

// Segments returns a copy of the body, head first.
func (s *Snake) Segments() []Point {
	return slices.Clone(s.segments)
}

// Size returns the cell size the snake moves by.
func (s *Snake) Size() int {
	return s.size
}

// Len returns the number of segments currently on the grid.
func (s *Snake) Len() int {
	return len(s.segments)
}

// TargetLength returns the length the body grows towards.
func (s *Snake) TargetLength() int {
	return s.length
}

// LastAte returns the number of ticks since the snake last ate.
func (s *Snake) LastAte() int {
	return s.sinceAte
}

// Contains reports whether any segment occupies p.
func (s *Snake) Contains(p Point) bool {
	return slices.Contains(s.segments, p)
}

// hitsBody reports whether p lies on any segment other than the head.
func (s *Snake) hitsBody(p Point) bool {
	return slices.Contains(s.segments[1:], p)
}
