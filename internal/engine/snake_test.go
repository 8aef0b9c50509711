package engine

import "testing"

// assertContiguous checks that neighbouring segments are one cell apart on
// exactly one axis.
func assertContiguous(t *testing.T, segments []Point, cell int) {
	t.Helper()
	for i := 0; i+1 < len(segments); i++ {
		d := segments[i].Sub(segments[i+1])
		dx, dy := abs(d.X), abs(d.Y)
		if !(dx == cell && dy == 0) && !(dx == 0 && dy == cell) {
			t.Fatalf("segments %d and %d not contiguous: %v -> %v", i, i+1, segments[i], segments[i+1])
		}
	}
}

func TestNewSnakeLayout(t *testing.T) {
	s := NewSnake(Point{50, 50}, 3, 25, DirRight)

	expected := []Point{{50, 50}, {25, 50}, {0, 50}}
	got := s.Segments()
	if len(got) != len(expected) {
		t.Fatalf("Segments() has %d entries, expected %d", len(got), len(expected))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("segment %d = %v, expected %v", i, got[i], expected[i])
		}
	}
	if s.Head() != (Point{50, 50}) || s.Tail() != (Point{0, 50}) {
		t.Errorf("Head/Tail = %v/%v", s.Head(), s.Tail())
	}
	if s.Direction() != DirRight {
		t.Errorf("Direction() = %v, expected right", s.Direction())
	}
	if s.Size() != 25 {
		t.Errorf("Size() = %d, expected 25", s.Size())
	}
}

func TestSegmentsIsCopy(t *testing.T) {
	s := NewSnake(Point{50, 50}, 3, 25, DirRight)

	segs := s.Segments()
	segs[0] = Point{-100, -100}

	if s.Head() != (Point{50, 50}) {
		t.Error("Mutating Segments() result changed the snake")
	}
}

func TestSetDirectionIgnoresReversal(t *testing.T) {
	for _, d := range Directions {
		t.Run(d.String(), func(t *testing.T) {
			s := NewSnake(Point{100, 100}, 3, 25, d)
			s.SetDirection(d.Opposite())
			if s.Direction() != d {
				t.Errorf("reversal from %v changed heading to %v", d, s.Direction())
			}

			s.SetDirection(d.RotateLeft())
			if s.Direction() != d.RotateLeft() {
				t.Errorf("turn from %v to %v was ignored", d, d.RotateLeft())
			}
		})
	}
}

func TestAdvanceKeepsLength(t *testing.T) {
	s := NewSnake(Point{50, 50}, 3, 25, DirRight)
	s.Advance()

	if s.Head() != (Point{75, 50}) {
		t.Errorf("Head() = %v, expected (75, 50)", s.Head())
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", s.Len())
	}
	if s.Tail() != (Point{25, 50}) {
		t.Errorf("Tail() = %v, expected (25, 50)", s.Tail())
	}
}

func TestMoveRelative(t *testing.T) {
	s := NewSnake(Point{100, 100}, 3, 25, DirUp)

	s.Move(ActionRight)
	if s.Direction() != DirRight || s.Head() != (Point{125, 100}) {
		t.Errorf("after right turn: dir=%v head=%v", s.Direction(), s.Head())
	}

	s.Move(ActionStraight)
	if s.Direction() != DirRight || s.Head() != (Point{150, 100}) {
		t.Errorf("after straight: dir=%v head=%v", s.Direction(), s.Head())
	}

	s.Move(ActionLeft)
	if s.Direction() != DirUp || s.Head() != (Point{150, 75}) {
		t.Errorf("after left turn: dir=%v head=%v", s.Direction(), s.Head())
	}
	assertContiguous(t, s.Segments(), 25)
}

func TestEatGrowsOverFollowingMoves(t *testing.T) {
	s := NewSnake(Point{200, 200}, 3, 25, DirRight)

	const meals = 4
	for i := 0; i < meals; i++ {
		s.Eat()
	}
	if s.TargetLength() != 3+meals {
		t.Fatalf("TargetLength() = %d, expected %d", s.TargetLength(), 3+meals)
	}
	if s.Len() != 3 {
		t.Fatalf("Eat should not add segments immediately, Len() = %d", s.Len())
	}

	actions := []Action{ActionStraight, ActionRight, ActionRight, ActionLeft, ActionStraight, ActionLeft}
	for i, a := range actions {
		s.Move(a)
		expected := min(3+i+1, 3+meals)
		if s.Len() != expected {
			t.Errorf("after move %d Len() = %d, expected %d", i+1, s.Len(), expected)
		}
		if s.Len() > s.TargetLength() {
			t.Errorf("Len() %d exceeds target %d", s.Len(), s.TargetLength())
		}
		assertContiguous(t, s.Segments(), 25)
	}
}

func TestLastAte(t *testing.T) {
	s := NewSnake(Point{50, 50}, 3, 25, DirRight)
	s.tick()
	s.tick()
	if s.LastAte() != 2 {
		t.Errorf("LastAte() = %d, expected 2", s.LastAte())
	}

	// Advance alone leaves the counter alone
	s.Advance()
	if s.LastAte() != 2 {
		t.Errorf("Advance changed LastAte() to %d", s.LastAte())
	}

	s.Eat()
	if s.LastAte() != 0 {
		t.Errorf("Eat should reset LastAte(), got %d", s.LastAte())
	}
}
