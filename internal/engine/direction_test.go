package engine

import "testing"

func TestDirectionRotation(t *testing.T) {
	tests := []struct {
		dir         Direction
		left, right Direction
		opposite    Direction
	}{
		{DirUp, DirLeft, DirRight, DirDown},
		{DirRight, DirUp, DirDown, DirLeft},
		{DirDown, DirRight, DirLeft, DirUp},
		{DirLeft, DirDown, DirUp, DirRight},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			if got := tc.dir.RotateLeft(); got != tc.left {
				t.Errorf("RotateLeft() = %v, expected %v", got, tc.left)
			}
			if got := tc.dir.RotateRight(); got != tc.right {
				t.Errorf("RotateRight() = %v, expected %v", got, tc.right)
			}
			if got := tc.dir.Opposite(); got != tc.opposite {
				t.Errorf("Opposite() = %v, expected %v", got, tc.opposite)
			}
			// The reverse heading is never a cycle neighbour
			if tc.opposite == tc.dir.RotateLeft() || tc.opposite == tc.dir.RotateRight() {
				t.Errorf("Opposite of %v is adjacent in the cycle", tc.dir)
			}
		})
	}
}

func TestDirectionOffset(t *testing.T) {
	tests := []struct {
		dir      Direction
		expected Point
	}{
		{DirUp, Point{0, -25}},
		{DirRight, Point{25, 0}},
		{DirDown, Point{0, 25}},
		{DirLeft, Point{-25, 0}},
	}

	for _, tc := range tests {
		if got := tc.dir.Offset(25); got != tc.expected {
			t.Errorf("%v.Offset(25) = %v, expected %v", tc.dir, got, tc.expected)
		}
	}
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		name             string
		current, desired Direction
		expected         Action
	}{
		{"same heading", DirUp, DirUp, ActionStraight},
		{"left of up", DirUp, DirLeft, ActionLeft},
		{"right of up", DirUp, DirRight, ActionRight},
		{"reverse of up", DirUp, DirDown, ActionStraight},
		{"left of right", DirRight, DirUp, ActionLeft},
		{"right of right", DirRight, DirDown, ActionRight},
		{"reverse of right", DirRight, DirLeft, ActionStraight},
		{"left of left", DirLeft, DirDown, ActionLeft},
		{"right of down", DirDown, DirLeft, ActionRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ActionFor(tc.current, tc.desired)
			if got != tc.expected {
				t.Errorf("ActionFor(%v, %v) = %v, expected %v", tc.current, tc.desired, got, tc.expected)
			}
		})
	}
}

func TestActionApplyRoundTrip(t *testing.T) {
	// Every non-reverse desired heading is reached by applying its action
	for _, current := range Directions {
		for _, desired := range Directions {
			if desired == current.Opposite() {
				continue
			}
			a := ActionFor(current, desired)
			if got := a.Apply(current); got != desired {
				t.Errorf("ActionFor(%v, %v).Apply = %v", current, desired, got)
			}
		}
	}
}

func TestParseDirectionAndAction(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, err)
		}
	}
	if _, err := ParseDirection("north"); err == nil {
		t.Error("ParseDirection should reject unknown names")
	}

	for _, a := range Actions {
		got, err := ParseAction(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, err)
		}
	}
	if got, err := ParseAction("LEFT"); err != nil || got != ActionLeft {
		t.Errorf("ParseAction should be case-insensitive, got %v, %v", got, err)
	}
	if _, err := ParseAction("back"); err == nil {
		t.Error("ParseAction should reject unknown names")
	}
}

func TestPointArithmetic(t *testing.T) {
	p := Point{X: 50, Y: 25}
	q := Point{X: 25, Y: 75}

	if got := p.Add(q); got != (Point{75, 100}) {
		t.Errorf("Add() = %v", got)
	}
	if got := p.Sub(q); got != (Point{25, -50}) {
		t.Errorf("Sub() = %v", got)
	}
	if got := p.Manhattan(q); got != 75 {
		t.Errorf("Manhattan() = %d, expected 75", got)
	}
	if got := q.Manhattan(p); got != 75 {
		t.Errorf("Manhattan() should be symmetric, got %d", got)
	}
}

func TestDirectionTextEncoding(t *testing.T) {
	for _, d := range Directions {
		text, err := d.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error: %v", d, err)
		}
		var back Direction
		if err := back.UnmarshalText(text); err != nil || back != d {
			t.Errorf("UnmarshalText(%q) = %v, %v", text, back, err)
		}
	}
	if _, err := Direction(7).MarshalText(); err == nil {
		t.Error("MarshalText should reject invalid directions")
	}

	var a Action
	if err := a.UnmarshalText([]byte("right")); err != nil || a != ActionRight {
		t.Errorf("Action.UnmarshalText(right) = %v, %v", a, err)
	}
	if err := a.UnmarshalText([]byte("reverse")); err == nil {
		t.Error("Action.UnmarshalText should reject unknown names")
	}
}
