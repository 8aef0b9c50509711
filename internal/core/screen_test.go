package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Errorf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	s.SetColored(2, 3, 'O', ColorBrightGreen)
	if c := s.GetCell(2, 3); c.Rune != 'O' || c.Color != ColorBrightGreen {
		t.Errorf("GetCell(2, 3) = %+v", c)
	}

	// Out-of-bounds writes are dropped, reads are blank
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')
	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out-of-bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.FillRect(s.Bounds(), '#', ColorRed)
	s.Clear()

	for y := 0; y < 4; y++ {
		if s.Row(y) != "    " {
			t.Errorf("row %d after Clear = %q", y, s.Row(y))
		}
		if s.GetCell(0, y).Color != ColorDefault {
			t.Errorf("row %d kept its colour after Clear", y)
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 5)
	s.Set(1, 1, 'X')

	s.Resize(20, 8)
	if s.Width() != 20 || s.Height() != 8 {
		t.Fatalf("size after Resize = %dx%d", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize should clear the screen")
	}

	s.Resize(-3, 2)
	if s.Width() != 0 {
		t.Errorf("negative width should clamp to 0, got %d", s.Width())
	}
	if s.String() != "\n" {
		t.Errorf("String() of 0x2 screen = %q", s.String())
	}
}

func TestDrawText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawText(7, 0, "Score")
	if got := s.Row(0); got != "       Sco" {
		t.Errorf("clipped text row = %q", got)
	}

	s.DrawTextCentered(1, "ab", ColorYellow)
	if got := s.Row(1); got != "    ab    " {
		t.Errorf("centred row = %q", got)
	}
	if s.GetCell(4, 1).Color != ColorYellow {
		t.Error("centred text lost its colour")
	}
}

func TestDrawTextCountsRunes(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawText(0, 0, "é─x")
	if got := s.Row(0); got != "é─x   " {
		t.Errorf("row = %q, expected multi-byte runes in adjacent cells", got)
	}
}

func TestDrawBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBox(s.Bounds(), ColorGray)

	expected := []string{
		"┌───┐",
		"│   │",
		"│   │",
		"└───┘",
	}
	for y, row := range expected {
		if got := s.Row(y); got != row {
			t.Errorf("row %d = %q, expected %q", y, got, row)
		}
	}

	// Too small to outline
	s.Clear()
	s.DrawBox(NewRect(0, 0, 1, 4), ColorGray)
	if strings.TrimSpace(s.String()) != "" {
		t.Error("DrawBox on a 1-wide rect should draw nothing")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	if got := s.String(); got != "a  \n  b" {
		t.Errorf("String() = %q", got)
	}
}
