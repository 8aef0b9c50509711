package engine

import (
	"fmt"
	"strings"
)

// Direction is a compass heading. The values are ordered clockwise so that
// rotating left or right is a step through the cycle, and the reverse of a
// heading is never one of its cycle neighbours.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// Directions lists all headings in cycle order.
var Directions = [...]Direction{DirUp, DirRight, DirDown, DirLeft}

// RotateLeft returns the heading one step counter-clockwise.
func (d Direction) RotateLeft() Direction {
	return (d + 3) % 4
}

// RotateRight returns the heading one step clockwise.
func (d Direction) RotateRight() Direction {
	return (d + 1) % 4
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirLeft
}

// Offset returns the displacement of one move of the given cell size.
func (d Direction) Offset(cell int) Point {
	switch d {
	case DirUp:
		return Point{Y: -cell}
	case DirRight:
		return Point{X: cell}
	case DirDown:
		return Point{Y: cell}
	case DirLeft:
		return Point{X: -cell}
	}
	return Point{}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// ParseDirection parses "up", "right", "down" or "left" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return DirUp, fmt.Errorf("engine: unknown direction %q", s)
}

// Action is a move expressed relative to the current heading.
type Action int

const (
	ActionStraight Action = iota
	ActionLeft
	ActionRight
)

// Actions lists the relative actions in ordinal order.
var Actions = [...]Action{ActionStraight, ActionLeft, ActionRight}

// Valid reports whether a is one of the three relative actions.
func (a Action) Valid() bool {
	return a >= ActionStraight && a <= ActionRight
}

// Apply returns the heading that results from taking a from heading d.
func (a Action) Apply(d Direction) Direction {
	switch a {
	case ActionLeft:
		return d.RotateLeft()
	case ActionRight:
		return d.RotateRight()
	default:
		return d
	}
}

func (a Action) String() string {
	switch a {
	case ActionStraight:
		return "straight"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseAction parses "straight", "left" or "right" (case-insensitive).
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if strings.EqualFold(s, a.String()) {
			return a, nil
		}
	}
	return ActionStraight, fmt.Errorf("engine: unknown action %q", s)
}

// ActionFor converts a desired absolute heading into a relative action.
// A desired heading that reverses the current one cannot be expressed and
// maps to ActionStraight without signalling anything.
func ActionFor(current, desired Direction) Action {
	switch desired {
	case current:
		return ActionStraight
	case current.RotateLeft():
		return ActionLeft
	case current.RotateRight():
		return ActionRight
	default:
		return ActionStraight
	}
}

// MarshalText encodes d by name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("engine: cannot encode direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText encodes a by name.
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("engine: cannot encode action %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes an action name.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
