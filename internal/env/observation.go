package env

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/noodle/internal/config"
	"github.com/vovakirdan/noodle/internal/engine"
)

// Observation is what an agent sees after a reset or a step.
type Observation interface {
	// Key is a compact string identifying the state, for tabular agents.
	Key() string
	// Vector is the observation as numbers, for function approximators.
	Vector() []float64
}

// Encoder builds an observation from the arena's read-only state.
type Encoder func(a *engine.Arena) Observation

// NewEncoder returns the encoder registered under kind.
func NewEncoder(kind string) (Encoder, error) {
	switch kind {
	case config.ObservationFeatures:
		return func(a *engine.Arena) Observation { return EncodeFeatures(a) }, nil
	case config.ObservationDistances:
		return func(a *engine.Arena) Observation { return EncodeDistances(a) }, nil
	}
	return nil, fmt.Errorf("env: unknown observation %q", kind)
}

// Features is the 11-flag danger/heading/food state plus the food bearing.
type Features struct {
	DangerStraight bool `json:"danger_straight"`
	DangerRight    bool `json:"danger_right"`
	DangerLeft     bool `json:"danger_left"`

	Heading engine.Direction `json:"heading"`

	FoodLeft  bool `json:"food_left"`
	FoodRight bool `json:"food_right"`
	FoodUp    bool `json:"food_up"`
	FoodDown  bool `json:"food_down"`

	// FoodAngle is the bearing from the head to the food, in turns (0 to 1),
	// measured with atan2 from the fruit to the head in screen coordinates.
	FoodAngle float64 `json:"food_angle"`
}

// EncodeFeatures probes the cells one step straight, right and left of the
// head with CheckCollision and compares the head with the fruit.
func EncodeFeatures(a *engine.Arena) Features {
	s := a.Snake()
	head, dir, size := s.Head(), s.Direction(), s.Size()
	food := a.Fruit().Position()

	return Features{
		DangerStraight: a.CheckCollision(head.Add(dir.Offset(size))),
		DangerRight:    a.CheckCollision(head.Add(dir.RotateRight().Offset(size))),
		DangerLeft:     a.CheckCollision(head.Add(dir.RotateLeft().Offset(size))),
		Heading:        dir,
		FoodLeft:       head.X > food.X,
		FoodRight:      head.X < food.X,
		FoodUp:         head.Y > food.Y,
		FoodDown:       head.Y < food.Y,
		FoodAngle:      foodAngle(head, food),
	}
}

func foodAngle(head, food engine.Point) float64 {
	dy := float64(head.Y - food.Y)
	dx := float64(head.X - food.X)
	deg := math.Atan2(dy, dx) * 180 / math.Pi
	return math.Mod(deg+360, 360) / 360
}

// flags returns the 11 binary features in a fixed order: danger (straight,
// right, left), heading (left, right, up, down), food (left, right, up, down).
func (f Features) flags() [11]bool {
	return [11]bool{
		f.DangerStraight, f.DangerRight, f.DangerLeft,
		f.Heading == engine.DirLeft, f.Heading == engine.DirRight,
		f.Heading == engine.DirUp, f.Heading == engine.DirDown,
		f.FoodLeft, f.FoodRight, f.FoodUp, f.FoodDown,
	}
}

// Key renders the flags as a string of 0s and 1s. The food angle is left out
// so the key space stays small enough for a table.
func (f Features) Key() string {
	var sb strings.Builder
	for _, b := range f.flags() {
		if b {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Vector returns the flags as 0/1 followed by the food angle.
func (f Features) Vector() []float64 {
	flags := f.flags()
	v := make([]float64, 0, len(flags)+1)
	for _, b := range flags {
		if b {
			v = append(v, 1)
		} else {
			v = append(v, 0)
		}
	}
	return append(v, f.FoodAngle)
}

// Distances is the heading, the number of free cells before danger in each
// absolute direction, and the distance to the fruit in cells.
type Distances struct {
	Heading engine.Direction `json:"heading"`
	Up      int              `json:"up"`
	Right   int              `json:"right"`
	Down    int              `json:"down"`
	Left    int              `json:"left"`
	Food    int              `json:"food"`
}

// EncodeDistances walks from the head in each direction until CheckCollision
// reports a wall or body cell.
func EncodeDistances(a *engine.Arena) Distances {
	s := a.Snake()
	d := Distances{
		Heading: s.Direction(),
		Food:    a.Metrics().DistanceToFood,
	}
	for _, dir := range engine.Directions {
		free := freeCells(a, s.Head(), dir.Offset(s.Size()))
		switch dir {
		case engine.DirUp:
			d.Up = free
		case engine.DirRight:
			d.Right = free
		case engine.DirDown:
			d.Down = free
		case engine.DirLeft:
			d.Left = free
		}
	}
	return d
}

func freeCells(a *engine.Arena, from, step engine.Point) int {
	n := 0
	for p := from.Add(step); !a.CheckCollision(p); p = p.Add(step) {
		n++
	}
	return n
}

// Free returns the free-cell count in direction dir.
func (d Distances) Free(dir engine.Direction) int {
	switch dir {
	case engine.DirUp:
		return d.Up
	case engine.DirRight:
		return d.Right
	case engine.DirDown:
		return d.Down
	default:
		return d.Left
	}
}

func (d Distances) Key() string {
	return fmt.Sprintf("%d|%d,%d,%d,%d|%d", d.Heading, d.Up, d.Right, d.Down, d.Left, d.Food)
}

// Vector returns heading ordinal, the four distances and the food distance.
func (d Distances) Vector() []float64 {
	return []float64{
		float64(d.Heading),
		float64(d.Up), float64(d.Right), float64(d.Down), float64(d.Left),
		float64(d.Food),
	}
}
