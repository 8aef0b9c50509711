package agent

import (
	"github.com/vovakirdan/noodle/internal/engine"
	"github.com/vovakirdan/noodle/internal/env"
)

// Greedy avoids immediate danger and otherwise turns toward the food. With
// a distances observation it heads for the most open direction.
type Greedy struct{}

// preference is the order actions are tried in when they score the same.
var preference = [...]engine.Action{engine.ActionStraight, engine.ActionLeft, engine.ActionRight}

func (Greedy) Act(obs env.Observation) engine.Action {
	switch o := obs.(type) {
	case env.Features:
		return actFeatures(o)
	case env.Distances:
		return actDistances(o)
	}
	return engine.ActionStraight
}

func actFeatures(f env.Features) engine.Action {
	fallback := engine.ActionStraight
	foundSafe := false
	for _, a := range preference {
		if danger(f, a) {
			continue
		}
		if towardFood(f, a.Apply(f.Heading)) {
			return a
		}
		if !foundSafe {
			fallback, foundSafe = a, true
		}
	}
	return fallback
}

func danger(f env.Features, a engine.Action) bool {
	switch a {
	case engine.ActionLeft:
		return f.DangerLeft
	case engine.ActionRight:
		return f.DangerRight
	default:
		return f.DangerStraight
	}
}

func towardFood(f env.Features, d engine.Direction) bool {
	switch d {
	case engine.DirUp:
		return f.FoodUp
	case engine.DirDown:
		return f.FoodDown
	case engine.DirLeft:
		return f.FoodLeft
	default:
		return f.FoodRight
	}
}

func actDistances(d env.Distances) engine.Action {
	best, bestFree := engine.ActionStraight, -1
	for _, a := range preference {
		if free := d.Free(a.Apply(d.Heading)); free > bestFree {
			best, bestFree = a, free
		}
	}
	return best
}
