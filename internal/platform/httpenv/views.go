package httpenv

import (
	"github.com/vovakirdan/noodle/internal/engine"
	"github.com/vovakirdan/noodle/internal/env"
)

type observationView struct {
	Key    string          `json:"key"`
	Vector []float64       `json:"vector"`
	Detail env.Observation `json:"detail"`
}

func newObservationView(o env.Observation) observationView {
	return observationView{Key: o.Key(), Vector: o.Vector(), Detail: o}
}

// metricsView leaves moves_per_food out until the first fruit, since JSON
// has no infinity.
type metricsView struct {
	Done           bool     `json:"done"`
	Score          int      `json:"score"`
	StepsTaken     int      `json:"steps_taken"`
	TurnsSinceAte  int      `json:"turns_since_ate"`
	DistanceToFood int      `json:"distance_to_food"`
	MovesPerFood   *float64 `json:"moves_per_food,omitempty"`
	Reason         string   `json:"reason,omitempty"`
}

func newMetricsView(m engine.Metrics) metricsView {
	v := metricsView{
		Done:           m.Done,
		Score:          m.Score,
		StepsTaken:     m.StepsTaken,
		TurnsSinceAte:  m.TurnsSinceAte,
		DistanceToFood: m.DistanceToFood,
		Reason:         string(m.Reason),
	}
	if m.HasMovesPerFood() {
		mpf := m.MovesPerFood
		v.MovesPerFood = &mpf
	}
	return v
}

type resetResponse struct {
	Session     string          `json:"session"`
	Observation observationView `json:"observation"`
	Metrics     metricsView     `json:"metrics"`
}

type stepResponse struct {
	Observation observationView `json:"observation"`
	Reward      float64         `json:"reward"`
	Terminated  bool            `json:"terminated"`
	Truncated   bool            `json:"truncated"`
	Metrics     metricsView     `json:"metrics"`
}

type cellView struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

type stateResponse struct {
	Session     string           `json:"session"`
	Cols        int              `json:"cols"`
	Rows        int              `json:"rows"`
	CellSize    int              `json:"cell_size"`
	Heading     engine.Direction `json:"heading"`
	Snake       []cellView       `json:"snake"`
	Fruit       cellView         `json:"fruit"`
	Done        bool             `json:"done"`
	Truncated   bool             `json:"truncated"`
	TotalReward float64          `json:"total_reward"`
	Metrics     metricsView      `json:"metrics"`
}

func newStateResponse(id string, e *env.Env) stateResponse {
	a := e.Arena()
	segments := a.Snake().Segments()
	snake := make([]cellView, len(segments))
	for i, p := range segments {
		snake[i] = toCell(a, p)
	}
	return stateResponse{
		Session:     id,
		Cols:        a.Cols(),
		Rows:        a.Rows(),
		CellSize:    a.Config().CellSize,
		Heading:     a.Snake().Direction(),
		Snake:       snake,
		Fruit:       toCell(a, a.Fruit().Position()),
		Done:        e.Done(),
		Truncated:   e.Truncated(),
		TotalReward: e.TotalReward(),
		Metrics:     newMetricsView(e.Metrics()),
	}
}

func toCell(a *engine.Arena, p engine.Point) cellView {
	col, row := a.Cell(p)
	return cellView{Col: col, Row: row}
}
