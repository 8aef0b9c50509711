package engine

import (
	"math/rand"
	"time"
)

// Scheme selects how an arena interprets step input.
type Scheme int

const (
	// SchemeAbsolute steers with compass directions (keyboard play).
	SchemeAbsolute Scheme = iota
	// SchemeRelative steers with straight/left/right actions (RL agents).
	SchemeRelative
)

func (s Scheme) String() string {
	if s == SchemeRelative {
		return "relative"
	}
	return "absolute"
}

// Config describes the grid. Width and Height are in pixels and are expected
// to be multiples of CellSize; the arena does not check this.
type Config struct {
	Width       int
	Height      int
	CellSize    int
	StartLength int
	Scheme      Scheme
}

// DefaultConfig returns a 400x400 grid of 25 pixel cells with a snake of
// length 3 steered by absolute directions.
func DefaultConfig() Config {
	return Config{
		Width:       400,
		Height:      400,
		CellSize:    25,
		StartLength: 3,
		Scheme:      SchemeAbsolute,
	}
}

// Input is one tick of player intent. Only the field matching the arena's
// scheme is read.
type Input struct {
	Direction Direction
	Action    Action
}

// Steer returns input for an absolute-scheme arena.
func Steer(d Direction) Input {
	return Input{Direction: d}
}

// Turn returns input for a relative-scheme arena.
func Turn(a Action) Input {
	return Input{Action: a}
}

// Option configures an Arena.
type Option func(*Arena)

// WithSeed seeds the fruit placement RNG for reproducible episodes.
func WithSeed(seed int64) Option {
	return func(a *Arena) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand uses r for fruit placement.
func WithRand(r *rand.Rand) Option {
	return func(a *Arena) {
		a.rng = r
	}
}

// Arena owns the snake and the fruit and is the only component that advances
// the game. It is not safe for concurrent use.
type Arena struct {
	cfg     Config
	rng     *rand.Rand
	snake   *Snake
	fruit   Fruit
	metrics Metrics
}

// NewArena creates an arena for cfg. The arena holds no game state until the
// first call to Reset.
func NewArena(cfg Config, opts ...Option) *Arena {
	if cfg.StartLength <= 0 {
		cfg.StartLength = 3
	}
	a := &Arena{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return a
}

// Reset starts a new episode: a fresh snake in the centre of the grid heading
// right, a fruit on a random free cell and zeroed metrics.
func (a *Arena) Reset() {
	a.spawnSnake()
	a.metrics = Metrics{MovesPerFood: movesPerFood(0, 0)}
	if !a.spawnFruit() {
		a.metrics.Done = true
		a.metrics.Reason = EndBoardFull
	}
	a.metrics.DistanceToFood = a.distanceToFood()
}

// Step applies one input and advances the game by one tick.
//
// A collision ends the episode: the returned metrics have Done set and the
// score of the last safe tick. The arena does not reset itself; once done,
// further steps return the terminal snapshot unchanged.
func (a *Arena) Step(in Input) Metrics {
	a.mustBeReset()
	if a.metrics.Done {
		return a.metrics
	}

	if a.cfg.Scheme == SchemeRelative {
		a.snake.Move(in.Action)
	} else {
		a.snake.SetDirection(in.Direction)
		a.snake.Advance()
	}

	head := a.snake.Head()
	if reason := a.collisionAt(head); reason != EndNone {
		a.metrics.Done = true
		a.metrics.Reason = reason
		return a.metrics
	}

	if head == a.fruit.position {
		a.snake.Eat()
		a.metrics.Score++
		a.metrics.TurnsSinceAte = 0
		if !a.spawnFruit() {
			a.metrics.Done = true
			a.metrics.Reason = EndBoardFull
		}
	} else {
		a.snake.tick()
		a.metrics.TurnsSinceAte++
	}

	a.metrics.StepsTaken++
	a.metrics.DistanceToFood = a.distanceToFood()
	a.metrics.MovesPerFood = movesPerFood(a.metrics.StepsTaken, a.metrics.Score)
	return a.metrics
}

// CheckCollision reports whether a head at p would collide with the walls or
// with the body behind the head. It does not change any state, so callers may
// probe hypothetical cells.
func (a *Arena) CheckCollision(p Point) bool {
	a.mustBeReset()
	return a.collisionAt(p) != EndNone
}

func (a *Arena) collisionAt(p Point) EndReason {
	if !a.inBounds(p) {
		return EndWall
	}
	if a.snake.hitsBody(p) {
		return EndSelf
	}
	return EndNone
}

// inBounds treats p as the top-left corner of a cell that must lie fully
// inside the grid.
func (a *Arena) inBounds(p Point) bool {
	return p.X >= 0 && p.X <= a.cfg.Width-a.cfg.CellSize &&
		p.Y >= 0 && p.Y <= a.cfg.Height-a.cfg.CellSize
}

// spawnSnake places a new snake with its head on the cell nearest the centre.
func (a *Arena) spawnSnake() {
	head := Point{
		X: a.Cols() / 2 * a.cfg.CellSize,
		Y: a.Rows() / 2 * a.cfg.CellSize,
	}
	a.snake = NewSnake(head, a.cfg.StartLength, a.cfg.CellSize, DirRight)
}

// spawnFruit moves the fruit to a uniformly random cell not covered by the
// snake, resampling until one is found. It returns false when the snake
// covers every cell and no placement exists.
func (a *Arena) spawnFruit() bool {
	if a.snake.Len() >= a.Cols()*a.Rows() {
		return false
	}
	for {
		p := Point{
			X: a.rng.Intn(a.Cols()) * a.cfg.CellSize,
			Y: a.rng.Intn(a.Rows()) * a.cfg.CellSize,
		}
		if !a.snake.Contains(p) {
			a.fruit = Fruit{position: p, size: a.cfg.CellSize}
			return true
		}
	}
}

func (a *Arena) distanceToFood() int {
	return a.snake.Head().Manhattan(a.fruit.position) / a.cfg.CellSize
}

func (a *Arena) mustBeReset() {
	if a.snake == nil {
		panic("engine: arena used before Reset")
	}
}

// Snake returns the live snake for read access. Drivers steer through Step,
// not through the snake's mutators.
func (a *Arena) Snake() *Snake {
	a.mustBeReset()
	return a.snake
}

// Fruit returns the current fruit.
func (a *Arena) Fruit() Fruit {
	a.mustBeReset()
	return a.fruit
}

// Metrics returns the snapshot of the last step (or of the reset).
func (a *Arena) Metrics() Metrics {
	a.mustBeReset()
	return a.metrics
}

// Config returns the arena's grid configuration.
func (a *Arena) Config() Config {
	return a.cfg
}

// Scheme returns the control scheme Step interprets input with.
func (a *Arena) Scheme() Scheme {
	return a.cfg.Scheme
}

// Cols returns the number of cells per row.
func (a *Arena) Cols() int {
	return a.cfg.Width / a.cfg.CellSize
}

// Rows returns the number of cells per column.
func (a *Arena) Rows() int {
	return a.cfg.Height / a.cfg.CellSize
}

// Cell converts a pixel position to column and row indices.
func (a *Arena) Cell(p Point) (col, row int) {
	return p.X / a.cfg.CellSize, p.Y / a.cfg.CellSize
}
