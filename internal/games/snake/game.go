// Package snake adapts the engine arena to the registry's tick-driven Game
// interface: keyboard play and a policy-driven autopilot.
package snake

import (
	"math/rand"
	"sync"

	"github.com/vovakirdan/noodle/internal/agent"
	"github.com/vovakirdan/noodle/internal/config"
	"github.com/vovakirdan/noodle/internal/core"
	"github.com/vovakirdan/noodle/internal/engine"
	"github.com/vovakirdan/noodle/internal/env"
	"github.com/vovakirdan/noodle/internal/registry"
)

// Mode selects who steers the snake.
type Mode string

const (
	ModeHuman     Mode = "human"
	ModeAutopilot Mode = "autopilot"
)

// Game IDs in the registry.
const (
	IDHuman     = "snake"
	IDAutopilot = "snake_autopilot"
)

const (
	hudHeight = 2
	cellWidth = 2 // Screen columns per grid cell, so cells look square

	// autoRestartTicks is how long the autopilot shows its game over screen.
	autoRestartTicks = 90
)

// PolicyFactory builds the policy that steers an autopilot game.
type PolicyFactory func(seed int64) agent.Policy

// Package-level settings picked up by games created through the registry.
var (
	settingsMu    sync.RWMutex
	gameConfig    = config.DefaultSnakeConfig()
	policyFactory PolicyFactory = func(int64) agent.Policy { return agent.Greedy{} }
)

// SetConfig sets the configuration used by games created afterwards.
func SetConfig(cfg config.SnakeConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	gameConfig = cfg
}

// SetPolicyFactory sets how autopilot games get their policy. Policies may
// be shared between concurrent games, so they must be safe for that.
func SetPolicyFactory(f PolicyFactory) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	policyFactory = f
}

func settings() (config.SnakeConfig, PolicyFactory) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return gameConfig, policyFactory
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          IDHuman,
		Title:       "Snake",
		Description: "Steer with the arrow keys, eat, grow, don't crash",
	}, func() registry.Game {
		return New()
	})
	registry.Register(registry.GameInfo{
		ID:          IDAutopilot,
		Title:       "Snake (Autopilot)",
		Description: "Watch a policy play through relative turns",
	}, func() registry.Game {
		return NewAutopilot()
	})
}

// Game implements registry.Game on top of an engine.Arena.
type Game struct {
	mode       Mode
	cfg        config.SnakeConfig
	difficulty *config.DifficultyManager
	newPolicy  PolicyFactory

	rng    *rand.Rand
	arena  *engine.Arena
	encode env.Encoder
	policy agent.Policy

	tick       uint64
	moveTicker int
	moveEvery  int
	nextDir    engine.Direction
	overTicks  int

	paused   bool
	tooSmall bool

	screenW, screenH int
	offsetX, offsetY int
}

// New creates a keyboard-controlled game with the package configuration.
func New() *Game {
	cfg, _ := settings()
	return NewWithConfig(ModeHuman, cfg, nil)
}

// NewAutopilot creates a policy-driven game with the package configuration
// and policy factory.
func NewAutopilot() *Game {
	cfg, f := settings()
	return NewWithConfig(ModeAutopilot, cfg, f)
}

// NewWithConfig creates a game in mode with an explicit configuration. A nil
// factory falls back to the greedy policy.
func NewWithConfig(mode Mode, cfg config.SnakeConfig, f PolicyFactory) *Game {
	if f == nil {
		f = func(int64) agent.Policy { return agent.Greedy{} }
	}
	return &Game{
		mode:       mode,
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		newPolicy:  f,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeAutopilot {
		return IDAutopilot
	}
	return IDHuman
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeAutopilot {
		return "Snake (Autopilot)"
	}
	return "Snake"
}

// Reset starts a new game. The seed drives fruit placement and the seeds of
// later restarts, so equal seeds replay identically.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.moveTicker = 0
	g.overTicks = 0
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	scheme := engine.SchemeAbsolute
	if g.mode == ModeAutopilot {
		scheme = engine.SchemeRelative
		encode, err := env.NewEncoder(g.cfg.Env.Observation)
		if err != nil {
			encode, _ = env.NewEncoder(config.ObservationFeatures)
		}
		g.encode = encode
		g.policy = g.newPolicy(cfg.Seed)
	}

	g.arena = engine.NewArena(g.cfg.Grid.Engine(scheme), engine.WithRand(g.rng))
	g.arena.Reset()
	g.nextDir = g.arena.Snake().Direction()
	g.moveEvery = g.interval()

	g.layout()
}

// layout centres the board below the HUD, or flags the screen as too small.
func (g *Game) layout() {
	boardW := g.arena.Cols()*cellWidth + 2
	boardH := g.arena.Rows() + 2
	g.tooSmall = g.screenW < boardW || g.screenH < boardH+hudHeight
	g.offsetX = (g.screenW - boardW) / 2
	g.offsetY = hudHeight
}

// Step advances the game by one tick. The snake moves once every moveEvery
// ticks; the interval shrinks with score when difficulty is enabled.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	over := g.arena.Metrics().Done
	if input.Has(core.ActionRestart) && over {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !over {
		g.paused = !g.paused
	}

	if over {
		if g.mode == ModeAutopilot {
			g.overTicks++
			if g.overTicks >= autoRestartTicks {
				g.restart()
			}
		}
		return core.StepResult{State: g.State()}
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.mode == ModeHuman {
		g.processInput(input)
	}

	g.moveTicker++
	if g.moveTicker >= g.moveEvery {
		g.moveTicker = 0
		g.move()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) restart() {
	g.Reset(core.RuntimeConfig{
		Seed:    g.rng.Int63(),
		ScreenW: g.screenW,
		ScreenH: g.screenH,
	})
}

// processInput buffers the latest direction for the next move. Reversals
// are dropped here so they cannot overwrite a valid buffered turn.
func (g *Game) processInput(input core.InputFrame) {
	newDir := g.nextDir
	switch {
	case input.Has(core.ActionUp):
		newDir = engine.DirUp
	case input.Has(core.ActionDown):
		newDir = engine.DirDown
	case input.Has(core.ActionLeft):
		newDir = engine.DirLeft
	case input.Has(core.ActionRight):
		newDir = engine.DirRight
	}

	if newDir != g.arena.Snake().Direction().Opposite() {
		g.nextDir = newDir
	}
}

func (g *Game) move() {
	var m engine.Metrics
	if g.mode == ModeAutopilot {
		a := g.policy.Act(g.encode(g.arena))
		m = g.arena.Step(engine.Turn(a))
	} else {
		m = g.arena.Step(engine.Steer(g.nextDir))
	}
	g.nextDir = g.arena.Snake().Direction()
	if !m.Done {
		g.moveEvery = g.interval()
	}
}

func (g *Game) interval() int {
	return g.difficulty.MoveInterval(
		g.cfg.Play.MoveEveryTicks,
		g.cfg.Play.MinMoveEveryTicks,
		g.arena.Metrics().Score,
		int(g.tick),
	)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	m := g.arena.Metrics()
	return core.GameState{
		Score:    m.Score,
		GameOver: m.Done,
		Paused:   g.paused,
	}
}

// Metrics returns the arena's latest snapshot.
func (g *Game) Metrics() engine.Metrics {
	return g.arena.Metrics()
}
