// Package game runs the arena: the per-tick world engine, the start/playing/gameover
// phase machine, player actions and the session loop used by the front-ends.
package game

import (
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/arena/camera"
	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/config"
	"github.com/pthm-cable/arena/systems"
)

// DefaultName is used when the human starts without a name.
const DefaultName = "Cell"

// ErrInvalidTransition is returned by actions that are not allowed in the world's phase.
var ErrInvalidTransition = errors.New("game: invalid phase transition")

// PhaseTimer is told when each tick phase begins.
// *telemetry.PerfCollector implements it; the caller brackets ticks.
type PhaseTimer interface {
	StartPhase(phase string)
}

type nopTimer struct{}

func (nopTimer) StartPhase(string) {}

// Options configures an Engine. The zero value is usable.
type Options struct {
	// Seed for the engine's random source; 0 seeds from the clock.
	Seed int64
	// Store persists the high score; defaults to an empty MemoryStore.
	Store ScoreStore
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Timer receives per-phase timings; optional.
	Timer PhaseTimer
}

// Engine advances worlds. It holds no world state of its own, so one engine
// can drive any number of independent worlds sequentially.
type Engine struct {
	cfg       *config.Config
	cells     *systems.CellSystem
	agents    *systems.BehaviorSystem
	autopilot *systems.BehaviorSystem
	foodIndex *systems.SpatialGrid

	rng    *rand.Rand
	store  ScoreStore
	logger *slog.Logger
	timer  PhaseTimer
}

// NewEngine creates an engine for cfg.
func NewEngine(cfg *config.Config, opts Options) *Engine {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	store := opts.Store
	if store == nil {
		store = NewMemoryStore(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var timer PhaseTimer = nopTimer{}
	if opts.Timer != nil {
		timer = opts.Timer
	}

	return &Engine{
		cfg:       cfg,
		cells:     systems.NewCellSystem(cfg),
		agents:    systems.NewBehaviorSystem(cfg.Agents, cfg),
		autopilot: systems.NewBehaviorSystem(cfg.Autopilot, cfg),
		foodIndex: systems.NewSpatialGrid(cfg.World.Size, cfg.World.Size, cfg.Physics.IndexCellSize),
		rng:       rand.New(rand.NewSource(seed)),
		store:     store,
		logger:    logger,
		timer:     timer,
	}
}

// Config returns the engine's configuration.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Cells returns the cell rules the engine applies.
func (e *Engine) Cells() *systems.CellSystem {
	return e.cells
}

// NewWorld returns a world on the start screen: food and viruses are scattered,
// the camera rests on the world center and the high score comes from the store.
func (e *Engine) NewWorld() World {
	c := e.cfg.World.Size / 2
	w := World{
		Phase:     PhaseStart,
		Camera:    camera.Centered(c, c),
		PointerX:  c,
		PointerY:  c,
		HighScore: e.store.HighScore(),
	}
	w.Food = e.replenishFood(nil, &w.IDs)
	w.Viruses = e.spawnViruses(&w.IDs)
	return w
}

// spawnPoint returns a random position at least SpawnMargin from every edge.
func (e *Engine) spawnPoint() (float64, float64) {
	m := e.cfg.World.SpawnMargin
	span := e.cfg.World.Size - 2*m
	return e.rng.Float64()*span + m, e.rng.Float64()*span + m
}

// replenishFood tops food up to the configured count with pellets anywhere in the world.
func (e *Engine) replenishFood(food []components.Food, ids *components.Sequence) []components.Food {
	fc := &e.cfg.Food
	size := e.cfg.World.Size
	for len(food) < fc.Count {
		food = append(food, components.Food{
			ID:     ids.Next(),
			X:      e.rng.Float64() * size,
			Y:      e.rng.Float64() * size,
			Mass:   fc.Mass,
			Radius: fc.Radius,
			Color:  components.RandomColor(e.rng, components.FoodColors),
		})
	}
	return food
}

func (e *Engine) spawnViruses(ids *components.Sequence) []components.Virus {
	viruses := make([]components.Virus, e.cfg.Virus.Count)
	for i := range viruses {
		x, y := e.spawnPoint()
		viruses[i] = e.cells.NewVirus(ids.Next(), x, y)
	}
	return viruses
}

func (e *Engine) newAgent(ids *components.Sequence) components.Player {
	name := DefaultName
	if names := e.cfg.Agents.Names; len(names) > 0 {
		name = names[e.rng.Intn(len(names))]
	}
	x, y := e.spawnPoint()
	color := components.RandomColor(e.rng, components.PlayerColors)
	return components.NewPlayer(ids, name, x, y, e.cfg.Cell.StartingMass, color, true)
}

// respawn gives a dead agent a fresh starting cell, keeping its identity and color.
func (e *Engine) respawn(p *components.Player, ids *components.Sequence) {
	x, y := e.spawnPoint()
	mass := e.cfg.Cell.StartingMass
	p.Cells = []components.Cell{components.NewCell(ids.Next(), x, y, mass, p.Color)}
	p.TargetX, p.TargetY = x, y
	p.Score = int(mass)
}
