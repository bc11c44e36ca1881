package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/arena/config"
	"github.com/pthm-cable/arena/telemetry"
)

// SessionOptions configures a Session.
type SessionOptions struct {
	Engine Options

	// Name used for the human when starting or restarting.
	Name string
	// Autopilot drives the human with the agent decision rules.
	Autopilot bool
	// AutoRestart starts a new game immediately after game over.
	AutoRestart bool

	LogStats       bool
	StatsWindowSec float64 // 0 uses telemetry.stats_window
	OutputDir      string  // empty disables CSV output
	StepsPerUpdate int     // ticks per Update call, at least 1
}

// Session owns the current world and wires it to telemetry and event listeners.
// Front-ends call Update once per frame; headless runs call UpdateHeadless.
type Session struct {
	cfg    *config.Config
	engine *Engine
	world  World
	logger *slog.Logger

	name        string
	autopilot   bool
	autoRestart bool
	logStats    bool
	steps       int

	tick  int32 // ticks simulated while playing, across games
	games int

	// Current game.
	peakScore  int
	cellsEaten int
	virusHits  int

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager

	listeners []func(Events)
	results   []telemetry.SessionResult
}

// NewSession creates a session on the start screen.
func NewSession(cfg *config.Config, opts SessionOptions) (*Session, error) {
	logger := opts.Engine.Logger
	if logger == nil {
		logger = slog.Default()
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	engineOpts := opts.Engine
	engineOpts.Logger = logger
	if engineOpts.Timer == nil {
		engineOpts.Timer = perf
	}

	windowSec := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		windowSec = opts.StatsWindowSec
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	engine := NewEngine(cfg, engineOpts)
	s := &Session{
		cfg:         cfg,
		engine:      engine,
		world:       engine.NewWorld(),
		logger:      logger,
		name:        opts.Name,
		autopilot:   opts.Autopilot,
		autoRestart: opts.AutoRestart,
		logStats:    opts.LogStats,
		steps:       steps,
		collector:   telemetry.NewCollector(windowSec, cfg.Physics.FrameMillis/1000),
		perf:        perf,
		output:      output,
	}
	return s, nil
}

// World returns the current snapshot.
func (s *Session) World() World { return s.world }

// Engine returns the engine driving the session.
func (s *Session) Engine() *Engine { return s.engine }

// Tick returns the number of ticks simulated while playing.
func (s *Session) Tick() int32 { return s.tick }

// Games returns how many games have been started.
func (s *Session) Games() int { return s.games }

// Results returns the finished games in order.
func (s *Session) Results() []telemetry.SessionResult { return s.results }

// Perf returns the tick phase timings.
func (s *Session) Perf() *telemetry.PerfCollector { return s.perf }

// OnEvents registers fn to receive the events of every tick and action.
func (s *Session) OnEvents(fn func(Events)) {
	s.listeners = append(s.listeners, fn)
}

// Start begins a game from the start screen. An empty name keeps the session's name.
func (s *Session) Start(name string) error {
	if name != "" {
		s.name = name
	}
	w, err := s.engine.Start(s.world, s.name)
	if err != nil {
		return err
	}
	s.beginGame(w)
	return nil
}

// Restart begins a new game from the game-over screen.
func (s *Session) Restart() error {
	w, err := s.engine.Restart(s.world, s.name)
	if err != nil {
		return err
	}
	s.beginGame(w)
	return nil
}

// Menu returns from the game-over screen to the start screen.
func (s *Session) Menu() error {
	w, err := s.engine.Menu(s.world)
	if err != nil {
		return err
	}
	s.world = w
	return nil
}

func (s *Session) beginGame(w World) {
	s.world = w
	s.games++
	s.peakScore = w.Score
	s.cellsEaten = 0
	s.virusHits = 0
}

// SetPointer moves the human's target (world coordinates).
func (s *Session) SetPointer(x, y float64) {
	s.world = s.engine.SetPointer(s.world, x, y)
}

// Split splits the human's cells toward the pointer.
func (s *Session) Split() {
	s.apply(s.engine.Split)
}

// Eject shoots mass from the human's cells toward the pointer.
func (s *Session) Eject() {
	s.apply(s.engine.Eject)
}

// apply runs an action on a live game and reports its events.
func (s *Session) apply(action func(World) World) {
	if s.world.Phase != PhasePlaying || !s.world.HumanAlive() {
		return
	}
	s.world = action(s.world)
	if !s.world.Events.Empty() {
		s.record(s.world.Events)
	}
}

// Update runs StepsPerUpdate ticks of dtMillis each. Used by graphical front-ends
// with the frame time.
func (s *Session) Update(dtMillis float64) {
	for i := 0; i < s.steps; i++ {
		s.step(dtMillis)
	}
}

// UpdateHeadless runs StepsPerUpdate ticks at the reference frame time.
func (s *Session) UpdateHeadless() {
	s.Update(s.cfg.Physics.FrameMillis)
}

// step advances one tick and handles telemetry and game-over bookkeeping.
func (s *Session) step(dtMillis float64) {
	if s.world.Phase != PhasePlaying {
		return
	}

	if s.autopilot {
		s.apply(s.engine.Autopilot)
	}

	s.perf.StartTick()
	s.world = s.engine.Tick(s.world, dtMillis)
	s.tick++

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.record(s.world.Events)
	if s.world.Score > s.peakScore {
		s.peakScore = s.world.Score
	}
	s.flushTelemetry()
	s.perf.EndTick()

	if s.world.Phase == PhaseGameOver {
		s.finishGame()
	}
}

// record forwards events to the collector and listeners.
func (s *Session) record(ev Events) {
	s.cellsEaten += ev.CellsEaten
	s.virusHits += ev.VirusHits
	s.collector.Record(tickCounts(ev))
	for _, fn := range s.listeners {
		fn(ev)
	}
}

// finishGame records the result of the game that just ended.
func (s *Session) finishGame() {
	w := &s.world
	result := telemetry.SessionResult{
		Session:    s.games,
		FinalScore: w.Score,
		PeakScore:  s.peakScore,
		HighScore:  w.HighScore,
		Ticks:      w.Tick,
		SimTimeSec: w.Elapsed / 1000,
		CellsEaten: s.cellsEaten,
		VirusHits:  s.virusHits,
	}
	if w.Player != nil {
		result.Name = w.Player.Name
	}
	s.results = append(s.results, result)

	if err := s.output.WriteSession(result); err != nil {
		s.logger.Error("failed to write session", "error", err)
	}
	if s.logStats {
		s.logger.Info("session",
			"session", result.Session,
			"name", result.Name,
			"final_score", result.FinalScore,
			"peak_score", result.PeakScore,
			"high_score", result.HighScore,
			"ticks", result.Ticks,
		)
	}

	if s.autoRestart {
		if err := s.Restart(); err != nil {
			s.logger.Error("failed to restart", "error", err)
		}
	}
}

// flushTelemetry writes a stats window when one has elapsed.
func (s *Session) flushTelemetry() {
	if !s.collector.ShouldFlush(s.tick) {
		return
	}

	stats := s.collector.Flush(s.tick, s.snapshot())
	perfStats := s.perf.Stats()

	if s.logStats {
		stats.LogStatsTo(s.logger)
		perfStats.LogStatsTo(s.logger)
	}

	if err := s.output.WriteTelemetry(stats); err != nil {
		s.logger.Error("failed to write telemetry", "error", err)
	}
	if err := s.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		s.logger.Error("failed to write perf", "error", err)
	}
}

// snapshot samples the world for a stats window.
func (s *Session) snapshot() telemetry.Snapshot {
	w := &s.world
	snap := telemetry.Snapshot{
		Phase:     w.Phase.String(),
		Score:     w.Score,
		HighScore: w.HighScore,
		Rank:      Rank(w.Leaderboard),
		Food:      len(w.Food),
		Viruses:   len(w.Viruses),
		Ejected:   len(w.Ejected),
		Cells:     w.CellCount(),
		TotalMass: w.TotalMass(),
	}
	if w.Player != nil {
		snap.HumanMass = w.Player.TotalMass()
		snap.HumanCells = len(w.Player.Cells)
	}
	for i := range w.Agents {
		if len(w.Agents[i].Cells) > 0 {
			snap.AgentMasses = append(snap.AgentMasses, w.Agents[i].TotalMass())
		}
	}
	return snap
}

func tickCounts(ev Events) telemetry.TickCounts {
	return telemetry.TickCounts{
		FoodEaten:    ev.FoodEaten,
		EjectedEaten: ev.EjectedEaten,
		CellsEaten:   ev.CellsEaten,
		CellsLost:    ev.CellsLost,
		VirusHits:    ev.VirusHits,
		Splits:       ev.Splits,
		Ejects:       ev.Ejects,
		Died:         ev.Died,
		AgentPellets: ev.AgentPellets,
		AgentKills:   ev.AgentKills,
		AgentSplits:  ev.AgentSplits,
		AgentVirus:   ev.AgentVirus,
		AgentsKilled: ev.AgentsKilled,
		Respawns:     ev.Respawns,
		VirusesBorn:  ev.VirusesBorn,
	}
}

// Close flushes output files.
func (s *Session) Close() error {
	return s.output.Close()
}
