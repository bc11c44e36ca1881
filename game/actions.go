package game

import (
	"github.com/pthm-cable/arena/camera"
	"github.com/pthm-cable/arena/components"
)

// Start leaves the start screen and begins a session for name.
func (e *Engine) Start(w World, name string) (World, error) {
	if w.Phase != PhaseStart {
		return w, ErrInvalidTransition
	}
	nw := e.begin(w, name)
	e.logger.Info("session started", "name", nw.Player.Name, "agents", len(nw.Agents))
	return nw, nil
}

// Restart begins a new session from the game-over screen on a fresh world.
func (e *Engine) Restart(w World, name string) (World, error) {
	if w.Phase != PhaseGameOver {
		return w, ErrInvalidTransition
	}
	fresh := e.NewWorld()
	if w.HighScore > fresh.HighScore {
		fresh.HighScore = w.HighScore
	}
	nw := e.begin(fresh, name)
	e.logger.Info("session restarted", "name", nw.Player.Name, "previous_score", w.Score)
	return nw, nil
}

// Menu returns from the game-over screen to a fresh start screen.
func (e *Engine) Menu(w World) (World, error) {
	if w.Phase != PhaseGameOver {
		return w, ErrInvalidTransition
	}
	fresh := e.NewWorld()
	if w.HighScore > fresh.HighScore {
		fresh.HighScore = w.HighScore
	}
	return fresh, nil
}

// begin places the human at the world center with a fresh population,
// food and viruses. The high score carries over.
func (e *Engine) begin(w World, name string) World {
	if name == "" {
		name = DefaultName
	}
	ids := w.IDs
	c := e.cfg.World.Size / 2
	mass := e.cfg.Cell.StartingMass

	human := components.NewPlayer(&ids, name, c, c, mass, components.PlayerColors[0], false)
	agents := make([]components.Player, e.cfg.Agents.Count)
	for i := range agents {
		agents[i] = e.newAgent(&ids)
	}

	nw := World{
		Phase:     PhasePlaying,
		Player:    &human,
		Agents:    agents,
		Camera:    camera.Centered(c, c),
		PointerX:  c,
		PointerY:  c,
		Score:     human.Score,
		HighScore: w.HighScore,
	}
	nw.Food = e.replenishFood(nil, &ids)
	nw.Viruses = e.spawnViruses(&ids)
	nw.IDs = ids
	nw.Leaderboard = Leaderboard(nw.Player, nw.Agents, e.cfg.Leaderboard.Size)
	return nw
}

// SetPointer sets the human's steering target in world coordinates.
// Ignored outside the playing phase.
func (e *Engine) SetPointer(w World, x, y float64) World {
	if w.Phase != PhasePlaying {
		return w
	}
	w.PointerX, w.PointerY = x, y
	return w
}

// Split splits every eligible human cell toward the pointer.
// A no-op outside the playing phase or with a dead human.
func (e *Engine) Split(w World) World {
	if w.Phase != PhasePlaying || !w.HumanAlive() {
		return w
	}
	w = w.Clone()
	before := len(w.Player.Cells)
	w.Player.Cells = e.cells.SplitAll(w.Player.Cells, w.PointerX, w.PointerY, w.Elapsed, &w.IDs)
	w.Events = Events{Splits: len(w.Player.Cells) - before}
	return w
}

// Eject shoots mass from every eligible human cell toward the pointer.
// A no-op outside the playing phase or with a dead human.
func (e *Engine) Eject(w World) World {
	if w.Phase != PhasePlaying || !w.HumanAlive() {
		return w
	}
	w = w.Clone()
	var shot []components.EjectedMass
	w.Player.Cells, shot = e.cells.Eject(w.Player.Cells, w.PointerX, w.PointerY, &w.IDs)
	w.Ejected = append(w.Ejected, shot...)
	w.Events = Events{Ejects: len(shot)}
	return w
}

// Autopilot steers the human with the agent decision rules: it moves the
// pointer to the chosen target and splits when the split heuristic fires.
// Used by headless runs and the tuner.
func (e *Engine) Autopilot(w World) World {
	if w.Phase != PhasePlaying || !w.HumanAlive() {
		return w
	}
	w.Events = Events{}
	self := *w.Player
	self.TargetX, self.TargetY = w.PointerX, w.PointerY

	d := e.autopilot.Decide(self, w.Agents, w.Food, nil, w.Viruses, e.rng)
	w = e.SetPointer(w, d.TargetX, d.TargetY)

	if e.autopilot.ShouldSplit(self, w.Agents, e.rng) {
		w = e.Split(w)
	}
	return w
}
