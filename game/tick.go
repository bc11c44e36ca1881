package game

import (
	"math"

	"github.com/pthm-cable/arena/camera"
	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/systems"
	"github.com/pthm-cable/arena/telemetry"
)

// Tick advances w by dtMillis and returns the next world. w is not modified.
//
// Outside the playing phase, or before a human exists, w is returned as is.
// dtMillis is clamped to [0, physics.max_dt_ms]; a zero dt moves nothing and
// decays nothing, but collisions and upkeep still run.
func (e *Engine) Tick(w World, dtMillis float64) World {
	if w.Phase != PhasePlaying || w.Player == nil {
		return w
	}

	w = w.Clone()
	w.Events = Events{}
	dt := math.Max(0, math.Min(dtMillis, e.cfg.Physics.MaxDTMillis))
	w.Elapsed += dt
	w.Tick++
	now := w.Elapsed

	// Human steers toward the pointer set by input before this tick.
	e.timer.StartPhase(telemetry.PhaseHuman)
	human := w.Player
	human.TargetX, human.TargetY = w.PointerX, w.PointerY
	human.Cells = e.cells.AdvanceCells(human.Cells, w.PointerX, w.PointerY, dt)
	human.Cells = e.cells.ResolveMerges(human.Cells, now)

	e.timer.StartPhase(telemetry.PhaseIndex)
	systems.BuildFoodIndex(e.foodIndex, w.Food)

	alive := make([]bool, len(w.Agents))
	for i := range w.Agents {
		alive[i] = len(w.Agents[i].Cells) > 0
	}

	e.timer.StartPhase(telemetry.PhaseAgents)
	e.stepAgents(&w, dt, now)

	e.timer.StartPhase(telemetry.PhaseEjected)
	for i := range w.Ejected {
		w.Ejected[i] = e.cells.AdvanceEjected(w.Ejected[i], dt)
	}

	e.timer.StartPhase(telemetry.PhaseFeeding)
	e.resolveFeeding(&w)

	e.timer.StartPhase(telemetry.PhaseVirus)
	e.resolveViruses(&w, now)

	e.timer.StartPhase(telemetry.PhaseUpkeep)
	e.upkeep(&w, alive)

	if len(human.Cells) == 0 {
		return e.gameOver(w)
	}

	e.timer.StartPhase(telemetry.PhaseCamera)
	cx, cy := systems.CenterOfMass(human.Cells)
	w.Camera = camera.Follow(w.Camera, cx, cy, human.TotalMass(), e.cfg.Camera)

	prev := w.Score
	human.Score = score(human.TotalMass())
	for i := range w.Agents {
		w.Agents[i].Score = score(w.Agents[i].TotalMass())
	}
	w.Score = human.Score
	w.Events.ScoreDelta = w.Score - prev
	w.Leaderboard = Leaderboard(human, w.Agents, e.cfg.Leaderboard.Size)

	return w
}

// stepAgents lets every living agent pick a target, move toward it, merge
// and possibly split. Decisions see all players as they were before any agent moved.
func (e *Engine) stepAgents(w *World, dt, now float64) {
	others := make([]components.Player, 0, len(w.Agents)+1)
	others = append(others, *w.Player)
	others = append(others, w.Agents...)

	for i := range w.Agents {
		a := &w.Agents[i]
		if len(a.Cells) == 0 {
			continue
		}

		d := e.agents.Decide(*a, others, w.Food, e.foodIndex, w.Viruses, e.rng)
		a.TargetX, a.TargetY = d.TargetX, d.TargetY

		a.Cells = e.cells.AdvanceCells(a.Cells, a.TargetX, a.TargetY, dt)
		a.Cells = e.cells.ResolveMerges(a.Cells, now)

		if e.agents.ShouldSplit(*a, others, e.rng) {
			before := len(a.Cells)
			a.Cells = e.cells.SplitAll(a.Cells, a.TargetX, a.TargetY, now, &w.IDs)
			w.Events.AgentSplits += len(a.Cells) - before
		}
	}
}

// resolveFeeding applies every consumption pass in a fixed, human-first order:
// human pellets, agent pellets, human eats agents, agents eat the human,
// agents eat each other.
func (e *Engine) resolveFeeding(w *World) {
	ev := &w.Events
	human := w.Player

	var res systems.FeedResult
	w.Food, w.Ejected, res = e.cells.EatPellets(human.Cells, w.Food, w.Ejected)
	ev.FoodEaten += res.Food
	ev.EjectedEaten += res.Ejected

	for i := range w.Agents {
		w.Food, w.Ejected, res = e.cells.EatPellets(w.Agents[i].Cells, w.Food, w.Ejected)
		ev.AgentPellets += res.Food + res.Ejected
	}

	var n int
	for i := range w.Agents {
		w.Agents[i].Cells, n = e.cells.EatCells(human.Cells, w.Agents[i].Cells)
		ev.CellsEaten += n
	}

	for i := range w.Agents {
		human.Cells, n = e.cells.EatCells(w.Agents[i].Cells, human.Cells)
		ev.CellsLost += n
	}

	for i := range w.Agents {
		for j := range w.Agents {
			if i == j {
				continue
			}
			w.Agents[j].Cells, n = e.cells.EatCells(w.Agents[i].Cells, w.Agents[j].Cells)
			ev.AgentKills += n
		}
	}
}

// resolveViruses fragments big cells touching a virus, then lets viruses
// absorb ejected mass.
func (e *Engine) resolveViruses(w *World, now float64) {
	ev := &w.Events
	human := w.Player

	var hits int
	for _, v := range w.Viruses {
		human.Cells, hits = e.cells.VirusContact(human.Cells, v, now, &w.IDs, e.rng)
		ev.VirusHits += hits
		for i := range w.Agents {
			w.Agents[i].Cells, hits = e.cells.VirusContact(w.Agents[i].Cells, v, now, &w.IDs, e.rng)
			ev.AgentVirus += hits
		}
	}

	before := len(w.Ejected)
	var born int
	w.Viruses, w.Ejected, born = e.cells.FeedViruses(w.Viruses, w.Ejected, &w.IDs)
	ev.VirusesFed += before - len(w.Ejected)
	ev.VirusesBorn += born
}

// upkeep caps cell counts, respawns dead agents and refills food.
// alive records which agents had cells when the tick began.
func (e *Engine) upkeep(w *World, alive []bool) {
	ev := &w.Events
	limit := e.cfg.Cell.MaxCells

	if len(w.Player.Cells) > limit {
		w.Player.Cells = w.Player.Cells[:limit]
	}
	for i := range w.Agents {
		a := &w.Agents[i]
		if len(a.Cells) > limit {
			a.Cells = a.Cells[:limit]
		}
		if len(a.Cells) == 0 && alive[i] {
			ev.AgentsKilled++
		}
	}

	for i := range w.Agents {
		a := &w.Agents[i]
		if len(a.Cells) == 0 && e.rng.Float64() < e.cfg.Agents.RespawnChance {
			e.respawn(a, &w.IDs)
			ev.Respawns++
		}
	}

	w.Food = e.replenishFood(w.Food, &w.IDs)
}

// gameOver ends the session. The final score is the last score computed
// while the human was alive; a new best is written to the store.
func (e *Engine) gameOver(w World) World {
	w.Phase = PhaseGameOver
	w.Events.Died = true

	if w.Score > w.HighScore {
		w.HighScore = w.Score
		w.Events.NewHighScore = true
		if err := e.store.SetHighScore(w.Score); err != nil {
			e.logger.Error("failed to persist high score", "score", w.Score, "error", err)
		}
	}

	e.logger.Info("game over",
		"name", w.Player.Name,
		"score", w.Score,
		"high_score", w.HighScore,
		"tick", w.Tick,
		"elapsed_ms", w.Elapsed,
	)
	return w
}

func score(mass float64) int {
	return int(math.Floor(mass))
}
