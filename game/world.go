package game

import (
	"github.com/pthm-cable/arena/components"
)

// Phase is the session state of a World.
type Phase uint8

const (
	PhaseStart Phase = iota
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// World is one snapshot of the arena. The engine never mutates a World it is
// given; each operation returns a new one.
type World struct {
	Phase Phase

	// Player is the human; nil before the first Start.
	Player  *components.Player
	Agents  []components.Player
	Food    []components.Food
	Viruses []components.Virus
	Ejected []components.EjectedMass

	Camera components.Camera

	// PointerX, PointerY is the human's steering target in world coordinates.
	PointerX, PointerY float64

	Score       int
	HighScore   int
	Leaderboard []components.LeaderboardEntry

	// Elapsed is simulated milliseconds since the session started.
	Elapsed float64
	Tick    int64

	IDs components.Sequence

	// Events summarises what happened during the last tick or action.
	Events Events
}

// Clone returns a deep copy sharing no slices with w.
func (w World) Clone() World {
	if w.Player != nil {
		p := w.Player.Clone()
		w.Player = &p
	}
	agents := make([]components.Player, len(w.Agents))
	for i := range w.Agents {
		agents[i] = w.Agents[i].Clone()
	}
	w.Agents = agents
	w.Food = append([]components.Food(nil), w.Food...)
	w.Viruses = append([]components.Virus(nil), w.Viruses...)
	w.Ejected = append([]components.EjectedMass(nil), w.Ejected...)
	w.Leaderboard = append([]components.LeaderboardEntry(nil), w.Leaderboard...)
	return w
}

// HumanAlive reports whether the human exists and has cells.
func (w *World) HumanAlive() bool {
	return w.Player != nil && len(w.Player.Cells) > 0
}

// AliveAgents returns the number of agents with cells.
func (w *World) AliveAgents() int {
	n := 0
	for i := range w.Agents {
		if len(w.Agents[i].Cells) > 0 {
			n++
		}
	}
	return n
}

// TotalMass returns the mass of every entity in the world.
func (w *World) TotalMass() float64 {
	var m float64
	if w.Player != nil {
		m += w.Player.TotalMass()
	}
	for i := range w.Agents {
		m += w.Agents[i].TotalMass()
	}
	for i := range w.Food {
		m += w.Food[i].Mass
	}
	for i := range w.Viruses {
		m += w.Viruses[i].Mass
	}
	for i := range w.Ejected {
		m += w.Ejected[i].Mass
	}
	return m
}

// CellCount returns the number of player cells in the world.
func (w *World) CellCount() int {
	n := 0
	if w.Player != nil {
		n += len(w.Player.Cells)
	}
	for i := range w.Agents {
		n += len(w.Agents[i].Cells)
	}
	return n
}
