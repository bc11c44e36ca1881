// Package telemetry provides windowed arena statistics, per-phase timing and CSV output.
package telemetry

// TickCounts are the per-tick event counts fed into a Collector.
type TickCounts struct {
	FoodEaten    int
	EjectedEaten int
	CellsEaten   int
	CellsLost    int
	VirusHits    int
	Splits       int
	Ejects       int
	Died         bool

	AgentPellets int
	AgentKills   int
	AgentSplits  int
	AgentVirus   int
	AgentsKilled int
	Respawns     int
	VirusesBorn  int
}

// Snapshot is the world state sampled when a window is flushed.
type Snapshot struct {
	Phase       string
	Score       int
	HighScore   int
	HumanMass   float64
	HumanCells  int
	Rank        int
	AgentMasses []float64 // total mass of each living agent
	Food        int
	Viruses     int
	Ejected     int
	Cells       int
	TotalMass   float64
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dtSec               float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	counts TickCounts
	deaths int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dtSec: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dtSec float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dtSec)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dtSec:               dtSec,
	}
}

// Record adds one tick's events to the current window.
func (c *Collector) Record(t TickCounts) {
	c.counts.FoodEaten += t.FoodEaten
	c.counts.EjectedEaten += t.EjectedEaten
	c.counts.CellsEaten += t.CellsEaten
	c.counts.CellsLost += t.CellsLost
	c.counts.VirusHits += t.VirusHits
	c.counts.Splits += t.Splits
	c.counts.Ejects += t.Ejects
	if t.Died {
		c.deaths++
	}

	c.counts.AgentPellets += t.AgentPellets
	c.counts.AgentKills += t.AgentKills
	c.counts.AgentSplits += t.AgentSplits
	c.counts.AgentVirus += t.AgentVirus
	c.counts.AgentsKilled += t.AgentsKilled
	c.counts.Respawns += t.Respawns
	c.counts.VirusesBorn += t.VirusesBorn
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, snap Snapshot) WindowStats {
	ms := ComputeMassStats(snap.AgentMasses)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dtSec,

		Phase:      snap.Phase,
		Score:      snap.Score,
		HighScore:  snap.HighScore,
		HumanMass:  snap.HumanMass,
		HumanCells: snap.HumanCells,
		Rank:       snap.Rank,

		FoodEaten:    c.counts.FoodEaten,
		EjectedEaten: c.counts.EjectedEaten,
		CellsEaten:   c.counts.CellsEaten,
		CellsLost:    c.counts.CellsLost,
		VirusHits:    c.counts.VirusHits,
		Splits:       c.counts.Splits,
		Ejects:       c.counts.Ejects,
		Deaths:       c.deaths,

		AliveAgents:   len(snap.AgentMasses),
		AgentMassMean: ms.Mean,
		AgentMassStd:  ms.Std,
		AgentMassP10:  ms.P10,
		AgentMassP50:  ms.P50,
		AgentMassP90:  ms.P90,
		AgentMassMax:  ms.Max,

		AgentPellets: c.counts.AgentPellets,
		AgentKills:   c.counts.AgentKills,
		AgentSplits:  c.counts.AgentSplits,
		AgentVirus:   c.counts.AgentVirus,
		AgentsKilled: c.counts.AgentsKilled,
		Respawns:     c.counts.Respawns,

		Food:        snap.Food,
		Viruses:     snap.Viruses,
		Ejected:     snap.Ejected,
		Cells:       snap.Cells,
		TotalMass:   snap.TotalMass,
		VirusesBorn: c.counts.VirusesBorn,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.counts = TickCounts{}
	c.deaths = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
