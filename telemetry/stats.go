package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Human state at window end
	Phase      string  `csv:"phase"`
	Score      int     `csv:"score"`
	HighScore  int     `csv:"high_score"`
	HumanMass  float64 `csv:"human_mass"`
	HumanCells int     `csv:"human_cells"`
	Rank       int     `csv:"rank"` // leaderboard position, 0 when not listed

	// Human events during window
	FoodEaten    int `csv:"food_eaten"`
	EjectedEaten int `csv:"ejected_eaten"`
	CellsEaten   int `csv:"cells_eaten"`
	CellsLost    int `csv:"cells_lost"`
	VirusHits    int `csv:"virus_hits"`
	Splits       int `csv:"splits"`
	Ejects       int `csv:"ejects"`
	Deaths       int `csv:"deaths"`

	// Agent population at window end
	AliveAgents   int     `csv:"alive_agents"`
	AgentMassMean float64 `csv:"agent_mass_mean"`
	AgentMassStd  float64 `csv:"agent_mass_std"`
	AgentMassP10  float64 `csv:"agent_mass_p10"`
	AgentMassP50  float64 `csv:"agent_mass_p50"`
	AgentMassP90  float64 `csv:"agent_mass_p90"`
	AgentMassMax  float64 `csv:"agent_mass_max"`

	// Agent events during window
	AgentPellets int `csv:"agent_pellets"`
	AgentKills   int `csv:"agent_kills"`
	AgentSplits  int `csv:"agent_splits"`
	AgentVirus   int `csv:"agent_virus"`
	AgentsKilled int `csv:"agents_killed"`
	Respawns     int `csv:"respawns"`

	// World at window end
	Food        int     `csv:"food"`
	Viruses     int     `csv:"viruses"`
	Ejected     int     `csv:"ejected"`
	Cells       int     `csv:"cells"`
	TotalMass   float64 `csv:"total_mass"`
	VirusesBorn int     `csv:"viruses_born"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// MassStats summarises a mass distribution.
type MassStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// ComputeMassStats calculates mean, standard deviation, percentiles and max.
// Std is the sample standard deviation (zero for fewer than two values).
func ComputeMassStats(values []float64) MassStats {
	n := len(values)
	if n == 0 {
		return MassStats{}
	}

	var ms MassStats
	if n == 1 {
		ms.Mean = values[0]
	} else {
		ms.Mean, ms.Std = stat.MeanStdDev(values, nil)
	}
	ms.Max = floats.Max(values)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	ms.P10 = Percentile(sorted, 0.10)
	ms.P50 = Percentile(sorted, 0.50)
	ms.P90 = Percentile(sorted, 0.90)
	return ms
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("phase", s.Phase),
		slog.Int("score", s.Score),
		slog.Int("high_score", s.HighScore),
		slog.Int("human_cells", s.HumanCells),
		slog.Int("rank", s.Rank),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Int("cells_eaten", s.CellsEaten),
		slog.Int("cells_lost", s.CellsLost),
		slog.Int("virus_hits", s.VirusHits),
		slog.Int("alive_agents", s.AliveAgents),
		slog.Float64("agent_mass_mean", s.AgentMassMean),
		slog.Float64("agent_mass_p50", s.AgentMassP50),
		slog.Float64("agent_mass_max", s.AgentMassMax),
		slog.Int("agents_killed", s.AgentsKilled),
		slog.Int("respawns", s.Respawns),
		slog.Int("viruses", s.Viruses),
		slog.Float64("total_mass", s.TotalMass),
	)
}

// LogStats logs the window stats using the default logger.
func (s WindowStats) LogStats() {
	s.LogStatsTo(slog.Default())
}

// LogStatsTo logs the window stats to logger.
func (s WindowStats) LogStatsTo(logger *slog.Logger) {
	logger.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"phase", s.Phase,
		"score", s.Score,
		"high_score", s.HighScore,
		"human_mass", s.HumanMass,
		"human_cells", s.HumanCells,
		"rank", s.Rank,
		"food_eaten", s.FoodEaten,
		"ejected_eaten", s.EjectedEaten,
		"cells_eaten", s.CellsEaten,
		"cells_lost", s.CellsLost,
		"virus_hits", s.VirusHits,
		"splits", s.Splits,
		"ejects", s.Ejects,
		"deaths", s.Deaths,
		"alive_agents", s.AliveAgents,
		"agent_mass_mean", s.AgentMassMean,
		"agent_mass_std", s.AgentMassStd,
		"agent_mass_p10", s.AgentMassP10,
		"agent_mass_p50", s.AgentMassP50,
		"agent_mass_p90", s.AgentMassP90,
		"agent_mass_max", s.AgentMassMax,
		"agent_pellets", s.AgentPellets,
		"agent_kills", s.AgentKills,
		"agent_splits", s.AgentSplits,
		"agent_virus", s.AgentVirus,
		"agents_killed", s.AgentsKilled,
		"respawns", s.Respawns,
		"food", s.Food,
		"viruses", s.Viruses,
		"ejected", s.Ejected,
		"cells", s.Cells,
		"total_mass", s.TotalMass,
		"viruses_born", s.VirusesBorn,
	)
}
