package main

import (
	"github.com/pthm-cable/arena/config"
)

// ParamSpec defines a single tunable autopilot parameter.
type ParamSpec struct {
	Name string  // column name in tune_log.csv
	Path string  // config path for logging
	Min  float64 // lower bound
	Max  float64 // upper bound
	Int  bool    // rounded before use

	get func(*config.AgentConfig) float64
	set func(*config.AgentConfig, float64)
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

func floatParam(name string, lo, hi float64, field func(*config.AgentConfig) *float64) ParamSpec {
	return ParamSpec{
		Name: name,
		Path: "autopilot." + name,
		Min:  lo,
		Max:  hi,
		get:  func(a *config.AgentConfig) float64 { return *field(a) },
		set:  func(a *config.AgentConfig, v float64) { *field(a) = v },
	}
}

// NewParamVector creates the standard set of autopilot parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Sight
			floatParam("food_scan_radius", 100, 1200, func(a *config.AgentConfig) *float64 { return &a.FoodScanRadius }),
			floatParam("threat_radius", 100, 1000, func(a *config.AgentConfig) *float64 { return &a.ThreatRadius }),
			floatParam("prey_radius", 100, 1200, func(a *config.AgentConfig) *float64 { return &a.PreyRadius }),
			// Escape
			floatParam("flee_radius", 50, 800, func(a *config.AgentConfig) *float64 { return &a.FleeRadius }),
			floatParam("flee_distance", 100, 1000, func(a *config.AgentConfig) *float64 { return &a.FleeDistance }),
			floatParam("virus_avoid_radius", 50, 400, func(a *config.AgentConfig) *float64 { return &a.VirusAvoidRadius }),
			floatParam("virus_avoid_distance", 50, 500, func(a *config.AgentConfig) *float64 { return &a.VirusAvoidDistance }),
			// Hunting
			floatParam("chase_radius", 100, 1000, func(a *config.AgentConfig) *float64 { return &a.ChaseRadius }),
			floatParam("wander_chance", 0, 0.2, func(a *config.AgentConfig) *float64 { return &a.WanderChance }),
			floatParam("edge_margin", 20, 400, func(a *config.AgentConfig) *float64 { return &a.EdgeMargin }),
			// Splitting
			floatParam("split_min_mass", 36, 300, func(a *config.AgentConfig) *float64 { return &a.SplitMinMass }),
			floatParam("split_min_dist", 20, 300, func(a *config.AgentConfig) *float64 { return &a.SplitMinDist }),
			floatParam("split_max_dist", 100, 800, func(a *config.AgentConfig) *float64 { return &a.SplitMaxDist }),
			floatParam("split_chance", 0, 0.3, func(a *config.AgentConfig) *float64 { return &a.SplitChance }),
			{
				Name: "split_max_cells", Path: "autopilot.split_max_cells", Min: 1, Max: 16, Int: true,
				get: func(a *config.AgentConfig) float64 { return float64(a.SplitMaxCells) },
				set: func(a *config.AgentConfig, v float64) { a.SplitMaxCells = int(v) },
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp bounds every value and rounds integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		if spec.Int {
			val = float64(int(val + 0.5))
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into the autopilot section.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i, spec := range pv.Specs {
		spec.set(&cfg.Autopilot, clamped[i])
	}
}

// ExtractFromConfig reads the current autopilot values, used as the search start.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.get(&cfg.Autopilot)
	}
	return v
}
