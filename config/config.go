// Package config provides configuration loading and access for the arena.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all arena configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	World       WorldConfig       `yaml:"world"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Cell        CellConfig        `yaml:"cell"`
	Speed       SpeedConfig       `yaml:"speed"`
	Decay       DecayConfig       `yaml:"decay"`
	Food        FoodConfig        `yaml:"food"`
	Ejected     EjectedConfig     `yaml:"ejected"`
	Virus       VirusConfig       `yaml:"virus"`
	Agents      AgentConfig       `yaml:"agents"`
	Autopilot   AgentConfig       `yaml:"autopilot"`
	Camera      CameraConfig      `yaml:"camera"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Audio       AudioConfig       `yaml:"audio"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds arena dimensions.
// The world is a square of Size x Size units; entities are clamped inside it.
type WorldConfig struct {
	Size        float64 `yaml:"size"`
	GridSize    float64 `yaml:"grid_size"`    // background grid spacing (render only)
	SpawnMargin float64 `yaml:"spawn_margin"` // players spawn at least this far from the edge
}

// PhysicsConfig holds time-step parameters.
type PhysicsConfig struct {
	FrameMillis   float64 `yaml:"frame_ms"`
	MaxDTMillis   float64 `yaml:"max_dt_ms"`
	IndexCellSize float64 `yaml:"index_cell_size"` // bucket size of the food lookup grid
}

// CellConfig holds player cell parameters.
type CellConfig struct {
	StartingMass    float64 `yaml:"starting_mass"`
	MaxCells        int     `yaml:"max_cells"`
	MinSplitMass    float64 `yaml:"min_split_mass"`
	SplitVelocity   float64 `yaml:"split_velocity"`
	MergeTimeMillis float64 `yaml:"merge_time_ms"`
	MergeOverlap    float64 `yaml:"merge_overlap"` // merge when dist < (r1+r2) * this
	EatRatio        float64 `yaml:"eat_ratio"`
	EatOverlap      float64 `yaml:"eat_overlap"` // eat when dist < rEater - rPrey * this
	VelocityDamping float64 `yaml:"velocity_damping"`
	MoveDeadzone    float64 `yaml:"move_deadzone"`
}

// SpeedConfig holds mass-to-speed parameters (bigger = slower).
type SpeedConfig struct {
	Base   float64 `yaml:"base"`
	Min    float64 `yaml:"min"`
	Factor float64 `yaml:"factor"`
}

// DecayConfig holds mass decay parameters for large cells.
type DecayConfig struct {
	Rate    float64 `yaml:"rate"`     // fraction of mass lost per second
	MinMass float64 `yaml:"min_mass"` // cells at or below this mass don't decay
}

// FoodConfig holds food pellet parameters.
type FoodConfig struct {
	Count  int     `yaml:"count"`
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius"`
}

// EjectedConfig holds ejected mass parameters.
type EjectedConfig struct {
	MinMass   float64 `yaml:"min_mass"`   // cells below this can't eject
	MassLoss  float64 `yaml:"mass_loss"`  // mass removed from the ejecting cell
	MassValue float64 `yaml:"mass_value"` // mass carried by the projectile
	Speed     float64 `yaml:"speed"`
	Damping   float64 `yaml:"damping"`
	Margin    float64 `yaml:"margin"`
}

// VirusConfig holds virus parameters.
type VirusConfig struct {
	Count            int     `yaml:"count"`
	MaxCount         int     `yaml:"max_count"`
	Mass             float64 `yaml:"mass"`
	Radius           float64 `yaml:"radius"`
	SplitMass        float64 `yaml:"split_mass"`   // cells this big or larger explode on contact
	TouchFactor      float64 `yaml:"touch_factor"` // contact when dist < r + virusRadius * this
	FeedCount        int     `yaml:"feed_count"`   // ejections needed to shoot a new virus
	PieceMassStep    float64 `yaml:"piece_mass_step"`
	PieceSpeedMin    float64 `yaml:"piece_speed_min"`
	PieceSpeedJitter float64 `yaml:"piece_speed_jitter"`
}

// AgentConfig holds autonomous agent decision parameters.
type AgentConfig struct {
	Count              int      `yaml:"count"`
	RespawnChance      float64  `yaml:"respawn_chance"`
	FoodScanRadius     float64  `yaml:"food_scan_radius"`
	ThreatRadius       float64  `yaml:"threat_radius"`
	PreyRadius         float64  `yaml:"prey_radius"`
	VirusMassThreshold float64  `yaml:"virus_mass_threshold"`
	VirusScanRadius    float64  `yaml:"virus_scan_radius"`
	FleeRadius         float64  `yaml:"flee_radius"`
	FleeDistance       float64  `yaml:"flee_distance"`
	VirusAvoidRadius   float64  `yaml:"virus_avoid_radius"`
	VirusAvoidDistance float64  `yaml:"virus_avoid_distance"`
	ChaseRadius        float64  `yaml:"chase_radius"`
	WanderChance       float64  `yaml:"wander_chance"`
	EdgeMargin         float64  `yaml:"edge_margin"`
	SplitMaxCells      int      `yaml:"split_max_cells"`
	SplitMinMass       float64  `yaml:"split_min_mass"`
	SplitMinDist       float64  `yaml:"split_min_dist"`
	SplitMaxDist       float64  `yaml:"split_max_dist"`
	SplitChance        float64  `yaml:"split_chance"`
	Names              []string `yaml:"names"`
}

// CameraConfig holds camera smoothing parameters.
type CameraConfig struct {
	Follow        float64 `yaml:"follow"`      // position smoothing per tick
	ZoomFollow    float64 `yaml:"zoom_follow"` // zoom smoothing per tick
	ZoomMassScale float64 `yaml:"zoom_mass_scale"`
	MinZoom       float64 `yaml:"min_zoom"`
	MaxZoom       float64 `yaml:"max_zoom"`
}

// LeaderboardConfig holds leaderboard settings.
type LeaderboardConfig struct {
	Size int `yaml:"size"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// AudioConfig holds sound effect settings.
type AudioConfig struct {
	Enabled       bool    `yaml:"enabled"`
	SampleRate    int     `yaml:"sample_rate"`
	MasterVolume  float64 `yaml:"master_volume"`
	EjectRepeatMs int     `yaml:"eject_repeat_ms"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldSize32  float32 // World.Size as float32 for renderers
	ScreenW32    float32
	ScreenH32    float32
	TicksPerSec  float64 // 1000 / Physics.FrameMillis
	StatsWindowT int32   // ticks per telemetry window
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Clone returns a deep copy, safe to modify independently (the tuner runs
// several configurations side by side).
func (c *Config) Clone() *Config {
	cp := *c
	cp.Agents.Names = append([]string(nil), c.Agents.Names...)
	cp.Autopilot.Names = append([]string(nil), c.Autopilot.Names...)
	return &cp
}

// validate rejects values that would break invariants of the simulation.
func (c *Config) validate() error {
	switch {
	case c.World.Size <= 0:
		return fmt.Errorf("world.size must be positive, got %v", c.World.Size)
	case c.Cell.StartingMass <= 0:
		return fmt.Errorf("cell.starting_mass must be positive, got %v", c.Cell.StartingMass)
	case c.Cell.MaxCells < 1:
		return fmt.Errorf("cell.max_cells must be at least 1, got %d", c.Cell.MaxCells)
	case c.Cell.EatRatio < 1:
		return fmt.Errorf("cell.eat_ratio must be >= 1, got %v", c.Cell.EatRatio)
	case c.Ejected.MassLoss < c.Ejected.MassValue:
		return fmt.Errorf("ejected.mass_loss (%v) must not be below ejected.mass_value (%v)",
			c.Ejected.MassLoss, c.Ejected.MassValue)
	case c.Physics.FrameMillis <= 0:
		return fmt.Errorf("physics.frame_ms must be positive, got %v", c.Physics.FrameMillis)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.WorldSize32 = float32(c.World.Size)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.TicksPerSec = 1000.0 / c.Physics.FrameMillis

	ticks := int32(math.Round(c.Telemetry.StatsWindow * c.Derived.TicksPerSec))
	if ticks < 1 {
		ticks = 1
	}
	c.Derived.StatsWindowT = ticks

	if c.Physics.IndexCellSize <= 0 {
		c.Physics.IndexCellSize = c.Agents.FoodScanRadius / 2
	}
	if c.Leaderboard.Size <= 0 {
		c.Leaderboard.Size = 10
	}
	if c.Virus.MaxCount < c.Virus.Count {
		c.Virus.MaxCount = c.Virus.Count
	}

	c.Autopilot = c.Autopilot.inherit(c.Agents)
}

// inherit fills zero fields from base. Count and Names are never inherited:
// the autopilot drives exactly one player with the human's name.
func (a AgentConfig) inherit(base AgentConfig) AgentConfig {
	pick := func(v, b float64) float64 {
		if v == 0 {
			return b
		}
		return v
	}
	a.RespawnChance = pick(a.RespawnChance, base.RespawnChance)
	a.FoodScanRadius = pick(a.FoodScanRadius, base.FoodScanRadius)
	a.ThreatRadius = pick(a.ThreatRadius, base.ThreatRadius)
	a.PreyRadius = pick(a.PreyRadius, base.PreyRadius)
	a.VirusMassThreshold = pick(a.VirusMassThreshold, base.VirusMassThreshold)
	a.VirusScanRadius = pick(a.VirusScanRadius, base.VirusScanRadius)
	a.FleeRadius = pick(a.FleeRadius, base.FleeRadius)
	a.FleeDistance = pick(a.FleeDistance, base.FleeDistance)
	a.VirusAvoidRadius = pick(a.VirusAvoidRadius, base.VirusAvoidRadius)
	a.VirusAvoidDistance = pick(a.VirusAvoidDistance, base.VirusAvoidDistance)
	a.ChaseRadius = pick(a.ChaseRadius, base.ChaseRadius)
	a.WanderChance = pick(a.WanderChance, base.WanderChance)
	a.EdgeMargin = pick(a.EdgeMargin, base.EdgeMargin)
	a.SplitMinMass = pick(a.SplitMinMass, base.SplitMinMass)
	a.SplitMinDist = pick(a.SplitMinDist, base.SplitMinDist)
	a.SplitMaxDist = pick(a.SplitMaxDist, base.SplitMaxDist)
	a.SplitChance = pick(a.SplitChance, base.SplitChance)
	if a.SplitMaxCells == 0 {
		a.SplitMaxCells = base.SplitMaxCells
	}
	return a
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
