package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/config"
)

// Decision is the target an agent steers toward this tick.
type Decision struct {
	TargetX, TargetY float64
	Reason           Reason
}

// Reason records which rule produced a decision.
type Reason uint8

const (
	ReasonHold Reason = iota // keep the previous target
	ReasonFlee
	ReasonAvoidVirus
	ReasonChase
	ReasonFood
	ReasonWander
)

func (r Reason) String() string {
	switch r {
	case ReasonFlee:
		return "flee"
	case ReasonAvoidVirus:
		return "avoid_virus"
	case ReasonChase:
		return "chase"
	case ReasonFood:
		return "food"
	case ReasonWander:
		return "wander"
	default:
		return "hold"
	}
}

// BehaviorSystem picks targets and split intent for autonomous players.
type BehaviorSystem struct {
	params    config.AgentConfig
	worldSize float64
	eatRatio  float64
}

// NewBehaviorSystem creates a behaviour system with the given decision parameters.
func NewBehaviorSystem(params config.AgentConfig, cfg *config.Config) *BehaviorSystem {
	return &BehaviorSystem{
		params:    params,
		worldSize: cfg.World.Size,
		eatRatio:  cfg.Cell.EatRatio,
	}
}

// Params returns the decision parameters.
func (b *BehaviorSystem) Params() config.AgentConfig {
	return b.params
}

type sighting struct {
	x, y, dist float64
	found      bool
}

func (s *sighting) offer(x, y, dist float64) {
	if !s.found || dist < s.dist {
		*s = sighting{x: x, y: y, dist: dist, found: true}
	}
}

// Decide chooses a new target for self.
//
// Priority: flee a close threat, evade a close virus when big, chase close prey,
// go to the nearest food, otherwise occasionally wander. The result is kept
// EdgeMargin away from the world border. others may include self; it is skipped by ID.
// foodIndex may be nil, in which case food is scanned linearly.
func (b *BehaviorSystem) Decide(self components.Player, others []components.Player, food []components.Food, foodIndex *SpatialGrid, viruses []components.Virus, rng *rand.Rand) Decision {
	d := Decision{TargetX: self.TargetX, TargetY: self.TargetY}
	if len(self.Cells) == 0 {
		return d
	}
	p := &b.params

	cx, cy := CenterOfMass(self.Cells)
	total := TotalMass(self.Cells)

	var nearestFood sighting
	if foodIndex != nil {
		if i, dist, ok := foodIndex.Nearest(cx, cy, p.FoodScanRadius); ok {
			nearestFood = sighting{x: food[i].X, y: food[i].Y, dist: dist, found: true}
		}
	} else {
		nearestFood = nearestFoodLinear(food, cx, cy, p.FoodScanRadius)
	}

	var threat, prey sighting
	for i := range others {
		o := &others[i]
		if o.ID == self.ID || len(o.Cells) == 0 {
			continue
		}
		for j := range o.Cells {
			c := &o.Cells[j]
			dist := distance(c.X, c.Y, cx, cy)
			if c.Mass > total*b.eatRatio && dist < p.ThreatRadius {
				threat.offer(c.X, c.Y, dist)
			}
			if total > c.Mass*b.eatRatio && dist < p.PreyRadius {
				prey.offer(c.X, c.Y, dist)
			}
		}
	}

	var virus sighting
	if total > p.VirusMassThreshold {
		for i := range viruses {
			v := &viruses[i]
			dist := distance(v.X, v.Y, cx, cy)
			if dist < p.VirusScanRadius {
				virus.offer(v.X, v.Y, dist)
			}
		}
	}

	switch {
	case threat.found && threat.dist < p.FleeRadius:
		d.TargetX, d.TargetY = away(cx, cy, threat.x, threat.y, p.FleeDistance)
		d.Reason = ReasonFlee
	case virus.found && virus.dist < p.VirusAvoidRadius:
		d.TargetX, d.TargetY = away(cx, cy, virus.x, virus.y, p.VirusAvoidDistance)
		d.Reason = ReasonAvoidVirus
	case prey.found && prey.dist < p.ChaseRadius:
		d.TargetX, d.TargetY = prey.x, prey.y
		d.Reason = ReasonChase
	case nearestFood.found:
		d.TargetX, d.TargetY = nearestFood.x, nearestFood.y
		d.Reason = ReasonFood
	default:
		if rng.Float64() < p.WanderChance {
			d.TargetX = rng.Float64() * b.worldSize
			d.TargetY = rng.Float64() * b.worldSize
			d.Reason = ReasonWander
		}
	}

	m := p.EdgeMargin
	d.TargetX = clampFloat(d.TargetX, m, b.worldSize-m)
	d.TargetY = clampFloat(d.TargetY, m, b.worldSize-m)
	return d
}

// ShouldSplit decides whether self splits to catch a nearby smaller cell.
// Requires few cells, a heavy main cell, and an enemy cell that half of the
// main cell could eat at a mid-range distance; then fires with SplitChance.
func (b *BehaviorSystem) ShouldSplit(self components.Player, others []components.Player, rng *rand.Rand) bool {
	p := &b.params
	if len(self.Cells) == 0 || len(self.Cells) >= p.SplitMaxCells {
		return false
	}
	main := self.Cells[0]
	if main.Mass < p.SplitMinMass {
		return false
	}

	cx, cy := CenterOfMass(self.Cells)
	for i := range others {
		o := &others[i]
		if o.ID == self.ID || len(o.Cells) == 0 {
			continue
		}
		for j := range o.Cells {
			c := &o.Cells[j]
			dist := distance(c.X, c.Y, cx, cy)
			if main.Mass/2 > c.Mass*b.eatRatio && dist < p.SplitMaxDist && dist > p.SplitMinDist {
				return rng.Float64() < p.SplitChance
			}
		}
	}
	return false
}

// away returns the point dist units from (cx, cy) directly away from (fx, fy).
func away(cx, cy, fx, fy, dist float64) (float64, float64) {
	angle := math.Atan2(cy-fy, cx-fx)
	return cx + math.Cos(angle)*dist, cy + math.Sin(angle)*dist
}

// nearestFoodLinear scans food in order, keeping the first strictly closer pellet.
func nearestFoodLinear(food []components.Food, x, y, maxDist float64) sighting {
	best := sighting{dist: maxDist}
	for i := range food {
		f := &food[i]
		d := distance(f.X, f.Y, x, y)
		if d < best.dist {
			best = sighting{x: f.X, y: f.Y, dist: d, found: true}
		}
	}
	return best
}

// BuildFoodIndex fills grid with food positions in slice order.
func BuildFoodIndex(grid *SpatialGrid, food []components.Food) {
	grid.Clear()
	for i := range food {
		grid.Insert(food[i].X, food[i].Y)
	}
}
