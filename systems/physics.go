// Package systems implements the cell rules of the arena: movement, splitting,
// merging, eating, ejection, virus contact and agent behaviour.
//
// Functions return new values rather than mutating their inputs, except the
// consumption passes (EatPellets, EatCells), which grow the eating cells in place.
package systems

import (
	"math"

	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/config"
)

// CellSystem applies cell rules using one configuration.
type CellSystem struct {
	cfg *config.Config
}

// NewCellSystem creates a cell system bound to cfg.
func NewCellSystem(cfg *config.Config) *CellSystem {
	return &CellSystem{cfg: cfg}
}

// Config returns the configuration the system was built with.
func (s *CellSystem) Config() *config.Config {
	return s.cfg
}

// Speed returns the movement speed per reference frame for a cell of the given mass.
func (s *CellSystem) Speed(mass float64) float64 {
	sp := s.cfg.Speed
	return math.Max(sp.Min, sp.Base-mass*sp.Factor)
}

// frames converts a delta time in milliseconds to reference frames.
func (s *CellSystem) frames(dtMillis float64) float64 {
	if dtMillis <= 0 {
		return 0
	}
	return dtMillis / s.cfg.Physics.FrameMillis
}

// Advance moves a cell one tick toward (tx, ty).
// Residual velocity decays by VelocityDamping per reference frame; outside the
// deadzone the cell steers toward the target at its mass-dependent speed.
// The cell is clamped inside the world and large cells lose mass over time.
func (s *CellSystem) Advance(c components.Cell, tx, ty, dtMillis float64) components.Cell {
	f := s.frames(dtMillis)
	if f == 0 {
		return c
	}
	cc := &s.cfg.Cell

	damp := math.Pow(cc.VelocityDamping, f)
	c.VX *= damp
	c.VY *= damp

	dx := tx - c.X
	dy := ty - c.Y
	dist := math.Sqrt(dx*dx + dy*dy)

	if dist > cc.MoveDeadzone {
		speed := s.Speed(c.Mass)
		c.X += (dx/dist*speed + c.VX) * f
		c.Y += (dy/dist*speed + c.VY) * f
	} else {
		c.X += c.VX * f
		c.Y += c.VY * f
	}

	size := s.cfg.World.Size
	c.X = clampFloat(c.X, c.Radius, size-c.Radius)
	c.Y = clampFloat(c.Y, c.Radius, size-c.Radius)

	mass := c.Mass
	if mass > s.cfg.Decay.MinMass {
		mass -= mass * s.cfg.Decay.Rate * (dtMillis / 1000)
	}
	c.SetMass(mass)

	return c
}

// AdvanceCells advances every cell toward the same target.
func (s *CellSystem) AdvanceCells(cells []components.Cell, tx, ty, dtMillis float64) []components.Cell {
	out := make([]components.Cell, len(cells))
	for i := range cells {
		out[i] = s.Advance(cells[i], tx, ty, dtMillis)
	}
	return out
}

// CanMerge reports whether both cells' merge timers have elapsed at now.
func CanMerge(a, b components.Cell, now float64) bool {
	return a.MergeAt < now && b.MergeAt < now
}

// Merge combines two cells into the larger one (ties favour a).
// Mass is summed and the merge timer cleared.
func Merge(a, b components.Cell) components.Cell {
	larger := a
	if b.Mass > a.Mass {
		larger = b
	}
	larger.SetMass(a.Mass + b.Mass)
	larger.MergeAt = 0
	return larger
}

// ResolveMerges merges every pair of cells that overlap enough and are eligible.
// Pairs are visited in index order; a merged cell stays at the lower index and
// can keep absorbing later cells in the same pass.
func (s *CellSystem) ResolveMerges(cells []components.Cell, now float64) []components.Cell {
	if len(cells) <= 1 {
		return cells
	}
	overlap := s.cfg.Cell.MergeOverlap

	out := append([]components.Cell(nil), cells...)
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			a, b := out[i], out[j]
			d := distance(a.X, a.Y, b.X, b.Y)
			if d < (a.Radius+b.Radius)*overlap && CanMerge(a, b, now) {
				out[i] = Merge(a, b)
				out = append(out[:j], out[j+1:]...)
				j--
			}
		}
	}
	return out
}
