package systems

import (
	"math"

	"github.com/pthm-cable/arena/components"
)

// Eject shoots a projectile from every cell heavy enough toward (tx, ty).
// The projectile starts on the cell's rim; the cell loses MassLoss while the
// projectile carries only MassValue.
func (s *CellSystem) Eject(cells []components.Cell, tx, ty float64, ids *components.Sequence) ([]components.Cell, []components.EjectedMass) {
	ec := &s.cfg.Ejected
	out := make([]components.Cell, len(cells))
	var shot []components.EjectedMass

	for i, c := range cells {
		if c.Mass < ec.MinMass {
			out[i] = c
			continue
		}
		angle := math.Atan2(ty-c.Y, tx-c.X)
		cos, sin := math.Cos(angle), math.Sin(angle)

		shot = append(shot, components.NewEjectedMass(
			ids.Next(),
			c.X+cos*c.Radius,
			c.Y+sin*c.Radius,
			ec.MassValue,
			cos*ec.Speed,
			sin*ec.Speed,
			c.Color,
		))

		c.SetMass(c.Mass - ec.MassLoss)
		out[i] = c
	}
	return out, shot
}

// AdvanceEjected moves a projectile, slows it and keeps it inside the world margin.
func (s *CellSystem) AdvanceEjected(e components.EjectedMass, dtMillis float64) components.EjectedMass {
	f := s.frames(dtMillis)
	if f == 0 {
		return e
	}
	ec := &s.cfg.Ejected

	e.X += e.VX * f
	e.Y += e.VY * f

	damp := math.Pow(ec.Damping, f)
	e.VX *= damp
	e.VY *= damp

	size := s.cfg.World.Size
	e.X = clampFloat(e.X, ec.Margin, size-ec.Margin)
	e.Y = clampFloat(e.Y, ec.Margin, size-ec.Margin)
	return e
}
