package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/arena/components"
)

// NewVirus creates a virus at (x, y) with configured mass and radius.
func (s *CellSystem) NewVirus(id uint32, x, y float64) components.Virus {
	return components.Virus{
		ID:     id,
		X:      x,
		Y:      y,
		Mass:   s.cfg.Virus.Mass,
		Radius: s.cfg.Virus.Radius,
	}
}

// TouchesVirus reports whether a cell is in contact with a virus.
func (s *CellSystem) TouchesVirus(c components.Cell, v components.Virus) bool {
	d := distance(c.X, c.Y, v.X, v.Y)
	return d < c.Radius+s.cfg.Virus.Radius*s.cfg.Virus.TouchFactor
}

// ExplodesOn reports whether a cell is big enough to be fragmented by a virus.
func (s *CellSystem) ExplodesOn(c components.Cell) bool {
	return c.Mass >= s.cfg.Virus.SplitMass
}

// VirusContact fragments every cell that is big enough and touches v.
// Returns the new cell list and the number of cells that exploded.
func (s *CellSystem) VirusContact(cells []components.Cell, v components.Virus, now float64, ids *components.Sequence, rng *rand.Rand) ([]components.Cell, int) {
	hits := 0
	out := make([]components.Cell, 0, len(cells))
	for _, c := range cells {
		if s.ExplodesOn(c) && s.TouchesVirus(c, v) {
			out = append(out, s.Explode(c, now, ids, rng)...)
			hits++
			continue
		}
		out = append(out, c)
	}
	return out, hits
}

// FeedViruses lets viruses absorb ejected mass that reaches their body.
// A virus fed FeedCount times resets and shoots a new virus twice its radius
// away along the last projectile's heading, as long as fewer than MaxCount exist.
// Returns the updated viruses, the surviving projectiles and how many viruses were born.
func (s *CellSystem) FeedViruses(viruses []components.Virus, ejected []components.EjectedMass, ids *components.Sequence) ([]components.Virus, []components.EjectedMass, int) {
	vc := &s.cfg.Virus
	out := append([]components.Virus(nil), viruses...)
	born := 0

	kept := ejected[:0:0]
	for _, e := range ejected {
		absorbed := false
		for i := 0; i < len(viruses); i++ {
			v := &out[i]
			if distance(e.X, e.Y, v.X, v.Y) >= v.Radius {
				continue
			}
			absorbed = true
			v.FeedCount++
			if v.FeedCount >= vc.FeedCount {
				v.FeedCount = 0
				if len(out) < vc.MaxCount {
					angle := math.Atan2(e.VY, e.VX)
					size := s.cfg.World.Size
					nx := clampFloat(v.X+math.Cos(angle)*v.Radius*2, vc.Radius, size-vc.Radius)
					ny := clampFloat(v.Y+math.Sin(angle)*v.Radius*2, vc.Radius, size-vc.Radius)
					out = append(out, s.NewVirus(ids.Next(), nx, ny))
					born++
				}
			}
			break
		}
		if !absorbed {
			kept = append(kept, e)
		}
	}
	return out, kept, born
}
