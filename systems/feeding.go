package systems

import "github.com/pthm-cable/arena/components"

// CanEat reports whether an eater of the given mass is big enough to consume preyMass.
func (s *CellSystem) CanEat(eaterMass, preyMass float64) bool {
	return eaterMass > preyMass*s.cfg.Cell.EatRatio
}

// Overlaps reports whether prey lies deep enough inside eater to be swallowed.
func (s *CellSystem) Overlaps(eater, prey components.Cell) bool {
	d := distance(eater.X, eater.Y, prey.X, prey.Y)
	return d < eater.Radius-prey.Radius*s.cfg.Cell.EatOverlap
}

// FeedResult summarises what a consumption pass removed.
type FeedResult struct {
	Food    int
	Ejected int
	Mass    float64
}

// EatPellets lets each cell consume food and ejected mass whose center lies within
// its radius. Cells are visited in order and grow as they eat, so a later pellet
// may be reached by an earlier cell's new radius. Ejected mass additionally
// requires the eat ratio. cells is updated in place; survivors are returned.
func (s *CellSystem) EatPellets(cells []components.Cell, food []components.Food, ejected []components.EjectedMass) ([]components.Food, []components.EjectedMass, FeedResult) {
	var res FeedResult
	for i := range cells {
		c := &cells[i]

		kept := food[:0:0]
		for _, f := range food {
			if distance(c.X, c.Y, f.X, f.Y) < c.Radius {
				c.SetMass(c.Mass + f.Mass)
				res.Food++
				res.Mass += f.Mass
				continue
			}
			kept = append(kept, f)
		}
		food = kept

		keptE := ejected[:0:0]
		for _, e := range ejected {
			if distance(c.X, c.Y, e.X, e.Y) < c.Radius && s.CanEat(c.Mass, e.Mass) {
				c.SetMass(c.Mass + e.Mass)
				res.Ejected++
				res.Mass += e.Mass
				continue
			}
			keptE = append(keptE, e)
		}
		ejected = keptE
	}
	return food, ejected, res
}

// EatCells lets each eater cell consume prey cells it can eat and overlaps.
// The eater gains the prey's full mass. eaters is updated in place; surviving
// prey are returned with the number eaten.
func (s *CellSystem) EatCells(eaters, prey []components.Cell) ([]components.Cell, int) {
	eaten := 0
	for i := range eaters {
		e := &eaters[i]
		kept := prey[:0:0]
		for _, p := range prey {
			if s.CanEat(e.Mass, p.Mass) && s.Overlaps(*e, p) {
				e.SetMass(e.Mass + p.Mass)
				eaten++
				continue
			}
			kept = append(kept, p)
		}
		prey = kept
	}
	return prey, eaten
}
