package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/arena/components"
)

// Split halves a cell and launches the new half toward (tx, ty).
// Cells below the minimum split mass are returned unchanged.
// Both halves become ineligible to merge until now + MergeTimeMillis.
func (s *CellSystem) Split(c components.Cell, tx, ty, now float64, ids *components.Sequence) []components.Cell {
	cc := &s.cfg.Cell
	if c.Mass < cc.MinSplitMass {
		return []components.Cell{c}
	}

	half := c.Mass / 2
	angle := math.Atan2(ty-c.Y, tx-c.X)
	mergeAt := now + cc.MergeTimeMillis

	orig := c
	orig.SetMass(half)
	orig.MergeAt = mergeAt

	piece := components.NewCell(ids.Next(), c.X, c.Y, half, c.Color)
	piece.VX = math.Cos(angle) * cc.SplitVelocity
	piece.VY = math.Sin(angle) * cc.SplitVelocity
	piece.MergeAt = mergeAt

	return []components.Cell{orig, piece}
}

// SplitAll splits every eligible cell of one player toward the same target.
// Cells split in order while room remains for both halves and for every cell
// still to come, so the result never exceeds MaxCells when the input respects it.
func (s *CellSystem) SplitAll(cells []components.Cell, tx, ty, now float64, ids *components.Sequence) []components.Cell {
	out := make([]components.Cell, 0, len(cells)*2)
	for i, c := range cells {
		remaining := len(cells) - i - 1
		if len(out)+2+remaining <= s.cfg.Cell.MaxCells && c.Mass >= s.cfg.Cell.MinSplitMass {
			out = append(out, s.Split(c, tx, ty, now, ids)...)
		} else {
			out = append(out, c)
		}
	}
	return out
}

// ExplodePieces returns how many fragments a cell of the given mass breaks into.
func (s *CellSystem) ExplodePieces(mass float64) int {
	n := int(math.Floor(mass/s.cfg.Virus.PieceMassStep)) + 2
	if n > s.cfg.Cell.MaxCells {
		n = s.cfg.Cell.MaxCells
	}
	return n
}

// Explode fragments a cell that hit a virus into evenly spaced radial pieces.
// Mass is split equally; each piece gets its own merge timer.
// The first piece keeps the original cell's ID.
func (s *CellSystem) Explode(c components.Cell, now float64, ids *components.Sequence, rng *rand.Rand) []components.Cell {
	v := &s.cfg.Virus
	n := s.ExplodePieces(c.Mass)
	each := c.Mass / float64(n)
	mergeAt := now + s.cfg.Cell.MergeTimeMillis

	pieces := make([]components.Cell, n)
	for i := 0; i < n; i++ {
		angle := float64(i) / float64(n) * 2 * math.Pi
		speed := v.PieceSpeedMin + rng.Float64()*v.PieceSpeedJitter

		id := c.ID
		if i > 0 {
			id = ids.Next()
		}
		p := components.NewCell(id, c.X, c.Y, each, c.Color)
		p.VX = math.Cos(angle) * speed
		p.VY = math.Sin(angle) * speed
		p.MergeAt = mergeAt
		pieces[i] = p
	}
	return pieces
}
