// Package components defines the entity records of the arena.
// All values are plain data; behaviour lives in systems and game.
package components

import "math"

// RadiusFactor converts mass to radius: radius = RadiusFactor * sqrt(mass).
const RadiusFactor = 4.0

// RadiusForMass returns the radius of a body with the given mass.
func RadiusForMass(mass float64) float64 {
	if mass <= 0 {
		return 0
	}
	return RadiusFactor * math.Sqrt(mass)
}

// Cell is one body of a player.
type Cell struct {
	ID     uint32
	X, Y   float64
	Mass   float64
	Radius float64
	Color  Color

	// Residual momentum from splits and explosions, decays every tick.
	VX, VY float64

	// MergeAt is the elapsed-ms timestamp after which the cell may merge again.
	// Zero means eligible.
	MergeAt float64
}

// NewCell creates a cell with radius derived from mass.
func NewCell(id uint32, x, y, mass float64, color Color) Cell {
	c := Cell{ID: id, X: x, Y: y, Color: color}
	c.SetMass(mass)
	return c
}

// SetMass updates mass and recomputes the radius.
func (c *Cell) SetMass(mass float64) {
	c.Mass = mass
	c.Radius = RadiusForMass(mass)
}

// Player is the human or an autonomous agent.
// A player with zero cells is dead but keeps its identity.
type Player struct {
	ID      uint32
	Name    string
	Cells   []Cell
	Color   Color
	IsAgent bool

	TargetX, TargetY float64
	Score            int
}

// NewPlayer creates a player with a single starting cell at (x, y).
func NewPlayer(ids *Sequence, name string, x, y, mass float64, color Color, isAgent bool) Player {
	return Player{
		ID:      ids.Next(),
		Name:    name,
		Cells:   []Cell{NewCell(ids.Next(), x, y, mass, color)},
		Color:   color,
		IsAgent: isAgent,
		TargetX: x,
		TargetY: y,
		Score:   int(mass),
	}
}

// Alive reports whether the player has any cells.
func (p *Player) Alive() bool {
	return len(p.Cells) > 0
}

// TotalMass returns the summed mass of all cells.
func (p *Player) TotalMass() float64 {
	var m float64
	for i := range p.Cells {
		m += p.Cells[i].Mass
	}
	return m
}

// Clone returns a copy that shares no cell storage with p.
func (p Player) Clone() Player {
	p.Cells = append([]Cell(nil), p.Cells...)
	return p
}

// Food is a static pellet.
type Food struct {
	ID     uint32
	X, Y   float64
	Mass   float64
	Radius float64
	Color  Color
}

// Virus is a static hazard that fragments large cells.
type Virus struct {
	ID        uint32
	X, Y      float64
	Mass      float64
	Radius    float64
	FeedCount int
}

// EjectedMass is a projectile of mass shot out of a cell.
type EjectedMass struct {
	ID     uint32
	X, Y   float64
	Mass   float64
	Radius float64
	VX, VY float64
	Color  Color
}

// NewEjectedMass creates an ejected projectile with radius derived from mass.
func NewEjectedMass(id uint32, x, y, mass, vx, vy float64, color Color) EjectedMass {
	return EjectedMass{
		ID:     id,
		X:      x,
		Y:      y,
		Mass:   mass,
		Radius: RadiusForMass(mass),
		VX:     vx,
		VY:     vy,
		Color:  color,
	}
}

// Camera is the view state derived from the human's cells.
type Camera struct {
	X, Y       float64
	Zoom       float64
	TargetZoom float64
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	ID       uint32
	Name     string
	Score    int
	IsPlayer bool
}

// Sequence hands out unique entity IDs within one world.
// The zero value is ready to use; the first ID is 1.
type Sequence struct {
	last uint32
}

// Next returns the next ID.
func (s *Sequence) Next() uint32 {
	s.last++
	return s.last
}

// Last returns the most recently issued ID.
func (s *Sequence) Last() uint32 {
	return s.last
}
