// Package scene mirrors World snapshots into an ECS world for the renderers.
//
// The simulation core replaces its state wholesale every tick. Renderers want
// stable entities instead, so they can interpolate from the previous tick's
// position and draw in a consistent order. Sync diffs each snapshot against
// the mirror by (kind, id): new records become entities, known ones move, and
// records missing from the snapshot are removed.
package scene

import (
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/game"
)

type key struct {
	kind components.Kind
	id   uint32
}

type owner struct {
	name  string
	stamp uint32
}

// Sprite is one drawable, resolved for a given interpolation factor.
type Sprite struct {
	Kind    components.Kind
	ID      uint32
	X, Y    float32
	Radius  float32
	Mass    float32
	Fill    components.Color
	Outline components.Color
	Label   string // owner name, cells only
	Human   bool
}

// Scene is the ECS mirror of the latest World.
type Scene struct {
	world *ecs.World

	mapper *ecs.Map5[
		components.Position,
		components.Previous,
		components.Body,
		components.Tint,
		components.Ref,
	]
	filter *ecs.Filter5[
		components.Position,
		components.Previous,
		components.Body,
		components.Tint,
		components.Ref,
	]

	index  map[key]ecs.Entity
	owners map[uint32]owner
	stamp  uint32
	stale  []ecs.Entity
	sorted []Sprite
}

// New creates an empty scene.
func New() *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world: world,
		mapper: ecs.NewMap5[
			components.Position,
			components.Previous,
			components.Body,
			components.Tint,
			components.Ref,
		](world),
		filter: ecs.NewFilter5[
			components.Position,
			components.Previous,
			components.Body,
			components.Tint,
			components.Ref,
		](world),
		index:  make(map[key]ecs.Entity),
		owners: make(map[uint32]owner),
	}
}

// Len returns the number of mirrored entities.
func (s *Scene) Len() int { return len(s.index) }

// Reset drops every entity, e.g. when a new game starts and IDs restart.
func (s *Scene) Reset() {
	for k, e := range s.index {
		s.world.RemoveEntity(e)
		delete(s.index, k)
	}
	clear(s.owners)
}

// Sync brings the mirror in line with w.
func (s *Scene) Sync(w *game.World) {
	s.stamp++

	for i := range w.Food {
		f := &w.Food[i]
		s.upsert(components.Ref{Kind: components.KindFood, ID: f.ID}, f.X, f.Y, f.Mass, f.Radius,
			components.Tint{Fill: f.Color, Outline: f.Color})
	}
	for i := range w.Ejected {
		e := &w.Ejected[i]
		s.upsert(components.Ref{Kind: components.KindEjected, ID: e.ID}, e.X, e.Y, e.Mass, e.Radius,
			components.Tint{Fill: e.Color, Outline: components.CellOutline(e.Color)})
	}
	for i := range w.Viruses {
		v := &w.Viruses[i]
		s.upsert(components.Ref{Kind: components.KindVirus, ID: v.ID}, v.X, v.Y, v.Mass, v.Radius,
			components.Tint{Fill: components.VirusColor, Outline: components.VirusStrokeColor})
	}
	for i := range w.Agents {
		s.syncPlayer(&w.Agents[i], false)
	}
	if w.Player != nil {
		s.syncPlayer(w.Player, true)
	}

	s.sweep()
}

func (s *Scene) syncPlayer(p *components.Player, human bool) {
	s.owners[p.ID] = owner{name: p.Name, stamp: s.stamp}
	tint := components.Tint{Fill: p.Color, Outline: components.CellOutline(p.Color)}
	for i := range p.Cells {
		c := &p.Cells[i]
		ref := components.Ref{Kind: components.KindCell, ID: c.ID, Owner: p.ID, Human: human}
		s.upsert(ref, c.X, c.Y, c.Mass, c.Radius, tint)
	}
}

func (s *Scene) upsert(ref components.Ref, x, y, mass, radius float64, tint components.Tint) {
	ref.Stamp = s.stamp
	k := key{ref.Kind, ref.ID}
	pos := components.Position{X: float32(x), Y: float32(y)}
	body := components.Body{Radius: float32(radius), Mass: float32(mass)}

	if e, ok := s.index[k]; ok {
		p, prev, b, t, r := s.mapper.Get(e)
		*prev = components.Previous(*p)
		*p = pos
		*b = body
		*t = tint
		*r = ref
		return
	}

	prev := components.Previous(pos)
	s.index[k] = s.mapper.NewEntity(&pos, &prev, &body, &tint, &ref)
}

// sweep removes entities the last Sync did not see.
func (s *Scene) sweep() {
	s.stale = s.stale[:0]
	query := s.filter.Query()
	for query.Next() {
		_, _, _, _, ref := query.Get()
		if ref.Stamp != s.stamp {
			s.stale = append(s.stale, query.Entity())
			delete(s.index, key{ref.Kind, ref.ID})
		}
	}

	// Query iteration complete
	for _, e := range s.stale {
		s.world.RemoveEntity(e)
	}
	for id, o := range s.owners {
		if o.stamp != s.stamp {
			delete(s.owners, id)
		}
	}
}

// Sprites returns every entity positioned alpha of the way from the previous
// sync to the latest, in draw order: food, ejected mass, viruses, then cells
// from lightest to heaviest. The slice is reused by the next call.
func (s *Scene) Sprites(alpha float32) []Sprite {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}

	s.sorted = s.sorted[:0]
	query := s.filter.Query()
	for query.Next() {
		pos, prev, body, tint, ref := query.Get()
		x, y := components.Lerp(*prev, *pos, alpha)
		sp := Sprite{
			Kind:    ref.Kind,
			ID:      ref.ID,
			X:       x,
			Y:       y,
			Radius:  body.Radius,
			Mass:    body.Mass,
			Fill:    tint.Fill,
			Outline: tint.Outline,
			Human:   ref.Human,
		}
		if ref.Kind == components.KindCell {
			sp.Label = s.owners[ref.Owner].name
		}
		s.sorted = append(s.sorted, sp)
	}

	sort.SliceStable(s.sorted, func(i, j int) bool {
		a, b := &s.sorted[i], &s.sorted[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Kind == components.KindCell && a.Mass != b.Mass {
			return a.Mass < b.Mass
		}
		return a.ID < b.ID
	})
	return s.sorted
}

// Visible filters sprites to those overlapping the rectangle, in place.
func Visible(sprites []Sprite, minX, minY, maxX, maxY float32) []Sprite {
	out := sprites[:0]
	for _, sp := range sprites {
		if sp.X+sp.Radius < minX || sp.X-sp.Radius > maxX ||
			sp.Y+sp.Radius < minY || sp.Y-sp.Radius > maxY {
			continue
		}
		out = append(out, sp)
	}
	return out
}
