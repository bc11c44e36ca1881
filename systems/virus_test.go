package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/arena/components"
)

func TestVirusContact(t *testing.T) {
	s := newTestSystem(t)
	rng := rand.New(rand.NewSource(7))
	var ids components.Sequence

	v := s.NewVirus(ids.Next(), 1000, 1000)
	cells := []components.Cell{
		components.NewCell(ids.Next(), 1030, 1000, 200, components.Color{}), // big, touching
		components.NewCell(ids.Next(), 1020, 1000, 149, components.Color{}), // touching but too small
		components.NewCell(ids.Next(), 3000, 3000, 500, components.Color{}), // big but far
	}

	got, hits := s.VirusContact(cells, v, 0, &ids, rng)
	if hits != 1 {
		t.Fatalf("expected 1 hit, got %d", hits)
	}
	if len(got) != s.ExplodePieces(200)+2 {
		t.Errorf("expected %d cells, got %d", s.ExplodePieces(200)+2, len(got))
	}
	if !almostEqual(TotalMass(got), TotalMass(cells), 1e-6) {
		t.Errorf("virus contact changed total mass: %f -> %f", TotalMass(cells), TotalMass(got))
	}
}

func TestTouchesVirus(t *testing.T) {
	s := newTestSystem(t)
	v := s.NewVirus(1, 0, 0)
	c := components.NewCell(2, 0, 0, 100, components.Color{}) // r = 40, reach = 40 + 32

	c.X = 71
	if !s.TouchesVirus(c, v) {
		t.Error("expected contact at 71")
	}
	c.X = 72
	if s.TouchesVirus(c, v) {
		t.Error("expected no contact at 72")
	}
}

func TestFeedVirusesShootsNewVirus(t *testing.T) {
	s := newTestSystem(t)
	var ids components.Sequence
	cfg := s.Config()

	viruses := []components.Virus{s.NewVirus(ids.Next(), 2000, 2000)}
	born := 0
	for i := 0; i < cfg.Virus.FeedCount; i++ {
		shot := []components.EjectedMass{
			components.NewEjectedMass(ids.Next(), 2010, 2000, cfg.Ejected.MassValue, 5, 0, components.Color{}),
		}
		var left []components.EjectedMass
		var n int
		viruses, left, n = s.FeedViruses(viruses, shot, &ids)
		if len(left) != 0 {
			t.Fatalf("feed %d: projectile not absorbed", i)
		}
		born += n
	}

	if born != 1 || len(viruses) != 2 {
		t.Fatalf("expected one new virus, have %d (born %d)", len(viruses), born)
	}
	if viruses[0].FeedCount != 0 {
		t.Errorf("expected parent feed count reset, got %d", viruses[0].FeedCount)
	}
	want := 2000 + cfg.Virus.Radius*2
	if !almostEqual(viruses[1].X, want, 1e-9) || !almostEqual(viruses[1].Y, 2000, 1e-9) {
		t.Errorf("expected child at (%f, 2000), got (%f, %f)", want, viruses[1].X, viruses[1].Y)
	}
}

func TestFeedVirusesRespectsMaxCount(t *testing.T) {
	s := newTestSystem(t)
	var ids components.Sequence
	cfg := s.Config()

	viruses := make([]components.Virus, cfg.Virus.MaxCount)
	for i := range viruses {
		viruses[i] = s.NewVirus(ids.Next(), float64(100+i*120), 100)
	}
	viruses[0].FeedCount = cfg.Virus.FeedCount - 1

	shot := []components.EjectedMass{components.NewEjectedMass(ids.Next(), 100, 100, 12, 1, 0, components.Color{})}
	got, _, born := s.FeedViruses(viruses, shot, &ids)
	if born != 0 || len(got) != cfg.Virus.MaxCount {
		t.Errorf("expected cap %d to hold, got %d viruses", cfg.Virus.MaxCount, len(got))
	}
}

func TestEjectConservation(t *testing.T) {
	s := newTestSystem(t)
	var ids components.Sequence
	ec := s.Config().Ejected

	cells := []components.Cell{
		components.NewCell(ids.Next(), 1000, 1000, 100, components.Color{}),
		components.NewCell(ids.Next(), 2000, 2000, 20, components.Color{}),
	}
	out, shot := s.Eject(cells, 1500, 1000, &ids)
	if len(shot) != 1 {
		t.Fatalf("expected 1 projectile, got %d", len(shot))
	}
	if out[0].Mass != 100-ec.MassLoss || out[1].Mass != 20 {
		t.Errorf("unexpected masses after eject: %f, %f", out[0].Mass, out[1].Mass)
	}
	if shot[0].Mass != ec.MassValue {
		t.Errorf("expected payload %f, got %f", ec.MassValue, shot[0].Mass)
	}
	destroyed := TotalMass(cells) - TotalMass(out) - shot[0].Mass
	if !almostEqual(destroyed, ec.MassLoss-ec.MassValue, 1e-9) {
		t.Errorf("expected %f destroyed, got %f", ec.MassLoss-ec.MassValue, destroyed)
	}
	if !almostEqual(shot[0].X, 1000+cells[0].Radius, 1e-9) || !almostEqual(shot[0].VX, ec.Speed, 1e-9) {
		t.Errorf("projectile should start on the rim moving at eject speed: %+v", shot[0])
	}
}

func TestAdvanceEjected(t *testing.T) {
	s := newTestSystem(t)
	frame := s.Config().Physics.FrameMillis

	e := components.NewEjectedMass(1, 15, 500, 12, -20, 0, components.Color{})
	e = s.AdvanceEjected(e, frame)
	if e.X != s.Config().Ejected.Margin {
		t.Errorf("expected clamp to margin, got %f", e.X)
	}
	if !almostEqual(e.VX, -18, 1e-9) {
		t.Errorf("expected vx -18, got %f", e.VX)
	}
}
