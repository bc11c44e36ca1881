package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/config"
)

func newTestBehavior(t testing.TB) *BehaviorSystem {
	t.Helper()
	cfg := config.Default()
	return NewBehaviorSystem(cfg.Agents, cfg)
}

func playerAt(id uint32, x, y, mass float64) components.Player {
	return components.Player{
		ID:      id,
		Cells:   []components.Cell{components.NewCell(id*100, x, y, mass, components.Color{})},
		TargetX: x,
		TargetY: y,
	}
}

func TestDecideFlee(t *testing.T) {
	b := newTestBehavior(t)
	rng := rand.New(rand.NewSource(1))

	self := playerAt(1, 2000, 2000, 20)
	threat := playerAt(2, 2200, 2000, 100)
	food := []components.Food{{X: 2100, Y: 2000, Mass: 1}}

	d := b.Decide(self, []components.Player{self, threat}, food, nil, nil, rng)
	if d.Reason != ReasonFlee {
		t.Fatalf("expected flee, got %s", d.Reason)
	}
	if !almostEqual(d.TargetX, 1500, 1e-9) || !almostEqual(d.TargetY, 2000, 1e-9) {
		t.Errorf("expected target (1500, 2000), got (%f, %f)", d.TargetX, d.TargetY)
	}
}

func TestDecideAvoidVirusOnlyWhenBig(t *testing.T) {
	b := newTestBehavior(t)
	rng := rand.New(rand.NewSource(1))
	viruses := []components.Virus{{X: 2100, Y: 2000}}

	big := playerAt(1, 2000, 2000, 200)
	d := b.Decide(big, []components.Player{big}, nil, nil, viruses, rng)
	if d.Reason != ReasonAvoidVirus {
		t.Fatalf("expected avoid_virus, got %s", d.Reason)
	}
	if !almostEqual(d.TargetX, 1800, 1e-9) {
		t.Errorf("expected target x 1800, got %f", d.TargetX)
	}

	small := playerAt(1, 2000, 2000, 100)
	d = b.Decide(small, []components.Player{small}, nil, nil, viruses, rng)
	if d.Reason == ReasonAvoidVirus {
		t.Error("small player should ignore viruses")
	}
}

func TestDecideChaseBeforeFood(t *testing.T) {
	b := newTestBehavior(t)
	rng := rand.New(rand.NewSource(1))

	self := playerAt(1, 2000, 2000, 100)
	prey := playerAt(2, 2300, 2000, 20)
	food := []components.Food{{X: 2010, Y: 2000, Mass: 1}}

	d := b.Decide(self, []components.Player{self, prey}, food, nil, nil, rng)
	if d.Reason != ReasonChase || d.TargetX != 2300 {
		t.Errorf("expected chase to (2300, 2000), got %s (%f, %f)", d.Reason, d.TargetX, d.TargetY)
	}

	// prey outside chase radius but inside detection: food wins
	prey = playerAt(2, 2500, 2000, 20)
	d = b.Decide(self, []components.Player{self, prey}, food, nil, nil, rng)
	if d.Reason != ReasonFood || d.TargetX != 2010 {
		t.Errorf("expected food at 2010, got %s (%f, %f)", d.Reason, d.TargetX, d.TargetY)
	}
}

func TestDecideClampsToMargin(t *testing.T) {
	b := newTestBehavior(t)
	rng := rand.New(rand.NewSource(1))

	self := playerAt(1, 150, 150, 20)
	threat := playerAt(2, 250, 250, 100)

	d := b.Decide(self, []components.Player{self, threat}, nil, nil, nil, rng)
	m := b.Params().EdgeMargin
	if d.TargetX != m || d.TargetY != m {
		t.Errorf("expected target clamped to (%f, %f), got (%f, %f)", m, m, d.TargetX, d.TargetY)
	}
}

func TestDecideDeadPlayerKeepsTarget(t *testing.T) {
	b := newTestBehavior(t)
	rng := rand.New(rand.NewSource(1))

	dead := components.Player{ID: 1, TargetX: 42, TargetY: 24}
	d := b.Decide(dead, nil, nil, nil, nil, rng)
	if d.TargetX != 42 || d.TargetY != 24 {
		t.Errorf("dead player target changed to (%f, %f)", d.TargetX, d.TargetY)
	}
}

func TestDecideIndexMatchesLinear(t *testing.T) {
	b := newTestBehavior(t)
	cfg := config.Default()
	rng := rand.New(rand.NewSource(3))

	food := make([]components.Food, 500)
	for i := range food {
		food[i] = components.Food{X: rng.Float64() * cfg.World.Size, Y: rng.Float64() * cfg.World.Size, Mass: 1}
	}
	grid := NewSpatialGrid(cfg.World.Size, cfg.World.Size, cfg.Physics.IndexCellSize)
	BuildFoodIndex(grid, food)

	for i := 0; i < 200; i++ {
		self := playerAt(1, rng.Float64()*cfg.World.Size, rng.Float64()*cfg.World.Size, 20)
		a := b.Decide(self, nil, food, nil, nil, rand.New(rand.NewSource(int64(i))))
		g := b.Decide(self, nil, food, grid, nil, rand.New(rand.NewSource(int64(i))))
		if a != g {
			t.Fatalf("index decision %+v differs from linear %+v", g, a)
		}
	}
}

func TestShouldSplit(t *testing.T) {
	b := newTestBehavior(t)
	b.params.SplitChance = 1

	self := playerAt(1, 2000, 2000, 100)
	prey := playerAt(2, 2200, 2000, 20)
	rng := rand.New(rand.NewSource(1))

	if !b.ShouldSplit(self, []components.Player{self, prey}, rng) {
		t.Error("expected split intent")
	}

	tooClose := playerAt(2, 2050, 2000, 20)
	if b.ShouldSplit(self, []components.Player{self, tooClose}, rng) {
		t.Error("prey inside min distance should not trigger a split")
	}

	light := playerAt(1, 2000, 2000, 60)
	if b.ShouldSplit(light, []components.Player{light, prey}, rng) {
		t.Error("main cell below split mass should not split")
	}

	many := self.Clone()
	for i := 0; i < 3; i++ {
		many.Cells = append(many.Cells, components.NewCell(uint32(500+i), 2000, 2000, 10, components.Color{}))
	}
	if b.ShouldSplit(many, []components.Player{many, prey}, rng) {
		t.Error("player with 4 cells should not split")
	}
}
