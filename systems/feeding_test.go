package systems

import (
	"testing"

	"github.com/pthm-cable/arena/components"
)

func TestCanEatRatio(t *testing.T) {
	s := newTestSystem(t)

	tests := []struct {
		name   string
		eater  float64
		prey   float64
		expect bool
	}{
		{"much bigger", 100, 50, true},
		{"just above ratio", 110.1, 100, true},
		{"exactly ratio", 110, 100, false},
		{"equal", 100, 100, false},
		{"smaller", 50, 100, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.CanEat(tc.eater, tc.prey); got != tc.expect {
				t.Errorf("CanEat(%f, %f): expected %v, got %v", tc.eater, tc.prey, tc.expect, got)
			}
		})
	}
}

func TestEatCellsConservesMass(t *testing.T) {
	s := newTestSystem(t)

	eaters := []components.Cell{components.NewCell(1, 1000, 1000, 100, components.Color{})}
	prey := []components.Cell{
		components.NewCell(2, 1005, 1000, 20, components.Color{}),
		components.NewCell(3, 3000, 3000, 20, components.Color{}),  // far away
		components.NewCell(4, 1000, 1005, 110, components.Color{}), // too big even after growing
	}
	before := TotalMass(eaters) + TotalMass(prey)

	left, eaten := s.EatCells(eaters, prey)
	if eaten != 1 || len(left) != 2 {
		t.Fatalf("expected 1 eaten and 2 left, got %d / %d", eaten, len(left))
	}
	if eaters[0].Mass != 120 {
		t.Errorf("expected eater mass 120, got %f", eaters[0].Mass)
	}
	if after := TotalMass(eaters) + TotalMass(left); after != before {
		t.Errorf("eating changed total mass: %f -> %f", before, after)
	}
	if len(prey) != 3 || prey[0].ID != 2 {
		t.Error("EatCells modified the prey slice it was given")
	}
}

func TestOverlaps(t *testing.T) {
	s := newTestSystem(t)
	eater := components.NewCell(1, 0, 0, 100, components.Color{}) // r = 40
	prey := components.NewCell(2, 0, 0, 25, components.Color{})   // r = 20

	// threshold = 40 - 20*0.4 = 32
	prey.X = 31.9
	if !s.Overlaps(eater, prey) {
		t.Error("expected overlap at 31.9")
	}
	prey.X = 32
	if s.Overlaps(eater, prey) {
		t.Error("expected no overlap at 32")
	}
}

func TestEatPellets(t *testing.T) {
	s := newTestSystem(t)

	cells := []components.Cell{components.NewCell(1, 100, 100, 10, components.Color{})} // r ~ 12.6
	food := []components.Food{
		{ID: 10, X: 105, Y: 100, Mass: 1},
		{ID: 11, X: 400, Y: 400, Mass: 1},
	}
	ejected := []components.EjectedMass{
		components.NewEjectedMass(20, 100, 104, 12, 0, 0, components.Color{}), // too heavy for mass 11
	}

	food, ejected, res := s.EatPellets(cells, food, ejected)
	if res.Food != 1 || len(food) != 1 || food[0].ID != 11 {
		t.Errorf("expected pellet 10 eaten, got %+v", food)
	}
	if cells[0].Mass != 11 {
		t.Errorf("expected mass 11, got %f", cells[0].Mass)
	}
	if res.Ejected != 0 || len(ejected) != 1 {
		t.Errorf("ejected mass eaten by a cell below the eat ratio")
	}

	cells[0].SetMass(50)
	_, ejected, res = s.EatPellets(cells, food, ejected)
	if res.Ejected != 1 || len(ejected) != 0 {
		t.Errorf("expected ejected mass to be eaten")
	}
	if cells[0].Mass != 62 {
		t.Errorf("expected mass 62, got %f", cells[0].Mass)
	}
}
