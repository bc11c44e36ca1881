package game

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/config"
	"github.com/pthm-cable/arena/systems"
)

func TestStart(t *testing.T) {
	cfg := config.Default()
	e := newTestEngine(t, cfg, NewMemoryStore(42))

	w := e.NewWorld()
	if w.Phase != PhaseStart || w.Player != nil {
		t.Fatalf("expected empty start world, got phase %s", w.Phase)
	}
	if w.HighScore != 42 {
		t.Errorf("expected high score from store, got %d", w.HighScore)
	}

	w, err := e.Start(w, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if w.Phase != PhasePlaying {
		t.Fatalf("expected playing, got %s", w.Phase)
	}
	if w.Player.Name != DefaultName {
		t.Errorf("expected default name %q, got %q", DefaultName, w.Player.Name)
	}
	c := cfg.World.Size / 2
	if cell := w.Player.Cells[0]; cell.X != c || cell.Y != c || cell.Mass != cfg.Cell.StartingMass {
		t.Errorf("unexpected starting cell %+v", cell)
	}
	if w.Score != int(cfg.Cell.StartingMass) || w.HighScore != 42 {
		t.Errorf("unexpected score %d / high %d", w.Score, w.HighScore)
	}
	if len(w.Agents) != cfg.Agents.Count || len(w.Food) != cfg.Food.Count || len(w.Viruses) != cfg.Virus.Count {
		t.Errorf("unexpected population: %d agents, %d food, %d viruses", len(w.Agents), len(w.Food), len(w.Viruses))
	}
	if w.Camera.X != c || w.Camera.Zoom != 1 {
		t.Errorf("expected camera snapped to the human, got %+v", w.Camera)
	}

	if _, err := e.Start(w, "again"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition starting a running game, got %v", err)
	}
}

func TestRestartAndMenu(t *testing.T) {
	e := newTestEngine(t, quietConfig(), nil)
	w := playingWorld(e, 10)

	if _, err := e.Restart(w, "x"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition restarting a running game, got %v", err)
	}
	if _, err := e.Menu(w); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition leaving a running game, got %v", err)
	}

	w.Phase = PhaseGameOver
	w.HighScore = 77

	again, err := e.Restart(w, "Neo")
	if err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if again.Phase != PhasePlaying || again.Player.Name != "Neo" || again.HighScore != 77 {
		t.Errorf("unexpected restarted world: phase %s, name %q, high %d", again.Phase, again.Player.Name, again.HighScore)
	}
	if again.Tick != 0 || again.Elapsed != 0 {
		t.Error("restart kept the old clock")
	}

	menu, err := e.Menu(w)
	if err != nil {
		t.Fatalf("Menu: %v", err)
	}
	if menu.Phase != PhaseStart || menu.Player != nil || menu.HighScore != 77 {
		t.Errorf("unexpected menu world: %s", menu.Phase)
	}
}

func TestSplitAction(t *testing.T) {
	e := newTestEngine(t, quietConfig(), nil)
	w := playingWorld(e, 100)
	w.PointerX += 500
	w.Elapsed = 1000

	next := e.Split(w)

	if len(w.Player.Cells) != 1 {
		t.Fatal("split modified the input world")
	}
	if len(next.Player.Cells) != 2 || next.Events.Splits != 1 {
		t.Fatalf("expected 2 cells and 1 split, got %d / %d", len(next.Player.Cells), next.Events.Splits)
	}
	a, b := next.Player.Cells[0], next.Player.Cells[1]
	if a.Mass+b.Mass != 100 {
		t.Errorf("split lost mass: %f + %f", a.Mass, b.Mass)
	}
	if systems.CanMerge(a, b, next.Elapsed) {
		t.Error("freshly split cells must not merge")
	}
	if b.VX <= 0 {
		t.Errorf("expected new piece launched toward the pointer, vx=%f", b.VX)
	}
}

func TestSplitActionRespectsCellCap(t *testing.T) {
	e := newTestEngine(t, quietConfig(), nil)
	w := playingWorld(e, 90)
	c := e.Config().World.Size / 2
	cells := make([]components.Cell, 9)
	for i := range cells {
		cells[i] = components.NewCell(w.IDs.Next(), c-800+float64(i)*200, c, 90, w.Player.Color)
	}
	w.Player.Cells = cells
	w.PointerX += 1000

	next := e.Split(w)

	limit := e.Config().Cell.MaxCells
	if n := len(next.Player.Cells); n > limit {
		t.Fatalf("split produced %d cells, cap is %d", n, limit)
	}
	if next.Events.Splits != limit-9 {
		t.Errorf("expected %d splits, got %d", limit-9, next.Events.Splits)
	}
	if got := next.Player.TotalMass(); math.Abs(got-810) > 1e-9 {
		t.Errorf("split changed total mass: %f", got)
	}

	after := e.Tick(next, 0)
	if got := after.Player.TotalMass(); math.Abs(got-810) > 1e-9 {
		t.Errorf("tick after split lost mass: %f", got)
	}
}

func TestEjectAction(t *testing.T) {
	cfg := quietConfig()
	e := newTestEngine(t, cfg, nil)
	w := playingWorld(e, 100)
	w.PointerY -= 200

	next := e.Eject(w)

	if next.Events.Ejects != 1 || len(next.Ejected) != 1 {
		t.Fatalf("expected one projectile, got %d", len(next.Ejected))
	}
	if got := next.Player.Cells[0].Mass; got != 100-cfg.Ejected.MassLoss {
		t.Errorf("expected cell mass %f, got %f", 100-cfg.Ejected.MassLoss, got)
	}
	if p := next.Ejected[0]; p.Mass != cfg.Ejected.MassValue || p.VY >= 0 {
		t.Errorf("unexpected projectile %+v", p)
	}
	if len(w.Ejected) != 0 {
		t.Error("eject modified the input world")
	}
}

func TestActionsIgnoredOutsidePlaying(t *testing.T) {
	e := newTestEngine(t, quietConfig(), nil)

	w := playingWorld(e, 100)
	w.Phase = PhaseGameOver
	if got := e.Split(w); len(got.Player.Cells) != 1 {
		t.Error("split ran after game over")
	}
	if got := e.Eject(w); len(got.Ejected) != 0 {
		t.Error("eject ran after game over")
	}
	if got := e.SetPointer(w, 1, 1); got.PointerX == 1 {
		t.Error("pointer moved after game over")
	}

	dead := playingWorld(e, 100)
	dead.Player.Cells = nil
	if got := e.Split(dead); got.Events.Splits != 0 {
		t.Error("split ran for a dead player")
	}
	if got := e.Eject(dead); len(got.Ejected) != 0 {
		t.Error("eject ran for a dead player")
	}
}

func TestAutopilotSetsPointer(t *testing.T) {
	e := newTestEngine(t, quietConfig(), nil)
	w := playingWorld(e, 10)
	c := e.Config().World.Size / 2
	w.Food = append(w.Food, foodAt(&w, c+40, c))

	next := e.Autopilot(w)

	if next.PointerX != c+40 || next.PointerY != c {
		t.Errorf("expected pointer on the nearest food, got (%f, %f)", next.PointerX, next.PointerY)
	}
}
