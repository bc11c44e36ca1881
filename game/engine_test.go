package game

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/pthm-cable/arena/camera"
	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/config"
)

// quietConfig returns defaults without random food, viruses or agents,
// so scenarios only contain what a test places.
func quietConfig() *config.Config {
	cfg := config.Default()
	cfg.Food.Count = 0
	cfg.Virus.Count = 0
	cfg.Agents.Count = 0
	return cfg
}

func newTestEngine(t testing.TB, cfg *config.Config, store ScoreStore) *Engine {
	t.Helper()
	return NewEngine(cfg, Options{
		Seed:   1,
		Store:  store,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// playingWorld returns a playing world with one human cell of mass at the
// world center and the pointer resting on it.
func playingWorld(e *Engine, mass float64) World {
	var ids components.Sequence
	c := e.Config().World.Size / 2
	human := components.NewPlayer(&ids, "Tester", c, c, mass, components.PlayerColors[0], false)
	return World{
		Phase:    PhasePlaying,
		Player:   &human,
		Camera:   camera.Centered(c, c),
		PointerX: c,
		PointerY: c,
		Score:    human.Score,
		IDs:      ids,
	}
}

func addAgent(w *World, name string, x, y, mass float64) *components.Player {
	a := components.NewPlayer(&w.IDs, name, x, y, mass, components.PlayerColors[1], true)
	w.Agents = append(w.Agents, a)
	return &w.Agents[len(w.Agents)-1]
}

func TestTickBasicFeeding(t *testing.T) {
	e := newTestEngine(t, quietConfig(), nil)
	w := playingWorld(e, e.Config().Cell.StartingMass)

	c := e.Config().World.Size / 2
	foodID := w.IDs.Next()
	w.Food = []components.Food{{ID: foodID, X: c, Y: c, Mass: e.Config().Food.Mass, Radius: 5}}

	next := e.Tick(w, e.Config().Physics.FrameMillis)

	want := e.Config().Cell.StartingMass + e.Config().Food.Mass
	if got := next.Player.Cells[0].Mass; math.Abs(got-want) > 1e-9 {
		t.Errorf("expected mass %f, got %f", want, got)
	}
	for _, f := range next.Food {
		if f.ID == foodID {
			t.Error("eaten food still present")
		}
	}
	if next.Events.FoodEaten != 1 {
		t.Errorf("expected 1 food eaten, got %d", next.Events.FoodEaten)
	}
	if next.Score != 11 || next.Events.ScoreDelta != 1 {
		t.Errorf("expected score 11 (+1), got %d (%+d)", next.Score, next.Events.ScoreDelta)
	}
}

func TestTickDoesNotMutateInput(t *testing.T) {
	e := newTestEngine(t, quietConfig(), nil)
	w := playingWorld(e, 50)
	w.PointerX += 300
	w.Food = []components.Food{foodAt(&w, w.PointerX, w.PointerY)}
	addAgent(&w, "Blob", 500, 500, 20)

	cellBefore := w.Player.Cells[0]
	agentBefore := w.Agents[0].Cells[0]

	next := e.Tick(w, 16)

	if w.Player.Cells[0] != cellBefore {
		t.Error("human cell of input world was modified")
	}
	if w.Agents[0].Cells[0] != agentBefore {
		t.Error("agent cell of input world was modified")
	}
	if len(w.Food) != 1 || w.Tick != 0 || w.Elapsed != 0 {
		t.Error("input world was modified")
	}
	if next.Player.Cells[0].X <= cellBefore.X {
		t.Error("expected the new world's cell to move toward the pointer")
	}
	if next.Tick != 1 || next.Elapsed != 16 {
		t.Errorf("expected tick 1 at 16ms, got %d at %f", next.Tick, next.Elapsed)
	}
}

func TestTickZeroDT(t *testing.T) {
	e := newTestEngine(t, quietConfig(), nil)
	w := playingWorld(e, 500)
	w.PointerX += 1000
	before := w.Player.Cells[0]

	next := e.Tick(w, 0)

	got := next.Player.Cells[0]
	if got.X != before.X || got.Y != before.Y || got.Mass != before.Mass {
		t.Errorf("dt=0 changed the cell: %+v -> %+v", before, got)
	}
	if next.Elapsed != 0 {
		t.Errorf("expected no elapsed time, got %f", next.Elapsed)
	}

	// negative dt is clamped to zero
	next = e.Tick(w, -100)
	if next.Player.Cells[0].X != before.X {
		t.Error("negative dt moved the cell")
	}
}

func TestTickClampsLargeDT(t *testing.T) {
	e := newTestEngine(t, quietConfig(), nil)
	w := playingWorld(e, 10)

	next := e.Tick(w, 10_000)
	if next.Elapsed != e.Config().Physics.MaxDTMillis {
		t.Errorf("expected dt clamped to %f, got %f", e.Config().Physics.MaxDTMillis, next.Elapsed)
	}
}

func TestTickOutsidePlaying(t *testing.T) {
	e := newTestEngine(t, quietConfig(), nil)

	start := e.NewWorld()
	if got := e.Tick(start, 16); got.Tick != 0 || got.Phase != PhaseStart {
		t.Error("tick advanced a start-screen world")
	}

	over := playingWorld(e, 10)
	over.Phase = PhaseGameOver
	if got := e.Tick(over, 16); got.Tick != 0 || got.Phase != PhaseGameOver {
		t.Error("tick advanced a finished world")
	}
}

func TestTickTerminalTransition(t *testing.T) {
	tests := []struct {
		name          string
		highScore     int
		wantHighScore int
		wantNewHigh   bool
	}{
		{"beats high score", 5, 10, true},
		{"below high score", 50, 50, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := NewMemoryStore(tc.highScore)
			e := newTestEngine(t, quietConfig(), store)
			w := playingWorld(e, 10)
			w.HighScore = tc.highScore

			c := e.Config().World.Size / 2
			addAgent(&w, "Chomper", c, c, 100)

			next := e.Tick(w, e.Config().Physics.FrameMillis)

			if next.Phase != PhaseGameOver {
				t.Fatalf("expected gameover, got %s", next.Phase)
			}
			if !next.Events.Died || next.Events.CellsLost != 1 {
				t.Errorf("expected death event, got %+v", next.Events)
			}
			if next.Score != 10 {
				t.Errorf("expected final score 10, got %d", next.Score)
			}
			if next.HighScore < tc.highScore || next.HighScore != tc.wantHighScore {
				t.Errorf("expected high score %d, got %d", tc.wantHighScore, next.HighScore)
			}
			if next.Events.NewHighScore != tc.wantNewHigh {
				t.Errorf("expected NewHighScore=%v", tc.wantNewHigh)
			}
			if store.HighScore() != tc.wantHighScore {
				t.Errorf("expected stored high score %d, got %d", tc.wantHighScore, store.HighScore())
			}
			if got := next.Agents[0].Cells[0].Mass; got != 110 {
				t.Errorf("expected agent mass 110, got %f", got)
			}
		})
	}
}

func TestTickVirusFragmentationAndCap(t *testing.T) {
	e := newTestEngine(t, quietConfig(), nil)
	w := playingWorld(e, 200)
	c := e.Config().World.Size / 2

	// 16 unmergeable cells stacked on a virus
	cells := make([]components.Cell, 16)
	for i := range cells {
		cells[i] = components.NewCell(w.IDs.Next(), c, c, 200, w.Player.Color)
		cells[i].MergeAt = math.MaxFloat64
	}
	w.Player.Cells = cells
	w.Viruses = []components.Virus{e.Cells().NewVirus(w.IDs.Next(), c, c)}

	next := e.Tick(w, e.Config().Physics.FrameMillis)

	if next.Events.VirusHits != 16 {
		t.Errorf("expected 16 virus hits, got %d", next.Events.VirusHits)
	}
	if got := len(next.Player.Cells); got != e.Config().Cell.MaxCells {
		t.Errorf("expected cell count capped at %d, got %d", e.Config().Cell.MaxCells, got)
	}
}

func TestTickVirusFragmentationConservesMass(t *testing.T) {
	e := newTestEngine(t, quietConfig(), nil)
	w := playingWorld(e, 400)
	c := e.Config().World.Size / 2
	w.Viruses = []components.Virus{e.Cells().NewVirus(w.IDs.Next(), c, c)}

	// decay of one frame happens before contact
	mass := e.Cells().Advance(w.Player.Cells[0], c, c, e.Config().Physics.FrameMillis).Mass

	next := e.Tick(w, e.Config().Physics.FrameMillis)

	n := len(next.Player.Cells)
	if n < 2 || n > 16 {
		t.Fatalf("expected 2..16 pieces, got %d", n)
	}
	if got := next.Player.TotalMass(); math.Abs(got-mass) > 1e-6 {
		t.Errorf("expected total mass %f, got %f", mass, got)
	}
}

func TestTickLeaderboard(t *testing.T) {
	e := newTestEngine(t, quietConfig(), nil)
	w := playingWorld(e, 50.5)

	// far apart so nobody interacts
	addAgent(&w, "Hunter", 500, 500, 80)
	addAgent(&w, "Nibbler", 4500, 500, 20)
	addAgent(&w, "Beast", 500, 4500, 65)

	next := e.Tick(w, e.Config().Physics.FrameMillis)

	board := next.Leaderboard
	wantScores := []int{80, 65, 50, 20}
	if len(board) != len(wantScores) {
		t.Fatalf("expected %d entries, got %d", len(wantScores), len(board))
	}
	for i, want := range wantScores {
		if board[i].Score != want {
			t.Errorf("entry %d: expected score %d, got %d", i, want, board[i].Score)
		}
		if board[i].IsPlayer != (want == 50) {
			t.Errorf("entry %d: wrong IsPlayer flag", i)
		}
	}
	if Rank(board) != 3 {
		t.Errorf("expected human rank 3, got %d", Rank(board))
	}
	if next.Score != 50 {
		t.Errorf("expected floored score 50, got %d", next.Score)
	}
}

func TestTickCameraFollows(t *testing.T) {
	e := newTestEngine(t, quietConfig(), nil)
	w := playingWorld(e, 10000)
	w.Camera = components.Camera{X: 0, Y: 0, Zoom: 1, TargetZoom: 1}

	next := e.Tick(w, e.Config().Physics.FrameMillis)

	c := e.Config().World.Size / 2
	if math.Abs(next.Camera.X-c*e.Config().Camera.Follow) > 1 {
		t.Errorf("expected camera to move 10%% toward the center, got %f", next.Camera.X)
	}
	if math.Abs(next.Camera.TargetZoom-0.5) > 1e-3 {
		t.Errorf("expected target zoom 0.5 for mass 10000, got %f", next.Camera.TargetZoom)
	}
	if next.Camera.Zoom >= 1 || next.Camera.Zoom < next.Camera.TargetZoom {
		t.Errorf("expected zoom easing toward target, got %f", next.Camera.Zoom)
	}
}

func TestTickAgentRespawn(t *testing.T) {
	cfg := quietConfig()
	cfg.Agents.RespawnChance = 1
	e := newTestEngine(t, cfg, nil)
	w := playingWorld(e, 10)
	a := addAgent(&w, "Ghost", 500, 500, 10)
	a.Cells = nil

	next := e.Tick(w, 16)

	if next.Events.Respawns != 1 {
		t.Fatalf("expected 1 respawn, got %d", next.Events.Respawns)
	}
	ag := next.Agents[0]
	if len(ag.Cells) != 1 || ag.Cells[0].Mass != cfg.Cell.StartingMass {
		t.Errorf("expected one starting cell, got %+v", ag.Cells)
	}
	if ag.ID != w.Agents[0].ID || ag.Name != "Ghost" {
		t.Error("respawn changed the agent's identity")
	}
	m := cfg.World.SpawnMargin
	x := ag.Cells[0].X
	if x < m || x > cfg.World.Size-m {
		t.Errorf("respawn outside spawn margin: %f", x)
	}
}

func TestTickReplenishesFood(t *testing.T) {
	cfg := quietConfig()
	cfg.Food.Count = 50
	e := newTestEngine(t, cfg, nil)
	w := playingWorld(e, 10)

	next := e.Tick(w, 16)
	if len(next.Food) != 50 {
		t.Errorf("expected 50 food, got %d", len(next.Food))
	}
}

// TestTickInvariants runs a full default game and checks the cell cap,
// ID uniqueness and that nothing becomes NaN.
func TestTickInvariants(t *testing.T) {
	cfg := config.Default()
	e := newTestEngine(t, cfg, nil)
	w, err := e.Start(e.NewWorld(), "")
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 600 && w.Phase == PhasePlaying; i++ {
		w = e.Autopilot(w)
		w = e.Tick(w, cfg.Physics.FrameMillis)

		seen := make(map[uint32]bool)
		players := append([]components.Player{*w.Player}, w.Agents...)
		for _, p := range players {
			if len(p.Cells) > cfg.Cell.MaxCells {
				t.Fatalf("tick %d: %s has %d cells", w.Tick, p.Name, len(p.Cells))
			}
			for _, c := range p.Cells {
				if seen[c.ID] {
					t.Fatalf("tick %d: duplicate cell id %d", w.Tick, c.ID)
				}
				seen[c.ID] = true
				if math.IsNaN(c.X) || math.IsNaN(c.Y) || math.IsNaN(c.Mass) {
					t.Fatalf("tick %d: NaN cell %+v", w.Tick, c)
				}
			}
		}
		if math.IsNaN(w.Camera.X) || math.IsNaN(w.Camera.Zoom) {
			t.Fatalf("tick %d: NaN camera", w.Tick)
		}
	}
}

func TestTickHumanEatsFirst(t *testing.T) {
	cfg := quietConfig()
	cfg.Agents.RespawnChance = 0
	e := newTestEngine(t, cfg, nil)
	w := playingWorld(e, 100)

	c := cfg.World.Size / 2
	rival := addAgent(&w, "Rival", c, c, 100)
	rivalID := rival.ID
	addAgent(&w, "Snack", c, c, 10)

	next := e.Tick(w, 0)

	if got := next.Player.TotalMass(); got != 110 {
		t.Errorf("expected the human to take the contested prey (mass 110), got %f", got)
	}
	for _, a := range next.Agents {
		switch {
		case a.ID == rivalID && a.TotalMass() != 100:
			t.Errorf("expected the rival to stay at 100, got %f", a.TotalMass())
		case a.ID != rivalID && len(a.Cells) != 0:
			t.Errorf("expected the prey eaten, got %d cells", len(a.Cells))
		}
	}
	if next.Events.CellsEaten != 1 || next.Events.AgentKills != 0 {
		t.Errorf("expected 1 cell eaten by the human and no agent kills, got %d / %d",
			next.Events.CellsEaten, next.Events.AgentKills)
	}
}

func TestTickAgentMovesTowardSameTickTarget(t *testing.T) {
	cfg := quietConfig()
	cfg.Agents.WanderChance = 0
	e := newTestEngine(t, cfg, nil)
	w := playingWorld(e, 10)
	addAgent(&w, "Seeker", 1000, 1000, 10)
	w.Food = []components.Food{foodAt(&w, 1200, 1000)}

	next := e.Tick(w, cfg.Physics.FrameMillis)

	a := next.Agents[0]
	if a.TargetX != 1200 || a.TargetY != 1000 {
		t.Fatalf("expected target (1200, 1000), got (%f, %f)", a.TargetX, a.TargetY)
	}
	cell := a.Cells[0]
	if cell.X <= 1000 {
		t.Errorf("expected the agent to move toward the pellet this tick, x=%f", cell.X)
	}
	if math.Abs(cell.Y-1000) > 1e-9 {
		t.Errorf("expected no vertical drift, y=%f", cell.Y)
	}
}

func BenchmarkTick(b *testing.B) {
	cfg := config.Default()
	e := newTestEngine(b, cfg, nil)
	w, _ := e.Start(e.NewWorld(), "")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w = e.Tick(w, cfg.Physics.FrameMillis)
		if w.Phase != PhasePlaying {
			w, _ = e.Restart(w, "")
		}
	}
}

func foodAt(w *World, x, y float64) components.Food {
	return components.Food{ID: w.IDs.Next(), X: x, Y: y, Mass: 1, Radius: 5}
}
