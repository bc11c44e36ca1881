package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/config"
	"github.com/pthm-cable/arena/game"
)

// mockSurface records what the renderer draws.
type mockSurface struct {
	width, height int
	runes         [][]rune
	styles        [][]tcell.Style
}

func newMockSurface(w, h int) *mockSurface {
	m := &mockSurface{width: w, height: h}
	m.runes = make([][]rune, h)
	m.styles = make([][]tcell.Style, h)
	for y := range m.runes {
		m.runes[y] = make([]rune, w)
		m.styles[y] = make([]tcell.Style, w)
	}
	return m
}

func (m *mockSurface) Size() (int, int) { return m.width, m.height }

func (m *mockSurface) SetContent(x, y int, r rune, _ []rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		panic("draw outside the surface")
	}
	m.runes[y][x] = r
	m.styles[y][x] = style
}

func (m *mockSurface) text() string {
	var b strings.Builder
	for _, row := range m.runes {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func TestViewRoundTrip(t *testing.T) {
	v := NewView(80, 24, components.Camera{X: 1000, Y: 1000, Zoom: 1})

	col, row := v.ToCell(1000, 1000)
	if col != 40 || row != 12 {
		t.Fatalf("expected camera center at (40, 12), got (%d, %d)", col, row)
	}
	x, y := v.ToWorld(40, 12)
	if c, r := v.ToCell(x, y); c != 40 || r != 12 {
		t.Errorf("expected cell center to map back to (40, 12), got (%d, %d)", c, r)
	}

	zoomed := NewView(80, 24, components.Camera{X: 1000, Y: 1000, Zoom: 2})
	if zoomed.UnitsPerCol != v.UnitsPerCol/2 {
		t.Errorf("expected zoom 2 to halve units per column, got %f", zoomed.UnitsPerCol)
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name  string
		ev    tcell.Event
		phase game.Phase
		want  Command
	}{
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), game.PhasePlaying, Command{Kind: CmdQuit}},
		{"enter starts", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), game.PhaseStart, Command{Kind: CmdStart}},
		{"enter restarts", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), game.PhaseGameOver, Command{Kind: CmdStart}},
		{"enter ignored while playing", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), game.PhasePlaying, Command{}},
		{"space splits", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), game.PhasePlaying, Command{Kind: CmdSplit}},
		{"w ejects", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), game.PhasePlaying, Command{Kind: CmdEject}},
		{"w types a name", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), game.PhaseStart, Command{Kind: CmdType, Rune: 'w'}},
		{"m mutes", tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), game.PhasePlaying, Command{Kind: CmdMute}},
		{"backspace erases", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), game.PhaseStart, Command{Kind: CmdErase}},
		{"backspace opens menu", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), game.PhaseGameOver, Command{Kind: CmdMenu}},
		{"arrow steers", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), game.PhasePlaying, Command{Kind: CmdSteer, DX: -1}},
		{"arrow ignored on menu", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), game.PhaseStart, Command{}},
		{"mouse points", tcell.NewEventMouse(12, 5, tcell.ButtonNone, tcell.ModNone), game.PhasePlaying, Command{Kind: CmdPointer, Col: 12, Row: 5}},
		{"resize", tcell.NewEventResize(100, 40), game.PhaseStart, Command{Kind: CmdResize}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Translate(tt.ev, tt.phase); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestNameBuffer(t *testing.T) {
	b := NewNameBuffer("abcd", 3)
	if b.String() != "abc" {
		t.Errorf("expected the name capped at 3 runes, got %q", b.String())
	}
	b.Erase()
	b.Type('\t')
	if b.String() != "ab" {
		t.Errorf("expected %q, got %q", "ab", b.String())
	}
	b.Erase()
	b.Erase()
	b.Erase()
	if b.String() != "" {
		t.Errorf("expected an empty buffer, got %q", b.String())
	}
}

func newTestEngine(t *testing.T) *game.Engine {
	t.Helper()
	cfg := config.Default()
	cfg.Agents.Count = 0
	return game.NewEngine(cfg, game.Options{
		Seed:   3,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestDrawPlaying(t *testing.T) {
	e := newTestEngine(t)
	w, err := e.Start(e.NewWorld(), "Neo")
	if err != nil {
		t.Fatal(err)
	}

	s := newMockSurface(80, 24)
	r := NewRenderer(e.Config().World.Size)
	r.SetMuted(true)
	r.Draw(s, &w, "", false)

	out := s.text()
	for _, want := range []string{"Score 10", "MUTED", "TOP 5", "Neo", "Space Split"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q on screen", want)
		}
	}

	if s.runes[12][40] != '█' {
		t.Fatalf("expected the player cell at the center, got %q", s.runes[12][40])
	}
	fg, _, _ := s.styles[12][40].Decompose()
	if fg != rgb(w.Player.Color) {
		t.Errorf("expected the player's color at the center")
	}
}

func TestDrawScreens(t *testing.T) {
	e := newTestEngine(t)
	r := NewRenderer(e.Config().World.Size)

	start := e.NewWorld()
	s := newMockSurface(80, 24)
	r.Draw(s, &start, "Neo", false)
	if out := s.text(); !strings.Contains(out, "CELL ARENA") || !strings.Contains(out, "Name: Neo_") {
		t.Errorf("start screen missing title or name:\n%s", out)
	}

	over, err := e.Start(start, "Neo")
	if err != nil {
		t.Fatal(err)
	}
	over.Phase = game.PhaseGameOver
	s = newMockSurface(80, 24)
	r.Draw(s, &over, "Neo", true)
	if out := s.text(); !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "New high score!") {
		t.Errorf("game-over screen missing text:\n%s", out)
	}
}

func TestDrawOutsideWorld(t *testing.T) {
	e := newTestEngine(t)
	w := e.NewWorld()
	w.Camera = components.Camera{X: 0, Y: 0, Zoom: 1}

	s := newMockSurface(40, 20)
	NewRenderer(e.Config().World.Size).Draw(s, &w, "", false)

	if s.runes[0][0] != '░' {
		t.Errorf("expected the area left of the world shaded, got %q", s.runes[0][0])
	}
	if s.runes[19][39] == '░' {
		t.Error("expected the area inside the world unshaded")
	}
}
