// Package tui draws the arena in a terminal with tcell and maps terminal
// events onto session commands.
package tui

import (
	"fmt"
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/game"
)

// rowAspect is how many columns' worth of world one terminal row covers.
// Terminal cells are about twice as tall as they are wide.
const rowAspect = 2.0

// baseUnitsPerCol is the world width of one column at zoom 1.
const baseUnitsPerCol = 12.0

// Surface is the part of tcell.Screen the renderer draws on.
type Surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// View maps world coordinates onto terminal cells centered on the camera.
type View struct {
	Width, Height int
	CamX, CamY    float64
	UnitsPerCol   float64
}

// NewView creates a view of width x height cells for cam.
func NewView(width, height int, cam components.Camera) View {
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return View{
		Width:       width,
		Height:      height,
		CamX:        cam.X,
		CamY:        cam.Y,
		UnitsPerCol: baseUnitsPerCol / zoom,
	}
}

// ToCell converts world coordinates to the containing cell.
func (v View) ToCell(x, y float64) (col, row int) {
	col = int(math.Floor(float64(v.Width)/2 + (x-v.CamX)/v.UnitsPerCol))
	row = int(math.Floor(float64(v.Height)/2 + (y-v.CamY)/(v.UnitsPerCol*rowAspect)))
	return col, row
}

// ToWorld returns the world coordinates of the center of a cell.
func (v View) ToWorld(col, row int) (x, y float64) {
	x = v.CamX + (float64(col)+0.5-float64(v.Width)/2)*v.UnitsPerCol
	y = v.CamY + (float64(row)+0.5-float64(v.Height)/2)*v.UnitsPerCol*rowAspect
	return x, y
}

func (v View) inside(col, row int) bool {
	return col >= 0 && row >= 0 && col < v.Width && row < v.Height
}

// Renderer draws worlds onto a Surface.
type Renderer struct {
	worldSize float64
	muted     bool
}

// NewRenderer creates a renderer for a world of the given size.
func NewRenderer(worldSize float64) *Renderer {
	return &Renderer{worldSize: worldSize}
}

// SetMuted controls the MUTED flag in the status line.
func (r *Renderer) SetMuted(muted bool) { r.muted = muted }

var (
	styleBase    = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleOutside = styleBase.Foreground(tcell.NewRGBColor(0x33, 0x11, 0x11))
	styleDim     = styleBase.Foreground(tcell.ColorGray)
	styleTitle   = styleBase.Foreground(tcell.ColorWhite).Bold(true)
	styleHighlit = styleBase.Foreground(tcell.ColorYellow).Bold(true)
	styleAlert   = styleBase.Foreground(tcell.NewRGBColor(0xf8, 0x71, 0x71)).Bold(true)
)

func rgb(c components.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Draw renders w and the overlay for its phase. It returns the view used, so
// callers can map mouse positions back into the world.
func (r *Renderer) Draw(s Surface, w *game.World, name string, newRecord bool) View {
	width, height := s.Size()
	v := NewView(width, height, w.Camera)

	r.drawBackground(s, v)
	for i := range w.Food {
		f := &w.Food[i]
		r.plot(s, v, f.X, f.Y, '•', styleBase.Foreground(rgb(f.Color)))
	}
	for i := range w.Ejected {
		e := &w.Ejected[i]
		r.plot(s, v, e.X, e.Y, 'o', styleBase.Foreground(rgb(e.Color)))
	}
	for i := range w.Viruses {
		vr := &w.Viruses[i]
		r.disc(s, v, vr.X, vr.Y, vr.Radius, '*', styleBase.Foreground(rgb(components.VirusColor)))
	}
	r.drawCells(s, v, w)

	switch w.Phase {
	case game.PhaseStart:
		r.drawStart(s, v, name)
	case game.PhasePlaying:
		r.drawHUD(s, v, w)
	case game.PhaseGameOver:
		r.drawGameOver(s, v, w, newRecord)
	}
	return v
}

func (r *Renderer) drawBackground(s Surface, v View) {
	for row := 0; row < v.Height; row++ {
		for col := 0; col < v.Width; col++ {
			x, y := v.ToWorld(col, row)
			if x < 0 || y < 0 || x > r.worldSize || y > r.worldSize {
				s.SetContent(col, row, '░', nil, styleOutside)
			} else {
				s.SetContent(col, row, ' ', nil, styleBase)
			}
		}
	}
}

func (r *Renderer) plot(s Surface, v View, x, y float64, ch rune, style tcell.Style) {
	col, row := v.ToCell(x, y)
	if v.inside(col, row) {
		s.SetContent(col, row, ch, nil, style)
	}
}

// disc fills every cell whose center lies within radius of (x, y). Objects
// smaller than a cell still get one.
func (r *Renderer) disc(s Surface, v View, x, y, radius float64, ch rune, style tcell.Style) {
	c0, r0 := v.ToCell(x-radius, y-radius)
	c1, r1 := v.ToCell(x+radius, y+radius)
	filled := false
	rr := radius * radius
	for row := max(r0, 0); row <= min(r1, v.Height-1); row++ {
		for col := max(c0, 0); col <= min(c1, v.Width-1); col++ {
			wx, wy := v.ToWorld(col, row)
			if (wx-x)*(wx-x)+(wy-y)*(wy-y) <= rr {
				s.SetContent(col, row, ch, nil, style)
				filled = true
			}
		}
	}
	if !filled {
		r.plot(s, v, x, y, ch, style)
	}
}

type cellRef struct {
	cell  *components.Cell
	owner *components.Player
}

// drawCells paints player cells smallest first so bigger cells cover them.
func (r *Renderer) drawCells(s Surface, v View, w *game.World) {
	var refs []cellRef
	add := func(p *components.Player) {
		for i := range p.Cells {
			refs = append(refs, cellRef{cell: &p.Cells[i], owner: p})
		}
	}
	for i := range w.Agents {
		add(&w.Agents[i])
	}
	if w.Player != nil {
		add(w.Player)
	}
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].cell.Mass < refs[j].cell.Mass
	})

	for _, ref := range refs {
		c := ref.cell
		style := styleBase.Foreground(rgb(c.Color))
		r.disc(s, v, c.X, c.Y, c.Radius, '█', style)

		// Label cells at least a few columns across.
		if c.Radius/v.UnitsPerCol < 3 {
			continue
		}
		label := []rune(ref.owner.Name)
		col, row := v.ToCell(c.X, c.Y)
		r.text(s, v, col-len(label)/2, row, string(label), tcell.StyleDefault.Background(rgb(c.Color)).Foreground(tcell.ColorWhite).Bold(true))
	}
}

func (r *Renderer) text(s Surface, v View, col, row int, str string, style tcell.Style) {
	for _, ch := range str {
		if v.inside(col, row) {
			s.SetContent(col, row, ch, nil, style)
		}
		col++
	}
}

func (r *Renderer) centered(s Surface, v View, row int, str string, style tcell.Style) {
	r.text(s, v, (v.Width-len([]rune(str)))/2, row, str, style)
}

func (r *Renderer) drawHUD(s Surface, v View, w *game.World) {
	cells := 0
	if w.Player != nil {
		cells = len(w.Player.Cells)
	}
	status := fmt.Sprintf(" Score %d  Best %d  Cells %d ", w.Score, w.HighScore, cells)
	if r.muted {
		status += " MUTED "
	}
	r.text(s, v, 0, 0, status, styleTitle.Reverse(true))

	board := w.Leaderboard
	if len(board) > 5 {
		board = board[:5]
	}
	const boardWidth = 20
	col := v.Width - boardWidth
	r.text(s, v, col, 0, fmt.Sprintf("%-*s", boardWidth, " TOP 5"), styleDim.Reverse(true))
	for i, e := range board {
		name := []rune(e.Name)
		if len(name) > 10 {
			name = name[:10]
		}
		line := fmt.Sprintf(" %d. %-10s %5d", i+1, string(name), e.Score)
		style := styleBase
		if e.IsPlayer {
			style = styleHighlit
		}
		r.text(s, v, col, i+1, line, style)
	}

	r.centered(s, v, v.Height-1, "Mouse/Arrows Move / Space Split / W Eject / M Mute / Esc Quit", styleDim)
}

func (r *Renderer) drawStart(s Surface, v View, name string) {
	mid := v.Height / 2
	r.centered(s, v, mid-4, "CELL ARENA", styleTitle)
	r.centered(s, v, mid-2, "Eat to grow. Avoid the bigger ones.", styleDim)
	r.centered(s, v, mid, fmt.Sprintf("Name: %s_", name), styleHighlit)
	r.centered(s, v, mid+2, "Enter to play, Esc to quit", styleDim)
}

func (r *Renderer) drawGameOver(s Surface, v View, w *game.World, newRecord bool) {
	mid := v.Height / 2
	r.centered(s, v, mid-4, "GAME OVER", styleAlert)
	r.centered(s, v, mid-2, fmt.Sprintf("Final score: %d", w.Score), styleTitle)
	if newRecord {
		r.centered(s, v, mid-1, "New high score!", styleHighlit)
	} else {
		r.centered(s, v, mid-1, fmt.Sprintf("Best: %d", w.HighScore), styleDim)
	}
	r.centered(s, v, mid+1, "Enter: play again   Backspace: menu", styleDim)
}
