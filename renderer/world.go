package renderer

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arena/camera"
	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/config"
	"github.com/pthm-cable/arena/game"
	"github.com/pthm-cable/arena/scene"
	"github.com/pthm-cable/arena/systems"
)

// virusSpikes is the number of points on a virus outline.
const virusSpikes = 16

// Options selects optional layers.
type Options struct {
	Grid    bool
	Names   bool
	Targets bool
}

// WorldRenderer draws World snapshots through a scene mirror, interpolating
// sprite and camera positions between the last two synced ticks.
type WorldRenderer struct {
	cam        *camera.Camera
	background *BackgroundRenderer
	particles  *ParticleRenderer
	scene      *scene.Scene

	prevCam, curCam components.Camera
	phase           game.Phase
	synced          bool

	virusPoints []rl.Vector2
}

// NewWorldRenderer creates a renderer for the configured screen and world.
func NewWorldRenderer(cfg *config.Config, seed int64) *WorldRenderer {
	return &WorldRenderer{
		cam:         camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, cfg.Derived.WorldSize32),
		background:  NewBackgroundRenderer(float32(cfg.World.GridSize), cfg.Derived.WorldSize32),
		particles:   NewParticleRenderer(seed),
		scene:       scene.New(),
		virusPoints: make([]rl.Vector2, 0, virusSpikes*2+2),
	}
}

// Camera returns the viewport used for the last Draw. Front-ends use it to
// convert the mouse position into world coordinates.
func (r *WorldRenderer) Camera() *camera.Camera { return r.cam }

// Resize updates the viewport after a window resize.
func (r *WorldRenderer) Resize(w, h int32) {
	r.cam.Resize(float32(w), float32(h))
}

// Sync mirrors w after a simulation step or a phase change.
func (r *WorldRenderer) Sync(w *game.World) {
	// Entity IDs restart with every world, so a phase change starts a fresh mirror.
	if !r.synced || w.Phase != r.phase {
		r.scene.Reset()
		r.curCam = w.Camera
	}
	r.synced = true
	r.phase = w.Phase
	r.prevCam = r.curCam
	r.curCam = w.Camera

	r.scene.Sync(w)
}

// Effects spawns particle bursts for ev, which happened in w.
func (r *WorldRenderer) Effects(w *game.World, ev game.Events) {
	if ev.Empty() || w.Player == nil {
		return
	}

	if ev.Died {
		r.particles.Burst(w.Camera.X, w.Camera.Y, 60, 400, 6, w.Player.Color)
		return
	}
	if len(w.Player.Cells) == 0 {
		return
	}
	cx, cy := systems.CenterOfMass(w.Player.Cells)
	if ev.VirusHits > 0 {
		r.particles.Burst(cx, cy, 30, 300, 5, components.VirusColor)
	}
	if ev.CellsEaten > 0 {
		r.particles.Burst(cx, cy, 20, 200, 4, w.Player.Color.Lighten(40))
	}
	if ev.Splits > 0 {
		r.particles.Burst(cx, cy, 10, 150, 3, w.Player.Color)
	}
}

// Draw renders the latest synced world. alpha in [0, 1] is how far the frame
// sits between the previous tick and the latest one; frameDt ages effects.
func (r *WorldRenderer) Draw(w *game.World, alpha, frameDt float32, opts Options) {
	r.particles.Update(frameDt)

	a := float64(alpha)
	r.cam.SetView(
		r.prevCam.X+(r.curCam.X-r.prevCam.X)*a,
		r.prevCam.Y+(r.curCam.Y-r.prevCam.Y)*a,
		r.prevCam.Zoom+(r.curCam.Zoom-r.prevCam.Zoom)*a,
	)

	r.background.Clear()
	if opts.Grid {
		r.background.DrawGrid(r.cam)
	}

	minX, minY, maxX, maxY := r.viewBounds()
	sprites := scene.Visible(r.scene.Sprites(alpha), minX, minY, maxX, maxY)
	for i := range sprites {
		sp := &sprites[i]
		switch sp.Kind {
		case components.KindFood:
			r.drawDot(sp)
		case components.KindEjected:
			r.drawEjected(sp)
		case components.KindVirus:
			r.drawVirus(sp)
		case components.KindCell:
			r.drawCell(sp, opts.Names)
		}
	}

	if opts.Targets {
		r.drawTargets(w)
	}
	r.particles.Draw(r.cam)
	r.background.DrawBorder(r.cam)
}

// viewBounds returns the visible world rectangle without clamping to the world.
func (r *WorldRenderer) viewBounds() (minX, minY, maxX, maxY float32) {
	minX, minY = r.cam.ScreenToWorld(0, 0)
	maxX, maxY = r.cam.ScreenToWorld(r.cam.ViewportW, r.cam.ViewportH)
	return
}

func (r *WorldRenderer) screen(sp *scene.Sprite) (rl.Vector2, float32) {
	x, y := r.cam.WorldToScreen(sp.X, sp.Y)
	return rl.Vector2{X: x, Y: y}, sp.Radius * r.cam.Zoom
}

func (r *WorldRenderer) drawDot(sp *scene.Sprite) {
	center, radius := r.screen(sp)
	rl.DrawCircleV(center, radius, toRL(sp.Fill))
}

func (r *WorldRenderer) drawEjected(sp *scene.Sprite) {
	center, radius := r.screen(sp)
	rl.DrawCircleV(center, radius, toRL(sp.Fill))
	rl.DrawCircleLines(int32(center.X), int32(center.Y), radius, rl.Color{R: 0x88, G: 0x88, B: 0x88, A: 255})
}

func (r *WorldRenderer) drawVirus(sp *scene.Sprite) {
	center, outer := r.screen(sp)
	inner := outer * 0.7

	// Triangle fan: center first, then the star outline counter-clockwise on screen.
	pts := r.virusPoints[:0]
	pts = append(pts, center)
	for i := 0; i <= virusSpikes*2; i++ {
		rad := outer
		if i%2 == 1 {
			rad = inner
		}
		angle := -float64(i) * math.Pi / virusSpikes
		pts = append(pts, rl.Vector2{
			X: center.X + float32(math.Cos(angle))*rad,
			Y: center.Y + float32(math.Sin(angle))*rad,
		})
	}
	r.virusPoints = pts

	rl.DrawTriangleFan(pts, toRL(sp.Fill))
	rl.DrawLineStrip(pts[1:], toRL(sp.Outline))
	rl.DrawCircleV(center, inner*0.5, rl.Color{R: 0x88, G: 0xff, B: 0x88, A: 255})
}

func (r *WorldRenderer) drawCell(sp *scene.Sprite, names bool) {
	center, radius := r.screen(sp)
	rl.DrawCircleV(center, radius, toRL(sp.Fill.Lighten(20)))
	rl.DrawCircleV(center, radius*0.8, toRL(sp.Fill))

	ring := float32(math.Max(2, float64(radius)*0.08))
	rl.DrawRing(center, radius-ring, radius, 0, 360, 48, toRL(sp.Outline))

	if !names || sp.Label == "" || radius <= 20 {
		return
	}
	size := int32(math.Max(12, math.Min(float64(radius)*0.4, 24)))
	drawOutlinedText(sp.Label, center.X, center.Y-float32(size)/2, size)
	if radius > 30 {
		massSize := int32(float32(size) * 0.6)
		drawOutlinedText(fmt.Sprintf("%d", int(sp.Mass)), center.X, center.Y+float32(size)*0.6, massSize)
	}
}

func (r *WorldRenderer) drawTargets(w *game.World) {
	for i := range w.Agents {
		a := &w.Agents[i]
		if len(a.Cells) == 0 {
			continue
		}
		cx, cy := systems.CenterOfMass(a.Cells)
		x1, y1 := r.cam.WorldToScreen(float32(cx), float32(cy))
		x2, y2 := r.cam.WorldToScreen(float32(a.TargetX), float32(a.TargetY))
		c := toRL(a.Color)
		c.A = 140
		rl.DrawLineV(rl.Vector2{X: x1, Y: y1}, rl.Vector2{X: x2, Y: y2}, c)
		rl.DrawCircleV(rl.Vector2{X: x2, Y: y2}, 3, c)
	}
}

// drawOutlinedText draws white text with a black outline, centered on x.
func drawOutlinedText(text string, x, y float32, size int32) {
	w := float32(rl.MeasureText(text, size))
	tx := int32(x - w/2)
	ty := int32(y)
	for _, d := range [][2]int32{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		rl.DrawText(text, tx+d[0], ty+d[1], size, rl.Black)
	}
	rl.DrawText(text, tx, ty, size, rl.White)
}
