// Package renderer draws the arena with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arena/camera"
	"github.com/pthm-cable/arena/components"
)

// BackgroundRenderer draws the backdrop grid and the world border.
type BackgroundRenderer struct {
	gridSize  float32
	worldSize float32
	gridColor rl.Color
	border    rl.Color
}

// NewBackgroundRenderer creates a background renderer for a square world.
func NewBackgroundRenderer(gridSize, worldSize float32) *BackgroundRenderer {
	return &BackgroundRenderer{
		gridSize:  gridSize,
		worldSize: worldSize,
		gridColor: toRL(components.GridColor),
		border:    toRL(components.BorderColor),
	}
}

// Clear fills the screen with the background color.
func (b *BackgroundRenderer) Clear() {
	rl.ClearBackground(toRL(components.BackgroundColor))
}

// DrawGrid draws grid lines aligned to world coordinates across the screen.
func (b *BackgroundRenderer) DrawGrid(cam *camera.Camera) {
	step := b.gridSize * cam.Zoom
	if step < 4 {
		return
	}
	w, h := cam.ViewportW, cam.ViewportH
	offX := mod(-cam.X*cam.Zoom+w/2, step)
	offY := mod(-cam.Y*cam.Zoom+h/2, step)

	for x := offX; x < w; x += step {
		rl.DrawLineV(rl.Vector2{X: x, Y: 0}, rl.Vector2{X: x, Y: h}, b.gridColor)
	}
	for y := offY; y < h; y += step {
		rl.DrawLineV(rl.Vector2{X: 0, Y: y}, rl.Vector2{X: w, Y: y}, b.gridColor)
	}
}

// DrawBorder outlines the world bounds.
func (b *BackgroundRenderer) DrawBorder(cam *camera.Camera) {
	left, top := cam.WorldToScreen(0, 0)
	right, bottom := cam.WorldToScreen(b.worldSize, b.worldSize)
	rect := rl.Rectangle{X: left, Y: top, Width: right - left, Height: bottom - top}
	rl.DrawRectangleLinesEx(rect, 5, b.border)
}

func mod(a, m float32) float32 {
	r := a - m*float32(int(a/m))
	if r < 0 {
		r += m
	}
	return r
}

func toRL(c components.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}
