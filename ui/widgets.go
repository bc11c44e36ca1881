package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a translucent panel background.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rect := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(height)}
	rl.DrawRectangleRounded(rect, 0.15, 6, r.Theme.PanelBg)
}

// DrawLabelValue draws a label and a right-aligned value across width.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string, width int32, color rl.Color) int32 {
	rl.DrawText(label, x, y, r.Theme.FontSize, color)
	vw := rl.MeasureText(value, r.Theme.FontSize)
	rl.DrawText(value, x+width-vw, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawTextCentered draws text horizontally centered on cx.
func (r *Renderer) DrawTextCentered(text string, cx, y, size int32, color rl.Color) {
	w := rl.MeasureText(text, size)
	rl.DrawText(text, cx-w/2, y, size, color)
}

// Truncate shortens text to fit maxWidth pixels, adding an ellipsis.
func Truncate(text string, size, maxWidth int32) string {
	if rl.MeasureText(text, size) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		s := string(runes[:n]) + ".."
		if rl.MeasureText(s, size) <= maxWidth {
			return s
		}
	}
	return ""
}
