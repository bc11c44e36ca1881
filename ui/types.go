// Package ui draws the arena's heads-up display and menu screens.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arena/components"
)

// Action is a request raised by a screen.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionRestart
	ActionMenu
	ActionSplit
	ActionEject
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	HintBg         rl.Color
	Title          rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	Highlight      rl.Color
	Muted          rl.Color
	Padding        int32
	LineHeight     int32
	FontSize       int32
	HeaderFontSize int32
	ScoreFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 0, G: 0, B: 0, A: 153},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		HintBg:         rl.Color{R: 0, G: 0, B: 0, A: 102},
		Title:          rl.White,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.Color{R: 156, G: 163, B: 175, A: 255},
		Highlight:      rl.Color{R: 250, G: 204, B: 21, A: 255},
		Muted:          rl.Color{R: 107, G: 114, B: 128, A: 255},
		Padding:        10,
		LineHeight:     16,
		FontSize:       12,
		HeaderFontSize: 14,
		ScoreFontSize:  30,
	}
}

// ToRL converts a palette color to an opaque raylib color.
func ToRL(c components.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}
