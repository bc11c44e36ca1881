package components

import (
	"fmt"
	"math/rand"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Darken scales each channel by f in [0,1].
func (c Color) Darken(f float64) Color {
	return Color{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
	}
}

// Lighten adds amt to each channel, saturating at 255.
func (c Color) Lighten(amt uint8) Color {
	add := func(v uint8) uint8 {
		if int(v)+int(amt) > 255 {
			return 255
		}
		return v + amt
	}
	return Color{R: add(c.R), G: add(c.G), B: add(c.B)}
}

// PlayerColors is the palette for players and their ejected mass.
var PlayerColors = []Color{
	{0xff, 0x6b, 0x6b},
	{0x4e, 0xcd, 0xc4},
	{0x45, 0xb7, 0xd1},
	{0x96, 0xce, 0xb4},
	{0xff, 0xea, 0xa7},
	{0xdd, 0xa0, 0xdd},
	{0x98, 0xd8, 0xc8},
	{0xf7, 0xdc, 0x6f},
	{0xbb, 0x8f, 0xce},
	{0x85, 0xc1, 0xe9},
	{0xf8, 0xb5, 0x00},
	{0x00, 0xce, 0xd1},
	{0xff, 0x69, 0xb4},
	{0x7f, 0xff, 0x00},
	{0xff, 0x45, 0x00},
	{0x1e, 0x90, 0xff},
	{0xff, 0xd7, 0x00},
	{0xff, 0x14, 0x93},
	{0x00, 0xfa, 0x9a},
	{0xff, 0x63, 0x47},
}

// FoodColors is the palette for food pellets.
var FoodColors = []Color{
	{0xff, 0x6b, 0x6b},
	{0x4e, 0xcd, 0xc4},
	{0x45, 0xb7, 0xd1},
	{0x96, 0xce, 0xb4},
	{0xff, 0xea, 0xa7},
	{0xdd, 0xa0, 0xdd},
	{0x98, 0xd8, 0xc8},
	{0xf7, 0xdc, 0x6f},
}

// Fixed colors.
var (
	BackgroundColor  = Color{0x11, 0x11, 0x11}
	GridColor        = Color{0x1a, 0x1a, 0x1a}
	VirusColor       = Color{0x33, 0xff, 0x33}
	VirusStrokeColor = Color{0x00, 0xaa, 0x00}
	BorderColor      = Color{0xff, 0x00, 0x00}
)

// RandomColor picks a palette entry.
func RandomColor(rng *rand.Rand, palette []Color) Color {
	return palette[rng.Intn(len(palette))]
}
