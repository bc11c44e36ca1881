package components

// Body is the drawn size of a sprite.
type Body struct {
	Radius float32
	Mass   float32
}

// Tint is how a sprite is filled and outlined.
type Tint struct {
	Fill    Color
	Outline Color
}

// CellOutline is the darker ring drawn around player cells.
func CellOutline(c Color) Color {
	return c.Darken(0.8)
}
