package components

// Position is where a sprite is drawn this tick, in world units.
type Position struct {
	X, Y float32
}

// Previous is the position at the last tick, kept for interpolating
// between simulation steps.
type Previous struct {
	X, Y float32
}

// Lerp returns the point a fraction alpha of the way from prev to pos.
func Lerp(prev Previous, pos Position, alpha float32) (x, y float32) {
	return prev.X + (pos.X-prev.X)*alpha, prev.Y + (pos.Y-prev.Y)*alpha
}
