package systems

import "math"

type gridPoint struct {
	x, y float64
}

// SpatialGrid provides fast neighbour lookups over a bounded world using a
// uniform cell grid. Items are identified by their insertion index, which is
// normally their index in the slice they were built from.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	width    float64
	height   float64
	cells    [][]int // flat grid of item indices
	points   []gridPoint
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		width:    width,
		height:   height,
		cells:    cells,
	}
}

// Clear removes all items from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.points = g.points[:0]
}

// Len returns the number of items inserted since the last Clear.
func (g *SpatialGrid) Len() int {
	return len(g.points)
}

// Insert adds the next item at the given position and returns its index.
func (g *SpatialGrid) Insert(x, y float64) int {
	idx := len(g.points)
	g.points = append(g.points, gridPoint{x, y})
	c := g.cellIndex(x, y)
	g.cells[c] = append(g.cells[c], idx)
	return idx
}

// Nearest returns the item closest to (x, y) that lies strictly within maxDist.
// Ties are broken by the lower insertion index, so the result matches a linear
// scan in insertion order that keeps the first strictly closer item.
func (g *SpatialGrid) Nearest(x, y, maxDist float64) (idx int, dist float64, ok bool) {
	idx = -1
	dist = maxDist
	c0, r0, c1, r1 := g.cellRange(x, y, maxDist)

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			for _, i := range g.cells[row*g.cols+col] {
				p := g.points[i]
				d := distance(p.x, p.y, x, y)
				if d < dist || (d == dist && idx >= 0 && i < idx) {
					idx, dist = i, d
				}
			}
		}
	}
	if idx < 0 {
		return -1, maxDist, false
	}
	return idx, dist, true
}

// cellRange returns the inclusive column and row span covering a circle.
func (g *SpatialGrid) cellRange(x, y, radius float64) (c0, r0, c1, r1 int) {
	c0 = g.clampCol(int(math.Floor((x - radius) / g.cellSize)))
	c1 = g.clampCol(int(math.Floor((x + radius) / g.cellSize)))
	r0 = g.clampRow(int(math.Floor((y - radius) / g.cellSize)))
	r1 = g.clampRow(int(math.Floor((y + radius) / g.cellSize)))
	return
}

// cellIndex returns the flat index for a world position.
// Positions outside the world are clamped into the border cells.
func (g *SpatialGrid) cellIndex(x, y float64) int {
	col := g.clampCol(int(math.Floor(x / g.cellSize)))
	row := g.clampRow(int(math.Floor(y / g.cellSize)))
	return row*g.cols + col
}

func (g *SpatialGrid) clampCol(c int) int {
	if c < 0 {
		return 0
	}
	if c >= g.cols {
		return g.cols - 1
	}
	return c
}

func (g *SpatialGrid) clampRow(r int) int {
	if r < 0 {
		return 0
	}
	if r >= g.rows {
		return g.rows - 1
	}
	return r
}
