package systems

import (
	"math"

	"github.com/pthm-cable/arena/components"
)

// clampFloat clamps v between minVal and maxVal.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// distance returns the Euclidean distance between two points.
func distance(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx + dy*dy)
}

// TotalMass returns the summed mass of cells.
func TotalMass(cells []components.Cell) float64 {
	var m float64
	for i := range cells {
		m += cells[i].Mass
	}
	return m
}

// CenterOfMass returns the mass-weighted centroid of cells.
// An empty slice (or one with no mass) yields the origin.
func CenterOfMass(cells []components.Cell) (x, y float64) {
	var total, wx, wy float64
	for i := range cells {
		c := &cells[i]
		total += c.Mass
		wx += c.X * c.Mass
		wy += c.Y * c.Mass
	}
	if total <= 0 {
		return 0, 0
	}
	return wx / total, wy / total
}
