package camera

import (
	"math"

	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/config"
)

// TargetZoom returns the zoom the camera eases toward for a player of totalMass.
// Heavier players see more of the world.
func TargetZoom(totalMass float64, cc config.CameraConfig) float64 {
	if totalMass <= 0 {
		return cc.MaxZoom
	}
	z := cc.ZoomMassScale / math.Sqrt(totalMass)
	return math.Max(cc.MinZoom, math.Min(cc.MaxZoom, z))
}

// Follow eases prev toward the center of mass (cx, cy) and the zoom implied by totalMass.
// Smoothing is applied once per call, regardless of frame time.
func Follow(prev components.Camera, cx, cy, totalMass float64, cc config.CameraConfig) components.Camera {
	tz := TargetZoom(totalMass, cc)
	return components.Camera{
		X:          prev.X + (cx-prev.X)*cc.Follow,
		Y:          prev.Y + (cy-prev.Y)*cc.Follow,
		Zoom:       prev.Zoom + (tz-prev.Zoom)*cc.ZoomFollow,
		TargetZoom: tz,
	}
}

// Centered returns a camera snapped onto (x, y) at 1:1 zoom.
func Centered(x, y float64) components.Camera {
	return components.Camera{X: x, Y: y, Zoom: 1, TargetZoom: 1}
}
