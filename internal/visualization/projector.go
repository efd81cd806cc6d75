package visualization

import (
	"math"
	"robot-sim/internal/common"
)

// Projector maps room coordinates onto the screen area reserved for the room.
// The room keeps its aspect ratio and is centered inside the area.
type Projector struct {
	scale   float64
	offsetX float64
	offsetY float64
}

// Fit computes the transform that places a roomW x roomH room inside a
// screenW x screenH area with padding on every side.
func Fit(roomW, roomH float64, screenW, screenH int, padding float64) Projector {
	availW := float64(screenW) - 2*padding
	availH := float64(screenH) - 2*padding
	if availW <= 0 || availH <= 0 || roomW <= 0 || roomH <= 0 {
		return Projector{scale: 1}
	}
	scale := math.Min(availW/roomW, availH/roomH)
	return Projector{
		scale:   scale,
		offsetX: padding + (availW-roomW*scale)/2,
		offsetY: padding + (availH-roomH*scale)/2,
	}
}

func (p Projector) Scale() float64 {
	return p.scale
}

// ToScreen converts a room point to screen coordinates. Both use a top-down
// y axis.
func (p Projector) ToScreen(pt common.Point) (float32, float32) {
	return float32(pt.X*p.scale + p.offsetX), float32(pt.Y*p.scale + p.offsetY)
}

// ToWorld converts screen coordinates back to a room point.
func (p Projector) ToWorld(x, y int) common.Point {
	return common.NewPoint((float64(x)-p.offsetX)/p.scale, (float64(y)-p.offsetY)/p.scale)
}

// Length scales a room distance to pixels.
func (p Projector) Length(d float64) float32 {
	return float32(d * p.scale)
}
