package common

import "math"

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// WrapDegrees maps an angle into [0,360).
func WrapDegrees(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	// tiny negative inputs round up to exactly 360
	if a >= 360 || a == 0 {
		return 0
	}
	return a
}
