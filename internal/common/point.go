package common

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point represents a position in the 2D room.
type Point struct {
	X float64
	Y float64
}

// NewPoint creates a point from its coordinates.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// RandomPoint returns a point with random coordinates in [0,width)x[0,height).
func RandomPoint(rng *rand.Rand, width, height float64) Point {
	return Point{X: rng.Float64() * width, Y: rng.Float64() * height}
}

func (p Point) vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func fromVec(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

// Add returns p translated by other.
func (p Point) Add(other Point) Point {
	return fromVec(r2.Add(p.vec(), other.vec()))
}

// Scale returns p multiplied by a scalar value.
func (p Point) Scale(f float64) Point {
	return fromVec(r2.Scale(f, p.vec()))
}

// Distance calculates the Euclidean distance between two points.
func (p Point) Distance(other Point) float64 {
	return r2.Norm(r2.Sub(p.vec(), other.vec()))
}

// Step returns the point reached by travelling distance units along the
// heading given in degrees. 0° points along +X, 90° along +Y.
func (p Point) Step(angleDeg, distance float64) Point {
	rad := Radians(angleDeg)
	return p.Add(Point{X: math.Cos(rad), Y: math.Sin(rad)}.Scale(distance))
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y)
}

// ClosestPointOnSquare clamps query into the axis-aligned square centered at
// center with the given half size.
func ClosestPointOnSquare(center Point, halfSize float64, query Point) Point {
	return Point{
		X: clamp(query.X, center.X-halfSize, center.X+halfSize),
		Y: clamp(query.Y, center.Y-halfSize, center.Y+halfSize),
	}
}

// InSquare reports whether p lies inside the closed square centered at center.
func InSquare(center Point, halfSize float64, p Point) bool {
	return p.X >= center.X-halfSize && p.X <= center.X+halfSize &&
		p.Y >= center.Y-halfSize && p.Y <= center.Y+halfSize
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
