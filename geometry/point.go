package geometry

import (
	"fmt"
	"math/rand/v2"
)

// Point is a polygon vertex in canvas pixel coordinates
type Point struct {
	X, Y int
}

// RandomPoint returns a point uniformly inside [0,maxX) x [0,maxY)
func RandomPoint(rng *rand.Rand, maxX, maxY int) Point {
	return Point{X: rng.IntN(maxX), Y: rng.IntN(maxY)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is an axis-aligned bounding box, Max inclusive
type Rect struct {
	Min, Max Point
}

// Width returns the horizontal extent (Max.X - Min.X)
func (r Rect) Width() int {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent (Max.Y - Min.Y)
func (r Rect) Height() int {
	return r.Max.Y - r.Min.Y
}

// Axis selects one coordinate of a point
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)
