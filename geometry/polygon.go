// Package geometry provides the polygon building blocks of a genome.
// Values are plain structs; edits happen in place on the owning polygon and
// every random draw goes through a caller-supplied *rand.Rand.
package geometry

import (
	"math/rand/v2"
	"slices"
	"strings"
)

// MinVertices is the vertex floor: a polygon never drops below a triangle
const MinVertices = 3

// Polygon is a filled, translucent path painted as one unit
type Polygon struct {
	Color  Color
	Points []Point
}

// RandomPolygon builds a polygon of the given vertex count with uniform
// color, alpha and vertex positions inside [0,maxX) x [0,maxY)
func RandomPolygon(rng *rand.Rand, vertices, maxX, maxY int) Polygon {
	p := Polygon{
		Color:  RandomColor(rng),
		Points: make([]Point, 0, vertices),
	}
	for range vertices {
		p.Points = append(p.Points, RandomPoint(rng, maxX, maxY))
	}
	return p
}

// Clone deep-copies color and points
func (p Polygon) Clone() Polygon {
	return Polygon{
		Color:  p.Color,
		Points: slices.Clone(p.Points),
	}
}

// Equal reports structural equality
func (p Polygon) Equal(other Polygon) bool {
	return p.Color == other.Color && slices.Equal(p.Points, other.Points)
}

// Bounds returns the axis-aligned bounding box of all vertices
func (p Polygon) Bounds() Rect {
	if len(p.Points) == 0 {
		return Rect{}
	}
	r := Rect{Min: p.Points[0], Max: p.Points[0]}
	for _, pt := range p.Points[1:] {
		r.Min.X = min(r.Min.X, pt.X)
		r.Min.Y = min(r.Min.Y, pt.Y)
		r.Max.X = max(r.Max.X, pt.X)
		r.Max.Y = max(r.Max.Y, pt.Y)
	}
	return r
}

// Move translates the whole polygon so the bounding box's min corner lands at
// a random position in [0,maxX-w) x [0,maxY-h); the shape is unchanged
func (p *Polygon) Move(rng *rand.Rand, maxX, maxY int) {
	if len(p.Points) == 0 {
		return
	}
	box := p.Bounds()

	spanX := maxX - box.Width()
	spanY := maxY - box.Height()
	// Vertices already in bounds guarantee span >= 1; stay put otherwise
	newX, newY := box.Min.X, box.Min.Y
	if spanX > 0 {
		newX = rng.IntN(spanX)
	}
	if spanY > 0 {
		newY = rng.IntN(spanY)
	}

	dx := newX - box.Min.X
	dy := newY - box.Min.Y
	for i := range p.Points {
		p.Points[i].X += dx
		p.Points[i].Y += dy
	}
}

// RemovePoint deletes one random vertex when more than MinVertices remain
func (p *Polygon) RemovePoint(rng *rand.Rand) bool {
	n := len(p.Points)
	if n <= MinVertices {
		return false
	}
	at := rng.IntN(n)
	p.Points = slices.Delete(p.Points, at, at+1)
	return true
}

// InsertPoint adds a random vertex at a random position while below maxVertices
func (p *Polygon) InsertPoint(rng *rand.Rand, maxX, maxY, maxVertices int) bool {
	n := len(p.Points)
	if n >= maxVertices {
		return false
	}
	at := rng.IntN(n + 1)
	p.Points = slices.Insert(p.Points, at, RandomPoint(rng, maxX, maxY))
	return true
}

// MutateVertex re-randomizes one coordinate of one random vertex
func (p *Polygon) MutateVertex(rng *rand.Rand, axis Axis, maxX, maxY int) {
	if len(p.Points) == 0 {
		return
	}
	pt := &p.Points[rng.IntN(len(p.Points))]
	switch axis {
	case AxisX:
		pt.X = rng.IntN(maxX)
	case AxisY:
		pt.Y = rng.IntN(maxY)
	}
}

// InBounds reports whether every vertex lies inside [0,maxX) x [0,maxY)
func (p Polygon) InBounds(maxX, maxY int) bool {
	for _, pt := range p.Points {
		if pt.X < 0 || pt.X >= maxX || pt.Y < 0 || pt.Y >= maxY {
			return false
		}
	}
	return true
}

func (p Polygon) String() string {
	var sb strings.Builder
	for i, pt := range p.Points {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(pt.String())
	}
	sb.WriteByte(' ')
	sb.WriteString(p.Color.String())
	return sb.String()
}
