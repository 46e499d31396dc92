// Package genome defines the candidate solution: an ordered list of polygons
// whose order is paint order, plus a transient fitness score.
package genome

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/lixenwraith/polyevolve/geometry"
)

// Individual is one genome of the population
type Individual struct {
	// DNA is painted in order: later polygons occlude earlier ones
	DNA []geometry.Polygon
	// Fitness is only meaningful after the current generation's evaluation
	Fitness float64
}

// New draws numberOfPolygons random polygons of limits.VertexCount vertices
func New(rng *rand.Rand, numberOfPolygons int, limits Limits) *Individual {
	ind := &Individual{DNA: make([]geometry.Polygon, 0, numberOfPolygons)}
	for range numberOfPolygons {
		ind.DNA = append(ind.DNA, geometry.RandomPolygon(rng, limits.VertexCount, limits.Width, limits.Height))
	}
	return ind
}

// FromPolygons adopts a pre-built polygon sequence without copying
func FromPolygons(polys []geometry.Polygon) *Individual {
	return &Individual{DNA: polys}
}

// Clone deep-copies every polygon; fitness is carried over
func (ind *Individual) Clone() *Individual {
	return &Individual{
		DNA:     ClonePolygons(ind.DNA),
		Fitness: ind.Fitness,
	}
}

// ClonePolygons deep-copies a polygon sequence preserving order
func ClonePolygons(polys []geometry.Polygon) []geometry.Polygon {
	out := make([]geometry.Polygon, len(polys))
	for i := range polys {
		out[i] = polys[i].Clone()
	}
	return out
}

// Equal reports structural equality of DNA; fitness is ignored
func (ind *Individual) Equal(other *Individual) bool {
	return slices.EqualFunc(ind.DNA, other.DNA, geometry.Polygon.Equal)
}

// PolygonCount returns len(DNA)
func (ind *Individual) PolygonCount() int {
	return len(ind.DNA)
}

// VertexCount sums vertices over all polygons
func (ind *Individual) VertexCount() int {
	n := 0
	for i := range ind.DNA {
		n += len(ind.DNA[i].Points)
	}
	return n
}

// Validate checks polygon and vertex floors/ceilings and coordinate bounds
func (ind *Individual) Validate(limits Limits) error {
	n := len(ind.DNA)
	if n < MinPolygons || n > limits.MaxPolygons {
		return fmt.Errorf("genome has %d polygons, want [%d,%d]", n, MinPolygons, limits.MaxPolygons)
	}
	for i := range ind.DNA {
		v := len(ind.DNA[i].Points)
		if v < geometry.MinVertices || v > limits.MaxVertices {
			return fmt.Errorf("polygon %d has %d vertices, want [%d,%d]", i, v, geometry.MinVertices, limits.MaxVertices)
		}
		if !ind.DNA[i].InBounds(limits.Width, limits.Height) {
			return fmt.Errorf("polygon %d out of canvas %dx%d", i, limits.Width, limits.Height)
		}
	}
	return nil
}

// String prints fitness with six decimals
func (ind *Individual) String() string {
	return strconv.FormatFloat(ind.Fitness, 'f', 6, 64)
}
