package genome

import (
	"github.com/lixenwraith/polyevolve/failure"
	"github.com/lixenwraith/polyevolve/geometry"
)

// MinPolygons is the genome floor: polygon deletion is refused at this count
const MinPolygons = 2

// Limits bounds every genome of a run: canvas size for coordinates, ceilings
// for polygon and vertex counts, and the vertex count of freshly drawn polygons
type Limits struct {
	Width       int `toml:"width"`
	Height      int `toml:"height"`
	MaxPolygons int `toml:"max_polygons"`
	MaxVertices int `toml:"max_vertices"`
	VertexCount int `toml:"vertex_count"`
}

// Validate rejects limits under which no valid genome can exist
func (l Limits) Validate() error {
	switch {
	case l.Width <= 0 || l.Height <= 0:
		return failure.NewConfigurationError("limits.canvas", failure.ErrInvalidLimits,
			"canvas %dx%d must be positive", l.Width, l.Height)
	case l.MaxVertices < geometry.MinVertices:
		return failure.NewConfigurationError("limits.max_vertices", failure.ErrInvalidLimits,
			"%d below triangle floor %d", l.MaxVertices, geometry.MinVertices)
	case l.VertexCount < geometry.MinVertices || l.VertexCount > l.MaxVertices:
		return failure.NewConfigurationError("limits.vertex_count", failure.ErrInvalidLimits,
			"%d outside [%d,%d]", l.VertexCount, geometry.MinVertices, l.MaxVertices)
	case l.MaxPolygons < MinPolygons:
		return failure.NewConfigurationError("limits.max_polygons", failure.ErrInvalidLimits,
			"%d below genome floor %d", l.MaxPolygons, MinPolygons)
	}
	return nil
}

// ValidatePolygonCount checks an initial polygon count against the limits
func (l Limits) ValidatePolygonCount(n int) error {
	if n < MinPolygons || n > l.MaxPolygons {
		return failure.NewConfigurationError("initial_polygons", failure.ErrInvalidLimits,
			"%d outside [%d,%d]", n, MinPolygons, l.MaxPolygons)
	}
	return nil
}
