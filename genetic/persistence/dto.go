// Package persistence exports elite genomes as TOML snapshots and PNG images
package persistence

import (
	"fmt"

	"github.com/lixenwraith/polyevolve/geometry"
	"github.com/lixenwraith/polyevolve/genome"
)

// SnapshotDTO is the serializable elite of one run at one generation
type SnapshotDTO struct {
	RunID      string       `toml:"run_id"`
	Generation int          `toml:"generation"`
	Fitness    float64      `toml:"fitness"`
	Width      int          `toml:"width"`
	Height     int          `toml:"height"`
	Polygons   []PolygonDTO `toml:"polygons"`
}

// PolygonDTO is a serializable polygon; RGB as integers, alpha in [0,1]
type PolygonDTO struct {
	RGB    []int   `toml:"rgb"`
	Alpha  float64 `toml:"alpha"`
	Points [][]int `toml:"points"`
}

// FromIndividual converts a genome to DTO
func FromIndividual(runID string, generation, width, height int, ind *genome.Individual) SnapshotDTO {
	dto := SnapshotDTO{
		RunID:      runID,
		Generation: generation,
		Fitness:    ind.Fitness,
		Width:      width,
		Height:     height,
		Polygons:   make([]PolygonDTO, len(ind.DNA)),
	}

	for i, p := range ind.DNA {
		pts := make([][]int, len(p.Points))
		for j, pt := range p.Points {
			pts[j] = []int{pt.X, pt.Y}
		}
		dto.Polygons[i] = PolygonDTO{
			RGB:    []int{int(p.Color.R), int(p.Color.G), int(p.Color.B)},
			Alpha:  p.Color.A,
			Points: pts,
		}
	}
	return dto
}

// ToIndividual converts DTO back to a genome, rejecting malformed entries
func (dto SnapshotDTO) ToIndividual() (*genome.Individual, error) {
	polys := make([]geometry.Polygon, len(dto.Polygons))

	for i, p := range dto.Polygons {
		if len(p.RGB) != 3 {
			return nil, fmt.Errorf("polygon %d: rgb has %d channels", i, len(p.RGB))
		}
		var c geometry.Color
		for k, v := range p.RGB {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("polygon %d: channel %d out of range: %d", i, k, v)
			}
		}
		c.R, c.G, c.B, c.A = uint8(p.RGB[0]), uint8(p.RGB[1]), uint8(p.RGB[2]), p.Alpha

		pts := make([]geometry.Point, len(p.Points))
		for j, pt := range p.Points {
			if len(pt) != 2 {
				return nil, fmt.Errorf("polygon %d: point %d has %d coordinates", i, j, len(pt))
			}
			pts[j] = geometry.Point{X: pt[0], Y: pt[1]}
		}
		polys[i] = geometry.Polygon{Color: c, Points: pts}
	}

	ind := genome.FromPolygons(polys)
	ind.Fitness = dto.Fitness
	return ind, nil
}
