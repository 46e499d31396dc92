// Package tracking summarizes evaluated generations and keeps a bounded history
package tracking

import (
	"gonum.org/v1/gonum/stat"

	"github.com/lixenwraith/polyevolve/genome"
)

// Stats describes one evaluated generation
type Stats struct {
	Generation int
	// Best, Worst, Mean, StdDev cover this generation's members only
	Best   float64
	Worst  float64
	Mean   float64
	StdDev float64
	// Elite is the best-ever fitness at the end of this generation's evaluation
	Elite         float64
	ElitePolygons int
	MeanPolygons  float64
}

// Summarize computes statistics over an evaluated population
func Summarize(generation int, members []*genome.Individual, elite *genome.Individual) Stats {
	s := Stats{Generation: generation}
	if elite != nil {
		s.Elite = elite.Fitness
		s.ElitePolygons = elite.PolygonCount()
	}
	if len(members) == 0 {
		return s
	}

	scores := make([]float64, len(members))
	polys := make([]float64, len(members))
	s.Best, s.Worst = members[0].Fitness, members[0].Fitness
	for i, m := range members {
		scores[i] = m.Fitness
		polys[i] = float64(m.PolygonCount())
		s.Best = max(s.Best, m.Fitness)
		s.Worst = min(s.Worst, m.Fitness)
	}

	if len(scores) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(scores, nil)
	} else {
		s.Mean = scores[0]
	}
	s.MeanPolygons = stat.Mean(polys, nil)
	return s
}
