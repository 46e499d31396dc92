package genetic

import (
	"math/rand/v2"

	"github.com/lixenwraith/polyevolve/genetic/tracking"
	"github.com/lixenwraith/polyevolve/geometry"
	"github.com/lixenwraith/polyevolve/genome"
)

// --- Collaborator Contracts ---

// Rasterizer paints a genome into an RGBA buffer of 4*width*height bytes,
// row-major, polygons composited in DNA order. The returned buffer may be
// reused by the next Render call on the same rasterizer.
type Rasterizer interface {
	Render(ind *genome.Individual, width, height int) ([]byte, error)
}

// RasterizerFactory creates independent rendering surfaces for parallel evaluation
type RasterizerFactory func() Rasterizer

// Sink receives one report per evaluated generation; purely observational
type Sink interface {
	Observe(report Report)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(report Report)

func (f SinkFunc) Observe(report Report) { f(report) }

// Sinks fans a report out to every member in order
type Sinks []Sink

func (s Sinks) Observe(report Report) {
	for _, sink := range s {
		if sink != nil {
			sink.Observe(report)
		}
	}
}

// Report is the display notification for one generation
type Report struct {
	Generation  int
	BestFitness float64
	// Best is a private clone of the elite; sinks may keep it
	Best     *genome.Individual
	Polygons int
	// Improved is true when this generation produced a new elite
	Improved bool
	Stats    tracking.Stats
}

// --- Core Operators as Interfaces ---

// Selector picks one parent from a population sorted by descending fitness.
// rankSum is N(N+1)/2 for the population size N.
type Selector interface {
	Select(sorted []*genome.Individual, rankSum int, rng *rand.Rand) *genome.Individual
}

// Combiner recombines two parents into two offspring polygon sequences.
// Offspring must not share polygons with the parents.
type Combiner interface {
	Combine(p1, p2 *genome.Individual, rng *rand.Rand) (off1, off2 []geometry.Polygon)
}

// Mutator applies one mutation event to an offspring
type Mutator interface {
	Mutate(ind *genome.Individual, rng *rand.Rand)
}

// Initializer creates one member of the initial population
type Initializer func(rng *rand.Rand) *genome.Individual

// StopFunc decides between phases whether the run is over
type StopFunc func(status Status) bool
