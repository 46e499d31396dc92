// Package genetic evolves polygon genomes toward a target image.
// 1. Engine owns one population and runs the generational loop with elitism
// 2. Selection, recombination and mutation are pluggable operators
// 3. Rendering and display are consumed through Rasterizer and Sink
// 4. Every random draw goes through the engine's seeded *rand.Rand
package genetic

import (
	"math/rand/v2"

	"github.com/lixenwraith/polyevolve/geometry"
	"github.com/lixenwraith/polyevolve/genome"
)

// --- Selection ---

// RankSelector implements rank selection: weight N for the fittest down to 1
// for the least fit, independent of raw fitness magnitudes
type RankSelector struct{}

// Select walks down the ranks subtracting rank/S from a cumulative value
// starting at 1 and returns the first member at which it drops to or below r
func (RankSelector) Select(sorted []*genome.Individual, rankSum int, rng *rand.Rand) *genome.Individual {
	r := rng.Float64()
	n := len(sorted)
	if n == 0 {
		return nil
	}
	s := float64(rankSum)
	cum := 1.0
	rank := n
	last := n - 1

	for i := 0; i < last; i++ {
		cum -= float64(rank) / s
		rank--
		if cum <= r {
			return sorted[i]
		}
	}
	return sorted[last]
}

// RouletteSelector implements fitness-proportionate selection over a sorted population
type RouletteSelector struct{}

// Select uses fitness/sum(fitness) slices of a wheel walked from the fittest member
func (RouletteSelector) Select(sorted []*genome.Individual, _ int, rng *rand.Rand) *genome.Individual {
	r := rng.Float64()
	n := len(sorted)
	if n == 0 {
		return nil
	}

	total := 0.0
	for _, ind := range sorted {
		total += ind.Fitness
	}
	if total <= 0 {
		return sorted[rng.IntN(n)]
	}

	cum := 1.0
	last := n - 1
	for i := 0; i < last; i++ {
		cum -= sorted[i].Fitness / total
		if cum <= r {
			return sorted[i]
		}
	}
	return sorted[last]
}

// --- Recombination ---

// TwoPointCombiner swaps a middle segment between the parents while both
// offspring inherit head and tail from the fitter parent
type TwoPointCombiner struct{}

// Combine draws two cut indices in [0,min(len)-1) and builds
// off1 = fittest[:i1] + p2[i1:i2+1] + fittest[i2+1:] and
// off2 = fittest[:i1] + p1[i1:i2+1] + fittest[i2+1:]
func (TwoPointCombiner) Combine(p1, p2 *genome.Individual, rng *rand.Rand) (off1, off2 []geometry.Polygon) {
	par1, par2 := p1.DNA, p2.DNA

	fittest := par2
	if p1.Fitness >= p2.Fitness {
		fittest = par1
	}

	limit := min(len(par1), len(par2))
	if limit < 2 {
		return CloneParents(p1, p2)
	}

	r1 := rng.IntN(limit - 1)
	r2 := rng.IntN(limit - 1)
	i1, i2 := min(r1, r2), max(r1, r2)

	off1 = make([]geometry.Polygon, 0, len(fittest))
	off2 = make([]geometry.Polygon, 0, len(fittest))

	for i := 0; i < i1; i++ {
		off1 = append(off1, fittest[i].Clone())
		off2 = append(off2, fittest[i].Clone())
	}
	for i := i1; i <= i2; i++ {
		off1 = append(off1, par2[i].Clone())
		off2 = append(off2, par1[i].Clone())
	}
	for i := i2 + 1; i < len(fittest); i++ {
		off1 = append(off1, fittest[i].Clone())
		off2 = append(off2, fittest[i].Clone())
	}
	return off1, off2
}

// OnePointCombiner exchanges tails after a single cut in [0,min(len)]
type OnePointCombiner struct{}

func (OnePointCombiner) Combine(p1, p2 *genome.Individual, rng *rand.Rand) (off1, off2 []geometry.Polygon) {
	par1, par2 := p1.DNA, p2.DNA
	cut := rng.IntN(min(len(par1), len(par2)) + 1)

	off1 = make([]geometry.Polygon, 0, len(par2))
	off2 = make([]geometry.Polygon, 0, len(par1))
	for i := 0; i < cut; i++ {
		off1 = append(off1, par1[i].Clone())
		off2 = append(off2, par2[i].Clone())
	}
	for i := cut; i < len(par2); i++ {
		off1 = append(off1, par2[i].Clone())
	}
	for i := cut; i < len(par1); i++ {
		off2 = append(off2, par1[i].Clone())
	}
	return off1, off2
}

// CutAndSpliceCombiner cuts each parent independently and splices the pieces,
// so offspring lengths may differ from both parents
type CutAndSpliceCombiner struct {
	// MaxPolygons bounds offspring length; a pair outside [2,MaxPolygons] falls back to clones
	MaxPolygons int
}

func (c CutAndSpliceCombiner) Combine(p1, p2 *genome.Individual, rng *rand.Rand) (off1, off2 []geometry.Polygon) {
	par1, par2 := p1.DNA, p2.DNA
	r1 := rng.IntN(len(par1) + 1)
	r2 := rng.IntN(len(par2) + 1)

	len1 := r1 + len(par2) - r2
	len2 := r2 + len(par1) - r1
	if !c.fits(len1) || !c.fits(len2) {
		return CloneParents(p1, p2)
	}

	off1 = make([]geometry.Polygon, 0, len1)
	off2 = make([]geometry.Polygon, 0, len2)
	for i := 0; i < r1; i++ {
		off1 = append(off1, par1[i].Clone())
	}
	for i := 0; i < r2; i++ {
		off2 = append(off2, par2[i].Clone())
	}
	for i := r2; i < len(par2); i++ {
		off1 = append(off1, par2[i].Clone())
	}
	for i := r1; i < len(par1); i++ {
		off2 = append(off2, par1[i].Clone())
	}
	return off1, off2
}

func (c CutAndSpliceCombiner) fits(n int) bool {
	return n >= genome.MinPolygons && (c.MaxPolygons <= 0 || n <= c.MaxPolygons)
}

// CloneParents deep-copies both parents' DNA verbatim
func CloneParents(p1, p2 *genome.Individual) (off1, off2 []geometry.Polygon) {
	return genome.ClonePolygons(p1.DNA), genome.ClonePolygons(p2.DNA)
}

// --- Mutation ---

// TableMutator applies genome.Individual.Mutate under fixed limits
type TableMutator struct {
	Limits genome.Limits
}

func (m TableMutator) Mutate(ind *genome.Individual, rng *rand.Rand) {
	ind.Mutate(rng, m.Limits)
}
