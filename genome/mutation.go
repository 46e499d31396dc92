package genome

import (
	"math/rand/v2"
	"slices"

	"github.com/lixenwraith/polyevolve/geometry"
)

// Mutation names one entry of the mutation probability table
type Mutation uint8

const (
	MutateRed Mutation = iota
	MutateGreen
	MutateBlue
	MutateAlpha
	MutateMove
	MutateVertexX
	MutateVertexY
	MutateRemoveVertex
	MutateInsertVertex
	MutateDeletePolygon
	MutateInsertPolygon
	mutationCount
)

var mutationNames = [mutationCount]string{
	MutateRed:           "red",
	MutateGreen:         "green",
	MutateBlue:          "blue",
	MutateAlpha:         "alpha",
	MutateMove:          "move",
	MutateVertexX:       "vertex-x",
	MutateVertexY:       "vertex-y",
	MutateRemoveVertex:  "remove-vertex",
	MutateInsertVertex:  "insert-vertex",
	MutateDeletePolygon: "delete-polygon",
	MutateInsertPolygon: "insert-polygon",
}

func (m Mutation) String() string {
	if m < mutationCount {
		return mutationNames[m]
	}
	return "unknown"
}

// Threshold pairs a cumulative upper bound with the mutation it selects
type Threshold struct {
	Upper    float64
	Mutation Mutation
}

// mutationTable is scanned in order; a draw r selects the first entry with r < Upper.
// Color 45%, geometry 45%, vertex count 5%, polygon count 5%.
var mutationTable = [...]Threshold{
	{0.1125, MutateRed},
	{0.2250, MutateGreen},
	{0.3375, MutateBlue},
	{0.4500, MutateAlpha},
	{0.6750, MutateMove},
	{0.7875, MutateVertexX},
	{0.9000, MutateVertexY},
	{0.9250, MutateRemoveVertex},
	{0.9500, MutateInsertVertex},
	{0.9750, MutateDeletePolygon},
	{1.0000, MutateInsertPolygon},
}

// MutationTable returns a copy of the dispatch table
func MutationTable() []Threshold {
	return slices.Clone(mutationTable[:])
}

// LookupMutation maps a draw in [0,1) to its mutation
func LookupMutation(r float64) Mutation {
	for _, t := range mutationTable {
		if r < t.Upper {
			return t.Mutation
		}
	}
	return mutationTable[len(mutationTable)-1].Mutation
}

// Mutate applies exactly one table-selected mutation to one random polygon.
// The polygon index is drawn before the table draw. Guarded edits that would
// break a floor or ceiling are skipped silently; the chosen mutation is
// returned either way.
func (ind *Individual) Mutate(rng *rand.Rand, limits Limits) Mutation {
	if len(ind.DNA) == 0 {
		return mutationCount
	}
	index := rng.IntN(len(ind.DNA))
	m := LookupMutation(rng.Float64())
	ind.Apply(rng, m, index, limits)
	return m
}

// Apply runs a single mutation on polygon index. Returns false when the edit
// was refused by an invariant guard or the index is out of range.
func (ind *Individual) Apply(rng *rand.Rand, m Mutation, index int, limits Limits) bool {
	if index < 0 || index >= len(ind.DNA) {
		return false
	}
	poly := &ind.DNA[index]

	switch m {
	case MutateRed:
		poly.Color.R = geometry.RandomChannel(rng)
	case MutateGreen:
		poly.Color.G = geometry.RandomChannel(rng)
	case MutateBlue:
		poly.Color.B = geometry.RandomChannel(rng)
	case MutateAlpha:
		poly.Color.A = geometry.RandomAlpha(rng)
	case MutateMove:
		poly.Move(rng, limits.Width, limits.Height)
	case MutateVertexX:
		poly.MutateVertex(rng, geometry.AxisX, limits.Width, limits.Height)
	case MutateVertexY:
		poly.MutateVertex(rng, geometry.AxisY, limits.Width, limits.Height)
	case MutateRemoveVertex:
		return poly.RemovePoint(rng)
	case MutateInsertVertex:
		return poly.InsertPoint(rng, limits.Width, limits.Height, limits.MaxVertices)
	case MutateDeletePolygon:
		if len(ind.DNA) <= MinPolygons {
			return false
		}
		ind.DNA = slices.Delete(ind.DNA, index, index+1)
	case MutateInsertPolygon:
		if len(ind.DNA) >= limits.MaxPolygons {
			return false
		}
		at := rng.IntN(len(ind.DNA) + 1)
		fresh := geometry.RandomPolygon(rng, limits.VertexCount, limits.Width, limits.Height)
		ind.DNA = slices.Insert(ind.DNA, at, fresh)
	default:
		return false
	}
	return true
}
