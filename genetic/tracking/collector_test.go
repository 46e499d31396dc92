package tracking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/polyevolve/geometry"
	"github.com/lixenwraith/polyevolve/genome"
)

func member(fitness float64, polys int) *genome.Individual {
	ind := &genome.Individual{Fitness: fitness, DNA: make([]geometry.Polygon, polys)}
	return ind
}

func TestSummarize(t *testing.T) {
	members := []*genome.Individual{member(0.2, 2), member(0.4, 4), member(0.6, 6)}
	s := Summarize(3, members, member(0.7, 5))

	assert.Equal(t, 3, s.Generation)
	assert.Equal(t, 0.6, s.Best)
	assert.Equal(t, 0.2, s.Worst)
	assert.InDelta(t, 0.4, s.Mean, 1e-12)
	assert.InDelta(t, 0.2, s.StdDev, 1e-12) // sample stddev of {0.2,0.4,0.6}
	assert.Equal(t, 0.7, s.Elite)
	assert.Equal(t, 5, s.ElitePolygons)
	assert.InDelta(t, 4.0, s.MeanPolygons, 1e-12)
}

func TestSummarize_SingleAndEmpty(t *testing.T) {
	s := Summarize(0, []*genome.Individual{member(0.5, 2)}, nil)
	assert.Equal(t, 0.5, s.Mean)
	assert.Equal(t, 0.0, s.StdDev)
	assert.False(t, math.IsNaN(s.StdDev))

	empty := Summarize(1, nil, nil)
	assert.Equal(t, Stats{Generation: 1}, empty)
}

func TestCollector_RingOrder(t *testing.T) {
	c := NewCollector(3)
	_, ok := c.Last()
	require.False(t, ok)

	for g := range 5 {
		c.Collect(Stats{Generation: g, Elite: float64(g) / 10})
	}

	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, 4, last.Generation)
	assert.Equal(t, 5, c.Total())

	hist := c.History()
	require.Len(t, hist, 3)
	assert.Equal(t, []int{2, 3, 4}, []int{hist[0].Generation, hist[1].Generation, hist[2].Generation})
}

func TestCollector_Improvement(t *testing.T) {
	c := NewCollector(10)
	_, ok := c.Improvement(2)
	assert.False(t, ok)

	for _, e := range []float64{0.1, 0.2, 0.25, 0.5} {
		c.Collect(Stats{Elite: e})
	}

	d, ok := c.Improvement(2)
	require.True(t, ok)
	assert.InDelta(t, 0.3, d, 1e-12)

	d, ok = c.Improvement(3)
	require.True(t, ok)
	assert.InDelta(t, 0.4, d, 1e-12)

	_, ok = c.Improvement(4)
	assert.False(t, ok)
}

func TestCollector_Reset(t *testing.T) {
	c := NewCollector(2)
	c.Collect(Stats{Generation: 1})
	c.Reset()
	assert.Empty(t, c.History())
	assert.Zero(t, c.Total())
}

func TestStats_Bundle(t *testing.T) {
	b := Stats{Generation: 7, Best: 0.9, ElitePolygons: 12}.Bundle()
	assert.Equal(t, 7.0, b.Get(MetricGeneration, -1))
	assert.Equal(t, 0.9, b.Get(MetricBestFitness, -1))
	assert.Equal(t, 12.0, b.Get(MetricElitePolys, -1))
	assert.Equal(t, -1.0, b.Get("missing", -1))
}
