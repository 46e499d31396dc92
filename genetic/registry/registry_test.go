package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/polyevolve/failure"
	"github.com/lixenwraith/polyevolve/genetic"
	"github.com/lixenwraith/polyevolve/genome"
)

var limits = genome.Limits{Width: 10, Height: 10, MaxPolygons: 7, MaxVertices: 5, VertexCount: 3}

func TestDefault_Names(t *testing.T) {
	r := Default()
	assert.Equal(t, []string{"rank", "roulette"}, r.SelectorNames())
	assert.Equal(t, []string{"cut-and-splice", "one-point", "two-point"}, r.CombinerNames())
}

func TestRegistry_Resolve(t *testing.T) {
	r := Default()

	s, err := r.Selector("rank", limits)
	require.NoError(t, err)
	assert.IsType(t, genetic.RankSelector{}, s)

	c, err := r.Combiner("cut-and-splice", limits)
	require.NoError(t, err)
	assert.Equal(t, genetic.CutAndSpliceCombiner{MaxPolygons: 7}, c)

	opts, err := r.Options("roulette", "one-point", limits)
	require.NoError(t, err)
	assert.Len(t, opts, 2)
}

func TestRegistry_Unknown(t *testing.T) {
	r := Default()

	_, err := r.Selector("tournament", limits)
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.ErrUnknownStrategy)
	assert.True(t, failure.IsConfiguration(err))
	assert.Contains(t, err.Error(), "tournament")

	_, err = r.Options("rank", "uniform", limits)
	assert.ErrorIs(t, err, failure.ErrUnknownStrategy)
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	r := New()
	f := func(genome.Limits) genetic.Selector { return genetic.RankSelector{} }
	require.NoError(t, r.RegisterSelector("rank", f))
	assert.Error(t, r.RegisterSelector("rank", f))

	g := func(genome.Limits) genetic.Combiner { return genetic.TwoPointCombiner{} }
	require.NoError(t, r.RegisterCombiner("x", g))
	assert.Error(t, r.RegisterCombiner("x", g))
}
