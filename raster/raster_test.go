package raster

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/polyevolve/genetic/fitness"
	"github.com/lixenwraith/polyevolve/geometry"
	"github.com/lixenwraith/polyevolve/genome"
)

func square(w, h int, c geometry.Color) geometry.Polygon {
	return geometry.Polygon{
		Color:  c,
		Points: []geometry.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}},
	}
}

func TestRenderer_EmptyIsTransparentBlack(t *testing.T) {
	pix, err := New().Render(genome.FromPolygons(nil), 5, 4)
	require.NoError(t, err)
	require.Len(t, pix, 4*5*4)
	for _, b := range pix {
		assert.Zero(t, b)
	}
}

func TestRenderer_OpaqueFill(t *testing.T) {
	ind := genome.FromPolygons([]geometry.Polygon{square(4, 4, geometry.Color{R: 10, G: 20, B: 30, A: 1})})
	pix, err := New().Render(ind, 4, 4)
	require.NoError(t, err)
	for i := 0; i < len(pix); i += 4 {
		assert.Equal(t, []byte{10, 20, 30, 255}, pix[i:i+4])
	}
}

func TestRenderer_LaterPolygonsOcclude(t *testing.T) {
	ind := genome.FromPolygons([]geometry.Polygon{
		square(4, 4, geometry.Color{R: 255, A: 1}),
		square(2, 4, geometry.Color{B: 255, A: 1}),
	})
	pix, err := New().Render(ind, 4, 4)
	require.NoError(t, err)

	left := pix[0:4]
	right := pix[4*3 : 4*3+4]
	assert.Equal(t, []byte{0, 0, 255, 255}, left)
	assert.Equal(t, []byte{255, 0, 0, 255}, right)
}

func TestRenderer_HalfAlphaOverBlack(t *testing.T) {
	ind := genome.FromPolygons([]geometry.Polygon{square(2, 2, geometry.Color{R: 200, A: 0.5})})
	pix, err := New().Render(ind, 2, 2)
	require.NoError(t, err)
	assert.InDelta(t, 100, int(pix[0]), 1)
	assert.InDelta(t, 128, int(pix[3]), 1)
}

func TestRenderer_ReusesSurface(t *testing.T) {
	r := New()
	first, err := r.Render(genome.FromPolygons([]geometry.Polygon{square(3, 3, geometry.Color{G: 9, A: 1})}), 3, 3)
	require.NoError(t, err)
	second, err := r.Render(genome.FromPolygons(nil), 3, 3)
	require.NoError(t, err)

	assert.Same(t, &first[0], &second[0])
	assert.Zero(t, second[1], "canvas is cleared between renders")

	resized, err := r.Render(genome.FromPolygons(nil), 6, 2)
	require.NoError(t, err)
	assert.Len(t, resized, 4*6*2)
	assert.Equal(t, 6, r.Image().Bounds().Dx())
}

func TestRenderer_SelfScoresPerfect(t *testing.T) {
	limits := genome.Limits{Width: 24, Height: 16, MaxPolygons: 20, MaxVertices: 6, VertexCount: 3}
	ind := genome.New(rand.New(rand.NewPCG(9, 9)), 12, limits)

	a, err := New().Render(ind, 24, 16)
	require.NoError(t, err)
	b, err := New().Render(ind, 24, 16)
	require.NoError(t, err)

	score, err := fitness.Diff(a, b, 24, 16)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}
