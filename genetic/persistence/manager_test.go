package persistence

import (
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/polyevolve/genome"
)

func sampleElite(t *testing.T) *genome.Individual {
	t.Helper()
	limits := genome.Limits{Width: 30, Height: 20, MaxPolygons: 10, MaxVertices: 6, VertexCount: 3}
	ind := genome.New(rand.New(rand.NewPCG(3, 3)), 5, limits)
	ind.Fitness = 0.8125
	return ind
}

func TestManager_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)
	elite := sampleElite(t)

	path, err := m.Save(FromIndividual(m.RunID(), 42, 30, 20, elite))
	require.NoError(t, err)
	assert.Equal(t, m.FilePath(42), path)
	assert.Contains(t, filepath.Base(path), m.RunID())

	dto, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, dto.Generation)
	assert.Equal(t, 30, dto.Width)
	assert.Equal(t, m.RunID(), dto.RunID)

	back, err := dto.ToIndividual()
	require.NoError(t, err)
	assert.True(t, back.Equal(elite))
	assert.Equal(t, elite.Fitness, back.Fitness)
}

func TestManager_DistinctRunIDs(t *testing.T) {
	assert.NotEqual(t, NewManager("a").RunID(), NewManager("a").RunID())
}

func TestSnapshotDTO_Malformed(t *testing.T) {
	tests := []struct {
		name string
		poly PolygonDTO
	}{
		{"short rgb", PolygonDTO{RGB: []int{1, 2}, Points: [][]int{{0, 0}}}},
		{"channel range", PolygonDTO{RGB: []int{1, 2, 300}, Points: [][]int{{0, 0}}}},
		{"point arity", PolygonDTO{RGB: []int{1, 2, 3}, Points: [][]int{{0}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SnapshotDTO{Polygons: []PolygonDTO{tt.poly}}.ToIndividual()
			assert.Error(t, err)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestManager_SaveImage(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "nested"))
	pixels := make([]byte, 4*3*2)
	for i := range pixels {
		pixels[i] = 255
	}

	path, err := m.SaveImage(7, pixels, 3, 2)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())

	assert.Error(t, WritePNG(filepath.Join(t.TempDir(), "x.png"), pixels[:5], 3, 2))
}
