package fitness

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/polyevolve/failure"
)

func randomBuffer(rng *rand.Rand, w, h int) []byte {
	buf := make([]byte, BytesPerPixel*w*h)
	for i := range buf {
		buf[i] = byte(rng.IntN(256))
	}
	return buf
}

func filled(w, h int, v byte) []byte {
	buf := make([]byte, BytesPerPixel*w*h)
	for i := range buf {
		buf[i] = v
	}
	return buf
}

func TestDiff_IdenticalIsPerfect(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for range 20 {
		a := randomBuffer(rng, 7, 5)
		got, err := Diff(a, a, 7, 5)
		require.NoError(t, err)
		assert.Equal(t, 1.0, got)
	}
}

func TestDiff_WorstCaseIsZero(t *testing.T) {
	got, err := Diff(filled(4, 3, 0), filled(4, 3, 255), 4, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestDiff_IgnoresAlpha(t *testing.T) {
	a := filled(2, 2, 100)
	b := filled(2, 2, 100)
	for i := 3; i < len(b); i += BytesPerPixel {
		b[i] = 0
	}
	got, err := Diff(a, b, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestDiff_KnownValue(t *testing.T) {
	// one of two pixels differs by 255 on red only: error 255 / (765*2)
	a := []byte{0, 0, 0, 255, 10, 10, 10, 255}
	b := []byte{255, 0, 0, 255, 10, 10, 10, 255}
	got, err := Diff(a, b, 2, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1-255.0/1530.0, got, 1e-12)
}

func TestDiff_InRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	for range 200 {
		got, err := Diff(randomBuffer(rng, 6, 6), randomBuffer(rng, 6, 6), 6, 6)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}

func TestDiff_DimensionMismatch(t *testing.T) {
	_, err := Diff(filled(2, 2, 0), filled(3, 2, 0), 2, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.ErrDimensionMismatch)
	assert.True(t, failure.IsConfiguration(err))

	_, err = Diff(filled(2, 2, 0), filled(2, 2, 0), 0, 2)
	assert.ErrorIs(t, err, failure.ErrDimensionMismatch)
}

func TestEvaluator_MatchesDiff(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	target := randomBuffer(rng, 8, 4)
	ev, err := NewEvaluator(target, 8, 4)
	require.NoError(t, err)

	for range 20 {
		r := randomBuffer(rng, 8, 4)
		want, err := Diff(r, target, 8, 4)
		require.NoError(t, err)
		got, err := ev.Score(r)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-12)
	}

	_, err = ev.Score(filled(1, 1, 0))
	assert.ErrorIs(t, err, failure.ErrDimensionMismatch)

	_, err = NewEvaluator(filled(1, 1, 0), 8, 4)
	assert.ErrorIs(t, err, failure.ErrDimensionMismatch)
}
