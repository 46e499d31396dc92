package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/polyevolve/genetic"
	"github.com/lixenwraith/polyevolve/parameter"
)

func drain(s beep.Streamer) int {
	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

// TestChime_SilentWithoutSpeaker verifies Observe is safe when not initialized
func TestChime_SilentWithoutSpeaker(t *testing.T) {
	c := NewChime()
	c.Observe(genetic.Report{Improved: true, BestFitness: 0.5})
	c.Cleanup()
	assert.Zero(t, c.Played())
}

func TestChime_PlaysOnlyImprovements(t *testing.T) {
	var streams []beep.Streamer
	c := &Chime{play: func(s beep.Streamer) { streams = append(streams, s) }}

	c.Observe(genetic.Report{Improved: false})
	c.Observe(genetic.Report{Improved: true, BestFitness: 0.9})
	// Inside the gap
	c.Observe(genetic.Report{Improved: true, BestFitness: 0.91})

	require.Len(t, streams, 1)
	assert.Equal(t, 1, c.Played())
	assert.Equal(t, durationToSamples(parameter.ChimeSoundDuration.Seconds()), drain(streams[0]))

	c.lastPlayed = time.Now().Add(-time.Second)
	c.Observe(genetic.Report{Improved: true, BestFitness: 0.92})
	assert.Len(t, streams, 2)
}

func TestChimeFrequency_RisesWithFitness(t *testing.T) {
	assert.Equal(t, parameter.ChimeBaseFreq, chimeFrequency(-1))
	assert.Less(t, chimeFrequency(0.3), chimeFrequency(0.6))
	assert.InDelta(t, parameter.ChimeBaseFreq*8, chimeFrequency(2), 1e-9)
}

func TestGenerateChime_Bounded(t *testing.T) {
	buf := generateChime(0.7)
	require.NotEmpty(t, buf)
	for _, s := range buf {
		assert.LessOrEqual(t, s, 1.0)
		assert.GreaterOrEqual(t, s, -1.0)
	}
	assert.Zero(t, buf[0], "attack starts from silence")
}

func TestApplyEnvelope(t *testing.T) {
	buf := floatBuffer{1, 1, 1, 1}
	applyEnvelope(buf, 0, 0)
	assert.Equal(t, floatBuffer{1, 1, 1, 1}, buf)
}
