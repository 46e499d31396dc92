package audio

import (
	"math"

	"github.com/lixenwraith/polyevolve/parameter"
)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveSaw
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// oscillator generates raw waveform samples
func oscillator(waveType int, freq float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	phaseInc := freq / float64(parameter.AudioSampleRate)

	for i := 0; i < samples; i++ {
		switch waveType {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		case waveSaw:
			buf[i] = 2.0 * (phase - 0.5)
		}

		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// applyEnvelope applies attack/release envelope in place
func applyEnvelope(buf floatBuffer, attackSec, releaseSec float64) {
	total := len(buf)
	attackSamples := durationToSamples(attackSec)
	releaseSamples := durationToSamples(releaseSec)

	releaseStart := max(total-releaseSamples, attackSamples)

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// mixFloatBuffers adds b into a (in place), extending a if needed
func mixFloatBuffers(a, b floatBuffer, bScale float64) floatBuffer {
	if len(b) > len(a) {
		extended := make(floatBuffer, len(b))
		copy(extended, a)
		a = extended
	}
	for i := range b {
		a[i] += b[i] * bScale
	}
	return a
}

// durationToSamples converts seconds to sample count
func durationToSamples(d float64) int {
	return int(d * float64(parameter.AudioSampleRate))
}

// chimeFrequency maps fitness onto a rising pitch so later improvements sound higher
func chimeFrequency(fitness float64) float64 {
	f := min(max(fitness, 0), 1)
	return parameter.ChimeBaseFreq * math.Pow(2, f*parameter.ChimeOctaves)
}

// generateChime builds a short bell-like tone for one elite improvement
func generateChime(fitness float64) floatBuffer {
	samples := durationToSamples(parameter.ChimeSoundDuration.Seconds())
	freq := chimeFrequency(fitness)

	fund := oscillator(waveSine, freq, samples)
	applyEnvelope(fund, parameter.ChimeSoundAttack.Seconds(), parameter.ChimeFundamentalDecay.Seconds())

	over := oscillator(waveSine, 2*freq, samples)
	applyEnvelope(over, parameter.ChimeSoundAttack.Seconds(), parameter.ChimeOvertoneDecay.Seconds())

	buf := mixFloatBuffers(fund, over, 0.3/0.7)
	for i := range buf {
		buf[i] *= parameter.ChimeVolume * 0.7
	}
	return buf
}
