package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap between consecutive chimes; improvements inside the gap are silent
	MinSoundGap = 120 * time.Millisecond
)

// Chime Sound
const (
	ChimeSoundDuration    = 160 * time.Millisecond
	ChimeSoundAttack      = 5 * time.Millisecond
	ChimeFundamentalDecay = 140 * time.Millisecond
	ChimeOvertoneDecay    = 60 * time.Millisecond

	// ChimeBaseFreq is the pitch at fitness 0; each 1/ChimeOctaves of fitness raises an octave
	ChimeBaseFreq = 220.0
	ChimeOctaves  = 3.0
	ChimeVolume   = 0.25
)
