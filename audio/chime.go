// Package audio plays a short tone each time the elite improves
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/polyevolve/genetic"
	"github.com/lixenwraith/polyevolve/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// Chime is a genetic.Sink that sounds elite improvements
type Chime struct {
	mu          sync.Mutex
	play        func(beep.Streamer)
	lastPlayed  time.Time
	played      int
	initialized bool
}

// NewChime creates a silent chime; call Initialize to open the speaker
func NewChime() *Chime {
	return &Chime{}
}

// Initialize opens the speaker; a failure leaves the chime silent
func (c *Chime) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	c.play = func(s beep.Streamer) { speaker.Play(s) }
	c.initialized = true
	return nil
}

// Cleanup closes the speaker
func (c *Chime) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.play = nil
	c.initialized = false
}

// Observe implements genetic.Sink
func (c *Chime) Observe(report genetic.Report) {
	if !report.Improved {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.play == nil {
		return
	}
	now := time.Now()
	if now.Sub(c.lastPlayed) < parameter.MinSoundGap {
		return
	}
	c.lastPlayed = now
	c.played++
	c.play(streamBuffer(generateChime(report.BestFitness)))
}

// Played returns chimes sounded so far
func (c *Chime) Played() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.played
}

// streamBuffer plays a mono buffer on both channels once
func streamBuffer(buf floatBuffer) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= len(buf) {
			return 0, false
		}
		for n = 0; n < len(samples) && pos < len(buf); n++ {
			samples[n][0] = buf[pos]
			samples[n][1] = buf[pos]
			pos++
		}
		return n, true
	})
}
