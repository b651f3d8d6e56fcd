// Package chime synthesises the short tones played when a satellite is lost.
package chime

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
)

const (
	maxVoices = 8
	decay     = 6.0 // envelope falloff per second
	volume    = 0.25

	beepLength = 600 * time.Millisecond
)

// pentatonic steps above the base pitch, in semitones
var steps = []float64{0, 2, 4, 7, 9, 12}

type voice struct {
	freq  float64
	phase float64
	age   int // samples played
	total int
}

// Chime is an endless beep.Streamer that plays silence until Ring is called.
// Stream runs on the speaker goroutine while Ring is called from the update loop.
type Chime struct {
	SampleRate beep.SampleRate
	BaseFreq   float64

	mu     sync.Mutex
	voices []voice
	next   int
}

// New returns a chime at the given sample rate.
func New(sr beep.SampleRate) *Chime {
	return &Chime{SampleRate: sr, BaseFreq: 440}
}

// Ring starts n new tones, each a step higher than the last, capped at maxVoices
// sounding at once.
func (c *Chime) Ring(n int) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := 0; i < n && len(c.voices) < maxVoices; i++ {
		semis := steps[c.next%len(steps)]
		c.next++
		c.voices = append(c.voices, voice{
			freq:  c.BaseFreq * math.Pow(2, semis/12),
			total: c.SampleRate.N(beepLength),
		})
	}
}

// Active returns the number of tones still sounding.
func (c *Chime) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.voices)
}

func (c *Chime) Stream(samples [][2]float64) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sr := float64(c.SampleRate)
	for i := range samples {
		var v float64
		for j := range c.voices {
			vc := &c.voices[j]
			if vc.age >= vc.total {
				continue
			}
			env := math.Exp(-decay * float64(vc.age) / sr)
			v += math.Sin(vc.phase) * env * volume
			vc.phase += 2 * math.Pi * vc.freq / sr
			vc.age++
		}
		samples[i] = [2]float64{v, v}
	}

	// drop finished voices
	kept := c.voices[:0]
	for _, vc := range c.voices {
		if vc.age < vc.total {
			kept = append(kept, vc)
		}
	}
	c.voices = kept
	return len(samples), true
}

func (c *Chime) Err() error { return nil }
