// Package bell plays a short tone on the default audio device when a
// refresh fails.
package bell

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneFreq   = 880
	toneLength = 80 * time.Millisecond
	volume     = 0.25
)

// Bell rings a tone through the speaker. A Bell whose speaker could not be
// initialised is silent.
type Bell struct {
	mu    sync.Mutex
	mixer *beep.Mixer
	ready bool
}

// New initialises the speaker. On failure it still returns a usable, silent
// Bell along with the error so the caller can log it and carry on.
func New() (*Bell, error) {
	b := Silent()
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return b, fmt.Errorf("bell: init speaker: %w", err)
	}
	speaker.Play(b.mixer)
	b.ready = true
	return b, nil
}

// Silent returns a Bell that never makes a sound.
func Silent() *Bell {
	return &Bell{mixer: &beep.Mixer{}}
}

// Ring starts the tone and returns without waiting for it to finish.
func (b *Bell) Ring() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.ready {
		return
	}
	speaker.Lock()
	b.mixer.Add(Tone(sampleRate, toneFreq, toneLength))
	speaker.Unlock()
}

// Close silences any tone still playing. Later calls to Ring do nothing.
func (b *Bell) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.ready {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.ready = false
}

// Tone returns a sine wave of freq Hz lasting d.
func Tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	return beep.Take(sr.N(d), &sine{sr: sr, freq: freq})
}

type sine struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func (s *sine) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(s.pos) / float64(s.sr)
		// 5ms fade-in keeps the start from clicking.
		env := math.Min(t/0.005, 1.0)
		v := volume * env * math.Sin(2*math.Pi*s.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *sine) Err() error {
	return nil
}
