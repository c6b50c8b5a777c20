package bell

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestSilent(t *testing.T) {
	b := Silent()
	b.Ring()
	b.Close()
	b.Ring()
}

func TestTone_Length(t *testing.T) {
	tests := []struct {
		name string
		sr   beep.SampleRate
		d    time.Duration
	}{
		{"bell", sampleRate, toneLength},
		{"one second", beep.SampleRate(8000), time.Second},
		{"zero", sampleRate, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Tone(tt.sr, toneFreq, tt.d)
			buf := make([][2]float64, 512)
			total := 0
			for {
				n, ok := s.Stream(buf)
				total += n
				if !ok {
					break
				}
			}
			if want := tt.sr.N(tt.d); total != want {
				t.Errorf("streamed %d samples, want %d", total, want)
			}
		})
	}
}

func TestTone_Amplitude(t *testing.T) {
	s := Tone(sampleRate, toneFreq, toneLength)
	buf := make([][2]float64, sampleRate.N(toneLength))
	n, _ := s.Stream(buf)

	peak := 0.0
	for _, smp := range buf[:n] {
		if smp[0] != smp[1] {
			t.Fatal("channels should match")
		}
		peak = math.Max(peak, math.Abs(smp[0]))
	}
	if peak > volume+1e-9 {
		t.Errorf("peak %v exceeds volume %v", peak, volume)
	}
	if peak < volume/2 {
		t.Errorf("peak %v too quiet", peak)
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %v, want 0 (fade-in)", buf[0][0])
	}
}
