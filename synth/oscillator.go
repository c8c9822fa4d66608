// Package synth renders placeholder sounds so the client runs without a real
// asset pack. Every sound is built from beep streamers and encoded as WAV.
package synth

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Tone returns a waveform of the given length
// Tonal waves come from beep/generators; noise has no generator there
func Tone(wave WaveType, freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	n := rate.N(d)

	var (
		s   beep.Streamer
		err error
	)
	switch wave {
	case WaveSine:
		s, err = generators.SineTone(rate, freq)
	case WaveSquare:
		s, err = generators.SquareTone(rate, freq)
	case WaveSaw:
		s, err = generators.SawtoothTone(rate, freq)
	default:
		s = &noise{}
	}
	// Frequencies at or above Nyquist are rejected; fall back to silence
	if err != nil {
		s = generators.Silence(n)
	}
	return beep.Take(n, s)
}

// noise is white noise, unbounded
type noise struct{}

func (noise) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := rand.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (noise) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// Envelope shapes s with a linear attack and release over duration
func Envelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = max(float64(remaining)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Gain scales s by a linear factor
// math.Log2(0) is -Inf, so zero goes through Silent
func Gain(s beep.Streamer, g float64) beep.Streamer {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}

// NoteFreq returns frequency in Hz for a MIDI note number, A4 (69) = 440Hz
func NoteFreq(midi int) float64 {
	if midi < 0 || midi >= 128 {
		return 0
	}
	return 440.0 * math.Exp2((float64(midi)-69.0)/12.0)
}
