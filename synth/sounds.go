package synth

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/chorus/archive"
	"github.com/lixenwraith/chorus/constant"
)

// Kind selects a placeholder recipe
type Kind int

const (
	KindClick Kind = iota // Short square blip
	KindChime             // Fundamental plus octave
	KindSweep             // Noise swell
	KindCoin              // Two rising notes
	kindCount
)

// Format is the PCM layout every placeholder is rendered in
func Format(rate beep.SampleRate) beep.Format {
	return beep.Format{
		SampleRate:  rate,
		NumChannels: constant.AudioChannels,
		Precision:   constant.AudioPrecision,
	}
}

// Click is a short blip at freq
func Click(freq float64, rate beep.SampleRate) beep.Streamer {
	osc := Tone(WaveSquare, freq, constant.ClickSoundDuration, rate)
	shaped := Envelope(osc, constant.ClickSoundDuration, constant.ClickSoundAttack, constant.ClickSoundRelease, rate)
	return Gain(shaped, 0.4)
}

// Chime is a bell-like ding at freq
func Chime(freq float64, rate beep.SampleRate) beep.Streamer {
	fund := Tone(WaveSine, freq, constant.ChimeSoundDuration, rate)
	fundShaped := Envelope(fund, constant.ChimeSoundDuration, constant.ChimeSoundAttack, constant.ChimeSoundRelease, rate)

	over := Tone(WaveSine, freq*2, constant.ChimeSoundDuration, rate)
	overShaped := Envelope(over, constant.ChimeSoundDuration, constant.ChimeSoundAttack, constant.ChimeSoundRelease/2, rate)

	return beep.Mix(Gain(fundShaped, 0.5), Gain(overShaped, 0.2))
}

// Sweep is a swelling noise burst
func Sweep(rate beep.SampleRate) beep.Streamer {
	n := Tone(WaveNoise, 0, constant.SweepSoundDuration, rate)
	shaped := Envelope(n, constant.SweepSoundDuration, constant.SweepSoundAttack, constant.SweepSoundRelease, rate)
	return Gain(shaped, 0.3)
}

// Coin is two quick rising notes starting at freq
func Coin(freq float64, rate beep.SampleRate) beep.Streamer {
	d := constant.ClickSoundDuration * 2
	n1 := Envelope(Tone(WaveSquare, freq, d, rate), d, constant.ClickSoundAttack, d/2, rate)
	n2 := Envelope(Tone(WaveSquare, freq*4/3, d*2, rate), d*2, constant.ClickSoundAttack, d, rate)
	return Gain(beep.Seq(n1, n2), 0.3)
}

// Effect renders the placeholder for kind at the MIDI note
func Effect(kind Kind, note int, rate beep.SampleRate) beep.Streamer {
	freq := NoteFreq(note)
	switch kind {
	case KindChime:
		return Chime(freq, rate)
	case KindSweep:
		return Sweep(rate)
	case KindCoin:
		return Coin(freq, rate)
	default:
		return Click(freq, rate)
	}
}

// ForKey derives a stable recipe and note from an archive key so each
// placeholder sounds different from its neighbours
func ForKey(key string) (Kind, int) {
	h := fnv.New32a()
	h.Write([]byte(key))
	sum := h.Sum32()
	return Kind(sum % uint32(kindCount)), 60 + int((sum>>8)%24)
}

// Melody is a looping arpeggio of the given length
func Melody(d time.Duration, rate beep.SampleRate) beep.Streamer {
	// I - vi - IV - V in C
	chords := [][3]int{{60, 64, 67}, {57, 60, 64}, {53, 57, 60}, {55, 59, 62}}
	step := 125 * time.Millisecond
	steps := int(d / step)

	notes := make([]beep.Streamer, 0, steps)
	for i := 0; i < steps; i++ {
		chord := chords[(i/8)%len(chords)]
		note := chord[i%3]
		if i%8 == 7 {
			note += 12
		}
		osc := Tone(WaveSine, NoteFreq(note), step, rate)
		notes = append(notes, Envelope(osc, step, 5*time.Millisecond, 60*time.Millisecond, rate))
	}
	return Gain(beep.Seq(notes...), 0.35)
}

// Placeholders renders a sound for every key and a melody for every music path
func Placeholders(keys, music []string, rate beep.SampleRate) (archive.Memory, error) {
	m := make(archive.Memory, len(keys)+len(music))
	format := Format(rate)

	for _, key := range keys {
		kind, note := ForKey(key)
		data, err := EncodeWAV(Effect(kind, note, rate), format)
		if err != nil {
			return nil, fmt.Errorf("placeholder %s: %w", key, err)
		}
		m[key] = data
	}

	for _, path := range music {
		data, err := EncodeWAV(Melody(constant.PlaceholderMusicDuration, rate), format)
		if err != nil {
			return nil, fmt.Errorf("placeholder %s: %w", path, err)
		}
		m[path] = data
	}

	return m, nil
}
