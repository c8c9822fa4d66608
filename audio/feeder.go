package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// feeder streams a decoder through a fixed ring of decoded frames
// The output goroutine only drains the ring; decoding happens in fill, called from
// Backend.Update on the client thread. Without fill the ring runs dry and music
// stalls into silence while the stream stays alive. An ended feeder keeps
// streaming silence so Rewind can revive it in place.
type feeder struct {
	mu        sync.Mutex
	ring      [][2]float64
	head      int // next frame to play
	size      int // buffered frames
	exhausted bool
	ended     bool

	// Client thread only
	dec     beep.StreamSeekCloser
	src     beep.Streamer
	rate    beep.SampleRate
	out     beep.SampleRate
	loop    bool
	scratch [][2]float64
}

func newFeeder(dec beep.StreamSeekCloser, format beep.Format, out beep.SampleRate, loop bool, chunk, chunks int) *feeder {
	if chunk < 1 {
		chunk = 1
	}
	if chunks < 2 {
		chunks = 2
	}
	return &feeder{
		ring:    make([][2]float64, chunk*chunks),
		dec:     dec,
		src:     resampleTo(format.SampleRate, out, dec),
		rate:    format.SampleRate,
		out:     out,
		loop:    loop,
		scratch: make([][2]float64, chunk),
	}
}

// Stream implements beep.Streamer for the output side
func (f *feeder) Stream(samples [][2]float64) (n int, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for n < len(samples) && f.size > 0 {
		samples[n] = f.ring[f.head]
		f.head = (f.head + 1) % len(f.ring)
		f.size--
		n++
	}

	if f.size == 0 && f.exhausted {
		f.ended = true
	}

	// Underrun or end: pad with silence; the stream leaves the mixer only on Close
	clear(samples[n:])
	return len(samples), true
}

func (f *feeder) Err() error { return nil }

// fill decodes until the ring is full or the decoder runs out
func (f *feeder) fill() {
	restarted := false
	for {
		f.mu.Lock()
		free := len(f.ring) - f.size
		exhausted := f.exhausted
		f.mu.Unlock()

		if exhausted || free == 0 {
			return
		}

		want := min(free, len(f.scratch))
		n, ok := f.src.Stream(f.scratch[:want])
		if n > 0 {
			f.push(f.scratch[:n])
			restarted = false
		}
		if ok && n > 0 {
			continue
		}

		if err := f.src.Err(); err != nil {
			log.Warnf("Music decode error: %v", err)
		}
		// A loop that yields nothing right after a restart is an empty track
		if f.loop && !restarted {
			err := f.restart()
			if err == nil {
				restarted = true
				continue
			}
			log.Warnf("Music loop seek failed: %v", err)
		}

		f.mu.Lock()
		f.exhausted = true
		f.mu.Unlock()
		return
	}
}

func (f *feeder) push(frames [][2]float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fr := range frames {
		f.ring[(f.head+f.size)%len(f.ring)] = fr
		f.size++
	}
}

// restart seeks the decoder to the first frame; resampler state is rebuilt
func (f *feeder) restart() error {
	if err := f.dec.Seek(0); err != nil {
		return err
	}
	f.src = resampleTo(f.rate, f.out, f.dec)
	return nil
}

// rewind restarts decoding and revives an ended stream
// Frames already buffered still play first
func (f *feeder) rewind() error {
	if err := f.restart(); err != nil {
		return err
	}
	f.mu.Lock()
	f.exhausted = false
	f.ended = false
	f.mu.Unlock()
	return nil
}

// done reports that the decoder ran out and the ring was drained by the output
func (f *feeder) done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ended
}

// buffered returns the number of decoded frames waiting for output
func (f *feeder) buffered() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.size
}

func (f *feeder) close() {
	if err := f.dec.Close(); err != nil {
		log.Debugf("Music decoder close: %v", err)
	}
}
