package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/chorus/constant"
)

// graph is the beep mixing graph shared by the device and pipe backends
//
//	root ─┬─ effectVol ── voices (one voiceSource per pool slot)
//	      └─ musicVol  ── music  (one feeder behind a beep.Ctrl)
//
// lock guards everything the output goroutine reads; the buffer table and the
// stream list are touched only from the client thread.
type graph struct {
	lock   sync.Locker
	format beep.Format

	root      *beep.Mixer
	voices    *beep.Mixer
	music     *beep.Mixer
	effectVol *effects.Volume
	musicVol  *effects.Volume

	sounds  []*beep.Buffer // handle-1 indexed
	streams []*graphStream

	chunk  int
	chunks int
}

func newGraph(lock sync.Locker, cfg Config) *graph {
	g := &graph{
		lock: lock,
		format: beep.Format{
			SampleRate:  beep.SampleRate(cfg.SampleRate),
			NumChannels: constant.AudioChannels,
			Precision:   constant.AudioPrecision,
		},
		root:   &beep.Mixer{},
		voices: &beep.Mixer{},
		music:  &beep.Mixer{},
		chunk:  constant.StreamChunkFrames,
		chunks: cfg.StreamBuffers,
	}
	g.effectVol = &effects.Volume{Streamer: g.voices, Base: 2}
	g.musicVol = &effects.Volume{Streamer: g.music, Base: 2}
	g.root.Add(g.effectVol, g.musicVol)
	return g
}

// bufferSize converts a duration into device frames at the graph rate
func (g *graph) bufferSize(d time.Duration) int {
	if d <= 0 {
		d = constant.AudioBufferDuration
	}
	return g.format.SampleRate.N(d)
}

// LoadSound decodes data fully at the graph rate
func (g *graph) LoadSound(data []byte) (SoundHandle, error) {
	dec, format, err := decode(newMemFile("", data))
	if err != nil {
		return NoSound, fmt.Errorf("decode sound: %w", err)
	}
	defer dec.Close()

	buf := beep.NewBuffer(g.format)
	buf.Append(resampleTo(format.SampleRate, g.format.SampleRate, dec))
	if err := dec.Err(); err != nil {
		return NoSound, fmt.Errorf("decode sound: %w", err)
	}

	g.sounds = append(g.sounds, buf)
	return SoundHandle(len(g.sounds)), nil
}

func (g *graph) sound(h SoundHandle) *beep.Buffer {
	if !h.Valid() || int(h) > len(g.sounds) {
		return nil
	}
	return g.sounds[h-1]
}

// NewSource adds a permanent voice to the effects bus
func (g *graph) NewSource() Source {
	v := &voiceSource{g: g}
	g.lock.Lock()
	g.voices.Add(v)
	g.lock.Unlock()
	return v
}

// OpenStream decodes the first ring's worth before attaching to the music bus
func (g *graph) OpenStream(f File, loop bool) (Stream, error) {
	dec, format, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStreamOpen, err)
	}

	fd := newFeeder(dec, format, g.format.SampleRate, loop, g.chunk, g.chunks)
	fd.fill()

	s := &graphStream{g: g, feeder: fd, ctrl: &beep.Ctrl{Streamer: fd}}
	g.lock.Lock()
	g.music.Add(s.ctrl)
	g.lock.Unlock()

	g.streams = append(g.streams, s)
	log.Debugf("Music stream %q opened: %s %dHz loop=%t", f.Name(), formatFromName(f.Name()), format.SampleRate, loop)
	return s, nil
}

// SetGain applies immediately to playing voices of the channel
func (g *graph) SetGain(ch Channel, gain float64) {
	g.lock.Lock()
	defer g.lock.Unlock()

	switch ch {
	case ChannelEffects:
		applyGain(g.effectVol, gain)
	case ChannelMusic:
		applyGain(g.musicVol, gain)
	}
}

// Update refills every open stream
func (g *graph) Update() {
	for _, s := range g.streams {
		s.feeder.fill()
	}
}

func (g *graph) removeStream(s *graphStream) {
	for i, cur := range g.streams {
		if cur == s {
			g.streams = append(g.streams[:i], g.streams[i+1:]...)
			return
		}
	}
}

// reset detaches every streamer and drops the buffer table
func (g *graph) reset() {
	g.lock.Lock()
	g.voices.Clear()
	g.music.Clear()
	g.lock.Unlock()

	for _, s := range g.streams {
		s.closed = true
		s.feeder.close()
	}
	g.streams = nil
	g.sounds = nil
}

// voiceSource is one pool slot; it streams silence while idle so it stays in the mixer
type voiceSource struct {
	g   *graph
	cur beep.StreamSeeker
}

func (v *voiceSource) Stream(samples [][2]float64) (n int, ok bool) {
	if v.cur != nil {
		var more bool
		n, more = v.cur.Stream(samples)
		if !more || n < len(samples) {
			v.cur = nil
		}
	}
	clear(samples[n:])
	return len(samples), true
}

func (v *voiceSource) Err() error { return nil }

func (v *voiceSource) Play(h SoundHandle) {
	var next beep.StreamSeeker
	if buf := v.g.sound(h); buf != nil {
		next = buf.Streamer(0, buf.Len())
	}
	v.g.lock.Lock()
	v.cur = next
	v.g.lock.Unlock()
}

func (v *voiceSource) Stop() {
	v.g.lock.Lock()
	v.cur = nil
	v.g.lock.Unlock()
}

// graphStream ties a feeder to its slot on the music bus
type graphStream struct {
	g      *graph
	feeder *feeder
	ctrl   *beep.Ctrl
	closed bool
}

func (s *graphStream) Ended() bool {
	return s.feeder.done()
}

func (s *graphStream) Rewind() error {
	if s.closed {
		return ErrBackendClosed
	}
	if err := s.feeder.rewind(); err != nil {
		return err
	}
	s.feeder.fill()
	return nil
}

// Close starves the ctrl so the mixer drops it on its next pass
func (s *graphStream) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.g.lock.Lock()
	s.ctrl.Streamer = nil
	s.g.lock.Unlock()
	s.feeder.close()
	s.g.removeStream(s)
}
