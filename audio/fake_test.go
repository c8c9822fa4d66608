package audio

import (
	"errors"
)

// fakeBackend records every call and lets tests drive stream end
type fakeBackend struct {
	openErr error
	loadErr error

	opened  bool
	closed  int
	loaded  [][]byte
	sources []*fakeSource
	streams []*fakeStream
	gains   map[Channel]float64
	updates int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{gains: make(map[Channel]float64)}
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) Open() error {
	if b.openErr != nil {
		return b.openErr
	}
	b.opened = true
	return nil
}

func (b *fakeBackend) Close() {
	b.closed++
	b.opened = false
}

func (b *fakeBackend) LoadSound(data []byte) (SoundHandle, error) {
	if b.loadErr != nil {
		return NoSound, b.loadErr
	}
	b.loaded = append(b.loaded, data)
	return SoundHandle(len(b.loaded)), nil
}

func (b *fakeBackend) NewSource() Source {
	s := &fakeSource{}
	b.sources = append(b.sources, s)
	return s
}

func (b *fakeBackend) OpenStream(f File, loop bool) (Stream, error) {
	defer f.Close()
	s := &fakeStream{name: f.Name(), loop: loop}
	b.streams = append(b.streams, s)
	return s, nil
}

func (b *fakeBackend) SetGain(ch Channel, gain float64) { b.gains[ch] = gain }

func (b *fakeBackend) Update() { b.updates++ }

// lastStream returns the most recently opened stream
func (b *fakeBackend) lastStream() *fakeStream {
	if len(b.streams) == 0 {
		return nil
	}
	return b.streams[len(b.streams)-1]
}

type fakeSource struct {
	plays   []SoundHandle
	stopped int
}

func (s *fakeSource) Play(h SoundHandle) { s.plays = append(s.plays, h) }
func (s *fakeSource) Stop()              { s.stopped++ }

type fakeStream struct {
	name    string
	loop    bool
	ended   bool
	rewinds int
	closed  bool
}

func (s *fakeStream) Ended() bool { return s.ended }

func (s *fakeStream) Rewind() error {
	if s.closed {
		return errors.New("rewind closed stream")
	}
	s.rewinds++
	s.ended = false
	return nil
}

func (s *fakeStream) Close() { s.closed = true }

// countingArchive counts reads per key
type countingArchive struct {
	data  map[string][]byte
	reads map[string]int
}

func newCountingArchive() *countingArchive {
	a := &countingArchive{
		data:  make(map[string][]byte),
		reads: make(map[string]int),
	}
	for _, e := range Effects() {
		a.data[e.Key()] = []byte(e.String())
	}
	return a
}

func (a *countingArchive) ReadBytes(key string) ([]byte, bool) {
	a.reads[key]++
	d, ok := a.data[key]
	return d, ok
}

func (a *countingArchive) total() int {
	n := 0
	for _, c := range a.reads {
		n += c
	}
	return n
}
