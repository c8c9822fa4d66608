package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/speaker"
)

// speakerLock adapts the speaker's global lock for the graph
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// speakerBackend plays through beep/speaker, which owns an oto device context
type speakerBackend struct {
	*graph
	bufferDuration time.Duration
	initialized    bool
}

func newSpeakerBackend(cfg Config) *speakerBackend {
	return &speakerBackend{
		graph:          newGraph(speakerLock{}, cfg),
		bufferDuration: cfg.BufferDuration,
	}
}

func (b *speakerBackend) Name() string { return BackendSpeaker }

// Open sets up the device and attaches the graph root
func (b *speakerBackend) Open() error {
	if b.initialized {
		return nil
	}

	sr := b.format.SampleRate
	if err := speaker.Init(sr, b.bufferSize(b.bufferDuration)); err != nil {
		return fmt.Errorf("%w: speaker: %v", ErrAudioInit, err)
	}

	speaker.Play(b.root)
	b.initialized = true
	return nil
}

// Close stops all sounds and releases the device
func (b *speakerBackend) Close() {
	if !b.initialized {
		return
	}
	b.initialized = false

	speaker.Clear()
	b.graph.reset()
	speaker.Close()
}
