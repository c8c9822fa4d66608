package audio

import (
	"errors"
	"fmt"
)

// Backend owns the playback device and the decode/mix context
//
// Lifecycle:
//  1. Open - acquire device and context
//  2. LoadSound / NewSource / OpenStream - build playback resources
//  3. Update - once per client tick, refills music stream buffers
//  4. Close - release everything; idempotent, safe after a failed Open
type Backend interface {
	// Name identifies the backend in logs and config
	Name() string

	// Open acquires the device; fails with ErrAudioInit when none is usable
	Open() error

	// Close releases context and device
	Close()

	// LoadSound fully decodes data into the buffer table
	LoadSound(data []byte) (SoundHandle, error)

	// NewSource allocates one playback voice
	NewSource() Source

	// OpenStream starts streaming decode of f on the music channel
	// The stream owns f and closes it
	OpenStream(f File, loop bool) (Stream, error)

	// SetGain applies a linear gain to every voice of the channel
	SetGain(ch Channel, gain float64)

	// Update services streaming decode buffers
	Update()
}

// Source is a backend playback voice
type Source interface {
	// Play starts h from the beginning, superseding anything the voice was playing
	Play(h SoundHandle)
	Stop()
}

// Stream is a music track being decoded incrementally
type Stream interface {
	// Ended reports that a non-looping stream has played out
	Ended() bool

	// Rewind restarts decoding from the first frame
	Rewind() error

	Close()
}

// Backend kinds accepted by Config.Backend
const (
	BackendAuto    = "auto"
	BackendSpeaker = "speaker"
	BackendPipe    = "pipe"
	BackendNone    = "none"
)

// NewBackend constructs an unopened backend of the configured kind
// BackendAuto is not a single backend; use OpenBackend for it
func NewBackend(cfg Config) (Backend, error) {
	switch cfg.Backend {
	case BackendSpeaker:
		return newSpeakerBackend(cfg), nil
	case BackendPipe:
		return newPipeBackend(cfg), nil
	case BackendNone:
		return newSilentBackend(), nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q", cfg.Backend)
	}
}

// OpenBackend constructs and opens the configured backend
// Auto tries the device backend first, then the system player pipe
func OpenBackend(cfg Config) (Backend, error) {
	kinds := []string{cfg.Backend}
	if cfg.Backend == BackendAuto || cfg.Backend == "" {
		kinds = []string{BackendSpeaker, BackendPipe}
	}

	var errs []error
	for _, kind := range kinds {
		b, err := NewBackend(Config{
			Backend:        kind,
			SampleRate:     cfg.SampleRate,
			BufferDuration: cfg.BufferDuration,
			StreamBuffers:  cfg.StreamBuffers,
		})
		if err != nil {
			return nil, err
		}
		if err := b.Open(); err != nil {
			log.Debugf("Audio backend %s unavailable: %v", kind, err)
			errs = append(errs, err)
			continue
		}
		log.Infof("Audio backend %s opened", b.Name())
		return b, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrAudioInit, errors.Join(errs...))
}
