package audio

import (
	"errors"
	"sync/atomic"
)

// AudioService wraps System as a service.Service
// Handles graceful degradation when no audio backend is available
type AudioService struct {
	cfg     Config
	archive func() Archive
	opts    []Option

	system   *System
	disabled atomic.Bool
}

// NewService creates the audio service; archive is resolved at Init, after
// the archive service is up
func NewService(cfg Config, archive func() Archive, opts ...Option) *AudioService {
	return &AudioService{cfg: cfg, archive: archive, opts: opts}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return []string{"archive"}
}

// Init implements Service
// args[0]: bool - mute override (true disables audio for this run)
// A missing device sets the disabled flag instead of failing; a missing
// effect in the archive is a real error
func (s *AudioService) Init(args ...any) error {
	cfg := s.cfg
	if len(args) > 0 {
		if muted, ok := args[0].(bool); ok && muted {
			cfg.Enabled = false
		}
	}

	s.system = New(cfg, s.archive(), s.opts...)
	err := s.system.Init()
	switch {
	case errors.Is(err, ErrAudioInit):
		s.disabled.Store(true)
		return nil
	case err != nil:
		return err
	}

	if !s.system.Enabled() {
		s.disabled.Store(true)
	}
	return nil
}

// Start implements Service
// The backend starts its output in Init; nothing is left to launch
func (s *AudioService) Start() error {
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	if s.system != nil {
		s.system.Close()
	}
	return nil
}

// IsDisabled returns true if audio is unavailable or muted
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// System returns the audio system; in disabled mode every call on it is a no-op
func (s *AudioService) System() *System {
	return s.system
}
