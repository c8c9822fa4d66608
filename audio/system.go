package audio

import (
	"errors"
	"fmt"
)

// System is the audio subsystem: backend, voice pool, sound registry and music
// All methods are meant for the client's update thread. Until Init succeeds, and
// after Close, every playback call is a silent no-op.
type System struct {
	cfg     Config
	archive Archive

	backend  Backend
	injected bool

	store    *AssetStore
	pool     *VoicePool
	registry *Registry
	music    *MusicPlayer

	effectVolume Volume
	musicVolume  Volume

	enabled bool
}

// Option customizes a System
type Option func(*System)

// WithBackend uses b instead of opening one from the config
func WithBackend(b Backend) Option {
	return func(s *System) {
		s.backend = b
		s.injected = true
	}
}

// New creates an uninitialized System reading assets from archive
func New(cfg Config, archive Archive, opts ...Option) *System {
	s := &System{
		cfg:          cfg,
		archive:      archive,
		effectVolume: ClampVolume(cfg.EffectVolume),
		musicVolume:  ClampVolume(cfg.MusicVolume),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init opens the backend and preloads every effect
// ErrAudioInit means no device; the System stays usable as a no-op.
// ErrAssetLoad means the archive lacks a required effect.
func (s *System) Init() error {
	if s.enabled {
		return nil
	}
	if !s.cfg.Enabled {
		log.Infof("Audio disabled by config")
		return nil
	}

	if err := s.openBackend(); err != nil {
		log.Warnf("Audio unavailable, running silent: %v", err)
		return err
	}

	s.pool = NewVoicePool(s.backend)
	s.registry = NewRegistry(s.archive, s.backend, s.pool)
	if err := s.registry.Init(); err != nil {
		s.backend.Close()
		s.pool = nil
		s.registry = nil
		return err
	}

	s.store = NewAssetStore(s.archive)
	s.music = NewMusicPlayer(s.backend, s.store)

	s.backend.SetGain(ChannelEffects, s.effectVolume.Gain())
	s.backend.SetGain(ChannelMusic, s.musicVolume.Gain())

	s.enabled = true
	log.Infof("Audio ready on %s backend", s.backend.Name())
	return nil
}

func (s *System) openBackend() error {
	if !s.injected {
		b, err := OpenBackend(s.cfg)
		if err != nil {
			return err
		}
		s.backend = b
		return nil
	}

	if s.backend == nil {
		return fmt.Errorf("%w: nil backend", ErrAudioInit)
	}
	if err := s.backend.Open(); err != nil {
		if errors.Is(err, ErrAudioInit) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrAudioInit, err)
	}
	return nil
}

// Close tears everything down; safe to call any number of times
func (s *System) Close() {
	if !s.enabled {
		return
	}
	s.enabled = false

	s.music.Stop()
	s.pool.Stop()
	s.registry.Close()
	s.store.Close()
	s.backend.Close()
	log.Debugf("Audio closed")
}

// Enabled reports whether playback calls reach a backend
func (s *System) Enabled() bool { return s.enabled }

// BackendName returns the active backend, empty in no-op mode
func (s *System) BackendName() string {
	if !s.enabled {
		return ""
	}
	return s.backend.Name()
}

// PlayEffect plays a preloaded effect
func (s *System) PlayEffect(name EffectName) {
	if !s.enabled {
		return
	}
	s.registry.Play(s.registry.ResolveEffect(name))
}

// PlayItem plays an item's use sound and reports whether it has one
func (s *System) PlayItem(id int32) bool {
	if !s.enabled {
		return false
	}
	h, ok := s.registry.ResolveItem(id)
	if !ok {
		return false
	}
	s.registry.Play(h)
	return true
}

// PlaySound plays the sound stored under an archive key
func (s *System) PlaySound(key string) bool {
	if !s.enabled {
		return false
	}
	h, ok := s.registry.ResolveKey(key)
	if !ok {
		return false
	}
	s.registry.Play(h)
	return true
}

// PlayMusic loops path until replaced or stopped
func (s *System) PlayMusic(path string) error {
	if !s.enabled {
		return nil
	}
	return s.music.Play(path, true)
}

// PlayMusicOnce plays path a single time
func (s *System) PlayMusicOnce(path string) error {
	if !s.enabled {
		return nil
	}
	return s.music.PlayOnce(path)
}

// StopMusic stops the active track
func (s *System) StopMusic() {
	if !s.enabled {
		return
	}
	s.music.Stop()
}

// MusicState returns the music lifecycle state
func (s *System) MusicState() MusicState {
	if !s.enabled {
		return MusicStopped
	}
	return s.music.State()
}

// MusicPath returns the active track, empty when stopped
func (s *System) MusicPath() string {
	if !s.enabled {
		return ""
	}
	return s.music.Path()
}

// Tick services music streaming; call once per client frame
func (s *System) Tick() {
	if !s.enabled {
		return
	}
	s.backend.Update()
	s.music.Update()
}

// SetEffectVolume sets the effect channel level, clamped to 0-255
func (s *System) SetEffectVolume(v int) bool {
	if !s.enabled {
		return false
	}
	s.effectVolume = ClampVolume(v)
	s.backend.SetGain(ChannelEffects, s.effectVolume.Gain())
	return true
}

// SetMusicVolume sets the music channel level, clamped to 0-255
func (s *System) SetMusicVolume(v int) bool {
	if !s.enabled {
		return false
	}
	s.musicVolume = ClampVolume(v)
	s.backend.SetGain(ChannelMusic, s.musicVolume.Gain())
	return true
}

// EffectVolume returns the effect channel level
func (s *System) EffectVolume() Volume { return s.effectVolume }

// MusicVolume returns the music channel level
func (s *System) MusicVolume() Volume { return s.musicVolume }
