package audio

import (
	"fmt"
	"time"

	"github.com/lixenwraith/chorus/constant"
)

// Config holds audio subsystem settings
type Config struct {
	Enabled        bool          `mapstructure:"enabled"`
	Backend        string        `mapstructure:"backend"`
	SampleRate     int           `mapstructure:"sample_rate"`
	BufferDuration time.Duration `mapstructure:"buffer_duration"`
	StreamBuffers  int           `mapstructure:"stream_buffers"`
	EffectVolume   int           `mapstructure:"effect_volume"`
	MusicVolume    int           `mapstructure:"music_volume"`
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		Backend:        BackendAuto,
		SampleRate:     constant.AudioSampleRate,
		BufferDuration: constant.AudioBufferDuration,
		StreamBuffers:  constant.StreamBufferCount,
		EffectVolume:   constant.DefaultEffectVolume,
		MusicVolume:    constant.DefaultMusicVolume,
	}
}

// Validate rejects settings no backend can honor
// Volumes are not checked; they clamp on use
func (c Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendSpeaker, BackendPipe, BackendNone:
	default:
		return fmt.Errorf("audio.backend: unknown backend %q", c.Backend)
	}
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return fmt.Errorf("audio.sample_rate: %d out of range 8000-192000", c.SampleRate)
	}
	if c.BufferDuration < time.Millisecond {
		return fmt.Errorf("audio.buffer_duration: %s too short", c.BufferDuration)
	}
	if c.StreamBuffers < 2 {
		return fmt.Errorf("audio.stream_buffers: need at least 2, got %d", c.StreamBuffers)
	}
	return nil
}
