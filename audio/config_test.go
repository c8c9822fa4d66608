package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, BackendAuto, cfg.Backend)
	assert.Equal(t, 44100, cfg.SampleRate)
	assert.Equal(t, 50*time.Millisecond, cfg.BufferDuration)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"backend":     func(c *Config) { c.Backend = "jack" },
		"sample_rate": func(c *Config) { c.SampleRate = 100 },
		"buffer":      func(c *Config) { c.BufferDuration = 0 },
		"streams":     func(c *Config) { c.StreamBuffers = 1 },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		assert.Error(t, cfg.Validate(), name)
	}

	// Volumes clamp on use rather than failing validation
	cfg := DefaultConfig()
	cfg.EffectVolume = 1000
	assert.NoError(t, cfg.Validate())
}
