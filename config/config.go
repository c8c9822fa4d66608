// Package config loads chorus settings from file, environment and .env.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lixenwraith/chorus/audio"
)

// EnvPrefix is prepended to every environment override, e.g. CHORUS_AUDIO_BACKEND
const EnvPrefix = "CHORUS"

// Config holds all configuration options for chorus.
type Config struct {
	Audio   audio.Config  `mapstructure:"audio"`
	Archive ArchiveConfig `mapstructure:"archive"`
	Log     LogConfig     `mapstructure:"log"`
}

// ArchiveConfig locates the sound archive.
type ArchiveConfig struct {
	// Path is a pack file or a directory of loose sounds; empty uses
	// synthesized placeholders
	Path string `mapstructure:"path"`

	// Music lists track paths given placeholder melodies when Path is empty
	Music []string `mapstructure:"music"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Audio: audio.DefaultConfig(),
		Archive: ArchiveConfig{
			Music: []string{"Bgm00.img/Title", "Bgm00.img/FloralLife"},
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join("logs", "chorus.log"),
		},
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if err := c.Audio.Validate(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error", "critical", "off":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	return nil
}

// Load reads configuration. An empty path searches ./chorus.yaml and the user
// config directory; a missing file is not an error. A .env file in the working
// directory is applied to the environment first.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("chorus")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "chorus"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("audio.enabled", d.Audio.Enabled)
	v.SetDefault("audio.backend", d.Audio.Backend)
	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)
	v.SetDefault("audio.buffer_duration", d.Audio.BufferDuration)
	v.SetDefault("audio.stream_buffers", d.Audio.StreamBuffers)
	v.SetDefault("audio.effect_volume", d.Audio.EffectVolume)
	v.SetDefault("audio.music_volume", d.Audio.MusicVolume)
	v.SetDefault("archive.path", d.Archive.Path)
	v.SetDefault("archive.music", d.Archive.Music)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}
