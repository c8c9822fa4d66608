package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/chorus/archive"
	"github.com/lixenwraith/chorus/audio"
	"github.com/lixenwraith/chorus/constant"
	"github.com/lixenwraith/chorus/service"
	"github.com/lixenwraith/chorus/synth"
)

// placeholderItems get synthesized sounds so item playback works without a pack
var placeholderItems = []int32{2000000, 2010000, 2020000, 2030000}

// session is a running archive and audio stack
type session struct {
	hub     *service.Hub
	archive *archive.ArchiveService
	audio   *audio.AudioService
}

func startSession() (*session, error) {
	arch := archive.NewService(cfg.Archive.Path, func() (archive.Archive, error) {
		return placeholderMemory()
	})
	au := audio.NewService(cfg.Audio, func() audio.Archive { return arch.Archive() })

	hub := service.NewHub()
	for _, svc := range []service.Service{arch, au} {
		if err := hub.Register(svc); err != nil {
			return nil, err
		}
	}

	if err := hub.InitAll(mute); err != nil {
		return nil, err
	}
	if err := hub.StartAll(); err != nil {
		return nil, err
	}

	if au.IsDisabled() && !mute && cfg.Audio.Enabled {
		fmt.Fprintln(os.Stderr, "audio unavailable, running silent")
	}
	return &session{hub: hub, archive: arch, audio: au}, nil
}

func (s *session) System() *audio.System {
	return s.audio.System()
}

func (s *session) Close() {
	s.hub.StopAll()
}

// placeholderMemory synthesizes every effect, the placeholder items and the configured music
func placeholderMemory() (archive.Memory, error) {
	keys := effectKeys()
	for _, id := range placeholderItems {
		keys = append(keys, audio.ItemSoundKey(id))
	}
	return synth.Placeholders(keys, cfg.Archive.Music, beep.SampleRate(cfg.Audio.SampleRate))
}

func effectKeys() []string {
	effects := audio.Effects()
	keys := make([]string, 0, len(effects))
	for _, e := range effects {
		keys = append(keys, e.Key())
	}
	return keys
}

// tick drives the audio system until ctx ends or done reports true
func tick(ctx context.Context, sys *audio.System, done func() bool) {
	interval := cfg.Audio.BufferDuration
	if interval <= 0 {
		interval = constant.AudioBufferDuration
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sys.Tick()
			if done() {
				return
			}
		}
	}
}
