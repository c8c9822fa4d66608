package audio

import (
	"fmt"
)

// MusicState is the lifecycle of the single music track
type MusicState int

const (
	MusicStopped MusicState = iota
	MusicLoading
	MusicPlaying
)

func (s MusicState) String() string {
	switch s {
	case MusicStopped:
		return "stopped"
	case MusicLoading:
		return "loading"
	case MusicPlaying:
		return "playing"
	default:
		return fmt.Sprintf("MusicState(%d)", int(s))
	}
}

// MusicPlayer owns the one active music stream
type MusicPlayer struct {
	backend Backend
	store   *AssetStore
	fs      *fileSystem

	stream Stream
	state  MusicState
	path   string
	loop   bool
}

// NewMusicPlayer creates a stopped player reading tracks through store
func NewMusicPlayer(backend Backend, store *AssetStore) *MusicPlayer {
	return &MusicPlayer{
		backend: backend,
		store:   store,
		fs:      newFileSystem(store),
	}
}

// Play replaces the current track with path
// The previous track is stopped before the new one is opened, so a failed
// open leaves the player Stopped. Asking for the track that is already
// looping keeps it running without a restart.
func (m *MusicPlayer) Play(path string, loop bool) error {
	if m.state == MusicPlaying && m.loop && loop && m.path == path {
		return nil
	}

	m.Stop()
	m.state = MusicLoading

	m.store.Load(path)
	f, err := m.fs.Open(path)
	if err != nil {
		m.state = MusicStopped
		return err
	}

	stream, err := m.backend.OpenStream(f, loop)
	if err != nil {
		m.state = MusicStopped
		return fmt.Errorf("play %q: %w", path, err)
	}

	m.stream = stream
	m.path = path
	m.loop = loop
	m.state = MusicPlaying
	log.Debugf("Music %q playing (loop=%t)", path, loop)
	return nil
}

// PlayOnce plays path a single time
func (m *MusicPlayer) PlayOnce(path string) error {
	return m.Play(path, false)
}

// Stop releases the active stream; cached bytes stay in the store
func (m *MusicPlayer) Stop() {
	if m.stream != nil {
		m.stream.Close()
		m.stream = nil
	}
	m.state = MusicStopped
	m.path = ""
	m.loop = false
}

// Update reacts to the backend's end signal; call after Backend.Update
func (m *MusicPlayer) Update() {
	if m.state != MusicPlaying || !m.stream.Ended() {
		return
	}

	if !m.loop {
		log.Debugf("Music %q finished", m.path)
		m.Stop()
		return
	}

	if err := m.stream.Rewind(); err != nil {
		log.Warnf("Music %q loop failed: %v", m.path, err)
		m.Stop()
	}
}

// State returns the current lifecycle state
func (m *MusicPlayer) State() MusicState { return m.state }

// Path returns the active track, empty when stopped
func (m *MusicPlayer) Path() string { return m.path }

// Looping reports whether the active track repeats
func (m *MusicPlayer) Looping() bool { return m.loop }
