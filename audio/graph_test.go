package audio

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/chorus/constant"
)

func newTestGraph(t *testing.T) *graph {
	t.Helper()
	g := newGraph(&sync.Mutex{}, DefaultConfig())
	t.Cleanup(g.reset)
	return g
}

// peak streams n frames from the root mixer and returns the largest magnitude
func peak(g *graph, n int) float64 {
	buf := make([][2]float64, n)
	g.root.Stream(buf)
	m := 0.0
	for _, fr := range buf {
		m = max(m, abs(fr[0]), abs(fr[1]))
	}
	return m
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestGraph_LoadSound(t *testing.T) {
	g := newTestGraph(t)

	h, err := g.LoadSound(toneWAV(t, 100*time.Millisecond, constant.AudioSampleRate))
	require.NoError(t, err)
	assert.Equal(t, SoundHandle(1), h)
	assert.Equal(t, 4410, g.sound(h).Len())

	h2, err := g.LoadSound(toneWAV(t, 50*time.Millisecond, 22050))
	require.NoError(t, err)
	assert.Equal(t, SoundHandle(2), h2)
	assert.InDelta(t, 2205, g.sound(h2).Len(), 32, "resampled to the graph rate")

	_, err = g.LoadSound([]byte("garbage"))
	assert.Error(t, err)

	assert.Nil(t, g.sound(NoSound))
	assert.Nil(t, g.sound(99))
}

func TestGraph_VoicePlaysAndStaysInMixer(t *testing.T) {
	g := newTestGraph(t)
	h, err := g.LoadSound(toneWAV(t, 20*time.Millisecond, constant.AudioSampleRate))
	require.NoError(t, err)

	src := g.NewSource()
	assert.Equal(t, 0.0, peak(g, 256), "idle voice is silent")

	src.Play(h)
	assert.Greater(t, peak(g, 256), 0.1)

	// Drain the sound; the voice must remain attached for the next play
	peak(g, 2000)
	assert.Equal(t, 0.0, peak(g, 256))
	assert.Equal(t, 1, g.voices.Len())

	src.Play(h)
	assert.Greater(t, peak(g, 256), 0.1)

	src.Stop()
	assert.Equal(t, 0.0, peak(g, 256))
}

func TestGraph_EffectGainZeroMutes(t *testing.T) {
	g := newTestGraph(t)
	h, err := g.LoadSound(toneWAV(t, 20*time.Millisecond, constant.AudioSampleRate))
	require.NoError(t, err)
	src := g.NewSource()

	g.SetGain(ChannelEffects, 0)
	src.Play(h)
	assert.Equal(t, 0.0, peak(g, 256))

	g.SetGain(ChannelEffects, 1)
	src.Play(h)
	assert.Greater(t, peak(g, 256), 0.1)
}

func TestGraph_StreamStallsWithoutUpdate(t *testing.T) {
	g := newTestGraph(t)
	data := toneWAV(t, 500*time.Millisecond, constant.AudioSampleRate)

	s, err := g.OpenStream(newMemFile("track.wav", data), false)
	require.NoError(t, err)
	assert.Len(t, g.streams, 1)

	// Drain well past the prefilled ring without Update
	ring := constant.StreamChunkFrames * constant.StreamBufferCount
	peak(g, ring)
	assert.Equal(t, 0.0, peak(g, 1024), "starved music is silence")
	assert.False(t, s.Ended())

	g.Update()
	assert.Greater(t, peak(g, 1024), 0.1, "update refills the ring")
}

func TestGraph_StreamEndAndRewind(t *testing.T) {
	g := newTestGraph(t)
	data := toneWAV(t, 100*time.Millisecond, constant.AudioSampleRate)

	s, err := g.OpenStream(newMemFile("track.wav", data), false)
	require.NoError(t, err)

	for i := 0; i < 20 && !s.Ended(); i++ {
		g.Update()
		peak(g, 1024)
	}
	require.True(t, s.Ended())

	require.NoError(t, s.Rewind())
	assert.False(t, s.Ended())
	assert.Greater(t, peak(g, 1024), 0.1, "rewound stream plays again")

	s.Close()
	s.Close()
	assert.Empty(t, g.streams)
	assert.True(t, errors.Is(s.Rewind(), ErrBackendClosed))
}

func TestGraph_OpenStreamRejectsGarbage(t *testing.T) {
	g := newTestGraph(t)

	_, err := g.OpenStream(newMemFile("UI.img/x", []byte("nope")), true)
	assert.True(t, errors.Is(err, ErrStreamOpen))
	assert.Empty(t, g.streams)
}

func TestGraph_ResetClosesStreams(t *testing.T) {
	g := newTestGraph(t)
	s, err := g.OpenStream(newMemFile("track.wav", toneWAV(t, 100*time.Millisecond, constant.AudioSampleRate)), true)
	require.NoError(t, err)

	g.reset()
	assert.Empty(t, g.streams)
	assert.Zero(t, g.voices.Len())
	assert.Zero(t, g.music.Len())
	assert.NotPanics(t, s.Close)
}
