package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/chorus/constant"
)

const (
	testChunk  = 512
	testChunks = 4
)

// newTestFeeder decodes a 100ms tone (4410 frames at 44.1kHz)
func newTestFeeder(t *testing.T, loop bool) *feeder {
	t.Helper()
	dec, format, err := decode(newMemFile("tone.wav", toneWAV(t, 100*time.Millisecond, constant.AudioSampleRate)))
	require.NoError(t, err)
	f := newFeeder(dec, format, constant.AudioSampleRate, loop, testChunk, testChunks)
	t.Cleanup(f.close)
	return f
}

func TestFeeder_StallsWithoutFill(t *testing.T) {
	f := newTestFeeder(t, false)
	f.fill()
	require.Equal(t, testChunk*testChunks, f.buffered())

	buf := make([][2]float64, testChunk)
	for i := 0; i < testChunks; i++ {
		n, ok := f.Stream(buf)
		require.True(t, ok)
		require.Equal(t, testChunk, n)
	}

	// Ring is dry and nobody refilled it: silence, stream still alive
	n, ok := f.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, testChunk, n)
	for _, fr := range buf {
		assert.Equal(t, [2]float64{}, fr)
	}
	assert.False(t, f.done())
}

func TestFeeder_EndsAfterLastFrame(t *testing.T) {
	f := newTestFeeder(t, false)

	buf := make([][2]float64, testChunk)
	total := 0
	for i := 0; i < 100 && !f.done(); i++ {
		f.fill()
		total += min(f.buffered(), len(buf))
		n, ok := f.Stream(buf)
		require.True(t, ok)
		require.Equal(t, len(buf), n)
	}

	assert.Equal(t, 4410, total)
	assert.True(t, f.done())

	// Ended feeders stream silence until closed
	n, ok := f.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, [2]float64{}, buf[0])
}

func TestFeeder_LoopNeverEnds(t *testing.T) {
	f := newTestFeeder(t, true)

	buf := make([][2]float64, testChunk)
	for i := 0; i < 40; i++ {
		f.fill()
		n, ok := f.Stream(buf)
		require.True(t, ok)
		require.Equal(t, testChunk, n)
	}
	assert.False(t, f.done())
}

func TestFeeder_RewindRevives(t *testing.T) {
	f := newTestFeeder(t, false)

	buf := make([][2]float64, testChunk)
	for i := 0; i < 100 && !f.done(); i++ {
		f.fill()
		f.Stream(buf)
	}
	require.True(t, f.done())

	require.NoError(t, f.rewind())
	assert.False(t, f.done())
	f.fill()
	assert.Equal(t, testChunk*testChunks, f.buffered())
}

func TestFeeder_Resamples(t *testing.T) {
	dec, format, err := decode(newMemFile("tone.wav", toneWAV(t, 100*time.Millisecond, 22050)))
	require.NoError(t, err)
	f := newFeeder(dec, format, beep.SampleRate(constant.AudioSampleRate), false, testChunk, testChunks)
	defer f.close()

	buf := make([][2]float64, testChunk)
	total := 0
	for i := 0; i < 100 && !f.done(); i++ {
		f.fill()
		total += min(f.buffered(), len(buf))
		f.Stream(buf)
	}
	assert.InDelta(t, 4410, total, 64, "22.05kHz source doubles to the output rate")
}
