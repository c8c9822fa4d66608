package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/lixenwraith/chorus/constant"
)

func TestVoicePool_AllocatesEverySource(t *testing.T) {
	b := newFakeBackend()
	p := NewVoicePool(b)

	assert.Equal(t, constant.VoiceCount, p.Len())
	assert.Len(t, b.sources, constant.VoiceCount)
	assert.Equal(t, NoSound, p.Handle(0), "slots start unassigned")
}

func TestVoicePool_101stPlayReusesSlotZero(t *testing.T) {
	b := newFakeBackend()
	p := NewVoicePool(b)

	for i := 0; i < constant.VoiceCount; i++ {
		require.Equal(t, i, p.Play(SoundHandle(i+1)))
	}

	slot := p.Play(SoundHandle(101))
	assert.Equal(t, 0, slot)
	assert.Equal(t, SoundHandle(101), p.Handle(0))

	// Slot 0's source was told to play twice; the second preempts the first
	assert.Equal(t, []SoundHandle{1, 101}, b.sources[0].plays)
}

func TestVoicePool_RoundRobinProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := newFakeBackend()
		p := NewVoicePool(b)

		n := rapid.IntRange(1, 5*constant.VoiceCount).Draw(t, "plays")
		for i := 0; i < n; i++ {
			slot := p.Play(SoundHandle(i + 1))
			if slot != i%constant.VoiceCount {
				t.Fatalf("play %d landed on slot %d", i, slot)
			}
		}

		// Every slot holds the newest handle assigned to it
		for i := 0; i < min(n, constant.VoiceCount); i++ {
			last := i + ((n-1-i)/constant.VoiceCount)*constant.VoiceCount
			if got := p.Handle(i); got != SoundHandle(last+1) {
				t.Fatalf("slot %d holds %d, want %d", i, got, last+1)
			}
		}
	})
}

func TestVoicePool_StopAndBounds(t *testing.T) {
	b := newFakeBackend()
	p := NewVoicePool(b)

	p.Stop()
	for _, s := range b.sources {
		assert.Equal(t, 1, s.stopped)
	}

	assert.Equal(t, NoSound, p.Handle(-1))
	assert.Equal(t, NoSound, p.Handle(constant.VoiceCount))
}
