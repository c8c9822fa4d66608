package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep/effects"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestClampVolume(t *testing.T) {
	assert.Equal(t, Volume(255), ClampVolume(300))
	assert.Equal(t, Volume(255), ClampVolume(255))
	assert.Equal(t, Volume(0), ClampVolume(-5))
	assert.Equal(t, Volume(128), ClampVolume(128))
}

func TestClampVolume_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Int().Draw(t, "v")
		got := int(ClampVolume(v))
		want := max(0, min(255, v))
		if got != want {
			t.Fatalf("ClampVolume(%d) = %d, want %d", v, got, want)
		}
	})
}

func TestVolumeGain_Monotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.IntRange(0, 255).Draw(t, "a")
		b := rapid.IntRange(a, 255).Draw(t, "b")
		if Volume(a).Gain() > Volume(b).Gain() {
			t.Fatalf("gain(%d) > gain(%d)", a, b)
		}
	})

	assert.Equal(t, 0.0, Volume(0).Gain())
	assert.Equal(t, 1.0, Volume(255).Gain())
}

func TestApplyGain(t *testing.T) {
	vol := &effects.Volume{}

	applyGain(vol, 0)
	assert.True(t, vol.Silent)

	applyGain(vol, 1)
	assert.False(t, vol.Silent)
	assert.Equal(t, 0.0, vol.Volume)
	assert.Equal(t, 2.0, vol.Base)

	applyGain(vol, 0.5)
	assert.InDelta(t, -1.0, vol.Volume, 1e-9)
	assert.InDelta(t, 0.5, math.Pow(vol.Base, vol.Volume), 1e-9)
}
