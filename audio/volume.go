package audio

import (
	"math"

	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/chorus/constant"
)

// Volume is a channel level on the 0-255 scale
type Volume uint8

// ClampVolume maps any integer onto the 0-255 scale
func ClampVolume(v int) Volume {
	if v < 0 {
		return 0
	}
	if v > constant.MaxVolume {
		return constant.MaxVolume
	}
	return Volume(v)
}

// Gain returns the linear backend gain, 0.0-1.0
func (v Volume) Gain() float64 {
	return float64(v) / constant.MaxVolume
}

// applyGain sets a base-2 volume effect to a linear gain
// math.Log2(0) is -Inf, so zero gain goes through Silent instead
func applyGain(vol *effects.Volume, gain float64) {
	vol.Base = 2
	if gain <= 0 {
		vol.Volume = 0
		vol.Silent = true
		return
	}
	vol.Volume = math.Log2(gain)
	vol.Silent = false
}
