package audio

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withPlayers makes only the named binaries resolvable
func withPlayers(t *testing.T, names ...string) {
	t.Helper()
	orig := lookPath
	lookPath = func(name string) (string, error) {
		for _, n := range names {
			if n == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
	t.Cleanup(func() { lookPath = orig })
}

func TestDetectPlayer_Priority(t *testing.T) {
	withPlayers(t, "aplay", "pacat", "ffplay")

	p, err := DetectPlayer(48000)
	require.NoError(t, err)
	assert.Equal(t, PlayerPulse, p.Type)
	assert.Equal(t, "/usr/bin/pacat", p.Path)
	assert.Contains(t, p.Args, "--rate=48000")
}

func TestDetectPlayer_Fallbacks(t *testing.T) {
	cases := []struct {
		bin  string
		want PlayerType
		rate string
	}{
		{"pw-cat", PlayerPipeWire, "--rate=44100"},
		{"aplay", PlayerALSA, "44100"},
		{"play", PlayerSoX, "44100"},
		{"ffplay", PlayerFFplay, "44100"},
	}
	for _, c := range cases {
		t.Run(c.bin, func(t *testing.T) {
			withPlayers(t, c.bin)
			p, err := DetectPlayer(44100)
			require.NoError(t, err)
			assert.Equal(t, c.want, p.Type)
			assert.Contains(t, p.Args, c.rate)
		})
	}
}

func TestDetectPlayer_NoneFound(t *testing.T) {
	if runtime.GOOS == "freebsd" {
		t.Skip("OSS fallback depends on /dev/dsp")
	}
	withPlayers(t)

	_, err := DetectPlayer(44100)
	assert.True(t, errors.Is(err, ErrNoAudioBackend))
}
