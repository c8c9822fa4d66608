package audio

import (
	"os"
	"os/exec"
	"runtime"
	"strconv"
)

// PlayerType identifies the system player fed by the pipe backend
type PlayerType int

const (
	PlayerPulse PlayerType = iota
	PlayerPipeWire
	PlayerALSA
	PlayerSoX
	PlayerFFplay
	PlayerOSS
)

// PlayerConfig describes a CLI player accepting raw s16le stereo on stdin
type PlayerConfig struct {
	Type PlayerType
	Name string
	Path string
	Args []string
}

// lookPath is swapped in tests
var lookPath = exec.LookPath

// DetectPlayer searches for an available system player
// Priority: pacat > pw-cat > aplay > play (sox) > ffplay > OSS
func DetectPlayer(sampleRate int) (*PlayerConfig, error) {
	rate := strconv.Itoa(sampleRate)

	// PulseAudio/PipeWire (works on Linux and FreeBSD with pulse installed)
	if path, err := lookPath("pacat"); err == nil {
		return &PlayerConfig{
			Type: PlayerPulse,
			Name: "pacat",
			Path: path,
			Args: []string{
				"--raw",
				"--format=s16le",
				"--rate=" + rate,
				"--channels=2",
				"--latency-msec=50",
				"--playback",
			},
		}, nil
	}

	// PipeWire native
	if path, err := lookPath("pw-cat"); err == nil {
		return &PlayerConfig{
			Type: PlayerPipeWire,
			Name: "pw-cat",
			Path: path,
			Args: []string{
				"--playback",
				"--format=s16",
				"--rate=" + rate,
				"--channels=2",
				"--latency=50ms",
				"-",
			},
		}, nil
	}

	// ALSA (Linux)
	if path, err := lookPath("aplay"); err == nil {
		return &PlayerConfig{
			Type: PlayerALSA,
			Name: "aplay",
			Path: path,
			Args: []string{
				"-t", "raw",
				"-f", "S16_LE",
				"-r", rate,
				"-c", "2",
				"-q",
			},
		}, nil
	}

	// SoX (cross-platform)
	if path, err := lookPath("play"); err == nil {
		return &PlayerConfig{
			Type: PlayerSoX,
			Name: "sox",
			Path: path,
			Args: []string{
				"-t", "raw",
				"-e", "signed",
				"-b", "16",
				"-c", "2",
				"-r", rate,
				"-",
				"-d",
				"-q",
			},
		}, nil
	}

	// FFplay (heavyweight fallback)
	if path, err := lookPath("ffplay"); err == nil {
		return &PlayerConfig{
			Type: PlayerFFplay,
			Name: "ffplay",
			Path: path,
			Args: []string{
				"-nodisp",
				"-autoexit",
				"-f", "s16le",
				"-ac", "2",
				"-ar", rate,
				"-probesize", "32",
				"-analyzeduration", "0",
				"-i", "pipe:0",
				"-loglevel", "quiet",
			},
		}, nil
	}

	// FreeBSD OSS (direct device write, no exec needed)
	if runtime.GOOS == "freebsd" {
		if _, err := os.Stat("/dev/dsp"); err == nil {
			return &PlayerConfig{
				Type: PlayerOSS,
				Name: "oss",
				Path: "/dev/dsp",
				Args: nil, // Direct file write
			}, nil
		}
	}

	return nil, ErrNoAudioBackend
}
