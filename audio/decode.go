package audio

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/chorus/constant"
)

type audioFormat int

const (
	formatUnknown audioFormat = iota
	formatWAV
	formatMP3
	formatVorbis
	formatFLAC
)

func (f audioFormat) String() string {
	switch f {
	case formatWAV:
		return "wav"
	case formatMP3:
		return "mp3"
	case formatVorbis:
		return "ogg"
	case formatFLAC:
		return "flac"
	default:
		return "unknown"
	}
}

// formatFromName picks a decoder by extension
// Archive keys usually carry none, so callers fall back to sniffFormat
func formatFromName(name string) audioFormat {
	switch strings.ToLower(path.Ext(name)) {
	case ".wav":
		return formatWAV
	case ".mp3":
		return formatMP3
	case ".ogg", ".oga":
		return formatVorbis
	case ".flac":
		return formatFLAC
	default:
		return formatUnknown
	}
}

// sniffFormat inspects the container magic and rewinds r
func sniffFormat(r io.ReadSeeker) (audioFormat, error) {
	head := make([]byte, 4)
	n, err := io.ReadFull(r, head)
	if _, serr := r.Seek(0, io.SeekStart); serr != nil {
		return formatUnknown, serr
	}
	if err != nil && err != io.ErrUnexpectedEOF {
		return formatUnknown, err
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, []byte("RIFF")):
		return formatWAV, nil
	case bytes.HasPrefix(head, []byte("OggS")):
		return formatVorbis, nil
	case bytes.HasPrefix(head, []byte("fLaC")):
		return formatFLAC, nil
	case bytes.HasPrefix(head, []byte("ID3")):
		return formatMP3, nil
	case len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0:
		// Bare MPEG frame sync
		return formatMP3, nil
	}
	return formatUnknown, nil
}

// decode opens a decoder for f; the returned streamer owns f
func decode(f File) (beep.StreamSeekCloser, beep.Format, error) {
	kind := formatFromName(f.Name())
	if kind == formatUnknown {
		var err error
		if kind, err = sniffFormat(f); err != nil {
			return nil, beep.Format{}, fmt.Errorf("sniff %q: %w", f.Name(), err)
		}
	}

	switch kind {
	case formatWAV:
		return wav.Decode(f)
	case formatMP3:
		return mp3.Decode(f)
	case formatVorbis:
		return vorbis.Decode(f)
	case formatFLAC:
		return flac.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f.Name())
	}
}

// resampleTo converts s from one rate to another; same-rate input passes through
func resampleTo(from, to beep.SampleRate, s beep.Streamer) beep.Streamer {
	if from == to {
		return s
	}
	return beep.Resample(constant.AudioResampleQuality, from, to, s)
}
