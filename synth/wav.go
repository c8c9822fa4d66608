package synth

import (
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// EncodeWAV renders s to completion as a 16-bit WAV file in memory
func EncodeWAV(s beep.Streamer, format beep.Format) ([]byte, error) {
	var buf writeSeeker
	if err := wav.Encode(&buf, s, format); err != nil {
		return nil, fmt.Errorf("encode wav: %w", err)
	}
	return buf.data, nil
}

// writeSeeker is the in-memory io.WriteSeeker wav.Encode needs to patch its header
type writeSeeker struct {
	data []byte
	pos  int
}

func (w *writeSeeker) Write(p []byte) (int, error) {
	if end := w.pos + len(p); end > len(w.data) {
		w.data = append(w.data, make([]byte, end-len(w.data))...)
	}
	n := copy(w.data[w.pos:], p)
	w.pos += n
	return n, nil
}

func (w *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	var base int
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = w.pos
	case io.SeekEnd:
		base = len(w.data)
	default:
		return 0, errors.New("seek: invalid whence")
	}
	pos := base + int(offset)
	if pos < 0 {
		return 0, errors.New("seek: negative position")
	}
	w.pos = pos
	return int64(pos), nil
}
