package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/chorus/constant"
)

// pipeBackend renders the graph itself and writes s16le frames to a system player
type pipeBackend struct {
	*graph
	sampleRate     int
	bufferDuration time.Duration

	player  *PlayerConfig
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	ossFile *os.File // For direct OSS writes
	output  io.Writer

	running  atomic.Bool
	failed   atomic.Bool
	stopChan chan struct{}
	errChan  chan error
	wg       sync.WaitGroup

	// Accessed only by the write goroutine
	mixBuf   [][2]float64
	outBytes []byte

	written atomic.Uint64
}

func newPipeBackend(cfg Config) *pipeBackend {
	return &pipeBackend{
		graph:          newGraph(&sync.Mutex{}, cfg),
		sampleRate:     cfg.SampleRate,
		bufferDuration: cfg.BufferDuration,
	}
}

func (b *pipeBackend) Name() string { return BackendPipe }

// Open detects a player and starts the write loop
func (b *pipeBackend) Open() error {
	if b.running.Load() {
		return nil
	}

	player, err := DetectPlayer(b.sampleRate)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAudioInit, err)
	}
	b.player = player

	var writer io.Writer
	if player.Type == PlayerOSS {
		f, err := os.OpenFile(player.Path, os.O_WRONLY, 0)
		if err != nil {
			return fmt.Errorf("%w: open %s: %v", ErrAudioInit, player.Path, err)
		}
		b.ossFile = f
		writer = f
	} else {
		cmd := exec.Command(player.Path, player.Args...)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return fmt.Errorf("%w: %s stdin: %v", ErrAudioInit, player.Name, err)
		}
		if err := cmd.Start(); err != nil {
			stdin.Close()
			return fmt.Errorf("%w: start %s: %v", ErrAudioInit, player.Name, err)
		}
		b.cmd = cmd
		b.stdin = stdin
		writer = stdin

		b.wg.Add(1)
		go b.monitorProcess()
	}

	b.start(writer)
	log.Infof("Pipe backend writing to %s", player.Name)
	return nil
}

// start launches the write loop on w
func (b *pipeBackend) start(w io.Writer) {
	frames := b.bufferSize(b.bufferDuration)
	b.output = w
	b.mixBuf = make([][2]float64, frames)
	b.outBytes = make([]byte, frames*constant.AudioBytesPerFrame)
	b.stopChan = make(chan struct{})
	b.errChan = make(chan error, 1)
	b.running.Store(true)

	b.wg.Add(1)
	go b.loop()
}

// monitorProcess watches for player exit
func (b *pipeBackend) monitorProcess() {
	defer b.wg.Done()

	if b.cmd == nil {
		return
	}

	err := b.cmd.Wait()
	if err != nil && b.running.Load() && !b.failed.Load() {
		log.Warnf("Audio player %s exited: %v", b.player.Name, err)
		b.failed.Store(true)
	}
}

// loop renders one buffer per tick and writes it out
func (b *pipeBackend) loop() {
	defer b.wg.Done()

	ticker := time.NewTicker(b.format.SampleRate.D(len(b.mixBuf)))
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			b.render()
			if _, err := b.output.Write(b.outBytes); err != nil {
				b.failed.Store(true)
				select {
				case b.errChan <- fmt.Errorf("%w: %v", ErrPipeClosed, err):
				default:
				}
				log.Warnf("Audio pipe write failed, playback silenced: %v", err)
				return
			}
			b.written.Add(uint64(len(b.outBytes)))
		}
	}
}

// render pulls one buffer from the graph into outBytes
func (b *pipeBackend) render() {
	b.lock.Lock()
	b.root.Stream(b.mixBuf)
	b.lock.Unlock()

	floatToBytes(b.mixBuf, b.outBytes)
}

// Errors returns the channel receiving pipe write failures
func (b *pipeBackend) Errors() <-chan error {
	return b.errChan
}

// Written returns the number of PCM bytes delivered to the player
func (b *pipeBackend) Written() uint64 {
	return b.written.Load()
}

// Close terminates the write loop and the player process
func (b *pipeBackend) Close() {
	if !b.running.CompareAndSwap(true, false) {
		return
	}

	close(b.stopChan)

	if b.stdin != nil {
		b.stdin.Close()
	}

	if b.ossFile != nil {
		b.ossFile.Close()
	}

	if b.cmd != nil && b.cmd.Process != nil {
		b.cmd.Process.Kill()
	}

	b.wg.Wait()
	b.graph.reset()
}

// floatToBytes converts stereo float frames to interleaved int16 LE bytes
// Applies soft limiting before hard clip
func floatToBytes(in [][2]float64, out []byte) {
	for i, frame := range in {
		for ch, v := range frame {
			// Soft limiter (tanh-style)
			if v > 0.8 {
				v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
			} else if v < -0.8 {
				v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
			}

			// Hard clip
			if v > 1.0 {
				v = 1.0
			} else if v < -1.0 {
				v = -1.0
			}

			idx := i*constant.AudioBytesPerFrame + ch*2
			binary.LittleEndian.PutUint16(out[idx:], uint16(int16(v*32767)))
		}
	}
}
