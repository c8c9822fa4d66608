package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/chorus/audio"
	"github.com/lixenwraith/chorus/constant"
)

const volumeStep = 16

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive soundboard: trigger effects and music from the terminal",
	Args:  cobra.NoArgs,
	RunE:  runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	s, err := startSession()
	if err != nil {
		return err
	}
	defer s.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	b := newBoard(screen, s.System(), cfg.Archive.Music)
	b.run()
	return nil
}

// board is the soundboard UI state
type board struct {
	screen  tcell.Screen
	sys     *audio.System
	effects []audio.EffectName
	music   []string

	cursor    int
	trackIdx  int
	status    string
	statusErr bool
}

func newBoard(screen tcell.Screen, sys *audio.System, music []string) *board {
	return &board{
		screen:  screen,
		sys:     sys,
		effects: audio.Effects(),
		music:   music,
		status:  "enter: play  m: music  o: once  s: stop  +/-: effects  [/]: music  q: quit",
	}
}

func (b *board) setStatus(err bool, format string, args ...any) {
	b.status = fmt.Sprintf(format, args...)
	b.statusErr = err
}

// handleInput applies one event; returns false to quit
func (b *board) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			b.moveCursor(-1)
		case tcell.KeyDown:
			b.moveCursor(1)
		case tcell.KeyEnter:
			b.playSelected()
		case tcell.KeyRune:
			return b.handleRune(ev.Rune())
		}
	case *tcell.EventResize:
		b.screen.Sync()
	}
	return true
}

func (b *board) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'k':
		b.moveCursor(-1)
	case 'j':
		b.moveCursor(1)
	case ' ':
		b.playSelected()
	case 'm', 'o':
		b.playTrack(r == 'o')
	case 's':
		b.sys.StopMusic()
		b.setStatus(false, "music stopped")
	case '+', '=':
		b.adjustEffects(volumeStep)
	case '-':
		b.adjustEffects(-volumeStep)
	case ']':
		b.adjustMusic(volumeStep)
	case '[':
		b.adjustMusic(-volumeStep)
	}
	return true
}

func (b *board) moveCursor(d int) {
	n := len(b.effects)
	b.cursor = ((b.cursor+d)%n + n) % n
}

func (b *board) playSelected() {
	e := b.effects[b.cursor]
	b.sys.PlayEffect(e)
	b.setStatus(false, "played %s", e)
}

// playTrack starts the next configured track
func (b *board) playTrack(once bool) {
	if len(b.music) == 0 {
		b.setStatus(true, "no music configured")
		return
	}
	path := b.music[b.trackIdx%len(b.music)]
	b.trackIdx++

	var err error
	if once {
		err = b.sys.PlayMusicOnce(path)
	} else {
		err = b.sys.PlayMusic(path)
	}
	if err != nil {
		b.setStatus(true, "%v", err)
		return
	}
	b.setStatus(false, "music %s", path)
}

func (b *board) adjustEffects(d int) {
	if b.sys.SetEffectVolume(int(b.sys.EffectVolume()) + d) {
		b.setStatus(false, "effects volume %d", b.sys.EffectVolume())
	}
}

func (b *board) adjustMusic(d int) {
	if b.sys.SetMusicVolume(int(b.sys.MusicVolume()) + d) {
		b.setStatus(false, "music volume %d", b.sys.MusicVolume())
	}
}

func (b *board) draw() {
	b.screen.Clear()
	_, height := b.screen.Size()

	title := tcell.StyleDefault.Bold(true)
	backend := b.sys.BackendName()
	if backend == "" {
		backend = "silent"
	}
	b.drawText(0, 0, title, fmt.Sprintf("chorus - %s backend", backend))
	b.drawText(0, 1, tcell.StyleDefault, fmt.Sprintf("effects %3d  music %3d  %s %s",
		b.sys.EffectVolume(), b.sys.MusicVolume(), b.sys.MusicState(), b.sys.MusicPath()))

	// Keep the cursor row on screen
	rows := max(height-4, 1)
	first := 0
	if b.cursor >= rows {
		first = b.cursor - rows + 1
	}

	for i := first; i < len(b.effects) && i-first < rows; i++ {
		e := b.effects[i]
		style := tcell.StyleDefault
		if i == b.cursor {
			style = style.Reverse(true)
		}
		b.drawText(0, 3+i-first, style, fmt.Sprintf(" %-16s %s ", e, e.Key()))
	}

	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	if b.statusErr {
		statusStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	}
	b.drawText(0, height-1, statusStyle, b.status)

	b.screen.Show()
}

func (b *board) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		b.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (b *board) run() {
	ticker := time.NewTicker(constant.AudioBufferDuration)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := b.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	b.draw()
	for {
		select {
		case ev := <-eventChan:
			if !b.handleInput(ev) {
				return
			}
			b.draw()

		case <-ticker.C:
			b.sys.Tick()
			b.draw()
		}
	}
}
