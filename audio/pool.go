package audio

import (
	"github.com/lixenwraith/chorus/constant"
)

// voice is one pool slot
type voice struct {
	source Source
	handle SoundHandle // NoSound before first use
}

// VoicePool hands out a fixed ring of effect voices round-robin
// The oldest slot is recycled whether or not its sound finished
type VoicePool struct {
	voices  [constant.VoiceCount]voice
	counter uint64
}

// NewVoicePool allocates every voice up front from backend
func NewVoicePool(backend Backend) *VoicePool {
	p := &VoicePool{}
	for i := range p.voices {
		p.voices[i].source = backend.NewSource()
	}
	return p
}

// Acquire returns the next slot index
func (p *VoicePool) Acquire() int {
	i := int(p.counter % constant.VoiceCount)
	p.counter++
	return i
}

// Play starts h on the next slot, preempting it, and returns the slot index
func (p *VoicePool) Play(h SoundHandle) int {
	i := p.Acquire()
	v := &p.voices[i]
	v.handle = h
	v.source.Play(h)
	return i
}

// Handle returns the sound last assigned to slot i
func (p *VoicePool) Handle(i int) SoundHandle {
	if i < 0 || i >= constant.VoiceCount {
		return NoSound
	}
	return p.voices[i].handle
}

// Stop silences every voice
func (p *VoicePool) Stop() {
	for i := range p.voices {
		p.voices[i].source.Stop()
	}
}

// Len returns the pool capacity
func (p *VoicePool) Len() int {
	return len(p.voices)
}
