package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate    = 44100
	AudioChannels      = 2
	AudioBitDepth      = 16
	AudioBytesPerFrame = AudioChannels * (AudioBitDepth / 8) // 4 bytes
	AudioPrecision     = AudioBitDepth / 8
)

// Audio Engine Timing
const (
	// AudioBufferDuration determines device latency and the pipe writer tick rate
	// 50ms aligns with the default client tick
	AudioBufferDuration = 50 * time.Millisecond

	// AudioBufferSamples is frames per pipe writer tick at 44.1kHz
	AudioBufferSamples = (AudioSampleRate * 50) / 1000 // 2205

	// AudioResampleQuality is passed to beep.Resample for loaded effects and music
	AudioResampleQuality = 4
)

// Voice Pool
const (
	// VoiceCount is the fixed number of one-shot effect voices
	VoiceCount = 100
)

// Music Streaming
const (
	// StreamChunkFrames is decoded per refill step
	StreamChunkFrames = 4096

	// StreamBufferCount chunks make up the music ring; ~370ms at 44.1kHz
	StreamBufferCount = 4
)

// Volume defaults, 0-255 scale
const (
	DefaultEffectVolume = 192
	DefaultMusicVolume  = 128
	MaxVolume           = 255
)

// Archive keys
const (
	ItemSoundRoot  = "Item.img"
	ItemSoundLeaf  = "Use"
	ItemKeyDigits  = 8
	ItemFamilySize = 10000
)

// Placeholder sounds written by the synth package
const (
	ClickSoundDuration = 40 * time.Millisecond
	ClickSoundAttack   = 2 * time.Millisecond
	ClickSoundRelease  = 20 * time.Millisecond

	ChimeSoundDuration = 450 * time.Millisecond
	ChimeSoundAttack   = 5 * time.Millisecond
	ChimeSoundRelease  = 300 * time.Millisecond

	SweepSoundDuration = 300 * time.Millisecond
	SweepSoundAttack   = 100 * time.Millisecond
	SweepSoundRelease  = 150 * time.Millisecond

	PlaceholderMusicDuration = 4 * time.Second
)
