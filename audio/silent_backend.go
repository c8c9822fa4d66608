package audio

// silentBackend accepts every call and produces no output
// Used for explicitly muted runs; handles stay valid so registry state matches a real backend
type silentBackend struct {
	loaded SoundHandle
}

func newSilentBackend() *silentBackend {
	return &silentBackend{}
}

func (b *silentBackend) Name() string { return BackendNone }

func (b *silentBackend) Open() error { return nil }

func (b *silentBackend) Close() { b.loaded = NoSound }

func (b *silentBackend) LoadSound(data []byte) (SoundHandle, error) {
	b.loaded++
	return b.loaded, nil
}

func (b *silentBackend) NewSource() Source { return silentSource{} }

func (b *silentBackend) OpenStream(f File, loop bool) (Stream, error) {
	f.Close()
	return silentStream{}, nil
}

func (b *silentBackend) SetGain(Channel, float64) {}

func (b *silentBackend) Update() {}

type silentSource struct{}

func (silentSource) Play(SoundHandle) {}
func (silentSource) Stop()            {}

type silentStream struct{}

func (silentStream) Ended() bool   { return false }
func (silentStream) Rewind() error { return nil }
func (silentStream) Close()        {}
