package audio

import (
	"bytes"
	"fmt"
	"io"
)

// File is a read-only in-memory track handed to the backend decoder
type File interface {
	io.ReadSeekCloser
	Name() string
}

// memFile wraps a byte slice; Close is a no-op since the store owns the bytes
type memFile struct {
	*bytes.Reader
	name string
}

func newMemFile(name string, data []byte) *memFile {
	return &memFile{Reader: bytes.NewReader(data), name: name}
}

func (f *memFile) Name() string { return f.name }

func (f *memFile) Close() error { return nil }

// fileSystem maps logical track paths to buffers already held by the store
// It never reaches the archive; a path without a cached buffer cannot be opened
type fileSystem struct {
	store *AssetStore
}

func newFileSystem(store *AssetStore) *fileSystem {
	return &fileSystem{store: store}
}

// Open returns a fresh reader over the cached buffer for path
func (fs *fileSystem) Open(path string) (File, error) {
	data, ok := fs.store.Cached(path)
	if !ok {
		return nil, fmt.Errorf("%w: no buffer for %q", ErrStreamOpen, path)
	}
	return newMemFile(path, data), nil
}
