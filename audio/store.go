package audio

import (
	"github.com/patrickmn/go-cache"
)

// AssetStore owns raw music buffers keyed by logical path
// Buffers are read from the archive once and kept until Close; there is no eviction
type AssetStore struct {
	archive Archive
	buffers *cache.Cache
}

// NewAssetStore creates an empty store over archive
func NewAssetStore(archive Archive) *AssetStore {
	return &AssetStore{
		archive: archive,
		buffers: cache.New(cache.NoExpiration, 0),
	}
}

// Load returns the buffer for path, reading the archive on first reference
// Misses are not cached; a track may be added to the archive later
func (s *AssetStore) Load(path string) ([]byte, bool) {
	if data, ok := s.Cached(path); ok {
		return data, true
	}
	if s.archive == nil {
		return nil, false
	}

	data, ok := s.archive.ReadBytes(path)
	if !ok {
		return nil, false
	}
	s.buffers.Set(path, data, cache.NoExpiration)
	log.Debugf("Cached music buffer %q (%d bytes)", path, len(data))
	return data, true
}

// Cached returns the buffer for path without touching the archive
func (s *AssetStore) Cached(path string) ([]byte, bool) {
	v, ok := s.buffers.Get(path)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

// Len returns the number of cached buffers
func (s *AssetStore) Len() int {
	return s.buffers.ItemCount()
}

// Close drops every buffer
func (s *AssetStore) Close() {
	s.buffers.Flush()
}
