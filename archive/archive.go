// Package archive provides keyed byte-blob stores for sound assets.
//
// Keys are slash separated node paths such as "UI.img/BtMouseClick" or
// "Item.img/02000000/Use". Every implementation answers ReadBytes with a
// copy-free view of the stored bytes; callers must not modify them.
package archive

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path"
	"slices"
	"strings"
)

// Archive is the read side shared by every store
type Archive interface {
	ReadBytes(key string) ([]byte, bool)
}

var (
	ErrEmptyKey    = errors.New("archive key is empty")
	ErrPackCorrupt = errors.New("archive pack is not readable")
)

// soundExts are the file extensions recognized as sound assets, in lookup order
var soundExts = []string{".wav", ".ogg", ".mp3", ".flac"}

// CleanKey normalizes a key to the slash form without leading slash or extension
func CleanKey(key string) string {
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if ext := path.Ext(key); slices.Contains(soundExts, strings.ToLower(ext)) {
		key = strings.TrimSuffix(key, ext)
	}
	return key
}

// Memory is an in-process archive
type Memory map[string][]byte

// ReadBytes implements Archive
func (m Memory) ReadBytes(key string) ([]byte, bool) {
	data, ok := m[key]
	return data, ok
}

// Put stores data under key
func (m Memory) Put(key string, data []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	m[key] = data
	return nil
}

// Keys returns every key, sorted
func (m Memory) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

// Open picks an archive for path: a directory of loose files or a pack file
func Open(p string) (Archive, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if info.IsDir() {
		log.Infof("Using loose sound directory %s", p)
		return NewDir(p), nil
	}
	return OpenPack(p)
}
