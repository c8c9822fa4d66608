package archive

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
)

// Dir serves loose sound files from a directory tree
// Key "UI.img/BtMouseClick" matches UI.img/BtMouseClick itself or
// UI.img/BtMouseClick.{wav,ogg,mp3,flac}, tried in that order
type Dir struct {
	fsys fs.FS
}

// NewDir creates an archive over the directory at root
func NewDir(root string) *Dir {
	return &Dir{fsys: os.DirFS(root)}
}

// NewDirFS creates an archive over fsys
func NewDirFS(fsys fs.FS) *Dir {
	return &Dir{fsys: fsys}
}

// ReadBytes implements Archive
func (d *Dir) ReadBytes(key string) ([]byte, bool) {
	name := strings.TrimPrefix(path.Clean("/"+key), "/")
	if !fs.ValidPath(name) || name == "." {
		return nil, false
	}

	candidates := make([]string, 0, len(soundExts)+1)
	candidates = append(candidates, name)
	for _, ext := range soundExts {
		candidates = append(candidates, name+ext)
	}

	for _, c := range candidates {
		data, err := fs.ReadFile(d.fsys, c)
		if err == nil {
			return data, true
		}
		if !errors.Is(err, fs.ErrNotExist) && !isDirErr(d.fsys, c) {
			log.Warnf("Read %s: %v", c, err)
		}
	}
	return nil, false
}

// Keys lists every sound file as a clean key
func (d *Dir) Keys() ([]string, error) {
	var keys []string
	err := fs.WalkDir(d.fsys, ".", func(p string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() || !isSoundFile(p) {
			return nil
		}
		keys = append(keys, CleanKey(p))
		return nil
	})
	return keys, err
}

func isSoundFile(p string) bool {
	return slices.Contains(soundExts, strings.ToLower(path.Ext(p)))
}

// isDirErr reports whether the failed read was of a directory node
func isDirErr(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && info.IsDir()
}
