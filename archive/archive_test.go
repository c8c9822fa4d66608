package archive

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"UI.img/BtMouseClick", "UI.img/BtMouseClick"},
		{"UI.img/BtMouseClick.wav", "UI.img/BtMouseClick"},
		{"/Game.img/PickUpItem.OGG", "Game.img/PickUpItem"},
		{`Bgm00.img\Title.mp3`, "Bgm00.img/Title"},
		{"Item.img/02000000/Use", "Item.img/02000000/Use"},
		{"a/../b.flac", "b"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanKey(tt.in))
		})
	}
}

func TestMemory(t *testing.T) {
	m := Memory{}
	require.NoError(t, m.Put("b", []byte{2}))
	require.NoError(t, m.Put("a", []byte{1}))
	assert.ErrorIs(t, m.Put("", nil), ErrEmptyKey)

	data, ok := m.ReadBytes("a")
	assert.True(t, ok)
	assert.Equal(t, []byte{1}, data)

	_, ok = m.ReadBytes("missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "b"}, m.Keys())
}

func TestDir_ExtensionFallback(t *testing.T) {
	d := NewDirFS(fstest.MapFS{
		"UI.img/BtMouseClick.wav": {Data: []byte("click")},
		"Bgm00.img/Title.ogg":     {Data: []byte("title")},
		"Bgm00.img/Title.mp3":     {Data: []byte("title-mp3")},
		"raw/NoExt":               {Data: []byte("raw")},
		"notes.txt":               {Data: []byte("ignored")},
	})

	data, ok := d.ReadBytes("UI.img/BtMouseClick")
	require.True(t, ok)
	assert.Equal(t, "click", string(data))

	// .ogg is tried before .mp3
	data, ok = d.ReadBytes("Bgm00.img/Title")
	require.True(t, ok)
	assert.Equal(t, "title", string(data))

	data, ok = d.ReadBytes("raw/NoExt")
	require.True(t, ok)
	assert.Equal(t, "raw", string(data))

	_, ok = d.ReadBytes("UI.img")
	assert.False(t, ok, "directories are not sounds")
	_, ok = d.ReadBytes("")
	assert.False(t, ok)
	_, ok = d.ReadBytes("UI.img/Missing")
	assert.False(t, ok)

	keys, err := d.Keys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"UI.img/BtMouseClick", "Bgm00.img/Title", "Bgm00.img/Title"}, keys)
}

func TestPack_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "sounds.pack")

	p, err := CreatePack(path)
	require.NoError(t, err)
	require.NoError(t, p.Put("UI.img/BtMouseClick", []byte("click")))
	require.NoError(t, p.Put("Game.img/PickUpItem", []byte("old")))
	require.NoError(t, p.Put("Game.img/PickUpItem", []byte("new")))
	assert.ErrorIs(t, p.Put("", []byte("x")), ErrEmptyKey)
	assert.Equal(t, path, p.Path())
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	r, err := OpenPack(path)
	require.NoError(t, err)
	defer r.Close()

	keys, err := r.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"Game.img/PickUpItem", "UI.img/BtMouseClick"}, keys)

	data, ok := r.ReadBytes("Game.img/PickUpItem")
	require.True(t, ok)
	assert.Equal(t, "new", string(data))

	data, ok = r.ReadBytes("UI.img/BtMouseClick.wav")
	require.True(t, ok, "extension falls back to the clean key")
	assert.Equal(t, "click", string(data))

	_, ok = r.ReadBytes("UI.img/Missing")
	assert.False(t, ok)
}

func TestPack_Import(t *testing.T) {
	p, err := CreatePack(filepath.Join(t.TempDir(), "sounds.pack"))
	require.NoError(t, err)
	defer p.Close()

	n, err := p.Import(fstest.MapFS{
		"UI.img/BtMouseClick.wav": {Data: []byte("click")},
		"Bgm00.img/Title.ogg":     {Data: []byte("title")},
		"readme.md":               {Data: []byte("skip")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	keys, err := p.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"Bgm00.img/Title", "UI.img/BtMouseClick"}, keys)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "UI.img"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "UI.img", "BtMouseClick.wav"), []byte("click"), 0644))

	a, err := Open(dir)
	require.NoError(t, err)
	assert.IsType(t, &Dir{}, a)
	data, ok := a.ReadBytes("UI.img/BtMouseClick")
	require.True(t, ok)
	assert.Equal(t, "click", string(data))

	_, err = Open(filepath.Join(dir, "missing.pack"))
	assert.Error(t, err)
}

func TestArchiveService(t *testing.T) {
	mem := Memory{"UI.img/BtMouseClick": []byte("click")}
	svc := NewService("", func() (Archive, error) { return mem, nil })

	assert.Equal(t, "archive", svc.Name())
	assert.Empty(t, svc.Dependencies())
	assert.Nil(t, svc.Archive())

	require.NoError(t, svc.Init())
	require.NoError(t, svc.Start())
	_, ok := svc.Archive().ReadBytes("UI.img/BtMouseClick")
	assert.True(t, ok)

	require.NoError(t, svc.Stop())
	assert.Nil(t, svc.Archive())
}

func TestArchiveService_ClosesPack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sounds.pack")
	p, err := CreatePack(path)
	require.NoError(t, err)
	require.NoError(t, p.Put("k", []byte("v")))
	require.NoError(t, p.Close())

	svc := NewService(path, nil)
	require.NoError(t, svc.Init())
	pack, ok := svc.Archive().(*Pack)
	require.True(t, ok)

	require.NoError(t, svc.Stop())
	assert.Nil(t, pack.conn)
}

func TestArchiveService_MissingPath(t *testing.T) {
	svc := NewService(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, svc.Init())
}
