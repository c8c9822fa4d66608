package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/chorus/archive"
	"github.com/lixenwraith/chorus/audio"
	"github.com/lixenwraith/chorus/config"
)

func TestPlaceholderMemory_CoversEffectsItemsAndMusic(t *testing.T) {
	cfg = config.Default()
	cfg.Audio.SampleRate = 8000

	mem, err := placeholderMemory()
	require.NoError(t, err)

	for _, e := range audio.Effects() {
		_, ok := mem.ReadBytes(e.Key())
		assert.True(t, ok, e.String())
	}
	for _, id := range placeholderItems {
		_, ok := mem.ReadBytes(audio.ItemSoundKey(id))
		assert.True(t, ok, "item %d", id)
	}
	for _, p := range cfg.Archive.Music {
		_, ok := mem.ReadBytes(p)
		assert.True(t, ok, p)
	}
}

func TestCopyArchive(t *testing.T) {
	p, err := archive.CreatePack(filepath.Join(t.TempDir(), "out.pack"))
	require.NoError(t, err)
	defer p.Close()

	src := archive.Memory{"b": []byte("2"), "a": []byte("1")}
	n, err := copyArchive(p, src)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	keys, err := p.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}
