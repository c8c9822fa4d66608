package audio

import (
	"fmt"

	"github.com/lixenwraith/chorus/constant"
)

// Registry maps effect names, item ids and raw archive keys to loaded sounds
// Item and key lookups load lazily and cache both hits and misses; a miss is
// stored as NoSound so the archive is never asked twice for the same thing
type Registry struct {
	archive Archive
	backend Backend
	pool    *VoicePool

	effects [effectCount]SoundHandle
	items   map[int32]SoundHandle
	keys    map[string]SoundHandle
}

// NewRegistry creates an empty registry; call Init before resolving effects
func NewRegistry(archive Archive, backend Backend, pool *VoicePool) *Registry {
	return &Registry{
		archive: archive,
		backend: backend,
		pool:    pool,
		items:   make(map[int32]SoundHandle),
		keys:    make(map[string]SoundHandle),
	}
}

// Init preloads every effect; a single missing effect fails the whole call
func (r *Registry) Init() error {
	for _, name := range Effects() {
		key := name.Key()
		data, ok := r.archive.ReadBytes(key)
		if !ok {
			return fmt.Errorf("%w: effect %s: no archive entry %q", ErrAssetLoad, name, key)
		}
		h, err := r.backend.LoadSound(data)
		if err != nil {
			return fmt.Errorf("%w: effect %s: %v", ErrAssetLoad, name, err)
		}
		r.effects[name] = h
	}
	log.Debugf("Preloaded %d effects", effectCount)
	return nil
}

// ResolveEffect returns the preloaded handle for name
func (r *Registry) ResolveEffect(name EffectName) SoundHandle {
	if !name.Valid() {
		return NoSound
	}
	return r.effects[name]
}

// ResolveItem returns the use sound of an item
// Items without their own sound fall back to their family's
func (r *Registry) ResolveItem(id int32) (SoundHandle, bool) {
	if h, ok := r.items[id]; ok {
		return h, h.Valid()
	}

	h, ok := r.ResolveKey(ItemSoundKey(id))
	if !ok {
		if family := itemFamily(id); family != id {
			h, ok = r.ResolveKey(ItemSoundKey(family))
		}
	}
	if !ok {
		log.Debugf("Item %d: %v", id, ErrAssetNotFound)
		h = NoSound
	}

	r.items[id] = h
	return h, ok
}

// ResolveKey returns the sound stored under an arbitrary archive key
func (r *Registry) ResolveKey(key string) (SoundHandle, bool) {
	if h, ok := r.keys[key]; ok {
		return h, h.Valid()
	}

	h, err := r.load(key)
	if err != nil {
		log.Debugf("Sound %q: %v", key, err)
	}
	r.keys[key] = h
	return h, h.Valid()
}

func (r *Registry) load(key string) (SoundHandle, error) {
	data, ok := r.archive.ReadBytes(key)
	if !ok {
		return NoSound, ErrAssetNotFound
	}
	h, err := r.backend.LoadSound(data)
	if err != nil {
		return NoSound, fmt.Errorf("%w: %v", ErrAssetNotFound, err)
	}
	return h, nil
}

// Play starts h on the next pool voice and returns the slot, or -1 for NoSound
func (r *Registry) Play(h SoundHandle) int {
	if !h.Valid() {
		return -1
	}
	return r.pool.Play(h)
}

// Close forgets every handle; the backend owns the buffers themselves
func (r *Registry) Close() {
	r.effects = [effectCount]SoundHandle{}
	clear(r.items)
	clear(r.keys)
}

// ItemSoundKey formats the archive key holding an item's use sound
func ItemSoundKey(id int32) string {
	return fmt.Sprintf("%s/%0*d/%s", constant.ItemSoundRoot, constant.ItemKeyDigits, id, constant.ItemSoundLeaf)
}

func itemFamily(id int32) int32 {
	return id / constant.ItemFamilySize * constant.ItemFamilySize
}
