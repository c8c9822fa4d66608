package audio

import (
	"errors"
	"fmt"
)

// SoundHandle identifies a fully decoded sound in the backend buffer table
type SoundHandle uint32

// NoSound is never assigned by a backend; the registry caches it for missing sounds
const NoSound SoundHandle = 0

// Valid reports whether h refers to a loaded sound
func (h SoundHandle) Valid() bool {
	return h != NoSound
}

// EffectName identifies a preloaded UI or gameplay sound
type EffectName int

const (
	// UI
	EffectButtonClick EffectName = iota
	EffectButtonOver
	EffectCharSelect
	EffectDlgNotice
	EffectMenuDown
	EffectMenuUp
	EffectRaceSelect
	EffectScrollUp
	EffectSelectMap
	EffectTab
	EffectWorldSelect
	EffectDragStart
	EffectDragEnd
	EffectWorldMapOpen
	EffectWorldMapClose

	// Login
	EffectGameStart

	// Game
	EffectJump
	EffectDrop
	EffectPickup
	EffectPortal
	EffectLevelUp
	EffectTombstone

	effectCount
)

// effectInfo is indexed by EffectName
var effectInfo = [effectCount]struct {
	name string
	key  string
}{
	EffectButtonClick:   {"button-click", "UI.img/BtMouseClick"},
	EffectButtonOver:    {"button-over", "UI.img/BtMouseOver"},
	EffectCharSelect:    {"char-select", "UI.img/CharSelect"},
	EffectDlgNotice:     {"dlg-notice", "UI.img/DlgNotice"},
	EffectMenuDown:      {"menu-down", "UI.img/MenuDown"},
	EffectMenuUp:        {"menu-up", "UI.img/MenuUp"},
	EffectRaceSelect:    {"race-select", "UI.img/RaceSelect"},
	EffectScrollUp:      {"scroll-up", "UI.img/ScrollUp"},
	EffectSelectMap:     {"select-map", "UI.img/SelectMap"},
	EffectTab:           {"tab", "UI.img/Tab"},
	EffectWorldSelect:   {"world-select", "UI.img/WorldSelect"},
	EffectDragStart:     {"drag-start", "UI.img/DragStart"},
	EffectDragEnd:       {"drag-end", "UI.img/DragEnd"},
	EffectWorldMapOpen:  {"worldmap-open", "UI.img/WorldmapOpen"},
	EffectWorldMapClose: {"worldmap-close", "UI.img/WorldmapClose"},
	EffectGameStart:     {"game-start", "Game.img/GameIn"},
	EffectJump:          {"jump", "Game.img/Jump"},
	EffectDrop:          {"drop", "Game.img/DropItem"},
	EffectPickup:        {"pickup", "Game.img/PickUpItem"},
	EffectPortal:        {"portal", "Game.img/Portal"},
	EffectLevelUp:       {"level-up", "Game.img/LevelUp"},
	EffectTombstone:     {"tombstone", "Game.img/Tombstone"},
}

// Effects returns every EffectName in table order
func Effects() []EffectName {
	names := make([]EffectName, effectCount)
	for i := range names {
		names[i] = EffectName(i)
	}
	return names
}

// Valid reports whether n is inside the enumeration
func (n EffectName) Valid() bool {
	return n >= 0 && n < effectCount
}

func (n EffectName) String() string {
	if !n.Valid() {
		return fmt.Sprintf("EffectName(%d)", int(n))
	}
	return effectInfo[n].name
}

// Key returns the archive key the effect is preloaded from
func (n EffectName) Key() string {
	if !n.Valid() {
		return ""
	}
	return effectInfo[n].key
}

// ParseEffectName resolves the String form back to an EffectName
func ParseEffectName(s string) (EffectName, bool) {
	for i := range effectInfo {
		if effectInfo[i].name == s {
			return EffectName(i), true
		}
	}
	return 0, false
}

// Channel selects a gain bus
type Channel int

const (
	ChannelEffects Channel = iota
	ChannelMusic
)

func (c Channel) String() string {
	switch c {
	case ChannelEffects:
		return "effects"
	case ChannelMusic:
		return "music"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// Archive is the packed resource collaborator; it returns false for absent keys
type Archive interface {
	ReadBytes(key string) ([]byte, bool)
}

// Sentinel errors
var (
	ErrAudioInit     = errors.New("audio device unavailable")
	ErrAssetLoad     = errors.New("required sound asset missing")
	ErrAssetNotFound = errors.New("sound asset not found")
	ErrStreamOpen    = errors.New("music stream open failed")

	ErrNoAudioBackend = errors.New("no compatible audio backend found")
	ErrPipeClosed     = errors.New("audio pipe closed")
	ErrBackendClosed  = errors.New("audio backend is closed")
	ErrUnknownFormat  = errors.New("unrecognized audio format")
)
