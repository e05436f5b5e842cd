package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rhythm/internal/config"
)

// KeyAction classifies a key press for the game loop.
type KeyAction int

const (
	KeyNone KeyAction = iota
	KeyLane           // One of the four column keys; the lane index says which
	KeyRestart
	KeyQuit
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	lanes   map[string]int
	restart string
}

// NewKeyMapper creates a key mapper from the configured bindings.
func NewKeyMapper(keys config.KeyBindings) *KeyMapper {
	lanes := make(map[string]int, len(keys.Lanes))
	for i, k := range keys.Lanes {
		lanes[k] = i
	}
	return &KeyMapper{
		lanes:   lanes,
		restart: keys.Restart,
	}
}

// MapKey classifies a key message. For KeyLane the second return value is
// the lane index.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (KeyAction, int) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q", "esc":
		return KeyQuit, 0
	}

	if lane, ok := km.lanes[key]; ok {
		return KeyLane, lane
	}
	if key == km.restart {
		return KeyRestart, 0
	}

	return KeyNone, 0
}

// LaneKeys returns the lane key labels in lane order, for the renderer.
func (km *KeyMapper) LaneKeys() []string {
	keys := make([]string, len(km.lanes))
	for k, lane := range km.lanes {
		if lane >= 0 && lane < len(keys) {
			keys[lane] = k
		}
	}
	return keys
}
