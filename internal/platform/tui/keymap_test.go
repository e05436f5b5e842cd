package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rhythm/internal/config"
)

func testBindings() config.KeyBindings {
	return config.KeyBindings{
		Lanes:   []string{"d", "f", "j", "k"},
		Restart: "r",
	}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune{r}})
}

func TestMapKeyLanes(t *testing.T) {
	km := NewKeyMapper(testBindings())

	for i, r := range []rune{'d', 'f', 'j', 'k'} {
		action, lane := km.MapKey(runeKey(r))
		if action != KeyLane {
			t.Errorf("MapKey(%q) action = %v, expected KeyLane", r, action)
		}
		if lane != i {
			t.Errorf("MapKey(%q) lane = %d, expected %d", r, lane, i)
		}
	}
}

func TestMapKeyRestart(t *testing.T) {
	km := NewKeyMapper(testBindings())

	action, _ := km.MapKey(runeKey('r'))
	if action != KeyRestart {
		t.Errorf("MapKey('r') = %v, expected KeyRestart", action)
	}
}

func TestMapKeyQuit(t *testing.T) {
	km := NewKeyMapper(testBindings())

	quitKeys := []tea.KeyMsg{
		tea.KeyMsg(tea.Key{Type: tea.KeyCtrlC}),
		tea.KeyMsg(tea.Key{Type: tea.KeyEsc}),
		runeKey('q'),
	}
	for _, msg := range quitKeys {
		if action, _ := km.MapKey(msg); action != KeyQuit {
			t.Errorf("MapKey(%q) = %v, expected KeyQuit", msg.String(), action)
		}
	}
}

func TestMapKeyUnbound(t *testing.T) {
	km := NewKeyMapper(testBindings())

	if action, _ := km.MapKey(runeKey('z')); action != KeyNone {
		t.Errorf("MapKey('z') = %v, expected KeyNone", action)
	}
}

func TestLaneKeys(t *testing.T) {
	km := NewKeyMapper(testBindings())

	keys := km.LaneKeys()
	want := []string{"d", "f", "j", "k"}
	if len(keys) != len(want) {
		t.Fatalf("LaneKeys() length = %d, expected %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("LaneKeys()[%d] = %q, expected %q", i, keys[i], want[i])
		}
	}
}
