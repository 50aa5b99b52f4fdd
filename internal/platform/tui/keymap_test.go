package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/input"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapHostKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want HostAction
	}{
		{tea.KeyMsg{Type: tea.KeyCtrlC}, HostQuit},
		{runeKey("q"), HostQuit},
		{tea.KeyMsg{Type: tea.KeyEsc}, HostBack},
		{runeKey("r"), HostRestart},
		{runeKey("p"), HostPause},
		{runeKey("a"), HostNone},
		{tea.KeyMsg{Type: tea.KeyLeft}, HostNone},
	}
	for _, tt := range tests {
		if got := km.MapHostKey(tt.msg); got != tt.want {
			t.Errorf("MapHostKey(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestMapChoice(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		want   int
		wantOK bool
	}{
		{"1", 0, true},
		{"4", 3, true},
		{"9", 8, true},
		{"0", 0, false},
		{"a", 0, false},
	}
	for _, tt := range tests {
		got, ok := km.MapChoice(runeKey(tt.key))
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("MapChoice(%q) = (%d, %v), want (%d, %v)", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestTerminalBindingsThroughAdapter(t *testing.T) {
	km := NewKeyMapper()
	a := input.NewAdapter(input.WithBindings(TerminalBindings()), input.WithoutHeldKeys())

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump},
		{runeKey("x"), core.ActionShoot},
		{runeKey("w"), core.ActionUp},
		{runeKey("r"), core.ActionNone},
	}
	for _, tt := range tests {
		res := a.HandleKey(km.KeyEvent(tt.msg))
		if res.Action != tt.want {
			t.Errorf("key %q mapped to %v, want %v", tt.msg.String(), res.Action, tt.want)
		}
	}

	// Terminals never report releases, so nothing stays held.
	a.Frame()
	if f := a.Frame(); !f.Empty() {
		t.Errorf("second Frame() = %+v, want empty", f)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("q"), MenuActionQuit},
		{runeKey("z"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
