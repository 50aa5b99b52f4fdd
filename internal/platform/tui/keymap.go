package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/input"
)

// KeyMapper translates Bubble Tea key messages to host commands and
// adapter events. It centralizes key bindings and keeps them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// HostAction is a key handled by the host rather than the game.
type HostAction int

const (
	HostNone HostAction = iota
	HostQuit
	HostBack
	HostRestart
	HostPause
	HostScreenshot
)

// MapHostKey reports whether msg is a host key.
func (km *KeyMapper) MapHostKey(msg tea.KeyMsg) HostAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return HostQuit
	case "esc", "b":
		return HostBack
	case "r":
		return HostRestart
	case "p":
		return HostPause
	case "ctrl+s":
		return HostScreenshot
	}
	return HostNone
}

// MapChoice maps the digit keys 1-9 to option indices 0-8.
func (km *KeyMapper) MapChoice(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	n, _ := strconv.Atoi(s)
	return n - 1, true
}

// KeyEvent converts msg to an adapter event. Terminals only report presses.
func (km *KeyMapper) KeyEvent(msg tea.KeyMsg) input.KeyEvent {
	return input.KeyEvent{Key: msg.String(), Focus: input.FocusGame}
}

// TerminalBindings extends input.DefaultBindings with keys that are easier
// to reach in a terminal.
func TerminalBindings() map[string]input.Binding {
	b := input.DefaultBindings()
	b["x"] = input.Binding{Action: core.ActionShoot}
	b["h"] = input.Binding{Action: core.ActionLeft, Held: true}
	b["l"] = input.Binding{Action: core.ActionRight, Held: true}
	delete(b, "p")
	delete(b, "r")
	return b
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
