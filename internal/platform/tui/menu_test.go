package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func menuStep(m MenuModel, msg tea.Msg) MenuModel {
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuGroupsRealTimeFirst(t *testing.T) {
	m := NewMenuModel("", 80, 24)
	if len(m.items) < 2 {
		t.Fatalf("menu has %d items", len(m.items))
	}
	seenTurn := false
	for _, item := range m.items {
		if item.Turn {
			seenTurn = true
		} else if seenTurn {
			t.Fatalf("real-time game %q listed after a turn-based one", item.GameID)
		}
	}
}

func TestMenuCursorClamps(t *testing.T) {
	m := NewMenuModel("", 80, 24)
	m = menuStep(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up at top", m.cursor)
	}
	for range len(m.items) + 3 {
		m = menuStep(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, want %d", m.cursor, len(m.items)-1)
	}

	m = menuStep(m, tea.KeyMsg{Type: tea.KeyEnter})
	if sel := m.Selected(); sel == nil || sel.GameID != m.items[len(m.items)-1].GameID {
		t.Errorf("Selected() = %+v", sel)
	}
}

func TestMenuViewGreetsPlayer(t *testing.T) {
	view := ansi.Strip(NewMenuModel("ada", 80, 24).View())
	if !strings.Contains(view, "Welcome back, ada") {
		t.Errorf("greeting missing from view:\n%s", view)
	}
	if !strings.Contains(view, "Action") || !strings.Contains(view, "Puzzles") {
		t.Errorf("section headings missing from view:\n%s", view)
	}
}

func TestMenuQuitAndScores(t *testing.T) {
	m := menuStep(NewMenuModel("", 80, 24), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab did not request the scoreboard")
	}
	m = menuStep(NewMenuModel("", 80, 24), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q did not quit")
	}
}
