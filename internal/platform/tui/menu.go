package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

var (
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sectionStyle = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("245"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

// MenuItem is one playable entry of the picker.
type MenuItem struct {
	GameID string
	Title  string
	Turn   bool
}

type menuSection struct {
	heading string
	items   []MenuItem
}

// MenuModel lists the registered games, real-time ones first.
type MenuModel struct {
	sections []menuSection
	items    []MenuItem // sections flattened in display order
	cursor   int
	width    int
	height   int
	player   string
	keys     *KeyMapper

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel builds the picker. player is greeted in the header when set.
func NewMenuModel(player string, width, height int) MenuModel {
	live := menuSection{heading: "Action"}
	turns := menuSection{heading: "Puzzles"}
	for _, info := range registry.List() {
		item := MenuItem{GameID: info.ID, Title: info.Title, Turn: info.Cadence.Kind == core.CadenceTurn}
		if item.Turn {
			turns.items = append(turns.items, item)
		} else {
			live.items = append(live.items, item)
		}
	}

	m := MenuModel{width: width, height: height, player: player, keys: NewKeyMapper()}
	for _, sec := range []menuSection{live, turns} {
		if len(sec.items) == 0 {
			continue
		}
		m.sections = append(m.sections, sec)
		m.items = append(m.items, sec.items...)
	}
	return m
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		m.apply(m.keys.MapKeyToMenuAction(msg))
	}
	return m, nil
}

func (m *MenuModel) apply(action MenuAction) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = max(min(m.cursor+1, len(m.items)-1), 0)
	case MenuActionSelect:
		if len(m.items) > 0 {
			item := m.items[m.cursor]
			m.selected = &item
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
	}
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	greeting := "Pick a game"
	if m.player != "" {
		greeting = fmt.Sprintf("Welcome back, %s. Pick a game", m.player)
	}

	lines := []string{
		"",
		bannerStyle.Render("  A R C A D E  "),
		"",
		greeting,
	}
	idx := 0
	for _, sec := range m.sections {
		lines = append(lines, "", sectionStyle.Render(sec.heading))
		for _, item := range sec.items {
			if idx == m.cursor {
				lines = append(lines, cursorStyle.Render("> "+item.Title+" <"))
			} else {
				lines = append(lines, item.Title)
			}
			idx++
		}
	}
	if len(m.items) == 0 {
		lines = append(lines, "", hintStyle.Render("no games installed"))
	}
	lines = append(lines, "", hintStyle.Render("↑/↓ move · enter play · tab scores · q quit"))

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(centerText(line, m.width))
		b.WriteByte('\n')
	}
	return b.String()
}

// Selected returns the chosen item, or nil before a choice is made.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

func centerText(text string, width int) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}
