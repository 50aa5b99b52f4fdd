package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// Services is what the arcade needs from the portal. *portal.Portal
// implements it; a nil Services plays offline without leaderboards.
type Services interface {
	Recorder
	Leaderboards
}

type screenMode int

const (
	modeMenu screenMode = iota
	modeGame
	modeScores
)

// ArcadeModel manages the full flow: menu -> game -> menu, with the
// scoreboard one key away. It is the top-level model for `arcade menu` and
// for every SSH session.
type ArcadeModel struct {
	services Services
	config   core.RuntimeConfig
	userID   string
	player   string
	logger   *log.Logger

	width      int
	height     int
	mode       screenMode
	menu       MenuModel
	game       *GameModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewArcadeModel creates the arcade for userID. player is the name shown in
// the menu header.
func NewArcadeModel(services Services, userID, player string, cfg core.RuntimeConfig, width, height int, logger *log.Logger) ArcadeModel {
	if logger == nil {
		logger = log.Default()
	}
	var boards Leaderboards
	if services != nil {
		boards = services
	}
	return ArcadeModel{
		services:   services,
		config:     cfg,
		userID:     userID,
		player:     player,
		logger:     logger,
		width:      width,
		height:     height,
		menu:       NewMenuModel(player, width, height),
		scoreboard: NewScoreboardModel(boards, width, height),
	}
}

// Init starts the scoreboard listener.
func (m ArcadeModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), m.scoreboard.Init())
}

// Update routes messages to the active screen.
func (m ArcadeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		// Every screen tracks the size, visible or not.
		next, _ := m.menu.Update(msg)
		m.menu = next.(MenuModel)
		sb, _ := m.scoreboard.Update(msg)
		m.scoreboard = sb.(ScoreboardModel)
		if m.game != nil {
			g, _ := m.game.Update(msg)
			gm := g.(GameModel)
			m.game = &gm
		}
		return m, nil

	case viewMsg:
		sb, cmd := m.scoreboard.Update(msg)
		m.scoreboard = sb.(ScoreboardModel)
		return m, cmd

	case SubmittedMsg:
		if m.game == nil {
			return m, nil
		}
		return m.updateGame(msg)
	}

	switch m.mode {
	case modeGame:
		return m.updateGame(msg)
	case modeScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m ArcadeModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.menu = NewMenuModel(m.player, m.width, m.height)
		m.scoreboard.Open()
		m.mode = modeScores
		return m, nil

	case m.menu.Selected() != nil:
		selected := m.menu.Selected()
		m.menu = NewMenuModel(m.player, m.width, m.height)
		game, err := registry.Create(selected.GameID)
		if err != nil {
			m.logger.Error("cannot create game", "game", selected.GameID, "error", err)
			return m, nil
		}
		var recorder Recorder
		if m.services != nil {
			recorder = m.services
		}
		gm := NewGameModel(game, recorder, m.userID, m.config, m.width, m.height, m.logger)
		m.game = &gm
		m.mode = modeGame
		return m, gm.Init()
	}

	return m, cmd
}

func (m ArcadeModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	gm := next.(GameModel)
	m.game = &gm

	if gm.IsQuitting() {
		m.quitting = true
		return m, cmd
	}
	if gm.BackToMenu() && m.mode == modeGame {
		// Keep the model until its submission reports back.
		m.mode = modeMenu
	}
	return m, cmd
}

func (m ArcadeModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	m.scoreboard = next.(ScoreboardModel)

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		m.mode = modeMenu
	}
	return m, cmd
}

// View renders the active screen.
func (m ArcadeModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.mode {
	case modeGame:
		return m.game.View()
	case modeScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// Mode reports the active screen for tests.
func (m ArcadeModel) Mode() string {
	switch m.mode {
	case modeGame:
		return "game"
	case modeScores:
		return "scores"
	default:
		return "menu"
	}
}

// RunArcade runs the arcade in the local terminal.
func RunArcade(services Services, userID, player string, cfg core.RuntimeConfig, width, height int, logger *log.Logger) error {
	p := tea.NewProgram(
		NewArcadeModel(services, userID, player, cfg, width, height, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
