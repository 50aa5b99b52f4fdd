package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/engine"
	"github.com/vovakirdan/arcade-portal/internal/input"
	"github.com/vovakirdan/arcade-portal/internal/leaderboard"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// statusLines is the number of rows below the playfield.
const statusLines = 2

// submitTimeout bounds one score submission.
const submitTimeout = 10 * time.Second

// Recorder submits finished sessions. *portal.Portal implements it.
type Recorder interface {
	Record(ctx context.Context, userID string, r engine.Result) leaderboard.Outcome
}

// SubmittedMsg reports the outcome of a score submission.
type SubmittedMsg struct {
	SessionID string
	Outcome   leaderboard.Outcome
}

// endBox receives the session result from the end handler.
type endBox struct {
	mu     sync.Mutex
	result *engine.Result
}

func (b *endBox) put(r engine.Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.result = &r
}

func (b *endBox) take() (engine.Result, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.result == nil {
		return engine.Result{}, false
	}
	r := *b.result
	b.result = nil
	return r, true
}

// GameModel hosts one game session. Ticks come from Bubble Tea timers and
// are fed to the session through a StepScheduler; turn-based games tick on
// every key press instead.
type GameModel struct {
	game     registry.Game
	session  *engine.Session
	sched    *engine.StepScheduler
	adapter  *input.Adapter
	keys     *KeyMapper
	screen   *core.Screen
	recorder Recorder
	userID   string
	logger   *log.Logger
	interval time.Duration
	ends     *endBox

	width      int
	height     int
	tickGen    int
	paused     bool
	notice     string
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. recorder may be nil, in which case
// scores are not submitted.
func NewGameModel(game registry.Game, recorder Recorder, userID string, cfg core.RuntimeConfig, width, height int, logger *log.Logger) GameModel {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		cfg.Width, cfg.Height = core.LogicalWidth, core.LogicalHeight
	}

	m := GameModel{
		game:     game,
		sched:    engine.NewStepScheduler(),
		adapter:  input.NewAdapter(input.WithBindings(TerminalBindings()), input.WithoutHeldKeys(), input.WithLogger(logger)),
		keys:     NewKeyMapper(),
		screen:   core.NewScreen(width, max(height-statusLines, 1)),
		recorder: recorder,
		userID:   userID,
		logger:   logger.With("component", "tui"),
		interval: game.Cadence().Interval(cfg.TickRate),
		ends:     &endBox{},
		tickGen:  newTickChain(),
		width:    width,
		height:   height,
	}
	m.session = engine.NewSession(game, m.sched,
		engine.WithConfig(cfg),
		engine.WithLogger(logger),
		engine.WithEndHandler(m.ends.put),
	)
	return m
}

// Init starts the session.
func (m GameModel) Init() tea.Cmd {
	m.session.Start()
	return m.nextTick()
}

func (m GameModel) turnBased() bool {
	return m.game.Cadence().Kind == core.CadenceTurn
}

func (m GameModel) nextTick() tea.Cmd {
	if m.turnBased() || m.interval <= 0 {
		return nil
	}
	return tickCmd(m.interval, m.tickGen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionPress {
			m.adapter.HandlePointer(float64(msg.X)+0.5, float64(m.width))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-statusLines, 1))
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case SubmittedMsg:
		m.notice = outcomeNotice(msg.Outcome)
		return m, nil
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapHostKey(msg) {
	case HostQuit:
		m.quitting = true
		return m, tea.Sequence(m.stop(), tea.Quit)
	case HostBack:
		m.backToMenu = true
		return m, m.stop()
	case HostRestart:
		if m.session.Status() == engine.StatusEnded {
			m.session.Start()
			m.notice = ""
			m.paused = false
			m.tickGen = newTickChain()
			return m, m.nextTick()
		}
		return m, nil
	case HostPause:
		if !m.turnBased() && m.session.Status() == engine.StatusRunning {
			m.paused = !m.paused
		}
		return m, nil
	case HostScreenshot:
		m.saveScreenshot()
		return m, nil
	}

	if idx, ok := m.keys.MapChoice(msg); ok {
		m.adapter.HandleChoice(idx)
	} else if res := m.adapter.HandleKey(m.keys.KeyEvent(msg)); res.Action == core.ActionNone {
		return m, nil
	}

	if m.turnBased() {
		m.session.Dispatch(m.adapter.Frame())
		return m, m.collectEnd()
	}
	return m, nil
}

func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.tickGen || m.session.Status() != engine.StatusRunning {
		return m, nil
	}
	if m.paused {
		return m, m.nextTick()
	}

	m.session.Push(m.adapter.Frame())
	m.sched.Fire()

	if cmd := m.collectEnd(); cmd != nil {
		return m, cmd
	}
	return m, m.nextTick()
}

// stop ends a running session and returns the submission for it.
func (m GameModel) stop() tea.Cmd {
	m.session.Stop()
	return m.collectEnd()
}

// collectEnd returns a submission command when the session just ended.
func (m GameModel) collectEnd() tea.Cmd {
	r, ok := m.ends.take()
	if !ok {
		return nil
	}
	m.logger.Info("game over", "game", r.GameID, "session", r.SessionID, "score", r.Score, "reason", r.Reason)
	if m.recorder == nil {
		return nil
	}
	recorder, userID := m.recorder, m.userID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		return SubmittedMsg{SessionID: r.SessionID, Outcome: recorder.Record(ctx, userID, r)}
	}
}

func outcomeNotice(o leaderboard.Outcome) string {
	switch o {
	case leaderboard.OutcomeWritten:
		return "New best score saved!"
	case leaderboard.OutcomeNotHigher:
		return "Your best score stands."
	case leaderboard.OutcomeSkipped:
		return "Set a username to join the leaderboard."
	default:
		return "Score could not be saved."
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	Rasterize(m.session.Snapshot().Canvas, m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
	}
}

// View renders the playfield and the status lines.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	frame := m.session.Snapshot()
	Rasterize(frame.Canvas, m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")

	status := fmt.Sprintf("%s  Score: %d", m.game.Title(), frame.Score)
	if frame.Message != "" {
		status += "  " + frame.Message
	}
	if m.paused {
		status += "  [paused]"
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")

	switch {
	case frame.Status == engine.StatusEnded && m.notice != "":
		b.WriteString(noticeStyle.Render(m.notice) + hintStyle.Render("  r: restart  esc: menu  q: quit"))
	case frame.Status == engine.StatusEnded:
		b.WriteString(hintStyle.Render("Game over!  r: restart  esc: menu  q: quit"))
	case m.turnBased():
		b.WriteString(hintStyle.Render("1-9: choose  arrows: move  esc: menu  q: quit"))
	default:
		b.WriteString(hintStyle.Render("arrows/wasd: move  space: jump  f/x: shoot  p: pause  esc: menu  q: quit"))
	}
	return b.String()
}

// Session returns the hosted session.
func (m GameModel) Session() *engine.Session {
	return m.session
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the terminal until the user quits.
func Run(game registry.Game, recorder Recorder, userID string, cfg core.RuntimeConfig, width, height int, logger *log.Logger) error {
	model := NewGameModel(game, recorder, userID, cfg, width, height, logger)

	p := tea.NewProgram(
		singleGame{model},
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

// singleGame quits where the arcade would return to its menu.
type singleGame struct {
	GameModel
}

func (s singleGame) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := s.GameModel.Update(msg)
	s.GameModel = next.(GameModel)
	if s.BackToMenu() && !s.quitting {
		s.quitting = true
		return s, tea.Sequence(cmd, tea.Quit)
	}
	return s, cmd
}
