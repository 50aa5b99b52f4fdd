package tui

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/engine"
	"github.com/vovakirdan/arcade-portal/internal/games/quiz"
	"github.com/vovakirdan/arcade-portal/internal/games/snake"
	"github.com/vovakirdan/arcade-portal/internal/leaderboard"
)

func quietLogger() *log.Logger {
	l := log.New(os.Stderr)
	l.SetLevel(log.ErrorLevel)
	return l
}

type fakeRecorder struct {
	mu      sync.Mutex
	results []engine.Result
	users   []string
}

func (f *fakeRecorder) Record(_ context.Context, userID string, r engine.Result) leaderboard.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, r)
	f.users = append(f.users, userID)
	return leaderboard.OutcomeWritten
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = 7
	return cfg
}

// send feeds msg to m and returns the updated model and command.
func send(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func TestQuizSubmitsOnceWhenFinished(t *testing.T) {
	rec := &fakeRecorder{}
	m := NewGameModel(quiz.New(), rec, "u1", testConfig(), 80, 24, quietLogger())
	if cmd := m.Init(); cmd != nil {
		t.Fatal("turn-based game must not schedule ticks")
	}

	// Keys are 1-based; answers 2,2,1,0,1 are all correct.
	var last tea.Cmd
	for _, k := range []string{"3", "3", "2", "1", "2"} {
		var cmd tea.Cmd
		m, cmd = send(t, m, runeKey(k))
		if cmd != nil {
			if last != nil {
				t.Fatal("more than one submission command")
			}
			last = cmd
		}
	}
	if last == nil {
		t.Fatal("no submission after the last answer")
	}
	msg := last()
	sub, ok := msg.(SubmittedMsg)
	if !ok {
		t.Fatalf("submission produced %T", msg)
	}
	if sub.Outcome != leaderboard.OutcomeWritten {
		t.Errorf("Outcome = %v", sub.Outcome)
	}

	if len(rec.results) != 1 {
		t.Fatalf("recorded %d results, want 1", len(rec.results))
	}
	if rec.results[0].Score != 5 || rec.results[0].GameID != quiz.ID || rec.users[0] != "u1" {
		t.Errorf("recorded %+v for %q", rec.results[0], rec.users[0])
	}

	m, _ = send(t, m, sub)
	if view := m.View(); !strings.Contains(view, "New best score saved!") {
		t.Errorf("View() does not show the outcome:\n%s", view)
	}
}

func TestSnakeEndsFromTicks(t *testing.T) {
	rec := &fakeRecorder{}
	m := NewGameModel(snake.New(), rec, "u1", testConfig(), 80, 24, quietLogger())
	if cmd := m.Init(); cmd == nil {
		t.Fatal("real-time game must schedule a tick")
	}

	var submit tea.Cmd
	for i := 0; i < 100 && submit == nil; i++ {
		var cmd tea.Cmd
		m, cmd = send(t, m, TickMsg{Gen: m.tickGen})
		if m.Session().Status() == engine.StatusEnded {
			submit = cmd
		}
	}
	if submit == nil {
		t.Fatal("snake never hit the wall")
	}
	submit()
	if len(rec.results) != 1 || rec.results[0].Reason != engine.EndGameOver {
		t.Errorf("results = %+v, want one game over", rec.results)
	}
}

func TestStaleTicksAreIgnored(t *testing.T) {
	m := NewGameModel(snake.New(), nil, "", testConfig(), 80, 24, quietLogger())
	m.Init()

	m, cmd := send(t, m, TickMsg{Gen: m.tickGen + 1000})
	if cmd != nil {
		t.Error("stale tick rescheduled")
	}
	if got := m.Session().Ticks(); got != 0 {
		t.Errorf("Ticks() = %d after a stale tick", got)
	}
}

func TestPauseHoldsTicks(t *testing.T) {
	m := NewGameModel(snake.New(), nil, "", testConfig(), 80, 24, quietLogger())
	m.Init()

	m, _ = send(t, m, runeKey("p"))
	m, cmd := send(t, m, TickMsg{Gen: m.tickGen})
	if cmd == nil {
		t.Error("paused game stopped its tick chain")
	}
	if got := m.Session().Ticks(); got != 0 {
		t.Errorf("Ticks() = %d while paused", got)
	}

	m, _ = send(t, m, runeKey("p"))
	m, _ = send(t, m, TickMsg{Gen: m.tickGen})
	if got := m.Session().Ticks(); got != 1 {
		t.Errorf("Ticks() = %d after resuming", got)
	}
}

func TestBackStopsRunningSessionAndSubmits(t *testing.T) {
	rec := &fakeRecorder{}
	m := NewGameModel(snake.New(), rec, "u1", testConfig(), 80, 24, quietLogger())
	m.Init()
	m, _ = send(t, m, TickMsg{Gen: m.tickGen})

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Fatal("BackToMenu() = false after esc")
	}
	if cmd == nil {
		t.Fatal("stopping a running session must submit")
	}
	cmd()
	if len(rec.results) != 1 || rec.results[0].Reason != engine.EndStopped {
		t.Errorf("results = %+v, want one stopped run", rec.results)
	}

	// Leaving again reports nothing new.
	_, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Error("second esc produced a submission")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	m := NewGameModel(quiz.New(), nil, "", testConfig(), 80, 24, quietLogger())
	m.Init()
	for _, k := range []string{"1", "1", "1", "1", "1"} {
		m, _ = send(t, m, runeKey(k))
	}
	if m.Session().Status() != engine.StatusEnded {
		t.Fatalf("Status() = %v after five answers", m.Session().Status())
	}
	firstID := m.Session().ID()

	m, _ = send(t, m, runeKey("r"))
	if m.Session().Status() != engine.StatusRunning {
		t.Fatalf("Status() = %v after restart", m.Session().Status())
	}
	if m.Session().ID() == firstID {
		t.Error("restart reused the session ID")
	}
	if m.Session().Score() != 0 {
		t.Errorf("Score() = %d after restart", m.Session().Score())
	}
}
