package tictactoe

import (
	"errors"
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

func newGame(seed int64) *Game {
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	g := New()
	g.Reset(cfg)
	return g
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  Mark
	}{
		{"empty", Board{}, Empty},
		{"row", Board{X, X, X}, X},
		{"column", Board{O, X, 0, O, X, 0, O}, O},
		{"diagonal", Board{X, O, O, 0, X, 0, 0, 0, X}, X},
		{"anti-diagonal", Board{0, 0, O, 0, O, 0, O}, O},
		{"no line", Board{X, O, X, X, O, O, O, X, X}, Empty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.board.Winner(); got != tt.want {
				t.Errorf("Winner() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMoveValidation(t *testing.T) {
	g := newGame(1)

	if _, err := g.Move(9); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Move(9) = %v, want ErrOutOfRange", err)
	}

	if _, err := g.Move(4); err != nil {
		t.Fatalf("Move(4) failed: %v", err)
	}
	if _, err := g.Move(4); !errors.Is(err, ErrOccupied) {
		t.Errorf("second Move(4) = %v, want ErrOccupied", err)
	}
}

func TestOpponentAnswersEveryMove(t *testing.T) {
	g := newGame(3)
	if _, err := g.Move(0); err != nil {
		t.Fatalf("Move(0) failed: %v", err)
	}
	xs, os := 0, 0
	for _, m := range g.Board() {
		switch m {
		case X:
			xs++
		case O:
			os++
		}
	}
	if xs != 1 || os != 1 {
		t.Errorf("board has %d X and %d O, want 1 and 1", xs, os)
	}
}

func TestXWinScoresAndDealsNewBoard(t *testing.T) {
	g := newGame(5)
	g.board = Board{X, X, 0, O, O}

	msg, err := g.Move(2)
	if err != nil {
		t.Fatalf("Move(2) failed: %v", err)
	}
	if msg != "X wins!" || g.score != 1 {
		t.Errorf("msg=%q score=%d, want X wins and 1", msg, g.score)
	}
	if g.Board() != (Board{}) || g.boards != 2 {
		t.Errorf("Expected a fresh board, got %v (boards=%d)", g.Board(), g.boards)
	}
	if g.State().GameOver {
		t.Error("Winning a board must not end the run")
	}
}

func TestDrawDealsNewBoard(t *testing.T) {
	g := newGame(6)
	// X to play the last free cell without completing a line.
	g.board = Board{X, O, X, X, O, O, O, X, 0}

	msg, err := g.Move(8)
	if err != nil {
		t.Fatalf("Move(8) failed: %v", err)
	}
	if msg != "It's a draw!" {
		t.Errorf("msg = %q", msg)
	}
	if g.score != 0 || g.State().GameOver || g.Board() != (Board{}) {
		t.Errorf("Draw should only deal a new board: score=%d board=%v", g.score, g.Board())
	}
}

func TestOWinEndsRun(t *testing.T) {
	g := newGame(7)
	// After X takes 8 the only free cell is 6, which completes 2-4-6 for O.
	g.board = Board{X, X, O, X, O, X, Empty, O, Empty}

	msg, err := g.Move(8)
	if err != nil {
		t.Fatalf("Move(8) failed: %v", err)
	}
	if msg != "O wins!" {
		t.Errorf("msg = %q, want O wins", msg)
	}
	if !g.State().GameOver {
		t.Error("Losing a board should end the run")
	}

	in := core.NewInputFrame()
	in.Choose(0)
	if res := g.Step(in); res.Err != nil || res.Message != "" {
		t.Errorf("Moves after the run ended should be ignored, got %+v", res)
	}
}

func TestStepReportsRejectedMove(t *testing.T) {
	g := newGame(8)
	g.board[0] = O

	in := core.NewInputFrame()
	in.Choose(0)
	res := g.Step(in)
	if !errors.Is(res.Err, ErrOccupied) {
		t.Errorf("Err = %v, want ErrOccupied", res.Err)
	}
	if res.Message != "Pick an empty cell" {
		t.Errorf("Message = %q", res.Message)
	}
}
