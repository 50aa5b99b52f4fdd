// Package tictactoe implements TicTacToe against a random opponent. Every
// won board scores a point; losing a board ends the run.
package tictactoe

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the leaderboard key of the game.
const ID = "tictactoe"

var (
	// ErrOccupied is returned for a move onto a taken cell.
	ErrOccupied = errors.New("tictactoe: cell occupied")
	// ErrOutOfRange is returned for a cell index outside 0..8.
	ErrOutOfRange = errors.New("tictactoe: cell out of range")
)

// Game implements TicTacToe.
type Game struct {
	rng    *rand.Rand
	board  Board
	score  int
	boards int
	lost   bool
}

// New creates a new game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "TicTacToe"
}

// Cadence returns one tick per move.
func (g *Game) Cadence() core.Cadence {
	return core.Cadence{Kind: core.CadenceTurn}
}

// Reset clears the board and the score.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.board = Board{}
	g.score = 0
	g.boards = 1
	g.lost = false
}

// Move places X on cell and lets O answer. It returns a status line.
func (g *Game) Move(cell int) (string, error) {
	if cell < 0 || cell >= len(g.board) {
		return "", fmt.Errorf("%w: %d", ErrOutOfRange, cell)
	}
	if g.board[cell] != Empty {
		return "", fmt.Errorf("%w: %d", ErrOccupied, cell)
	}

	g.board[cell] = X
	if g.board.Winner() == X {
		g.score++
		g.newBoard()
		return "X wins!", nil
	}
	if g.board.Full() {
		g.newBoard()
		return "It's a draw!", nil
	}

	free := g.board.Free()
	g.board[free[g.rng.Intn(len(free))]] = O
	if g.board.Winner() == O {
		g.lost = true
		return "O wins!", nil
	}
	if g.board.Full() {
		g.newBoard()
		return "It's a draw!", nil
	}
	return "", nil
}

func (g *Game) newBoard() {
	g.board = Board{}
	g.boards++
}

// Board returns the current board.
func (g *Game) Board() Board {
	return g.board
}

// Step plays each chosen cell until the run is lost.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	res := core.StepResult{}
	for _, cell := range in.Choices {
		if g.lost {
			break
		}
		msg, err := g.Move(cell)
		if err != nil {
			res.Err = err
			res.Message = "Pick an empty cell"
			continue
		}
		if msg != "" {
			res.Message = msg
		}
	}
	res.State = g.State()
	return res
}

// Render draws the grid with cell numbers on empty cells.
func (g *Game) Render(dst *core.Canvas) {
	const size, left, top = 100.0, 50.0, 50.0
	for i, m := range g.board {
		x := left + float64(i%3)*size
		y := top + float64(i/3)*size
		dst.FillRect(core.NewRectF(x+2, y+2, size-4, size-4), core.ColorGray)
		switch m {
		case X:
			dst.Text(x+size/2, y+size/2, "X", core.ColorBrightMagenta)
		case O:
			dst.Text(x+size/2, y+size/2, "O", core.ColorBrightCyan)
		default:
			dst.Text(x+size/2, y+size/2, fmt.Sprintf("%d", i+1), core.ColorWhite)
		}
	}
	dst.Text(20, 370, fmt.Sprintf("Wins: %d  Board: %d", g.score, g.boards), core.ColorBrightWhite)
}

// State returns the current game state. Losing a board ends the run.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.lost,
	}
}
