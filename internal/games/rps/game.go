// Package rps implements Rock Paper Scissors against a random opponent.
// Wins build a streak; the first loss ends it.
package rps

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the leaderboard key of the game.
const ID = "rps"

// ErrInvalidChoice is returned for a choice outside rock, paper, scissors.
var ErrInvalidChoice = errors.New("rps: invalid choice")

// Choice is a hand.
type Choice int

const (
	Rock Choice = iota
	Paper
	Scissors
)

func (c Choice) String() string {
	switch c {
	case Rock:
		return "Rock"
	case Paper:
		return "Paper"
	case Scissors:
		return "Scissors"
	default:
		return "Unknown"
	}
}

// Beats reports whether c wins against other.
func (c Choice) Beats(other Choice) bool {
	return (c == Rock && other == Scissors) ||
		(c == Paper && other == Rock) ||
		(c == Scissors && other == Paper)
}

// Outcome is the result of one round.
type Outcome int

const (
	Tie Outcome = iota
	Win
	Loss
)

// Round records one played round.
type Round struct {
	Player   Choice
	Opponent Choice
	Outcome  Outcome
}

// Game implements Rock Paper Scissors.
type Game struct {
	rng   *rand.Rand
	score int
	last  *Round
	lost  bool
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
	return "RockPaperScissors"
}

// Cadence returns one tick per throw.
func (g *Game) Cadence() core.Cadence {
	return core.Cadence{Kind: core.CadenceTurn}
}

// Reset clears the streak.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.score = 0
	g.last = nil
	g.lost = false
}

// Play throws choice against a random opponent.
func (g *Game) Play(choice int) (Round, error) {
	if choice < int(Rock) || choice > int(Scissors) {
		return Round{}, fmt.Errorf("%w: %d", ErrInvalidChoice, choice)
	}
	r := Round{
		Player:   Choice(choice),
		Opponent: Choice(g.rng.Intn(3)),
	}
	switch {
	case r.Player == r.Opponent:
		r.Outcome = Tie
	case r.Player.Beats(r.Opponent):
		r.Outcome = Win
		g.score++
	default:
		r.Outcome = Loss
		g.lost = true
	}
	g.last = &r
	return r, nil
}

// Step plays each chosen hand until the streak is lost.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	res := core.StepResult{}
	for _, choice := range in.Choices {
		if g.lost {
			break
		}
		r, err := g.Play(choice)
		if err != nil {
			res.Err = err
			res.Message = "Invalid choice"
			continue
		}
		res.Message = r.message()
	}
	res.State = g.State()
	return res
}

func (r Round) message() string {
	switch r.Outcome {
	case Win:
		return fmt.Sprintf("%s beats %s. You win!", r.Player, r.Opponent)
	case Loss:
		return fmt.Sprintf("%s beats %s. You lose!", r.Opponent, r.Player)
	default:
		return fmt.Sprintf("Both threw %s. It's a tie!", r.Player)
	}
}

// Render draws the choices and the last round.
func (g *Game) Render(dst *core.Canvas) {
	dst.Text(20, 20, "1) Rock   2) Paper   3) Scissors", core.ColorBrightWhite)
	if g.last != nil {
		dst.Text(20, 120, "You: "+g.last.Player.String(), core.ColorMagenta)
		dst.Text(20, 150, "Computer: "+g.last.Opponent.String(), core.ColorCyan)
		dst.Text(20, 200, g.last.message(), core.ColorBrightYellow)
	}
	dst.Text(20, 370, fmt.Sprintf("Streak: %d", g.score), core.ColorBrightWhite)
}

// State returns the current game state. A loss ends the run.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.lost,
	}
}
