// Package guesscolor implements GuessTheColor: pick which of the swatches
// matches the hex code shown.
package guesscolor

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the leaderboard key of the game.
const ID = "guesscolor"

// Game implements GuessTheColor.
type Game struct {
	cfg config.GuessColorConfig
	rng *rand.Rand

	options []string
	target  int
	lives   int
	score   int
	rounds  int
	over    bool
}

// New creates a new GuessTheColor game.
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
	return "GuessTheColor"
}

// Cadence returns one tick per guess.
func (g *Game) Cadence() core.Cadence {
	return core.Cadence{Kind: core.CadenceTurn}
}

// Reset restores lives and deals the first round.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = config.Games().GuessColor
	if g.cfg.Options < 2 {
		g.cfg.Options = 2
	}
	if g.cfg.Lives < 1 {
		g.cfg.Lives = 1
	}
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.lives = g.cfg.Lives
	g.score = 0
	g.rounds = 0
	g.over = false
	g.deal()
}

// deal draws a fresh set of distinct colors and picks the target.
func (g *Game) deal() {
	g.options = g.options[:0]
	seen := make(map[string]bool, g.cfg.Options)
	for len(g.options) < g.cfg.Options {
		c := fmt.Sprintf("#%02x%02x%02x", g.rng.Intn(256), g.rng.Intn(256), g.rng.Intn(256))
		if seen[c] {
			continue
		}
		seen[c] = true
		g.options = append(g.options, c)
	}
	g.target = g.rng.Intn(len(g.options))
	g.rounds++
}

// Step scores each guess. A correct guess deals a new round; a wrong one
// costs a life.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var msg string
	for _, choice := range in.Choices {
		if g.over {
			break
		}
		if choice < 0 || choice >= len(g.options) {
			msg = "Invalid choice"
			continue
		}
		if choice == g.target {
			g.score++
			msg = "Correct!"
			g.deal()
			continue
		}
		g.lives--
		msg = "Try Again!"
		if g.lives <= 0 {
			g.over = true
			msg = fmt.Sprintf("Out of lives! It was %s", g.options[g.target])
		}
	}
	return core.StepResult{State: g.State(), Message: msg}
}

// Target returns the hex code the player must find.
func (g *Game) Target() string {
	return g.options[g.target]
}

// Options returns the swatches of the current round.
func (g *Game) Options() []string {
	return append([]string(nil), g.options...)
}

// Lives returns the remaining lives.
func (g *Game) Lives() int {
	return g.lives
}

// Render draws the target code and the numbered swatches.
func (g *Game) Render(dst *core.Canvas) {
	dst.Text(20, 20, "Which color is "+g.Target()+"?", core.ColorBrightWhite)
	palette := []core.Color{core.ColorRed, core.ColorGreen, core.ColorBlue, core.ColorYellow, core.ColorMagenta, core.ColorCyan}
	for i, opt := range g.options {
		y := 80 + float64(i)*60
		dst.FillRect(core.NewRectF(40, y, 40, 40), palette[i%len(palette)])
		dst.Text(100, y+14, fmt.Sprintf("%d) %s", i+1, opt), core.ColorWhite)
	}
	dst.Text(20, 370, fmt.Sprintf("Score: %d  Lives: %d", g.score, g.lives), core.ColorBrightWhite)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.over,
	}
}
