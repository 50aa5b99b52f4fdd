// Package flappybox implements FlappyBox: a falling box that jumps through
// gaps in scrolling pipes.
package flappybox

import (
	"fmt"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the leaderboard key of the game.
const ID = "flappybox"

// Game implements the FlappyBox game logic.
type Game struct {
	cfg    config.FlappyBoxConfig
	bounds core.RectF

	boxY     float64 // Top of the box
	boxVel   float64 // Vertical velocity, negative is up
	pipes    *PipeManager
	score    int
	gameOver bool
	tick     uint64
}

// New creates a new FlappyBox game.
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
	return "FlappyBox"
}

// Cadence returns one tick per frame.
func (g *Game) Cadence() core.Cadence {
	return core.Cadence{Kind: core.CadenceFrame}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = config.Games().FlappyBox
	g.bounds = cfg.Bounds()
	g.boxY = cfg.Height / 2
	g.boxVel = 0
	g.score = 0
	g.gameOver = false
	g.tick = 0
	g.pipes = NewPipeManager(g.cfg, cfg.Seed, cfg.Width, cfg.Height)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	if in.Has(core.ActionJump) {
		g.boxVel = g.cfg.JumpImpulse
	}

	g.score += g.pipes.Update(g.cfg.BoxX)

	g.boxVel += g.cfg.Gravity
	g.boxY += g.boxVel

	switch {
	case g.boxY+g.cfg.BoxSize > g.bounds.H:
		// Floor
		g.boxY = g.bounds.H - g.cfg.BoxSize
		g.boxVel = 0
		g.gameOver = true
	case g.boxY < 0:
		// Ceiling clamps without ending the run.
		g.boxY = 0
		g.boxVel = 0
	}

	if g.pipes.Collides(g.boxRect()) {
		g.gameOver = true
	}

	if g.gameOver {
		return core.StepResult{State: g.State(), Message: "Game Over"}
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) boxRect() core.RectF {
	return core.NewRectF(g.cfg.BoxX, g.boxY, g.cfg.BoxSize, g.cfg.BoxSize)
}

// Render draws the pipes, the box and the score.
func (g *Game) Render(dst *core.Canvas) {
	for _, p := range g.pipes.Pipes() {
		dst.FillRect(p.TopRect(g.cfg), core.ColorGreen)
		dst.FillRect(p.BottomRect(g.cfg, g.bounds.H), core.ColorGreen)
	}
	dst.FillRect(g.boxRect(), core.ColorMagenta)
	dst.Text(4, 4, fmt.Sprintf("Score: %d", g.score), core.ColorBrightWhite)
	if g.gameOver {
		dst.Text(g.bounds.W/2-36, g.bounds.H/2, "GAME OVER", core.ColorBrightRed)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
	}
}
