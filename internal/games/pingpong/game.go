// Package pingpong implements a single-paddle Pingpong game: keep the ball in
// play, one point per paddle hit.
package pingpong

import (
	"fmt"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the leaderboard key of the game.
const ID = "pingpong"

// Game implements the Pingpong game.
type Game struct {
	cfg    config.PingpongConfig
	bounds core.RectF

	tick     uint64
	ball     core.Circle
	vx, vy   float64
	paddle   core.RectF
	score    int
	gameOver bool
}

// New creates a new Pingpong game.
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
	return "Pingpong"
}

// Cadence returns one tick per frame.
func (g *Game) Cadence() core.Cadence {
	return core.Cadence{Kind: core.CadenceFrame}
}

// Reset serves the ball from the center and recenters the paddle.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = config.Games().Pingpong
	g.bounds = cfg.Bounds()
	g.tick = 0
	g.score = 0
	g.gameOver = false

	g.ball = core.Circle{X: cfg.Width / 2, Y: cfg.Height / 2, R: g.cfg.BallRadius}
	g.vx = g.cfg.BallSpeed
	g.vy = -g.cfg.BallSpeed

	pw := cfg.Width * g.cfg.PaddleWidthRatio
	g.paddle = core.NewRectF((cfg.Width-pw)/2, cfg.Height-g.cfg.PaddleOffset, pw, g.cfg.PaddleHeight)
}

// Step moves the paddle, then the ball, and resolves collisions.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	g.movePaddle(in)
	g.moveBall()

	if g.gameOver {
		return core.StepResult{State: g.State(), Message: "Game Over"}
	}
	return core.StepResult{State: g.State()}
}

// movePaddle centers the paddle on the pointer when one is present,
// otherwise applies held left/right intents.
func (g *Game) movePaddle(in core.InputFrame) {
	switch {
	case in.HasPointer:
		g.paddle.X = in.PointerX - g.paddle.W/2
	case in.Has(core.ActionLeft):
		g.paddle.X -= g.cfg.PaddleSpeed
	case in.Has(core.ActionRight):
		g.paddle.X += g.cfg.PaddleSpeed
	}
	g.paddle.X = core.ClampF(g.paddle.X, 0, g.bounds.W-g.paddle.W)
}

func (g *Game) moveBall() {
	g.ball.X += g.vx
	g.ball.Y += g.vy

	// Walls
	if g.ball.X+g.ball.R > g.bounds.W || g.ball.X-g.ball.R < 0 {
		g.vx = -g.vx
	}
	if g.ball.Y-g.ball.R < 0 {
		g.vy = -g.vy
	}

	// Only a descending ball bounces, so one contact scores once.
	if g.vy > 0 && g.ball.IntersectsRect(g.paddle) &&
		g.ball.X > g.paddle.X && g.ball.X < g.paddle.Right() {
		g.vy = -g.vy
		g.score++
	}

	if g.ball.Y-g.ball.R > g.bounds.H {
		g.gameOver = true
	}
}

// Render draws the ball, the paddle and the score.
func (g *Game) Render(dst *core.Canvas) {
	dst.FillArc(g.ball, core.ColorWhite)
	dst.FillRect(g.paddle, core.ColorMagenta)
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
