// Package mazeescape implements MazeEscape: walk a fixed maze from the top
// left corner to the exit in as few moves as possible.
package mazeescape

import (
	"fmt"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the leaderboard key of the game.
const ID = "mazeescape"

// StepSize is both the player size and the distance of one move.
const StepSize = 20.0

// Walls is the fixed maze layout on the 400x400 surface.
var Walls = []core.RectF{
	{X: 60, Y: 0, W: 20, H: 100},
	{X: 100, Y: 80, W: 200, H: 20},
	{X: 200, Y: 200, W: 20, H: 100},
	{X: 0, Y: 300, W: 300, H: 20},
	{X: 300, Y: 100, W: 20, H: 200},
	{X: 150, Y: 150, W: 20, H: 100},
	{X: 50, Y: 200, W: 100, H: 20},
	{X: 250, Y: 250, W: 100, H: 20},
	{X: 100, Y: 350, W: 200, H: 20},
	{X: 350, Y: 50, W: 20, H: 300},
}

// Game implements the MazeEscape game.
type Game struct {
	cfg    config.MazeEscapeConfig
	bounds core.RectF

	player  core.RectF
	exit    core.RectF
	moves   int
	blocked int
	score   int
	escaped bool
}

// New creates a new MazeEscape game.
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
	return "MazeEscape"
}

// Cadence returns one tick per move.
func (g *Game) Cadence() core.Cadence {
	return core.Cadence{Kind: core.CadenceTurn}
}

// Reset puts the player back at the start.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = config.Games().MazeEscape
	g.bounds = cfg.Bounds()
	g.player = core.NewRectF(StepSize, StepSize, StepSize, StepSize)
	g.exit = core.NewRectF(cfg.Width-2*StepSize, cfg.Height-2*StepSize, StepSize, StepSize)
	g.moves = 0
	g.blocked = 0
	g.score = 0
	g.escaped = false
}

// Step applies one move intent. Moves into walls or off the surface are
// ignored and do not count.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.escaped {
		return core.StepResult{State: g.State()}
	}

	var dx, dy float64
	switch {
	case in.Has(core.ActionLeft):
		dx = -StepSize
	case in.Has(core.ActionRight):
		dx = StepSize
	case in.Has(core.ActionUp):
		dy = -StepSize
	case in.Has(core.ActionDown):
		dy = StepSize
	default:
		return core.StepResult{State: g.State()}
	}

	next := g.player.Translate(dx, dy)
	if !g.canOccupy(next) {
		g.blocked++
		return core.StepResult{State: g.State(), Message: "Blocked"}
	}
	g.player = next
	g.moves++

	if g.player.Intersects(g.exit) {
		g.escaped = true
		g.score = max(1, g.cfg.Par-g.moves+1)
		return core.StepResult{State: g.State(), Message: fmt.Sprintf("Escaped in %d moves!", g.moves)}
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) canOccupy(r core.RectF) bool {
	if r.X < 0 || r.Y < 0 || r.Right() > g.bounds.W || r.Bottom() > g.bounds.H {
		return false
	}
	for _, w := range Walls {
		if r.Intersects(w) {
			return false
		}
	}
	return true
}

// Moves returns the number of successful moves.
func (g *Game) Moves() int {
	return g.moves
}

// Render draws the maze, the exit and the player.
func (g *Game) Render(dst *core.Canvas) {
	for _, w := range Walls {
		dst.FillRect(w, core.ColorWhite)
	}
	dst.FillRect(g.exit, core.ColorBrightGreen)
	dst.FillRect(g.player, core.ColorMagenta)
	dst.Text(4, 380, fmt.Sprintf("Moves: %d", g.moves), core.ColorBrightWhite)
}

// State returns the current game state. Reaching the exit is a win.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.escaped,
		Won:      g.escaped,
	}
}
