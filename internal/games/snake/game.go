// Package snake implements grid Snake: eat food to grow, avoid the walls and
// your own tail.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the leaderboard key of the game.
const ID = "snake"

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Point is a grid cell.
type Point struct {
	X, Y int
}

// Game implements the Snake game.
type Game struct {
	cfg      config.SnakeConfig
	rng      *rand.Rand
	cellSize float64

	tick      uint64
	snake     []Point // Head at index 0
	direction Direction
	food      Point
	score     int
	gameOver  bool
}

// New creates a new Snake game.
func New() *Game {
	return &Game{cfg: config.Games().Snake}
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
	return "Snake"
}

// Cadence returns a fixed step delay.
func (g *Game) Cadence() core.Cadence {
	return core.Cadence{Kind: core.CadenceDelay, Delay: g.cfg.StepDelay}
}

// Reset places a one-cell snake in the middle heading right.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = config.Games().Snake
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.cellSize = min(cfg.Width, cfg.Height) / float64(g.cfg.GridSize)
	g.tick = 0
	g.score = 0
	g.gameOver = false

	mid := g.cfg.GridSize / 2
	g.snake = []Point{{X: mid, Y: mid}}
	g.direction = DirRight
	g.spawnFood()
}

// spawnFood places food on a random free cell.
func (g *Game) spawnFood() {
	var free []Point
	for y := 0; y < g.cfg.GridSize; y++ {
		for x := 0; x < g.cfg.GridSize; x++ {
			p := Point{X: x, Y: y}
			if !g.isSnakeAt(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		g.food = Point{X: -1, Y: -1}
		return
	}
	g.food = free[g.rng.Intn(len(free))]
}

func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Step turns on a direction intent and advances one cell.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	g.turn(in)
	g.move()

	if g.gameOver {
		return core.StepResult{State: g.State(), Message: "Game Over"}
	}
	return core.StepResult{State: g.State()}
}

// turn applies the first direction intent that does not reverse the snake.
func (g *Game) turn(in core.InputFrame) {
	for _, c := range []struct {
		action core.Action
		dir    Direction
	}{
		{core.ActionUp, DirUp},
		{core.ActionDown, DirDown},
		{core.ActionLeft, DirLeft},
		{core.ActionRight, DirRight},
	} {
		if in.Has(c.action) && !isOpposite(c.dir, g.direction) && c.dir != g.direction {
			g.direction = c.dir
			return
		}
	}
}

func isOpposite(d1, d2 Direction) bool {
	return (d1 == DirUp && d2 == DirDown) ||
		(d1 == DirDown && d2 == DirUp) ||
		(d1 == DirLeft && d2 == DirRight) ||
		(d1 == DirRight && d2 == DirLeft)
}

func (g *Game) move() {
	head := g.snake[0]
	switch g.direction {
	case DirUp:
		head.Y--
	case DirDown:
		head.Y++
	case DirLeft:
		head.X--
	case DirRight:
		head.X++
	}

	if head.X < 0 || head.X >= g.cfg.GridSize || head.Y < 0 || head.Y >= g.cfg.GridSize {
		g.gameOver = true
		return
	}
	if g.isSnakeAt(head) {
		g.gameOver = true
		return
	}

	g.snake = append([]Point{head}, g.snake...)
	if head == g.food {
		g.score++
		g.spawnFood()
		return
	}
	g.snake = g.snake[:len(g.snake)-1]
}

// Render draws the snake, the food and the score.
func (g *Game) Render(dst *core.Canvas) {
	for i, seg := range g.snake {
		color := core.ColorMagenta
		if i == 0 {
			color = core.ColorBrightMagenta
		}
		dst.FillRect(g.cell(seg), color)
	}
	if g.food.X >= 0 {
		dst.FillRect(g.cell(g.food), core.ColorBrightGreen)
	}
	dst.Text(4, 4, fmt.Sprintf("Score: %d", g.score), core.ColorBrightWhite)
	if g.gameOver {
		dst.Text(160, 190, "GAME OVER", core.ColorBrightRed)
	}
}

func (g *Game) cell(p Point) core.RectF {
	return core.NewRectF(float64(p.X)*g.cellSize, float64(p.Y)*g.cellSize, g.cellSize, g.cellSize)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}
