// Package avoidenemy implements AvoidEnemy: dodge falling blocks for as long
// as possible, one point per second survived.
package avoidenemy

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the leaderboard key of the game.
const ID = "avoidenemy"

const enemySize = 20.0

type enemy struct {
	rect  core.RectF
	speed float64
}

// Game implements the AvoidEnemy game.
type Game struct {
	cfg      config.AvoidEnemyConfig
	bounds   core.RectF
	rng      *rand.Rand
	tickRate int

	tick     uint64
	player   core.RectF
	enemies  []enemy
	score    int
	gameOver bool
}

// New creates a new AvoidEnemy game.
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
	return "AvoidEnemy"
}

// Cadence returns one tick per frame.
func (g *Game) Cadence() core.Cadence {
	return core.Cadence{Kind: core.CadenceFrame}
}

// Reset places the player near the bottom and enemies in the upper half.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = config.Games().AvoidEnemy
	g.bounds = cfg.Bounds()
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.tick = 0
	g.score = 0
	g.gameOver = false

	g.player = core.NewRectF(cfg.Width/2, cfg.Height-30, g.cfg.PlayerSize, g.cfg.PlayerSize)
	g.enemies = make([]enemy, g.cfg.EnemyCount)
	for i := range g.enemies {
		g.enemies[i] = enemy{
			rect:  core.NewRectF(g.rng.Float64()*(cfg.Width-enemySize), g.rng.Float64()*cfg.Height/2, enemySize, enemySize),
			speed: g.cfg.EnemyMinSpeed + g.rng.Float64()*(g.cfg.EnemyMaxSpeed-g.cfg.EnemyMinSpeed),
		}
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	var dx, dy float64
	if in.Has(core.ActionLeft) {
		dx -= g.cfg.PlayerSpeed
	}
	if in.Has(core.ActionRight) {
		dx += g.cfg.PlayerSpeed
	}
	if in.Has(core.ActionUp) {
		dy -= g.cfg.PlayerSpeed
	}
	if in.Has(core.ActionDown) {
		dy += g.cfg.PlayerSpeed
	}
	g.player = g.player.Translate(dx, dy).ClampInto(g.bounds)

	for i := range g.enemies {
		e := &g.enemies[i]
		e.rect.Y += e.speed
		if e.rect.Y > g.bounds.H {
			e.rect.Y = -enemySize
			e.rect.X = g.rng.Float64() * (g.bounds.W - enemySize)
		}
	}

	for _, e := range g.enemies {
		if g.player.Intersects(e.rect) {
			g.gameOver = true
			return core.StepResult{State: g.State(), Message: "Game Over"}
		}
	}

	if g.tick%uint64(g.tickRate) == 0 {
		g.score++
	}
	return core.StepResult{State: g.State()}
}

// Render draws the player, enemies and the survival time.
func (g *Game) Render(dst *core.Canvas) {
	dst.FillRect(g.player, core.ColorMagenta)
	for _, e := range g.enemies {
		dst.FillRect(e.rect, core.ColorWhite)
	}
	dst.Text(4, 4, fmt.Sprintf("Time: %ds", g.score), core.ColorBrightWhite)
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
