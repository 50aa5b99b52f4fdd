// Package spaceshooter implements SpaceShooter: move the ship, shoot falling
// enemies, and do not let one reach you.
package spaceshooter

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the leaderboard key of the game.
const ID = "spaceshooter"

// Entity sizes in logical units.
const (
	shipW, shipH     = 40.0, 20.0
	bulletW, bulletH = 5.0, 10.0
	enemyW, enemyH   = 40.0, 20.0
)

type enemy struct {
	rect  core.RectF
	speed float64
}

// Game implements the SpaceShooter game.
type Game struct {
	cfg    config.SpaceShooterConfig
	bounds core.RectF
	rng    *rand.Rand

	tick     uint64
	ship     core.RectF
	bullets  []core.RectF
	enemies  []enemy
	score    int
	gameOver bool
}

// New creates a new SpaceShooter game.
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
	return "SpaceShooter"
}

// Cadence returns one tick per frame.
func (g *Game) Cadence() core.Cadence {
	return core.Cadence{Kind: core.CadenceFrame}
}

// Reset places the ship at the bottom and scatters enemies near the top.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = config.Games().SpaceShooter
	g.bounds = cfg.Bounds()
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.gameOver = false

	g.ship = core.NewRectF(cfg.Width/2-shipW/2, cfg.Height-40, shipW, shipH)
	g.bullets = g.bullets[:0]
	g.enemies = make([]enemy, g.cfg.EnemyCount)
	for i := range g.enemies {
		g.enemies[i] = enemy{
			rect:  core.NewRectF(g.rng.Float64()*(cfg.Width-enemyW), g.rng.Float64()*100, enemyW, enemyH),
			speed: g.enemySpeed(),
		}
	}
}

func (g *Game) enemySpeed() float64 {
	return g.cfg.EnemyMinSpeed + g.rng.Float64()*(g.cfg.EnemyMaxSpeed-g.cfg.EnemyMinSpeed)
}

func (g *Game) respawn(e *enemy) {
	e.rect.X = g.rng.Float64() * (g.bounds.W - enemyW)
	e.rect.Y = -20
	e.speed = g.enemySpeed()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	if in.Has(core.ActionShoot) {
		g.bullets = append(g.bullets, core.NewRectF(g.ship.X+shipW/2-bulletW/2, g.ship.Y, bulletW, bulletH))
	}

	if in.Has(core.ActionLeft) {
		g.ship.X -= g.cfg.PlayerSpeed
	}
	if in.Has(core.ActionRight) {
		g.ship.X += g.cfg.PlayerSpeed
	}
	g.ship.X = core.ClampF(g.ship.X, 0, g.bounds.W-shipW)

	kept := g.bullets[:0]
	for _, b := range g.bullets {
		b.Y -= g.cfg.BulletSpeed
		if b.Bottom() >= 0 {
			kept = append(kept, b)
		}
	}
	g.bullets = kept

	for i := range g.enemies {
		e := &g.enemies[i]
		e.rect.Y += e.speed
		if e.rect.Y > g.bounds.H {
			g.respawn(e)
		}
	}

	g.resolveHits()

	for _, e := range g.enemies {
		if g.ship.Intersects(e.rect) {
			g.gameOver = true
			return core.StepResult{State: g.State(), Message: "Game Over"}
		}
	}
	return core.StepResult{State: g.State()}
}

// resolveHits removes each bullet that touches an enemy and respawns the
// enemy. A bullet hits at most one enemy.
func (g *Game) resolveHits() {
	kept := g.bullets[:0]
	for _, b := range g.bullets {
		hit := false
		for i := range g.enemies {
			if b.Intersects(g.enemies[i].rect) {
				g.respawn(&g.enemies[i])
				g.score++
				hit = true
				break
			}
		}
		if !hit {
			kept = append(kept, b)
		}
	}
	g.bullets = kept
}

// Render draws the ship, bullets, enemies and score.
func (g *Game) Render(dst *core.Canvas) {
	dst.FillRect(g.ship, core.ColorMagenta)
	for _, b := range g.bullets {
		dst.FillRect(b, core.ColorBrightYellow)
	}
	for _, e := range g.enemies {
		dst.FillRect(e.rect, core.ColorRed)
	}
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
