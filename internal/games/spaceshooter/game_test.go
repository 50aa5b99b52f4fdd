package spaceshooter

import (
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

func TestReset(t *testing.T) {
	g := newGame(1)
	if g.ship != core.NewRectF(180, 360, 40, 20) {
		t.Errorf("ship = %+v", g.ship)
	}
	if len(g.enemies) != 5 {
		t.Fatalf("Expected 5 enemies, got %d", len(g.enemies))
	}
	for _, e := range g.enemies {
		if e.speed < 2 || e.speed > 4 {
			t.Errorf("enemy speed %v outside [2,4]", e.speed)
		}
		if e.rect.Y < 0 || e.rect.Y > 100 {
			t.Errorf("enemy y %v outside [0,100]", e.rect.Y)
		}
	}
}

func TestShipMovesAndClamps(t *testing.T) {
	g := newGame(1)
	g.enemies = nil

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	for i := 0; i < 100; i++ {
		g.Step(in)
	}
	if g.ship.X != 0 {
		t.Errorf("ship.X = %v, want clamped to 0", g.ship.X)
	}
}

func TestBulletHitScoresAndRespawns(t *testing.T) {
	g := newGame(2)
	g.enemies = []enemy{{rect: core.NewRectF(180, 300, enemyW, enemyH), speed: 0}}

	in := core.NewInputFrame()
	in.Set(core.ActionShoot)
	g.Step(in)

	empty := core.NewInputFrame()
	for i := 0; i < 10 && g.score == 0; i++ {
		g.Step(empty)
	}
	if g.score != 1 {
		t.Fatalf("score = %d, want 1", g.score)
	}
	if len(g.bullets) != 0 {
		t.Errorf("bullet not consumed, %d left", len(g.bullets))
	}
	if g.enemies[0].rect.Y != -20 {
		t.Errorf("enemy not respawned, y=%v", g.enemies[0].rect.Y)
	}
}

func TestBulletsLeaveScreen(t *testing.T) {
	g := newGame(3)
	g.enemies = nil

	in := core.NewInputFrame()
	in.Set(core.ActionShoot)
	g.Step(in)
	empty := core.NewInputFrame()
	for i := 0; i < 100; i++ {
		g.Step(empty)
	}
	if len(g.bullets) != 0 {
		t.Errorf("Expected off-screen bullets to be dropped, %d left", len(g.bullets))
	}
}

func TestEnemyReachingShipEndsGame(t *testing.T) {
	g := newGame(4)
	g.enemies = []enemy{{rect: core.NewRectF(180, 340, enemyW, enemyH), speed: 2}}

	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Error("Enemy touching the ship should end the game")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() (int, uint64, float64) {
		g := newGame(99)
		for i := 0; i < 400 && !g.gameOver; i++ {
			in := core.NewInputFrame()
			if i%5 == 0 {
				in.Set(core.ActionShoot)
			}
			if (i/40)%2 == 0 {
				in.Set(core.ActionLeft)
			} else {
				in.Set(core.ActionRight)
			}
			g.Step(in)
		}
		return g.score, g.tick, g.enemies[0].rect.X
	}
	s1, t1, x1 := run()
	s2, t2, x2 := run()
	if s1 != s2 || t1 != t2 || x1 != x2 {
		t.Errorf("Runs differ: (%d,%d,%v) vs (%d,%d,%v)", s1, t1, x1, s2, t2, x2)
	}
}
