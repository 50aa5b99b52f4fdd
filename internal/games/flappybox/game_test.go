package flappybox

import (
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
)

func newGame(seed int64) *Game {
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	g := New()
	g.Reset(cfg)
	return g
}

func TestGameDeterminism(t *testing.T) {
	run := func() (core.GameState, uint64, float64) {
		g := newGame(12345)
		var state core.GameState
		for i := 0; i < 600; i++ {
			in := core.NewInputFrame()
			if i%20 == 0 {
				in.Set(core.ActionJump)
			}
			state = g.Step(in).State
			if state.GameOver {
				break
			}
		}
		return state, g.tick, g.boxY
	}

	s1, t1, y1 := run()
	s2, t2, y2 := run()
	if s1 != s2 || t1 != t2 || y1 != y2 {
		t.Errorf("Runs differ: (%+v,%d,%v) vs (%+v,%d,%v)", s1, t1, y1, s2, t2, y2)
	}
}

func TestFallingHitsFloor(t *testing.T) {
	g := newGame(1)
	// Keep pipes out of the way.
	g.pipes.pipes = nil

	var res core.StepResult
	for i := 0; i < 200 && !res.State.GameOver; i++ {
		res = g.Step(core.NewInputFrame())
		g.pipes.pipes = nil
	}
	if !res.State.GameOver {
		t.Fatal("Box should hit the floor without jumping")
	}
	if g.boxY != g.bounds.H-g.cfg.BoxSize {
		t.Errorf("boxY = %v, want resting on the floor", g.boxY)
	}
}

func TestCeilingClamps(t *testing.T) {
	g := newGame(1)
	g.pipes.pipes = nil
	g.boxY = 2

	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	res := g.Step(in)
	if res.State.GameOver {
		t.Fatal("Ceiling should not end the game")
	}
	if g.boxY != 0 || g.boxVel != 0 {
		t.Errorf("box = (%v,%v), want clamped at 0", g.boxY, g.boxVel)
	}
}

func TestPassingPipeScores(t *testing.T) {
	g := newGame(1)
	cfg := config.Games().FlappyBox
	// A pipe just in front of the box with the gap around it.
	g.pipes.pipes = []Pipe{{X: cfg.BoxX - cfg.PipeWidth + 1, GapY: g.boxY - 60}}

	g.Step(core.NewInputFrame())
	if g.score != 1 {
		t.Errorf("score = %d, want 1", g.score)
	}
	if !g.pipes.pipes[0].Passed {
		t.Error("Pipe not marked as passed")
	}
}

func TestPipeCollisionEndsGame(t *testing.T) {
	g := newGame(1)
	cfg := config.Games().FlappyBox
	// Gap far below the box.
	g.pipes.pipes = []Pipe{{X: cfg.BoxX, GapY: 350}}

	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Error("Touching a pipe should end the game")
	}
}

func TestPipeSpawning(t *testing.T) {
	cfg := config.Games().FlappyBox
	pm := NewPipeManager(cfg, 9, 400, 400)
	if len(pm.Pipes()) != 1 {
		t.Fatalf("Expected 1 initial pipe, got %d", len(pm.Pipes()))
	}
	ticks := int(cfg.PipeSpacing/cfg.PipeSpeed) + 1
	for i := 0; i < ticks; i++ {
		pm.Update(cfg.BoxX)
	}
	if len(pm.Pipes()) != 2 {
		t.Errorf("Expected a second pipe after %d ticks, got %d", ticks, len(pm.Pipes()))
	}
	for _, p := range pm.Pipes() {
		if p.GapY < 0 || p.GapY > 400-cfg.PipeGap {
			t.Errorf("GapY %v outside [0,%v]", p.GapY, 400-cfg.PipeGap)
		}
	}
}
