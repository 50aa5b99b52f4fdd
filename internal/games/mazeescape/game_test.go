package mazeescape

import (
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/engine"
)

// shortestRoute is a minimal path from the start to the exit.
const shortestRoute = "RDDDDRRUURRRRRRRRRRRRUURRRDDDDDDDDDDDDDDDDDL"

func actionFor(r rune) core.Action {
	switch r {
	case 'L':
		return core.ActionLeft
	case 'R':
		return core.ActionRight
	case 'U':
		return core.ActionUp
	default:
		return core.ActionDown
	}
}

func move(g *Game, r rune) core.StepResult {
	in := core.NewInputFrame()
	in.Set(actionFor(r))
	return g.Step(in)
}

func TestStartPosition(t *testing.T) {
	g := New()
	g.Reset(core.DefaultConfig())
	if g.player != core.NewRectF(20, 20, 20, 20) {
		t.Errorf("player = %+v", g.player)
	}
	if g.exit != core.NewRectF(360, 360, 20, 20) {
		t.Errorf("exit = %+v", g.exit)
	}
	if g.Cadence().Kind != core.CadenceTurn {
		t.Error("MazeEscape should be turn-based")
	}
}

func TestBlockedMoveIgnored(t *testing.T) {
	g := New()
	g.Reset(core.DefaultConfig())

	// The wall at x=60 blocks the second step right.
	move(g, 'R')
	res := move(g, 'R')
	if g.player.X != 40 {
		t.Errorf("player.X = %v, want 40", g.player.X)
	}
	if g.Moves() != 1 || g.blocked != 1 {
		t.Errorf("moves=%d blocked=%d, want 1 and 1", g.Moves(), g.blocked)
	}
	if res.Message != "Blocked" {
		t.Errorf("Message = %q", res.Message)
	}

	// The surface edge blocks moving up from y=20 twice.
	move(g, 'U')
	move(g, 'U')
	if g.player.Y != 0 || g.Moves() != 2 {
		t.Errorf("player.Y=%v moves=%d, want 0 and 2", g.player.Y, g.Moves())
	}
}

func TestShortestRouteEscapes(t *testing.T) {
	g := New()
	g.Reset(core.DefaultConfig())

	var res core.StepResult
	for i, r := range shortestRoute {
		res = move(g, r)
		if res.State.GameOver && i != len(shortestRoute)-1 {
			t.Fatalf("Escaped early at move %d", i+1)
		}
	}
	if !res.State.GameOver || !res.State.Won {
		t.Fatalf("Expected escape, got %+v at %+v", res.State, g.player)
	}
	if g.Moves() != 44 {
		t.Errorf("moves = %d, want 44", g.Moves())
	}
	if res.State.Score != 60-44+1 {
		t.Errorf("score = %d, want %d", res.State.Score, 60-44+1)
	}
}

func TestScoreFloorIsOne(t *testing.T) {
	g := New()
	g.Reset(core.DefaultConfig())
	g.cfg.Par = 10

	for _, r := range shortestRoute {
		move(g, r)
	}
	if g.State().Score != 1 {
		t.Errorf("score = %d, want 1", g.State().Score)
	}
}

func TestTurnSessionEndsOnEscape(t *testing.T) {
	var results []engine.Result
	sess := engine.NewSession(New(), nil, engine.WithEndHandler(func(r engine.Result) {
		results = append(results, r)
	}))
	sess.Start()
	if sess.HasPending() {
		t.Fatal("Turn-based session should not schedule ticks")
	}

	for _, r := range shortestRoute {
		in := core.NewInputFrame()
		in.Set(actionFor(r))
		sess.Dispatch(in)
	}
	if sess.Status() != engine.StatusEnded {
		t.Fatalf("Status = %v, want ended", sess.Status())
	}
	if len(results) != 1 || !results[0].Won || results[0].Score != 17 {
		t.Errorf("results = %+v", results)
	}
}
