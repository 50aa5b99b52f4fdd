package guesscolor

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func newGame(seed int64) *Game {
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	g := New()
	g.Reset(cfg)
	return g
}

func guess(i int) core.InputFrame {
	in := core.NewInputFrame()
	in.Choose(i)
	return in
}

func TestDeal(t *testing.T) {
	g := newGame(1)
	opts := g.Options()
	require.Len(t, opts, 3)
	for _, o := range opts {
		assert.Regexp(t, hexPattern, o)
	}
	assert.Contains(t, opts, g.Target())
	assert.Equal(t, 3, g.Lives())
}

func TestCorrectGuessScoresAndDeals(t *testing.T) {
	g := newGame(2)
	first := g.Options()

	res := g.Step(guess(g.target))
	assert.Equal(t, 1, res.State.Score)
	assert.Equal(t, "Correct!", res.Message)
	assert.Equal(t, 2, g.rounds)
	assert.NotEqual(t, first, g.Options())
	assert.Equal(t, 3, g.Lives())
}

func TestWrongGuessesCostLives(t *testing.T) {
	g := newGame(3)
	wrong := (g.target + 1) % len(g.options)

	res := g.Step(guess(wrong))
	assert.Equal(t, "Try Again!", res.Message)
	assert.Equal(t, 2, g.Lives())
	assert.False(t, res.State.GameOver)

	g.Step(guess((g.target + 1) % len(g.options)))
	res = g.Step(guess((g.target + 2) % len(g.options)))
	assert.True(t, res.State.GameOver)
	assert.Zero(t, res.State.Score)
	assert.Contains(t, res.Message, "Out of lives")
}

func TestInvalidGuessIgnored(t *testing.T) {
	g := newGame(4)
	res := g.Step(guess(-1))
	assert.Equal(t, "Invalid choice", res.Message)
	assert.Equal(t, 3, g.Lives())
}

func TestDeterminism(t *testing.T) {
	a, b := newGame(42), newGame(42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Options(), b.Options())
		a.Step(guess(a.target))
		b.Step(guess(b.target))
	}
}
