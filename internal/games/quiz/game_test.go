package quiz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/engine"
	"github.com/vovakirdan/arcade-portal/internal/identity"
	"github.com/vovakirdan/arcade-portal/internal/leaderboard"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

func answer(choices ...int) core.InputFrame {
	in := core.NewInputFrame()
	for _, c := range choices {
		in.Choose(c)
	}
	return in
}

func TestAllCorrect(t *testing.T) {
	g := New()
	g.Reset(core.DefaultConfig())

	res := g.Step(answer(2, 2, 1, 0, 1))
	assert.True(t, res.State.GameOver)
	assert.Equal(t, 5, res.State.Score)
	assert.Equal(t, "Quiz finished: 5/5", res.Message)
}

func TestAnswersAfterFinishIgnored(t *testing.T) {
	g := New()
	g.Reset(core.DefaultConfig())
	g.Step(answer(0, 0, 0, 0, 0))
	require.True(t, g.Finished())

	res := g.Step(answer(1))
	assert.Equal(t, 1, res.State.Score)
	assert.Len(t, g.answers, 5)
}

func TestInvalidChoiceIgnored(t *testing.T) {
	g := New()
	g.Reset(core.DefaultConfig())

	res := g.Step(answer(7))
	assert.Equal(t, "Invalid choice", res.Message)
	_, idx := g.Current()
	assert.Equal(t, 0, idx)
	assert.False(t, res.State.GameOver)
}

func TestResetStartsOver(t *testing.T) {
	g := New()
	g.Reset(core.DefaultConfig())
	g.Step(answer(2, 2))
	g.Reset(core.DefaultConfig())

	q, idx := g.Current()
	assert.Equal(t, 0, idx)
	assert.Equal(t, Questions[0].Text, q.Text)
	assert.Zero(t, g.State().Score)
}

func TestCorrectOnFirstThirdFifthScoresThree(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory(nil)
	require.NoError(t, mem.SaveProfile(ctx, identity.Profile{UserID: "u1", Username: "leia"}))
	sub := leaderboard.NewSubmitter(mem, identity.NewCache(mem, nil), nil)

	var results []engine.Result
	var outcomes []leaderboard.Outcome
	sess := engine.NewSession(New(), nil, engine.WithEndHandler(func(r engine.Result) {
		results = append(results, r)
		outcomes = append(outcomes, sub.Record(ctx, "u1", r))
	}))
	require.True(t, sess.Start())

	// Correct answers are 2,2,1,0,1; answer questions 0, 2 and 4 correctly.
	for _, choice := range []int{2, 0, 1, 3, 1} {
		sess.Dispatch(answer(choice))
	}
	// Late answers after the quiz finished change nothing.
	sess.Dispatch(answer(2))
	sess.Stop()

	require.Len(t, results, 1, "quiz must finish exactly once")
	assert.Equal(t, 3, results[0].Score)
	assert.Equal(t, engine.EndGameOver, results[0].Reason)
	assert.Equal(t, []leaderboard.Outcome{leaderboard.OutcomeWritten}, outcomes)
	assert.Equal(t, 1, mem.Writes())

	e, ok, err := mem.GetScore(ctx, ID, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, e.Score)
	assert.Equal(t, "leia", e.DisplayName)
}

func TestEmptyQuizIsFinished(t *testing.T) {
	g := NewWithQuestions(nil)
	assert.True(t, g.Finished())

	g.Reset(core.DefaultConfig())
	require.NotPanics(t, func() {
		res := g.Step(answer(0, 1))
		assert.True(t, res.State.GameOver)
		assert.Zero(t, res.State.Score)

		q, idx := g.Current()
		assert.Empty(t, q.Text)
		assert.Zero(t, idx)

		g.Render(core.NewCanvas(core.LogicalWidth, core.LogicalHeight))
	})
}
