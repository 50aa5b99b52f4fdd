// Package quiz implements a five-question multiple-choice quiz.
package quiz

import (
	"fmt"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the leaderboard key of the game.
const ID = "quiz"

// Game implements the quiz.
type Game struct {
	questions []Question
	current   int
	score     int
	finished  bool
	answers   []int
}

// New creates a quiz over the standard question set.
func New() *Game {
	return NewWithQuestions(Questions)
}

// NewWithQuestions creates a quiz over qs. A quiz without questions is
// finished from the start.
func NewWithQuestions(qs []Question) *Game {
	return &Game{questions: qs, finished: len(qs) == 0}
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
	return "QuizGame"
}

// Cadence returns one tick per answer.
func (g *Game) Cadence() core.Cadence {
	return core.Cadence{Kind: core.CadenceTurn}
}

// Reset starts over from the first question.
func (g *Game) Reset(core.RuntimeConfig) {
	g.current = 0
	g.score = 0
	g.finished = len(g.questions) == 0
	g.answers = g.answers[:0]
}

// Step answers the current question with each chosen option in turn.
// Choices outside the option range are ignored.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var msg string
	for _, choice := range in.Choices {
		if g.finished {
			break
		}
		q := g.questions[g.current]
		if choice < 0 || choice >= len(q.Options) {
			msg = "Invalid choice"
			continue
		}
		g.answers = append(g.answers, choice)
		if choice == q.Correct {
			g.score++
			msg = "Correct!"
		} else {
			msg = "Wrong!"
		}

		if g.current < len(g.questions)-1 {
			g.current++
		} else {
			g.finished = true
			msg = fmt.Sprintf("Quiz finished: %d/%d", g.score, len(g.questions))
		}
	}
	return core.StepResult{State: g.State(), Message: msg}
}

// Current returns the question being asked and its index. An empty quiz
// returns the zero Question.
func (g *Game) Current() (Question, int) {
	if len(g.questions) == 0 {
		return Question{}, 0
	}
	return g.questions[g.current], g.current
}

// Finished reports whether every question has been answered.
func (g *Game) Finished() bool {
	return g.finished
}

// Render draws the current question and its numbered options.
func (g *Game) Render(dst *core.Canvas) {
	if g.finished {
		dst.Text(20, 180, "Quiz finished!", core.ColorBrightGreen)
		dst.Text(20, 210, fmt.Sprintf("Score: %d/%d", g.score, len(g.questions)), core.ColorBrightWhite)
		return
	}

	q := g.questions[g.current]
	dst.Text(20, 20, fmt.Sprintf("Question %d/%d", g.current+1, len(g.questions)), core.ColorGray)
	dst.Text(20, 60, q.Text, core.ColorBrightWhite)
	for i, opt := range q.Options {
		dst.Text(40, 120+float64(i)*40, fmt.Sprintf("%d) %s", i+1, opt), core.ColorCyan)
	}
	dst.Text(20, 370, fmt.Sprintf("Score: %d", g.score), core.ColorBrightWhite)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.finished,
	}
}
