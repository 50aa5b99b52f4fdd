package pingpong

// Snapshot is a comparable copy of the game state.
type Snapshot struct {
	Tick     uint64
	BallX    float64
	BallY    float64
	BallVX   float64
	BallVY   float64
	PaddleX  float64
	Score    int
	GameOver bool
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		BallX:    g.ball.X,
		BallY:    g.ball.Y,
		BallVX:   g.vx,
		BallVY:   g.vy,
		PaddleX:  g.paddle.X,
		Score:    g.score,
		GameOver: g.gameOver,
	}
}
