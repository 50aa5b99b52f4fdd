package snake

// Snapshot is a comparable copy of the game state.
type Snapshot struct {
	Tick     uint64
	Score    int
	HeadX    int
	HeadY    int
	Length   int
	Dir      Direction
	FoodX    int
	FoodY    int
	GameOver bool
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	var head Point
	if len(g.snake) > 0 {
		head = g.snake[0]
	}
	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		HeadX:    head.X,
		HeadY:    head.Y,
		Length:   len(g.snake),
		Dir:      g.direction,
		FoodX:    g.food.X,
		FoodY:    g.food.Y,
		GameOver: g.gameOver,
	}
}
