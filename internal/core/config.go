package core

import "time"

// Logical playfield size shared by every canvas game.
const (
	LogicalWidth  = 400
	LogicalHeight = 400
)

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	Width    float64 // Playfield width in logical units
	Height   float64 // Playfield height in logical units
	TickRate int     // Simulation ticks per second (default 60)
	Seed     int64   // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Width:    LogicalWidth,
		Height:   LogicalHeight,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Bounds returns the playfield rectangle.
func (c RuntimeConfig) Bounds() RectF {
	return NewRectF(0, 0, c.Width, c.Height)
}

// CadenceKind selects how a session's ticks are scheduled.
type CadenceKind int

const (
	CadenceFrame CadenceKind = iota // one tick per host frame
	CadenceDelay                    // one tick per fixed delay
	CadenceTurn                     // one tick per player move
)

func (k CadenceKind) String() string {
	switch k {
	case CadenceFrame:
		return "frame"
	case CadenceDelay:
		return "delay"
	case CadenceTurn:
		return "turn"
	default:
		return "unknown"
	}
}

// Cadence describes a game's tick scheduling.
type Cadence struct {
	Kind  CadenceKind
	Delay time.Duration // Only for CadenceDelay
}

// Interval returns the time between ticks for the given tick rate.
// Turn-based cadences return zero.
func (c Cadence) Interval(tickRate int) time.Duration {
	switch c.Kind {
	case CadenceDelay:
		return c.Delay
	case CadenceTurn:
		return 0
	default:
		if tickRate <= 0 {
			tickRate = 60
		}
		return time.Second / time.Duration(tickRate)
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the session.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the run has reached a terminal state
	Won      bool // Whether the terminal state is a win
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Message is an optional status line for the host ("Correct!", "Try Again!").
	Message string
	// Err reports a rejected intent. The game state is unchanged.
	Err error
}
