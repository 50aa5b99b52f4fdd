package engine

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// Status is the lifecycle state of a session.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// EndReason tells why a run terminated.
type EndReason int

const (
	EndGameOver EndReason = iota // the game's own terminal condition
	EndStopped                   // Stop was called while running
)

func (r EndReason) String() string {
	if r == EndStopped {
		return "stopped"
	}
	return "game_over"
}

// Result describes one termination. It is delivered exactly once per run.
type Result struct {
	SessionID string
	GameID    string
	Score     int
	Won       bool
	Reason    EndReason
	Ticks     int
}

// Frame is what the host needs to present after a tick.
type Frame struct {
	Status  Status
	Score   int
	Message string
	Canvas  *core.Canvas
}

// Option configures a Session.
type Option func(*Session)

// WithConfig sets the runtime config handed to the game on every Start.
func WithConfig(cfg core.RuntimeConfig) Option {
	return func(s *Session) { s.cfg = cfg }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithEndHandler registers the termination callback. It runs outside the
// session lock on the goroutine that performed the terminating tick or Stop.
func WithEndHandler(fn func(Result)) Option {
	return func(s *Session) { s.onEnd = fn }
}

// WithFrameHandler registers a callback invoked after every redraw.
func WithFrameHandler(fn func(Frame)) Option {
	return func(s *Session) { s.onFrame = fn }
}

// Session runs one game through idle -> running -> ended.
//
// Every state transition happens under mu, so ticks, intents and Stop calls
// coming from different goroutines observe a single sequential history.
type Session struct {
	game    registry.Game
	sched   Scheduler
	cfg     core.RuntimeConfig
	cadence core.Cadence
	logger  *log.Logger
	onEnd   func(Result)
	onFrame func(Frame)

	mu         sync.Mutex
	id         string
	status     Status
	gen        uint64 // bumped whenever scheduled callbacks must become stale
	pending    Handle
	hasPending bool
	queued     core.InputFrame
	score      int
	ticks      int
	message    string
	canvas     *core.Canvas
}

// NewSession creates an idle session for game. A nil scheduler selects a
// TimerScheduler matching the game's cadence.
func NewSession(game registry.Game, sched Scheduler, opts ...Option) *Session {
	s := &Session{
		game:    game,
		sched:   sched,
		cfg:     core.DefaultConfig(),
		cadence: game.Cadence(),
		queued:  core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.logger = s.logger.With("game", game.ID())
	if s.sched == nil && s.cadence.Kind != core.CadenceTurn {
		s.sched = NewTimerScheduler(s.cadence.Interval(s.cfg.TickRate))
	}
	s.canvas = core.NewCanvas(s.cfg.Width, s.cfg.Height)
	return s
}

// ID returns the current run's identifier; empty before the first Start.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// GameID returns the strategy's identifier.
func (s *Session) GameID() string {
	return s.game.ID()
}

// Cadence returns the game's tick cadence.
func (s *Session) Cadence() core.Cadence {
	return s.cadence
}

// Status returns the lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Score returns the highest score observed during the current run.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Ticks returns the number of ticks performed in the current run.
func (s *Session) Ticks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// HasPending reports whether a tick is scheduled.
func (s *Session) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasPending
}

// Snapshot returns the latest frame without ticking.
func (s *Session) Snapshot() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked()
}

// Start begins a new run. It is ignored while a run is in progress and
// returns false in that case.
func (s *Session) Start() bool {
	s.mu.Lock()
	if s.status == StatusRunning {
		s.mu.Unlock()
		s.logger.Debug("start ignored, session already running", "session", s.ID())
		return false
	}

	s.cancelLocked()
	s.gen++
	s.id = uuid.NewString()
	s.game.Reset(s.cfg)
	s.score = 0
	s.ticks = 0
	s.message = ""
	s.queued.Clear()
	s.status = StatusRunning
	s.redrawLocked()
	if s.cadence.Kind != core.CadenceTurn {
		s.scheduleLocked(s.gen)
	}
	frame := s.frameLocked()
	id := s.id
	s.mu.Unlock()

	s.logger.Debug("session started", "session", id)
	s.emitFrame(frame)
	return true
}

// Stop cancels any scheduled tick before returning. A running session ends
// with EndStopped and reports its result once; further calls do nothing.
func (s *Session) Stop() {
	s.mu.Lock()
	s.cancelLocked()
	if s.status != StatusRunning {
		s.mu.Unlock()
		return
	}
	s.status = StatusEnded
	s.gen++
	result := s.resultLocked(EndStopped)
	s.mu.Unlock()

	s.logger.Debug("session stopped", "session", result.SessionID, "score", result.Score)
	s.emitEnd(result)
}

// Reset cancels any scheduled tick and returns the session to idle with a
// freshly initialized game. No result is reported.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.gen++
	s.status = StatusIdle
	s.game.Reset(s.cfg)
	s.score = 0
	s.ticks = 0
	s.message = ""
	s.queued.Clear()
	s.redrawLocked()
}

// Push queues intents for the next tick. Intents arriving while the session
// is not running are dropped.
func (s *Session) Push(in core.InputFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusRunning {
		return
	}
	s.queued.Merge(in)
}

// Dispatch queues intents and, for turn-based games, performs the tick
// immediately. Real-time games consume them on their next scheduled tick.
func (s *Session) Dispatch(in core.InputFrame) {
	s.mu.Lock()
	if s.status != StatusRunning {
		s.mu.Unlock()
		return
	}
	s.queued.Merge(in)
	gen := s.gen
	turn := s.cadence.Kind == core.CadenceTurn
	s.mu.Unlock()

	if turn {
		s.tick(gen)
	}
}

// tick performs one scheduled invocation: one step, one redraw and, while
// still running, one reschedule.
func (s *Session) tick(gen uint64) {
	s.mu.Lock()
	if s.status != StatusRunning || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.hasPending = false

	in := s.queued.Clone()
	s.queued.Clear()

	res := s.game.Step(in)
	s.ticks++
	if res.State.Score > s.score {
		s.score = res.State.Score
	}
	if res.Message != "" {
		s.message = res.Message
	}
	if res.Err != nil {
		s.logger.Warn("intent rejected", "session", s.id, "error", res.Err)
	}
	s.redrawLocked()

	var (
		ended  bool
		result Result
	)
	if res.State.GameOver {
		s.status = StatusEnded
		s.gen++
		ended = true
		result = s.resultLocked(EndGameOver)
		result.Won = res.State.Won
	} else if s.cadence.Kind != core.CadenceTurn {
		s.scheduleLocked(gen)
	}
	frame := s.frameLocked()
	s.mu.Unlock()

	s.emitFrame(frame)
	if ended {
		s.logger.Debug("session ended", "session", result.SessionID, "score", result.Score, "ticks", result.Ticks)
		s.emitEnd(result)
	}
}

func (s *Session) scheduleLocked(gen uint64) {
	s.pending = s.sched.Schedule(func() { s.tick(gen) })
	s.hasPending = true
}

func (s *Session) cancelLocked() {
	if s.hasPending {
		s.sched.Cancel(s.pending)
		s.hasPending = false
	}
}

func (s *Session) redrawLocked() {
	s.canvas.Clear()
	s.game.Render(s.canvas)
}

func (s *Session) frameLocked() Frame {
	return Frame{
		Status:  s.status,
		Score:   s.score,
		Message: s.message,
		Canvas:  s.canvas,
	}
}

func (s *Session) resultLocked(reason EndReason) Result {
	return Result{
		SessionID: s.id,
		GameID:    s.game.ID(),
		Score:     s.score,
		Reason:    reason,
		Ticks:     s.ticks,
	}
}

func (s *Session) emitFrame(f Frame) {
	if s.onFrame != nil {
		s.onFrame(f)
	}
}

func (s *Session) emitEnd(r Result) {
	if s.onEnd != nil {
		s.onEnd(r)
	}
}
