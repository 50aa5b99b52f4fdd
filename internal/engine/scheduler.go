// Package engine drives one game session at a time: lifecycle state machine,
// tick scheduling and the single end-of-run notification that feeds score
// submission.
package engine

import (
	"sync"
	"time"
)

// Handle identifies one scheduled tick invocation.
type Handle uint64

// Scheduler is the host tick primitive. Schedule arranges for fn to run once
// later; Cancel guarantees that a not-yet-started fn never runs.
type Scheduler interface {
	Schedule(fn func()) Handle
	Cancel(h Handle)
}

// TimerScheduler runs callbacks on time.AfterFunc after a fixed interval.
// It serves both frame-synced games (interval = 1s/TickRate) and fixed-delay
// games such as snake.
type TimerScheduler struct {
	interval time.Duration

	mu     sync.Mutex
	next   Handle
	timers map[Handle]*time.Timer
}

// NewTimerScheduler creates a scheduler firing after interval.
func NewTimerScheduler(interval time.Duration) *TimerScheduler {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &TimerScheduler{
		interval: interval,
		timers:   make(map[Handle]*time.Timer),
	}
}

// Interval returns the delay between Schedule and the callback.
func (s *TimerScheduler) Interval() time.Duration {
	return s.interval
}

// Schedule arms a timer for fn.
func (s *TimerScheduler) Schedule(fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	h := s.next
	s.timers[h] = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		_, live := s.timers[h]
		delete(s.timers, h)
		s.mu.Unlock()
		if live {
			fn()
		}
	})
	return h
}

// Cancel stops the timer for h. Unknown or already fired handles are ignored.
func (s *TimerScheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[h]; ok {
		t.Stop()
		delete(s.timers, h)
	}
}

// Pending returns the number of armed timers.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

type stepEntry struct {
	handle Handle
	fn     func()
}

// StepScheduler queues callbacks until the host fires them explicitly.
// The terminal host fires it from Bubble Tea tick messages; tests use it to
// drive sessions without real time.
type StepScheduler struct {
	mu    sync.Mutex
	next  Handle
	queue []stepEntry
}

// NewStepScheduler creates an empty step scheduler.
func NewStepScheduler() *StepScheduler {
	return &StepScheduler{}
}

// Schedule queues fn.
func (s *StepScheduler) Schedule(fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	s.queue = append(s.queue, stepEntry{handle: s.next, fn: fn})
	return s.next
}

// Cancel removes h from the queue.
func (s *StepScheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.queue {
		if e.handle == h {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
}

// Pending returns the number of queued callbacks.
func (s *StepScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Fire runs the oldest queued callback. Returns false if nothing was queued.
func (s *StepScheduler) Fire() bool {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return false
	}
	e := s.queue[0]
	s.queue = s.queue[1:]
	s.mu.Unlock()

	e.fn()
	return true
}

// Drain fires callbacks until the queue is empty or max callbacks ran.
// Returns the number fired.
func (s *StepScheduler) Drain(max int) int {
	fired := 0
	for fired < max && s.Fire() {
		fired++
	}
	return fired
}
