package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestStepSchedulerOrderAndCancel(t *testing.T) {
	s := NewStepScheduler()
	var order []int

	s.Schedule(func() { order = append(order, 1) })
	h := s.Schedule(func() { order = append(order, 2) })
	s.Schedule(func() { order = append(order, 3) })
	s.Cancel(h)

	if s.Pending() != 2 {
		t.Fatalf("Pending() = %d, expected 2", s.Pending())
	}
	if n := s.Drain(10); n != 2 {
		t.Errorf("Drain() = %d, expected 2", n)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Errorf("order = %v, expected [1 3]", order)
	}
	if s.Fire() {
		t.Error("Fire() on empty scheduler returned true")
	}
}

func TestStepSchedulerDrainLimit(t *testing.T) {
	s := NewStepScheduler()
	var reschedule func()
	reschedule = func() { s.Schedule(reschedule) }
	s.Schedule(reschedule)

	if n := s.Drain(7); n != 7 {
		t.Errorf("Drain(7) = %d, expected 7 for a self-rescheduling chain", n)
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, expected 1", s.Pending())
	}
}

func TestTimerSchedulerCancel(t *testing.T) {
	s := NewTimerScheduler(10 * time.Millisecond)
	var ran atomic.Bool

	h := s.Schedule(func() { ran.Store(true) })
	s.Cancel(h)
	s.Cancel(h)

	time.Sleep(30 * time.Millisecond)
	if ran.Load() {
		t.Error("cancelled callback ran")
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", s.Pending())
	}
}

func TestTimerSchedulerFires(t *testing.T) {
	s := NewTimerScheduler(time.Millisecond)
	done := make(chan struct{})

	s.Schedule(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback did not run")
	}
}
