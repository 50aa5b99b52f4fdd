package storage

import (
	"context"
	"testing"
	"time"

	"github.com/vovakirdan/arcade-portal/internal/leaderboard"
)

func TestMemoryBackend(t *testing.T) {
	runBackendSuite(t, func(t *testing.T) Backend { return NewMemory(quietLogger()) })
}

func TestMemoryCountsWrites(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(quietLogger())
	if m.Writes() != 0 {
		t.Fatalf("Writes() = %d on a new store", m.Writes())
	}
	for i := 0; i < 3; i++ {
		if err := m.UpsertScore(ctx, leaderboard.Entry{GameID: "g", UserID: "u", Score: i, SubmittedAt: time.Now()}); err != nil {
			t.Fatalf("UpsertScore() failed: %v", err)
		}
	}
	if m.Writes() != 3 {
		t.Errorf("Writes() = %d, want 3", m.Writes())
	}
}

func TestMemorySubscribers(t *testing.T) {
	m := NewMemory(quietLogger())
	unsubscribe, err := m.SubscribeTopN(context.Background(), "g", 5, func([]leaderboard.Entry) {})
	if err != nil {
		t.Fatalf("SubscribeTopN() failed: %v", err)
	}
	if m.Subscribers("g") != 1 {
		t.Errorf("Subscribers() = %d, want 1", m.Subscribers("g"))
	}
	unsubscribe()
	if m.Subscribers("g") != 0 {
		t.Errorf("Subscribers() = %d after unsubscribe", m.Subscribers("g"))
	}
}
