package leaderboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memFeed is a Hub over an in-memory entry list.
type memFeed struct {
	mu      sync.Mutex
	entries map[string][]Entry
	hub     *Hub
}

func newMemFeed() *memFeed {
	f := &memFeed{entries: make(map[string][]Entry)}
	f.hub = NewHub(func(_ context.Context, gameID string, n int) ([]Entry, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		return Rank(append([]Entry(nil), f.entries[gameID]...), n), nil
	}, nil)
	return f
}

func (f *memFeed) SubscribeTopN(ctx context.Context, gameID string, n int, onUpdate func([]Entry)) (func(), error) {
	return f.hub.SubscribeTopN(ctx, gameID, n, onUpdate)
}

func (f *memFeed) add(e Entry) {
	f.mu.Lock()
	f.entries[e.GameID] = append(f.entries[e.GameID], e)
	f.mu.Unlock()
	f.hub.Notify(context.Background(), e.GameID)
}

func TestProjectionResubscribeReplaces(t *testing.T) {
	feed := newMemFeed()
	var mu sync.Mutex
	calls := 0
	p := NewProjection(feed, "snake", func([]Entry) {
		mu.Lock()
		calls++
		mu.Unlock()
	}, nil)

	require.NoError(t, p.Subscribe(context.Background(), 10))
	require.NoError(t, p.Subscribe(context.Background(), 10))
	assert.Equal(t, 1, feed.hub.Subscribers("snake"))

	mu.Lock()
	calls = 0
	mu.Unlock()

	feed.add(Entry{GameID: "snake", UserID: "u1", Score: 5})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls, "one change must reach exactly one subscription")
}

func TestProjectionTopNOrdering(t *testing.T) {
	feed := newMemFeed()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, score := range []int{4, 9, 1, 9, 7} {
		feed.entries["quiz"] = append(feed.entries["quiz"], Entry{
			GameID:      "quiz",
			UserID:      string(rune('a' + i)),
			Score:       score,
			SubmittedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	p := NewProjection(feed, "quiz", nil, nil)
	require.NoError(t, p.Subscribe(context.Background(), 3))

	got := p.Entries()
	require.Len(t, got, 3)
	assert.Equal(t, []int{9, 9, 7}, []int{got[0].Score, got[1].Score, got[2].Score})
	assert.Equal(t, "b", got[0].UserID, "earlier submission wins ties")
}

func TestProjectionDefaultN(t *testing.T) {
	feed := newMemFeed()
	for i := 0; i < 15; i++ {
		feed.entries["snake"] = append(feed.entries["snake"], Entry{GameID: "snake", Score: i})
	}

	p := NewProjection(feed, "snake", nil, nil)
	require.NoError(t, p.Subscribe(context.Background(), 0))
	assert.Len(t, p.Entries(), DefaultTopN)
}

func TestProjectionCloseReleases(t *testing.T) {
	feed := newMemFeed()
	calls := 0
	p := NewProjection(feed, "snake", func([]Entry) { calls++ }, nil)

	require.NoError(t, p.Subscribe(context.Background(), 10))
	p.Close()
	p.Close()

	assert.False(t, p.Active())
	assert.Equal(t, 0, feed.hub.Subscribers("snake"))

	calls = 0
	feed.add(Entry{GameID: "snake", UserID: "u1", Score: 1})
	assert.Equal(t, 0, calls)
}

type failingFeed struct{}

func (failingFeed) SubscribeTopN(context.Context, string, int, func([]Entry)) (func(), error) {
	return nil, errors.New("unavailable")
}

func TestProjectionSubscribeError(t *testing.T) {
	p := NewProjection(failingFeed{}, "snake", nil, nil)

	err := p.Subscribe(context.Background(), 10)
	require.Error(t, err)
	assert.False(t, p.Active())
	assert.Empty(t, p.Entries())
}

func TestHubUnsubscribeIdempotent(t *testing.T) {
	feed := newMemFeed()
	unsub, err := feed.hub.SubscribeTopN(context.Background(), "rps", 5, func([]Entry) {})
	require.NoError(t, err)
	_, err = feed.hub.SubscribeTopN(context.Background(), "rps", 5, func([]Entry) {})
	require.NoError(t, err)

	unsub()
	unsub()
	assert.Equal(t, 1, feed.hub.Subscribers("rps"))
}
