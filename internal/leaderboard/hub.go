package leaderboard

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// TopNQuery loads the current top n entries of a game.
type TopNQuery func(ctx context.Context, gameID string, n int) ([]Entry, error)

type subscriber struct {
	n  int
	fn func([]Entry)
}

// Hub implements Feed on top of a query function. Stores call Notify after
// every committed change; each subscriber then receives a fresh view.
type Hub struct {
	query  TopNQuery
	logger *log.Logger

	mu   sync.Mutex
	next int
	subs map[string]map[int]subscriber
}

// NewHub creates a hub re-running query on every change.
func NewHub(query TopNQuery, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		query:  query,
		logger: logger.With("component", "leaderboard-hub"),
		subs:   make(map[string]map[int]subscriber),
	}
}

// SubscribeTopN registers onUpdate and delivers the current view before
// returning.
func (h *Hub) SubscribeTopN(ctx context.Context, gameID string, n int, onUpdate func([]Entry)) (func(), error) {
	if n <= 0 {
		n = DefaultTopN
	}

	h.mu.Lock()
	h.next++
	id := h.next
	if h.subs[gameID] == nil {
		h.subs[gameID] = make(map[int]subscriber)
	}
	h.subs[gameID][id] = subscriber{n: n, fn: onUpdate}
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[gameID], id)
			if len(h.subs[gameID]) == 0 {
				delete(h.subs, gameID)
			}
		})
	}

	entries, err := h.query(ctx, gameID, n)
	if err != nil {
		unsubscribe()
		return nil, err
	}
	onUpdate(entries)
	return unsubscribe, nil
}

// Notify pushes a fresh view of gameID to its subscribers. Query failures are
// logged and the affected subscribers keep their previous view.
func (h *Hub) Notify(ctx context.Context, gameID string) {
	h.mu.Lock()
	subs := make([]subscriber, 0, len(h.subs[gameID]))
	for _, s := range h.subs[gameID] {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	views := make(map[int][]Entry)
	for _, s := range subs {
		view, ok := views[s.n]
		if !ok {
			var err error
			view, err = h.query(ctx, gameID, s.n)
			if err != nil {
				h.logger.Error("error refreshing leaderboard", "game", gameID, "error", err)
				continue
			}
			views[s.n] = view
		}
		s.fn(append([]Entry(nil), view...))
	}
}

// Subscribers returns the number of live subscriptions for gameID.
func (h *Hub) Subscribers(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[gameID])
}
