package leaderboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// Projection keeps one live top-N view of a game. Subscribing again replaces
// the previous subscription; updates from a replaced subscription are dropped.
type Projection struct {
	feed     Feed
	gameID   string
	onChange func([]Entry)
	logger   *log.Logger

	mu          sync.Mutex
	gen         uint64
	unsubscribe func()
	entries     []Entry
}

// NewProjection creates an unsubscribed projection. onChange may be nil.
func NewProjection(feed Feed, gameID string, onChange func([]Entry), logger *log.Logger) *Projection {
	if logger == nil {
		logger = log.Default()
	}
	return &Projection{
		feed:     feed,
		gameID:   gameID,
		onChange: onChange,
		logger:   logger.With("component", "projection", "game", gameID),
	}
}

// GameID returns the projected game.
func (p *Projection) GameID() string {
	return p.gameID
}

// Subscribe cancels any active subscription and starts a new one for the top
// n entries (DefaultTopN when n <= 0).
func (p *Projection) Subscribe(ctx context.Context, n int) error {
	if n <= 0 {
		n = DefaultTopN
	}

	p.mu.Lock()
	prev := p.unsubscribe
	p.unsubscribe = nil
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	if prev != nil {
		prev()
	}

	unsubscribe, err := p.feed.SubscribeTopN(ctx, p.gameID, n, func(entries []Entry) {
		p.deliver(gen, entries)
	})
	if err != nil {
		p.logger.Error("error fetching leaderboard", "error", err)
		return fmt.Errorf("leaderboard: cannot subscribe to %s: %w", p.gameID, err)
	}

	p.mu.Lock()
	if gen != p.gen {
		// Replaced or closed while subscribing.
		p.mu.Unlock()
		unsubscribe()
		return nil
	}
	p.unsubscribe = unsubscribe
	p.mu.Unlock()
	return nil
}

func (p *Projection) deliver(gen uint64, entries []Entry) {
	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return
	}
	p.entries = append([]Entry(nil), entries...)
	cb := p.onChange
	p.mu.Unlock()

	if cb != nil {
		cb(entries)
	}
}

// Entries returns the latest delivered view.
func (p *Projection) Entries() []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Entry(nil), p.entries...)
}

// Active reports whether a subscription is held.
func (p *Projection) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unsubscribe != nil
}

// Close releases the subscription. Safe to call more than once.
func (p *Projection) Close() {
	p.mu.Lock()
	prev := p.unsubscribe
	p.unsubscribe = nil
	p.gen++
	p.mu.Unlock()

	if prev != nil {
		prev()
	}
}
