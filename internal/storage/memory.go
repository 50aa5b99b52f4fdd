package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/identity"
	"github.com/vovakirdan/arcade-portal/internal/leaderboard"
)

type scoreKey struct {
	game, user string
}

// Memory is a process-local backend. It backs tests and offline play when no
// database can be opened.
type Memory struct {
	mu       sync.RWMutex
	scores   map[scoreKey]leaderboard.Entry
	profiles map[string]identity.Profile
	hub      *leaderboard.Hub

	// Writes counts successful UpsertScore calls.
	writes int
}

// NewMemory creates an empty in-memory backend.
func NewMemory(logger *log.Logger) *Memory {
	m := &Memory{
		scores:   make(map[scoreKey]leaderboard.Entry),
		profiles: make(map[string]identity.Profile),
	}
	m.hub = leaderboard.NewHub(m.TopN, logger)
	return m
}

// Writes returns the number of score writes performed so far.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

func (m *Memory) GetScore(_ context.Context, gameID, userID string) (leaderboard.Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.scores[scoreKey{gameID, userID}]
	return e, ok, nil
}

func (m *Memory) UpsertScore(ctx context.Context, e leaderboard.Entry) error {
	m.mu.Lock()
	m.scores[scoreKey{e.GameID, e.UserID}] = e
	m.writes++
	m.mu.Unlock()

	m.hub.Notify(ctx, e.GameID)
	return nil
}

func (m *Memory) DeleteScore(ctx context.Context, gameID, userID string) error {
	m.mu.Lock()
	_, ok := m.scores[scoreKey{gameID, userID}]
	delete(m.scores, scoreKey{gameID, userID})
	m.mu.Unlock()

	if ok {
		m.hub.Notify(ctx, gameID)
	}
	return nil
}

func (m *Memory) TopN(_ context.Context, gameID string, n int) ([]leaderboard.Entry, error) {
	if n <= 0 {
		n = leaderboard.DefaultTopN
	}
	m.mu.RLock()
	var entries []leaderboard.Entry
	for k, e := range m.scores {
		if k.game == gameID {
			entries = append(entries, e)
		}
	}
	m.mu.RUnlock()
	return leaderboard.Rank(entries, n), nil
}

func (m *Memory) SubscribeTopN(ctx context.Context, gameID string, n int, onUpdate func([]leaderboard.Entry)) (func(), error) {
	return m.hub.SubscribeTopN(ctx, gameID, n, onUpdate)
}

// Subscribers returns the number of live subscriptions for gameID.
func (m *Memory) Subscribers(gameID string) int {
	return m.hub.Subscribers(gameID)
}

func (m *Memory) Stats(_ context.Context, gameID string) (GameStats, error) {
	stats := GameStats{GameID: gameID}
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for k, e := range m.scores {
		if k.game != gameID {
			continue
		}
		stats.Players++
		total += e.Score
		if stats.Players == 1 || e.Score > stats.HighScore {
			stats.HighScore = e.Score
		}
		if e.SubmittedAt.After(stats.LastPlayed) {
			stats.LastPlayed = e.SubmittedAt
		}
	}
	if stats.Players > 0 {
		stats.AvgScore = float64(total) / float64(stats.Players)
	}
	return stats, nil
}

func (m *Memory) FetchProfile(_ context.Context, userID string) (identity.Profile, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[userID]
	if !ok {
		return identity.Profile{}, false, nil
	}
	return p.Normalize(), true, nil
}

func (m *Memory) SaveProfile(_ context.Context, p identity.Profile) error {
	p.FavoriteGames = append([]string(nil), p.FavoriteGames...)
	m.mu.Lock()
	m.profiles[p.UserID] = p
	m.mu.Unlock()
	return nil
}

func (m *Memory) ListProfiles(_ context.Context) ([]identity.Profile, error) {
	m.mu.RLock()
	profiles := make([]identity.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		profiles = append(profiles, p.Normalize())
	}
	m.mu.RUnlock()

	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Username != profiles[j].Username {
			return profiles[i].Username < profiles[j].Username
		}
		return profiles[i].UserID < profiles[j].UserID
	})
	return profiles, nil
}

func (m *Memory) DeleteProfile(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[userID]; !ok {
		return ErrNotFound
	}
	delete(m.profiles, userID)
	return nil
}

func (m *Memory) Close() error { return nil }

var _ Backend = (*Memory)(nil)
