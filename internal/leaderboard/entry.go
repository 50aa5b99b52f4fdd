// Package leaderboard implements conditional best-score submission and live
// top-N projections over a persistence collaborator.
package leaderboard

import (
	"context"
	"sort"
	"time"
)

// DefaultTopN is the projection size when none is requested.
const DefaultTopN = 10

// Entry is one user's best score in one game. There is at most one entry per
// (GameID, UserID); it is replaced, never appended.
type Entry struct {
	GameID      string    `json:"gameId" db:"game_id"`
	UserID      string    `json:"userId" db:"user_id"`
	DisplayName string    `json:"username" db:"username"`
	Score       int       `json:"score" db:"score"`
	SubmittedAt time.Time `json:"timestamp" db:"submitted_at"`
}

// Store is the read/write side of the persistence collaborator.
type Store interface {
	// GetScore returns the stored entry; false when there is none.
	GetScore(ctx context.Context, gameID, userID string) (Entry, bool, error)
	// UpsertScore creates or replaces the entry for (e.GameID, e.UserID).
	UpsertScore(ctx context.Context, e Entry) error
}

// Feed is the live query side of the persistence collaborator.
type Feed interface {
	// SubscribeTopN delivers the top n entries of gameID, ordered by score
	// descending, now and after every change. The returned function releases
	// the subscription.
	SubscribeTopN(ctx context.Context, gameID string, n int, onUpdate func([]Entry)) (func(), error)
}

// Rank orders entries by score descending, earlier submissions first on ties,
// and truncates to n.
func Rank(entries []Entry, n int) []Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].SubmittedAt.Before(entries[j].SubmittedAt)
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
