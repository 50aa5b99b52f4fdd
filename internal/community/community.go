// Package community serves the public player directory: who plays on the
// portal and their best score in every game.
package community

import (
	"context"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/arcade-portal/internal/identity"
	"github.com/vovakirdan/arcade-portal/internal/leaderboard"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// Store is the persistence the directory reads from.
type Store interface {
	ListProfiles(ctx context.Context) ([]identity.Profile, error)
	GetScore(ctx context.Context, gameID, userID string) (leaderboard.Entry, bool, error)
}

// Member is the public part of a profile. Email is never listed.
type Member struct {
	UserID        string   `json:"userId"`
	Username      string   `json:"username"`
	DisplayName   string   `json:"displayName"`
	Avatar        string   `json:"avatar"`
	Description   string   `json:"description,omitempty"`
	Location      string   `json:"location,omitempty"`
	FavoriteGenre string   `json:"favoriteGenre,omitempty"`
	FavoriteGames []string `json:"favoriteGames,omitempty"`
}

// GameScore is a member's best score in one game; Score is nil when the
// member has never submitted one.
type GameScore struct {
	GameID string `json:"gameId"`
	Title  string `json:"title"`
	Score  *int   `json:"score"`
}

type Service struct {
	store  Store
	games  func() []registry.GameInfo
	logger *log.Logger
}

// NewService creates a directory over store. games lists the games whose
// scores are reported, in display order.
func NewService(store Store, games func() []registry.GameInfo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{store: store, games: games, logger: logger.With("component", "community")}
}

// Members lists players whose username starts with a capital letter. When
// several profiles share a username only the first one listed is kept.
func (s *Service) Members(ctx context.Context) ([]Member, error) {
	profiles, err := s.store.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("community: cannot list profiles: %w", err)
	}

	seen := make(map[string]struct{}, len(profiles))
	members := make([]Member, 0, len(profiles))
	for _, p := range profiles {
		p = p.Normalize()
		if !listed(p.Username) {
			continue
		}
		if _, dup := seen[p.Username]; dup {
			continue
		}
		seen[p.Username] = struct{}{}
		members = append(members, Member{
			UserID:        p.UserID,
			Username:      p.Username,
			DisplayName:   p.DisplayName,
			Avatar:        p.Avatar,
			Description:   p.Description,
			Location:      p.Location,
			FavoriteGenre: p.FavoriteGenre,
			FavoriteGames: p.FavoriteGames,
		})
	}
	return members, nil
}

func listed(username string) bool {
	r, _ := utf8.DecodeRuneInString(username)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

// Scores returns userID's best score in every registered game. The games are
// queried concurrently; any failure fails the whole call.
func (s *Service) Scores(ctx context.Context, userID string) ([]GameScore, error) {
	games := s.games()
	out := make([]GameScore, len(games))

	g, gctx := errgroup.WithContext(ctx)
	for i, info := range games {
		out[i] = GameScore{GameID: info.ID, Title: info.Title}
		g.Go(func() error {
			e, ok, err := s.store.GetScore(gctx, info.ID, userID)
			if err != nil {
				return fmt.Errorf("%s: %w", info.ID, err)
			}
			if ok {
				score := e.Score
				out[i].Score = &score
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("error loading scores", "user", userID, "error", err)
		return nil, fmt.Errorf("community: cannot load scores of %s: %w", userID, err)
	}
	return out, nil
}
