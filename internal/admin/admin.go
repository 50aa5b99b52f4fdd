// Package admin implements user management for portal administrators:
// listing players and deleting a user together with their scores.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"go.uber.org/multierr"

	"github.com/vovakirdan/arcade-portal/internal/identity"
)

// ErrProtectedUser is returned when deleting an administrator.
var ErrProtectedUser = errors.New("admin: user is protected")

// Store is the persistence the service needs.
type Store interface {
	ListProfiles(ctx context.Context) ([]identity.Profile, error)
	FetchProfile(ctx context.Context, userID string) (identity.Profile, bool, error)
	DeleteProfile(ctx context.Context, userID string) error
	DeleteScore(ctx context.Context, gameID, userID string) error
}

// Forgetter drops cached profiles of deleted users.
type Forgetter interface {
	Forget(userID string)
}

// Service manages users.
type Service struct {
	store  Store
	games  func() []string
	admins []string
	cache  Forgetter
	logger *log.Logger
}

// NewService creates a service. games lists the game IDs whose leaderboards
// are cleaned on delete; admins are the protected usernames.
func NewService(store Store, games func() []string, admins []string, cache Forgetter, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		store:  store,
		games:  games,
		admins: admins,
		cache:  cache,
		logger: logger.With("component", "admin"),
	}
}

// IsAdmin reports whether username is a configured administrator, either
// bare or in the "<name> (admin)" form.
func (s *Service) IsAdmin(username string) bool {
	return IsAdmin(s.admins, username)
}

// IsAdmin reports whether username matches one of admins.
func IsAdmin(admins []string, username string) bool {
	name := strings.TrimSpace(username)
	if name == "" {
		return false
	}
	for _, a := range admins {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if strings.EqualFold(name, a) || strings.EqualFold(name, a+" (admin)") {
			return true
		}
	}
	return false
}

// ListUsers returns the users that have chosen a username.
func (s *Service) ListUsers(ctx context.Context) ([]identity.Profile, error) {
	all, err := s.store.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin: cannot list users: %w", err)
	}
	users := make([]identity.Profile, 0, len(all))
	for _, p := range all {
		if p.HasUsername() {
			users = append(users, p)
		}
	}
	return users, nil
}

// DeleteUser removes the user's profile and their entry on every game's
// leaderboard. Administrators cannot be deleted. A failure on one game does
// not stop the others; all failures are returned together.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	p, found, err := s.store.FetchProfile(ctx, userID)
	if err != nil {
		return fmt.Errorf("admin: cannot load user %s: %w", userID, err)
	}
	if found && s.IsAdmin(p.Username) {
		s.logger.Warn("refusing to delete admin", "user", userID, "username", p.Username)
		return fmt.Errorf("%w: %s", ErrProtectedUser, p.Username)
	}

	var errs error
	if found {
		if err := s.store.DeleteProfile(ctx, userID); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("profile: %w", err))
		}
	}
	for _, gameID := range s.games() {
		if err := s.store.DeleteScore(ctx, gameID, userID); err != nil {
			s.logger.Error("error deleting score", "user", userID, "game", gameID, "error", err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", gameID, err))
		}
	}
	if s.cache != nil {
		s.cache.Forget(userID)
	}

	if errs != nil {
		return fmt.Errorf("admin: delete %s incomplete: %w", userID, errs)
	}
	s.logger.Info("user deleted", "user", userID)
	return nil
}
