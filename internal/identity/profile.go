// Package identity models players and their profiles, and resolves the
// display name a score is submitted under.
package identity

import (
	"context"
	"strings"
)

// DefaultAvatar is used when a stored profile has no avatar.
const DefaultAvatar = "default-avatar"

// Profile is a user's stored profile.
type Profile struct {
	UserID        string   `json:"userId" yaml:"user_id" db:"user_id"`
	Username      string   `json:"username" yaml:"username" db:"username"`
	DisplayName   string   `json:"displayName" yaml:"display_name" db:"display_name"`
	Email         string   `json:"email,omitempty" yaml:"email" db:"email"`
	Avatar        string   `json:"avatar" yaml:"avatar" db:"avatar"`
	Description   string   `json:"description,omitempty" yaml:"description" db:"description"`
	Location      string   `json:"location,omitempty" yaml:"location" db:"location"`
	FavoriteGenre string   `json:"favoriteGenre,omitempty" yaml:"favorite_genre" db:"favorite_genre"`
	FavoriteGames []string `json:"favoriteGames,omitempty" yaml:"favorite_games" db:"favorite_games"`
}

// Normalize trims fields and fills the documented defaults: a missing
// avatar becomes DefaultAvatar and a missing display name falls back to the
// username.
func (p Profile) Normalize() Profile {
	p.UserID = strings.TrimSpace(p.UserID)
	p.Username = strings.TrimSpace(p.Username)
	p.DisplayName = strings.TrimSpace(p.DisplayName)
	if p.Avatar == "" {
		p.Avatar = DefaultAvatar
	}
	if p.DisplayName == "" {
		p.DisplayName = p.Username
	}
	return p
}

// HasUsername reports whether the profile can appear on a leaderboard.
func (p Profile) HasUsername() bool {
	return strings.TrimSpace(p.Username) != ""
}

// Player is the identity a score is submitted under.
type Player struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// Player derives the leaderboard identity. Leaderboards show the username.
func (p Profile) Player() Player {
	return Player{UserID: p.UserID, DisplayName: p.Username}
}

// ProfileStore reads profiles. The bool result is false when the user has
// no profile.
type ProfileStore interface {
	FetchProfile(ctx context.Context, userID string) (Profile, bool, error)
}
