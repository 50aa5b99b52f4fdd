// Package storage implements the portal's persistence collaborator:
// per-game best-score entries with live top-N feeds, and user profiles.
// SQLite (pure Go modernc.org/sqlite), PostgreSQL (pgx) and in-memory
// backends share one interface.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/identity"
	"github.com/vovakirdan/arcade-portal/internal/leaderboard"
)

// ErrNotFound is returned when a profile to update or delete does not exist.
var ErrNotFound = errors.New("storage: not found")

// Backend is everything the portal needs from persistence.
type Backend interface {
	leaderboard.Store
	leaderboard.Feed
	identity.ProfileStore

	// TopN returns the best n entries of a game, score descending.
	TopN(ctx context.Context, gameID string, n int) ([]leaderboard.Entry, error)
	// DeleteScore removes a user's entry from one game.
	DeleteScore(ctx context.Context, gameID, userID string) error
	// Stats aggregates a game's leaderboard.
	Stats(ctx context.Context, gameID string) (GameStats, error)

	SaveProfile(ctx context.Context, p identity.Profile) error
	ListProfiles(ctx context.Context) ([]identity.Profile, error)
	DeleteProfile(ctx context.Context, userID string) error

	Close() error
}

// GameStats contains aggregated statistics for a game's leaderboard.
type GameStats struct {
	GameID     string
	Players    int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open connects the backend selected by cfg.
func Open(ctx context.Context, cfg config.StorageConfig, logger *log.Logger) (Backend, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg.DSN, cfg.ConnectRetries, logger)
	case config.DriverSQLite, "":
		return OpenSQLite(ctx, cfg.Path, logger)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

// expandPath expands a leading ~ and creates the parent directory.
func expandPath(dbPath string) (string, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	return dbPath, nil
}

// sqliteTimeLayout is fixed width, so text order in SQLite is time order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// parseTime handles the representations SQLite hands back for DATETIME.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{
			sqliteTimeLayout,
			time.RFC3339Nano,
			"2006-01-02 15:04:05.999999999-07:00",
			"2006-01-02 15:04:05",
		} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
