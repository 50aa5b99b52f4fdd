package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/arcade-portal/internal/identity"
	"github.com/vovakirdan/arcade-portal/internal/leaderboard"
)

// SQLite is the single-file backend used by local play and small servers.
type SQLite struct {
	db     *sql.DB
	hub    *leaderboard.Hub
	logger *log.Logger
}

// OpenSQLite creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(ctx context.Context, dbPath string, logger *log.Logger) (*SQLite, error) {
	if logger == nil {
		logger = log.Default()
	}
	dbPath, err := expandPath(dbPath)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Serialize access so writers never see SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	logger = logger.With("component", "storage", "driver", "sqlite")
	if err := migrate(ctx, db, goose.DialectSQLite3, "migrations/sqlite", logger); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLite{db: db, logger: logger}
	s.hub = leaderboard.NewHub(s.TopN, logger)
	return s, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetScore returns the stored entry for (gameID, userID).
func (s *SQLite) GetScore(ctx context.Context, gameID, userID string) (leaderboard.Entry, bool, error) {
	var (
		e           leaderboard.Entry
		submittedAt any
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT game_id, user_id, username, score, submitted_at
		 FROM leaderboard_scores
		 WHERE game_id = ? AND user_id = ?`,
		gameID, userID,
	).Scan(&e.GameID, &e.UserID, &e.DisplayName, &e.Score, &submittedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return leaderboard.Entry{}, false, nil
	}
	if err != nil {
		return leaderboard.Entry{}, false, fmt.Errorf("storage: cannot query score: %w", err)
	}
	e.SubmittedAt = parseTime(submittedAt)
	return e, true, nil
}

// UpsertScore creates or replaces the entry and notifies subscribers.
func (s *SQLite) UpsertScore(ctx context.Context, e leaderboard.Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leaderboard_scores (game_id, user_id, username, score, submitted_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (game_id, user_id) DO UPDATE SET
			username = excluded.username,
			score = excluded.score,
			submitted_at = excluded.submitted_at`,
		e.GameID, e.UserID, e.DisplayName, e.Score, e.SubmittedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}
	s.hub.Notify(ctx, e.GameID)
	return nil
}

// DeleteScore removes a user's entry from one game.
func (s *SQLite) DeleteScore(ctx context.Context, gameID, userID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM leaderboard_scores WHERE game_id = ? AND user_id = ?",
		gameID, userID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot delete score: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		s.hub.Notify(ctx, gameID)
	}
	return nil
}

// TopN retrieves the top n entries for the given game.
// Results are ordered by score descending, earliest submission first on ties.
func (s *SQLite) TopN(ctx context.Context, gameID string, n int) ([]leaderboard.Entry, error) {
	if n <= 0 {
		n = leaderboard.DefaultTopN
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, user_id, username, score, submitted_at
		 FROM leaderboard_scores
		 WHERE game_id = ?
		 ORDER BY score DESC, submitted_at ASC
		 LIMIT ?`,
		gameID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []leaderboard.Entry
	for rows.Next() {
		var (
			e           leaderboard.Entry
			submittedAt any
		)
		if err := rows.Scan(&e.GameID, &e.UserID, &e.DisplayName, &e.Score, &submittedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.SubmittedAt = parseTime(submittedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// SubscribeTopN implements leaderboard.Feed.
func (s *SQLite) SubscribeTopN(ctx context.Context, gameID string, n int, onUpdate func([]leaderboard.Entry)) (func(), error) {
	return s.hub.SubscribeTopN(ctx, gameID, n, onUpdate)
}

// Stats aggregates the leaderboard of gameID.
func (s *SQLite) Stats(ctx context.Context, gameID string) (GameStats, error) {
	stats := GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(submitted_at)
		 FROM leaderboard_scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Players, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// FetchProfile implements identity.ProfileStore.
func (s *SQLite) FetchProfile(ctx context.Context, userID string) (identity.Profile, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, username, display_name, email, avatar, description, location, favorite_genre, favorite_games
		 FROM profiles WHERE user_id = ?`,
		userID,
	)
	p, err := scanSQLiteProfile(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return identity.Profile{}, false, nil
	}
	if err != nil {
		return identity.Profile{}, false, fmt.Errorf("storage: cannot query profile: %w", err)
	}
	return p.Normalize(), true, nil
}

// SaveProfile creates or replaces a profile.
func (s *SQLite) SaveProfile(ctx context.Context, p identity.Profile) error {
	favorites, err := json.Marshal(p.FavoriteGames)
	if err != nil {
		return fmt.Errorf("storage: cannot encode favorite games: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, username, display_name, email, avatar, description, location, favorite_genre, favorite_games)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
			username = excluded.username,
			display_name = excluded.display_name,
			email = excluded.email,
			avatar = excluded.avatar,
			description = excluded.description,
			location = excluded.location,
			favorite_genre = excluded.favorite_genre,
			favorite_games = excluded.favorite_games`,
		p.UserID, p.Username, p.DisplayName, p.Email, p.Avatar, p.Description, p.Location, p.FavoriteGenre, string(favorites),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save profile: %w", err)
	}
	return nil
}

// ListProfiles returns every profile ordered by username.
func (s *SQLite) ListProfiles(ctx context.Context) ([]identity.Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, username, display_name, email, avatar, description, location, favorite_genre, favorite_games
		 FROM profiles ORDER BY username, user_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []identity.Profile
	for rows.Next() {
		p, err := scanSQLiteProfile(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan profile: %w", err)
		}
		profiles = append(profiles, p.Normalize())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return profiles, nil
}

// DeleteProfile removes a profile. Leaderboard entries are left alone.
func (s *SQLite) DeleteProfile(ctx context.Context, userID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSQLiteProfile(scan func(dest ...any) error) (identity.Profile, error) {
	var (
		p         identity.Profile
		favorites string
	)
	if err := scan(&p.UserID, &p.Username, &p.DisplayName, &p.Email, &p.Avatar,
		&p.Description, &p.Location, &p.FavoriteGenre, &favorites); err != nil {
		return p, err
	}
	if favorites != "" {
		if err := json.Unmarshal([]byte(favorites), &p.FavoriteGames); err != nil {
			return p, fmt.Errorf("storage: bad favorite_games for %s: %w", p.UserID, err)
		}
	}
	return p, nil
}

var _ Backend = (*SQLite)(nil)
