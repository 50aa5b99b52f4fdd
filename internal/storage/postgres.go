package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"

	"github.com/vovakirdan/arcade-portal/internal/identity"
	"github.com/vovakirdan/arcade-portal/internal/leaderboard"
)

// notifyChannel is the LISTEN channel the leaderboard trigger publishes to.
const notifyChannel = "leaderboard_changes"

const listenTimeout = 10 * time.Second

// Postgres is the shared backend used when several hosts serve one portal.
// Changes made by any host reach local subscribers through LISTEN/NOTIFY.
type Postgres struct {
	pool   *pgxpool.Pool
	hub    *leaderboard.Hub
	logger *log.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	ready     chan struct{}
	readyOnce sync.Once
}

// OpenPostgres connects to dsn, retrying the first ping up to retries times
// with exponential backoff, runs migrations and starts the change listener.
func OpenPostgres(ctx context.Context, dsn string, retries uint64, logger *log.Logger) (*Postgres, error) {
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("component", "storage", "driver", "postgres")

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot parse dsn: %w", err)
	}

	backoff := retry.WithMaxRetries(retries, retry.NewExponential(200*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			logger.Warn("database not ready", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	// The sql.DB shares the pool; closing the pool releases it.
	db := stdlib.OpenDBFromPool(pool)
	if err := migrate(ctx, db, goose.DialectPostgres, "migrations/postgres", logger); err != nil {
		pool.Close()
		return nil, err
	}

	s := &Postgres{pool: pool, logger: logger, ready: make(chan struct{})}
	s.hub = leaderboard.NewHub(s.TopN, logger)

	listenCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	go s.listen(listenCtx)

	select {
	case <-s.ready:
	case <-ctx.Done():
		s.Close()
		return nil, fmt.Errorf("storage: listener not started: %w", ctx.Err())
	case <-time.After(listenTimeout):
		s.Close()
		return nil, errors.New("storage: listener not started: timeout")
	}

	return s, nil
}

// listen relays trigger notifications to the hub until ctx is cancelled.
// A dropped connection is re-acquired after a short pause.
func (s *Postgres) listen(ctx context.Context) {
	defer s.wg.Done()
	for ctx.Err() == nil {
		if err := s.listenOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("leaderboard listener failed", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
		}
	}
}

func (s *Postgres) listenOnce(ctx context.Context) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		return err
	}
	s.logger.Debug("listening for leaderboard changes")
	s.readyOnce.Do(func() { close(s.ready) })

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		s.hub.Notify(ctx, n.Payload)
	}
}

// Close stops the listener and closes the pool.
func (s *Postgres) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.pool.Close()
	return nil
}

// GetScore returns the stored entry for (gameID, userID).
func (s *Postgres) GetScore(ctx context.Context, gameID, userID string) (leaderboard.Entry, bool, error) {
	var e leaderboard.Entry
	err := s.pool.QueryRow(ctx,
		`SELECT game_id, user_id, username, score, submitted_at
		 FROM leaderboard_scores
		 WHERE game_id = $1 AND user_id = $2`,
		gameID, userID,
	).Scan(&e.GameID, &e.UserID, &e.DisplayName, &e.Score, &e.SubmittedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return leaderboard.Entry{}, false, nil
	}
	if err != nil {
		return leaderboard.Entry{}, false, fmt.Errorf("storage: cannot query score: %w", err)
	}
	return e, true, nil
}

// UpsertScore creates or replaces the entry. Subscribers are notified by
// the table trigger.
func (s *Postgres) UpsertScore(ctx context.Context, e leaderboard.Entry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO leaderboard_scores (game_id, user_id, username, score, submitted_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (game_id, user_id) DO UPDATE SET
			username = EXCLUDED.username,
			score = EXCLUDED.score,
			submitted_at = EXCLUDED.submitted_at`,
		e.GameID, e.UserID, e.DisplayName, e.Score, e.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}
	return nil
}

// DeleteScore removes a user's entry from one game.
func (s *Postgres) DeleteScore(ctx context.Context, gameID, userID string) error {
	_, err := s.pool.Exec(ctx,
		"DELETE FROM leaderboard_scores WHERE game_id = $1 AND user_id = $2",
		gameID, userID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot delete score: %w", err)
	}
	return nil
}

// TopN retrieves the top n entries for the given game.
func (s *Postgres) TopN(ctx context.Context, gameID string, n int) ([]leaderboard.Entry, error) {
	if n <= 0 {
		n = leaderboard.DefaultTopN
	}

	rows, err := s.pool.Query(ctx,
		`SELECT game_id, user_id, username, score, submitted_at
		 FROM leaderboard_scores
		 WHERE game_id = $1
		 ORDER BY score DESC, submitted_at ASC
		 LIMIT $2`,
		gameID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []leaderboard.Entry
	for rows.Next() {
		var e leaderboard.Entry
		if err := rows.Scan(&e.GameID, &e.UserID, &e.DisplayName, &e.Score, &e.SubmittedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// SubscribeTopN implements leaderboard.Feed.
func (s *Postgres) SubscribeTopN(ctx context.Context, gameID string, n int, onUpdate func([]leaderboard.Entry)) (func(), error) {
	return s.hub.SubscribeTopN(ctx, gameID, n, onUpdate)
}

// Stats aggregates the leaderboard of gameID.
func (s *Postgres) Stats(ctx context.Context, gameID string) (GameStats, error) {
	stats := GameStats{GameID: gameID}
	var lastPlayed *time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)::float8, MAX(submitted_at)
		 FROM leaderboard_scores WHERE game_id = $1`,
		gameID,
	).Scan(&stats.Players, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	if lastPlayed != nil {
		stats.LastPlayed = *lastPlayed
	}
	return stats, nil
}

const profileColumns = `user_id, username, display_name, email, avatar, description, location, favorite_genre, favorite_games`

func scanPostgresProfile(row pgx.Row) (identity.Profile, error) {
	var p identity.Profile
	err := row.Scan(&p.UserID, &p.Username, &p.DisplayName, &p.Email, &p.Avatar,
		&p.Description, &p.Location, &p.FavoriteGenre, &p.FavoriteGames)
	return p, err
}

// FetchProfile implements identity.ProfileStore.
func (s *Postgres) FetchProfile(ctx context.Context, userID string) (identity.Profile, bool, error) {
	p, err := scanPostgresProfile(s.pool.QueryRow(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE user_id = $1", userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return identity.Profile{}, false, nil
	}
	if err != nil {
		return identity.Profile{}, false, fmt.Errorf("storage: cannot query profile: %w", err)
	}
	return p.Normalize(), true, nil
}

// SaveProfile creates or replaces a profile.
func (s *Postgres) SaveProfile(ctx context.Context, p identity.Profile) error {
	favorites := p.FavoriteGames
	if favorites == nil {
		favorites = []string{}
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (`+profileColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			display_name = EXCLUDED.display_name,
			email = EXCLUDED.email,
			avatar = EXCLUDED.avatar,
			description = EXCLUDED.description,
			location = EXCLUDED.location,
			favorite_genre = EXCLUDED.favorite_genre,
			favorite_games = EXCLUDED.favorite_games`,
		p.UserID, p.Username, p.DisplayName, p.Email, p.Avatar, p.Description, p.Location, p.FavoriteGenre, favorites,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save profile: %w", err)
	}
	return nil
}

// ListProfiles returns every profile ordered by username.
func (s *Postgres) ListProfiles(ctx context.Context) ([]identity.Profile, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+profileColumns+" FROM profiles ORDER BY username, user_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []identity.Profile
	for rows.Next() {
		p, err := scanPostgresProfile(rows)
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

// DeleteProfile removes a profile.
func (s *Postgres) DeleteProfile(ctx context.Context, userID string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM profiles WHERE user_id = $1", userID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Backend = (*Postgres)(nil)
