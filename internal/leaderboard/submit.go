package leaderboard

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/engine"
	"github.com/vovakirdan/arcade-portal/internal/identity"
)

// Outcome reports what a submission did. Submissions never return errors.
type Outcome int

const (
	OutcomeWritten   Outcome = iota // entry created or improved
	OutcomeNotHigher                // stored score is equal or higher
	OutcomeSkipped                  // no username could be resolved
	OutcomeFailed                   // transport error, logged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeNotHigher:
		return "not_higher"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Resolver turns a user id into the identity a score is recorded under.
type Resolver interface {
	Resolve(ctx context.Context, userID string) (identity.Player, bool)
}

// Submitter records best scores.
//
// The read and the write are separate calls, so two submissions for the same
// user racing from different hosts can let the lower score land last.
type Submitter struct {
	store   Store
	players Resolver
	logger  *log.Logger
	now     func() time.Time
}

// NewSubmitter creates a submitter writing to store.
func NewSubmitter(store Store, players Resolver, logger *log.Logger) *Submitter {
	if logger == nil {
		logger = log.Default()
	}
	return &Submitter{
		store:   store,
		players: players,
		logger:  logger.With("component", "leaderboard"),
		now:     time.Now,
	}
}

// SubmitScore stores score for userID in gameID when there is no entry yet
// or the stored score is strictly lower.
func (s *Submitter) SubmitScore(ctx context.Context, gameID, userID, displayName string, score int) Outcome {
	prev, found, err := s.store.GetScore(ctx, gameID, userID)
	if err != nil {
		s.logger.Error("error reading previous score", "game", gameID, "user", userID, "error", err)
		return OutcomeFailed
	}
	if found && score <= prev.Score {
		s.logger.Debug("score not higher than stored best", "game", gameID, "user", userID, "score", score, "best", prev.Score)
		return OutcomeNotHigher
	}

	entry := Entry{
		GameID:      gameID,
		UserID:      userID,
		DisplayName: displayName,
		Score:       score,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.store.UpsertScore(ctx, entry); err != nil {
		s.logger.Error("error submitting score", "game", gameID, "user", userID, "error", err)
		return OutcomeFailed
	}
	s.logger.Info("score submitted", "game", gameID, "user", userID, "score", score)
	return OutcomeWritten
}

// SubmitIfReady resolves the user's username first, fetching the profile if
// it is not cached, and skips silently when there is none.
func (s *Submitter) SubmitIfReady(ctx context.Context, gameID, userID string, score int) Outcome {
	if userID == "" || s.players == nil {
		return OutcomeSkipped
	}
	player, ok := s.players.Resolve(ctx, userID)
	if !ok {
		s.logger.Debug("no username, skipping submission", "game", gameID, "user", userID)
		return OutcomeSkipped
	}
	return s.SubmitScore(ctx, gameID, player.UserID, player.DisplayName, score)
}

// Record submits a finished session's score for userID.
func (s *Submitter) Record(ctx context.Context, userID string, r engine.Result) Outcome {
	return s.SubmitIfReady(ctx, r.GameID, userID, r.Score)
}
