package community

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-portal/internal/identity"
	"github.com/vovakirdan/arcade-portal/internal/leaderboard"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListProfiles(ctx context.Context) ([]identity.Profile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]identity.Profile), args.Error(1)
}

func (m *mockStore) GetScore(ctx context.Context, gameID, userID string) (leaderboard.Entry, bool, error) {
	args := m.Called(ctx, gameID, userID)
	return args.Get(0).(leaderboard.Entry), args.Bool(1), args.Error(2)
}

func games() []registry.GameInfo {
	return []registry.GameInfo{
		{ID: "pingpong", Title: "Pingpong"},
		{ID: "quiz", Title: "QuizGame"},
		{ID: "snake", Title: "Snake"},
	}
}

func TestMembersFiltersAndDedupes(t *testing.T) {
	store := &mockStore{}
	store.On("ListProfiles", mock.Anything).Return([]identity.Profile{
		{UserID: "u1", Username: "Ann", Email: "ann@example.com"},
		{UserID: "u2", Username: "bob"},
		{UserID: "u3"},
		{UserID: "u4", Username: "Ann"},
		{UserID: "u5", Username: " Émile "},
		{UserID: "u6", Username: "1st"},
	}, nil)

	members, err := NewService(store, games, nil).Members(context.Background())
	require.NoError(t, err)

	require.Len(t, members, 2)
	assert.Equal(t, "u1", members[0].UserID)
	assert.Equal(t, "Ann", members[0].DisplayName)
	assert.Equal(t, identity.DefaultAvatar, members[0].Avatar)
	assert.Equal(t, "Émile", members[1].Username)
}

func TestMembersStoreError(t *testing.T) {
	store := &mockStore{}
	store.On("ListProfiles", mock.Anything).Return([]identity.Profile(nil), errors.New("offline"))

	_, err := NewService(store, games, nil).Members(context.Background())
	assert.Error(t, err)
}

func TestScoresReportsMissingAsNil(t *testing.T) {
	store := &mockStore{}
	store.On("GetScore", mock.Anything, "pingpong", "u1").Return(leaderboard.Entry{Score: 12}, true, nil)
	store.On("GetScore", mock.Anything, "quiz", "u1").Return(leaderboard.Entry{}, false, nil)
	store.On("GetScore", mock.Anything, "snake", "u1").Return(leaderboard.Entry{Score: 0}, true, nil)

	scores, err := NewService(store, games, nil).Scores(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, scores, 3)
	assert.Equal(t, "pingpong", scores[0].GameID)
	require.NotNil(t, scores[0].Score)
	assert.Equal(t, 12, *scores[0].Score)
	assert.Equal(t, "QuizGame", scores[1].Title)
	assert.Nil(t, scores[1].Score)
	require.NotNil(t, scores[2].Score)
	assert.Zero(t, *scores[2].Score)
	store.AssertNumberOfCalls(t, "GetScore", 3)
}

func TestScoresFailure(t *testing.T) {
	store := &mockStore{}
	store.On("GetScore", mock.Anything, mock.Anything, "u1").Return(leaderboard.Entry{}, false, errors.New("timeout"))

	_, err := NewService(store, games, nil).Scores(context.Background(), "u1")
	assert.ErrorContains(t, err, "timeout")
}
