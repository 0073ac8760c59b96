package signals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"Wayfare/internal/core/trips"
)

// MockSignalRepository is a mock implementation of Repository
type MockSignalRepository struct {
	mock.Mock
}

func (m *MockSignalRepository) CountLikes(ctx context.Context, tripIDs []int64) (map[int64]int, error) {
	args := m.Called(ctx, tripIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

func (m *MockSignalRepository) CountSaves(ctx context.Context, tripIDs []int64) (map[int64]int, error) {
	args := m.Called(ctx, tripIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

func (m *MockSignalRepository) CountComments(ctx context.Context, tripIDs []int64) (map[int64]int, error) {
	args := m.Called(ctx, tripIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

func (m *MockSignalRepository) ViewerLikes(ctx context.Context, viewerID int64, tripIDs []int64) (map[int64]struct{}, error) {
	args := m.Called(ctx, viewerID, tripIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]struct{}), args.Error(1)
}

func (m *MockSignalRepository) ViewerSaves(ctx context.Context, viewerID int64, tripIDs []int64) (map[int64]struct{}, error) {
	args := m.Called(ctx, viewerID, tripIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]struct{}), args.Error(1)
}

func (m *MockSignalRepository) ViewerFollowing(ctx context.Context, viewerID int64, authorIDs []int64) (map[int64]struct{}, error) {
	args := m.Called(ctx, viewerID, authorIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]struct{}), args.Error(1)
}

func testTrip(id, authorID int64) *trips.Trip {
	return &trips.Trip{
		ID:        id,
		Author:    trips.Author{ID: authorID},
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCollect_MergesAllSignals(t *testing.T) {
	repo := new(MockSignalRepository)
	batch := []*trips.Trip{testTrip(1, 10), testTrip(2, 11), testTrip(3, 10)}
	tripIDs := []int64{1, 2, 3}
	authorIDs := []int64{10, 11}

	repo.On("CountLikes", mock.Anything, tripIDs).Return(map[int64]int{1: 4, 2: 1}, nil)
	repo.On("CountSaves", mock.Anything, tripIDs).Return(map[int64]int{1: 2}, nil)
	repo.On("CountComments", mock.Anything, tripIDs).Return(map[int64]int{3: 7}, nil)
	repo.On("ViewerLikes", mock.Anything, int64(5), tripIDs).Return(map[int64]struct{}{2: {}}, nil)
	repo.On("ViewerSaves", mock.Anything, int64(5), tripIDs).Return(map[int64]struct{}{}, nil)
	repo.On("ViewerFollowing", mock.Anything, int64(5), authorIDs).Return(map[int64]struct{}{11: {}}, nil)

	bundle, err := NewAggregator(repo).Collect(context.Background(), 5, batch)
	require.NoError(t, err)

	assert.Equal(t, EngagementCounts{Likes: 4, Saves: 2}, bundle.CountsFor(1))
	assert.Equal(t, EngagementCounts{Likes: 1}, bundle.CountsFor(2))
	assert.Equal(t, EngagementCounts{Comments: 7}, bundle.CountsFor(3))
	assert.True(t, bundle.Liked(2))
	assert.False(t, bundle.Liked(1))
	assert.False(t, bundle.Saved(1))
	assert.True(t, bundle.Follows(11))
	assert.False(t, bundle.Follows(10))

	repo.AssertExpectations(t)
}

func TestCollect_AnonymousSkipsViewerLookups(t *testing.T) {
	repo := new(MockSignalRepository)
	batch := []*trips.Trip{testTrip(1, 10)}

	repo.On("CountLikes", mock.Anything, mock.Anything).Return(map[int64]int{}, nil)
	repo.On("CountSaves", mock.Anything, mock.Anything).Return(map[int64]int{}, nil)
	repo.On("CountComments", mock.Anything, mock.Anything).Return(map[int64]int{}, nil)

	bundle, err := NewAggregator(repo).Collect(context.Background(), 0, batch)
	require.NoError(t, err)

	assert.Empty(t, bundle.ViewerLikes)
	assert.Empty(t, bundle.ViewerSaves)
	assert.Empty(t, bundle.ViewerFollowing)

	repo.AssertNotCalled(t, "ViewerLikes", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "ViewerSaves", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "ViewerFollowing", mock.Anything, mock.Anything, mock.Anything)
}

func TestCollect_EmptyBatchIssuesNoQueries(t *testing.T) {
	repo := new(MockSignalRepository)

	bundle, err := NewAggregator(repo).Collect(context.Background(), 5, nil)
	require.NoError(t, err)

	assert.Empty(t, bundle.Counts)
	repo.AssertNotCalled(t, "CountLikes", mock.Anything, mock.Anything)
}

func TestCollect_NoPartialResultsOnFailure(t *testing.T) {
	repo := new(MockSignalRepository)
	batch := []*trips.Trip{testTrip(1, 10)}
	storeErr := errors.New("connection refused")

	repo.On("CountLikes", mock.Anything, mock.Anything).Return(map[int64]int{1: 4}, nil).Maybe()
	repo.On("CountSaves", mock.Anything, mock.Anything).Return(nil, storeErr)
	repo.On("CountComments", mock.Anything, mock.Anything).Return(map[int64]int{}, nil).Maybe()

	bundle, err := NewAggregator(repo).Collect(context.Background(), 0, batch)

	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, bundle)
}

func TestCollect_DeduplicatesAuthorBatch(t *testing.T) {
	repo := new(MockSignalRepository)
	batch := []*trips.Trip{testTrip(1, 10), testTrip(2, 10), testTrip(3, 10)}

	repo.On("CountLikes", mock.Anything, mock.Anything).Return(map[int64]int{}, nil)
	repo.On("CountSaves", mock.Anything, mock.Anything).Return(map[int64]int{}, nil)
	repo.On("CountComments", mock.Anything, mock.Anything).Return(map[int64]int{}, nil)
	repo.On("ViewerLikes", mock.Anything, int64(5), mock.Anything).Return(map[int64]struct{}{}, nil)
	repo.On("ViewerSaves", mock.Anything, int64(5), mock.Anything).Return(map[int64]struct{}{}, nil)
	repo.On("ViewerFollowing", mock.Anything, int64(5), []int64{10}).Return(map[int64]struct{}{}, nil)

	_, err := NewAggregator(repo).Collect(context.Background(), 5, batch)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}
