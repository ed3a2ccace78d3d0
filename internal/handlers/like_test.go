package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memLikeStore is an in-memory likeStore for exercising the toggle
// sequence without a database.
type memLikeStore struct {
	likes      map[string]map[string]bool // postID -> set of userIDs
	failAdd    bool
	failRemove bool
	countReads int
}

func newMemLikeStore() *memLikeStore {
	return &memLikeStore{likes: map[string]map[string]bool{}}
}

func (s *memLikeStore) RemoveLike(_ context.Context, postID, userID string) (bool, error) {
	if s.failRemove {
		return false, errors.New("remove failed")
	}
	if s.likes[postID][userID] {
		delete(s.likes[postID], userID)
		return true, nil
	}
	return false, nil
}

func (s *memLikeStore) AddLike(_ context.Context, postID, userID string) error {
	if s.failAdd {
		return errors.New("add failed")
	}
	if s.likes[postID] == nil {
		s.likes[postID] = map[string]bool{}
	}
	s.likes[postID][userID] = true
	return nil
}

func (s *memLikeStore) CountLikes(_ context.Context, postID string) (int, error) {
	s.countReads++
	return len(s.likes[postID]), nil
}

func TestToggleLikesThenUnlikes(t *testing.T) {
	store := newMemLikeStore()
	ctx := context.Background()

	state, err := toggle(ctx, store, "p1", "u1")
	require.NoError(t, err)
	assert.True(t, state.Liked)
	assert.Equal(t, 1, state.LikeCount)

	state, err = toggle(ctx, store, "p1", "u1")
	require.NoError(t, err)
	assert.False(t, state.Liked)
	assert.Equal(t, 0, state.LikeCount)
}

func TestToggleTwiceRestoresState(t *testing.T) {
	store := newMemLikeStore()
	ctx := context.Background()

	// two other users already like the post
	require.NoError(t, store.AddLike(ctx, "p1", "u2"))
	require.NoError(t, store.AddLike(ctx, "p1", "u3"))

	first, err := toggle(ctx, store, "p1", "u1")
	require.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Equal(t, 3, first.LikeCount)

	second, err := toggle(ctx, store, "p1", "u1")
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Equal(t, 2, second.LikeCount, "count returns to where it started")
	assert.False(t, store.likes["p1"]["u1"])
}

func TestToggleCountReflectsStoredRows(t *testing.T) {
	store := newMemLikeStore()
	ctx := context.Background()

	require.NoError(t, store.AddLike(ctx, "p1", "u2"))

	state, err := toggle(ctx, store, "p1", "u1")
	require.NoError(t, err)
	// the count is reread from the rows, never patched from the boolean
	assert.Equal(t, len(store.likes["p1"]), state.LikeCount)
}

func TestToggleAddFailureStopsSequence(t *testing.T) {
	store := newMemLikeStore()
	store.failAdd = true

	_, err := toggle(context.Background(), store, "p1", "u1")
	require.Error(t, err)
	assert.Zero(t, store.countReads, "no count read after a failed write")
	assert.Empty(t, store.likes["p1"])
}

func TestToggleRemoveFailureStopsSequence(t *testing.T) {
	store := newMemLikeStore()
	store.failRemove = true

	_, err := toggle(context.Background(), store, "p1", "u1")
	require.Error(t, err)
	assert.Zero(t, store.countReads)
}
