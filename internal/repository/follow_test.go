package repository

import (
	"context"
	"errors"
	"testing"

	"foodgram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	follower := createTestUser(t, db, "follower")
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	t.Run("create and exists", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, follower.ID, alice.ID))

		exists, err := repo.Exists(ctx, follower.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.Exists(ctx, follower.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("anonymous never follows anyone", func(t *testing.T) {
		exists, err := repo.Exists(ctx, 0, alice.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("duplicate subscription conflicts", func(t *testing.T) {
		err := repo.Create(ctx, follower.ID, alice.ID)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "CONFLICT", appErr.Code)
	})

	t.Run("list authors", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, follower.ID, bob.ID))

		authors, total, err := repo.ListAuthors(ctx, follower.ID, 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, authors, 2)
		// Most recent subscription first.
		assert.Equal(t, "bob", authors[0].Username)
		assert.Equal(t, "alice", authors[1].Username)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, follower.ID, alice.ID))
		assert.NoError(t, repo.Delete(ctx, follower.ID, alice.ID))

		_, total, err := repo.ListAuthors(ctx, follower.ID, 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})
}
