package repository

import (
	"context"
	"testing"

	"commune/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_GetByIDPreloadsAuthor(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user, post := seedPostWithAuthor(t, db)

	got, err := repo.GetByID(ctx, post.ID)
	assert.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
	assert.Equal(t, user.Username, got.User.Username)
}

func TestPostRepository_GetByIDMissing(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	var appErr *models.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepository_ListByUser(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice, first := seedPostWithAuthor(t, db)
	second := &models.Post{UserID: alice.ID, Content: "second post", Visibility: models.VisibilityPublic}
	require.NoError(t, repo.Create(ctx, second))

	bob := &models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(bob).Error)
	other := &models.Post{UserID: bob.ID, Content: "bob post", Visibility: models.VisibilityPublic}
	require.NoError(t, repo.Create(ctx, other))

	posts, err := repo.ListByUser(ctx, alice.ID)
	assert.NoError(t, err)
	if assert.Len(t, posts, 2) {
		assert.Equal(t, first.ID, posts[0].ID)
		assert.Equal(t, second.ID, posts[1].ID)
	}
}

func TestPostRepository_ListByUserEmpty(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPostRepository(db)

	// An unknown user id is not an error, just an empty list.
	posts, err := repo.ListByUser(context.Background(), 999)
	assert.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}
