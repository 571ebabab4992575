package repository

import (
	"context"
	"testing"

	"commune/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}))
	return db
}

func seedPostWithAuthor(t *testing.T, db *gorm.DB) (*models.User, *models.Post) {
	t.Helper()
	user := &models.User{Username: "author", Email: "author@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(user).Error)

	post := &models.Post{UserID: user.ID, Content: "first post", Visibility: models.VisibilityPublic}
	require.NoError(t, db.Create(post).Error)
	return user, post
}

func TestCommentRepository_Threading(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user, post := seedPostWithAuthor(t, db)

	c1 := &models.Comment{UserID: user.ID, PostID: post.ID, Content: "top one"}
	require.NoError(t, repo.Create(ctx, c1))
	c2 := &models.Comment{UserID: user.ID, PostID: post.ID, Content: "top two"}
	require.NoError(t, repo.Create(ctx, c2))

	r1 := &models.Comment{UserID: user.ID, PostID: post.ID, ParentID: &c1.ID, Content: "reply one"}
	require.NoError(t, repo.Create(ctx, r1))
	r2 := &models.Comment{UserID: user.ID, PostID: post.ID, ParentID: &c1.ID, Content: "reply two"}
	require.NoError(t, repo.Create(ctx, r2))

	t.Run("top level excludes replies and orders by id", func(t *testing.T) {
		top, err := repo.ListTopLevel(ctx, post.ID)
		assert.NoError(t, err)
		if assert.Len(t, top, 2) {
			assert.Equal(t, c1.ID, top[0].ID)
			assert.Equal(t, c2.ID, top[1].ID)
		}
	})

	t.Run("replies of a comment in insertion order", func(t *testing.T) {
		replies, err := repo.ListReplies(ctx, c1.ID)
		assert.NoError(t, err)
		if assert.Len(t, replies, 2) {
			assert.Equal(t, r1.ID, replies[0].ID)
			assert.Equal(t, r2.ID, replies[1].ID)
		}
	})

	t.Run("replies of a leaf comment is an empty list", func(t *testing.T) {
		replies, err := repo.ListReplies(ctx, c2.ID)
		assert.NoError(t, err)
		assert.NotNil(t, replies)
		assert.Empty(t, replies)
	})
}

func TestCommentRepository_DeleteLeavesChildrenDangling(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user, post := seedPostWithAuthor(t, db)

	parent := &models.Comment{UserID: user.ID, PostID: post.ID, Content: "parent"}
	require.NoError(t, repo.Create(ctx, parent))
	reply := &models.Comment{UserID: user.ID, PostID: post.ID, ParentID: &parent.ID, Content: "child"}
	require.NoError(t, repo.Create(ctx, reply))

	require.NoError(t, repo.Delete(ctx, parent.ID))

	_, err := repo.GetByID(ctx, parent.ID)
	var appErr *models.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	// The child row survives and still references the deleted parent.
	survivor, err := repo.GetByID(ctx, reply.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, survivor.ParentID) {
		assert.Equal(t, parent.ID, *survivor.ParentID)
	}

	// The dangling reply no longer surfaces as a top-level comment.
	top, err := repo.ListTopLevel(ctx, post.ID)
	assert.NoError(t, err)
	assert.Empty(t, top)
}

func TestCommentRepository_DeleteMissing(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewCommentRepository(db)

	err := repo.Delete(context.Background(), 12345)
	var appErr *models.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
