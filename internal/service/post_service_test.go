package service

import (
	"context"
	"strings"
	"testing"

	"commune/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	existingUser := func() *userRepoStub {
		repo := noopUserRepo()
		repo.getByIDFn = func(context.Context, uint) (*models.User, error) {
			return &models.User{ID: 1, Username: "alice"}, nil
		}
		return repo
	}

	t.Run("visibility defaults to public", func(t *testing.T) {
		postRepo := noopPostRepo()
		var created *models.Post
		postRepo.createFn = func(_ context.Context, p *models.Post) error {
			p.ID = 10
			created = p
			return nil
		}
		postRepo.getByIDFn = func(context.Context, uint) (*models.Post, error) { return created, nil }

		svc := NewPostService(postRepo, existingUser())
		post, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Content: "hello"})

		require.NoError(t, err)
		assert.Equal(t, models.VisibilityPublic, post.Visibility)
	})

	t.Run("invalid visibility rejected", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), existingUser())
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Content: "hello", Visibility: "everyone"})

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})

	t.Run("empty content rejected", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), existingUser())
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1})

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})

	t.Run("oversized content rejected", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), existingUser())
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Content: strings.Repeat("x", maxPostLen+1)})

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})

	t.Run("unknown owner propagates not found", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), noopUserRepo())
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 99, Content: "hello"})

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestUpdatePost(t *testing.T) {
	ctx := context.Background()

	storedPost := func() *models.Post {
		title := "original title"
		return &models.Post{
			ID:         10,
			UserID:     1,
			Title:      &title,
			Content:    "original content",
			Visibility: models.VisibilityPublic,
		}
	}

	t.Run("only supplied fields change", func(t *testing.T) {
		repo := noopPostRepo()
		current := storedPost()
		repo.getByIDFn = func(context.Context, uint) (*models.Post, error) { return current, nil }

		svc := NewPostService(repo, noopUserRepo())
		content := "edited content"
		post, err := svc.UpdatePost(ctx, UpdatePostInput{ID: 10, Content: &content})

		require.NoError(t, err)
		assert.Equal(t, "edited content", post.Content)
		require.NotNil(t, post.Title)
		assert.Equal(t, "original title", *post.Title)
		assert.Equal(t, uint(1), post.UserID)
	})

	t.Run("invalid visibility rejected", func(t *testing.T) {
		repo := noopPostRepo()
		repo.getByIDFn = func(context.Context, uint) (*models.Post, error) { return storedPost(), nil }

		svc := NewPostService(repo, noopUserRepo())
		bad := "everyone"
		_, err := svc.UpdatePost(ctx, UpdatePostInput{ID: 10, Visibility: &bad})

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})

	t.Run("missing post propagates not found", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), noopUserRepo())
		content := "x"
		_, err := svc.UpdatePost(ctx, UpdatePostInput{ID: 99, Content: &content})

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestListUserPosts(t *testing.T) {
	// Listing by an unknown user is not an error, just an empty list.
	repo := noopPostRepo()
	svc := NewPostService(repo, noopUserRepo())

	posts, err := svc.ListUserPosts(context.Background(), 999)
	assert.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}
