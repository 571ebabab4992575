package service

import (
	"context"

	"commune/internal/models"
	"commune/internal/repository"
	"commune/internal/validation"
)

const maxPostLen = 50000

// PostService implements the post mutation contract.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// CreatePostInput carries the fields accepted on post creation. Title is
// optional and stored as null when absent.
type CreatePostInput struct {
	UserID     uint
	Title      *string
	Content    string
	ImageURL   string
	Visibility string
}

// UpdatePostInput carries a partial field set; nil fields are left untouched.
// The owning user is immutable and therefore not part of the input.
type UpdatePostInput struct {
	ID         uint
	Title      *string
	Content    *string
	ImageURL   *string
	Visibility *string
}

// NewPostService creates a PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// ListPosts returns every post in insertion order.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// GetPost returns a single post with its author.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListUserPosts returns every post owned by the given user, in insertion order.
func (s *PostService) ListUserPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.postRepo.ListByUser(ctx, userID)
}

// CreatePost validates input and persists a post owned by the given user.
// Visibility defaults to public when not supplied.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidateContent(in.Content, maxPostLen); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	visibility := in.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if !models.ValidVisibility(visibility) {
		return nil, models.NewValidationError("visibility must be one of public, friends, private")
	}

	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:     in.UserID,
		Title:      in.Title,
		Content:    in.Content,
		ImageURL:   in.ImageURL,
		Visibility: visibility,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload to attach the author
	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost merges only the supplied fields into the stored row.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		post.Title = in.Title
	}
	if in.Content != nil {
		if err := validation.ValidateContent(*in.Content, maxPostLen); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Content = *in.Content
	}
	if in.ImageURL != nil {
		post.ImageURL = *in.ImageURL
	}
	if in.Visibility != nil {
		if !models.ValidVisibility(*in.Visibility) {
			return nil, models.NewValidationError("visibility must be one of public, friends, private")
		}
		post.Visibility = *in.Visibility
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes the post row. Comments on the post are not cascaded.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	return s.postRepo.Delete(ctx, id)
}
