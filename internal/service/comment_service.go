package service

import (
	"context"

	"commune/internal/models"
	"commune/internal/repository"
	"commune/internal/validation"
)

const maxCommentLen = 10000

// CommentService implements the comment mutation contract and the two read
// projections over the comment forest: the threaded listing of a post's
// top-level comments (one materialized reply layer) and the flat listing of
// a comment's direct replies.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// CreateCommentInput carries the fields accepted on comment creation. A nil
// ParentID creates a top-level comment; otherwise the parent must exist and
// belong to the same post.
type CreateCommentInput struct {
	UserID   uint
	PostID   uint
	ParentID *uint
	Content  string
}

// UpdateCommentInput carries a partial field set; nil fields are left
// untouched. Ownership and threading are immutable.
type UpdateCommentInput struct {
	ID      uint
	Content *string
}

// NewCommentService creates a CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// ListComments returns every comment in insertion order.
func (s *CommentService) ListComments(ctx context.Context) ([]*models.Comment, error) {
	return s.commentRepo.List(ctx)
}

// GetComment returns a single comment with its author.
func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// CreateComment validates input and persists a comment. The post must exist;
// when a parent is named it must exist and belong to the same post.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := validation.ValidateContent(in.Content, maxCommentLen); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		UserID:   in.UserID,
		PostID:   in.PostID,
		ParentID: in.ParentID,
		Content:  in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Reload to attach the author
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// UpdateComment merges only the supplied fields into the stored row.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Content != nil {
		if err := validation.ValidateContent(*in.Content, maxCommentLen); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		comment.Content = *in.Content
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// DeleteComment removes the comment. Children are not cascaded: their
// parent_id keeps referencing the deleted comment unless a caller clears it.
func (s *CommentService) DeleteComment(ctx context.Context, id uint) error {
	return s.commentRepo.Delete(ctx, id)
}

// ListPostComments returns the threaded projection of a post's comment
// section: every top-level comment in insertion order, each carrying exactly
// one materialized layer of direct replies. Deeper levels are never
// prefetched; callers expand them through ListReplies.
func (s *CommentService) ListPostComments(ctx context.Context, postID uint) ([]*models.CommentThread, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	topLevel, err := s.commentRepo.ListTopLevel(ctx, postID)
	if err != nil {
		return nil, err
	}

	threads := make([]*models.CommentThread, 0, len(topLevel))
	for _, comment := range topLevel {
		replies, err := s.commentRepo.ListReplies(ctx, comment.ID)
		if err != nil {
			return nil, err
		}

		thread := &models.CommentThread{Comment: *comment, Replies: []*models.CommentThread{}}
		for _, reply := range replies {
			thread.Replies = append(thread.Replies, &models.CommentThread{
				Comment: *reply,
				Replies: []*models.CommentThread{},
			})
		}
		threads = append(threads, thread)
	}
	return threads, nil
}

// ListReplies returns the flat projection of a comment's direct replies in
// insertion order. The comment must exist.
func (s *CommentService) ListReplies(ctx context.Context, commentID uint) ([]*models.Comment, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListReplies(ctx, commentID)
}
