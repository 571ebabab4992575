package repository

import (
	"context"
	"errors"

	"commune/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations,
// including the two threading queries: top-level comments of a post and
// direct replies of a comment. Neither query recurses past one level;
// deeper expansion is the caller's responsibility.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	List(ctx context.Context) ([]*models.Comment, error)
	ListTopLevel(ctx context.Context, postID uint) ([]*models.Comment, error)
	ListReplies(ctx context.Context, parentID uint) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) List(ctx context.Context) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	if err := r.db.WithContext(ctx).Preload("User").Order("id asc").Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) ListTopLevel(ctx context.Context, postID uint) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("id asc").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) ListReplies(ctx context.Context, parentID uint) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("parent_id = ?", parentID).
		Order("id asc").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the comment row only. Children are untouched; their
// parent_id keeps referencing the deleted id.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if tx.Error != nil {
		return models.NewInternalError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}
