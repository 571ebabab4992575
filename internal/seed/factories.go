// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"time"

	"commune/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db           *gorm.DB
	passwordHash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
// The bcrypt hash for the shared demo password is computed once; hashing
// per user dominates seeding time otherwise.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	hash, _ := bcrypt.GenerateFromPassword([]byte("Password123!demo"), bcrypt.DefaultCost)
	return &Factory{db: db, passwordHash: string(hash)}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:        fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:           gofakeit.Email(),
		PasswordHash:    f.passwordHash,
		Bio:             gofakeit.Sentence(10),
		ProfileImageURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", uuid.NewString()),
		CoverImageURL:   fmt.Sprintf("https://picsum.photos/seed/%s/1200/400", uuid.NewString()),
		IsActive:        true,
		Role:            models.DefaultRole,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a sample `models.Post` for the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	title := gofakeit.Sentence(5)
	post := &models.Post{
		UserID:     user.ID,
		Title:      &title,
		Content:    gofakeit.Paragraph(1, 3, 5, "\n"),
		ImageURL:   fmt.Sprintf("https://picsum.photos/seed/%s/800/800", uuid.NewString()),
		Visibility: models.VisibilityPublic,
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment constructs and persists a top-level `models.Comment` on the
// provided post authored by the provided user.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		UserID:  user.ID,
		PostID:  post.ID,
		Content: gofakeit.Sentence(8),
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateReply constructs and persists a reply to the provided parent comment.
// The reply is attached to the parent's post.
func (f *Factory) CreateReply(user *models.User, parent *models.Comment, overrides ...func(*models.Comment)) (*models.Comment, error) {
	reply := &models.Comment{
		UserID:   user.ID,
		PostID:   parent.PostID,
		ParentID: &parent.ID,
		Content:  gofakeit.Sentence(8),
	}

	for _, override := range overrides {
		override(reply)
	}

	if err := f.db.Create(reply).Error; err != nil {
		return nil, err
	}
	return reply, nil
}
