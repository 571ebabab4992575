// Package service implements the application's mutation contract and read
// projections on top of the repository layer.
package service

import (
	"context"
	"fmt"
	"time"

	"commune/internal/cache"
	"commune/internal/models"
	"commune/internal/repository"
	"commune/internal/validation"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const userCacheTTL = 60 * time.Second

// UserService implements the user mutation contract: uniqueness-checked
// creation, partial updates with password re-hashing, and the login action.
type UserService struct {
	userRepo repository.UserRepository
	rdb      *redis.Client
}

// CreateUserInput carries the fields accepted on user creation.
type CreateUserInput struct {
	Username        string
	Email           string
	Password        string
	Bio             string
	ProfileImageURL string
	CoverImageURL   string
}

// UpdateUserInput carries a partial field set; nil fields are left untouched.
type UpdateUserInput struct {
	ID              uint
	Username        *string
	Email           *string
	Password        *string
	Bio             *string
	ProfileImageURL *string
	CoverImageURL   *string
	IsActive        *bool
	Role            *string
}

// NewUserService creates a UserService. rdb may be nil; reads then always hit
// the database.
func NewUserService(userRepo repository.UserRepository, rdb *redis.Client) *UserService {
	return &UserService{userRepo: userRepo, rdb: rdb}
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// ListUsers returns every user in insertion order.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// GetUser returns a single user, serving from the cache when possible.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var cached models.User
	if found, err := cache.GetJSON(ctx, s.rdb, userCacheKey(id), &cached); err == nil && found {
		return &cached, nil
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Best-effort cache fill
	_ = cache.SetJSON(ctx, s.rdb, userCacheKey(id), user, userCacheTTL)
	return user, nil
}

// CreateUser validates input, rejects duplicate usernames or emails before
// any row is persisted, and stores only a bcrypt hash of the credential.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("username, email, and password are required")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("username already exists")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:        in.Username,
		Email:           in.Email,
		PasswordHash:    string(hashed),
		Bio:             in.Bio,
		ProfileImageURL: in.ProfileImageURL,
		CoverImageURL:   in.CoverImageURL,
		IsActive:        true,
		Role:            models.DefaultRole,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser merges only the supplied fields into the stored row. A supplied
// password is re-hashed before storage. updated_at is refreshed by the store
// on every successful update.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != user.Username {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if existing, err := s.userRepo.GetByUsername(ctx, *in.Username); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, models.NewConflictError("username already exists")
		}
		user.Username = *in.Username
	}
	if in.Email != nil && *in.Email != user.Email {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if existing, err := s.userRepo.GetByEmail(ctx, *in.Email); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, models.NewConflictError("email already exists")
		}
		user.Email = *in.Email
	}
	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.PasswordHash = string(hashed)
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.ProfileImageURL != nil {
		user.ProfileImageURL = *in.ProfileImageURL
	}
	if in.CoverImageURL != nil {
		user.CoverImageURL = *in.CoverImageURL
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Role != nil {
		user.Role = *in.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	_ = cache.Invalidate(ctx, s.rdb, userCacheKey(user.ID))
	return user, nil
}

// DeleteUser removes the user row. Posts and comments authored by the user
// are not cascaded.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	_ = cache.Invalidate(ctx, s.rdb, userCacheKey(id))
	return nil
}

// Login stamps last_login to the current time. When a password is supplied it
// is compared against the stored hash first; a mismatch is rejected. An empty
// password keeps the stamp-only behavior.
func (s *UserService) Login(ctx context.Context, id uint, password string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if password != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			return nil, models.NewUnauthorizedError("invalid credentials")
		}
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	_ = cache.Invalidate(ctx, s.rdb, userCacheKey(user.ID))
	return user, nil
}
