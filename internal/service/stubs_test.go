package service

import (
	"context"

	"commune/internal/models"
)

type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	listFn          func(context.Context) ([]models.User, error)
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

// noopUserRepo returns a stub where creation succeeds, lookups find nothing,
// and every write is accepted. Tests override the fields they care about.
func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(context.Context, *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		},
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		listFn:          func(context.Context) ([]models.User, error) { return []models.User{}, nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
	}
}

type postRepoStub struct {
	createFn     func(context.Context, *models.Post) error
	getByIDFn    func(context.Context, uint) (*models.Post, error)
	listFn       func(context.Context) ([]*models.Post, error)
	listByUserFn func(context.Context, uint) ([]*models.Post, error)
	updateFn     func(context.Context, *models.Post) error
	deleteFn     func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		},
		listFn:       func(context.Context) ([]*models.Post, error) { return []*models.Post{}, nil },
		listByUserFn: func(context.Context, uint) ([]*models.Post, error) { return []*models.Post{}, nil },
		updateFn:     func(context.Context, *models.Post) error { return nil },
		deleteFn:     func(context.Context, uint) error { return nil },
	}
}

type commentRepoStub struct {
	createFn       func(context.Context, *models.Comment) error
	getByIDFn      func(context.Context, uint) (*models.Comment, error)
	listFn         func(context.Context) ([]*models.Comment, error)
	listTopLevelFn func(context.Context, uint) ([]*models.Comment, error)
	listRepliesFn  func(context.Context, uint) ([]*models.Comment, error)
	updateFn       func(context.Context, *models.Comment) error
	deleteFn       func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) List(ctx context.Context) ([]*models.Comment, error) {
	return s.listFn(ctx)
}
func (s *commentRepoStub) ListTopLevel(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listTopLevelFn(ctx, postID)
}
func (s *commentRepoStub) ListReplies(ctx context.Context, parentID uint) ([]*models.Comment, error) {
	return s.listRepliesFn(ctx, parentID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(context.Context, *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return nil, models.NewNotFoundError("Comment", id)
		},
		listFn:         func(context.Context) ([]*models.Comment, error) { return []*models.Comment{}, nil },
		listTopLevelFn: func(context.Context, uint) ([]*models.Comment, error) { return []*models.Comment{}, nil },
		listRepliesFn:  func(context.Context, uint) ([]*models.Comment, error) { return []*models.Comment{}, nil },
		updateFn:       func(context.Context, *models.Comment) error { return nil },
		deleteFn:       func(context.Context, uint) error { return nil },
	}
}
