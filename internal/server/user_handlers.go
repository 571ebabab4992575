package server

import (
	"commune/internal/models"
	"commune/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /users
func (s *Server) ListUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// GetUser handles GET /users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// CreateUser handles POST /users
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		Bio             string `json:"bio"`
		ProfileImageURL string `json:"profile_image_url"`
		CoverImageURL   string `json:"cover_image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.CreateUser(c.UserContext(), service.CreateUserInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		Bio:             req.Bio,
		ProfileImageURL: req.ProfileImageURL,
		CoverImageURL:   req.CoverImageURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser handles PUT /users/:id. Only fields present in the body
// overwrite stored values; omitted fields are left untouched.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Username        *string `json:"username"`
		Email           *string `json:"email"`
		Password        *string `json:"password"`
		Bio             *string `json:"bio"`
		ProfileImageURL *string `json:"profile_image_url"`
		CoverImageURL   *string `json:"cover_image_url"`
		IsActive        *bool   `json:"is_active"`
		Role            *string `json:"role"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateUser(c.UserContext(), service.UpdateUserInput{
		ID:              id,
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		Bio:             req.Bio,
		ProfileImageURL: req.ProfileImageURL,
		CoverImageURL:   req.CoverImageURL,
		IsActive:        req.IsActive,
		Role:            req.Role,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// DeleteUser handles DELETE /users/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Login handles POST /users/:id/login. It stamps last_login; when the body
// carries a password it is checked against the stored hash first.
func (s *Server) Login(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Password string `json:"password"`
	}
	// The body is optional for this action
	_ = c.BodyParser(&req)

	user, err := s.userService.Login(c.UserContext(), id, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserPosts handles GET /users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	posts, err := s.postService.ListUserPosts(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}
